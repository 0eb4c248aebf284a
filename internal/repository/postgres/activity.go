package postgres

import (
	"context"
	"fmt"

	"taskboard/internal/entities"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const insertActivityQuery = `
INSERT INTO activities(id, user_id, entity_type, entity_id, action, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// insertActivity appends the audit entry inside the caller's transaction. It
// is the only write path into the activities table.
func (p *Postgres) insertActivity(ctx context.Context, tx pgx.Tx, act entities.Activity) error {
	_, err := tx.Exec(ctx, insertActivityQuery,
		act.ID, nullIfEmpty(act.UserID), act.EntityType, act.EntityID, act.Action, act.Metadata, act.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListActivities returns committed activity entries newest-first plus the
// total count matching the filter.
func (p *Postgres) ListActivities(ctx context.Context, filter entities.ActivityFilter) ([]entities.Activity, int, error) {
	base := squirrel.Select("id", "COALESCE(user_id, '')", "entity_type", "entity_id", "action", "metadata", "created_at").
		From("activities").
		PlaceholderFormat(squirrel.Dollar)
	count := squirrel.Select("COUNT(*)").From("activities").PlaceholderFormat(squirrel.Dollar)

	if filter.EntityType != "" {
		base = base.Where(squirrel.Eq{"entity_type": filter.EntityType})
		count = count.Where(squirrel.Eq{"entity_type": filter.EntityType})
	}
	if filter.EntityID != "" {
		base = base.Where(squirrel.Eq{"entity_id": filter.EntityID})
		count = count.Where(squirrel.Eq{"entity_id": filter.EntityID})
	}
	if filter.UserID != "" {
		base = base.Where(squirrel.Eq{"user_id": filter.UserID})
		count = count.Where(squirrel.Eq{"user_id": filter.UserID})
	}

	base = base.OrderBy("created_at DESC, id DESC")
	if filter.Limit > 0 {
		base = base.Limit(uint64(filter.Limit))
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build activities query: %w", err)
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	acts := make([]entities.Activity, 0)
	for rows.Next() {
		var a entities.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.EntityType, &a.EntityID, &a.Action, &a.Metadata, &a.CreatedAt); err != nil {
			p.log.Errorw("failed to scan activity", "error", err)
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate activities: %w", err)
	}

	countQuery, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build activities count query: %w", err)
	}

	var total int
	if err := p.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	return acts, total, nil
}
