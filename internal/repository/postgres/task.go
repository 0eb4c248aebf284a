package postgres

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/entities"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const (
	insertTaskQuery = `
INSERT INTO tasks(id, title, description, status, priority, assignee_id, creator_id, team_id, due_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	selectTaskQuery = `
SELECT id, title, description, status, priority, COALESCE(assignee_id, ''), creator_id, COALESCE(team_id, ''), due_date, created_at, updated_at
FROM tasks WHERE id=$1
`
	lockTaskQuery   = `SELECT id FROM tasks WHERE id=$1 FOR UPDATE`
	updateTaskQuery = `
UPDATE tasks
SET title=$2, description=$3, status=$4, priority=$5, assignee_id=$6, due_date=$7, updated_at=$8
WHERE id=$1
`
	deleteTaskQuery    = `DELETE FROM tasks WHERE id=$1`
	insertHistoryQuery = `
INSERT INTO task_history(id, task_id, user_id, field, old_value, new_value, changed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	selectHistoryQuery = `
SELECT id, task_id, COALESCE(user_id, ''), field, old_value, new_value, changed_at
FROM task_history
WHERE task_id=$1
ORDER BY changed_at ASC, id ASC
`
	taskExistsQuery       = `SELECT EXISTS(SELECT 1 FROM tasks WHERE id=$1)`
	taskEverRecordedQuery = `SELECT EXISTS(SELECT 1 FROM activities WHERE entity_type='task' AND entity_id=$1)`
)

// CreateTask inserts a task and its audit entry in one transaction. Creator,
// assignee and team references are validated before the write.
func (p *Postgres) CreateTask(ctx context.Context, task entities.Task, act entities.Activity) (*entities.Task, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := p.checkUserRef(ctx, tx, task.CreatorID, "creator_id"); err != nil {
		return nil, err
	}
	if task.AssigneeID != "" {
		if err := p.checkUserRef(ctx, tx, task.AssigneeID, "assignee_id"); err != nil {
			return nil, err
		}
	}
	if task.TeamID != "" {
		var exists bool
		if err := tx.QueryRow(ctx, teamExistsQuery, task.TeamID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("team lookup: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: team_id does not reference an existing team", entities.ErrInvalidArgument)
		}
	}

	if _, err := tx.Exec(ctx, insertTaskQuery,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		nullIfEmpty(task.AssigneeID), task.CreatorID, nullIfEmpty(task.TeamID),
		task.DueDate, task.CreatedAt, task.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	if err := p.insertActivity(ctx, tx, act); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("task created", "task_id", task.ID, "status", task.Status)
	return &task, nil
}

// GetTask fetches a task by id.
func (p *Postgres) GetTask(ctx context.Context, id string) (*entities.Task, error) {
	var t entities.Task
	err := p.db.QueryRow(ctx, selectTaskQuery, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssigneeID, &t.CreatorID, &t.TeamID, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// UpdateTask persists the merged task, one history row per changed field and
// the audit entry in a single transaction. The row lock serializes concurrent
// updates of the same task; last committed writer wins.
func (p *Postgres) UpdateTask(ctx context.Context, task entities.Task, history []entities.TaskHistoryEntry, act entities.Activity) (*entities.Task, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lockedID string
	if err := tx.QueryRow(ctx, lockTaskQuery, task.ID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("lock task: %w", err)
	}

	if task.AssigneeID != "" {
		if err := p.checkUserRef(ctx, tx, task.AssigneeID, "assignee_id"); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, updateTaskQuery,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		nullIfEmpty(task.AssigneeID), task.DueDate, task.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	for _, h := range history {
		if _, err := tx.Exec(ctx, insertHistoryQuery,
			h.ID, h.TaskID, nullIfEmpty(h.UserID), h.Field, h.OldValue, h.NewValue, h.ChangedAt); err != nil {
			return nil, fmt.Errorf("insert history: %w", err)
		}
	}

	if err := p.insertActivity(ctx, tx, act); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("task updated", "task_id", task.ID, "changed_fields", len(history))
	return &task, nil
}

// DeleteTask removes the task row and records the audit entry atomically.
// History rows are left in place.
func (p *Postgres) DeleteTask(ctx context.Context, id string, act entities.Activity) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTaskNotFound
	}

	if err := p.insertActivity(ctx, tx, act); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	p.log.Infow("task deleted", "task_id", id)
	return nil
}

// ListTasks returns tasks newest-first plus the total count matching the
// filter regardless of limit.
func (p *Postgres) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, int, error) {
	base := squirrel.Select(
		"id", "title", "description", "status", "priority",
		"COALESCE(assignee_id, '')", "creator_id", "COALESCE(team_id, '')",
		"due_date", "created_at", "updated_at").
		From("tasks").
		PlaceholderFormat(squirrel.Dollar)
	count := squirrel.Select("COUNT(*)").From("tasks").PlaceholderFormat(squirrel.Dollar)

	if filter.Status != "" {
		base = base.Where(squirrel.Eq{"status": filter.Status})
		count = count.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.AssigneeID != "" {
		base = base.Where(squirrel.Eq{"assignee_id": filter.AssigneeID})
		count = count.Where(squirrel.Eq{"assignee_id": filter.AssigneeID})
	}
	if filter.TeamID != "" {
		base = base.Where(squirrel.Eq{"team_id": filter.TeamID})
		count = count.Where(squirrel.Eq{"team_id": filter.TeamID})
	}

	base = base.OrderBy("created_at DESC, id DESC")
	if filter.Limit > 0 {
		base = base.Limit(uint64(filter.Limit))
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build tasks query: %w", err)
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		var t entities.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.AssigneeID, &t.CreatorID, &t.TeamID, &t.DueDate,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			p.log.Errorw("failed to scan task", "error", err)
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tasks: %w", err)
	}

	countQuery, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build tasks count query: %w", err)
	}

	var total int
	if err := p.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	return tasks, total, nil
}

// TaskHistory returns history entries in chronological order. A task that
// never existed yields ErrTaskNotFound; a deleted task still returns its
// retained history (the activity log acts as the tombstone).
func (p *Postgres) TaskHistory(ctx context.Context, taskID string) ([]entities.TaskHistoryEntry, error) {
	rows, err := p.db.Query(ctx, selectHistoryQuery, taskID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	history := make([]entities.TaskHistoryEntry, 0)
	for rows.Next() {
		var h entities.TaskHistoryEntry
		if err := rows.Scan(&h.ID, &h.TaskID, &h.UserID, &h.Field, &h.OldValue, &h.NewValue, &h.ChangedAt); err != nil {
			p.log.Errorw("failed to scan history", "error", err, "task_id", taskID)
			return nil, fmt.Errorf("scan history: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	if len(history) > 0 {
		return history, nil
	}

	var exists bool
	if err := p.db.QueryRow(ctx, taskExistsQuery, taskID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("task lookup: %w", err)
	}
	if exists {
		return history, nil
	}
	if err := p.db.QueryRow(ctx, taskEverRecordedQuery, taskID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("task tombstone lookup: %w", err)
	}
	if !exists {
		return nil, entities.ErrTaskNotFound
	}
	return history, nil
}

func (p *Postgres) checkUserRef(ctx context.Context, tx pgx.Tx, userID, field string) error {
	var exists bool
	if err := tx.QueryRow(ctx, userExistsQuery, userID).Scan(&exists); err != nil {
		return fmt.Errorf("user lookup: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s does not reference an existing user", entities.ErrInvalidArgument, field)
	}
	return nil
}
