package postgres

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertTeamQuery = `
INSERT INTO teams(id, name, owner_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`
	selectTeamQuery   = `SELECT id, name, owner_id, created_at, updated_at FROM teams WHERE id=$1`
	selectTeamsQuery  = `SELECT id, name, owner_id, created_at, updated_at FROM teams ORDER BY created_at DESC, id DESC LIMIT $1`
	countTeamsQuery   = `SELECT COUNT(*) FROM teams`
	teamExistsQuery   = `SELECT EXISTS(SELECT 1 FROM teams WHERE id=$1)`
	userExistsQuery   = `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`
	insertMemberQuery = `
INSERT INTO team_members(id, team_id, user_id, role, created_at)
VALUES ($1, $2, $3, $4, $5)
`
	selectMembersQuery = `
SELECT id, team_id, user_id, role, created_at
FROM team_members
WHERE team_id=$1
ORDER BY created_at ASC, id ASC
`
)

// CreateTeam inserts a team and its audit entry in one transaction. The owner
// must exist; no membership row is created for the owner.
func (p *Postgres) CreateTeam(ctx context.Context, team entities.Team, act entities.Activity) (*entities.Team, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ownerExists bool
	if err := tx.QueryRow(ctx, userExistsQuery, team.OwnerID).Scan(&ownerExists); err != nil {
		return nil, fmt.Errorf("owner lookup: %w", err)
	}
	if !ownerExists {
		return nil, fmt.Errorf("%w: owner_id does not reference an existing user", entities.ErrInvalidArgument)
	}

	if _, err := tx.Exec(ctx, insertTeamQuery, team.ID, team.Name, team.OwnerID, team.CreatedAt, team.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}

	if err := p.insertActivity(ctx, tx, act); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("team created", "team_id", team.ID, "owner_id", team.OwnerID)
	return &team, nil
}

// GetTeam fetches a team by id.
func (p *Postgres) GetTeam(ctx context.Context, id string) (*entities.Team, error) {
	var t entities.Team
	err := p.db.QueryRow(ctx, selectTeamQuery, id).
		Scan(&t.ID, &t.Name, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// ListTeams returns teams newest-first plus the total team count.
func (p *Postgres) ListTeams(ctx context.Context, limit int) ([]entities.Team, int, error) {
	rows, err := p.db.Query(ctx, selectTeamsQuery, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		var t entities.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			p.log.Errorw("failed to scan team", "error", err)
			return nil, 0, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate teams: %w", err)
	}

	var total int
	if err := p.db.QueryRow(ctx, countTeamsQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count teams: %w", err)
	}

	return teams, total, nil
}

// TeamMembers returns membership rows for a team. A missing team yields
// ErrTeamNotFound rather than an empty list.
func (p *Postgres) TeamMembers(ctx context.Context, teamID string) ([]entities.TeamMember, int, error) {
	var exists bool
	if err := p.db.QueryRow(ctx, teamExistsQuery, teamID).Scan(&exists); err != nil {
		return nil, 0, fmt.Errorf("team lookup: %w", err)
	}
	if !exists {
		return nil, 0, entities.ErrTeamNotFound
	}

	rows, err := p.db.Query(ctx, selectMembersQuery, teamID)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]entities.TeamMember, 0)
	for rows.Next() {
		var m entities.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			p.log.Errorw("failed to scan member", "error", err, "team_id", teamID)
			return nil, 0, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate members: %w", err)
	}

	return members, len(members), nil
}

// AddTeamMember inserts a membership and its audit entry in one transaction.
// A duplicate (team, user) pair maps to ErrMembershipExists and leaves team
// membership unchanged.
func (p *Postgres) AddTeamMember(ctx context.Context, member entities.TeamMember, act entities.Activity) (*entities.TeamMember, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var teamExists bool
	if err := tx.QueryRow(ctx, teamExistsQuery, member.TeamID).Scan(&teamExists); err != nil {
		return nil, fmt.Errorf("team lookup: %w", err)
	}
	if !teamExists {
		return nil, entities.ErrTeamNotFound
	}

	var userExists bool
	if err := tx.QueryRow(ctx, userExistsQuery, member.UserID).Scan(&userExists); err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if !userExists {
		return nil, entities.ErrUserNotFound
	}

	if _, err := tx.Exec(ctx, insertMemberQuery, member.ID, member.TeamID, member.UserID, member.Role, member.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrMembershipExists
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}

	if err := p.insertActivity(ctx, tx, act); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("member added", "team_id", member.TeamID, "user_id", member.UserID, "role", member.Role)
	return &member, nil
}
