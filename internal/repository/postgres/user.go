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
	insertUserQuery = `
INSERT INTO users(id, email, name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`
	selectUserQuery = `SELECT id, email, name, created_at, updated_at FROM users WHERE id=$1`
	updateUserQuery = `
UPDATE users SET email=$2, name=$3, updated_at=$4 WHERE id=$1
`
	selectUsersQuery = `SELECT id, email, name, created_at, updated_at FROM users ORDER BY created_at DESC, id DESC LIMIT $1`
	countUsersQuery  = `SELECT COUNT(*) FROM users`
)

// CreateUser inserts a user and its audit entry in one transaction. A
// case-insensitive email collision maps to ErrEmailExists.
func (p *Postgres) CreateUser(ctx context.Context, user entities.User, act entities.Activity) (*entities.User, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, insertUserQuery, user.ID, user.Email, user.Name, user.CreatedAt, user.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if err := p.insertActivity(ctx, tx, act); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("user created", "user_id", user.ID)
	return &user, nil
}

// GetUser fetches a user by id.
func (p *Postgres) GetUser(ctx context.Context, id string) (*entities.User, error) {
	var u entities.User
	err := p.db.QueryRow(ctx, selectUserQuery, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// UpdateUser persists the merged user record and its audit entry atomically.
func (p *Postgres) UpdateUser(ctx context.Context, user entities.User, act entities.Activity) (*entities.User, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, updateUserQuery, user.ID, user.Email, user.Name, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrEmailExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, entities.ErrUserNotFound
	}

	if err := p.insertActivity(ctx, tx, act); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("user updated", "user_id", user.ID)
	return &user, nil
}

// ListUsers returns users newest-first plus the total user count.
func (p *Postgres) ListUsers(ctx context.Context, limit int) ([]entities.User, int, error) {
	rows, err := p.db.Query(ctx, selectUsersQuery, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			p.log.Errorw("failed to scan user", "error", err)
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	var total int
	if err := p.db.QueryRow(ctx, countUsersQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}
