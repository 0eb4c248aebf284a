// Package domain contains application usecases orchestrating domain logic by user.
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/entities"

	"github.com/google/uuid"
)

// CreateUser registers a user and records the creation in the activity log.
// The new user is recorded as the actor unless one is supplied.
func (u *Usecase) CreateUser(ctx context.Context, input entities.CreateUserInput) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", entities.ErrInvalidArgument)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is malformed", entities.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	user := entities.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	actor := input.ActorID
	if actor == "" {
		actor = user.ID
	}
	act := newActivity(actor, entities.EntityUser, user.ID, entities.ActionCreated, entities.UserCreatedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	})

	created, err := u.repo.CreateUser(ctx, user, act)
	if err != nil {
		return nil, err
	}

	u.publish(act)
	return created, nil
}

// User returns a user by id.
func (u *Usecase) User(ctx context.Context, id string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetUser(ctx, id)
}

// UpdateUser applies a partial update and records it in the activity log.
func (u *Usecase) UpdateUser(ctx context.Context, id string, input entities.UpdateUserInput) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", entities.ErrInvalidArgument)
	}
	if input.Email == nil && input.Name == nil {
		return nil, fmt.Errorf("%w: no fields to update", entities.ErrInvalidArgument)
	}

	current, err := u.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user := *current
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: email is malformed", entities.ErrInvalidArgument)
		}
		user.Email = email
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
		}
		user.Name = *input.Name
	}
	user.UpdatedAt = time.Now().UTC()

	actor := input.ActorID
	if actor == "" {
		actor = user.ID
	}
	act := newActivity(actor, entities.EntityUser, user.ID, entities.ActionUpdated, entities.UserUpdatedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		UpdatedAt: user.UpdatedAt,
	})

	updated, err := u.repo.UpdateUser(ctx, user, act)
	if err != nil {
		return nil, err
	}

	u.publish(act)
	return updated, nil
}

// ListUsers returns users newest-first plus the total user count.
func (u *Usecase) ListUsers(ctx context.Context, limit int) ([]entities.User, int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListUsers(ctx, normalizeLimit(limit))
}

// UserActivities returns activity entries where the user is the actor,
// newest-first. The user must exist.
func (u *Usecase) UserActivities(ctx context.Context, userID string, limit int) ([]entities.Activity, int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, 0, fmt.Errorf("%w: user id is required", entities.ErrInvalidArgument)
	}
	if _, err := u.repo.GetUser(ctx, userID); err != nil {
		return nil, 0, err
	}

	return u.repo.ListActivities(ctx, entities.ActivityFilter{
		UserID: userID,
		Limit:  normalizeLimit(limit),
	})
}
