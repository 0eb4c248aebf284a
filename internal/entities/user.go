// Package entities contains core business entities.
package entities

import "time"

// User is a domain representation of a registered user. Users are never
// hard-deleted.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserInput carries fields for user creation.
type CreateUserInput struct {
	Email   string
	Name    string
	ActorID string
}

// UpdateUserInput carries a partial user update; nil fields are left unchanged.
type UpdateUserInput struct {
	Email   *string
	Name    *string
	ActorID string
}
