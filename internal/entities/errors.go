// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation, including dangling references.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrTeamNotFound signals missing team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTaskNotFound signals missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrEmailExists signals user email conflict.
	ErrEmailExists = errors.New("email exists")
	// ErrMembershipExists signals duplicate (team, user) membership.
	ErrMembershipExists = errors.New("membership exists")
)
