// Package entities contains core business entities.
package entities

import "time"

// UserCreatedEvent is emitted after a user is committed.
type UserCreatedEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserUpdatedEvent is emitted after a user update is committed.
type UserUpdatedEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamCreatedEvent is emitted after a team is committed.
type TeamCreatedEvent struct {
	TeamID    string    `json:"team_id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberAddedEvent is emitted after a membership is committed.
type MemberAddedEvent struct {
	TeamID  string     `json:"team_id"`
	UserID  string     `json:"user_id"`
	Role    MemberRole `json:"role"`
	AddedAt time.Time  `json:"added_at"`
}

// TaskCreatedEvent is emitted after a task is committed.
type TaskCreatedEvent struct {
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	CreatorID  string    `json:"creator_id"`
	AssigneeID string    `json:"assignee_id,omitempty"`
	TeamID     string    `json:"team_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TaskUpdatedEvent is emitted once per changed field after a task update is
// committed.
type TaskUpdatedEvent struct {
	TaskID    string    `json:"task_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskDeletedEvent is emitted after a task deletion is committed.
type TaskDeletedEvent struct {
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	DeletedAt time.Time `json:"deleted_at"`
}
