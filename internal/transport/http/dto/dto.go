// Package dto defines transport models exchanged over the HTTP API.
package dto

import "time"

// User is the transport shape of a user record.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Team is the transport shape of a team record.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamMember is the transport shape of a membership row.
type TeamMember struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is the transport shape of a task record.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	CreatorID   string     `json:"creator_id"`
	TeamID      string     `json:"team_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskHistoryEntry is the transport shape of a per-field task audit record.
type TaskHistoryEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id,omitempty"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedAt time.Time `json:"changed_at"`
}

// Activity is the transport shape of an activity log entry.
type Activity struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	Metadata   string    `json:"metadata,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListResponse is the uniform list envelope: the page of records plus the
// total count of matching records independent of the page size.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	ActorID string `json:"actor_id"`
}

// UpdateUserRequest is the body of PATCH /users/{id}; absent fields are left
// unchanged.
type UpdateUserRequest struct {
	Email   *string `json:"email"`
	Name    *string `json:"name"`
	ActorID string  `json:"actor_id"`
}

// CreateTeamRequest is the body of POST /teams.
type CreateTeamRequest struct {
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
	ActorID string `json:"actor_id"`
}

// AddMemberRequest is the body of POST /teams/{id}/members.
type AddMemberRequest struct {
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	ActorID string `json:"actor_id"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  string     `json:"assignee_id"`
	CreatorID   string     `json:"creator_id"`
	TeamID      string     `json:"team_id"`
	DueDate     *time.Time `json:"due_date"`
	ActorID     string     `json:"actor_id"`
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}; absent fields are left
// unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssigneeID  *string    `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
	ActorID     string     `json:"actor_id"`
}
