// Package entities contains core business entities.
package entities

import "time"

// TaskStatus enumerates task lifecycle states. Any status may transition to
// any other.
type TaskStatus string

const (
	// StatusTodo marks a task as not started.
	StatusTodo TaskStatus = "todo"
	// StatusInProgress marks a task as started.
	StatusInProgress TaskStatus = "in_progress"
	// StatusDone marks a task as finished.
	StatusDone TaskStatus = "done"
	// StatusCancelled marks a task as abandoned.
	StatusCancelled TaskStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// TaskPriority enumerates task priorities.
type TaskPriority string

const (
	// PriorityLow is the lowest priority.
	PriorityLow TaskPriority = "low"
	// PriorityMedium is the default priority.
	PriorityMedium TaskPriority = "medium"
	// PriorityHigh is the highest priority.
	PriorityHigh TaskPriority = "high"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a domain model of a tracked task.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssigneeID  string
	CreatorID   string
	TeamID      string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskHistoryEntry is a per-field audit record of a task update. History is
// retained after the task itself is deleted.
type TaskHistoryEntry struct {
	ID        string
	TaskID    string
	UserID    string
	Field     string
	OldValue  string
	NewValue  string
	ChangedAt time.Time
}

// TaskFilter narrows task listings. Zero-valued fields are ignored.
type TaskFilter struct {
	Status     string
	AssigneeID string
	TeamID     string
	Limit      int
}

// CreateTaskInput carries fields for task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssigneeID  string
	CreatorID   string
	TeamID      string
	DueDate     *time.Time
	ActorID     string
}

// UpdateTaskInput carries a partial task update; nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	AssigneeID  *string
	DueDate     *time.Time
	ActorID     string
}
