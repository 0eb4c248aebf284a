// Package domain contains application usecases orchestrating domain logic by task.
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/entities"

	"github.com/google/uuid"
)

// CreateTask creates a task with defaulted status/priority and records the
// creation in the activity log.
func (u *Usecase) CreateTask(ctx context.Context, input entities.CreateTaskInput) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}
	if input.CreatorID == "" {
		return nil, fmt.Errorf("%w: creator_id is required", entities.ErrInvalidArgument)
	}

	status := input.Status
	if status == "" {
		status = entities.StatusTodo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q is not valid", entities.ErrInvalidArgument, status)
	}
	priority := input.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: priority %q is not valid", entities.ErrInvalidArgument, priority)
	}

	now := time.Now().UTC()
	task := entities.Task{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  input.AssigneeID,
		CreatorID:   input.CreatorID,
		TeamID:      input.TeamID,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	actor := input.ActorID
	if actor == "" {
		actor = input.CreatorID
	}
	act := newActivity(actor, entities.EntityTask, task.ID, entities.ActionCreated, entities.TaskCreatedEvent{
		TaskID:     task.ID,
		Title:      task.Title,
		CreatorID:  task.CreatorID,
		AssigneeID: task.AssigneeID,
		TeamID:     task.TeamID,
		CreatedAt:  task.CreatedAt,
	})

	created, err := u.repo.CreateTask(ctx, task, act)
	if err != nil {
		return nil, err
	}

	u.publish(act)
	return created, nil
}

// Task returns a task by id.
func (u *Usecase) Task(ctx context.Context, id string) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id == "" {
		return nil, fmt.Errorf("%w: task id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetTask(ctx, id)
}

// UpdateTask applies a partial update. Each changed field produces exactly one
// history entry; one activity entry covers the whole update. Any status may
// transition to any other. An update that changes nothing writes nothing.
func (u *Usecase) UpdateTask(ctx context.Context, id string, input entities.UpdateTaskInput) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id == "" {
		return nil, fmt.Errorf("%w: task id is required", entities.ErrInvalidArgument)
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q is not valid", entities.ErrInvalidArgument, *input.Status)
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, fmt.Errorf("%w: priority %q is not valid", entities.ErrInvalidArgument, *input.Priority)
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}

	current, err := u.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task := *current
	now := time.Now().UTC()
	changes := make([]entities.TaskHistoryEntry, 0, 6)

	record := func(field, oldVal, newVal string) {
		changes = append(changes, entities.TaskHistoryEntry{
			ID:        uuid.New().String(),
			TaskID:    task.ID,
			UserID:    input.ActorID,
			Field:     field,
			OldValue:  oldVal,
			NewValue:  newVal,
			ChangedAt: now,
		})
	}

	if input.Title != nil && *input.Title != task.Title {
		record("title", task.Title, *input.Title)
		task.Title = *input.Title
	}
	if input.Description != nil && *input.Description != task.Description {
		record("description", task.Description, *input.Description)
		task.Description = *input.Description
	}
	if input.Status != nil && *input.Status != task.Status {
		record("status", string(task.Status), string(*input.Status))
		task.Status = *input.Status
	}
	if input.Priority != nil && *input.Priority != task.Priority {
		record("priority", string(task.Priority), string(*input.Priority))
		task.Priority = *input.Priority
	}
	if input.AssigneeID != nil && *input.AssigneeID != task.AssigneeID {
		record("assignee_id", task.AssigneeID, *input.AssigneeID)
		task.AssigneeID = *input.AssigneeID
	}
	if input.DueDate != nil && !sameTime(task.DueDate, input.DueDate) {
		record("due_date", formatDue(task.DueDate), formatDue(input.DueDate))
		task.DueDate = input.DueDate
	}

	if len(changes) == 0 {
		return current, nil
	}
	task.UpdatedAt = now

	events := make([]entities.TaskUpdatedEvent, 0, len(changes))
	for _, c := range changes {
		events = append(events, entities.TaskUpdatedEvent{
			TaskID:    task.ID,
			Field:     c.Field,
			OldValue:  c.OldValue,
			NewValue:  c.NewValue,
			UpdatedAt: now,
		})
	}
	act := newActivity(input.ActorID, entities.EntityTask, task.ID, entities.ActionUpdated, events)

	updated, err := u.repo.UpdateTask(ctx, task, changes, act)
	if err != nil {
		return nil, err
	}

	u.publish(act)
	return updated, nil
}

// DeleteTask removes a task. Its history is retained and the deletion is
// recorded in the activity log.
func (u *Usecase) DeleteTask(ctx context.Context, id, actorID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id == "" {
		return fmt.Errorf("%w: task id is required", entities.ErrInvalidArgument)
	}

	current, err := u.repo.GetTask(ctx, id)
	if err != nil {
		return err
	}

	act := newActivity(actorID, entities.EntityTask, id, entities.ActionDeleted, entities.TaskDeletedEvent{
		TaskID:    id,
		Title:     current.Title,
		DeletedAt: time.Now().UTC(),
	})

	if err := u.repo.DeleteTask(ctx, id, act); err != nil {
		return err
	}

	u.publish(act)
	return nil
}

// ListTasks returns tasks newest-first plus the total count matching the
// filter.
func (u *Usecase) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if filter.Status != "" && !entities.TaskStatus(filter.Status).Valid() {
		return nil, 0, fmt.Errorf("%w: status %q is not valid", entities.ErrInvalidArgument, filter.Status)
	}
	filter.Limit = normalizeLimit(filter.Limit)

	return u.repo.ListTasks(ctx, filter)
}

// TaskHistory returns the per-field update trail of a task in chronological
// order. Deleted tasks keep their history.
func (u *Usecase) TaskHistory(ctx context.Context, taskID string) ([]entities.TaskHistoryEntry, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if taskID == "" {
		return nil, fmt.Errorf("%w: task id is required", entities.ErrInvalidArgument)
	}
	return u.repo.TaskHistory(ctx, taskID)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
