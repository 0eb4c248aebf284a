// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"taskboard/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes user-related operations. Every mutation commits the
// given activity entry in the same transaction as the write.
type UserInterface interface {
	CreateUser(ctx context.Context, user entities.User, act entities.Activity) (*entities.User, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
	UpdateUser(ctx context.Context, user entities.User, act entities.Activity) (*entities.User, error)
	ListUsers(ctx context.Context, limit int) ([]entities.User, int, error)
}

// TeamInterface exposes team and membership operations.
type TeamInterface interface {
	CreateTeam(ctx context.Context, team entities.Team, act entities.Activity) (*entities.Team, error)
	GetTeam(ctx context.Context, id string) (*entities.Team, error)
	ListTeams(ctx context.Context, limit int) ([]entities.Team, int, error)
	TeamMembers(ctx context.Context, teamID string) ([]entities.TeamMember, int, error)
	AddTeamMember(ctx context.Context, member entities.TeamMember, act entities.Activity) (*entities.TeamMember, error)
}

// TaskInterface exposes task, history and deletion operations. UpdateTask
// persists the merged task together with its per-field history entries and the
// activity entry atomically.
type TaskInterface interface {
	CreateTask(ctx context.Context, task entities.Task, act entities.Activity) (*entities.Task, error)
	GetTask(ctx context.Context, id string) (*entities.Task, error)
	UpdateTask(ctx context.Context, task entities.Task, history []entities.TaskHistoryEntry, act entities.Activity) (*entities.Task, error)
	DeleteTask(ctx context.Context, id string, act entities.Activity) error
	ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, int, error)
	TaskHistory(ctx context.Context, taskID string) ([]entities.TaskHistoryEntry, error)
}

// ActivityInterface exposes read access to the append-only activity log.
// Entries are only ever written as a side effect of mutations on the other
// interfaces.
type ActivityInterface interface {
	ListActivities(ctx context.Context, filter entities.ActivityFilter) ([]entities.Activity, int, error)
}
