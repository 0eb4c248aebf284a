package usecase

import (
	"context"

	"taskboard/internal/entities"
)

// UserUsecaseInterface abstracts user-related operations for delivery layer.
type UserUsecaseInterface interface {
	CreateUser(ctx context.Context, input entities.CreateUserInput) (*entities.User, error)
	User(ctx context.Context, id string) (*entities.User, error)
	UpdateUser(ctx context.Context, id string, input entities.UpdateUserInput) (*entities.User, error)
	ListUsers(ctx context.Context, limit int) ([]entities.User, int, error)
	UserActivities(ctx context.Context, userID string, limit int) ([]entities.Activity, int, error)
}

// TeamUsecaseInterface abstracts team and membership operations.
type TeamUsecaseInterface interface {
	CreateTeam(ctx context.Context, input entities.CreateTeamInput) (*entities.Team, error)
	Team(ctx context.Context, id string) (*entities.Team, error)
	ListTeams(ctx context.Context, limit int) ([]entities.Team, int, error)
	TeamMembers(ctx context.Context, teamID string) ([]entities.TeamMember, int, error)
	AddTeamMember(ctx context.Context, input entities.AddMemberInput) (*entities.TeamMember, error)
}

// TaskUsecaseInterface abstracts task, history and deletion operations.
type TaskUsecaseInterface interface {
	CreateTask(ctx context.Context, input entities.CreateTaskInput) (*entities.Task, error)
	Task(ctx context.Context, id string) (*entities.Task, error)
	UpdateTask(ctx context.Context, id string, input entities.UpdateTaskInput) (*entities.Task, error)
	DeleteTask(ctx context.Context, id, actorID string) error
	ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, int, error)
	TaskHistory(ctx context.Context, taskID string) ([]entities.TaskHistoryEntry, error)
}

// ActivityUsecaseInterface abstracts read access to the activity log.
type ActivityUsecaseInterface interface {
	ListActivities(ctx context.Context, filter entities.ActivityFilter) ([]entities.Activity, int, error)
}
