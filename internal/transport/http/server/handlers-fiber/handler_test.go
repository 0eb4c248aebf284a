package handlers_fiber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskboard/internal/cache"
	"taskboard/internal/entities"
	"taskboard/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ucMock struct{ mock.Mock }

func (m *ucMock) CreateUser(ctx context.Context, input entities.CreateUserInput) (*entities.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *ucMock) User(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *ucMock) UpdateUser(ctx context.Context, id string, input entities.UpdateUserInput) (*entities.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *ucMock) ListUsers(ctx context.Context, limit int) ([]entities.User, int, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.User), args.Int(1), args.Error(2)
}

func (m *ucMock) UserActivities(ctx context.Context, userID string, limit int) ([]entities.Activity, int, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.Activity), args.Int(1), args.Error(2)
}

func (m *ucMock) CreateTeam(ctx context.Context, input entities.CreateTeamInput) (*entities.Team, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *ucMock) Team(ctx context.Context, id string) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *ucMock) ListTeams(ctx context.Context, limit int) ([]entities.Team, int, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.Team), args.Int(1), args.Error(2)
}

func (m *ucMock) TeamMembers(ctx context.Context, teamID string) ([]entities.TeamMember, int, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.TeamMember), args.Int(1), args.Error(2)
}

func (m *ucMock) AddTeamMember(ctx context.Context, input entities.AddMemberInput) (*entities.TeamMember, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamMember), args.Error(1)
}

func (m *ucMock) CreateTask(ctx context.Context, input entities.CreateTaskInput) (*entities.Task, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *ucMock) Task(ctx context.Context, id string) (*entities.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *ucMock) UpdateTask(ctx context.Context, id string, input entities.UpdateTaskInput) (*entities.Task, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *ucMock) DeleteTask(ctx context.Context, id, actorID string) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *ucMock) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.Task), args.Int(1), args.Error(2)
}

func (m *ucMock) TaskHistory(ctx context.Context, taskID string) ([]entities.TaskHistoryEntry, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TaskHistoryEntry), args.Error(1)
}

func (m *ucMock) ListActivities(ctx context.Context, filter entities.ActivityFilter) ([]entities.Activity, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.Activity), args.Int(1), args.Error(2)
}

func newTestApp(uc *ucMock) *fiber.App {
	app := fiber.New()
	h := NewHandler(zap.NewNop().Sugar(), uc, cache.Noop{})
	h.Register(app)
	return app
}

func TestListTasksEnvelope(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)

	uc.On("ListTasks", mock.Anything, entities.TaskFilter{Status: "todo", Limit: 5}).
		Return([]entities.Task{{ID: "t1", Title: "one", Status: entities.StatusTodo}}, 7, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?status=todo&limit=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ListResponse[dto.Task]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	require.Equal(t, 7, body.Total)
	require.Equal(t, "t1", body.Items[0].ID)
	uc.AssertExpectations(t)
}

func TestCreateUserReturns201(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)

	uc.On("CreateUser", mock.Anything, entities.CreateUserInput{Email: "alice@example.com", Name: "Alice"}).
		Return(&entities.User{ID: "u1", Email: "alice@example.com", Name: "Alice"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users",
		strings.NewReader(`{"email":"alice@example.com","name":"Alice"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "u1", body.ID)
	uc.AssertExpectations(t)
}

func TestGetTaskNotFound(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)

	uc.On("Task", mock.Anything, "missing").Return(nil, entities.ErrTaskNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestDeleteTaskReturns204(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)

	uc.On("DeleteTask", mock.Anything, "t1", "u9").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/t1?actor_id=u9", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestAddTeamMemberUsesPathTeamID(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)

	uc.On("AddTeamMember", mock.Anything, entities.AddMemberInput{TeamID: "team1", UserID: "u2", Role: "admin"}).
		Return(&entities.TeamMember{ID: "m1", TeamID: "team1", UserID: "u2", Role: entities.RoleAdmin}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/team1/members",
		strings.NewReader(`{"user_id":"u2","role":"admin"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.TeamMember
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "team1", body.TeamID)
	uc.AssertExpectations(t)
}
