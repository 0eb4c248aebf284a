package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"taskboard/config"
	"taskboard/internal/entities"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserTeamIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	base := time.Now().UTC().Truncate(time.Millisecond)

	alice := newUser("alice@example.com", "Alice", base)
	created, err := repo.CreateUser(ctx, alice, newActAt(alice.ID, entities.EntityUser, alice.ID, entities.ActionCreated, base))
	require.NoError(t, err)
	require.Equal(t, alice.Email, created.Email)

	fetched, err := repo.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, alice.Name, fetched.Name)

	// Email uniqueness is case-insensitive.
	dup := newUser("ALICE@Example.com", "Another Alice", base.Add(time.Millisecond))
	_, err = repo.CreateUser(ctx, dup, newActAt(dup.ID, entities.EntityUser, dup.ID, entities.ActionCreated, base.Add(time.Millisecond)))
	require.ErrorIs(t, err, entities.ErrEmailExists)

	bob := newUser("bob@example.com", "Bob", base.Add(2*time.Millisecond))
	_, err = repo.CreateUser(ctx, bob, newActAt(bob.ID, entities.EntityUser, bob.ID, entities.ActionCreated, base.Add(2*time.Millisecond)))
	require.NoError(t, err)

	alice.Name = "Alice Cooper"
	alice.UpdatedAt = base.Add(3 * time.Millisecond)
	updated, err := repo.UpdateUser(ctx, alice, newActAt(alice.ID, entities.EntityUser, alice.ID, entities.ActionUpdated, base.Add(3*time.Millisecond)))
	require.NoError(t, err)
	require.Equal(t, "Alice Cooper", updated.Name)

	ghost := newUser("ghost@example.com", "Ghost", base)
	_, err = repo.UpdateUser(ctx, ghost, newActAt(ghost.ID, entities.EntityUser, ghost.ID, entities.ActionUpdated, base))
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	users, total, err := repo.ListUsers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, 2, total)

	// Team creation requires an existing owner and does not enroll them.
	badTeam := newTeam("orphans", "missing-owner", base)
	_, err = repo.CreateTeam(ctx, badTeam, newActAt("missing-owner", entities.EntityTeam, badTeam.ID, entities.ActionCreated, base))
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	team := newTeam("backend", alice.ID, base.Add(4*time.Millisecond))
	_, err = repo.CreateTeam(ctx, team, newActAt(alice.ID, entities.EntityTeam, team.ID, entities.ActionCreated, base.Add(4*time.Millisecond)))
	require.NoError(t, err)

	members, total, err := repo.TeamMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Empty(t, members)
	require.Zero(t, total)

	member := entities.TeamMember{
		ID:        uuid.New().String(),
		TeamID:    team.ID,
		UserID:    bob.ID,
		Role:      entities.RoleAdmin,
		CreatedAt: base.Add(5 * time.Millisecond),
	}
	added, err := repo.AddTeamMember(ctx, member, newActAt(bob.ID, entities.EntityMembership, member.ID, entities.ActionCreated, base.Add(5*time.Millisecond)))
	require.NoError(t, err)
	require.Equal(t, entities.RoleAdmin, added.Role)

	dupMember := entities.TeamMember{
		ID:        uuid.New().String(),
		TeamID:    team.ID,
		UserID:    bob.ID,
		Role:      entities.RoleMember,
		CreatedAt: base.Add(6 * time.Millisecond),
	}
	_, err = repo.AddTeamMember(ctx, dupMember, newActAt(bob.ID, entities.EntityMembership, dupMember.ID, entities.ActionCreated, base.Add(6*time.Millisecond)))
	require.ErrorIs(t, err, entities.ErrMembershipExists)

	members, total, err = repo.TeamMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, 1, total)

	_, _, err = repo.TeamMembers(ctx, "missing-team")
	require.ErrorIs(t, err, entities.ErrTeamNotFound)

	// Every mutation so far left exactly one activity entry.
	acts, total, err := repo.ListActivities(ctx, entities.ActivityFilter{Limit: 50})
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, acts, 5)
	for i := 1; i < len(acts); i++ {
		require.False(t, acts[i].CreatedAt.After(acts[i-1].CreatedAt))
	}

	aliceActs, total, err := repo.ListActivities(ctx, entities.ActivityFilter{UserID: alice.ID, Limit: 50})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	for _, a := range aliceActs {
		require.Equal(t, alice.ID, a.UserID)
	}
}

func TestTaskLifecycleIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	base := time.Now().UTC().Truncate(time.Millisecond)

	alice := newUser("alice@example.com", "Alice", base)
	_, err := repo.CreateUser(ctx, alice, newActAt(alice.ID, entities.EntityUser, alice.ID, entities.ActionCreated, base))
	require.NoError(t, err)

	// A dangling assignee is rejected before the write.
	dangling := newTask("broken", alice.ID, base)
	dangling.AssigneeID = "missing-user"
	_, err = repo.CreateTask(ctx, dangling, newActAt(alice.ID, entities.EntityTask, dangling.ID, entities.ActionCreated, base))
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	task := newTask("ship the release", alice.ID, base.Add(time.Millisecond))
	_, err = repo.CreateTask(ctx, task, newActAt(alice.ID, entities.EntityTask, task.ID, entities.ActionCreated, base.Add(time.Millisecond)))
	require.NoError(t, err)

	fetched, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusTodo, fetched.Status)
	require.Empty(t, fetched.AssigneeID)

	// One history row per changed field, committed with the update.
	changedAt := base.Add(2 * time.Millisecond)
	updatedTask := *fetched
	updatedTask.Status = entities.StatusInProgress
	updatedTask.AssigneeID = alice.ID
	updatedTask.UpdatedAt = changedAt
	history := []entities.TaskHistoryEntry{
		{ID: uuid.New().String(), TaskID: task.ID, UserID: alice.ID, Field: "status", OldValue: "todo", NewValue: "in_progress", ChangedAt: changedAt},
		{ID: uuid.New().String(), TaskID: task.ID, UserID: alice.ID, Field: "assignee_id", OldValue: "", NewValue: alice.ID, ChangedAt: changedAt},
	}
	_, err = repo.UpdateTask(ctx, updatedTask, history, newActAt(alice.ID, entities.EntityTask, task.ID, entities.ActionUpdated, changedAt))
	require.NoError(t, err)

	fetched, err = repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusInProgress, fetched.Status)
	require.Equal(t, alice.ID, fetched.AssigneeID)

	trail, err := repo.TaskHistory(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	require.Equal(t, "status", trail[0].Field)
	for i := 1; i < len(trail); i++ {
		require.False(t, trail[i].ChangedAt.Before(trail[i-1].ChangedAt))
	}

	// Updating a missing task locks nothing.
	missing := updatedTask
	missing.ID = "missing-task"
	_, err = repo.UpdateTask(ctx, missing, nil, newActAt(alice.ID, entities.EntityTask, "missing-task", entities.ActionUpdated, changedAt))
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	tasks, total, err := repo.ListTasks(ctx, entities.TaskFilter{Status: "in_progress", Limit: 10})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, 1, total)

	_, total, err = repo.ListTasks(ctx, entities.TaskFilter{Status: "done", Limit: 10})
	require.NoError(t, err)
	require.Zero(t, total)

	deletedAt := base.Add(3 * time.Millisecond)
	require.NoError(t, repo.DeleteTask(ctx, task.ID, newActAt(alice.ID, entities.EntityTask, task.ID, entities.ActionDeleted, deletedAt)))
	require.ErrorIs(t, repo.DeleteTask(ctx, task.ID, newActAt(alice.ID, entities.EntityTask, task.ID, entities.ActionDeleted, deletedAt)), entities.ErrTaskNotFound)

	_, err = repo.GetTask(ctx, task.ID)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	// History survives deletion; a task that never existed is distinguishable.
	trail, err = repo.TaskHistory(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)

	_, err = repo.TaskHistory(ctx, "never-existed")
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	acts, total, err := repo.ListActivities(ctx, entities.ActivityFilter{EntityType: "task", EntityID: task.ID, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, entities.ActionDeleted, acts[0].Action)
}

func newUser(email, name string, at time.Time) entities.User {
	return entities.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func newTeam(name, ownerID string, at time.Time) entities.Team {
	return entities.Team{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func newTask(title, creatorID string, at time.Time) entities.Task {
	return entities.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    entities.StatusTodo,
		Priority:  entities.PriorityMedium,
		CreatorID: creatorID,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func newActAt(actorID string, etype entities.EntityType, entityID string, action entities.ActionType, at time.Time) entities.Activity {
	return entities.Activity{
		ID:         uuid.New().String(),
		UserID:     actorID,
		EntityType: etype,
		EntityID:   entityID,
		Action:     action,
		CreatedAt:  at,
	}
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=taskboard_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "taskboard_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=taskboard_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
