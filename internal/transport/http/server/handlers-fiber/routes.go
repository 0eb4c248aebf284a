package handlers_fiber

import "github.com/gofiber/fiber/v2"

// Register mounts all API routes under the versioned prefix.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/", h.CreateUser)
	users.Get("/", h.ListUsers)
	users.Get("/:id", h.GetUser)
	users.Patch("/:id", h.UpdateUser)
	users.Get("/:id/activities", h.UserActivities)

	teams := api.Group("/teams")
	teams.Post("/", h.CreateTeam)
	teams.Get("/", h.ListTeams)
	teams.Get("/:id", h.GetTeam)
	teams.Get("/:id/members", h.TeamMembers)
	teams.Post("/:id/members", h.AddTeamMember)

	tasks := api.Group("/tasks")
	tasks.Post("/", h.CreateTask)
	tasks.Get("/", h.ListTasks)
	tasks.Get("/:id", h.GetTask)
	tasks.Patch("/:id", h.UpdateTask)
	tasks.Delete("/:id", h.DeleteTask)
	tasks.Get("/:id/history", h.TaskHistory)

	api.Get("/activities", h.ListActivities)
}
