package handlers_fiber

import (
	"errors"
	"net/http"

	"taskboard/internal/entities"
	"taskboard/internal/mapper"
	"taskboard/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateTask registers a new task.
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	var body dto.CreateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return writeBadRequest(c, "invalid body")
	}

	task, err := h.uc.CreateTask(c.Context(), mapper.FromDTOCreateTask(body))
	if err != nil {
		h.log.Errorw("failed to create task", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToDTOTask(*task))
}

// GetTask returns a single task by id.
func (h *Handler) GetTask(c *fiber.Ctx) error {
	id := c.Params("id")
	key := taskCacheKey(id)

	var cached dto.Task
	if err := h.cache.Get(c.Context(), key, &cached); err == nil {
		return c.Status(http.StatusOK).JSON(cached)
	}

	task, err := h.uc.Task(c.Context(), id)
	if err != nil {
		if !errors.Is(err, entities.ErrTaskNotFound) {
			h.log.Errorw("failed to get task", "error", err.Error())
		}
		return writeError(c, err)
	}

	resp := mapper.ToDTOTask(*task)
	if err := h.cache.Set(c.Context(), key, resp); err != nil {
		h.log.Warnw("failed to cache task", "error", err.Error())
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// UpdateTask applies a partial update to a task, recording field history.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")

	var body dto.UpdateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return writeBadRequest(c, "invalid body")
	}

	task, err := h.uc.UpdateTask(c.Context(), id, mapper.FromDTOUpdateTask(body))
	if err != nil {
		h.log.Errorw("failed to update task", "error", err.Error())
		return writeError(c, err)
	}

	if err := h.cache.Delete(c.Context(), taskCacheKey(id)); err != nil {
		h.log.Warnw("failed to invalidate task cache", "error", err.Error())
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTask(*task))
}

// DeleteTask removes a task. Its history and activity entries survive.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.uc.DeleteTask(c.Context(), id, c.Query("actor_id")); err != nil {
		h.log.Errorw("failed to delete task", "error", err.Error())
		return writeError(c, err)
	}

	if err := h.cache.Delete(c.Context(), taskCacheKey(id)); err != nil {
		h.log.Warnw("failed to invalidate task cache", "error", err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListTasks returns a filtered page of tasks with the total count.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	limit, err := queryLimit(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	tasks, total, err := h.uc.ListTasks(c.Context(), entities.TaskFilter{
		Status:     c.Query("status"),
		AssigneeID: c.Query("assignee_id"),
		TeamID:     c.Query("team_id"),
		Limit:      limit,
	})
	if err != nil {
		h.log.Errorw("failed to list tasks", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(dto.ListResponse[dto.Task]{
		Items: mapper.ToDTOTaskList(tasks),
		Total: total,
	})
}

// TaskHistory returns all field changes of a task in chronological order.
func (h *Handler) TaskHistory(c *fiber.Ctx) error {
	history, err := h.uc.TaskHistory(c.Context(), c.Params("id"))
	if err != nil {
		if !errors.Is(err, entities.ErrTaskNotFound) {
			h.log.Errorw("failed to get task history", "error", err.Error())
		}
		return writeError(c, err)
	}

	items := mapper.ToDTOHistoryList(history)
	return c.Status(http.StatusOK).JSON(dto.ListResponse[dto.TaskHistoryEntry]{
		Items: items,
		Total: len(items),
	})
}

func taskCacheKey(id string) string { return "task:" + id }
