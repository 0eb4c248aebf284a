package handlers_fiber

import (
	"errors"
	"net/http"

	"taskboard/internal/entities"
	"taskboard/internal/mapper"
	"taskboard/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateUser registers a new user.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var body dto.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return writeBadRequest(c, "invalid body")
	}

	usr, err := h.uc.CreateUser(c.Context(), entities.CreateUserInput{
		Email:   body.Email,
		Name:    body.Name,
		ActorID: body.ActorID,
	})
	if err != nil {
		h.log.Errorw("failed to create user", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToDTOUser(*usr))
}

// GetUser returns a single user by id.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	id := c.Params("id")
	key := userCacheKey(id)

	var cached dto.User
	if err := h.cache.Get(c.Context(), key, &cached); err == nil {
		return c.Status(http.StatusOK).JSON(cached)
	}

	usr, err := h.uc.User(c.Context(), id)
	if err != nil {
		if !errors.Is(err, entities.ErrUserNotFound) {
			h.log.Errorw("failed to get user", "error", err.Error())
		}
		return writeError(c, err)
	}

	resp := mapper.ToDTOUser(*usr)
	if err := h.cache.Set(c.Context(), key, resp); err != nil {
		h.log.Warnw("failed to cache user", "error", err.Error())
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// UpdateUser applies a partial update to a user.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var body dto.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return writeBadRequest(c, "invalid body")
	}

	usr, err := h.uc.UpdateUser(c.Context(), id, entities.UpdateUserInput{
		Email:   body.Email,
		Name:    body.Name,
		ActorID: body.ActorID,
	})
	if err != nil {
		h.log.Errorw("failed to update user", "error", err.Error())
		return writeError(c, err)
	}

	if err := h.cache.Delete(c.Context(), userCacheKey(id)); err != nil {
		h.log.Warnw("failed to invalidate user cache", "error", err.Error())
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOUser(*usr))
}

// ListUsers returns a page of users with the total count.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	limit, err := queryLimit(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	users, total, err := h.uc.ListUsers(c.Context(), limit)
	if err != nil {
		h.log.Errorw("failed to list users", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(dto.ListResponse[dto.User]{
		Items: mapper.ToDTOUserList(users),
		Total: total,
	})
}

// UserActivities returns the activity feed for one user.
func (h *Handler) UserActivities(c *fiber.Ctx) error {
	limit, err := queryLimit(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	acts, total, err := h.uc.UserActivities(c.Context(), c.Params("id"), limit)
	if err != nil {
		h.log.Errorw("failed to list user activities", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(dto.ListResponse[dto.Activity]{
		Items: mapper.ToDTOActivityList(acts),
		Total: total,
	})
}

func userCacheKey(id string) string { return "user:" + id }
