package handlers_fiber

import (
	"net/http"

	"taskboard/internal/entities"
	"taskboard/internal/mapper"
	"taskboard/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// ListActivities returns a filtered page of the activity log, newest first.
func (h *Handler) ListActivities(c *fiber.Ctx) error {
	limit, err := queryLimit(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	acts, total, err := h.uc.ListActivities(c.Context(), entities.ActivityFilter{
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		UserID:     c.Query("user_id"),
		Limit:      limit,
	})
	if err != nil {
		h.log.Errorw("failed to list activities", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(dto.ListResponse[dto.Activity]{
		Items: mapper.ToDTOActivityList(acts),
		Total: total,
	})
}
