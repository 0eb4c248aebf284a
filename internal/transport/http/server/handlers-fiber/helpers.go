package handlers_fiber

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/internal/entities"
	"taskboard/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrTeamNotFound),
		errors.Is(err, entities.ErrTaskNotFound):
		status = http.StatusNotFound
		msg = "resource not found"
	case errors.Is(err, entities.ErrEmailExists):
		status = http.StatusConflict
		msg = "email already exists"
	case errors.Is(err, entities.ErrMembershipExists):
		status = http.StatusConflict
		msg = "user is already a member of this team"
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

func writeBadRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}

// queryLimit reads the optional limit query parameter. Zero means
// "use the service default".
func queryLimit(c *fiber.Ctx) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return limit, nil
}
