package handlers_fiber

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/entities"
	"taskboard/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		expected string
	}{
		{
			name:     "invalid_argument",
			err:      fmt.Errorf("%w: title is required", entities.ErrInvalidArgument),
			status:   http.StatusBadRequest,
			expected: "invalid argument: title is required",
		},
		{
			name:     "user_not_found",
			err:      entities.ErrUserNotFound,
			status:   http.StatusNotFound,
			expected: "resource not found",
		},
		{
			name:     "team_not_found",
			err:      entities.ErrTeamNotFound,
			status:   http.StatusNotFound,
			expected: "resource not found",
		},
		{
			name:     "task_not_found",
			err:      entities.ErrTaskNotFound,
			status:   http.StatusNotFound,
			expected: "resource not found",
		},
		{
			name:     "email_conflict",
			err:      entities.ErrEmailExists,
			status:   http.StatusConflict,
			expected: "email already exists",
		},
		{
			name:     "membership_conflict",
			err:      entities.ErrMembershipExists,
			status:   http.StatusConflict,
			expected: "user is already a member of this team",
		},
		{
			name:     "unknown",
			err:      fmt.Errorf("connection reset"),
			status:   http.StatusInternalServerError,
			expected: "internal error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.expected, body.Error)
		})
	}
}

func TestQueryLimit(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		limit, err := queryLimit(c)
		if err != nil {
			return writeBadRequest(c, err.Error())
		}
		return c.JSON(fiber.Map{"limit": limit})
	})

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{name: "absent", query: "", status: http.StatusOK},
		{name: "valid", query: "?limit=50", status: http.StatusOK},
		{name: "not_a_number", query: "?limit=abc", status: http.StatusBadRequest},
		{name: "negative", query: "?limit=-1", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
