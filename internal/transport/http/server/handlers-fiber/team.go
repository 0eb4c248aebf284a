package handlers_fiber

import (
	"errors"
	"net/http"

	"taskboard/internal/entities"
	"taskboard/internal/mapper"
	"taskboard/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateTeam registers a new team.
func (h *Handler) CreateTeam(c *fiber.Ctx) error {
	var body dto.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return writeBadRequest(c, "invalid body")
	}

	team, err := h.uc.CreateTeam(c.Context(), entities.CreateTeamInput{
		Name:    body.Name,
		OwnerID: body.OwnerID,
		ActorID: body.ActorID,
	})
	if err != nil {
		h.log.Errorw("failed to create team", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToDTOTeam(*team))
}

// GetTeam returns a single team by id.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	id := c.Params("id")
	key := teamCacheKey(id)

	var cached dto.Team
	if err := h.cache.Get(c.Context(), key, &cached); err == nil {
		return c.Status(http.StatusOK).JSON(cached)
	}

	team, err := h.uc.Team(c.Context(), id)
	if err != nil {
		if !errors.Is(err, entities.ErrTeamNotFound) {
			h.log.Errorw("failed to get team", "error", err.Error())
		}
		return writeError(c, err)
	}

	resp := mapper.ToDTOTeam(*team)
	if err := h.cache.Set(c.Context(), key, resp); err != nil {
		h.log.Warnw("failed to cache team", "error", err.Error())
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// ListTeams returns a page of teams with the total count.
func (h *Handler) ListTeams(c *fiber.Ctx) error {
	limit, err := queryLimit(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	teams, total, err := h.uc.ListTeams(c.Context(), limit)
	if err != nil {
		h.log.Errorw("failed to list teams", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(dto.ListResponse[dto.Team]{
		Items: mapper.ToDTOTeamList(teams),
		Total: total,
	})
}

// TeamMembers returns all members of a team.
func (h *Handler) TeamMembers(c *fiber.Ctx) error {
	members, total, err := h.uc.TeamMembers(c.Context(), c.Params("id"))
	if err != nil {
		h.log.Errorw("failed to list team members", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(dto.ListResponse[dto.TeamMember]{
		Items: mapper.ToDTOMemberList(members),
		Total: total,
	})
}

// AddTeamMember enrolls a user into a team.
func (h *Handler) AddTeamMember(c *fiber.Ctx) error {
	var body dto.AddMemberRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return writeBadRequest(c, "invalid body")
	}

	member, err := h.uc.AddTeamMember(c.Context(), entities.AddMemberInput{
		TeamID:  c.Params("id"),
		UserID:  body.UserID,
		Role:    entities.MemberRole(body.Role),
		ActorID: body.ActorID,
	})
	if err != nil {
		h.log.Errorw("failed to add team member", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToDTOMember(*member))
}

func teamCacheKey(id string) string { return "team:" + id }
