// Package domain contains application usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/entities"

	"github.com/google/uuid"
)

// CreateTeam creates a team owned by an existing user. Ownership is not a
// membership: the owner gets no membership row.
func (u *Usecase) CreateTeam(ctx context.Context, input entities.CreateTeamInput) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(input.Name) == "" {
		u.log.Errorw("failed to create team: missing name")
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}
	if input.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner_id is required", entities.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	team := entities.Team{
		ID:        uuid.New().String(),
		Name:      input.Name,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	actor := input.ActorID
	if actor == "" {
		actor = input.OwnerID
	}
	act := newActivity(actor, entities.EntityTeam, team.ID, entities.ActionCreated, entities.TeamCreatedEvent{
		TeamID:    team.ID,
		Name:      team.Name,
		OwnerID:   team.OwnerID,
		CreatedAt: team.CreatedAt,
	})

	created, err := u.repo.CreateTeam(ctx, team, act)
	if err != nil {
		return nil, err
	}

	u.publish(act)
	return created, nil
}

// Team returns a team by id.
func (u *Usecase) Team(ctx context.Context, id string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id == "" {
		return nil, fmt.Errorf("%w: team id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetTeam(ctx, id)
}

// ListTeams returns teams newest-first plus the total team count.
func (u *Usecase) ListTeams(ctx context.Context, limit int) ([]entities.Team, int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListTeams(ctx, normalizeLimit(limit))
}

// TeamMembers returns membership rows for an existing team.
func (u *Usecase) TeamMembers(ctx context.Context, teamID string) ([]entities.TeamMember, int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if teamID == "" {
		return nil, 0, fmt.Errorf("%w: team id is required", entities.ErrInvalidArgument)
	}
	return u.repo.TeamMembers(ctx, teamID)
}

// AddTeamMember enrolls a user into a team. An empty role defaults to member;
// an unknown role is rejected before any write.
func (u *Usecase) AddTeamMember(ctx context.Context, input entities.AddMemberInput) (*entities.TeamMember, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if input.TeamID == "" {
		return nil, fmt.Errorf("%w: team id is required", entities.ErrInvalidArgument)
	}
	if input.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", entities.ErrInvalidArgument)
	}
	role := input.Role
	if role == "" {
		role = entities.RoleMember
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be one of member, admin, viewer", entities.ErrInvalidArgument)
	}

	member := entities.TeamMember{
		ID:        uuid.New().String(),
		TeamID:    input.TeamID,
		UserID:    input.UserID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	actor := input.ActorID
	if actor == "" {
		actor = input.UserID
	}
	act := newActivity(actor, entities.EntityMembership, member.ID, entities.ActionCreated, entities.MemberAddedEvent{
		TeamID:  member.TeamID,
		UserID:  member.UserID,
		Role:    member.Role,
		AddedAt: member.CreatedAt,
	})

	added, err := u.repo.AddTeamMember(ctx, member, act)
	if err != nil {
		return nil, err
	}

	u.publish(act)
	return added, nil
}
