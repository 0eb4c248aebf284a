// Package entities contains core business entities.
package entities

import "time"

// Team groups users under an owner. The owner reference is not a membership
// row.
type Team struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberRole enumerates membership roles within a team.
type MemberRole string

const (
	// RoleMember is the default membership role.
	RoleMember MemberRole = "member"
	// RoleAdmin marks a team administrator.
	RoleAdmin MemberRole = "admin"
	// RoleViewer marks a read-only member.
	RoleViewer MemberRole = "viewer"
)

// Valid reports whether the role is one of the known values.
func (r MemberRole) Valid() bool {
	switch r {
	case RoleMember, RoleAdmin, RoleViewer:
		return true
	}
	return false
}

// TeamMember is the (team, user, role) relation. At most one row exists per
// (TeamID, UserID) pair.
type TeamMember struct {
	ID        string
	TeamID    string
	UserID    string
	Role      MemberRole
	CreatedAt time.Time
}

// CreateTeamInput carries fields for team creation.
type CreateTeamInput struct {
	Name    string
	OwnerID string
	ActorID string
}

// AddMemberInput carries fields for enrolling a user into a team.
type AddMemberInput struct {
	TeamID  string
	UserID  string
	Role    MemberRole
	ActorID string
}
