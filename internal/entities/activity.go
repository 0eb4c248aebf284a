// Package entities contains core business entities.
package entities

import "time"

// EntityType names the kind of record an activity entry refers to.
type EntityType string

const (
	// EntityUser marks activity on a user record.
	EntityUser EntityType = "user"
	// EntityTeam marks activity on a team record.
	EntityTeam EntityType = "team"
	// EntityTask marks activity on a task record.
	EntityTask EntityType = "task"
	// EntityMembership marks activity on a team membership.
	EntityMembership EntityType = "membership"
)

// ActionType names the mutation recorded by an activity entry.
type ActionType string

const (
	// ActionCreated records an entity creation.
	ActionCreated ActionType = "created"
	// ActionUpdated records an entity update.
	ActionUpdated ActionType = "updated"
	// ActionDeleted records an entity deletion.
	ActionDeleted ActionType = "deleted"
)

// Activity is an append-only audit record of a single mutation. UserID is the
// acting user and may be empty. Entries are never mutated or deleted.
type Activity struct {
	ID         string
	UserID     string
	EntityType EntityType
	EntityID   string
	Action     ActionType
	Metadata   string
	CreatedAt  time.Time
}

// ActivityFilter narrows activity listings. Zero-valued fields are ignored.
type ActivityFilter struct {
	EntityType string
	EntityID   string
	UserID     string
	Limit      int
}
