package domain

import (
	"context"
	"encoding/json"
	"time"

	"taskboard/internal/entities"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// EventPublisher delivers committed activity entries to interested consumers.
// Delivery is best effort and never affects the outcome of a mutation.
type EventPublisher interface {
	PublishActivity(ctx context.Context, act entities.Activity) error
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx     context.Context
	log     *zap.SugaredLogger
	repo    repository.Repository
	events  EventPublisher
	timeout time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	events EventPublisher,
	timeout time.Duration,
) *Usecase {
	return &Usecase{
		ctx:     ctx,
		log:     log,
		repo:    repo,
		events:  events,
		timeout: timeout,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// normalizeLimit bounds listing cost: a missing limit falls back to the
// default page size, an oversized one is capped.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// newActivity builds the audit entry committed alongside a mutation.
func newActivity(actorID string, etype entities.EntityType, entityID string, action entities.ActionType, meta any) entities.Activity {
	payload, err := json.Marshal(meta)
	if err != nil {
		payload = nil
	}
	return entities.Activity{
		ID:         uuid.New().String(),
		UserID:     actorID,
		EntityType: etype,
		EntityID:   entityID,
		Action:     action,
		Metadata:   string(payload),
		CreatedAt:  time.Now().UTC(),
	}
}

// publish forwards a committed activity entry to the event publisher. Uses
// the base context so delivery is not tied to the request lifetime.
func (u *Usecase) publish(act entities.Activity) {
	if err := u.events.PublishActivity(u.ctx, act); err != nil {
		u.log.Errorw("failed to publish activity event", "error", err, "entity_type", act.EntityType, "entity_id", act.EntityID)
	}
}
