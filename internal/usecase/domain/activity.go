// Package domain contains application usecases orchestrating domain logic by activity.
package domain

import (
	"context"
	"fmt"

	"taskboard/internal/entities"
)

// ListActivities returns committed activity entries newest-first plus the
// total count matching the filter. The log itself is written only as a side
// effect of mutations.
func (u *Usecase) ListActivities(ctx context.Context, filter entities.ActivityFilter) ([]entities.Activity, int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if filter.EntityType != "" {
		switch entities.EntityType(filter.EntityType) {
		case entities.EntityUser, entities.EntityTeam, entities.EntityTask, entities.EntityMembership:
		default:
			return nil, 0, fmt.Errorf("%w: entity_type %q is not valid", entities.ErrInvalidArgument, filter.EntityType)
		}
	}
	filter.Limit = normalizeLimit(filter.Limit)

	return u.repo.ListActivities(ctx, filter)
}
