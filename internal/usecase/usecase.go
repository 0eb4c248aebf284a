package usecase

import (
	"context"
	"time"

	"taskboard/internal/repository"
	"taskboard/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	UserUsecaseInterface
	TeamUsecaseInterface
	TaskUsecaseInterface
	ActivityUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, events domain.EventPublisher, timeout time.Duration) InterfaceUsecase {
	return domain.New(log, ctx, repo, events, timeout)
}
