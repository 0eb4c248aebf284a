// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"taskboard/internal/cache"
	"taskboard/internal/usecase"

	"go.uber.org/zap"
)

// Handler serves the JSON API using service layer interfaces.
type Handler struct {
	log   *zap.SugaredLogger
	uc    usecase.InterfaceUsecase
	cache cache.Cache
}

// NewHandler constructs an HTTP handler with service dependencies.
func NewHandler(log *zap.SugaredLogger, uc usecase.InterfaceUsecase, c cache.Cache) *Handler {
	return &Handler{
		log:   log,
		uc:    uc,
		cache: c,
	}
}
