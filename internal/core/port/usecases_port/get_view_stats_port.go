package usecases_port

import (
	"context"
	"time"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetViewStatsUseCasePort interface {
	Execute(ctx context.Context, propertyID uuid.UUID, from, to *time.Time) (*domain.PropertyViewStats, error)
}
