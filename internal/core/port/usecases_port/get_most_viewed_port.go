package usecases_port

import (
	"context"
	"time"

	"brokerage-service/internal/core/domain"
)

type GetMostViewedUseCasePort interface {
	Execute(ctx context.Context, topCount int, from, to *time.Time) ([]domain.MostViewedProperty, error)
}
