package usecases_port

import (
	"context"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

type CancelDealUseCasePort interface {
	Execute(ctx context.Context, dealID uuid.UUID, reason string) (*domain.Deal, error)
}
