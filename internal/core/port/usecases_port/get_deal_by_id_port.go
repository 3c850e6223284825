package usecases_port

import (
	"context"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetDealByIDUseCasePort interface {
	Execute(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error)
}
