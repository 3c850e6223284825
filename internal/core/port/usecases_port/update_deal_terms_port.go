package usecases_port

import (
	"context"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

type UpdateDealTermsUseCasePort interface {
	Execute(ctx context.Context, dealID uuid.UUID, salePrice, commissionRate float64) (*domain.Deal, error)
}
