package usecases_port

import (
	"context"

	"brokerage-service/internal/core/domain"
)

type CreateDealUseCasePort interface {
	Execute(ctx context.Context, params domain.CreateDealParams) (*domain.Deal, error)
}
