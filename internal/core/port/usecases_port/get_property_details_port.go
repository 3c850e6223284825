package usecases_port

import (
	"context"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetPropertyDetailsUseCasePort interface {
	Execute(ctx context.Context, propertyID uuid.UUID) (*domain.PropertyDetails, error)
}
