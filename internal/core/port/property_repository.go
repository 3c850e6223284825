package port

import (
	"context"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

// PropertyRepositoryPort - доступ к объектам недвижимости.
// FindByID не возвращает мягко удаленные записи.
type PropertyRepositoryPort interface {
	FindByID(ctx context.Context, propertyID uuid.UUID) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
}
