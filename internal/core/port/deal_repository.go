package port

import (
	"context"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

type DealRepositoryPort interface {
	// Create возвращает domain.ErrActiveDealExists, если хранилище
	// отклонило вторую активную сделку по тому же объекту
	Create(ctx context.Context, deal *domain.Deal) error
	FindByID(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error)
	Update(ctx context.Context, deal *domain.Deal) error
	// FindActiveByPropertyID возвращает (nil, nil), если активной сделки нет
	FindActiveByPropertyID(ctx context.Context, propertyID uuid.UUID) (*domain.Deal, error)
}
