package port

import (
	"context"
	"time"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

// ViewRepositoryPort - хранилище событий просмотров (append-only)
type ViewRepositoryPort interface {
	Insert(ctx context.Context, view *domain.PropertyView) error

	// HasRecentView проверяет, есть ли просмотр пары (объект, сессия)
	// с временем новее since
	HasRecentView(ctx context.Context, propertyID uuid.UUID, sessionID string, since time.Time) (bool, error)

	// AggregateByProperty группирует просмотры по объектам в границах дат
	// (nil-граница не ограничивает). Порядок строк не определен.
	AggregateByProperty(ctx context.Context, from, to *time.Time) ([]domain.MostViewedProperty, error)

	StatsByProperty(ctx context.Context, propertyID uuid.UUID, from, to *time.Time) (*domain.PropertyViewStats, error)
}
