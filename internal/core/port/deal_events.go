package port

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Типы доменных событий сделки
const (
	DealEventCreated   = "deal.created"
	DealEventCompleted = "deal.completed"
	DealEventCancelled = "deal.cancelled"
)

// DealEvent - событие жизненного цикла сделки для внешних потребителей
type DealEvent struct {
	Type       string
	DealID     uuid.UUID
	PropertyID uuid.UUID
	InquiryID  *uuid.UUID
	Status     string
	OccurredAt time.Time
}

// DealEventsPort - публикация событий сделки. Публикация выполняется
// после коммита транзакции; ошибка публикации не отменяет операцию.
type DealEventsPort interface {
	PublishDealEvent(ctx context.Context, event DealEvent) error
}
