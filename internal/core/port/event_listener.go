package port

import "context"

// EventListenerPort - входящий слушатель событий (например, очередь просмотров)
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
