package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/contracts"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/port/usecases_port"
	"brokerage-service/pkg/rabbitmq/rabbitmq_common"
	"brokerage-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ViewEventsConsumerAdapter принимает события просмотров из очереди
// и прогоняет их через тот же use case, что и HTTP-роут.
type ViewEventsConsumerAdapter struct {
	consumer     *rabbitmq_consumer.DistributingConsumer
	recordViewUC usecases_port.RecordPropertyViewUseCasePort
	logger       port.LoggerPort
}

// NewViewEventsConsumerAdapter - конструктор.
func NewViewEventsConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	recordViewUC usecases_port.RecordPropertyViewUseCasePort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*ViewEventsConsumerAdapter, error) {
	adapter := &ViewEventsConsumerAdapter{
		recordViewUC: recordViewUC,
		logger:       logger,
	}

	// Логгер для pkg-уровня с контекстом нашего компонента
	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_distributing_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewDistributingConsumer(consumerCfg, adapter.messageHandler, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for property views: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

// messageHandler - приватный метод адаптера.
// Всегда возвращает nil: события просмотров не ретраятся,
// битое сообщение логируется и выбрасывается.
func (a *ViewEventsConsumerAdapter) messageHandler(d amqp.Delivery) error {
	traceID, ok := d.Headers["x-trace-id"].(string)
	if !ok || traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"delivery_tag": d.DeliveryTag,
	})

	ctx := context.Background()
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	eventType, _ := d.Headers["event-type"].(string)
	eventVersion, _ := d.Headers["event-version"].(string)

	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Warn("Dropping property view event that failed schema validation", port.Fields{"error": err.Error()})
		return nil
	}

	var eventDTO PropertyViewEventDTO
	if err := json.Unmarshal(d.Body, &eventDTO); err != nil {
		msgLogger.Warn("Dropping property view event with malformed body", port.Fields{"error": err.Error()})
		return nil
	}

	propertyID, err := uuid.Parse(eventDTO.PropertyID)
	if err != nil {
		msgLogger.Warn("Dropping property view event with invalid property_id", port.Fields{"provided_id": eventDTO.PropertyID})
		return nil
	}

	viewedAt, err := time.Parse(time.RFC3339, eventDTO.ViewedAt)
	if err != nil {
		msgLogger.Warn("Dropping property view event with invalid viewed_at", port.Fields{"provided": eventDTO.ViewedAt})
		return nil
	}

	a.recordViewUC.Execute(ctx, domain.RecordViewParams{
		PropertyID: propertyID,
		SessionID:  eventDTO.SessionID,
		IPAddress:  eventDTO.IPAddress,
		UserAgent:  eventDTO.UserAgent,
		OccurredAt: &viewedAt,
	})

	return nil
}

// Start реализует EventListenerPort
func (a *ViewEventsConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort
func (a *ViewEventsConsumerAdapter) Close() error {
	return a.consumer.Close()
}
