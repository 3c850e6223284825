package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/port"
	"brokerage-service/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQDealEventsAdapter публикует события жизненного цикла сделок.
type RabbitMQDealEventsAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

// NewRabbitMQDealEventsAdapter создает новый экземпляр.
func NewRabbitMQDealEventsAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*RabbitMQDealEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &RabbitMQDealEventsAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

// PublishDealEvent отправляет событие сделки в обменник.
func (a *RabbitMQDealEventsAdapter) PublishDealEvent(ctx context.Context, event port.DealEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "RabbitMQDealEventsAdapter",
		"routing_key": a.routingKey,
		"event_type":  event.Type,
		"deal_id":     event.DealID.String(),
	})

	eventDTO := DealEventDTO{
		Type:       event.Type,
		DealID:     event.DealID.String(),
		PropertyID: event.PropertyID.String(),
		Status:     event.Status,
		OccurredAt: event.OccurredAt,
	}
	if event.InquiryID != nil {
		inquiryID := event.InquiryID.String()
		eventDTO.InquiryID = &inquiryID
	}

	eventJSON, err := json.Marshal(eventDTO)
	if err != nil {
		adapterLogger.Error("Failed to marshal deal event to JSON", err, nil)
		return fmt.Errorf("failed to marshal deal event to JSON: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         eventJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    "DealEvent",
			"event-version": "1.0.0",
		},
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish deal event", err, nil)
		return err
	}

	adapterLogger.Info("Successfully published deal event", nil)
	return nil
}
