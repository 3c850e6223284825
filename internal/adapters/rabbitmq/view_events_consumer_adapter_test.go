package rabbitmq

import (
	"context"
	"testing"
	"time"

	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

type nopLogger struct{}

func (nopLogger) Info(string, port.Fields)         {}
func (nopLogger) Warn(string, port.Fields)         {}
func (nopLogger) Error(string, error, port.Fields) {}
func (nopLogger) Debug(string, port.Fields)        {}
func (n nopLogger) WithFields(port.Fields) port.LoggerPort {
	return n
}

type stubRecordViewUC struct {
	params domain.RecordViewParams
	called bool
}

func (s *stubRecordViewUC) Execute(_ context.Context, params domain.RecordViewParams) {
	s.params = params
	s.called = true
}

func viewDelivery(body string) amqp.Delivery {
	return amqp.Delivery{
		Body: []byte(body),
		Headers: amqp.Table{
			"event-type":    "PropertyViewEvent",
			"event-version": "1.0.0",
			"x-trace-id":    "trace-1",
		},
	}
}

func TestMessageHandler_PassesEventTimeThrough(t *testing.T) {
	recordUC := &stubRecordViewUC{}
	adapter := &ViewEventsConsumerAdapter{recordViewUC: recordUC, logger: nopLogger{}}

	body := `{
		"property_id": "0b0f1a2c-3d4e-5f60-7182-93a4b5c6d7e8",
		"session_id": "sess-1",
		"viewed_at": "2025-06-01T12:00:00Z"
	}`
	if err := adapter.messageHandler(viewDelivery(body)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !recordUC.called {
		t.Fatalf("expected use case to be called")
	}
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if recordUC.params.OccurredAt == nil || !recordUC.params.OccurredAt.Equal(want) {
		t.Fatalf("expected event time %v carried through, got %v", want, recordUC.params.OccurredAt)
	}
	if recordUC.params.SessionID != "sess-1" {
		t.Fatalf("expected session sess-1, got %q", recordUC.params.SessionID)
	}
}

func TestMessageHandler_DropsInvalidEvents(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing required field", `{"session_id": "sess-1"}`},
		{"bad property_id", `{"property_id": "not-a-uuid", "viewed_at": "2025-06-01T12:00:00Z"}`},
		{"malformed json", `{not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recordUC := &stubRecordViewUC{}
			adapter := &ViewEventsConsumerAdapter{recordViewUC: recordUC, logger: nopLogger{}}

			// Битое сообщение подтверждается и выбрасывается, не ретраится.
			if err := adapter.messageHandler(viewDelivery(tc.body)); err != nil {
				t.Fatalf("invalid event must be dropped without error, got %v", err)
			}
			if recordUC.called {
				t.Fatalf("use case must not run for an invalid event")
			}
		})
	}
}
