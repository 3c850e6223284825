package usecase

import (
	"context"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

// RecordPropertyViewUseCase записывает просмотр страницы объекта,
// подавляя повторы одной сессии внутри окна дедупликации.
//
// Аналитика best-effort: любая ошибка проглатывается и уходит только в лог,
// вызывающая операция (рендер страницы) никогда не падает из-за нее.
type RecordPropertyViewUseCase struct {
	views port.ViewRepositoryPort
	clock port.ClockPort
}

func NewRecordPropertyViewUseCase(views port.ViewRepositoryPort, clock port.ClockPort) *RecordPropertyViewUseCase {
	return &RecordPropertyViewUseCase{views: views, clock: clock}
}

func (uc *RecordPropertyViewUseCase) Execute(ctx context.Context, params domain.RecordViewParams) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "RecordPropertyView",
		"property_id": params.PropertyID.String(),
	})

	// Событие из очереди несет собственное время просмотра; запись
	// и окно дедупликации привязываются к нему, а не ко времени обработки
	viewedAt := uc.clock.Now()
	if params.OccurredAt != nil {
		viewedAt = *params.OccurredAt
	}

	// Пустая сессия - анонимный просмотр: дедуплицировать не по чему,
	// каждая запись вставляется
	if params.SessionID != "" {
		// check-then-insert без блокировки: в худшем случае гонка даст
		// один лишний просмотр, для аналитики это приемлемо
		since := viewedAt.Add(-domain.ViewDedupWindow)
		found, err := uc.views.HasRecentView(ctx, params.PropertyID, params.SessionID, since)
		if err != nil {
			ucLogger.Error("View dedup check failed, view dropped", err, nil)
			return
		}
		if found {
			ucLogger.Debug("Duplicate view within dedup window, skipping", port.Fields{"session_id": params.SessionID})
			return
		}
	}

	view := &domain.PropertyView{
		ID:         uuid.New(),
		PropertyID: params.PropertyID,
		SessionID:  optionalString(params.SessionID),
		IPAddress:  optionalString(params.IPAddress),
		UserAgent:  optionalString(params.UserAgent),
		ViewedAt:   viewedAt,
	}

	if err := uc.views.Insert(ctx, view); err != nil {
		ucLogger.Error("Failed to persist property view", err, nil)
		return
	}

	ucLogger.Debug("Property view recorded", nil)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
