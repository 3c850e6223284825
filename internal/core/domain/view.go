package domain

import (
	"time"

	"github.com/google/uuid"
)

// ViewDedupWindow - окно, внутри которого повторный просмотр
// той же сессии по тому же объекту не сохраняется
const ViewDedupWindow = 30 * time.Minute

// PropertyView - одно событие просмотра страницы объекта.
// Записи append-only и читаются только в агрегатах.
type PropertyView struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	SessionID  *string
	IPAddress  *string
	UserAgent  *string
	ViewedAt   time.Time
}

// RecordViewParams - входные данные для записи просмотра.
// Пустой SessionID означает анонимный просмотр без дедупликации.
// OccurredAt - время просмотра у источника (событие из очереди);
// nil означает "сейчас".
type RecordViewParams struct {
	PropertyID uuid.UUID
	SessionID  string
	IPAddress  string
	UserAgent  string
	OccurredAt *time.Time
}

// MostViewedProperty - строка рейтинга самых просматриваемых объектов
type MostViewedProperty struct {
	PropertyID   uuid.UUID
	Title        string
	City         string
	ViewsCount   int64
	LastViewedAt time.Time
}

// PropertyViewStats - агрегированная статистика просмотров одного объекта
type PropertyViewStats struct {
	PropertyID     uuid.UUID
	TotalViews     int64
	UniqueSessions int64
	LastViewedAt   *time.Time
}
