package port

import "time"

// ClockPort - источник текущего времени (UTC).
// Вынесен в порт, чтобы окно дедупликации просмотров и ClosedAt
// были детерминированы в тестах.
type ClockPort interface {
	Now() time.Time
}
