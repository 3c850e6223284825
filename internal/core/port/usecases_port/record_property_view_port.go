package usecases_port

import (
	"context"

	"brokerage-service/internal/core/domain"
)

// RecordPropertyViewUseCasePort - запись просмотра best-effort:
// ошибок наружу не возвращает вообще
type RecordPropertyViewUseCasePort interface {
	Execute(ctx context.Context, params domain.RecordViewParams)
}
