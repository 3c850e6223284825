package usecases_port

import (
	"context"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

type CloseInquiryUseCasePort interface {
	Execute(ctx context.Context, inquiryID uuid.UUID) (*domain.Inquiry, error)
}
