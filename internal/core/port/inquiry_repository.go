package port

import (
	"context"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

type InquiryRepositoryPort interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	FindByID(ctx context.Context, inquiryID uuid.UUID) (*domain.Inquiry, error)
	Update(ctx context.Context, inquiry *domain.Inquiry) error
}
