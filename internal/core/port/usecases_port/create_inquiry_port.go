package usecases_port

import (
	"context"

	"brokerage-service/internal/core/domain"
)

type CreateInquiryUseCasePort interface {
	Execute(ctx context.Context, params domain.CreateInquiryParams) (*domain.Inquiry, error)
}
