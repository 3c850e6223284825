package usecases_port

import (
	"context"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

type AssignInquiryUseCasePort interface {
	Execute(ctx context.Context, inquiryID, agentID uuid.UUID) (*domain.Inquiry, error)
}
