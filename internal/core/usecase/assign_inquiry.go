package usecase

import (
	"context"
	"fmt"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

// AssignInquiryUseCase закрепляет заявку за агентом
type AssignInquiryUseCase struct {
	inquiries port.InquiryRepositoryPort
}

func NewAssignInquiryUseCase(inquiries port.InquiryRepositoryPort) *AssignInquiryUseCase {
	return &AssignInquiryUseCase{inquiries: inquiries}
}

func (uc *AssignInquiryUseCase) Execute(ctx context.Context, inquiryID, agentID uuid.UUID) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "AssignInquiry",
		"inquiry_id": inquiryID.String(),
		"agent_id":   agentID.String(),
	})

	inquiry, err := uc.inquiries.FindByID(ctx, inquiryID)
	if err != nil {
		ucLogger.Error("Repository failed to find inquiry", err, nil)
		return nil, err
	}

	if err := inquiry.Assign(agentID); err != nil {
		ucLogger.Warn("Inquiry assignment rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.inquiries.Update(ctx, inquiry); err != nil {
		ucLogger.Error("Repository failed to update inquiry", err, nil)
		return nil, fmt.Errorf("failed to update inquiry %s: %w", inquiry.ID, err)
	}

	ucLogger.Info("Inquiry assigned", nil)
	return inquiry, nil
}
