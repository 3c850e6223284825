package usecase

import (
	"context"
	"fmt"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

// CloseInquiryUseCase - административное закрытие заявки без сделки
type CloseInquiryUseCase struct {
	inquiries port.InquiryRepositoryPort
}

func NewCloseInquiryUseCase(inquiries port.InquiryRepositoryPort) *CloseInquiryUseCase {
	return &CloseInquiryUseCase{inquiries: inquiries}
}

func (uc *CloseInquiryUseCase) Execute(ctx context.Context, inquiryID uuid.UUID) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "CloseInquiry",
		"inquiry_id": inquiryID.String(),
	})

	inquiry, err := uc.inquiries.FindByID(ctx, inquiryID)
	if err != nil {
		ucLogger.Error("Repository failed to find inquiry", err, nil)
		return nil, err
	}

	if err := inquiry.Close(); err != nil {
		ucLogger.Warn("Inquiry close rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.inquiries.Update(ctx, inquiry); err != nil {
		ucLogger.Error("Repository failed to update inquiry", err, nil)
		return nil, fmt.Errorf("failed to update inquiry %s: %w", inquiry.ID, err)
	}

	ucLogger.Info("Inquiry closed", nil)
	return inquiry, nil
}
