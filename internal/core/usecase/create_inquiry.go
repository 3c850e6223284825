package usecase

import (
	"context"
	"fmt"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
)

// CreateInquiryUseCase регистрирует заявку покупателя по объекту
type CreateInquiryUseCase struct {
	inquiries  port.InquiryRepositoryPort
	properties port.PropertyRepositoryPort
	clock      port.ClockPort
}

func NewCreateInquiryUseCase(inquiries port.InquiryRepositoryPort, properties port.PropertyRepositoryPort, clock port.ClockPort) *CreateInquiryUseCase {
	return &CreateInquiryUseCase{inquiries: inquiries, properties: properties, clock: clock}
}

func (uc *CreateInquiryUseCase) Execute(ctx context.Context, params domain.CreateInquiryParams) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateInquiry",
		"property_id": params.PropertyID.String(),
	})

	ucLogger.Info("Use case started: creating inquiry", nil)

	if _, err := uc.properties.FindByID(ctx, params.PropertyID); err != nil {
		ucLogger.Warn("Property lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	inquiry := domain.NewInquiry(params, uc.clock.Now())
	if err := uc.inquiries.Create(ctx, inquiry); err != nil {
		ucLogger.Error("Repository failed to create inquiry", err, nil)
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	ucLogger.Info("Use case finished: inquiry created", port.Fields{"inquiry_id": inquiry.ID.String()})
	return inquiry, nil
}
