package usecase

import (
	"context"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

type GetDealByIDUseCase struct {
	deals port.DealRepositoryPort
}

func NewGetDealByIDUseCase(deals port.DealRepositoryPort) *GetDealByIDUseCase {
	return &GetDealByIDUseCase{deals: deals}
}

func (uc *GetDealByIDUseCase) Execute(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetDealByID",
		"deal_id":  dealID.String(),
	})

	deal, err := uc.deals.FindByID(ctx, dealID)
	if err != nil {
		ucLogger.Error("Repository failed to find deal", err, nil)
		return nil, err
	}
	return deal, nil
}
