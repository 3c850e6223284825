package usecase

import (
	"context"
	"fmt"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

// UpdateDealTermsUseCase корректирует цену/ставку незавершенной сделки
// с пересчетом суммы комиссии
type UpdateDealTermsUseCase struct {
	deals port.DealRepositoryPort
}

func NewUpdateDealTermsUseCase(deals port.DealRepositoryPort) *UpdateDealTermsUseCase {
	return &UpdateDealTermsUseCase{deals: deals}
}

func (uc *UpdateDealTermsUseCase) Execute(ctx context.Context, dealID uuid.UUID, salePrice, commissionRate float64) (*domain.Deal, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "UpdateDealTerms",
		"deal_id":  dealID.String(),
	})

	ucLogger.Info("Use case started: updating deal terms", nil)

	deal, err := uc.deals.FindByID(ctx, dealID)
	if err != nil {
		ucLogger.Error("Repository failed to find deal", err, nil)
		return nil, err
	}

	if err := deal.UpdateTerms(salePrice, commissionRate); err != nil {
		ucLogger.Warn("Deal terms rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.deals.Update(ctx, deal); err != nil {
		ucLogger.Error("Repository failed to update deal", err, nil)
		return nil, fmt.Errorf("failed to update deal %s: %w", deal.ID, err)
	}

	ucLogger.Info("Use case finished: deal terms updated", port.Fields{
		"sale_price":        deal.SalePrice,
		"commission_amount": deal.CommissionAmount,
	})
	return deal, nil
}
