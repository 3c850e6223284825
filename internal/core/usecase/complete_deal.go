package usecase

import (
	"context"
	"fmt"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

// CompleteDealUseCase завершает сделку и помечает объект проданным
type CompleteDealUseCase struct {
	transactor port.TransactorPort
	deals      port.DealRepositoryPort
	properties port.PropertyRepositoryPort
	events     port.DealEventsPort
	clock      port.ClockPort
}

func NewCompleteDealUseCase(
	transactor port.TransactorPort,
	deals port.DealRepositoryPort,
	properties port.PropertyRepositoryPort,
	events port.DealEventsPort,
	clock port.ClockPort,
) *CompleteDealUseCase {
	return &CompleteDealUseCase{
		transactor: transactor,
		deals:      deals,
		properties: properties,
		events:     events,
		clock:      clock,
	}
}

func (uc *CompleteDealUseCase) Execute(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CompleteDeal",
		"deal_id":  dealID.String(),
	})

	ucLogger.Info("Use case started: completing deal", nil)

	var deal *domain.Deal
	err := uc.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		deal, err = uc.deals.FindByID(txCtx, dealID)
		if err != nil {
			return err
		}

		if err := deal.Complete(uc.clock.Now()); err != nil {
			return err
		}
		if err := uc.deals.Update(txCtx, deal); err != nil {
			return fmt.Errorf("failed to update deal %s: %w", deal.ID, err)
		}

		property, err := uc.properties.FindByID(txCtx, deal.PropertyID)
		if err != nil {
			return fmt.Errorf("failed to load property %s: %w", deal.PropertyID, err)
		}
		property.MarkSold()
		if err := uc.properties.Update(txCtx, property); err != nil {
			return fmt.Errorf("failed to update property %s: %w", property.ID, err)
		}
		return nil
	})
	if err != nil {
		ucLogger.Error("Deal completion failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: deal completed", nil)
	publishDealEvent(ctx, uc.events, ucLogger, port.DealEventCompleted, deal, uc.clock.Now())

	return deal, nil
}
