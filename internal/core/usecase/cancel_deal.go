package usecase

import (
	"context"
	"errors"
	"fmt"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

// CancelDealUseCase отменяет сделку и откатывает ее побочные эффекты:
// объект возвращается в продажу, закрытая заявка снова открывается
type CancelDealUseCase struct {
	transactor port.TransactorPort
	deals      port.DealRepositoryPort
	properties port.PropertyRepositoryPort
	inquiries  port.InquiryRepositoryPort
	events     port.DealEventsPort
	clock      port.ClockPort
}

func NewCancelDealUseCase(
	transactor port.TransactorPort,
	deals port.DealRepositoryPort,
	properties port.PropertyRepositoryPort,
	inquiries port.InquiryRepositoryPort,
	events port.DealEventsPort,
	clock port.ClockPort,
) *CancelDealUseCase {
	return &CancelDealUseCase{
		transactor: transactor,
		deals:      deals,
		properties: properties,
		inquiries:  inquiries,
		events:     events,
		clock:      clock,
	}
}

func (uc *CancelDealUseCase) Execute(ctx context.Context, dealID uuid.UUID, reason string) (*domain.Deal, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CancelDeal",
		"deal_id":  dealID.String(),
	})

	ucLogger.Info("Use case started: cancelling deal", nil)

	var deal *domain.Deal
	err := uc.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		deal, err = uc.deals.FindByID(txCtx, dealID)
		if err != nil {
			return err
		}

		if err := deal.Cancel(reason); err != nil {
			return err
		}
		if err := uc.deals.Update(txCtx, deal); err != nil {
			return fmt.Errorf("failed to update deal %s: %w", deal.ID, err)
		}

		property, err := uc.properties.FindByID(txCtx, deal.PropertyID)
		if err != nil {
			return fmt.Errorf("failed to load property %s: %w", deal.PropertyID, err)
		}
		property.RevertToPublished()
		if err := uc.properties.Update(txCtx, property); err != nil {
			return fmt.Errorf("failed to update property %s: %w", property.ID, err)
		}

		if deal.InquiryID != nil {
			if err := uc.reopenInquiry(txCtx, *deal.InquiryID, ucLogger); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		ucLogger.Error("Deal cancellation failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: deal cancelled", nil)
	publishDealEvent(ctx, uc.events, ucLogger, port.DealEventCancelled, deal, uc.clock.Now())

	return deal, nil
}

// reopenInquiry возвращает связанную заявку в работу, если она была закрыта.
// Давность закрытия значения не имеет.
func (uc *CancelDealUseCase) reopenInquiry(ctx context.Context, inquiryID uuid.UUID, logger port.LoggerPort) error {
	inquiry, err := uc.inquiries.FindByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, domain.ErrInquiryNotFound) {
			logger.Warn("Linked inquiry no longer exists, skipping reopen", port.Fields{"inquiry_id": inquiryID.String()})
			return nil
		}
		return fmt.Errorf("failed to load inquiry %s: %w", inquiryID, err)
	}

	if inquiry.Status != domain.InquiryStatusClosed {
		return nil
	}
	if err := inquiry.Reopen(); err != nil {
		return err
	}
	if err := uc.inquiries.Update(ctx, inquiry); err != nil {
		return fmt.Errorf("failed to reopen inquiry %s: %w", inquiry.ID, err)
	}
	return nil
}
