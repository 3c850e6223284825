package usecase

import (
	"context"
	"fmt"
	"time"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
)

// CreateDealUseCase создает сделку и синхронно переводит связанный объект
// и заявку в новые статусы внутри одной транзакции
type CreateDealUseCase struct {
	transactor port.TransactorPort
	deals      port.DealRepositoryPort
	properties port.PropertyRepositoryPort
	inquiries  port.InquiryRepositoryPort
	events     port.DealEventsPort
	clock      port.ClockPort
}

func NewCreateDealUseCase(
	transactor port.TransactorPort,
	deals port.DealRepositoryPort,
	properties port.PropertyRepositoryPort,
	inquiries port.InquiryRepositoryPort,
	events port.DealEventsPort,
	clock port.ClockPort,
) *CreateDealUseCase {
	return &CreateDealUseCase{
		transactor: transactor,
		deals:      deals,
		properties: properties,
		inquiries:  inquiries,
		events:     events,
		clock:      clock,
	}
}

func (uc *CreateDealUseCase) Execute(ctx context.Context, params domain.CreateDealParams) (*domain.Deal, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateDeal",
		"property_id": params.PropertyID.String(),
		"agent_id":    params.AgentID.String(),
	})

	ucLogger.Info("Use case started: creating deal", nil)

	deal, err := domain.NewDeal(params, uc.clock.Now())
	if err != nil {
		ucLogger.Warn("Deal parameters rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	err = uc.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		property, err := uc.properties.FindByID(txCtx, params.PropertyID)
		if err != nil {
			return fmt.Errorf("failed to load property %s: %w", params.PropertyID, err)
		}

		// Проверка уникальности активной сделки по текущему зафиксированному
		// состоянию; остаточное окно гонки закрывает частичный уникальный
		// индекс в хранилище
		active, err := uc.deals.FindActiveByPropertyID(txCtx, params.PropertyID)
		if err != nil {
			return fmt.Errorf("failed to check active deal for property %s: %w", params.PropertyID, err)
		}
		if active != nil {
			return domain.ErrActiveDealExists
		}

		if params.InquiryID != nil {
			inquiry, err := uc.inquiries.FindByID(txCtx, *params.InquiryID)
			if err != nil {
				return fmt.Errorf("failed to load inquiry %s: %w", *params.InquiryID, err)
			}
			if inquiry.Status != domain.InquiryStatusClosed {
				if err := inquiry.Close(); err != nil {
					return err
				}
				if err := uc.inquiries.Update(txCtx, inquiry); err != nil {
					return fmt.Errorf("failed to close inquiry %s: %w", inquiry.ID, err)
				}
			}
		}

		property.MarkUnderOffer(deal.ID)
		if err := uc.properties.Update(txCtx, property); err != nil {
			return fmt.Errorf("failed to update property %s: %w", property.ID, err)
		}

		if err := uc.deals.Create(txCtx, deal); err != nil {
			return fmt.Errorf("failed to create deal: %w", err)
		}
		return nil
	})
	if err != nil {
		ucLogger.Error("Deal creation failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: deal created", port.Fields{"deal_id": deal.ID.String()})
	publishDealEvent(ctx, uc.events, ucLogger, port.DealEventCreated, deal, uc.clock.Now())

	return deal, nil
}

// publishDealEvent публикует событие после коммита.
// Ошибка публикации логируется и не возвращается: операция уже успешна.
func publishDealEvent(ctx context.Context, events port.DealEventsPort, logger port.LoggerPort, eventType string, deal *domain.Deal, now time.Time) {
	if events == nil {
		return
	}
	event := port.DealEvent{
		Type:       eventType,
		DealID:     deal.ID,
		PropertyID: deal.PropertyID,
		InquiryID:  deal.InquiryID,
		Status:     string(deal.Status),
		OccurredAt: now,
	}
	if err := events.PublishDealEvent(ctx, event); err != nil {
		logger.Error("Failed to publish deal event", err, port.Fields{"event_type": eventType})
	}
}
