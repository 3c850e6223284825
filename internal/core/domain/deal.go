package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DealStatus - перечисление статусов сделки
type DealStatus string

const (
	DealStatusPending   DealStatus = "pending"
	DealStatusCompleted DealStatus = "completed"
	DealStatusCancelled DealStatus = "cancelled"
)

// cancellationNotesLabel - заголовок секции с причиной отмены в заметках
const cancellationNotesLabel = "--- Cancelled ---"

// Deal - сделка, связывающая объект, агента и (опционально) заявку.
// Completed и Cancelled - терминальные статусы.
type Deal struct {
	ID               uuid.UUID
	PropertyID       uuid.UUID
	InquiryID        *uuid.UUID
	AgentID          uuid.UUID
	BuyerName        string
	BuyerEmail       string
	SalePrice        float64
	CommissionRate   float64
	CommissionAmount float64
	Notes            string
	Status           DealStatus
	CreatedAt        time.Time
	ClosedAt         *time.Time
}

// CreateDealParams - входные данные для создания сделки
type CreateDealParams struct {
	PropertyID     uuid.UUID
	AgentID        uuid.UUID
	InquiryID      *uuid.UUID
	BuyerName      string
	BuyerEmail     string
	SalePrice      float64
	CommissionRate float64
	Notes          string
}

// CalculateCommission вычисляет сумму комиссии из цены и ставки
func CalculateCommission(salePrice, commissionRate float64) float64 {
	return salePrice * commissionRate / 100
}

// NewDeal - конструктор новой сделки в статусе pending.
// Сумма комиссии вычисляется здесь и не пересчитывается лениво.
func NewDeal(params CreateDealParams, now time.Time) (*Deal, error) {
	if params.SalePrice <= 0 {
		return nil, fmt.Errorf("%w: sale price must be positive", ErrInvalidDealTerms)
	}
	if params.CommissionRate < 0 || params.CommissionRate > 100 {
		return nil, fmt.Errorf("%w: commission rate must be between 0 and 100", ErrInvalidDealTerms)
	}

	return &Deal{
		ID:               uuid.New(),
		PropertyID:       params.PropertyID,
		InquiryID:        params.InquiryID,
		AgentID:          params.AgentID,
		BuyerName:        params.BuyerName,
		BuyerEmail:       params.BuyerEmail,
		SalePrice:        params.SalePrice,
		CommissionRate:   params.CommissionRate,
		CommissionAmount: CalculateCommission(params.SalePrice, params.CommissionRate),
		Notes:            params.Notes,
		Status:           DealStatusPending,
		CreatedAt:        now,
	}, nil
}

// Complete завершает сделку. Допустимо только из статуса pending.
func (d *Deal) Complete(now time.Time) error {
	if d.Status != DealStatusPending {
		return NewInvalidStateError("deal", fmt.Sprintf("deal in status '%s' cannot be completed", d.Status))
	}
	d.Status = DealStatusCompleted
	d.ClosedAt = &now
	return nil
}

// Cancel отменяет сделку. Завершенную сделку отменить нельзя,
// повторная отмена - тоже ошибка, чтобы вызывающий ее заметил.
// Причина дописывается в заметки отдельной секцией, не затирая старые.
func (d *Deal) Cancel(reason string) error {
	switch d.Status {
	case DealStatusCompleted:
		return NewInvalidStateError("deal", "completed deals cannot be cancelled")
	case DealStatusCancelled:
		return NewInvalidStateError("deal", "deal is already cancelled")
	}

	d.Status = DealStatusCancelled
	if reason != "" {
		if d.Notes != "" {
			d.Notes += "\n\n"
		}
		d.Notes += cancellationNotesLabel + "\n" + reason
	}
	return nil
}

// UpdateTerms корректирует цену и ставку комиссии у незавершенной сделки,
// пересчитывая производную сумму комиссии
func (d *Deal) UpdateTerms(salePrice, commissionRate float64) error {
	if d.Status != DealStatusPending {
		return NewInvalidStateError("deal", fmt.Sprintf("terms of a deal in status '%s' cannot be updated", d.Status))
	}
	if salePrice <= 0 {
		return fmt.Errorf("%w: sale price must be positive", ErrInvalidDealTerms)
	}
	if commissionRate < 0 || commissionRate > 100 {
		return fmt.Errorf("%w: commission rate must be between 0 and 100", ErrInvalidDealTerms)
	}

	d.SalePrice = salePrice
	d.CommissionRate = commissionRate
	d.CommissionAmount = CalculateCommission(salePrice, commissionRate)
	return nil
}
