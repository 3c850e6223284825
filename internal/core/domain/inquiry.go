package domain

import (
	"time"

	"github.com/google/uuid"
)

// InquiryStatus - перечисление статусов заявки покупателя
type InquiryStatus string

const (
	InquiryStatusNew      InquiryStatus = "new"
	InquiryStatusAssigned InquiryStatus = "assigned"
	InquiryStatusClosed   InquiryStatus = "closed"
)

// Inquiry - заявка покупателя по конкретному объекту
type Inquiry struct {
	ID              uuid.UUID
	PropertyID      uuid.UUID
	BuyerName       string
	BuyerEmail      string
	Message         string
	Status          InquiryStatus
	AssignedAgentID *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateInquiryParams - входные данные для создания заявки
type CreateInquiryParams struct {
	PropertyID uuid.UUID
	BuyerName  string
	BuyerEmail string
	Message    string
}

// NewInquiry - конструктор новой заявки
func NewInquiry(params CreateInquiryParams, now time.Time) *Inquiry {
	return &Inquiry{
		ID:         uuid.New(),
		PropertyID: params.PropertyID,
		BuyerName:  params.BuyerName,
		BuyerEmail: params.BuyerEmail,
		Message:    params.Message,
		Status:     InquiryStatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Assign закрепляет заявку за агентом. Закрытую заявку назначать нельзя.
func (i *Inquiry) Assign(agentID uuid.UUID) error {
	if i.Status == InquiryStatusClosed {
		return NewInvalidStateError("inquiry", "closed inquiries cannot be assigned")
	}
	i.Status = InquiryStatusAssigned
	i.AssignedAgentID = &agentID
	return nil
}

// Close закрывает заявку (создание/завершение сделки или административное закрытие)
func (i *Inquiry) Close() error {
	if i.Status == InquiryStatusClosed {
		return NewInvalidStateError("inquiry", "inquiry is already closed")
	}
	i.Status = InquiryStatusClosed
	return nil
}

// Reopen возвращает закрытую заявку в работу при отмене связанной сделки.
// Статус до закрытия восстанавливается по наличию закрепленного агента.
func (i *Inquiry) Reopen() error {
	if i.Status != InquiryStatusClosed {
		return NewInvalidStateError("inquiry", "only closed inquiries can be reopened")
	}
	if i.AssignedAgentID != nil {
		i.Status = InquiryStatusAssigned
	} else {
		i.Status = InquiryStatusNew
	}
	return nil
}
