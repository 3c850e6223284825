package domain

import (
	"time"

	"github.com/google/uuid"
)

// PropertyStatus - перечисление маркетинговых статусов объекта
type PropertyStatus string

const (
	PropertyStatusDraft      PropertyStatus = "draft"
	PropertyStatusPublished  PropertyStatus = "published"
	PropertyStatusUnderOffer PropertyStatus = "under_offer"
	PropertyStatusSold       PropertyStatus = "sold"
)

// Property - доменная сущность объекта недвижимости.
// Статус и ClosedDealID меняются только через жизненный цикл сделки.
type Property struct {
	ID           uuid.UUID
	Title        string
	Description  string
	City         string
	Address      string
	Price        float64
	Status       PropertyStatus
	ClosedDealID *uuid.UUID
	Images       []string
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MarkUnderOffer переводит объект "под предложение" и привязывает его к сделке
func (p *Property) MarkUnderOffer(dealID uuid.UUID) {
	p.Status = PropertyStatusUnderOffer
	p.ClosedDealID = &dealID
}

// MarkSold фиксирует продажу объекта. Ссылка на сделку остается.
func (p *Property) MarkSold() {
	p.Status = PropertyStatusSold
}

// RevertToPublished возвращает объект в продажу и очищает ссылку на сделку.
// Вызывается при отмене сделки; повторный вызов безопасен.
func (p *Property) RevertToPublished() {
	p.Status = PropertyStatusPublished
	p.ClosedDealID = nil
}

// PropertyDetails - карточка объекта для выдачи наружу:
// сохраненные пути изображений уже превращены в публичные URL
type PropertyDetails struct {
	Property  Property
	ImageURLs []string
}
