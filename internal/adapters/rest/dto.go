package rest

import "time"

// CreateDealRequest - тело запроса на открытие сделки.
type CreateDealRequest struct {
	PropertyID     string  `json:"property_id"`
	InquiryID      *string `json:"inquiry_id,omitempty"`
	BuyerName      string  `json:"buyer_name"`
	BuyerEmail     string  `json:"buyer_email"`
	SalePrice      float64 `json:"sale_price"`
	CommissionRate float64 `json:"commission_rate"`
	Notes          string  `json:"notes,omitempty"`
}

// CancelDealRequest - тело запроса на отмену сделки.
type CancelDealRequest struct {
	Reason string `json:"reason"`
}

// UpdateDealTermsRequest - тело запроса на изменение условий сделки.
type UpdateDealTermsRequest struct {
	SalePrice      float64 `json:"sale_price"`
	CommissionRate float64 `json:"commission_rate"`
}

// DealResponse - представление сделки в ответе API.
type DealResponse struct {
	ID               string     `json:"id"`
	PropertyID       string     `json:"property_id"`
	InquiryID        *string    `json:"inquiry_id,omitempty"`
	AgentID          string     `json:"agent_id"`
	BuyerName        string     `json:"buyer_name"`
	BuyerEmail       string     `json:"buyer_email"`
	SalePrice        float64    `json:"sale_price"`
	CommissionRate   float64    `json:"commission_rate"`
	CommissionAmount float64    `json:"commission_amount"`
	Notes            string     `json:"notes,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
}

// CreateInquiryRequest - тело запроса на создание заявки покупателя.
type CreateInquiryRequest struct {
	PropertyID string `json:"property_id"`
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
	Message    string `json:"message"`
}

// AssignInquiryRequest - тело запроса на назначение агента.
type AssignInquiryRequest struct {
	AgentID string `json:"agent_id"`
}

// InquiryResponse - представление заявки в ответе API.
type InquiryResponse struct {
	ID              string    `json:"id"`
	PropertyID      string    `json:"property_id"`
	BuyerName       string    `json:"buyer_name"`
	BuyerEmail      string    `json:"buyer_email"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	AssignedAgentID *string   `json:"assigned_agent_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PropertyDetailsResponse - карточка объекта недвижимости.
type PropertyDetailsResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	ClosedDealID *string   `json:"closed_deal_id,omitempty"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MostViewedItemResponse - строка рейтинга просмотров.
type MostViewedItemResponse struct {
	PropertyID   string    `json:"property_id"`
	Title        string    `json:"title"`
	City         string    `json:"city"`
	ViewsCount   int64     `json:"views_count"`
	LastViewedAt time.Time `json:"last_viewed_at"`
}

// ViewStatsResponse - агрегированная статистика просмотров объекта.
type ViewStatsResponse struct {
	PropertyID     string     `json:"property_id"`
	TotalViews     int64      `json:"total_views"`
	UniqueSessions int64      `json:"unique_sessions"`
	LastViewedAt   *time.Time `json:"last_viewed_at,omitempty"`
}

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
