package rabbitmq

import "time"

// DealEventDTO - тело события жизненного цикла сделки.
type DealEventDTO struct {
	Type       string    `json:"type"`
	DealID     string    `json:"deal_id"`
	PropertyID string    `json:"property_id"`
	InquiryID  *string   `json:"inquiry_id,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PropertyViewEventDTO - тело входящего события просмотра.
type PropertyViewEventDTO struct {
	PropertyID string `json:"property_id"`
	SessionID  string `json:"session_id,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
	ViewedAt   string `json:"viewed_at"`
}
