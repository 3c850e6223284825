package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// ParseTimeRange читает опциональные query-параметры from/to в формате RFC3339.
func ParseTimeRange(r *http.Request) (from, to *time.Time, err error) {
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		t, parseErr := time.Parse(time.RFC3339, fromStr)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		from = &t
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		t, parseErr := time.Parse(time.RFC3339, toStr)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		to = &t
	}
	return from, to, nil
}

func uuidToStringPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toDealResponse(deal *domain.Deal) DealResponse {
	return DealResponse{
		ID:               deal.ID.String(),
		PropertyID:       deal.PropertyID.String(),
		InquiryID:        uuidToStringPtr(deal.InquiryID),
		AgentID:          deal.AgentID.String(),
		BuyerName:        deal.BuyerName,
		BuyerEmail:       deal.BuyerEmail,
		SalePrice:        deal.SalePrice,
		CommissionRate:   deal.CommissionRate,
		CommissionAmount: deal.CommissionAmount,
		Notes:            deal.Notes,
		Status:           string(deal.Status),
		CreatedAt:        deal.CreatedAt,
		ClosedAt:         deal.ClosedAt,
	}
}

func toInquiryResponse(inquiry *domain.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:              inquiry.ID.String(),
		PropertyID:      inquiry.PropertyID.String(),
		BuyerName:       inquiry.BuyerName,
		BuyerEmail:      inquiry.BuyerEmail,
		Message:         inquiry.Message,
		Status:          string(inquiry.Status),
		AssignedAgentID: uuidToStringPtr(inquiry.AssignedAgentID),
		CreatedAt:       inquiry.CreatedAt,
		UpdatedAt:       inquiry.UpdatedAt,
	}
}
