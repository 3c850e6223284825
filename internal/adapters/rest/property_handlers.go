package rest

import (
	"errors"
	"net"
	"net/http"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PropertyHandler - обработчики карточек объектов и регистрации просмотров.
type PropertyHandler struct {
	detailsUC    usecases_port.GetPropertyDetailsUseCasePort
	recordViewUC usecases_port.RecordPropertyViewUseCasePort
}

// NewPropertyHandler - конструктор.
func NewPropertyHandler(
	detailsUC usecases_port.GetPropertyDetailsUseCasePort,
	recordViewUC usecases_port.RecordPropertyViewUseCasePort,
) *PropertyHandler {
	return &PropertyHandler{
		detailsUC:    detailsUC,
		recordViewUC: recordViewUC,
	}
}

// GetPropertyDetails обрабатывает GET /api/v1/properties/{propertyID}
func (h *PropertyHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPropertyDetails"})

	propertyIDStr := chi.URLParam(r, "propertyID")
	propertyID, err := uuid.Parse(propertyIDStr)
	if err != nil {
		logger.Warn("Invalid propertyID in URL", port.Fields{"provided_id": propertyIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid propertyID in URL")
		return
	}

	details, err := h.detailsUC.Execute(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		logger.Error("Get property details use case failed", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve property")
		return
	}

	p := details.Property
	RespondWithJSON(w, http.StatusOK, PropertyDetailsResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		City:         p.City,
		Address:      p.Address,
		Price:        p.Price,
		Status:       string(p.Status),
		ClosedDealID: uuidToStringPtr(p.ClosedDealID),
		Images:       details.ImageURLs,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	})
}

// RecordPropertyView обрабатывает POST /api/v1/properties/{propertyID}/views
// Запись просмотра не влияет на ответ: всегда 202, ошибки остаются в логах.
func (h *PropertyHandler) RecordPropertyView(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RecordPropertyView"})

	propertyIDStr := chi.URLParam(r, "propertyID")
	propertyID, err := uuid.Parse(propertyIDStr)
	if err != nil {
		logger.Warn("Invalid propertyID in URL", port.Fields{"provided_id": propertyIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid propertyID in URL")
		return
	}

	h.recordViewUC.Execute(r.Context(), domain.RecordViewParams{
		PropertyID: propertyID,
		SessionID:  sessionID(r),
		IPAddress:  clientIP(r),
		UserAgent:  r.UserAgent(),
	})

	w.WriteHeader(http.StatusAccepted)
}

// sessionID - сессия просмотра: явный токен сессии, а для авторизованного
// пользователя без него - идентификатор пользователя от API Gateway.
func sessionID(r *http.Request) string {
	if session := r.Header.Get("X-Session-ID"); session != "" {
		return session
	}
	if userID, err := uuid.Parse(r.Header.Get("X-User-ID")); err == nil {
		return userID.String()
	}
	return ""
}

// clientIP достает адрес клиента: заголовок от API Gateway, иначе RemoteAddr.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
