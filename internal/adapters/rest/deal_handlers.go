package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DealHandler - обработчики жизненного цикла сделок.
type DealHandler struct {
	createUC      usecases_port.CreateDealUseCasePort
	completeUC    usecases_port.CompleteDealUseCasePort
	cancelUC      usecases_port.CancelDealUseCasePort
	updateTermsUC usecases_port.UpdateDealTermsUseCasePort
	getByIDUC     usecases_port.GetDealByIDUseCasePort
}

// NewDealHandler - конструктор.
func NewDealHandler(
	createUC usecases_port.CreateDealUseCasePort,
	completeUC usecases_port.CompleteDealUseCasePort,
	cancelUC usecases_port.CancelDealUseCasePort,
	updateTermsUC usecases_port.UpdateDealTermsUseCasePort,
	getByIDUC usecases_port.GetDealByIDUseCasePort,
) *DealHandler {
	return &DealHandler{
		createUC:      createUC,
		completeUC:    completeUC,
		cancelUC:      cancelUC,
		updateTermsUC: updateTermsUC,
		getByIDUC:     getByIDUC,
	}
}

// CreateDeal обрабатывает POST /api/v1/deals
func (h *DealHandler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateDeal"})

	agentID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var reqDTO CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for create deal", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	propertyID, err := uuid.Parse(reqDTO.PropertyID)
	if err != nil {
		logger.Warn("Invalid property_id format in request", port.Fields{"provided_id": reqDTO.PropertyID})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property_id format")
		return
	}

	var inquiryID *uuid.UUID
	if reqDTO.InquiryID != nil {
		parsed, err := uuid.Parse(*reqDTO.InquiryID)
		if err != nil {
			logger.Warn("Invalid inquiry_id format in request", port.Fields{"provided_id": *reqDTO.InquiryID})
			WriteJSONError(w, http.StatusBadRequest, "Invalid inquiry_id format")
			return
		}
		inquiryID = &parsed
	}

	handlerLogger := logger.WithFields(port.Fields{
		"agent_id":    agentID,
		"property_id": propertyID,
	})
	handlerLogger.Info("Processing request to create deal", nil)

	deal, err := h.createUC.Execute(r.Context(), domain.CreateDealParams{
		PropertyID:     propertyID,
		AgentID:        agentID,
		InquiryID:      inquiryID,
		BuyerName:      reqDTO.BuyerName,
		BuyerEmail:     reqDTO.BuyerEmail,
		SalePrice:      reqDTO.SalePrice,
		CommissionRate: reqDTO.CommissionRate,
		Notes:          reqDTO.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) || errors.Is(err, domain.ErrInquiryNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, domain.ErrActiveDealExists) {
			WriteJSONError(w, http.StatusConflict, "Property already has an active deal")
			return
		}
		if errors.Is(err, domain.ErrInvalidDealTerms) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if domain.IsInvalidState(err) {
			WriteJSONError(w, http.StatusConflict, err.Error())
			return
		}
		handlerLogger.Error("Create deal use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create deal")
		return
	}

	handlerLogger.Info("Successfully created deal", port.Fields{"deal_id": deal.ID})
	RespondWithJSON(w, http.StatusCreated, toDealResponse(deal))
}

// CompleteDeal обрабатывает POST /api/v1/deals/{dealID}/complete
func (h *DealHandler) CompleteDeal(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CompleteDeal"})

	dealIDStr := chi.URLParam(r, "dealID")
	dealID, err := uuid.Parse(dealIDStr)
	if err != nil {
		logger.Warn("Invalid dealID in URL", port.Fields{"provided_id": dealIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid dealID in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"deal_id": dealID})
	handlerLogger.Info("Processing request to complete deal", nil)

	deal, err := h.completeUC.Execute(r.Context(), dealID)
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Deal not found")
			return
		}
		if domain.IsInvalidState(err) {
			WriteJSONError(w, http.StatusConflict, err.Error())
			return
		}
		handlerLogger.Error("Complete deal use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to complete deal")
		return
	}

	handlerLogger.Info("Successfully completed deal", nil)
	RespondWithJSON(w, http.StatusOK, toDealResponse(deal))
}

// CancelDeal обрабатывает POST /api/v1/deals/{dealID}/cancel
func (h *DealHandler) CancelDeal(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CancelDeal"})

	dealIDStr := chi.URLParam(r, "dealID")
	dealID, err := uuid.Parse(dealIDStr)
	if err != nil {
		logger.Warn("Invalid dealID in URL", port.Fields{"provided_id": dealIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid dealID in URL")
		return
	}

	var reqDTO CancelDealRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for cancel deal", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"deal_id": dealID})
	handlerLogger.Info("Processing request to cancel deal", nil)

	deal, err := h.cancelUC.Execute(r.Context(), dealID, reqDTO.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Deal not found")
			return
		}
		if domain.IsInvalidState(err) {
			WriteJSONError(w, http.StatusConflict, err.Error())
			return
		}
		handlerLogger.Error("Cancel deal use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to cancel deal")
		return
	}

	handlerLogger.Info("Successfully cancelled deal", nil)
	RespondWithJSON(w, http.StatusOK, toDealResponse(deal))
}

// UpdateDealTerms обрабатывает PATCH /api/v1/deals/{dealID}
func (h *DealHandler) UpdateDealTerms(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateDealTerms"})

	dealIDStr := chi.URLParam(r, "dealID")
	dealID, err := uuid.Parse(dealIDStr)
	if err != nil {
		logger.Warn("Invalid dealID in URL", port.Fields{"provided_id": dealIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid dealID in URL")
		return
	}

	var reqDTO UpdateDealTermsRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for update deal terms", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"deal_id": dealID})
	handlerLogger.Info("Processing request to update deal terms", nil)

	deal, err := h.updateTermsUC.Execute(r.Context(), dealID, reqDTO.SalePrice, reqDTO.CommissionRate)
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Deal not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidDealTerms) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if domain.IsInvalidState(err) {
			WriteJSONError(w, http.StatusConflict, err.Error())
			return
		}
		handlerLogger.Error("Update deal terms use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to update deal terms")
		return
	}

	handlerLogger.Info("Successfully updated deal terms", nil)
	RespondWithJSON(w, http.StatusOK, toDealResponse(deal))
}

// GetDealByID обрабатывает GET /api/v1/deals/{dealID}
func (h *DealHandler) GetDealByID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetDealByID"})

	dealIDStr := chi.URLParam(r, "dealID")
	dealID, err := uuid.Parse(dealIDStr)
	if err != nil {
		logger.Warn("Invalid dealID in URL", port.Fields{"provided_id": dealIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid dealID in URL")
		return
	}

	deal, err := h.getByIDUC.Execute(r.Context(), dealID)
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Deal not found")
			return
		}
		logger.Error("Get deal use case failed", err, port.Fields{"deal_id": dealID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve deal")
		return
	}

	RespondWithJSON(w, http.StatusOK, toDealResponse(deal))
}
