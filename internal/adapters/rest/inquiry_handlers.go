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

// InquiryHandler - обработчики заявок покупателей.
type InquiryHandler struct {
	createUC usecases_port.CreateInquiryUseCasePort
	assignUC usecases_port.AssignInquiryUseCasePort
	closeUC  usecases_port.CloseInquiryUseCasePort
}

// NewInquiryHandler - конструктор.
func NewInquiryHandler(
	createUC usecases_port.CreateInquiryUseCasePort,
	assignUC usecases_port.AssignInquiryUseCasePort,
	closeUC usecases_port.CloseInquiryUseCasePort,
) *InquiryHandler {
	return &InquiryHandler{
		createUC: createUC,
		assignUC: assignUC,
		closeUC:  closeUC,
	}
}

// CreateInquiry обрабатывает POST /api/v1/inquiries (публичный роут)
func (h *InquiryHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateInquiry"})

	var reqDTO CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for create inquiry", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	propertyID, err := uuid.Parse(reqDTO.PropertyID)
	if err != nil {
		logger.Warn("Invalid property_id format in request", port.Fields{"provided_id": reqDTO.PropertyID})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property_id format")
		return
	}

	if reqDTO.BuyerName == "" || reqDTO.BuyerEmail == "" {
		WriteJSONError(w, http.StatusBadRequest, "buyer_name and buyer_email are required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"property_id": propertyID})
	handlerLogger.Info("Processing request to create inquiry", nil)

	inquiry, err := h.createUC.Execute(r.Context(), domain.CreateInquiryParams{
		PropertyID: propertyID,
		BuyerName:  reqDTO.BuyerName,
		BuyerEmail: reqDTO.BuyerEmail,
		Message:    reqDTO.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		handlerLogger.Error("Create inquiry use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create inquiry")
		return
	}

	handlerLogger.Info("Successfully created inquiry", port.Fields{"inquiry_id": inquiry.ID})
	RespondWithJSON(w, http.StatusCreated, toInquiryResponse(inquiry))
}

// AssignInquiry обрабатывает POST /api/v1/inquiries/{inquiryID}/assign
func (h *InquiryHandler) AssignInquiry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AssignInquiry"})

	inquiryIDStr := chi.URLParam(r, "inquiryID")
	inquiryID, err := uuid.Parse(inquiryIDStr)
	if err != nil {
		logger.Warn("Invalid inquiryID in URL", port.Fields{"provided_id": inquiryIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid inquiryID in URL")
		return
	}

	var reqDTO AssignInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for assign inquiry", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Если агент не указан явно, назначаем заявку на текущего пользователя.
	agentID, err := uuid.Parse(reqDTO.AgentID)
	if err != nil {
		fromCtx, ok := r.Context().Value(userIDKey).(uuid.UUID)
		if !ok {
			logger.Warn("Invalid agent_id format in request", port.Fields{"provided_id": reqDTO.AgentID})
			WriteJSONError(w, http.StatusBadRequest, "Invalid agent_id format")
			return
		}
		agentID = fromCtx
	}

	handlerLogger := logger.WithFields(port.Fields{
		"inquiry_id": inquiryID,
		"agent_id":   agentID,
	})
	handlerLogger.Info("Processing request to assign inquiry", nil)

	inquiry, err := h.assignUC.Execute(r.Context(), inquiryID, agentID)
	if err != nil {
		if errors.Is(err, domain.ErrInquiryNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Inquiry not found")
			return
		}
		if domain.IsInvalidState(err) {
			WriteJSONError(w, http.StatusConflict, err.Error())
			return
		}
		handlerLogger.Error("Assign inquiry use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to assign inquiry")
		return
	}

	handlerLogger.Info("Successfully assigned inquiry", nil)
	RespondWithJSON(w, http.StatusOK, toInquiryResponse(inquiry))
}

// CloseInquiry обрабатывает POST /api/v1/inquiries/{inquiryID}/close
func (h *InquiryHandler) CloseInquiry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CloseInquiry"})

	inquiryIDStr := chi.URLParam(r, "inquiryID")
	inquiryID, err := uuid.Parse(inquiryIDStr)
	if err != nil {
		logger.Warn("Invalid inquiryID in URL", port.Fields{"provided_id": inquiryIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid inquiryID in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"inquiry_id": inquiryID})
	handlerLogger.Info("Processing request to close inquiry", nil)

	inquiry, err := h.closeUC.Execute(r.Context(), inquiryID)
	if err != nil {
		if errors.Is(err, domain.ErrInquiryNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Inquiry not found")
			return
		}
		if domain.IsInvalidState(err) {
			WriteJSONError(w, http.StatusConflict, err.Error())
			return
		}
		handlerLogger.Error("Close inquiry use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to close inquiry")
		return
	}

	handlerLogger.Info("Successfully closed inquiry", nil)
	RespondWithJSON(w, http.StatusOK, toInquiryResponse(inquiry))
}
