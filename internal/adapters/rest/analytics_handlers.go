package rest

import (
	"errors"
	"net/http"
	"strconv"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AnalyticsHandler - обработчики отчетов по просмотрам.
type AnalyticsHandler struct {
	mostViewedUC usecases_port.GetMostViewedUseCasePort
	viewStatsUC  usecases_port.GetViewStatsUseCasePort
}

// NewAnalyticsHandler - конструктор.
func NewAnalyticsHandler(
	mostViewedUC usecases_port.GetMostViewedUseCasePort,
	viewStatsUC usecases_port.GetViewStatsUseCasePort,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		mostViewedUC: mostViewedUC,
		viewStatsUC:  viewStatsUC,
	}
}

// GetMostViewed обрабатывает GET /api/v1/analytics/most-viewed
func (h *AnalyticsHandler) GetMostViewed(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetMostViewed"})

	topCount := 0
	if topStr := r.URL.Query().Get("top"); topStr != "" {
		parsed, err := strconv.Atoi(topStr)
		if err != nil {
			logger.Warn("Invalid top parameter", port.Fields{"provided": topStr})
			WriteJSONError(w, http.StatusBadRequest, "Invalid top parameter")
			return
		}
		topCount = parsed
	}

	from, to, err := ParseTimeRange(r)
	if err != nil {
		logger.Warn("Invalid time range parameters", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid from/to parameters, expected RFC3339")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"top_count": topCount})
	handlerLogger.Info("Processing request for most viewed properties", nil)

	ranking, err := h.mostViewedUC.Execute(r.Context(), topCount, from, to)
	if err != nil {
		handlerLogger.Error("Get most viewed use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve ranking")
		return
	}

	response := make([]MostViewedItemResponse, len(ranking))
	for i, item := range ranking {
		response[i] = MostViewedItemResponse{
			PropertyID:   item.PropertyID.String(),
			Title:        item.Title,
			City:         item.City,
			ViewsCount:   item.ViewsCount,
			LastViewedAt: item.LastViewedAt,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetViewStats обрабатывает GET /api/v1/analytics/properties/{propertyID}/views
func (h *AnalyticsHandler) GetViewStats(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetViewStats"})

	propertyIDStr := chi.URLParam(r, "propertyID")
	propertyID, err := uuid.Parse(propertyIDStr)
	if err != nil {
		logger.Warn("Invalid propertyID in URL", port.Fields{"provided_id": propertyIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid propertyID in URL")
		return
	}

	from, to, err := ParseTimeRange(r)
	if err != nil {
		logger.Warn("Invalid time range parameters", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid from/to parameters, expected RFC3339")
		return
	}

	stats, err := h.viewStatsUC.Execute(r.Context(), propertyID, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		logger.Error("Get view stats use case failed", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve view stats")
		return
	}

	RespondWithJSON(w, http.StatusOK, ViewStatsResponse{
		PropertyID:     stats.PropertyID.String(),
		TotalViews:     stats.TotalViews,
		UniqueSessions: stats.UniqueSessions,
		LastViewedAt:   stats.LastViewedAt,
	})
}
