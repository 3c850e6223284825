package usecase

import (
	"context"
	"fmt"
	"time"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

// GetViewStatsUseCase возвращает агрегаты просмотров одного объекта
type GetViewStatsUseCase struct {
	views      port.ViewRepositoryPort
	properties port.PropertyRepositoryPort
}

func NewGetViewStatsUseCase(views port.ViewRepositoryPort, properties port.PropertyRepositoryPort) *GetViewStatsUseCase {
	return &GetViewStatsUseCase{views: views, properties: properties}
}

func (uc *GetViewStatsUseCase) Execute(ctx context.Context, propertyID uuid.UUID, from, to *time.Time) (*domain.PropertyViewStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetViewStats",
		"property_id": propertyID.String(),
	})

	if _, err := uc.properties.FindByID(ctx, propertyID); err != nil {
		ucLogger.Warn("Property lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	stats, err := uc.views.StatsByProperty(ctx, propertyID, from, to)
	if err != nil {
		ucLogger.Error("Failed to load view stats", err, nil)
		return nil, fmt.Errorf("failed to load view stats for property %s: %w", propertyID, err)
	}

	return stats, nil
}
