package usecase

import (
	"context"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

// GetPropertyDetailsUseCase собирает карточку объекта,
// превращая сохраненные пути изображений в публичные URL
type GetPropertyDetailsUseCase struct {
	properties port.PropertyRepositoryPort
	fileURLs   port.FileURLResolverPort
}

func NewGetPropertyDetailsUseCase(properties port.PropertyRepositoryPort, fileURLs port.FileURLResolverPort) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{properties: properties, fileURLs: fileURLs}
}

func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, propertyID uuid.UUID) (*domain.PropertyDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetPropertyDetails",
		"property_id": propertyID.String(),
	})

	property, err := uc.properties.FindByID(ctx, propertyID)
	if err != nil {
		ucLogger.Warn("Property lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	urls := make([]string, 0, len(property.Images))
	for _, path := range property.Images {
		urls = append(urls, uc.fileURLs.Resolve(path))
	}

	return &domain.PropertyDetails{
		Property:  *property,
		ImageURLs: urls,
	}, nil
}
