package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPropertyRepository - реализация порта для PostgreSQL.
type PostgresPropertyRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPropertyRepository - конструктор.
func NewPostgresPropertyRepository(pool *pgxpool.Pool) (*PostgresPropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresPropertyRepository{pool: pool}, nil
}

// FindByID находит объект по ID. Мягко удаленные записи не возвращаются.
func (r *PostgresPropertyRepository) FindByID(ctx context.Context, propertyID uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresPropertyRepository",
		"method":      "FindByID",
		"property_id": propertyID.String(),
	})

	repoLogger.Debug("Finding property by ID", nil)

	query := `
		SELECT id, title, description, city, address, price, status, closed_deal_id, images, is_deleted, created_at, updated_at
		FROM properties
		WHERE id = $1 AND is_deleted = FALSE
	`
	var property domain.Property
	err := QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, propertyID).Scan(
		&property.ID,
		&property.Title,
		&property.Description,
		&property.City,
		&property.Address,
		&property.Price,
		&property.Status,
		&property.ClosedDealID,
		&property.Images,
		&property.IsDeleted,
		&property.CreatedAt,
		&property.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Property not found", nil)
			return nil, domain.ErrPropertyNotFound
		}
		repoLogger.Error("Failed to find property by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find property by id: %w", err)
	}

	return &property, nil
}

// Update сохраняет измененный объект.
func (r *PostgresPropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresPropertyRepository",
		"method":      "Update",
		"property_id": property.ID.String(),
	})

	repoLogger.Debug("Updating property in DB", port.Fields{"new_status": property.Status})

	query := `
		UPDATE properties
		SET
			title = $2,
			description = $3,
			city = $4,
			address = $5,
			price = $6,
			status = $7,
			closed_deal_id = $8,
			images = $9,
			updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`
	cmdTag, err := QuerierFromContext(ctx, r.pool).Exec(ctx, query,
		property.ID,
		property.Title,
		property.Description,
		property.City,
		property.Address,
		property.Price,
		property.Status,
		property.ClosedDealID,
		property.Images,
	)
	if err != nil {
		repoLogger.Error("Failed to update property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update failed: property not found", nil)
		return domain.ErrPropertyNotFound
	}

	return nil
}
