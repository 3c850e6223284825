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

// PostgresInquiryRepository - реализация порта для PostgreSQL.
type PostgresInquiryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresInquiryRepository - конструктор.
func NewPostgresInquiryRepository(pool *pgxpool.Pool) (*PostgresInquiryRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresInquiryRepository{pool: pool}, nil
}

// Create сохраняет новую заявку.
func (r *PostgresInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresInquiryRepository",
		"method":     "Create",
		"inquiry_id": inquiry.ID.String(),
	})

	repoLogger.Debug("Creating new inquiry in DB", nil)

	query := `
		INSERT INTO inquiries (id, property_id, buyer_name, buyer_email, message, status, assigned_agent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := QuerierFromContext(ctx, r.pool).Exec(ctx, query,
		inquiry.ID,
		inquiry.PropertyID,
		inquiry.BuyerName,
		inquiry.BuyerEmail,
		inquiry.Message,
		inquiry.Status,
		inquiry.AssignedAgentID,
		inquiry.CreatedAt,
		inquiry.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to create inquiry", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create inquiry: %w", err)
	}

	return nil
}

// FindByID находит заявку по ID.
func (r *PostgresInquiryRepository) FindByID(ctx context.Context, inquiryID uuid.UUID) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresInquiryRepository",
		"method":     "FindByID",
		"inquiry_id": inquiryID.String(),
	})

	repoLogger.Debug("Finding inquiry by ID", nil)

	query := `
		SELECT id, property_id, buyer_name, buyer_email, message, status, assigned_agent_id, created_at, updated_at
		FROM inquiries
		WHERE id = $1
	`
	var inquiry domain.Inquiry
	err := QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, inquiryID).Scan(
		&inquiry.ID,
		&inquiry.PropertyID,
		&inquiry.BuyerName,
		&inquiry.BuyerEmail,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.AssignedAgentID,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Inquiry not found", nil)
			return nil, domain.ErrInquiryNotFound
		}
		repoLogger.Error("Failed to find inquiry by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find inquiry by id: %w", err)
	}

	return &inquiry, nil
}

// Update сохраняет измененную заявку.
func (r *PostgresInquiryRepository) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresInquiryRepository",
		"method":     "Update",
		"inquiry_id": inquiry.ID.String(),
	})

	repoLogger.Debug("Updating inquiry in DB", port.Fields{"new_status": inquiry.Status})

	query := `
		UPDATE inquiries
		SET
			status = $2,
			assigned_agent_id = $3,
			updated_at = NOW()
		WHERE id = $1
	`
	cmdTag, err := QuerierFromContext(ctx, r.pool).Exec(ctx, query,
		inquiry.ID,
		inquiry.Status,
		inquiry.AssignedAgentID,
	)
	if err != nil {
		repoLogger.Error("Failed to update inquiry", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update inquiry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update failed: inquiry not found", nil)
		return domain.ErrInquiryNotFound
	}

	return nil
}
