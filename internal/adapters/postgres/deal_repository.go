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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresDealRepository - реализация порта для PostgreSQL.
// Уникальность активной сделки по объекту держит частичный
// уникальный индекс на deals(property_id) WHERE status <> 'cancelled'.
type PostgresDealRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDealRepository - конструктор.
func NewPostgresDealRepository(pool *pgxpool.Pool) (*PostgresDealRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresDealRepository{pool: pool}, nil
}

// Create сохраняет новую сделку. Нарушение уникального индекса
// превращается в domain.ErrActiveDealExists.
func (r *PostgresDealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresDealRepository",
		"method":    "Create",
		"deal_id":   deal.ID.String(),
	})

	repoLogger.Debug("Creating new deal in DB", nil)

	query := `
		INSERT INTO deals (id, property_id, inquiry_id, agent_id, buyer_name, buyer_email, sale_price, commission_rate, commission_amount, notes, status, created_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := QuerierFromContext(ctx, r.pool).Exec(ctx, query,
		deal.ID,
		deal.PropertyID,
		deal.InquiryID,
		deal.AgentID,
		deal.BuyerName,
		deal.BuyerEmail,
		deal.SalePrice,
		deal.CommissionRate,
		deal.CommissionAmount,
		deal.Notes,
		deal.Status,
		deal.CreatedAt,
		deal.ClosedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			repoLogger.Warn("Active deal already exists for property", port.Fields{"property_id": deal.PropertyID.String()})
			return domain.ErrActiveDealExists
		}
		repoLogger.Error("Failed to create deal", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create deal: %w", err)
	}

	return nil
}

// FindByID находит сделку по ID.
func (r *PostgresDealRepository) FindByID(ctx context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresDealRepository",
		"method":    "FindByID",
		"deal_id":   dealID.String(),
	})

	repoLogger.Debug("Finding deal by ID", nil)

	query := `
		SELECT id, property_id, inquiry_id, agent_id, buyer_name, buyer_email, sale_price, commission_rate, commission_amount, notes, status, created_at, closed_at
		FROM deals
		WHERE id = $1
	`
	deal, err := scanDeal(QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Deal not found", nil)
			return nil, domain.ErrDealNotFound
		}
		repoLogger.Error("Failed to find deal by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find deal by id: %w", err)
	}

	return deal, nil
}

// Update сохраняет измененную сделку.
func (r *PostgresDealRepository) Update(ctx context.Context, deal *domain.Deal) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresDealRepository",
		"method":    "Update",
		"deal_id":   deal.ID.String(),
	})

	repoLogger.Debug("Updating deal in DB", port.Fields{"new_status": deal.Status})

	query := `
		UPDATE deals
		SET
			sale_price = $2,
			commission_rate = $3,
			commission_amount = $4,
			notes = $5,
			status = $6,
			closed_at = $7
		WHERE id = $1
	`
	cmdTag, err := QuerierFromContext(ctx, r.pool).Exec(ctx, query,
		deal.ID,
		deal.SalePrice,
		deal.CommissionRate,
		deal.CommissionAmount,
		deal.Notes,
		deal.Status,
		deal.ClosedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to update deal", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update deal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update failed: deal not found", nil)
		return domain.ErrDealNotFound
	}

	return nil
}

// FindActiveByPropertyID находит неотмененную сделку по объекту.
// Возвращает (nil, nil), если такой сделки нет.
func (r *PostgresDealRepository) FindActiveByPropertyID(ctx context.Context, propertyID uuid.UUID) (*domain.Deal, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresDealRepository",
		"method":      "FindActiveByPropertyID",
		"property_id": propertyID.String(),
	})

	repoLogger.Debug("Finding active deal for property", nil)

	query := `
		SELECT id, property_id, inquiry_id, agent_id, buyer_name, buyer_email, sale_price, commission_rate, commission_amount, notes, status, created_at, closed_at
		FROM deals
		WHERE property_id = $1 AND status <> 'cancelled'
	`
	deal, err := scanDeal(QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, propertyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find active deal", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find active deal for property: %w", err)
	}

	return deal, nil
}

func scanDeal(row pgx.Row) (*domain.Deal, error) {
	var deal domain.Deal
	err := row.Scan(
		&deal.ID,
		&deal.PropertyID,
		&deal.InquiryID,
		&deal.AgentID,
		&deal.BuyerName,
		&deal.BuyerEmail,
		&deal.SalePrice,
		&deal.CommissionRate,
		&deal.CommissionAmount,
		&deal.Notes,
		&deal.Status,
		&deal.CreatedAt,
		&deal.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &deal, nil
}
