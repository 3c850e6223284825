package postgres_adapter

import (
	"context"
	"fmt"
	"time"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresViewRepository - append-only хранилище событий просмотров.
type PostgresViewRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresViewRepository - конструктор.
func NewPostgresViewRepository(pool *pgxpool.Pool) (*PostgresViewRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresViewRepository{pool: pool}, nil
}

// Insert сохраняет событие просмотра.
func (r *PostgresViewRepository) Insert(ctx context.Context, view *domain.PropertyView) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresViewRepository",
		"method":      "Insert",
		"property_id": view.PropertyID.String(),
	})

	query := `
		INSERT INTO property_views (id, property_id, session_id, ip_address, user_agent, viewed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := QuerierFromContext(ctx, r.pool).Exec(ctx, query,
		view.ID,
		view.PropertyID,
		view.SessionID,
		view.IPAddress,
		view.UserAgent,
		view.ViewedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to insert property view", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert property view: %w", err)
	}

	return nil
}

// HasRecentView проверяет, есть ли просмотр пары (объект, сессия) новее since.
func (r *PostgresViewRepository) HasRecentView(ctx context.Context, propertyID uuid.UUID, sessionID string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM property_views
			WHERE property_id = $1 AND session_id = $2 AND viewed_at > $3
		)
	`
	var exists bool
	err := QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, propertyID, sessionID, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recent view: %w", err)
	}
	return exists, nil
}

// AggregateByProperty группирует просмотры по объектам в границах дат.
// Порядок строк не гарантируется, ранжирование делает вызывающая сторона.
func (r *PostgresViewRepository) AggregateByProperty(ctx context.Context, from, to *time.Time) ([]domain.MostViewedProperty, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresViewRepository",
		"method":    "AggregateByProperty",
	})

	query := `
		SELECT v.property_id, p.title, p.city, COUNT(*) AS views_count, MAX(v.viewed_at) AS last_viewed_at
		FROM property_views v
		JOIN properties p ON p.id = v.property_id AND p.is_deleted = FALSE
		WHERE ($1::timestamptz IS NULL OR v.viewed_at >= $1)
		  AND ($2::timestamptz IS NULL OR v.viewed_at <= $2)
		GROUP BY v.property_id, p.title, p.city
	`
	rows, err := QuerierFromContext(ctx, r.pool).Query(ctx, query, from, to)
	if err != nil {
		repoLogger.Error("Failed to aggregate property views", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to aggregate property views: %w", err)
	}
	defer rows.Close()

	var result []domain.MostViewedProperty
	for rows.Next() {
		var item domain.MostViewedProperty
		if err := rows.Scan(&item.PropertyID, &item.Title, &item.City, &item.ViewsCount, &item.LastViewedAt); err != nil {
			repoLogger.Error("Failed to scan aggregate row", err, nil)
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during aggregate iteration", err, nil)
		return nil, fmt.Errorf("error during aggregate iteration: %w", err)
	}

	return result, nil
}

// StatsByProperty считает статистику просмотров одного объекта.
func (r *PostgresViewRepository) StatsByProperty(ctx context.Context, propertyID uuid.UUID, from, to *time.Time) (*domain.PropertyViewStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresViewRepository",
		"method":      "StatsByProperty",
		"property_id": propertyID.String(),
	})

	query := `
		SELECT COUNT(*), COUNT(DISTINCT session_id), MAX(viewed_at)
		FROM property_views
		WHERE property_id = $1
		  AND ($2::timestamptz IS NULL OR viewed_at >= $2)
		  AND ($3::timestamptz IS NULL OR viewed_at <= $3)
	`
	stats := domain.PropertyViewStats{PropertyID: propertyID}
	err := QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, propertyID, from, to).Scan(
		&stats.TotalViews,
		&stats.UniqueSessions,
		&stats.LastViewedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to query view stats", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query view stats: %w", err)
	}

	return &stats, nil
}
