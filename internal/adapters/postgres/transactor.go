package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type txContextKey struct{}

// PgxTransactor реализует транзакционную границу поверх pgxpool.
// Открытая транзакция кладется в контекст, репозитории достают ее
// через QuerierFromContext и выполняют свои запросы внутри нее.
type PgxTransactor struct {
	pool *pgxpool.Pool
}

func NewPgxTransactor(pool *pgxpool.Pool) (*PgxTransactor, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PgxTransactor{pool: pool}, nil
}

// WithinTransaction выполняет fn в транзакции. Ошибка fn откатывает ее,
// nil - коммитит. Вложенный вызов присоединяется к уже открытой транзакции.
func (t *PgxTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "PgxTransactor"})

	if _, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txContextKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Error("Failed to rollback transaction", rbErr, nil)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
