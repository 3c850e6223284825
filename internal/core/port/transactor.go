package port

import "context"

// TransactorPort - граница атомарности для переходов жизненного цикла сделки.
// Все записи внутри fn (сделка + объект + заявка) фиксируются одним коммитом:
// либо все, либо ни одной.
type TransactorPort interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
