package composables

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/migscope/pkg/repo"
)

type contextKey string

const (
	txKey          contextKey = "tx"
	poolKey        contextKey = "pool"
	environmentKey contextKey = "environment"
)

var (
	ErrNoTx          = errors.New("no transaction found in context")
	ErrNoPool        = errors.New("no database pool found in context")
	ErrNoEnvironment = errors.New("no dataset environment found in context")
)

func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func UseTx(ctx context.Context) (repo.Tx, error) {
	tx := ctx.Value(txKey)
	if tx == nil {
		return UsePool(ctx)
	}
	return tx.(repo.Tx), nil
}

func WithPool(ctx context.Context, pool *pgxpool.Pool) context.Context {
	return context.WithValue(ctx, poolKey, pool)
}

func UsePool(ctx context.Context) (*pgxpool.Pool, error) {
	pool := ctx.Value(poolKey)
	if pool == nil {
		return nil, ErrNoPool
	}
	return pool.(*pgxpool.Pool), nil
}

// WithEnvironment tags the context with the dataset environment name the
// current pool belongs to. Purely informational; the pool is the actual target.
func WithEnvironment(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, environmentKey, name)
}

func UseEnvironment(ctx context.Context) (string, error) {
	name := ctx.Value(environmentKey)
	if name == nil {
		return "", ErrNoEnvironment
	}
	return name.(string), nil
}

func BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx := ctx.Value(txKey)
	if tx != nil {
		return tx.(pgx.Tx), nil
	}
	pool, err := UsePool(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Begin(ctx)
}

// InTx runs fn in a transaction. ALWAYS creates a new transaction.
func InTx(ctx context.Context, fn func(context.Context) error) error {
	pool, err := UsePool(ctx)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	txCtx := WithTx(ctx, tx)
	if err := fn(txCtx); err != nil {
		if rErr := tx.Rollback(ctx); rErr != nil {
			return errors.Join(err, rErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

// InSharedTx joins the transaction already on the context if present,
// otherwise behaves like InTx. Repositories composed inside one import or one
// reconciliation rebuild share a single enclosing transaction this way.
func InSharedTx(ctx context.Context, fn func(context.Context) error) error {
	if existing, ok := ctx.Value(txKey).(pgx.Tx); ok && existing != nil {
		return fn(ctx)
	}
	return InTx(ctx, fn)
}

func InTxResult[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := InSharedTx(ctx, func(txCtx context.Context) error {
		var innerErr error
		out, innerErr = fn(txCtx)
		return innerErr
	})
	return out, err
}
