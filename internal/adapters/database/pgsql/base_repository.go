package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides pool access and transaction management shared by
// all pgsql repositories. Batch services obtain a pgx.Tx here and thread it
// through every write of the batch.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// NewBaseRepository creates a new base repository instance.
func NewBaseRepository(pool *pgxpool.Pool) BaseRepository {
	return BaseRepository{Pool: pool}
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits the given transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the given transaction. Safe to call after a successful
// commit; pgx reports ErrTxClosed which is ignored here.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
