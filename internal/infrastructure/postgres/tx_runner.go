package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/herbie65/Tesland2026-sub004/internal/application/inventory"
	"github.com/herbie65/Tesland2026-sub004/internal/application/workshop"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
)

// Ensure TxRunner implements both application ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ workshop.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner with the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run starts a transaction, executes fn with ledger repos bound to it and
// commits, or rolls back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	mutRepo repository.StockMutationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRepository(tx), NewStockMutationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunWorkshop starts a transaction with the full workshop repository set
// (back-order lifecycle, parts line flow, summary refresh).
func (r *TxRunner) RunWorkshop(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	mutRepo repository.StockMutationRepository,
	lineRepo repository.PartsLineRepository,
	orderRepo repository.BackOrderRepository,
	jobRepo repository.WorkOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewInventoryRepository(tx),
		NewStockMutationRepository(tx),
		NewPartsLineRepository(tx),
		NewBackOrderRepository(tx),
		NewWorkOrderRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
