package postgres

import (
	"context"
	"fmt"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
)

var _ repository.StockMutationRepository = (*StockMutationRepo)(nil)

// StockMutationRepo persists the ledger audit trail.
type StockMutationRepo struct {
	q Querier
}

// NewStockMutationRepository builds the adapter. Pass a pool or a tx.
func NewStockMutationRepository(q Querier) *StockMutationRepo {
	return &StockMutationRepo{q: q}
}

// Create stores one mutation row.
func (r *StockMutationRepo) Create(ctx context.Context, m *entity.StockMutation) error {
	query := `
		INSERT INTO stock_mutations (id, sku, type, quantity, job_ref, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.SKU, m.Type, m.Quantity, m.JobRef, m.Reason, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock mutation: %w", err)
	}
	return nil
}

// ListBySKU returns the most recent mutations for one SKU.
func (r *StockMutationRepo) ListBySKU(ctx context.Context, sku string, limit int) ([]entity.StockMutation, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, sku, type, quantity, job_ref, reason, created_by, created_at
		FROM stock_mutations WHERE sku = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, sku, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock mutations: %w", err)
	}
	defer rows.Close()

	var out []entity.StockMutation
	for rows.Next() {
		var m entity.StockMutation
		if err := rows.Scan(&m.ID, &m.SKU, &m.Type, &m.Quantity, &m.JobRef, &m.Reason, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock mutation: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
