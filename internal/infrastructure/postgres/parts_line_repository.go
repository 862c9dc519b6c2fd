package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
)

var _ repository.PartsLineRepository = (*PartsLineRepo)(nil)

// PartsLineRepo implements PartsLineRepository on PostgreSQL.
type PartsLineRepo struct {
	q Querier
}

// NewPartsLineRepository builds the adapter. Pass a pool or a tx.
func NewPartsLineRepository(q Querier) *PartsLineRepo {
	return &PartsLineRepo{q: q}
}

const partsLineColumns = `id, work_order_id, product_id, sku, description,
	quantity, quantity_reserved, unit_price, status, created_at, updated_at`

func scanPartsLine(row pgx.Row) (*entity.PartsLine, error) {
	var l entity.PartsLine
	err := row.Scan(
		&l.ID, &l.WorkOrderID, &l.ProductID, &l.SKU, &l.Description,
		&l.Quantity, &l.QuantityReserved, &l.UnitPrice, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan parts line: %w", err)
	}
	return &l, nil
}

// GetByID returns one parts line, or nil when it does not exist.
func (r *PartsLineRepo) GetByID(ctx context.Context, id string) (*entity.PartsLine, error) {
	query := `SELECT ` + partsLineColumns + ` FROM parts_lines WHERE id = $1`
	return scanPartsLine(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate locks the row (SELECT FOR UPDATE) so concurrent mutations of
// the same line serialize.
func (r *PartsLineRepo) GetForUpdate(ctx context.Context, id string) (*entity.PartsLine, error) {
	query := `SELECT ` + partsLineColumns + ` FROM parts_lines WHERE id = $1 FOR UPDATE`
	return scanPartsLine(r.q.QueryRow(ctx, query, id))
}

// ListByWorkOrder returns all lines of one work order.
func (r *PartsLineRepo) ListByWorkOrder(ctx context.Context, workOrderID string) ([]entity.PartsLine, error) {
	query := `SELECT ` + partsLineColumns + ` FROM parts_lines WHERE work_order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list parts lines: %w", err)
	}
	defer rows.Close()

	var out []entity.PartsLine
	for rows.Next() {
		var l entity.PartsLine
		err := rows.Scan(
			&l.ID, &l.WorkOrderID, &l.ProductID, &l.SKU, &l.Description,
			&l.Quantity, &l.QuantityReserved, &l.UnitPrice, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan parts line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Create stores a new parts line.
func (r *PartsLineRepo) Create(ctx context.Context, line *entity.PartsLine) error {
	query := `
		INSERT INTO parts_lines (id, work_order_id, product_id, sku, description,
			quantity, quantity_reserved, unit_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.WorkOrderID, line.ProductID, line.SKU, line.Description,
		line.Quantity, line.QuantityReserved, line.UnitPrice, line.Status, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create parts line: %w", err)
	}
	return nil
}

// Update writes the mutable fields of an existing line.
func (r *PartsLineRepo) Update(ctx context.Context, line *entity.PartsLine) error {
	query := `
		UPDATE parts_lines
		SET quantity = $2, quantity_reserved = $3, unit_price = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.Quantity, line.QuantityReserved, line.UnitPrice, line.Status, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update parts line: %w", err)
	}
	return nil
}
