package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
)

var _ repository.BackOrderRepository = (*BackOrderRepo)(nil)

// BackOrderRepo implements BackOrderRepository on PostgreSQL. A partial
// unique index enforces the one-open-back-order-per-line invariant:
//
//	CREATE UNIQUE INDEX back_orders_open_line ON back_orders (parts_line_id)
//	WHERE status NOT IN ('received', 'cancelled');
type BackOrderRepo struct {
	q Querier
}

// NewBackOrderRepository builds the adapter. Pass a pool or a tx.
func NewBackOrderRepository(q Querier) *BackOrderRepo {
	return &BackOrderRepo{q: q}
}

const backOrderColumns = `id, parts_line_id, product_id, sku, quantity_ordered,
	quantity_received, unit_cost, supplier, reference, order_date, expected_date,
	status, cancel_reason, created_by, created_at, updated_at`

func scanBackOrder(row pgx.Row) (*entity.BackOrder, error) {
	var b entity.BackOrder
	err := row.Scan(
		&b.ID, &b.PartsLineID, &b.ProductID, &b.SKU, &b.QuantityOrdered,
		&b.QuantityReceived, &b.UnitCost, &b.Supplier, &b.Reference, &b.OrderDate, &b.ExpectedDate,
		&b.Status, &b.CancelReason, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan back-order: %w", err)
	}
	return &b, nil
}

// GetByID returns one back-order, or nil when it does not exist.
func (r *BackOrderRepo) GetByID(ctx context.Context, id string) (*entity.BackOrder, error) {
	query := `SELECT ` + backOrderColumns + ` FROM back_orders WHERE id = $1`
	return scanBackOrder(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate locks the row so receive and cancel on the same back-order
// serialize instead of racing.
func (r *BackOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.BackOrder, error) {
	query := `SELECT ` + backOrderColumns + ` FROM back_orders WHERE id = $1 FOR UPDATE`
	return scanBackOrder(r.q.QueryRow(ctx, query, id))
}

// GetOpenByPartsLine returns the open (non-terminal) back-order for a parts
// line, or nil when there is none.
func (r *BackOrderRepo) GetOpenByPartsLine(ctx context.Context, partsLineID string) (*entity.BackOrder, error) {
	query := `SELECT ` + backOrderColumns + ` FROM back_orders
		WHERE parts_line_id = $1 AND status NOT IN ('received', 'cancelled')`
	return scanBackOrder(r.q.QueryRow(ctx, query, partsLineID))
}

// ListOpen returns all non-terminal back-orders (sync worker, dashboards).
func (r *BackOrderRepo) ListOpen(ctx context.Context) ([]entity.BackOrder, error) {
	query := `SELECT ` + backOrderColumns + ` FROM back_orders
		WHERE status NOT IN ('received', 'cancelled') ORDER BY created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list open back-orders: %w", err)
	}
	defer rows.Close()

	var out []entity.BackOrder
	for rows.Next() {
		var b entity.BackOrder
		err := rows.Scan(
			&b.ID, &b.PartsLineID, &b.ProductID, &b.SKU, &b.QuantityOrdered,
			&b.QuantityReceived, &b.UnitCost, &b.Supplier, &b.Reference, &b.OrderDate, &b.ExpectedDate,
			&b.Status, &b.CancelReason, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan back-order: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create stores a new back-order. A race on the open-per-line index comes
// back as domain.ErrDuplicateBackOrder.
func (r *BackOrderRepo) Create(ctx context.Context, bo *entity.BackOrder) error {
	query := `
		INSERT INTO back_orders (id, parts_line_id, product_id, sku, quantity_ordered,
			quantity_received, unit_cost, supplier, reference, order_date, expected_date,
			status, cancel_reason, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		bo.ID, bo.PartsLineID, bo.ProductID, bo.SKU, bo.QuantityOrdered,
		bo.QuantityReceived, bo.UnitCost, bo.Supplier, bo.Reference, bo.OrderDate, bo.ExpectedDate,
		bo.Status, bo.CancelReason, bo.CreatedBy, bo.CreatedAt, bo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("parts line %s: %w", bo.PartsLineID, domain.ErrDuplicateBackOrder)
		}
		return fmt.Errorf("create back-order: %w", err)
	}
	return nil
}

// Update writes the mutable fields of an existing back-order.
func (r *BackOrderRepo) Update(ctx context.Context, bo *entity.BackOrder) error {
	query := `
		UPDATE back_orders
		SET quantity_ordered = $2, quantity_received = $3, unit_cost = $4, supplier = $5,
		    reference = $6, order_date = $7, expected_date = $8, status = $9,
		    cancel_reason = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		bo.ID, bo.QuantityOrdered, bo.QuantityReceived, bo.UnitCost, bo.Supplier,
		bo.Reference, bo.OrderDate, bo.ExpectedDate, bo.Status,
		bo.CancelReason, bo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update back-order: %w", err)
	}
	return nil
}
