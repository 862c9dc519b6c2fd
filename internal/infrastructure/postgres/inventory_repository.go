package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implements InventoryRepository on PostgreSQL. All quantity
// mutations are single conditional UPDATEs: the WHERE guard is what keeps
// reserved <= on-hand under concurrent callers, there is no read-then-write
// anywhere in this file.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the adapter. Pass a pool or a tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get returns the record for one SKU, or nil when none exists.
func (r *InventoryRepo) Get(ctx context.Context, sku string) (*entity.InventoryRecord, error) {
	query := `
		SELECT sku, quantity_on_hand, quantity_reserved, manage_stock, updated_at
		FROM inventory_records WHERE sku = $1`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(ctx, query, sku).Scan(
		&rec.SKU, &rec.QuantityOnHand, &rec.QuantityReserved, &rec.ManageStock, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}

// TryReserve increments quantity_reserved iff enough stock is available. The
// guard and the increment are one statement, so two concurrent reservations
// for the last items can never both pass.
func (r *InventoryRepo) TryReserve(ctx context.Context, sku string, qty int) (bool, error) {
	query := `
		UPDATE inventory_records
		SET quantity_reserved = quantity_reserved + $2, updated_at = now()
		WHERE sku = $1 AND manage_stock
		  AND quantity_on_hand - quantity_reserved >= $2`
	tag, err := r.q.Exec(ctx, query, sku, qty)
	if err != nil {
		return false, fmt.Errorf("reserve stock: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	// Guard rejected: distinguish unmanaged SKUs (always available) from a
	// genuine shortage.
	rec, err := r.Get(ctx, sku)
	if err != nil {
		return false, err
	}
	if rec != nil && !rec.ManageStock {
		return true, nil
	}
	return false, nil
}

// Release decrements quantity_reserved, floored at zero, and returns how much
// was actually released.
func (r *InventoryRepo) Release(ctx context.Context, sku string, qty int) (int, error) {
	// The row lock on the old value is needed to report how much was
	// actually released after clamping.
	query := `
		WITH old AS (
			SELECT quantity_reserved FROM inventory_records WHERE sku = $1 FOR UPDATE
		)
		UPDATE inventory_records r
		SET quantity_reserved = GREATEST(r.quantity_reserved - $2, 0), updated_at = now()
		FROM old
		WHERE r.sku = $1
		RETURNING LEAST(old.quantity_reserved, $2)`
	var released int
	err := r.q.QueryRow(ctx, query, sku, qty).Scan(&released)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("release stock: %w", err)
	}
	return released, nil
}

// Receive increments on-hand stock, creating the record on first receipt.
func (r *InventoryRepo) Receive(ctx context.Context, sku string, qty int) error {
	query := `
		INSERT INTO inventory_records (sku, quantity_on_hand, quantity_reserved, manage_stock, updated_at)
		VALUES ($1, $2, 0, true, now())
		ON CONFLICT (sku)
		DO UPDATE SET quantity_on_hand = inventory_records.quantity_on_hand + EXCLUDED.quantity_on_hand,
		              updated_at = now()`
	if _, err := r.q.Exec(ctx, query, sku, qty); err != nil {
		return fmt.Errorf("receive stock: %w", err)
	}
	return nil
}

// Issue removes qty from on-hand and up to qty from reserved in one guarded
// update (parts handed to the workshop).
func (r *InventoryRepo) Issue(ctx context.Context, sku string, qty int) (bool, error) {
	query := `
		UPDATE inventory_records
		SET quantity_on_hand = quantity_on_hand - $2,
		    quantity_reserved = GREATEST(quantity_reserved - $2, 0),
		    updated_at = now()
		WHERE sku = $1 AND manage_stock AND quantity_on_hand >= $2`
	tag, err := r.q.Exec(ctx, query, sku, qty)
	if err != nil {
		return false, fmt.Errorf("issue stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
