package repository

import (
	"context"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
)

// InventoryRepository is the port for the per-SKU stock records. Mutations go
// through single atomic conditional updates; there is deliberately no
// Save/Upsert that writes quantities computed by the caller, so a
// read-then-write race cannot be reintroduced.
type InventoryRepository interface {
	Get(ctx context.Context, sku string) (*entity.InventoryRecord, error)

	// TryReserve increments quantity_reserved by qty in one conditional
	// update, guarded by available >= qty and manage_stock. It returns
	// (true, nil) when the reservation was taken, (false, nil) when the
	// guard rejected it, and (true, nil) without touching the row for
	// unmanaged SKUs.
	TryReserve(ctx context.Context, sku string, qty int) (bool, error)

	// Release decrements quantity_reserved, floored at zero, and returns
	// the quantity actually released (may be less than qty).
	Release(ctx context.Context, sku string, qty int) (int, error)

	// Receive increments quantity_on_hand by qty.
	Receive(ctx context.Context, sku string, qty int) error

	// Issue removes qty from on-hand (and up to qty from reserved) in one
	// conditional update, guarded by on-hand >= qty. Returns false when the
	// guard rejected it.
	Issue(ctx context.Context, sku string, qty int) (bool, error)
}

// StockMutationRepository records the ledger audit trail.
type StockMutationRepository interface {
	Create(ctx context.Context, m *entity.StockMutation) error
	ListBySKU(ctx context.Context, sku string, limit int) ([]entity.StockMutation, error)
}
