package repository

import (
	"context"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
)

// BackOrderRepository is the port for supplier back-orders. Create must fail
// with domain.ErrDuplicateBackOrder when an open back-order already exists
// for the same parts line (partial unique index in the postgres adapter).
type BackOrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.BackOrder, error)
	// GetForUpdate locks the row so receive and cancel on the same
	// back-order serialize instead of racing.
	GetForUpdate(ctx context.Context, id string) (*entity.BackOrder, error)
	GetOpenByPartsLine(ctx context.Context, partsLineID string) (*entity.BackOrder, error)
	ListOpen(ctx context.Context) ([]entity.BackOrder, error)
	Create(ctx context.Context, bo *entity.BackOrder) error
	Update(ctx context.Context, bo *entity.BackOrder) error
}
