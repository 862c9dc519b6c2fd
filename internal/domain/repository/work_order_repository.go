package repository

import (
	"context"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
)

// WorkOrderRepository is the port for repair jobs. Only the status resolver's
// output is written through UpdateStatus; the parts summary column is a cache
// of the last recomputation.
type WorkOrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.WorkOrder, error)
	Create(ctx context.Context, wo *entity.WorkOrder) error
	UpdateStatus(ctx context.Context, id string, status entity.WorkOrderStatus, partsSummary string, planningRisk bool) error
}

// ProductRepository is the port for catalog lookups (read-only here; catalog
// management lives outside the fulfillment core).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
}
