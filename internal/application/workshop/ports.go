package workshop

import (
	"context"
	"time"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction with the
// workshop repositories bound to that transaction. Every lifecycle operation
// that touches more than one record (back-order + parts line + ledger +
// work order summary) runs through it.
type TxRunner interface {
	RunWorkshop(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		mutRepo repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		orderRepo repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error) error
}

// Supplier order statuses as reported by the BeX API.
const (
	SupplierOrderOpen      = "open"
	SupplierOrderShipped   = "shipped"
	SupplierOrderDelivered = "delivered"
	SupplierOrderCancelled = "cancelled"
)

// PlacedOrder is the supplier's answer to a successfully placed order.
type PlacedOrder struct {
	Reference string
	ETA       *time.Time
}

// RemoteOrderStatus is the supplier's view of an order in flight.
type RemoteOrderStatus struct {
	Status      string
	ReceivedQty int
	ETA         *time.Time
}

// SupplierGateway is the outbound port to the BeX ordering API. Both calls
// may fail or time out; a failure leaves local state untouched and is
// surfaced to the caller for retry or manual fallback. The concrete client
// lives in infrastructure; tests inject a fake.
type SupplierGateway interface {
	PlaceOrder(ctx context.Context, sku string, qty int) (*PlacedOrder, error)
	GetOrderStatus(ctx context.Context, reference string) (*RemoteOrderStatus, error)
}
