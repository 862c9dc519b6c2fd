package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BackOrderStatus is the lifecycle status of a supplier back-order.
type BackOrderStatus string

const (
	BackOrderPending           BackOrderStatus = "pending"
	BackOrderOrdered           BackOrderStatus = "ordered"
	BackOrderPartiallyReceived BackOrderStatus = "partially_received"
	BackOrderReceived          BackOrderStatus = "received"
	BackOrderCancelled         BackOrderStatus = "cancelled"
)

// Valid reports whether s is one of the closed set of back-order statuses.
func (s BackOrderStatus) Valid() bool {
	switch s {
	case BackOrderPending, BackOrderOrdered, BackOrderPartiallyReceived,
		BackOrderReceived, BackOrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s BackOrderStatus) Terminal() bool {
	return s == BackOrderReceived || s == BackOrderCancelled
}

// BackOrder tracks a supplier order created because a parts line could not be
// satisfied from stock. At most one open (non-terminal) back-order may exist
// per parts line; the database enforces this with a partial unique index and
// the use case rejects duplicates with ErrDuplicateBackOrder.
type BackOrder struct {
	ID               string
	PartsLineID      string
	ProductID        string
	SKU              string
	QuantityOrdered  int
	QuantityReceived int
	UnitCost         decimal.Decimal
	Supplier         string
	Reference        string // external order reference from the supplier API
	OrderDate        *time.Time
	ExpectedDate     *time.Time
	Status           BackOrderStatus
	CancelReason     string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Remaining returns the quantity still expected from the supplier.
func (b *BackOrder) Remaining() int {
	if r := b.QuantityOrdered - b.QuantityReceived; r > 0 {
		return r
	}
	return 0
}
