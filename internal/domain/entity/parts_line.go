package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartsLineStatus is the per-line fulfillment status. The set is closed:
// values outside it are a configuration error, not a new state.
type PartsLineStatus string

const (
	PartsLineUnknown           PartsLineStatus = "unknown"
	PartsLineInStock           PartsLineStatus = "in_stock"
	PartsLineReserved          PartsLineStatus = "reserved"
	PartsLineOrdered           PartsLineStatus = "ordered"
	PartsLinePartiallyReceived PartsLineStatus = "partially_received"
	PartsLineReceived          PartsLineStatus = "received"
	PartsLineStaged            PartsLineStatus = "staged"
	PartsLineIssued            PartsLineStatus = "issued"
	PartsLineReturned          PartsLineStatus = "returned"
)

// Valid reports whether s is one of the closed set of line statuses.
func (s PartsLineStatus) Valid() bool {
	switch s {
	case PartsLineUnknown, PartsLineInStock, PartsLineReserved, PartsLineOrdered,
		PartsLinePartiallyReceived, PartsLineReceived, PartsLineStaged,
		PartsLineIssued, PartsLineReturned:
		return true
	}
	return false
}

// PartsLine is one needed-part entry on a work order. ProductID may be empty
// for free-text lines (no stock tracking). QuantityReserved is the portion of
// Quantity currently held in the inventory ledger for this line.
type PartsLine struct {
	ID               string
	WorkOrderID      string
	ProductID        string
	SKU              string
	Description      string
	Quantity         int
	QuantityReserved int
	UnitPrice        decimal.Decimal
	Status           PartsLineStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
