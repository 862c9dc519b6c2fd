package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stockable part (or a labor/service item) from the webshop
// catalog. Identity is the SKU; catalog management mutates the descriptive
// fields, never the stock quantities (those live in InventoryRecord).
type Product struct {
	ID           string
	SKU          string // unique part number, e.g. "1044532-00-B"
	Name         string
	Description  string
	Price        decimal.Decimal // sale price excl. VAT
	Cost         decimal.Decimal // last known purchase cost
	ReorderPoint int
	ReorderQty   int
	Supplier     string // preferred supplier code, e.g. "bex"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
