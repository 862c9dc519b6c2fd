package dto

import "github.com/shopspring/decimal"

// ProductResponse is the read model for a catalog entry.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	ReorderPoint int             `json:"reorder_point"`
	ReorderQty   int             `json:"reorder_qty"`
	Supplier     string          `json:"supplier,omitempty"`
}

// ReserveRequest places a soft hold on stock for a job.
type ReserveRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	JobRef   string `json:"job_ref"`
}

// ReserveResponse returns the reservation id.
type ReserveResponse struct {
	ReservationID string `json:"reservation_id"`
}

// ReleaseRequest gives a reservation back.
type ReleaseRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	JobRef   string `json:"job_ref"`
	Reason   string `json:"reason"`
}

// ReceiveStockRequest books goods into on-hand stock.
type ReceiveStockRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// AdjustQuantityRequest realigns a reservation after a demand change.
type AdjustQuantityRequest struct {
	SKU    string `json:"sku"`
	OldQty int    `json:"old_qty"`
	NewQty int    `json:"new_qty"`
	JobRef string `json:"job_ref"`
}

// InventoryRecordResponse is the read model for one SKU's stock position.
type InventoryRecordResponse struct {
	SKU              string `json:"sku"`
	QuantityOnHand   int    `json:"quantity_on_hand"`
	QuantityReserved int    `json:"quantity_reserved"`
	Available        int    `json:"available"`
	ManageStock      bool   `json:"manage_stock"`
}
