package entity

import "time"

// InventoryRecord tracks on-hand and reserved quantity for one SKU.
//
// Invariant: 0 <= QuantityReserved <= QuantityOnHand whenever ManageStock is
// true. Available stock is QuantityOnHand - QuantityReserved. When ManageStock
// is false the SKU is treated as always available (labor, service items).
//
// Records are mutated only through the inventory ledger's atomic
// reserve/release/receive operations, never written directly elsewhere.
type InventoryRecord struct {
	SKU              string
	QuantityOnHand   int
	QuantityReserved int
	ManageStock      bool
	UpdatedAt        time.Time
}

// Available returns the quantity free to reserve.
func (r *InventoryRecord) Available() int {
	if !r.ManageStock {
		return int(^uint(0) >> 1) // effectively unlimited
	}
	return r.QuantityOnHand - r.QuantityReserved
}

// CanReserve reports whether qty can be reserved without breaking the
// reserved <= on-hand invariant.
func (r *InventoryRecord) CanReserve(qty int) bool {
	if !r.ManageStock {
		return true
	}
	return r.QuantityOnHand-r.QuantityReserved >= qty
}
