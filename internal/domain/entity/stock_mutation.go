package entity

import "time"

// Stock mutation types recorded by the inventory ledger.
const (
	MutationReserve = "RESERVE" // soft hold for a job
	MutationRelease = "RELEASE" // hold given back
	MutationReceive = "RECEIVE" // goods received into stock
	MutationIssue   = "ISSUE"   // physically handed to the workshop
	MutationReturn  = "RETURN"  // issued part returned to stock
)

// StockMutation is the audit trail entry for one ledger operation. Reserve
// mutations double as the reservation record: their ID is the reservation id
// handed back to the caller.
type StockMutation struct {
	ID        string
	SKU       string
	Type      string
	Quantity  int
	JobRef    string // work order / parts line reference, empty for receipts
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}
