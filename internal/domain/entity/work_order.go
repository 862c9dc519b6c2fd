package entity

import "time"

// WorkOrderStatus is the nominal scheduled status of a repair job. The wire
// codes are the Dutch values the platform has used since the Magento days;
// the Go names are their English equivalents.
type WorkOrderStatus string

const (
	WorkOrderScheduled      WorkOrderStatus = "gepland"
	WorkOrderConfirmed      WorkOrderStatus = "ingepland_bevestigd"
	WorkOrderInProgress     WorkOrderStatus = "in_uitvoering"
	WorkOrderWaitingOnParts WorkOrderStatus = "wachten_op_onderdelen"
	WorkOrderDone           WorkOrderStatus = "gereed"
	WorkOrderInvoiced       WorkOrderStatus = "gefactureerd"
)

// Valid reports whether s is one of the closed set of work order statuses.
func (s WorkOrderStatus) Valid() bool {
	switch s {
	case WorkOrderScheduled, WorkOrderConfirmed, WorkOrderInProgress,
		WorkOrderWaitingOnParts, WorkOrderDone, WorkOrderInvoiced:
		return true
	}
	return false
}

// WorkOrder is a scheduled repair job. PartsSummary is derived from the parts
// lines and is recomputed on every write that touches a line; it is persisted
// only as a cache of the last recomputation, never as independent truth.
type WorkOrder struct {
	ID           string
	Number       string // human-facing, e.g. "WO-2026-0154"
	VehicleID    string
	Description  string
	Status       WorkOrderStatus
	PartsSummary string // workshop.PartsSummaryStatus wire code
	PlanningRisk bool   // scheduled despite unready parts (override used)
	ScheduledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
