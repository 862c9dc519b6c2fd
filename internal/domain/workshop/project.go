package workshop

import "github.com/herbie65/Tesland2026-sub004/internal/domain/entity"

// ExecutionStatus is the operator-facing label on the planning dashboard. It
// is derived for display only and never persisted.
type ExecutionStatus string

const (
	ExecutionReady         ExecutionStatus = "klaar_voor_uitvoering"
	ExecutionPartsArriving ExecutionStatus = "onderdelen_onderweg"
	ExecutionPartsCheck    ExecutionStatus = "onderdelen_controleren"
	ExecutionPartsMissing  ExecutionStatus = "onderdelen_niet_compleet"
	ExecutionInProgress    ExecutionStatus = "in_uitvoering"
	ExecutionBlocked       ExecutionStatus = "geblokkeerd_op_onderdelen"
	ExecutionDone          ExecutionStatus = "gereed"
)

type projectionRule struct {
	order   func(entity.WorkOrderStatus) bool
	summary func(PartsSummaryStatus) bool
	label   ExecutionStatus
}

func anySummary(PartsSummaryStatus) bool { return true }

func orderIs(w ...entity.WorkOrderStatus) func(entity.WorkOrderStatus) bool {
	return func(s entity.WorkOrderStatus) bool {
		for _, v := range w {
			if s == v {
				return true
			}
		}
		return false
	}
}

func summaryIs(w ...PartsSummaryStatus) func(PartsSummaryStatus) bool {
	return func(s PartsSummaryStatus) bool {
		for _, v := range w {
			if s == v {
				return true
			}
		}
		return false
	}
}

// projectionRules is evaluated top to bottom; the first match wins. Order
// matters: the done/in-progress rows shadow the parts-driven rows below them.
var projectionRules = []projectionRule{
	{orderIs(entity.WorkOrderDone, entity.WorkOrderInvoiced), anySummary, ExecutionDone},
	{orderIs(entity.WorkOrderInProgress), anySummary, ExecutionInProgress},
	{orderIs(entity.WorkOrderWaitingOnParts), summaryIs(SummaryInTransit), ExecutionPartsArriving},
	{orderIs(entity.WorkOrderWaitingOnParts), anySummary, ExecutionBlocked},
	{orderIs(entity.WorkOrderScheduled, entity.WorkOrderConfirmed),
		summaryIs(SummaryNoPartsNeeded, SummaryFullyStaged, SummaryFullyIssued, SummaryReadyToStage), ExecutionReady},
	{orderIs(entity.WorkOrderScheduled, entity.WorkOrderConfirmed), summaryIs(SummaryInTransit), ExecutionPartsArriving},
	{orderIs(entity.WorkOrderScheduled, entity.WorkOrderConfirmed),
		summaryIs(SummaryUnknown, SummaryNeedsCheck), ExecutionPartsCheck},
	{orderIs(entity.WorkOrderScheduled, entity.WorkOrderConfirmed), summaryIs(SummaryIncomplete), ExecutionPartsMissing},
}

// ProjectExecutionStatus maps a (work order status, parts summary) pair to a
// dashboard label. The second return is false when no rule matches; callers
// fall back to showing the raw work order status.
func ProjectExecutionStatus(order entity.WorkOrderStatus, summary PartsSummaryStatus) (ExecutionStatus, bool) {
	for _, r := range projectionRules {
		if r.order(order) && r.summary(summary) {
			return r.label, true
		}
	}
	return "", false
}
