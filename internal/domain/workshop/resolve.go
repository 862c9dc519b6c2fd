package workshop

import (
	"fmt"

	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
)

// TransitionRequest carries everything the resolver needs to decide a work
// order status change. Privileged is the caller-supplied authorization check
// (planners/management); the resolver does not know about users or tokens.
type TransitionRequest struct {
	Current        entity.WorkOrderStatus
	Target         entity.WorkOrderStatus
	PartsSummary   PartsSummaryStatus
	OverrideReason string
	Privileged     bool
}

// Resolution is the resolver's verdict. FinalStatus may differ from the
// requested target: requesting in_uitvoering without fully issued parts is
// downgraded to wachten_op_onderdelen.
type Resolution struct {
	FinalStatus  entity.WorkOrderStatus
	OverrideUsed bool
	PlanningRisk bool
}

// scheduleComplete are the summaries that carry no planning risk when a job
// is put on the schedule.
func scheduleComplete(s PartsSummaryStatus) bool {
	switch s {
	case SummaryNoPartsNeeded, SummaryReadyToStage, SummaryFullyStaged, SummaryFullyIssued:
		return true
	}
	return false
}

// ResolveTransition derives the effective status for a requested work order
// transition given the current parts summary.
//
// Rules:
//   - target gepland: allowed as-is for non-privileged actors. Privileged
//     actors scheduling a job whose summary is worse than in_transit on the
//     severity ordering must supply an override reason (ErrOverrideRequired
//     otherwise); an override marks the job as a planning risk.
//   - target in_uitvoering: a hard gate. Without fully issued parts the
//     final status is wachten_op_onderdelen, no override can bypass it.
//   - any other target passes through unchanged.
//
// Status codes outside the closed sets are a configuration error
// (ErrUnknownStatus), checked before any rule runs.
func ResolveTransition(req TransitionRequest) (Resolution, error) {
	if !req.Current.Valid() {
		return Resolution{}, fmt.Errorf("%w: work order status %q", domain.ErrUnknownStatus, req.Current)
	}
	if !req.Target.Valid() {
		return Resolution{}, fmt.Errorf("%w: work order status %q", domain.ErrUnknownStatus, req.Target)
	}
	if !req.PartsSummary.Valid() {
		return Resolution{}, fmt.Errorf("%w: parts summary %q", domain.ErrUnknownStatus, req.PartsSummary)
	}

	switch req.Target {
	case entity.WorkOrderScheduled:
		risk := !scheduleComplete(req.PartsSummary)
		if req.Privileged && summarySeverity[req.PartsSummary] < summarySeverity[SummaryInTransit] {
			if req.OverrideReason == "" {
				return Resolution{}, domain.ErrOverrideRequired
			}
			return Resolution{FinalStatus: req.Target, OverrideUsed: true, PlanningRisk: true}, nil
		}
		return Resolution{FinalStatus: req.Target, PlanningRisk: risk}, nil

	case entity.WorkOrderInProgress:
		if req.PartsSummary != SummaryFullyIssued {
			return Resolution{FinalStatus: entity.WorkOrderWaitingOnParts}, nil
		}
		return Resolution{FinalStatus: req.Target}, nil
	}

	return Resolution{FinalStatus: req.Target}, nil
}
