// Package workshop holds the pure state machines of the work order
// fulfillment core: the parts line aggregator, the work order status
// resolver and the execution status projector. Nothing in this package
// touches persistence; every function is deterministic over its inputs.
package workshop

import "github.com/herbie65/Tesland2026-sub004/internal/domain/entity"

// PartsSummaryStatus is the aggregate readiness of all parts lines on one
// work order. It is always derived with Aggregate, never stored as
// independent truth.
type PartsSummaryStatus string

const (
	SummaryNoPartsNeeded PartsSummaryStatus = "no_parts_needed"
	SummaryUnknown       PartsSummaryStatus = "unknown"
	SummaryNeedsCheck    PartsSummaryStatus = "needs_check"
	SummaryIncomplete    PartsSummaryStatus = "incomplete"
	SummaryInTransit     PartsSummaryStatus = "in_transit"
	SummaryReadyToStage  PartsSummaryStatus = "ready_to_stage"
	SummaryFullyStaged   PartsSummaryStatus = "fully_staged"
	SummaryFullyIssued   PartsSummaryStatus = "fully_issued"
)

// Valid reports whether s is one of the eight defined summary statuses.
func (s PartsSummaryStatus) Valid() bool {
	_, ok := summarySeverity[s]
	return ok
}

// summarySeverity is the fixed severity ordering used by the resolver's
// override policy. Lower is worse. NoPartsNeeded sits above FullyIssued: a
// job without parts lines is as ready as a job whose parts are all issued.
var summarySeverity = map[PartsSummaryStatus]int{
	SummaryUnknown:       0,
	SummaryNeedsCheck:    1,
	SummaryIncomplete:    2,
	SummaryInTransit:     3,
	SummaryReadyToStage:  4,
	SummaryFullyStaged:   5,
	SummaryFullyIssued:   6,
	SummaryNoPartsNeeded: 7,
}

// Aggregate computes the parts summary for one work order from its lines.
//
// The rules run top to bottom, first match wins. Note the deliberate
// asymmetry inherited from the original policy: "no lines" and "all lines
// unknown" are distinct outcomes, a single unknown line blocks an otherwise
// clean aggregate (conservative default), while ordered and partially
// received lines are folded into a single in-transit bucket. Anything not
// covered falls through to incomplete instead of failing, so the function is
// total for any status combination.
func Aggregate(lines []entity.PartsLine) PartsSummaryStatus {
	if len(lines) == 0 {
		return SummaryNoPartsNeeded
	}

	var unknown, issued, stagedOrIssued, inTransit, readyish int
	for _, l := range lines {
		switch l.Status {
		case entity.PartsLineUnknown:
			unknown++
		case entity.PartsLineIssued:
			issued++
			stagedOrIssued++
		case entity.PartsLineStaged:
			stagedOrIssued++
		case entity.PartsLineOrdered, entity.PartsLinePartiallyReceived:
			inTransit++
		case entity.PartsLineInStock, entity.PartsLineReserved, entity.PartsLineReceived:
			readyish++
		}
	}

	n := len(lines)
	switch {
	case unknown == n:
		return SummaryUnknown
	case unknown > 0:
		return SummaryNeedsCheck
	case issued == n:
		return SummaryFullyIssued
	case stagedOrIssued == n:
		return SummaryFullyStaged
	case inTransit > 0:
		return SummaryInTransit
	case readyish == n:
		return SummaryReadyToStage
	}
	return SummaryIncomplete
}
