package workshop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/workshop"
)

var allOrderStatuses = []entity.WorkOrderStatus{
	entity.WorkOrderScheduled, entity.WorkOrderConfirmed, entity.WorkOrderInProgress,
	entity.WorkOrderWaitingOnParts, entity.WorkOrderDone, entity.WorkOrderInvoiced,
}

func TestProjectExecutionStatus(t *testing.T) {
	cases := []struct {
		order   entity.WorkOrderStatus
		summary workshop.PartsSummaryStatus
		want    workshop.ExecutionStatus
	}{
		{entity.WorkOrderDone, workshop.SummaryIncomplete, workshop.ExecutionDone},
		{entity.WorkOrderInvoiced, workshop.SummaryUnknown, workshop.ExecutionDone},
		{entity.WorkOrderInProgress, workshop.SummaryInTransit, workshop.ExecutionInProgress},
		{entity.WorkOrderWaitingOnParts, workshop.SummaryInTransit, workshop.ExecutionPartsArriving},
		{entity.WorkOrderWaitingOnParts, workshop.SummaryIncomplete, workshop.ExecutionBlocked},
		{entity.WorkOrderWaitingOnParts, workshop.SummaryFullyStaged, workshop.ExecutionBlocked},
		{entity.WorkOrderScheduled, workshop.SummaryNoPartsNeeded, workshop.ExecutionReady},
		{entity.WorkOrderScheduled, workshop.SummaryReadyToStage, workshop.ExecutionReady},
		{entity.WorkOrderConfirmed, workshop.SummaryFullyIssued, workshop.ExecutionReady},
		{entity.WorkOrderScheduled, workshop.SummaryInTransit, workshop.ExecutionPartsArriving},
		{entity.WorkOrderConfirmed, workshop.SummaryUnknown, workshop.ExecutionPartsCheck},
		{entity.WorkOrderScheduled, workshop.SummaryNeedsCheck, workshop.ExecutionPartsCheck},
		{entity.WorkOrderConfirmed, workshop.SummaryIncomplete, workshop.ExecutionPartsMissing},
	}
	for _, tc := range cases {
		got, ok := workshop.ProjectExecutionStatus(tc.order, tc.summary)
		assert.True(t, ok, "%s/%s", tc.order, tc.summary)
		assert.Equal(t, tc.want, got, "%s/%s", tc.order, tc.summary)
	}
}

// Every valid (status, summary) pair maps to a label; the dashboard never has
// to fall back to the raw status code for well-formed input.
func TestProjectExecutionStatus_CoversAllPairs(t *testing.T) {
	for _, order := range allOrderStatuses {
		for _, summary := range allSummaries {
			label, ok := workshop.ProjectExecutionStatus(order, summary)
			assert.True(t, ok, "%s/%s has no projection", order, summary)
			assert.NotEmpty(t, label)
		}
	}
}

func TestProjectExecutionStatus_UnknownPair(t *testing.T) {
	_, ok := workshop.ProjectExecutionStatus("weggegooid", workshop.SummaryUnknown)
	assert.False(t, ok)
}
