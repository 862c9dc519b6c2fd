package workshop_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/workshop"
)

func lines(statuses ...entity.PartsLineStatus) []entity.PartsLine {
	out := make([]entity.PartsLine, len(statuses))
	for i, s := range statuses {
		out[i] = entity.PartsLine{ID: string(rune('a' + i)), Status: s, Quantity: 1}
	}
	return out
}

var allLineStatuses = []entity.PartsLineStatus{
	entity.PartsLineUnknown, entity.PartsLineInStock, entity.PartsLineReserved,
	entity.PartsLineOrdered, entity.PartsLinePartiallyReceived, entity.PartsLineReceived,
	entity.PartsLineStaged, entity.PartsLineIssued, entity.PartsLineReturned,
}

func TestAggregate_Rules(t *testing.T) {
	cases := []struct {
		name     string
		statuses []entity.PartsLineStatus
		want     workshop.PartsSummaryStatus
	}{
		{"no lines", nil, workshop.SummaryNoPartsNeeded},
		{"all unknown", []entity.PartsLineStatus{entity.PartsLineUnknown, entity.PartsLineUnknown}, workshop.SummaryUnknown},
		{"one unknown blocks a clean aggregate", []entity.PartsLineStatus{entity.PartsLineIssued, entity.PartsLineUnknown}, workshop.SummaryNeedsCheck},
		{"all issued", []entity.PartsLineStatus{entity.PartsLineIssued, entity.PartsLineIssued}, workshop.SummaryFullyIssued},
		{"staged and issued mix", []entity.PartsLineStatus{entity.PartsLineStaged, entity.PartsLineIssued}, workshop.SummaryFullyStaged},
		{"all staged", []entity.PartsLineStatus{entity.PartsLineStaged}, workshop.SummaryFullyStaged},
		{"any ordered means in transit", []entity.PartsLineStatus{entity.PartsLineReserved, entity.PartsLineOrdered}, workshop.SummaryInTransit},
		{"partially received counts as in transit", []entity.PartsLineStatus{entity.PartsLineIssued, entity.PartsLinePartiallyReceived}, workshop.SummaryInTransit},
		{"all ready-ish", []entity.PartsLineStatus{entity.PartsLineInStock, entity.PartsLineReserved, entity.PartsLineReceived}, workshop.SummaryReadyToStage},
		{"ready-ish plus staged falls through", []entity.PartsLineStatus{entity.PartsLineReserved, entity.PartsLineStaged}, workshop.SummaryIncomplete},
		{"returned line is incomplete", []entity.PartsLineStatus{entity.PartsLineReturned}, workshop.SummaryIncomplete},
		{"single in stock", []entity.PartsLineStatus{entity.PartsLineInStock}, workshop.SummaryReadyToStage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, workshop.Aggregate(lines(tc.statuses...)))
		})
	}
}

// The aggregate is a function of the multiset of statuses: shuffling the
// lines never changes the outcome.
func TestAggregate_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(6)
		statuses := make([]entity.PartsLineStatus, n)
		for j := range statuses {
			statuses[j] = allLineStatuses[rng.Intn(len(allLineStatuses))]
		}
		want := workshop.Aggregate(lines(statuses...))

		rng.Shuffle(n, func(a, b int) { statuses[a], statuses[b] = statuses[b], statuses[a] })
		assert.Equal(t, want, workshop.Aggregate(lines(statuses...)), "statuses %v", statuses)
	}
}

// Aggregate is total: any combination of valid line statuses yields one of
// the defined summary values, never an empty or invented one.
func TestAggregate_Total(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := rng.Intn(8)
		statuses := make([]entity.PartsLineStatus, n)
		for j := range statuses {
			statuses[j] = allLineStatuses[rng.Intn(len(allLineStatuses))]
		}
		got := workshop.Aggregate(lines(statuses...))
		assert.True(t, got.Valid(), "statuses %v produced %q", statuses, got)
	}
}
