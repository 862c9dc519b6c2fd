package inventory_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herbie65/Tesland2026-sub004/internal/application/inventory"
	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
	"github.com/herbie65/Tesland2026-sub004/pkg/logger"
)

// memStore is the in-memory double for the inventory tables. The mutex plays
// the role of the database's row locks: the fake tx runner holds it for the
// whole transaction, so concurrent transactions serialize exactly like the
// conditional updates do in PostgreSQL.
type memStore struct {
	mu        sync.Mutex
	records   map[string]*entity.InventoryRecord
	mutations []entity.StockMutation
}

func newMemStore() *memStore {
	return &memStore{records: map[string]*entity.InventoryRecord{}}
}

func (s *memStore) seed(sku string, onHand, reserved int, managed bool) {
	s.records[sku] = &entity.InventoryRecord{
		SKU: sku, QuantityOnHand: onHand, QuantityReserved: reserved, ManageStock: managed,
	}
}

func (s *memStore) mutationsOf(sku string) []entity.StockMutation {
	var out []entity.StockMutation
	for _, m := range s.mutations {
		if m.SKU == sku {
			out = append(out, m)
		}
	}
	return out
}

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) Get(_ context.Context, sku string) (*entity.InventoryRecord, error) {
	rec, ok := r.s.records[sku]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memInventoryRepo) TryReserve(_ context.Context, sku string, qty int) (bool, error) {
	rec, ok := r.s.records[sku]
	if !ok {
		return false, nil
	}
	if !rec.ManageStock {
		return true, nil
	}
	if rec.QuantityOnHand-rec.QuantityReserved < qty {
		return false, nil
	}
	rec.QuantityReserved += qty
	return true, nil
}

func (r *memInventoryRepo) Release(_ context.Context, sku string, qty int) (int, error) {
	rec, ok := r.s.records[sku]
	if !ok {
		return 0, nil
	}
	released := qty
	if rec.QuantityReserved < released {
		released = rec.QuantityReserved
	}
	rec.QuantityReserved -= released
	return released, nil
}

func (r *memInventoryRepo) Receive(_ context.Context, sku string, qty int) error {
	rec, ok := r.s.records[sku]
	if !ok {
		rec = &entity.InventoryRecord{SKU: sku, ManageStock: true}
		r.s.records[sku] = rec
	}
	rec.QuantityOnHand += qty
	return nil
}

func (r *memInventoryRepo) Issue(_ context.Context, sku string, qty int) (bool, error) {
	rec, ok := r.s.records[sku]
	if !ok || rec.QuantityOnHand < qty {
		return false, nil
	}
	rec.QuantityOnHand -= qty
	if rec.QuantityReserved < qty {
		rec.QuantityReserved = 0
	} else {
		rec.QuantityReserved -= qty
	}
	return true, nil
}

type memMutationRepo struct{ s *memStore }

func (r *memMutationRepo) Create(_ context.Context, m *entity.StockMutation) error {
	r.s.mutations = append(r.s.mutations, *m)
	return nil
}

func (r *memMutationRepo) ListBySKU(_ context.Context, sku string, limit int) ([]entity.StockMutation, error) {
	out := r.s.mutationsOf(sku)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(repository.InventoryRepository, repository.StockMutationRepository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&memInventoryRepo{t.s}, &memMutationRepo{t.s})
}

func newLedger(s *memStore) *inventory.LedgerUseCase {
	return inventory.NewLedgerUseCase(&memTxRunner{s}, logger.Nop())
}

// Reserve/release round trip: a second job cannot take stock held by the
// first, and can once the hold is given back.
func TestLedger_ReserveReleaseRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.seed("1044532-00-B", 5, 0, true)
	ledger := newLedger(store)

	id, err := ledger.Reserve(ctx, "1044532-00-B", 3, "wo-1001", "magazijn")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = ledger.Reserve(ctx, "1044532-00-B", 3, "wo-1002", "magazijn")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.NoError(t, ledger.Release(ctx, "1044532-00-B", 3, "wo-1001", "geannuleerd", "magazijn"))

	_, err = ledger.Reserve(ctx, "1044532-00-B", 3, "wo-1002", "magazijn")
	require.NoError(t, err)

	rec := store.records["1044532-00-B"]
	assert.Equal(t, 5, rec.QuantityOnHand)
	assert.Equal(t, 3, rec.QuantityReserved)

	types := []string{}
	for _, m := range store.mutationsOf("1044532-00-B") {
		types = append(types, m.Type)
	}
	assert.Equal(t, []string{entity.MutationReserve, entity.MutationRelease, entity.MutationReserve}, types)
}

// With 5 on hand and ten concurrent reservations of 3, exactly one may win.
func TestLedger_ConcurrentReserveExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.seed("1609293-00-A", 5, 0, true)
	ledger := newLedger(store)

	var wg sync.WaitGroup
	var okCount, shortCount int32
	var mu sync.Mutex
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Reserve(ctx, "1609293-00-A", 3, "wo-race", "test")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				okCount++
			} else if assert.ErrorIs(t, err, domain.ErrInsufficientStock) {
				shortCount++
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, okCount)
	assert.EqualValues(t, 9, shortCount)
	assert.Equal(t, 3, store.records["1609293-00-A"].QuantityReserved)
}

func TestLedger_ReleaseClampsAtZero(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.seed("SKU-CLAMP", 10, 0, true)
	ledger := newLedger(store)

	_, err := ledger.Reserve(ctx, "SKU-CLAMP", 2, "wo-1", "test")
	require.NoError(t, err)

	// Over-release clamps; the audit row records what actually moved.
	require.NoError(t, ledger.Release(ctx, "SKU-CLAMP", 5, "wo-1", "", "test"))
	assert.Equal(t, 0, store.records["SKU-CLAMP"].QuantityReserved)

	muts := store.mutationsOf("SKU-CLAMP")
	require.Len(t, muts, 2)
	assert.Equal(t, 2, muts[1].Quantity)

	// A full double release moves nothing and writes no audit row.
	require.NoError(t, ledger.Release(ctx, "SKU-CLAMP", 1, "wo-1", "", "test"))
	assert.Len(t, store.mutationsOf("SKU-CLAMP"), 2)
}

func TestLedger_ReleaseUnknownSKU(t *testing.T) {
	ledger := newLedger(newMemStore())
	err := ledger.Release(context.Background(), "NO-SUCH-SKU", 1, "wo-1", "", "test")
	assert.ErrorIs(t, err, domain.ErrNotReserved)
}

// Unmanaged SKUs (labor, consumables) reserve and release without touching
// quantities.
func TestLedger_UnmanagedSKU(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.seed("ARBEID", 0, 0, false)
	ledger := newLedger(store)

	id, err := ledger.Reserve(ctx, "ARBEID", 4, "wo-1", "test")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 0, store.records["ARBEID"].QuantityReserved)

	require.NoError(t, ledger.Release(ctx, "ARBEID", 4, "wo-1", "", "test"))
	assert.Equal(t, 0, store.records["ARBEID"].QuantityReserved)
}

func TestLedger_ReceiveAndIssue(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := newLedger(store)

	require.NoError(t, ledger.Receive(ctx, "1188371-00-C", 4, "magazijn"))
	_, err := ledger.Reserve(ctx, "1188371-00-C", 4, "wo-7", "magazijn")
	require.NoError(t, err)

	err = (&memTxRunner{store}).Run(ctx, func(inv repository.InventoryRepository, mut repository.StockMutationRepository) error {
		return ledger.IssueInTx(ctx, inv, mut, "1188371-00-C", 4, "wo-7", "monteur")
	})
	require.NoError(t, err)

	rec := store.records["1188371-00-C"]
	assert.Equal(t, 0, rec.QuantityOnHand)
	assert.Equal(t, 0, rec.QuantityReserved)

	err = (&memTxRunner{store}).Run(ctx, func(inv repository.InventoryRepository, mut repository.StockMutationRepository) error {
		return ledger.IssueInTx(ctx, inv, mut, "1188371-00-C", 1, "wo-7", "monteur")
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestLedger_AdjustForQuantityChange(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.seed("SKU-ADJ", 10, 0, true)
	ledger := newLedger(store)

	_, err := ledger.Reserve(ctx, "SKU-ADJ", 2, "wo-9", "test")
	require.NoError(t, err)

	require.NoError(t, ledger.AdjustForQuantityChange(ctx, "SKU-ADJ", 2, 5, "wo-9", "test"))
	assert.Equal(t, 5, store.records["SKU-ADJ"].QuantityReserved)

	require.NoError(t, ledger.AdjustForQuantityChange(ctx, "SKU-ADJ", 5, 1, "wo-9", "test"))
	assert.Equal(t, 1, store.records["SKU-ADJ"].QuantityReserved)

	// No change is a no-op, also in the audit trail.
	before := len(store.mutationsOf("SKU-ADJ"))
	require.NoError(t, ledger.AdjustForQuantityChange(ctx, "SKU-ADJ", 1, 1, "wo-9", "test"))
	assert.Len(t, store.mutationsOf("SKU-ADJ"), before)

	err = ledger.AdjustForQuantityChange(ctx, "SKU-ADJ", 1, 100, "wo-9", "test")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Property: under any random interleaving of ledger operations the record
// never goes negative and reserved never exceeds on-hand.
func TestLedger_InvariantsUnderRandomOps(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.seed("SKU-RAND", 20, 0, true)
	ledger := newLedger(store)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		qty := 1 + rng.Intn(5)
		switch rng.Intn(4) {
		case 0:
			_, _ = ledger.Reserve(ctx, "SKU-RAND", qty, "wo-r", "test")
		case 1:
			_ = ledger.Release(ctx, "SKU-RAND", qty, "wo-r", "", "test")
		case 2:
			_ = ledger.Receive(ctx, "SKU-RAND", qty, "test")
		case 3:
			_ = (&memTxRunner{store}).Run(ctx, func(inv repository.InventoryRepository, mut repository.StockMutationRepository) error {
				return ledger.IssueInTx(ctx, inv, mut, "SKU-RAND", qty, "wo-r", "test")
			})
		}
		rec := store.records["SKU-RAND"]
		require.GreaterOrEqual(t, rec.QuantityOnHand, 0, "op %d", i)
		require.GreaterOrEqual(t, rec.QuantityReserved, 0, "op %d", i)
		require.LessOrEqual(t, rec.QuantityReserved, rec.QuantityOnHand, "op %d", i)
	}
}

func TestLedger_InvalidInput(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger(newMemStore())

	_, err := ledger.Reserve(ctx, "", 1, "wo", "test")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = ledger.Reserve(ctx, "SKU", 0, "wo", "test")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, ledger.Release(ctx, "SKU", -1, "wo", "", "test"), domain.ErrInvalidInput)
	assert.ErrorIs(t, ledger.Receive(ctx, "SKU", 0, "test"), domain.ErrInvalidInput)
}
