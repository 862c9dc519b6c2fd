package workshop_test

// In-memory doubles for the workshop transaction. The store mutex stands in
// for the database's row locks: RunWorkshop holds it for the whole closure,
// so the tests see the same serialization the SQL adapters provide.

import (
	"context"
	"sync"
	"time"

	"github.com/herbie65/Tesland2026-sub004/internal/application/inventory"
	"github.com/herbie65/Tesland2026-sub004/internal/application/workshop"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
	"github.com/herbie65/Tesland2026-sub004/pkg/logger"
)

type wsStore struct {
	mu        sync.Mutex
	inventory map[string]*entity.InventoryRecord
	mutations []entity.StockMutation
	lines     map[string]*entity.PartsLine
	orders    map[string]*entity.BackOrder
	jobs      map[string]*entity.WorkOrder
}

func newWsStore() *wsStore {
	return &wsStore{
		inventory: map[string]*entity.InventoryRecord{},
		lines:     map[string]*entity.PartsLine{},
		orders:    map[string]*entity.BackOrder{},
		jobs:      map[string]*entity.WorkOrder{},
	}
}

func (s *wsStore) seedStock(sku string, onHand, reserved int) {
	s.inventory[sku] = &entity.InventoryRecord{
		SKU: sku, QuantityOnHand: onHand, QuantityReserved: reserved, ManageStock: true,
	}
}

func (s *wsStore) seedJob(id string, status entity.WorkOrderStatus) *entity.WorkOrder {
	job := &entity.WorkOrder{
		ID: id, Number: "WO-" + id, Status: status,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	s.jobs[id] = job
	return job
}

func (s *wsStore) seedLine(id, jobID, sku string, qty, reserved int, status entity.PartsLineStatus) *entity.PartsLine {
	line := &entity.PartsLine{
		ID: id, WorkOrderID: jobID, SKU: sku,
		Quantity: qty, QuantityReserved: reserved, Status: status,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	s.lines[id] = line
	return line
}

// ── repository fakes ──

type wsInventoryRepo struct{ s *wsStore }

func (r *wsInventoryRepo) Get(_ context.Context, sku string) (*entity.InventoryRecord, error) {
	rec, ok := r.s.inventory[sku]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *wsInventoryRepo) TryReserve(_ context.Context, sku string, qty int) (bool, error) {
	rec, ok := r.s.inventory[sku]
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

func (r *wsInventoryRepo) Release(_ context.Context, sku string, qty int) (int, error) {
	rec, ok := r.s.inventory[sku]
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

func (r *wsInventoryRepo) Receive(_ context.Context, sku string, qty int) error {
	rec, ok := r.s.inventory[sku]
	if !ok {
		rec = &entity.InventoryRecord{SKU: sku, ManageStock: true}
		r.s.inventory[sku] = rec
	}
	rec.QuantityOnHand += qty
	return nil
}

func (r *wsInventoryRepo) Issue(_ context.Context, sku string, qty int) (bool, error) {
	rec, ok := r.s.inventory[sku]
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

type wsMutationRepo struct{ s *wsStore }

func (r *wsMutationRepo) Create(_ context.Context, m *entity.StockMutation) error {
	r.s.mutations = append(r.s.mutations, *m)
	return nil
}

func (r *wsMutationRepo) ListBySKU(_ context.Context, sku string, limit int) ([]entity.StockMutation, error) {
	var out []entity.StockMutation
	for _, m := range r.s.mutations {
		if m.SKU == sku {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type wsLineRepo struct{ s *wsStore }

func (r *wsLineRepo) GetByID(_ context.Context, id string) (*entity.PartsLine, error) {
	line, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *line
	return &cp, nil
}

func (r *wsLineRepo) GetForUpdate(ctx context.Context, id string) (*entity.PartsLine, error) {
	return r.GetByID(ctx, id)
}

func (r *wsLineRepo) ListByWorkOrder(_ context.Context, workOrderID string) ([]entity.PartsLine, error) {
	var out []entity.PartsLine
	for _, line := range r.s.lines {
		if line.WorkOrderID == workOrderID {
			out = append(out, *line)
		}
	}
	return out, nil
}

func (r *wsLineRepo) Create(_ context.Context, line *entity.PartsLine) error {
	cp := *line
	r.s.lines[line.ID] = &cp
	return nil
}

func (r *wsLineRepo) Update(_ context.Context, line *entity.PartsLine) error {
	cp := *line
	r.s.lines[line.ID] = &cp
	return nil
}

type wsOrderRepo struct{ s *wsStore }

func (r *wsOrderRepo) GetByID(_ context.Context, id string) (*entity.BackOrder, error) {
	bo, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *bo
	return &cp, nil
}

func (r *wsOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.BackOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *wsOrderRepo) GetOpenByPartsLine(_ context.Context, partsLineID string) (*entity.BackOrder, error) {
	for _, bo := range r.s.orders {
		if bo.PartsLineID == partsLineID && !bo.Status.Terminal() {
			cp := *bo
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *wsOrderRepo) ListOpen(_ context.Context) ([]entity.BackOrder, error) {
	var out []entity.BackOrder
	for _, bo := range r.s.orders {
		if !bo.Status.Terminal() {
			out = append(out, *bo)
		}
	}
	return out, nil
}

func (r *wsOrderRepo) Create(_ context.Context, bo *entity.BackOrder) error {
	cp := *bo
	r.s.orders[bo.ID] = &cp
	return nil
}

func (r *wsOrderRepo) Update(_ context.Context, bo *entity.BackOrder) error {
	cp := *bo
	r.s.orders[bo.ID] = &cp
	return nil
}

type wsJobRepo struct{ s *wsStore }

func (r *wsJobRepo) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

func (r *wsJobRepo) GetForUpdate(ctx context.Context, id string) (*entity.WorkOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *wsJobRepo) Create(_ context.Context, job *entity.WorkOrder) error {
	cp := *job
	r.s.jobs[job.ID] = &cp
	return nil
}

func (r *wsJobRepo) UpdateStatus(_ context.Context, id string, status entity.WorkOrderStatus, partsSummary string, planningRisk bool) error {
	job, ok := r.s.jobs[id]
	if !ok {
		return nil
	}
	job.Status = status
	job.PartsSummary = partsSummary
	job.PlanningRisk = planningRisk
	job.UpdatedAt = time.Now()
	return nil
}

type wsTxRunner struct{ s *wsStore }

func (t *wsTxRunner) RunWorkshop(_ context.Context, fn func(
	repository.InventoryRepository,
	repository.StockMutationRepository,
	repository.PartsLineRepository,
	repository.BackOrderRepository,
	repository.WorkOrderRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&wsInventoryRepo{t.s}, &wsMutationRepo{t.s}, &wsLineRepo{t.s}, &wsOrderRepo{t.s}, &wsJobRepo{t.s})
}

func (t *wsTxRunner) Run(_ context.Context, fn func(
	repository.InventoryRepository,
	repository.StockMutationRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&wsInventoryRepo{t.s}, &wsMutationRepo{t.s})
}

// ── supplier fake ──

type fakeSupplier struct {
	placeErr   error
	placed     []string // SKUs of placed orders
	reference  string
	remote     *workshop.RemoteOrderStatus
	remoteErr  error
	statusGets int
}

func (f *fakeSupplier) PlaceOrder(_ context.Context, sku string, qty int) (*workshop.PlacedOrder, error) {
	if f.placeErr != nil {
		return nil, f.placeErr
	}
	f.placed = append(f.placed, sku)
	return &workshop.PlacedOrder{Reference: f.reference}, nil
}

func (f *fakeSupplier) GetOrderStatus(_ context.Context, reference string) (*workshop.RemoteOrderStatus, error) {
	f.statusGets++
	if f.remoteErr != nil {
		return nil, f.remoteErr
	}
	return f.remote, nil
}

// ── wiring helpers ──

func newHarness(s *wsStore, supplier workshop.SupplierGateway) (*workshop.WorkOrderUseCase, *workshop.PartsLineUseCase, *workshop.BackOrderUseCase) {
	tx := &wsTxRunner{s}
	ledger := inventory.NewLedgerUseCase(tx, logger.Nop())
	return workshop.NewWorkOrderUseCase(tx, logger.Nop()),
		workshop.NewPartsLineUseCase(tx, ledger, logger.Nop()),
		workshop.NewBackOrderUseCase(tx, ledger, supplier, logger.Nop())
}
