package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
	"github.com/herbie65/Tesland2026-sub004/pkg/logger"
)

// LedgerUseCase is the inventory ledger: reserve, release, receive and issue
// against per-SKU records, always through a single atomic conditional update
// plus an audit row in the same transaction.
//
// Insufficient stock is a recoverable condition (the caller falls back to a
// back-order), never swallowed: a failed reservation cannot proceed as if it
// succeeded.
type LedgerUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewLedgerUseCase builds the use case.
func NewLedgerUseCase(txRunner TxRunner, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, log: log}
}

// Get returns the stock position of one SKU, or nil when no record exists.
func (uc *LedgerUseCase) Get(ctx context.Context, sku string) (*entity.InventoryRecord, error) {
	var rec *entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, _ repository.StockMutationRepository) error {
		var err error
		rec, err = invRepo.Get(ctx, sku)
		return err
	})
	return rec, err
}

// Reserve places a soft hold of qty on the SKU for jobRef. Returns the
// reservation id, or domain.ErrInsufficientStock when available stock
// (on-hand minus reserved) is below qty. Unmanaged SKUs (labor, service
// items) always succeed without touching quantities.
func (uc *LedgerUseCase) Reserve(ctx context.Context, sku string, qty int, jobRef, actor string) (string, error) {
	var id string
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, mutRepo repository.StockMutationRepository) error {
		var err error
		id, err = uc.ReserveInTx(ctx, invRepo, mutRepo, sku, qty, jobRef, actor)
		return err
	})
	return id, err
}

// ReserveInTx is Reserve running on repositories bound to the caller's
// transaction (used by the workshop use cases).
func (uc *LedgerUseCase) ReserveInTx(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	mutRepo repository.StockMutationRepository,
	sku string, qty int, jobRef, actor string,
) (string, error) {
	if sku == "" || qty <= 0 {
		return "", domain.ErrInvalidInput
	}
	ok, err := invRepo.TryReserve(ctx, sku, qty)
	if err != nil {
		return "", fmt.Errorf("reserve %s: %w", sku, err)
	}
	if !ok {
		return "", fmt.Errorf("reserve %d x %s for %s: %w", qty, sku, jobRef, domain.ErrInsufficientStock)
	}
	mut := &entity.StockMutation{
		ID:        uuid.New().String(),
		SKU:       sku,
		Type:      entity.MutationReserve,
		Quantity:  qty,
		JobRef:    jobRef,
		CreatedBy: actor,
		CreatedAt: time.Now(),
	}
	if err := mutRepo.Create(ctx, mut); err != nil {
		return "", fmt.Errorf("record reservation: %w", err)
	}
	return mut.ID, nil
}

// Release gives a reservation back. Releasing more than is currently
// reserved clamps at zero with a warning instead of going negative, so a
// double release is harmless. Releasing against a SKU that has no inventory
// record at all returns domain.ErrNotReserved.
func (uc *LedgerUseCase) Release(ctx context.Context, sku string, qty int, jobRef, reason, actor string) error {
	return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, mutRepo repository.StockMutationRepository) error {
		return uc.ReleaseInTx(ctx, invRepo, mutRepo, sku, qty, jobRef, reason, actor)
	})
}

// ReleaseInTx is Release on the caller's transaction.
func (uc *LedgerUseCase) ReleaseInTx(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	mutRepo repository.StockMutationRepository,
	sku string, qty int, jobRef, reason, actor string,
) error {
	if sku == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	rec, err := invRepo.Get(ctx, sku)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("release %s: %w", sku, domain.ErrNotReserved)
	}
	if !rec.ManageStock {
		return nil
	}
	released, err := invRepo.Release(ctx, sku, qty)
	if err != nil {
		return fmt.Errorf("release %s: %w", sku, err)
	}
	if released < qty {
		uc.log.Warn().
			Str("sku", sku).
			Str("job_ref", jobRef).
			Int("requested", qty).
			Int("released", released).
			Msg("release exceeds current reservation, clamped at zero")
	}
	if released == 0 {
		return nil
	}
	mut := &entity.StockMutation{
		ID:        uuid.New().String(),
		SKU:       sku,
		Type:      entity.MutationRelease,
		Quantity:  released,
		JobRef:    jobRef,
		Reason:    reason,
		CreatedBy: actor,
		CreatedAt: time.Now(),
	}
	if err := mutRepo.Create(ctx, mut); err != nil {
		return fmt.Errorf("record release: %w", err)
	}
	return nil
}

// Receive books qty into on-hand stock (goods received). It does not
// reserve; staging for a job remains a separate step.
func (uc *LedgerUseCase) Receive(ctx context.Context, sku string, qty int, actor string) error {
	return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, mutRepo repository.StockMutationRepository) error {
		return uc.ReceiveInTx(ctx, invRepo, mutRepo, sku, qty, "", actor)
	})
}

// ReceiveInTx is Receive on the caller's transaction. jobRef links the
// receipt to a back-order when applicable.
func (uc *LedgerUseCase) ReceiveInTx(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	mutRepo repository.StockMutationRepository,
	sku string, qty int, jobRef, actor string,
) error {
	if sku == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	if err := invRepo.Receive(ctx, sku, qty); err != nil {
		return fmt.Errorf("receive %s: %w", sku, err)
	}
	mut := &entity.StockMutation{
		ID:        uuid.New().String(),
		SKU:       sku,
		Type:      entity.MutationReceive,
		Quantity:  qty,
		JobRef:    jobRef,
		CreatedBy: actor,
		CreatedAt: time.Now(),
	}
	if err := mutRepo.Create(ctx, mut); err != nil {
		return fmt.Errorf("record receipt: %w", err)
	}
	return nil
}

// IssueInTx consumes a reservation: qty leaves both on-hand and reserved in
// one update (parts physically handed to the workshop).
func (uc *LedgerUseCase) IssueInTx(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	mutRepo repository.StockMutationRepository,
	sku string, qty int, jobRef, actor string,
) error {
	if sku == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	rec, err := invRepo.Get(ctx, sku)
	if err != nil {
		return err
	}
	if rec != nil && !rec.ManageStock {
		return nil
	}
	ok, err := invRepo.Issue(ctx, sku, qty)
	if err != nil {
		return fmt.Errorf("issue %s: %w", sku, err)
	}
	if !ok {
		return fmt.Errorf("issue %d x %s for %s: %w", qty, sku, jobRef, domain.ErrInsufficientStock)
	}
	mut := &entity.StockMutation{
		ID:        uuid.New().String(),
		SKU:       sku,
		Type:      entity.MutationIssue,
		Quantity:  qty,
		JobRef:    jobRef,
		CreatedBy: actor,
		CreatedAt: time.Now(),
	}
	if err := mutRepo.Create(ctx, mut); err != nil {
		return fmt.Errorf("record issue: %w", err)
	}
	return nil
}

// ReturnInTx restocks an issued part (workshop handed it back).
func (uc *LedgerUseCase) ReturnInTx(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	mutRepo repository.StockMutationRepository,
	sku string, qty int, jobRef, actor string,
) error {
	if sku == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	if err := invRepo.Receive(ctx, sku, qty); err != nil {
		return fmt.Errorf("return %s: %w", sku, err)
	}
	mut := &entity.StockMutation{
		ID:        uuid.New().String(),
		SKU:       sku,
		Type:      entity.MutationReturn,
		Quantity:  qty,
		JobRef:    jobRef,
		CreatedBy: actor,
		CreatedAt: time.Now(),
	}
	if err := mutRepo.Create(ctx, mut); err != nil {
		return fmt.Errorf("record return: %w", err)
	}
	return nil
}

// AdjustForQuantityChange keeps the reservation in line with demand when a
// parts line's requested quantity changes: reserve the difference when it
// grew, release it when it shrank.
func (uc *LedgerUseCase) AdjustForQuantityChange(ctx context.Context, sku string, oldQty, newQty int, jobRef, actor string) error {
	return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, mutRepo repository.StockMutationRepository) error {
		return uc.AdjustForQuantityChangeInTx(ctx, invRepo, mutRepo, sku, oldQty, newQty, jobRef, actor)
	})
}

// AdjustForQuantityChangeInTx is AdjustForQuantityChange on the caller's
// transaction.
func (uc *LedgerUseCase) AdjustForQuantityChangeInTx(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	mutRepo repository.StockMutationRepository,
	sku string, oldQty, newQty int, jobRef, actor string,
) error {
	if oldQty < 0 || newQty < 0 {
		return domain.ErrInvalidInput
	}
	diff := newQty - oldQty
	switch {
	case diff > 0:
		_, err := uc.ReserveInTx(ctx, invRepo, mutRepo, sku, diff, jobRef, actor)
		return err
	case diff < 0:
		return uc.ReleaseInTx(ctx, invRepo, mutRepo, sku, -diff, jobRef, "quantity change", actor)
	}
	return nil
}
