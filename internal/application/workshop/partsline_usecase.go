package workshop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/herbie65/Tesland2026-sub004/internal/application/inventory"
	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
	"github.com/herbie65/Tesland2026-sub004/pkg/logger"
)

// PartsLineUseCase drives parts lines through the warehouse flow
// (reserve, stage, issue, return) and keeps reservations and the owning work
// order's summary consistent with every change. Each operation is one
// transaction ending in the shared recompute-on-write refresh.
type PartsLineUseCase struct {
	txRunner TxRunner
	ledger   *inventory.LedgerUseCase
	log      *logger.Logger
}

// NewPartsLineUseCase builds the use case.
func NewPartsLineUseCase(txRunner TxRunner, ledger *inventory.LedgerUseCase, log *logger.Logger) *PartsLineUseCase {
	return &PartsLineUseCase{txRunner: txRunner, ledger: ledger, log: log}
}

// SetStatus moves a parts line to a new status and applies the matching
// ledger effect: issuing consumes the reservation and the stock, a return
// restocks. Statuses outside the closed set are rejected with
// domain.ErrUnknownStatus before anything runs.
func (uc *PartsLineUseCase) SetStatus(ctx context.Context, lineID string, status entity.PartsLineStatus, actor string) (*TransitionResult, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("parts line status %q: %w", status, domain.ErrUnknownStatus)
	}
	var result *TransitionResult
	err := uc.txRunner.RunWorkshop(ctx, func(
		invRepo repository.InventoryRepository,
		mutRepo repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		_ repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error {
		line, err := lineRepo.GetForUpdate(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if line.SKU != "" {
			switch status {
			case entity.PartsLineReserved:
				if missing := line.Quantity - line.QuantityReserved; missing > 0 {
					if _, err := uc.ledger.ReserveInTx(ctx, invRepo, mutRepo, line.SKU, missing, line.ID, actor); err != nil {
						return err
					}
					line.QuantityReserved = line.Quantity
				}
			case entity.PartsLineIssued:
				if err := uc.ledger.IssueInTx(ctx, invRepo, mutRepo, line.SKU, line.Quantity, line.ID, actor); err != nil {
					return err
				}
				line.QuantityReserved = 0
			case entity.PartsLineReturned:
				if err := uc.ledger.ReturnInTx(ctx, invRepo, mutRepo, line.SKU, line.Quantity, line.ID, actor); err != nil {
					return err
				}
			}
		}
		line.Status = status
		line.UpdatedAt = time.Now()
		if err := lineRepo.Update(ctx, line); err != nil {
			return err
		}
		result, err = refreshWorkOrder(ctx, lineRepo, jobRepo, line.WorkOrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ChangeQuantity updates the requested quantity and adjusts the ledger
// reservation by the difference, so reservations always track demand. A
// growing quantity that cannot be covered from stock surfaces
// domain.ErrInsufficientStock for the caller to fall back to a back-order.
func (uc *PartsLineUseCase) ChangeQuantity(ctx context.Context, lineID string, newQty int, actor string) (*TransitionResult, error) {
	if newQty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var result *TransitionResult
	err := uc.txRunner.RunWorkshop(ctx, func(
		invRepo repository.InventoryRepository,
		mutRepo repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		_ repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error {
		line, err := lineRepo.GetForUpdate(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if line.SKU != "" && line.QuantityReserved > 0 {
			if err := uc.ledger.AdjustForQuantityChangeInTx(ctx, invRepo, mutRepo, line.SKU, line.QuantityReserved, newQty, line.ID, actor); err != nil {
				return err
			}
			line.QuantityReserved = newQty
		}
		line.Quantity = newQty
		line.UpdatedAt = time.Now()
		if err := lineRepo.Update(ctx, line); err != nil {
			return err
		}
		result, err = refreshWorkOrder(ctx, lineRepo, jobRepo, line.WorkOrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReserveOutcome reports how a reservation attempt ended: fully reserved, or
// partially reserved with a back-order opened for the shortfall.
type ReserveOutcome struct {
	Reserved  int
	Shortfall int
	BackOrder *entity.BackOrder
	WorkOrder *TransitionResult
}

// ReserveOrBackOrder tries to reserve the line's full quantity. When stock
// does not cover it, whatever is available is reserved and a pending
// back-order is opened for the remainder — the recoverable fallback for
// insufficient stock. Fails with domain.ErrDuplicateBackOrder when the line
// already has an open back-order.
func (uc *PartsLineUseCase) ReserveOrBackOrder(ctx context.Context, lineID, actor string) (*ReserveOutcome, error) {
	var outcome *ReserveOutcome
	err := uc.txRunner.RunWorkshop(ctx, func(
		invRepo repository.InventoryRepository,
		mutRepo repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		orderRepo repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error {
		line, err := lineRepo.GetForUpdate(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if line.SKU == "" {
			return fmt.Errorf("parts line %s has no SKU: %w", lineID, domain.ErrInvalidInput)
		}
		need := line.Quantity - line.QuantityReserved
		if need <= 0 {
			line.Status = entity.PartsLineReserved
			line.UpdatedAt = time.Now()
			if err := lineRepo.Update(ctx, line); err != nil {
				return err
			}
			outcome = &ReserveOutcome{Reserved: line.QuantityReserved}
			outcome.WorkOrder, err = refreshWorkOrder(ctx, lineRepo, jobRepo, line.WorkOrderID)
			return err
		}

		got := 0
		_, err = uc.ledger.ReserveInTx(ctx, invRepo, mutRepo, line.SKU, need, line.ID, actor)
		switch {
		case err == nil:
			got = need
		case errors.Is(err, domain.ErrInsufficientStock):
			// Take what is there. The retry goes through the same
			// conditional update, so a concurrent taker can only make it
			// fail again, never over-reserve.
			rec, gerr := invRepo.Get(ctx, line.SKU)
			if gerr != nil {
				return gerr
			}
			if rec != nil && rec.Available() > 0 {
				avail := rec.Available()
				if avail > need {
					avail = need
				}
				if _, rerr := uc.ledger.ReserveInTx(ctx, invRepo, mutRepo, line.SKU, avail, line.ID, actor); rerr == nil {
					got = avail
				} else if !errors.Is(rerr, domain.ErrInsufficientStock) {
					return rerr
				}
			}
		default:
			return err
		}

		line.QuantityReserved += got
		shortfall := line.Quantity - line.QuantityReserved
		outcome = &ReserveOutcome{Reserved: line.QuantityReserved, Shortfall: shortfall}

		if shortfall == 0 {
			line.Status = entity.PartsLineReserved
		} else {
			bo, berr := openBackOrderInTx(ctx, orderRepo, line, shortfall, actor)
			if berr != nil {
				return berr
			}
			outcome.BackOrder = bo
			line.Status = entity.PartsLineOrdered
			uc.log.Info().
				Str("parts_line", line.ID).
				Str("sku", line.SKU).
				Int("reserved", line.QuantityReserved).
				Int("shortfall", shortfall).
				Msg("stock shortfall, back-order opened")
		}
		line.UpdatedAt = time.Now()
		if err := lineRepo.Update(ctx, line); err != nil {
			return err
		}
		outcome.WorkOrder, err = refreshWorkOrder(ctx, lineRepo, jobRepo, line.WorkOrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}
