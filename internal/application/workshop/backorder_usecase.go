package workshop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/herbie65/Tesland2026-sub004/internal/application/inventory"
	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
	"github.com/herbie65/Tesland2026-sub004/pkg/logger"
)

// BackOrderUseCase owns the supplier back-order lifecycle:
//
//	pending --markOrdered/orderViaSupplier--> ordered
//	ordered --receive(partial)--> partially_received --receive--> received
//	ordered --receive(full)--> received
//	any non-terminal --cancel--> cancelled
//
// Receive and cancel on the same back-order serialize through a row lock, so
// a cancel can never be silently overtaken by a concurrent receipt.
type BackOrderUseCase struct {
	txRunner TxRunner
	ledger   *inventory.LedgerUseCase
	supplier SupplierGateway
	log      *logger.Logger
}

// NewBackOrderUseCase builds the use case. supplier may be nil when the BeX
// integration is disabled; OrderViaSupplier and SyncExternalStatus then
// return domain.ErrSupplierUnavailable.
func NewBackOrderUseCase(txRunner TxRunner, ledger *inventory.LedgerUseCase, supplier SupplierGateway, log *logger.Logger) *BackOrderUseCase {
	return &BackOrderUseCase{txRunner: txRunner, ledger: ledger, supplier: supplier, log: log}
}

// Open creates a pending back-order for the shortfall on a parts line. At
// most one open back-order may exist per line (domain.ErrDuplicateBackOrder).
// The line moves to ordered so the aggregate reflects the pending supply.
func (uc *BackOrderUseCase) Open(ctx context.Context, partsLineID string, qty int, actor string) (*entity.BackOrder, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.BackOrder
	err := uc.txRunner.RunWorkshop(ctx, func(
		_ repository.InventoryRepository,
		_ repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		orderRepo repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error {
		line, err := lineRepo.GetForUpdate(ctx, partsLineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		bo, err := openBackOrderInTx(ctx, orderRepo, line, qty, actor)
		if err != nil {
			return err
		}
		line.Status = entity.PartsLineOrdered
		line.UpdatedAt = time.Now()
		if err := lineRepo.Update(ctx, line); err != nil {
			return err
		}
		if _, err := refreshWorkOrder(ctx, lineRepo, jobRepo, line.WorkOrderID); err != nil {
			return err
		}
		created = bo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// openBackOrderInTx creates the pending back-order record. Shared with the
// parts line shortfall fallback. The duplicate check here is advisory; the
// partial unique index on open back-orders is the real guard under races.
func openBackOrderInTx(
	ctx context.Context,
	orderRepo repository.BackOrderRepository,
	line *entity.PartsLine,
	qty int,
	actor string,
) (*entity.BackOrder, error) {
	existing, err := orderRepo.GetOpenByPartsLine(ctx, line.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("parts line %s: %w", line.ID, domain.ErrDuplicateBackOrder)
	}
	now := time.Now()
	bo := &entity.BackOrder{
		ID:              uuid.New().String(),
		PartsLineID:     line.ID,
		ProductID:       line.ProductID,
		SKU:             line.SKU,
		QuantityOrdered: qty,
		UnitCost:        decimal.Zero,
		Status:          entity.BackOrderPending,
		CreatedBy:       actor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := orderRepo.Create(ctx, bo); err != nil {
		return nil, err
	}
	return bo, nil
}

// MarkOrderedInput is the order metadata recorded when staff place the order
// manually (phone, supplier portal).
type MarkOrderedInput struct {
	Supplier     string
	Reference    string
	OrderDate    time.Time
	ExpectedDate *time.Time
	Quantity     int // 0 keeps the opened quantity
	UnitCost     decimal.Decimal
}

// MarkOrdered moves a pending back-order to ordered and records the order
// metadata. Goods are not yet on hand, so inventory is untouched.
func (uc *BackOrderUseCase) MarkOrdered(ctx context.Context, backOrderID string, in MarkOrderedInput, actor string) (*entity.BackOrder, error) {
	var updated *entity.BackOrder
	err := uc.txRunner.RunWorkshop(ctx, func(
		_ repository.InventoryRepository,
		_ repository.StockMutationRepository,
		_ repository.PartsLineRepository,
		orderRepo repository.BackOrderRepository,
		_ repository.WorkOrderRepository,
	) error {
		bo, err := orderRepo.GetForUpdate(ctx, backOrderID)
		if err != nil {
			return err
		}
		if bo == nil {
			return domain.ErrNotFound
		}
		if bo.Status != entity.BackOrderPending {
			return fmt.Errorf("mark ordered from %s: %w", bo.Status, domain.ErrInvalidTransition)
		}
		if in.Quantity > 0 {
			bo.QuantityOrdered = in.Quantity
		}
		orderDate := in.OrderDate
		if orderDate.IsZero() {
			orderDate = time.Now()
		}
		bo.Supplier = in.Supplier
		bo.Reference = in.Reference
		bo.OrderDate = &orderDate
		bo.ExpectedDate = in.ExpectedDate
		bo.UnitCost = in.UnitCost
		bo.Status = entity.BackOrderOrdered
		bo.UpdatedAt = time.Now()
		if err := orderRepo.Update(ctx, bo); err != nil {
			return err
		}
		updated = bo
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("back_order", backOrderID).
		Str("actor", actor).
		Str("supplier", updated.Supplier).
		Msg("back-order marked as ordered")
	return updated, nil
}

// OrderViaSupplier places the order through the BeX API. On success it
// behaves like MarkOrdered with the server-supplied reference and ETA; on
// failure or timeout the back-order stays pending and the error is surfaced.
func (uc *BackOrderUseCase) OrderViaSupplier(ctx context.Context, backOrderID, actor string) (*entity.BackOrder, error) {
	if uc.supplier == nil {
		return nil, domain.ErrSupplierUnavailable
	}
	bo, err := uc.get(ctx, backOrderID)
	if err != nil {
		return nil, err
	}
	if bo.Status != entity.BackOrderPending {
		return nil, fmt.Errorf("order via supplier from %s: %w", bo.Status, domain.ErrInvalidTransition)
	}
	placed, err := uc.supplier.PlaceOrder(ctx, bo.SKU, bo.QuantityOrdered)
	if err != nil {
		return nil, fmt.Errorf("place order for %s: %w", bo.SKU, err)
	}
	updated, err := uc.MarkOrdered(ctx, backOrderID, MarkOrderedInput{
		Supplier:     "bex",
		Reference:    placed.Reference,
		ExpectedDate: placed.ETA,
		UnitCost:     bo.UnitCost,
	}, actor)
	if err != nil {
		// The remote order exists but the local state moved underneath us.
		// Loud failure so staff can reconcile manually.
		uc.log.Error().
			Str("back_order", backOrderID).
			Str("reference", placed.Reference).
			Err(err).
			Msg("order placed at supplier but local update failed")
		return nil, err
	}
	return updated, nil
}

// Receive books a (partial) delivery against an ordered back-order. The
// running received total may never exceed the ordered quantity: over-receipt
// usually means a data error and is rejected, not clamped. A receipt that
// completes the order closes it and marks the linked parts line received;
// anything less leaves both partially received. Goods go into on-hand stock
// on every receipt.
func (uc *BackOrderUseCase) Receive(ctx context.Context, backOrderID string, qty int, actor string) (*entity.BackOrder, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("receive %d: %w", qty, domain.ErrInvalidReceiptQuantity)
	}
	var updated *entity.BackOrder
	err := uc.txRunner.RunWorkshop(ctx, func(
		invRepo repository.InventoryRepository,
		mutRepo repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		orderRepo repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error {
		bo, err := orderRepo.GetForUpdate(ctx, backOrderID)
		if err != nil {
			return err
		}
		if bo == nil {
			return domain.ErrNotFound
		}
		if bo.Status != entity.BackOrderOrdered && bo.Status != entity.BackOrderPartiallyReceived {
			return fmt.Errorf("receive in %s: %w", bo.Status, domain.ErrInvalidTransition)
		}
		total := bo.QuantityReceived + qty
		if total > bo.QuantityOrdered {
			return fmt.Errorf("receipt total %d exceeds ordered %d: %w",
				total, bo.QuantityOrdered, domain.ErrInvalidReceiptQuantity)
		}
		if bo.SKU != "" {
			if err := uc.ledger.ReceiveInTx(ctx, invRepo, mutRepo, bo.SKU, qty, bo.ID, actor); err != nil {
				return err
			}
		}
		bo.QuantityReceived = total
		lineStatus := entity.PartsLinePartiallyReceived
		if total >= bo.QuantityOrdered {
			bo.Status = entity.BackOrderReceived
			lineStatus = entity.PartsLineReceived
		} else {
			bo.Status = entity.BackOrderPartiallyReceived
		}
		bo.UpdatedAt = time.Now()
		if err := orderRepo.Update(ctx, bo); err != nil {
			return err
		}

		line, err := lineRepo.GetForUpdate(ctx, bo.PartsLineID)
		if err != nil {
			return err
		}
		if line != nil {
			line.Status = lineStatus
			line.UpdatedAt = time.Now()
			if err := lineRepo.Update(ctx, line); err != nil {
				return err
			}
			if _, err := refreshWorkOrder(ctx, lineRepo, jobRepo, line.WorkOrderID); err != nil {
				return err
			}
		}
		updated = bo
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("back_order", backOrderID).
		Int("received", qty).
		Int("total", updated.QuantityReceived).
		Str("status", string(updated.Status)).
		Msg("back-order receipt booked")
	return updated, nil
}

// Cancel terminates a non-terminal back-order, releases any reservation the
// originating parts line still holds and records the reason. The line drops
// back to unknown so the aggregate flags it for a fresh check.
func (uc *BackOrderUseCase) Cancel(ctx context.Context, backOrderID, reason, actor string) (*entity.BackOrder, error) {
	var updated *entity.BackOrder
	err := uc.txRunner.RunWorkshop(ctx, func(
		invRepo repository.InventoryRepository,
		mutRepo repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		orderRepo repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error {
		bo, err := orderRepo.GetForUpdate(ctx, backOrderID)
		if err != nil {
			return err
		}
		if bo == nil {
			return domain.ErrNotFound
		}
		if bo.Status.Terminal() {
			return fmt.Errorf("cancel in %s: %w", bo.Status, domain.ErrInvalidTransition)
		}
		bo.Status = entity.BackOrderCancelled
		bo.CancelReason = reason
		bo.UpdatedAt = time.Now()
		if err := orderRepo.Update(ctx, bo); err != nil {
			return err
		}

		line, err := lineRepo.GetForUpdate(ctx, bo.PartsLineID)
		if err != nil {
			return err
		}
		if line != nil {
			if line.QuantityReserved > 0 && line.SKU != "" {
				if err := uc.ledger.ReleaseInTx(ctx, invRepo, mutRepo, line.SKU, line.QuantityReserved, line.ID, "back-order cancelled", actor); err != nil {
					return err
				}
				line.QuantityReserved = 0
			}
			line.Status = entity.PartsLineUnknown
			line.UpdatedAt = time.Now()
			if err := lineRepo.Update(ctx, line); err != nil {
				return err
			}
			if _, err := refreshWorkOrder(ctx, lineRepo, jobRepo, line.WorkOrderID); err != nil {
				return err
			}
		}
		updated = bo
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("back_order", backOrderID).
		Str("actor", actor).
		Str("reason", reason).
		Msg("back-order cancelled")
	return updated, nil
}

// SyncExternalStatus polls BeX for the order status and reconciles local
// state. Idempotent: when the remote reports nothing new this is a no-op.
// Received-quantity deltas run through the normal Receive path; a remote
// cancellation cancels locally.
func (uc *BackOrderUseCase) SyncExternalStatus(ctx context.Context, backOrderID string) (*entity.BackOrder, error) {
	if uc.supplier == nil {
		return nil, domain.ErrSupplierUnavailable
	}
	bo, err := uc.get(ctx, backOrderID)
	if err != nil {
		return nil, err
	}
	if bo.Status.Terminal() || bo.Reference == "" {
		return bo, nil
	}
	remote, err := uc.supplier.GetOrderStatus(ctx, bo.Reference)
	if err != nil {
		return nil, fmt.Errorf("get order status %s: %w", bo.Reference, err)
	}
	if remote.Status == SupplierOrderCancelled {
		return uc.Cancel(ctx, backOrderID, "cancelled by supplier", "bex-sync")
	}
	delta := remote.ReceivedQty - bo.QuantityReceived
	if delta <= 0 {
		return bo, nil
	}
	updated, err := uc.Receive(ctx, backOrderID, delta, "bex-sync")
	if err != nil && errors.Is(err, domain.ErrInvalidReceiptQuantity) {
		// Remote claims more than we ordered; flag it instead of guessing.
		uc.log.Error().
			Str("back_order", backOrderID).
			Int("remote_received", remote.ReceivedQty).
			Int("ordered", bo.QuantityOrdered).
			Msg("supplier reports receipt beyond ordered quantity")
		return nil, err
	}
	return updated, err
}

// get loads a back-order outside any transaction.
func (uc *BackOrderUseCase) get(ctx context.Context, backOrderID string) (*entity.BackOrder, error) {
	var found *entity.BackOrder
	err := uc.txRunner.RunWorkshop(ctx, func(
		_ repository.InventoryRepository,
		_ repository.StockMutationRepository,
		_ repository.PartsLineRepository,
		orderRepo repository.BackOrderRepository,
		_ repository.WorkOrderRepository,
	) error {
		bo, err := orderRepo.GetByID(ctx, backOrderID)
		if err != nil {
			return err
		}
		if bo == nil {
			return domain.ErrNotFound
		}
		found = bo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
