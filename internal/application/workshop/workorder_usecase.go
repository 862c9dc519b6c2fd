package workshop

import (
	"context"
	"fmt"

	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
	domainworkshop "github.com/herbie65/Tesland2026-sub004/internal/domain/workshop"
	"github.com/herbie65/Tesland2026-sub004/pkg/logger"
)

// WorkOrderUseCase applies the status resolver to persisted work orders. The
// parts summary is recomputed from the lines inside the same transaction on
// every call; the stored column is only a cache of that recomputation.
type WorkOrderUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewWorkOrderUseCase builds the use case.
func NewWorkOrderUseCase(txRunner TxRunner, log *logger.Logger) *WorkOrderUseCase {
	return &WorkOrderUseCase{txRunner: txRunner, log: log}
}

// TransitionResult is the persisted outcome of a requested transition plus
// the dashboard projection for the new state.
type TransitionResult struct {
	FinalStatus     entity.WorkOrderStatus
	PartsSummary    domainworkshop.PartsSummaryStatus
	OverrideUsed    bool
	PlanningRisk    bool
	ExecutionStatus domainworkshop.ExecutionStatus // empty when no rule matches
}

// Transition requests a status change for a work order. The effective final
// status comes from the resolver and may differ from the target (hard gate on
// in_uitvoering). Recoverable rejections (domain.ErrOverrideRequired) leave
// the work order untouched.
func (uc *WorkOrderUseCase) Transition(
	ctx context.Context,
	workOrderID string,
	target entity.WorkOrderStatus,
	overrideReason string,
	privileged bool,
	actor string,
) (*TransitionResult, error) {
	var result *TransitionResult
	err := uc.txRunner.RunWorkshop(ctx, func(
		_ repository.InventoryRepository,
		_ repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		orderRepo repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error {
		job, err := jobRepo.GetForUpdate(ctx, workOrderID)
		if err != nil {
			return err
		}
		if job == nil {
			return domain.ErrNotFound
		}
		lines, err := lineRepo.ListByWorkOrder(ctx, workOrderID)
		if err != nil {
			return err
		}
		summary := domainworkshop.Aggregate(lines)
		res, err := domainworkshop.ResolveTransition(domainworkshop.TransitionRequest{
			Current:        job.Status,
			Target:         target,
			PartsSummary:   summary,
			OverrideReason: overrideReason,
			Privileged:     privileged,
		})
		if err != nil {
			return err
		}
		if err := jobRepo.UpdateStatus(ctx, workOrderID, res.FinalStatus, string(summary), res.PlanningRisk); err != nil {
			return err
		}
		if res.OverrideUsed {
			uc.log.Warn().
				Str("work_order", workOrderID).
				Str("actor", actor).
				Str("parts_summary", string(summary)).
				Str("reason", overrideReason).
				Msg("work order scheduled with parts override, flagged as planning risk")
		}
		if res.FinalStatus != target {
			uc.log.Info().
				Str("work_order", workOrderID).
				Str("requested", string(target)).
				Str("final", string(res.FinalStatus)).
				Msg("transition downgraded, parts not fully issued")
		}
		label, _ := domainworkshop.ProjectExecutionStatus(res.FinalStatus, summary)
		result = &TransitionResult{
			FinalStatus:     res.FinalStatus,
			PartsSummary:    summary,
			OverrideUsed:    res.OverrideUsed,
			PlanningRisk:    res.PlanningRisk,
			ExecutionStatus: label,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RefreshPartsSummary recomputes the parts summary after a parts line change
// and re-resolves the effective status against the job's own current status
// (a job in uitvoering whose parts stopped being fully issued drops back to
// wachten_op_onderdelen). Idempotent: re-running with unchanged lines is a
// no-op.
func (uc *WorkOrderUseCase) RefreshPartsSummary(ctx context.Context, workOrderID string) (*TransitionResult, error) {
	var result *TransitionResult
	err := uc.txRunner.RunWorkshop(ctx, func(
		_ repository.InventoryRepository,
		_ repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		_ repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error {
		res, err := refreshWorkOrder(ctx, lineRepo, jobRepo, workOrderID)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExecutionStatus derives the operator-facing label for one work order.
// Read-only; the summary is aggregated fresh, not read from the cache.
func (uc *WorkOrderUseCase) ExecutionStatus(ctx context.Context, workOrderID string) (*TransitionResult, error) {
	var result *TransitionResult
	err := uc.txRunner.RunWorkshop(ctx, func(
		_ repository.InventoryRepository,
		_ repository.StockMutationRepository,
		lineRepo repository.PartsLineRepository,
		_ repository.BackOrderRepository,
		jobRepo repository.WorkOrderRepository,
	) error {
		job, err := jobRepo.GetByID(ctx, workOrderID)
		if err != nil {
			return err
		}
		if job == nil {
			return domain.ErrNotFound
		}
		lines, err := lineRepo.ListByWorkOrder(ctx, workOrderID)
		if err != nil {
			return err
		}
		summary := domainworkshop.Aggregate(lines)
		label, _ := domainworkshop.ProjectExecutionStatus(job.Status, summary)
		result = &TransitionResult{
			FinalStatus:     job.Status,
			PartsSummary:    summary,
			PlanningRisk:    job.PlanningRisk,
			ExecutionStatus: label,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// refreshWorkOrder is the shared recompute-on-write step: aggregate the
// lines, resolve against the current status and persist the outcome. Shared
// by the parts line and back-order use cases so every write path triggers
// exactly the same recomputation.
func refreshWorkOrder(
	ctx context.Context,
	lineRepo repository.PartsLineRepository,
	jobRepo repository.WorkOrderRepository,
	workOrderID string,
) (*TransitionResult, error) {
	job, err := jobRepo.GetForUpdate(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("work order %s: %w", workOrderID, domain.ErrNotFound)
	}
	lines, err := lineRepo.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	summary := domainworkshop.Aggregate(lines)
	res, err := domainworkshop.ResolveTransition(domainworkshop.TransitionRequest{
		Current:      job.Status,
		Target:       job.Status,
		PartsSummary: summary,
	})
	if err != nil {
		return nil, err
	}
	if err := jobRepo.UpdateStatus(ctx, workOrderID, res.FinalStatus, string(summary), res.PlanningRisk); err != nil {
		return nil, err
	}
	label, _ := domainworkshop.ProjectExecutionStatus(res.FinalStatus, summary)
	return &TransitionResult{
		FinalStatus:     res.FinalStatus,
		PartsSummary:    summary,
		PlanningRisk:    res.PlanningRisk,
		ExecutionStatus: label,
	}, nil
}
