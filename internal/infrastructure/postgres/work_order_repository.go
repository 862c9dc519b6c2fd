package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implements WorkOrderRepository on PostgreSQL.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository builds the adapter. Pass a pool or a tx.
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const workOrderColumns = `id, number, vehicle_id, description, status,
	parts_summary, planning_risk, scheduled_at, created_at, updated_at`

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var w entity.WorkOrder
	err := row.Scan(
		&w.ID, &w.Number, &w.VehicleID, &w.Description, &w.Status,
		&w.PartsSummary, &w.PlanningRisk, &w.ScheduledAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan work order: %w", err)
	}
	return &w, nil
}

// GetByID returns one work order, or nil when it does not exist.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	return scanWorkOrder(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate locks the row for the duration of a status resolution.
func (r *WorkOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1 FOR UPDATE`
	return scanWorkOrder(r.q.QueryRow(ctx, query, id))
}

// Create stores a new work order.
func (r *WorkOrderRepo) Create(ctx context.Context, wo *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (id, number, vehicle_id, description, status,
			parts_summary, planning_risk, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		wo.ID, wo.Number, wo.VehicleID, wo.Description, wo.Status,
		wo.PartsSummary, wo.PlanningRisk, wo.ScheduledAt, wo.CreatedAt, wo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create work order: %w", err)
	}
	return nil
}

// UpdateStatus writes the resolver's outcome: effective status, recomputed
// parts summary cache and the planning risk flag, in one statement.
func (r *WorkOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.WorkOrderStatus, partsSummary string, planningRisk bool) error {
	query := `
		UPDATE work_orders
		SET status = $2, parts_summary = $3, planning_risk = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, status, partsSummary, planningRisk)
	if err != nil {
		return fmt.Errorf("update work order status: %w", err)
	}
	return nil
}
