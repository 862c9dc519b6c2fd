package repository

import (
	"context"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
)

// PartsLineRepository is the port for work order parts lines.
type PartsLineRepository interface {
	GetByID(ctx context.Context, id string) (*entity.PartsLine, error)
	// GetForUpdate locks the row (SELECT FOR UPDATE) so concurrent status
	// changes on the same line serialize.
	GetForUpdate(ctx context.Context, id string) (*entity.PartsLine, error)
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]entity.PartsLine, error)
	Create(ctx context.Context, line *entity.PartsLine) error
	Update(ctx context.Context, line *entity.PartsLine) error
}
