package inventory

import (
	"context"

	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, handing it
// repositories bound to that transaction. Guarantees the ledger's atomicity:
// the conditional stock update and its audit row commit or roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		mutRepo repository.StockMutationRepository,
	) error) error
}
