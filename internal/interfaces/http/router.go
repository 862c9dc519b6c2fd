package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/herbie65/Tesland2026-sub004/internal/application/inventory"
	"github.com/herbie65/Tesland2026-sub004/internal/application/usecase"
	"github.com/herbie65/Tesland2026-sub004/internal/application/workshop"
)

// RouterDeps are the router's dependencies.
type RouterDeps struct {
	Ledger      *inventory.LedgerUseCase
	WorkOrderUC *workshop.WorkOrderUseCase
	PartsLineUC *workshop.PartsLineUseCase
	BackOrderUC *workshop.BackOrderUseCase
	ProductUC   *usecase.ProductUseCase
	JWTSecret   string
}

// Router registers the API routes. Everything under /api requires a Bearer
// token; role-based behavior (planner override) comes from the token's role
// claim.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Inventory ledger
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup.Post("/reserve", inventoryHandler.Reserve)
	invGroup.Post("/release", inventoryHandler.Release)
	invGroup.Post("/receive", inventoryHandler.Receive)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Get("/:sku", inventoryHandler.Get)

	// Products (catalog, read-only)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/:sku", productHandler.GetBySKU)

	// Work orders
	workOrders := api.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	workOrders.Post("/:id/transition", workOrderHandler.Transition)
	workOrders.Post("/:id/parts-summary/refresh", workOrderHandler.RefreshPartsSummary)
	workOrders.Get("/:id/execution-status", workOrderHandler.ExecutionStatus)

	// Parts lines
	partsLines := api.Group("/parts-lines")
	partsLineHandler := NewPartsLineHandler(deps.PartsLineUC)
	partsLines.Put("/:id/status", partsLineHandler.SetStatus)
	partsLines.Put("/:id/quantity", partsLineHandler.ChangeQuantity)
	partsLines.Post("/:id/reserve", partsLineHandler.Reserve)

	// Back-orders
	backOrders := api.Group("/back-orders")
	backOrderHandler := NewBackOrderHandler(deps.BackOrderUC)
	backOrders.Post("/", backOrderHandler.Open)
	backOrders.Post("/:id/mark-ordered", backOrderHandler.MarkOrdered)
	backOrders.Post("/:id/order", backOrderHandler.Order)
	backOrders.Post("/:id/receive", backOrderHandler.Receive)
	backOrders.Post("/:id/cancel", backOrderHandler.Cancel)
	backOrders.Post("/:id/sync", backOrderHandler.Sync)
}
