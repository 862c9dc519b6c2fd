package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/herbie65/Tesland2026-sub004/internal/application/dto"
	"github.com/herbie65/Tesland2026-sub004/internal/application/inventory"
)

// InventoryHandler serves the stock ledger endpoints (protected).
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Get godoc
// @Summary      Stock position of one SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.InventoryRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	rec, err := h.ledger.Get(c.Context(), c.Params("sku"))
	if err != nil {
		return domainError(c, err)
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sku not found"})
	}
	return c.JSON(dto.InventoryRecordResponse{
		SKU:              rec.SKU,
		QuantityOnHand:   rec.QuantityOnHand,
		QuantityReserved: rec.QuantityReserved,
		Available:        rec.Available(),
		ManageStock:      rec.ManageStock,
	})
}

// Reserve godoc
// @Summary      Reserve stock for a job
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveRequest  true  "sku, quantity, job_ref"
// @Success      201   {object}  dto.ReserveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/reserve [post]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	id, err := h.ledger.Reserve(c.Context(), in.SKU, in.Quantity, in.JobRef, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReserveResponse{ReservationID: id})
}

// Release godoc
// @Summary      Release a reservation
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReleaseRequest  true  "sku, quantity, job_ref, reason"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/release [post]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.ledger.Release(c.Context(), in.SKU, in.Quantity, in.JobRef, in.Reason, GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reservation released"})
}

// Receive godoc
// @Summary      Book received goods into stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "sku, quantity"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.ledger.Receive(c.Context(), in.SKU, in.Quantity, GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock received"})
}

// Adjust godoc
// @Summary      Realign a reservation after a demand change
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustQuantityRequest  true  "sku, old_qty, new_qty, job_ref"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.ledger.AdjustForQuantityChange(c.Context(), in.SKU, in.OldQty, in.NewQty, in.JobRef, GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reservation adjusted"})
}
