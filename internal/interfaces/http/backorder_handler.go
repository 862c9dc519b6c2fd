package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/herbie65/Tesland2026-sub004/internal/application/dto"
	"github.com/herbie65/Tesland2026-sub004/internal/application/workshop"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
)

// BackOrderHandler serves the back-order lifecycle endpoints (protected).
type BackOrderHandler struct {
	uc *workshop.BackOrderUseCase
}

// NewBackOrderHandler builds the handler.
func NewBackOrderHandler(uc *workshop.BackOrderUseCase) *BackOrderHandler {
	return &BackOrderHandler{uc: uc}
}

func backOrderResponse(bo *entity.BackOrder) dto.BackOrderResponse {
	return dto.BackOrderResponse{
		ID:               bo.ID,
		PartsLineID:      bo.PartsLineID,
		SKU:              bo.SKU,
		QuantityOrdered:  bo.QuantityOrdered,
		QuantityReceived: bo.QuantityReceived,
		UnitCost:         bo.UnitCost,
		Supplier:         bo.Supplier,
		Reference:        bo.Reference,
		OrderDate:        bo.OrderDate,
		ExpectedDate:     bo.ExpectedDate,
		Status:           string(bo.Status),
		CancelReason:     bo.CancelReason,
	}
}

// Open godoc
// @Summary      Open a pending back-order for a parts line
// @Tags         back-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenBackOrderRequest  true  "parts_line_id, quantity"
// @Success      201   {object}  dto.BackOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/back-orders [post]
func (h *BackOrderHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenBackOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	bo, err := h.uc.Open(c.Context(), in.PartsLineID, in.Quantity, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(backOrderResponse(bo))
}

// MarkOrdered godoc
// @Summary      Record a manually placed supplier order
// @Tags         back-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Back-order ID"
// @Param        body  body  dto.MarkOrderedRequest true  "supplier, reference, dates, quantity, unit_cost"
// @Success      200   {object}  dto.BackOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/back-orders/{id}/mark-ordered [post]
func (h *BackOrderHandler) MarkOrdered(c *fiber.Ctx) error {
	var in dto.MarkOrderedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	input := workshop.MarkOrderedInput{
		Supplier:     in.Supplier,
		Reference:    in.Reference,
		ExpectedDate: in.ExpectedDate,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
	}
	if in.OrderDate != nil {
		input.OrderDate = *in.OrderDate
	}
	bo, err := h.uc.MarkOrdered(c.Context(), c.Params("id"), input, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(backOrderResponse(bo))
}

// Order godoc
// @Summary      Place the back-order at the supplier via the BeX API
// @Tags         back-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Back-order ID"
// @Success      200  {object}  dto.BackOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/back-orders/{id}/order [post]
func (h *BackOrderHandler) Order(c *fiber.Ctx) error {
	bo, err := h.uc.OrderViaSupplier(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(backOrderResponse(bo))
}

// Receive godoc
// @Summary      Book a (partial) delivery on a back-order
// @Tags         back-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Back-order ID"
// @Param        body  body  dto.ReceiveBackOrderRequest   true  "quantity"
// @Success      200   {object}  dto.BackOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/back-orders/{id}/receive [post]
func (h *BackOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveBackOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	bo, err := h.uc.Receive(c.Context(), c.Params("id"), in.Quantity, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(backOrderResponse(bo))
}

// Cancel godoc
// @Summary      Cancel a back-order and release its reservation
// @Tags         back-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "Back-order ID"
// @Param        body  body  dto.CancelBackOrderRequest   true  "reason"
// @Success      200   {object}  dto.BackOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/back-orders/{id}/cancel [post]
func (h *BackOrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelBackOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	bo, err := h.uc.Cancel(c.Context(), c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(backOrderResponse(bo))
}

// Sync godoc
// @Summary      Pull the remote supplier status into the back-order
// @Tags         back-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Back-order ID"
// @Success      200  {object}  dto.BackOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/back-orders/{id}/sync [post]
func (h *BackOrderHandler) Sync(c *fiber.Ctx) error {
	bo, err := h.uc.SyncExternalStatus(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(backOrderResponse(bo))
}
