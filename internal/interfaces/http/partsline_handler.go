package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/herbie65/Tesland2026-sub004/internal/application/dto"
	"github.com/herbie65/Tesland2026-sub004/internal/application/workshop"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
)

// PartsLineHandler serves the parts line endpoints (protected).
type PartsLineHandler struct {
	uc *workshop.PartsLineUseCase
}

// NewPartsLineHandler builds the handler.
func NewPartsLineHandler(uc *workshop.PartsLineUseCase) *PartsLineHandler {
	return &PartsLineHandler{uc: uc}
}

// SetStatus godoc
// @Summary      Move a parts line to a new status
// @Description  Reserved, issued and returned statuses also move stock in the
//
//	ledger; the work order's parts summary is recomputed afterwards.
//
// @Tags         parts-lines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Parts line ID"
// @Param        body  body  dto.SetLineStatusRequest  true  "status"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts-lines/{id}/status [put]
func (h *PartsLineHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetLineStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.uc.SetStatus(c.Context(), c.Params("id"), entity.PartsLineStatus(in.Status), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(transitionResponse(res))
}

// ChangeQuantity godoc
// @Summary      Change the requested quantity of a parts line
// @Tags         parts-lines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "Parts line ID"
// @Param        body  body  dto.ChangeLineQuantityRequest  true  "quantity"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts-lines/{id}/quantity [put]
func (h *PartsLineHandler) ChangeQuantity(c *fiber.Ctx) error {
	var in dto.ChangeLineQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.uc.ChangeQuantity(c.Context(), c.Params("id"), in.Quantity, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(transitionResponse(res))
}

// Reserve godoc
// @Summary      Reserve stock for a parts line, back-ordering any shortfall
// @Tags         parts-lines
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Parts line ID"
// @Success      200  {object}  dto.ReserveLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/parts-lines/{id}/reserve [post]
func (h *PartsLineHandler) Reserve(c *fiber.Ctx) error {
	out, err := h.uc.ReserveOrBackOrder(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	resp := dto.ReserveLineResponse{
		Reserved:  out.Reserved,
		Shortfall: out.Shortfall,
	}
	if out.BackOrder != nil {
		bo := backOrderResponse(out.BackOrder)
		resp.BackOrder = &bo
	}
	if out.WorkOrder != nil {
		resp.WorkOrder = transitionResponse(out.WorkOrder)
	}
	return c.JSON(resp)
}
