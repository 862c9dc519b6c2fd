package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/herbie65/Tesland2026-sub004/internal/application/dto"
	"github.com/herbie65/Tesland2026-sub004/internal/application/workshop"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
)

// WorkOrderHandler serves the work order status endpoints (protected).
type WorkOrderHandler struct {
	uc *workshop.WorkOrderUseCase
}

// NewWorkOrderHandler builds the handler.
func NewWorkOrderHandler(uc *workshop.WorkOrderUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc}
}

func transitionResponse(res *workshop.TransitionResult) dto.TransitionResponse {
	return dto.TransitionResponse{
		FinalStatus:     string(res.FinalStatus),
		PartsSummary:    string(res.PartsSummary),
		OverrideUsed:    res.OverrideUsed,
		PlanningRisk:    res.PlanningRisk,
		ExecutionStatus: string(res.ExecutionStatus),
	}
}

// Transition godoc
// @Summary      Request a work order status change
// @Description  The effective status may differ from the target: moving to
//
//	in_uitvoering without fully issued parts lands on
//	wachten_op_onderdelen instead.
//
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Work order ID"
// @Param        body  body  dto.TransitionRequest  true  "target_status, override_reason"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/transition [post]
func (h *WorkOrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.uc.Transition(
		c.Context(),
		c.Params("id"),
		entity.WorkOrderStatus(in.TargetStatus),
		in.OverrideReason,
		IsPrivileged(c),
		GetUserID(c),
	)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(transitionResponse(res))
}

// RefreshPartsSummary godoc
// @Summary      Recompute the parts summary from the lines
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Work order ID"
// @Success      200  {object}  dto.TransitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/parts-summary/refresh [post]
func (h *WorkOrderHandler) RefreshPartsSummary(c *fiber.Ctx) error {
	res, err := h.uc.RefreshPartsSummary(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(transitionResponse(res))
}

// ExecutionStatus godoc
// @Summary      Operator-facing execution status of a work order
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Work order ID"
// @Success      200  {object}  dto.TransitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/execution-status [get]
func (h *WorkOrderHandler) ExecutionStatus(c *fiber.Ctx) error {
	res, err := h.uc.ExecutionStatus(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(transitionResponse(res))
}
