package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/herbie65/Tesland2026-sub004/internal/application/dto"
	"github.com/herbie65/Tesland2026-sub004/internal/domain"
)

// domainError maps a domain error to its HTTP response. All handlers share
// this table so the same error always gets the same status and code.
func domainError(c *fiber.Ctx, err error) error {
	type mapping struct {
		target error
		status int
		code   string
	}
	for _, m := range []mapping{
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrUnknownStatus, fiber.StatusBadRequest, "UNKNOWN_STATUS"},
		{domain.ErrInvalidReceiptQuantity, fiber.StatusBadRequest, "INVALID_RECEIPT_QUANTITY"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{domain.ErrOverrideRequired, fiber.StatusConflict, "OVERRIDE_REQUIRED"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrNotReserved, fiber.StatusConflict, "NOT_RESERVED"},
		{domain.ErrDuplicateBackOrder, fiber.StatusConflict, "DUPLICATE_BACK_ORDER"},
		{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{domain.ErrSupplierUnavailable, fiber.StatusBadGateway, "SUPPLIER_UNAVAILABLE"},
	} {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
