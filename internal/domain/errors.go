package domain

import "errors"

// Domain errors (no external dependencies).
//
// Recoverable conditions (insufficient stock, override required, duplicate
// back-order, invalid receipt quantity) are returned as values and handled by
// the caller. ErrUnknownStatus is a configuration error: a status code outside
// the closed enumerated sets reached the state machines and the operation must
// abort loudly instead of guessing.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrForbidden              = errors.New("access denied")
	ErrConflict               = errors.New("conflict with current state")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrNotReserved            = errors.New("no reservation to release")
	ErrOverrideRequired       = errors.New("override reason required to schedule with unready parts")
	ErrDuplicateBackOrder     = errors.New("parts line already has an open back-order")
	ErrInvalidReceiptQuantity = errors.New("invalid receipt quantity")
	ErrInvalidTransition      = errors.New("transition not allowed from current status")
	ErrUnknownStatus          = errors.New("unknown status code")
	ErrSupplierUnavailable    = errors.New("supplier integration unavailable")
)
