package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransitionRequest asks for a work order status change. The override reason
// is only consulted when scheduling with unready parts.
type TransitionRequest struct {
	TargetStatus   string `json:"target_status"`
	OverrideReason string `json:"override_reason"`
}

// TransitionResponse reports the resolver's verdict.
type TransitionResponse struct {
	FinalStatus     string `json:"final_status"`
	PartsSummary    string `json:"parts_summary"`
	OverrideUsed    bool   `json:"override_used"`
	PlanningRisk    bool   `json:"planning_risk"`
	ExecutionStatus string `json:"execution_status,omitempty"`
}

// SetLineStatusRequest moves a parts line to a new status.
type SetLineStatusRequest struct {
	Status string `json:"status"`
}

// ChangeLineQuantityRequest updates the requested quantity on a parts line.
type ChangeLineQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ReserveLineResponse reports a reservation attempt on a parts line.
type ReserveLineResponse struct {
	Reserved  int                `json:"reserved"`
	Shortfall int                `json:"shortfall"`
	BackOrder *BackOrderResponse `json:"back_order,omitempty"`
	WorkOrder TransitionResponse `json:"work_order"`
}

// OpenBackOrderRequest creates a pending back-order for a parts line.
type OpenBackOrderRequest struct {
	PartsLineID string `json:"parts_line_id"`
	Quantity    int    `json:"quantity"`
}

// MarkOrderedRequest records manually placed order metadata.
type MarkOrderedRequest struct {
	Supplier     string          `json:"supplier"`
	Reference    string          `json:"reference"`
	OrderDate    *time.Time      `json:"order_date"`
	ExpectedDate *time.Time      `json:"expected_date"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// ReceiveBackOrderRequest books a (partial) delivery.
type ReceiveBackOrderRequest struct {
	Quantity int `json:"quantity"`
}

// CancelBackOrderRequest terminates a back-order with a reason.
type CancelBackOrderRequest struct {
	Reason string `json:"reason"`
}

// BackOrderResponse is the read model for a back-order.
type BackOrderResponse struct {
	ID               string          `json:"id"`
	PartsLineID      string          `json:"parts_line_id"`
	SKU              string          `json:"sku"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	QuantityReceived int             `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Supplier         string          `json:"supplier,omitempty"`
	Reference        string          `json:"reference,omitempty"`
	OrderDate        *time.Time      `json:"order_date,omitempty"`
	ExpectedDate     *time.Time      `json:"expected_date,omitempty"`
	Status           string          `json:"status"`
	CancelReason     string          `json:"cancel_reason,omitempty"`
}
