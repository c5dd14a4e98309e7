package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// PaymentMethod is how the customer settles a job order.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Valid reports whether p is a supported payment method.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCreditCard, PaymentCash, PaymentBankTransfer:
		return true
	default:
		return false
	}
}

// JobOrder is a unit of billable work composed of materials and labor.
type JobOrder struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	CreatedAt     time.Time       `json:"created_at"`
	EmployeeID    string          `json:"employee_id"`
	Status        Status          `json:"status"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Lines         []MaterialLine  `json:"lines"`
	LaborCharge   decimal.Decimal `json:"labor_charge"`
	TotalPrice    decimal.Decimal `json:"total_price"`

	// CompletionTime is the recorded hands-on work time. Zero means not recorded.
	CompletionTime time.Duration `json:"completion_time"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
}

// Validate checks the structural invariants of a submitted order. The total
// is verified separately by the pricing package.
func (o JobOrder) Validate() error {
	if o.ID == "" {
		return errorbank.InvalidInput("job order id is required")
	}
	if len(o.Lines) == 0 {
		return errorbank.InvalidInput("job order needs at least one material", errorbank.WithDetail("id", o.ID))
	}
	if !o.Status.Valid() {
		return errorbank.InvalidInput("unknown job order status",
			errorbank.WithDetail("id", o.ID),
			errorbank.WithDetail("status", string(o.Status)),
		)
	}
	if !o.PaymentMethod.Valid() {
		return errorbank.InvalidInput("unknown payment method",
			errorbank.WithDetail("id", o.ID),
			errorbank.WithDetail("payment_method", string(o.PaymentMethod)),
		)
	}
	if o.LaborCharge.IsNegative() {
		return errorbank.InvalidInput("labor charge must not be negative", errorbank.WithDetail("id", o.ID))
	}
	if o.TotalPrice.IsNegative() {
		return errorbank.InvalidInput("total price must not be negative", errorbank.WithDetail("id", o.ID))
	}
	if o.CompletionTime < 0 {
		return errorbank.InvalidInput("completion time must not be negative", errorbank.WithDetail("id", o.ID))
	}
	for _, line := range o.Lines {
		if err := line.Validate(); err != nil {
			return errorbank.InvalidInput("invalid material line", errorbank.WithCause(err), errorbank.WithDetail("id", o.ID))
		}
	}
	if (o.Status == StatusCompleted) != (o.CompletedAt != nil) {
		return errorbank.InvalidInput("completed_at must be set exactly when the order is completed",
			errorbank.WithDetail("id", o.ID),
			errorbank.WithDetail("status", string(o.Status)),
		)
	}
	return nil
}

// Uses reports whether any line of the order references the material code.
func (o JobOrder) Uses(code string) bool {
	return slices.ContainsFunc(o.Lines, func(l MaterialLine) bool { return l.Code == code })
}

// Completed reports whether the order reached the completed state.
func (o JobOrder) Completed() bool {
	return o.Status == StatusCompleted
}

// Clone returns a copy that shares no mutable state with o.
func (o JobOrder) Clone() JobOrder {
	c := o
	c.Lines = slices.Clone(o.Lines)
	if o.CompletedAt != nil {
		at := *o.CompletedAt
		c.CompletedAt = &at
	}
	return c
}
