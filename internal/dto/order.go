package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/entity"
	"github.com/Additional-Code/stockflow/internal/pricing"
)

// MaterialLineResponse is one captured material of an order.
type MaterialLineResponse struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// OrderResponse represents a job order as exposed via presentation layers.
type OrderResponse struct {
	ID              string                 `json:"id"`
	Number          string                 `json:"number"`
	CreatedAt       time.Time              `json:"created_at"`
	EmployeeID      string                 `json:"employee_id"`
	EmployeeName    string                 `json:"employee_name,omitempty"`
	Status          string                 `json:"status"`
	PaymentMethod   string                 `json:"payment_method"`
	Materials       []MaterialLineResponse `json:"materials"`
	LaborCharge     decimal.Decimal        `json:"labor_charge"`
	TotalPrice      decimal.Decimal        `json:"total_price"`
	CompletionHours float64                `json:"completion_hours,omitempty"`
	CompletedAt     *time.Time             `json:"completed_at,omitempty"`
}

// NewOrderResponse maps an order; employeeName may be empty when the
// employee is unknown.
func NewOrderResponse(o entity.JobOrder, employeeName string) OrderResponse {
	lines := make([]MaterialLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, MaterialLineResponse{
			Code:      l.Code,
			Name:      l.Name,
			Brand:     l.Brand,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		Number:          o.Number,
		CreatedAt:       o.CreatedAt,
		EmployeeID:      o.EmployeeID,
		EmployeeName:    employeeName,
		Status:          string(o.Status),
		PaymentMethod:   string(o.PaymentMethod),
		Materials:       lines,
		LaborCharge:     o.LaborCharge,
		TotalPrice:      o.TotalPrice,
		CompletionHours: o.CompletionTime.Hours(),
		CompletedAt:     o.CompletedAt,
	}
}

// QuoteLineResponse is the priced contribution of one line.
type QuoteLineResponse struct {
	Code      string          `json:"code"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Fallback  bool            `json:"fallback,omitempty"`
}

// QuoteResponse is a price breakdown.
type QuoteResponse struct {
	Lines     []QuoteLineResponse `json:"lines"`
	Materials decimal.Decimal     `json:"materials"`
	Labor     decimal.Decimal     `json:"labor"`
	Total     decimal.Decimal     `json:"total"`
}

// NewQuoteResponse maps a quote.
func NewQuoteResponse(q pricing.Quote) QuoteResponse {
	lines := make([]QuoteLineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, QuoteLineResponse{
			Code:      l.Code,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Amount:    l.Amount,
			Fallback:  l.Fallback,
		})
	}
	return QuoteResponse{Lines: lines, Materials: q.Materials, Labor: q.Labor, Total: q.Total}
}
