package dataset

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/catalog"
	"github.com/Additional-Code/stockflow/internal/entity"
	"github.com/Additional-Code/stockflow/internal/pricing"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// document is the on-disk dataset layout. Completion time is expressed in
// hours; an omitted total is computed from lines and labor.
type document struct {
	Materials []entity.Material `json:"materials"`
	Employees []entity.Employee `json:"employees"`
	Orders    []orderRecord     `json:"orders"`
}

type orderRecord struct {
	ID              string                `json:"id"`
	Number          string                `json:"number"`
	CreatedAt       time.Time             `json:"created_at"`
	EmployeeID      string                `json:"employee_id"`
	Status          entity.Status         `json:"status"`
	PaymentMethod   entity.PaymentMethod  `json:"payment_method"`
	Lines           []entity.MaterialLine `json:"lines"`
	LaborCharge     decimal.Decimal       `json:"labor_charge"`
	TotalPrice      *decimal.Decimal      `json:"total_price,omitempty"`
	CompletionHours float64               `json:"completion_hours,omitempty"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
}

// Decode reads a JSON dataset and validates the resulting snapshot.
func Decode(r io.Reader) (catalog.Snapshot, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return catalog.Snapshot{}, errorbank.InvalidInput("malformed dataset", errorbank.WithCause(err))
	}

	snap := catalog.Snapshot{
		Materials: doc.Materials,
		Employees: doc.Employees,
		Orders:    make([]entity.JobOrder, 0, len(doc.Orders)),
	}
	for i := range snap.Employees {
		if snap.Employees[i].Status == "" {
			snap.Employees[i].Status = entity.EmployeeActive
		}
	}
	for _, rec := range doc.Orders {
		o, err := rec.toEntity()
		if err != nil {
			return catalog.Snapshot{}, err
		}
		snap.Orders = append(snap.Orders, o)
	}

	if err := snap.Validate(); err != nil {
		return catalog.Snapshot{}, err
	}
	return snap, nil
}

func (r orderRecord) toEntity() (entity.JobOrder, error) {
	if r.CompletionHours < 0 || math.IsNaN(r.CompletionHours) || math.IsInf(r.CompletionHours, 0) {
		return entity.JobOrder{}, errorbank.InvalidInput("completion hours must be a non-negative number",
			errorbank.WithDetail("id", r.ID),
		)
	}
	number := r.Number
	if number == "" {
		number = r.ID
	}

	o := entity.JobOrder{
		ID:             r.ID,
		Number:         number,
		CreatedAt:      r.CreatedAt,
		EmployeeID:     r.EmployeeID,
		Status:         r.Status,
		PaymentMethod:  r.PaymentMethod,
		Lines:          r.Lines,
		LaborCharge:    r.LaborCharge,
		CompletionTime: time.Duration(math.Round(r.CompletionHours * float64(time.Hour))),
		CompletedAt:    r.CompletedAt,
	}
	if r.TotalPrice != nil {
		o.TotalPrice = *r.TotalPrice
		return o, nil
	}

	total, err := pricing.ComputeTotal(o.Lines, o.LaborCharge)
	if err != nil {
		return entity.JobOrder{}, errorbank.InvalidInput("job order cannot be priced",
			errorbank.WithCause(err),
			errorbank.WithDetail("id", r.ID),
		)
	}
	o.TotalPrice = total
	return o, nil
}
