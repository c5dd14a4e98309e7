package pricing

//go:generate mockgen -source=calculator.go -destination=mocks/mock_price_list.go -package=mocks

import (
	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/entity"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// DefaultFallbackPrice is charged per unit for a material code the price
// list does not know.
var DefaultFallbackPrice = decimal.NewFromInt(100)

// PriceList resolves the authoritative unit price of a material code.
type PriceList interface {
	UnitPrice(code string) (decimal.Decimal, bool)
}

// Catalog is a PriceList keyed by material code.
type Catalog map[string]decimal.Decimal

// NewCatalog indexes the unit prices of the given materials.
func NewCatalog(materials []entity.Material) Catalog {
	c := make(Catalog, len(materials))
	for _, m := range materials {
		c[m.Code] = m.UnitPrice
	}
	return c
}

// UnitPrice implements PriceList.
func (c Catalog) UnitPrice(code string) (decimal.Decimal, bool) {
	p, ok := c[code]
	return p, ok
}

// LineAmount is the priced contribution of one material line.
type LineAmount struct {
	Code      string
	UnitPrice decimal.Decimal
	Quantity  int
	Amount    decimal.Decimal
	// Fallback is set when the code was missing from the price list.
	Fallback bool
}

// Quote is the full pricing output of a set of lines plus labor.
type Quote struct {
	Lines     []LineAmount
	Materials decimal.Decimal
	Labor     decimal.Decimal
	Total     decimal.Decimal
}

// Calculator prices material lines. It holds no mutable state and is safe
// for concurrent use.
type Calculator struct {
	prices   PriceList
	fallback decimal.Decimal
}

// NewCalculator builds a Calculator. With a nil price list every line is
// priced at its captured unit price; otherwise the list is authoritative and
// unknown codes are charged fallback per unit.
func NewCalculator(prices PriceList, fallback decimal.Decimal) *Calculator {
	return &Calculator{prices: prices, fallback: fallback}
}

// Quote prices lines and labor. The total is rounded half-up to whole
// currency units.
func (c *Calculator) Quote(lines []entity.MaterialLine, laborCharge decimal.Decimal) (Quote, error) {
	if laborCharge.IsNegative() {
		return Quote{}, errorbank.InvalidInput("labor charge must not be negative",
			errorbank.WithDetail("labor_charge", laborCharge.String()),
		)
	}

	q := Quote{
		Lines:     make([]LineAmount, 0, len(lines)),
		Materials: decimal.Zero,
		Labor:     laborCharge,
	}
	for _, line := range lines {
		amount, err := c.price(line)
		if err != nil {
			return Quote{}, err
		}
		q.Lines = append(q.Lines, amount)
		q.Materials = q.Materials.Add(amount.Amount)
	}
	q.Total = roundHalfUp(q.Materials.Add(laborCharge))
	return q, nil
}

// ComputeTotal returns only the rounded total of Quote.
func (c *Calculator) ComputeTotal(lines []entity.MaterialLine, laborCharge decimal.Decimal) (decimal.Decimal, error) {
	q, err := c.Quote(lines, laborCharge)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Total, nil
}

func (c *Calculator) price(line entity.MaterialLine) (LineAmount, error) {
	if line.Quantity < 0 {
		return LineAmount{}, errorbank.InvalidInput("quantity must not be negative",
			errorbank.WithDetail("code", line.Code),
			errorbank.WithDetail("quantity", line.Quantity),
		)
	}

	if line.UnitPrice.IsNegative() {
		return LineAmount{}, errorbank.InvalidInput("unit price must not be negative",
			errorbank.WithDetail("code", line.Code),
			errorbank.WithDetail("unit_price", line.UnitPrice.String()),
		)
	}

	unit := line.UnitPrice
	fallback := false
	if c.prices != nil {
		if listed, ok := c.prices.UnitPrice(line.Code); ok {
			unit = listed
		} else {
			unit = c.fallback
			fallback = true
		}
	}
	if unit.IsNegative() {
		return LineAmount{}, errorbank.InvalidInput("unit price must not be negative",
			errorbank.WithDetail("code", line.Code),
			errorbank.WithDetail("unit_price", unit.String()),
		)
	}

	return LineAmount{
		Code:      line.Code,
		UnitPrice: unit,
		Quantity:  line.Quantity,
		Amount:    unit.Mul(decimal.NewFromInt(int64(line.Quantity))),
		Fallback:  fallback,
	}, nil
}

// ComputeTotal prices lines at their captured unit prices.
func ComputeTotal(lines []entity.MaterialLine, laborCharge decimal.Decimal) (decimal.Decimal, error) {
	return NewCalculator(nil, DefaultFallbackPrice).ComputeTotal(lines, laborCharge)
}

// VerifyTotal checks that an order's stored total matches its captured lines
// and labor charge.
func VerifyTotal(order entity.JobOrder) error {
	want, err := ComputeTotal(order.Lines, order.LaborCharge)
	if err != nil {
		return err
	}
	if !order.TotalPrice.Equal(want) {
		return errorbank.InvalidInput("total price does not match materials and labor",
			errorbank.WithDetail("id", order.ID),
			errorbank.WithDetail("total_price", order.TotalPrice.String()),
			errorbank.WithDetail("expected", want.String()),
		)
	}
	return nil
}

// Totals are never negative, so rounding half away from zero is half-up.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
