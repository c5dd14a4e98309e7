package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// Material is a catalog entry. It is reference data: orders copy its price
// into a MaterialLine instead of pointing back at it.
type Material struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
}

// NewMaterial builds a validated Material.
func NewMaterial(code, name, brand string, unitPrice decimal.Decimal, image string) (Material, error) {
	m := Material{
		Code:      strings.TrimSpace(code),
		Name:      strings.TrimSpace(name),
		Brand:     strings.TrimSpace(brand),
		UnitPrice: unitPrice,
		Image:     image,
	}
	if err := m.Validate(); err != nil {
		return Material{}, err
	}
	return m, nil
}

// Validate checks the catalog invariants.
func (m Material) Validate() error {
	if m.Code == "" {
		return errorbank.InvalidInput("material code is required")
	}
	if m.Name == "" {
		return errorbank.InvalidInput("material name is required", errorbank.WithDetail("code", m.Code))
	}
	if m.UnitPrice.IsNegative() {
		return errorbank.InvalidInput("material unit price must not be negative",
			errorbank.WithDetail("code", m.Code),
			errorbank.WithDetail("unit_price", m.UnitPrice.String()),
		)
	}
	if m.Stock < 0 {
		return errorbank.InvalidInput("material stock must not be negative",
			errorbank.WithDetail("code", m.Code),
			errorbank.WithDetail("stock", m.Stock),
		)
	}
	return nil
}

// MaterialLine is one material entry of a job order. UnitPrice is captured
// when the material is selected; later catalog edits do not reach it.
type MaterialLine struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Image     string          `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// NewMaterialLine captures the material's current price for the given quantity.
func NewMaterialLine(m Material, quantity int) (MaterialLine, error) {
	line := MaterialLine{
		Code:      m.Code,
		Name:      m.Name,
		Brand:     m.Brand,
		Image:     m.Image,
		UnitPrice: m.UnitPrice,
		Quantity:  quantity,
	}
	if err := line.Validate(); err != nil {
		return MaterialLine{}, err
	}
	return line, nil
}

// Validate rejects negative prices and quantities.
func (l MaterialLine) Validate() error {
	if strings.TrimSpace(l.Code) == "" {
		return errorbank.InvalidInput("material line code is required")
	}
	if l.UnitPrice.IsNegative() {
		return errorbank.InvalidInput("material line unit price must not be negative",
			errorbank.WithDetail("code", l.Code),
			errorbank.WithDetail("unit_price", l.UnitPrice.String()),
		)
	}
	if l.Quantity < 0 {
		return errorbank.InvalidInput("material line quantity must not be negative",
			errorbank.WithDetail("code", l.Code),
			errorbank.WithDetail("quantity", l.Quantity),
		)
	}
	return nil
}
