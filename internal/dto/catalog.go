package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/entity"
)

// MaterialResponse represents a catalog material.
type MaterialResponse struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand,omitempty"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
}

// NewMaterialResponses maps materials in order.
func NewMaterialResponses(materials []entity.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, MaterialResponse{
			Code:        m.Code,
			Name:        m.Name,
			Brand:       m.Brand,
			Description: m.Description,
			UnitPrice:   m.UnitPrice,
			Stock:       m.Stock,
			Image:       m.Image,
		})
	}
	return out
}

// EmployeeResponse represents an employee.
type EmployeeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
	Status   string `json:"status"`
}

// NewEmployeeResponses maps employees in order.
func NewEmployeeResponses(employees []entity.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, EmployeeResponse{
			ID:       e.ID,
			Name:     e.Name,
			Email:    e.Email,
			Phone:    e.Phone,
			Position: e.Position,
			Status:   string(e.Status),
		})
	}
	return out
}
