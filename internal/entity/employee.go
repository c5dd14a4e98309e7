package entity

import (
	"strings"

	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// EmployeeStatus marks whether an employee can take new work.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s EmployeeStatus) Valid() bool {
	return s == EmployeeActive || s == EmployeeInactive
}

// Employee is referenced by job orders through ID only.
type Employee struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Email    string         `json:"email,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Position string         `json:"position"`
	Status   EmployeeStatus `json:"status"`
}

// NewEmployee builds a validated Employee. An empty status defaults to active.
func NewEmployee(id, name, position string, status EmployeeStatus) (Employee, error) {
	if status == "" {
		status = EmployeeActive
	}
	e := Employee{
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
		Position: strings.TrimSpace(position),
		Status:   status,
	}
	if err := e.Validate(); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// Validate checks identity and status.
func (e Employee) Validate() error {
	if e.ID == "" {
		return errorbank.InvalidInput("employee id is required")
	}
	if e.Name == "" {
		return errorbank.InvalidInput("employee name is required", errorbank.WithDetail("id", e.ID))
	}
	if !e.Status.Valid() {
		return errorbank.InvalidInput("unknown employee status",
			errorbank.WithDetail("id", e.ID),
			errorbank.WithDetail("status", string(e.Status)),
		)
	}
	return nil
}

// Active reports whether the employee is active.
func (e Employee) Active() bool {
	return e.Status == EmployeeActive
}
