package catalog

import (
	"slices"
	"strings"

	"github.com/Additional-Code/stockflow/internal/entity"
)

// OrderFilter narrows the order list. An empty Status matches every status.
type OrderFilter struct {
	Term   string
	Status entity.Status
}

// SearchOrders matches the term against the order number, the assigned
// employee's name and the names of the order's materials.
func SearchOrders(s Snapshot, f OrderFilter) []entity.JobOrder {
	term := normalize(f.Term)
	out := make([]entity.JobOrder, 0, len(s.Orders))
	for _, o := range s.Orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if term != "" && !orderMatches(s, o, term) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func orderMatches(s Snapshot, o entity.JobOrder, term string) bool {
	if contains(o.Number, term) {
		return true
	}
	if e, ok := s.Employee(o.EmployeeID); ok && contains(e.Name, term) {
		return true
	}
	return slices.ContainsFunc(o.Lines, func(l entity.MaterialLine) bool { return contains(l.Name, term) })
}

// SearchEmployees matches name, email and position.
func SearchEmployees(employees []entity.Employee, term string) []entity.Employee {
	term = normalize(term)
	return filter(employees, func(e entity.Employee) bool {
		return term == "" || contains(e.Name, term) || contains(e.Email, term) || contains(e.Position, term)
	})
}

// SearchMaterials matches code, name and brand.
func SearchMaterials(materials []entity.Material, term string) []entity.Material {
	term = normalize(term)
	return filter(materials, func(m entity.Material) bool {
		return term == "" || contains(m.Code, term) || contains(m.Name, term) || contains(m.Brand, term)
	})
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}
