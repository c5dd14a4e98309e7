package catalog

import (
	"github.com/Additional-Code/stockflow/internal/entity"
	"github.com/Additional-Code/stockflow/internal/pricing"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// Snapshot is an immutable view of the shop's reference data and orders.
// Operations that "change" it return a new Snapshot.
type Snapshot struct {
	Materials []entity.Material
	Employees []entity.Employee
	Orders    []entity.JobOrder
}

// Validate checks every record and the uniqueness of identifiers. Orders may
// reference employees or materials missing from the snapshot.
func (s Snapshot) Validate() error {
	codes := make(map[string]struct{}, len(s.Materials))
	for _, m := range s.Materials {
		if err := m.Validate(); err != nil {
			return err
		}
		if _, dup := codes[m.Code]; dup {
			return errorbank.InvalidInput("duplicate material code", errorbank.WithDetail("code", m.Code))
		}
		codes[m.Code] = struct{}{}
	}

	ids := make(map[string]struct{}, len(s.Employees))
	for _, e := range s.Employees {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := ids[e.ID]; dup {
			return errorbank.InvalidInput("duplicate employee id", errorbank.WithDetail("id", e.ID))
		}
		ids[e.ID] = struct{}{}
	}

	orders := make(map[string]struct{}, len(s.Orders))
	for _, o := range s.Orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if _, dup := orders[o.ID]; dup {
			return errorbank.InvalidInput("duplicate job order id", errorbank.WithDetail("id", o.ID))
		}
		orders[o.ID] = struct{}{}
		if err := pricing.VerifyTotal(o); err != nil {
			return err
		}
	}
	return nil
}

// Prices indexes the catalog unit prices.
func (s Snapshot) Prices() pricing.Catalog {
	return pricing.NewCatalog(s.Materials)
}

// Material looks up a material by code.
func (s Snapshot) Material(code string) (entity.Material, bool) {
	for _, m := range s.Materials {
		if m.Code == code {
			return m, true
		}
	}
	return entity.Material{}, false
}

// Employee looks up an employee by id.
func (s Snapshot) Employee(id string) (entity.Employee, bool) {
	for _, e := range s.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return entity.Employee{}, false
}

// Order looks up a job order by id.
func (s Snapshot) Order(id string) (entity.JobOrder, error) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return entity.JobOrder{}, errorbank.NotFound("job order not found", errorbank.WithDetail("id", id))
}

// WithoutOrder returns a snapshot without the order id.
func (s Snapshot) WithoutOrder(id string) Snapshot {
	s.Orders = filter(s.Orders, func(o entity.JobOrder) bool { return o.ID != id })
	return s
}

// WithoutEmployee returns a snapshot without the employee id. Orders keep
// their reference.
func (s Snapshot) WithoutEmployee(id string) Snapshot {
	s.Employees = filter(s.Employees, func(e entity.Employee) bool { return e.ID != id })
	return s
}

// WithoutMaterial returns a snapshot without the material code. Order lines
// keep their captured copy.
func (s Snapshot) WithoutMaterial(code string) Snapshot {
	s.Materials = filter(s.Materials, func(m entity.Material) bool { return m.Code != code })
	return s
}
