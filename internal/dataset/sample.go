package dataset

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/catalog"
	"github.com/Additional-Code/stockflow/internal/entity"
)

// Sample returns the reference dataset used when no dataset file is
// configured: three materials, four employees and six orders (four
// completed, one in progress, one cancelled).
func Sample() catalog.Snapshot {
	steel := entity.Material{
		Code:        "MAT-001",
		Name:        "Steel Pipe",
		Brand:       "MetalCorp",
		Description: "High grade steel pipe for construction",
		UnitPrice:   decimal.NewFromInt(100),
		Stock:       50,
	}
	copper := entity.Material{
		Code:        "MAT-002",
		Name:        "Copper Wire",
		Brand:       "ElectroSupply",
		Description: "Premium copper wire for electrical work",
		UnitPrice:   decimal.NewFromInt(150),
		Stock:       30,
	}
	pvc := entity.Material{
		Code:        "MAT-003",
		Name:        "PVC Pipe",
		Brand:       "PlasticsPro",
		Description: "Durable PVC pipe for plumbing",
		UnitPrice:   decimal.NewFromInt(75),
		Stock:       100,
	}

	employees := []entity.Employee{
		{ID: "1", Name: "John Doe", Email: "john.doe@example.com", Position: "Senior Technician", Status: entity.EmployeeActive},
		{ID: "2", Name: "Jane Smith", Email: "jane.smith@example.com", Position: "Project Manager", Status: entity.EmployeeActive},
		{ID: "3", Name: "Robert Johnson", Email: "robert.johnson@example.com", Position: "Electrician", Status: entity.EmployeeActive},
		{ID: "4", Name: "Emily Davis", Email: "emily.davis@example.com", Position: "Quality Inspector", Status: entity.EmployeeInactive},
	}

	orders := []entity.JobOrder{
		order("JO-001", "1", entity.StatusCompleted, entity.PaymentCreditCard, day(15, 10), 675, 850,
			4*time.Hour+30*time.Minute, at(day(16, 14), 30), steel, pvc),
		order("JO-002", "2", entity.StatusCompleted, entity.PaymentCash, day(16, 9), 500, 650,
			3*time.Hour+12*time.Minute, at(day(16, 17), 0), copper),
		order("JO-003", "1", entity.StatusCompleted, entity.PaymentBankTransfer, day(17, 8), 875, 1200,
			6*time.Hour+6*time.Minute, at(day(18, 14), 6), steel, copper, pvc),
		order("JO-004", "3", entity.StatusInProgress, entity.PaymentCreditCard, day(18, 11), 650, 750,
			0, nil, steel),
		order("JO-005", "2", entity.StatusCompleted, entity.PaymentCash, day(19, 13), 375, 450,
			2*time.Hour+48*time.Minute, at(day(19, 18), 0), pvc),
		order("JO-006", "4", entity.StatusCancelled, entity.PaymentBankTransfer, day(20, 9), 150, 300,
			0, nil, copper),
	}

	return catalog.Snapshot{
		Materials: []entity.Material{steel, copper, pvc},
		Employees: employees,
		Orders:    orders,
	}
}

func order(id, employeeID string, status entity.Status, payment entity.PaymentMethod, created time.Time,
	labor, total int64, worked time.Duration, completedAt *time.Time, materials ...entity.Material) entity.JobOrder {
	lines := make([]entity.MaterialLine, 0, len(materials))
	for _, m := range materials {
		lines = append(lines, entity.MaterialLine{
			Code:      m.Code,
			Name:      m.Name,
			Brand:     m.Brand,
			UnitPrice: m.UnitPrice,
			Quantity:  1,
		})
	}
	return entity.JobOrder{
		ID:             id,
		Number:         id,
		CreatedAt:      created,
		EmployeeID:     employeeID,
		Status:         status,
		PaymentMethod:  payment,
		Lines:          lines,
		LaborCharge:    decimal.NewFromInt(labor),
		TotalPrice:     decimal.NewFromInt(total),
		CompletionTime: worked,
		CompletedAt:    completedAt,
	}
}

func day(d, hour int) time.Time {
	return time.Date(2024, time.January, d, hour, 0, 0, 0, time.UTC)
}

func at(t time.Time, minute int) *time.Time {
	stamp := t.Add(time.Duration(minute) * time.Minute)
	return &stamp
}
