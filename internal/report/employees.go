package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/entity"
)

// EmployeeStat summarizes the work assigned to one employee.
type EmployeeStat struct {
	Employee          entity.Employee
	TotalJobs         int
	CompletedJobs     int
	TotalRevenue      decimal.Decimal
	AvgCompletionTime NullDuration
	CompletionRate    float64
}

// EmployeeStats computes one stat per employee, in input order. The average
// completion time covers the employee's completed jobs only; a completed job
// without a recorded time counts as zero.
func EmployeeStats(employees []entity.Employee, orders []entity.JobOrder) []EmployeeStat {
	out := make([]EmployeeStat, 0, len(employees))
	for _, e := range employees {
		stat := EmployeeStat{Employee: e, TotalRevenue: decimal.Zero}
		var worked time.Duration
		for _, o := range orders {
			if o.EmployeeID != e.ID {
				continue
			}
			stat.TotalJobs++
			if !o.Completed() {
				continue
			}
			stat.CompletedJobs++
			stat.TotalRevenue = stat.TotalRevenue.Add(o.TotalPrice)
			worked += o.CompletionTime
		}
		stat.AvgCompletionTime = mean(worked, stat.CompletedJobs)
		stat.CompletionRate = percent(stat.CompletedJobs, stat.TotalJobs)
		out = append(out, stat)
	}
	return out
}
