package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/entity"
)

// Dashboard is every figure the overview page shows.
type Dashboard struct {
	TotalOrders           int
	Statuses              []StatusCount
	TotalRevenue          decimal.Decimal
	AverageCompletionTime NullDuration
	CompletionRate        float64
	Employees             []EmployeeStat
	// Materials is ranked by descending usage.
	Materials []MaterialStat

	// Selections are nil when there is no candidate.
	BestEmployee     *EmployeeStat
	FastestEmployee  *EmployeeStat
	MostUsedMaterial *MaterialStat
}

// Build assembles the dashboard for one snapshot.
func Build(materials []entity.Material, employees []entity.Employee, orders []entity.JobOrder) Dashboard {
	employeeStats := EmployeeStats(employees, orders)
	materialStats := MaterialUsage(materials, orders)

	d := Dashboard{
		TotalOrders:           TotalCount(orders),
		Statuses:              StatusBreakdown(orders),
		TotalRevenue:          TotalRevenue(orders),
		AverageCompletionTime: AverageCompletionTime(orders),
		CompletionRate:        CompletionRate(orders),
		Employees:             employeeStats,
		Materials:             RankByUsage(materialStats),
	}

	if best, err := BestByFunc(employeeStats, compareRevenue); err == nil {
		d.BestEmployee = &best
	}
	if fastest, err := LowestBy(withCompletions(employeeStats), employeeAverage); err == nil {
		d.FastestEmployee = &fastest
	}
	if most, err := BestBy(materialStats, usageOf); err == nil {
		d.MostUsedMaterial = &most
	}
	return d
}

// Since keeps orders created at or after from. A zero from keeps everything.
func Since(orders []entity.JobOrder, from time.Time) []entity.JobOrder {
	if from.IsZero() {
		return orders
	}
	out := make([]entity.JobOrder, 0, len(orders))
	for _, o := range orders {
		if !o.CreatedAt.Before(from) {
			out = append(out, o)
		}
	}
	return out
}

// WindowStart is the first instant of a window of days ending at now, or the
// zero time when days is not positive.
func WindowStart(now time.Time, days int) time.Time {
	if days <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -days)
}

func withCompletions(stats []EmployeeStat) []EmployeeStat {
	out := make([]EmployeeStat, 0, len(stats))
	for _, s := range stats {
		if s.AvgCompletionTime.Valid {
			out = append(out, s)
		}
	}
	return out
}

func compareRevenue(a, b EmployeeStat) int {
	return a.TotalRevenue.Cmp(b.TotalRevenue)
}

func employeeAverage(s EmployeeStat) time.Duration {
	return s.AvgCompletionTime.Duration
}

func usageOf(s MaterialStat) int {
	return s.Usage
}
