// Package report computes dashboard statistics over snapshots of job orders,
// employees and materials. Every function is pure: inputs are read, never
// retained or modified, and nothing is cached between calls.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/entity"
)

// NullDuration is an average that may have no samples. Valid is false when
// nothing contributed, which is distinct from a zero average.
type NullDuration struct {
	Duration time.Duration
	Valid    bool
}

// Hours returns the duration in hours, or 0 when not valid.
func (n NullDuration) Hours() float64 {
	if !n.Valid {
		return 0
	}
	return n.Duration.Hours()
}

// StatusCount is the number of orders in one status and its share of all orders.
type StatusCount struct {
	Status entity.Status
	Count  int
	Share  float64
}

// TotalCount returns the number of orders.
func TotalCount(orders []entity.JobOrder) int {
	return len(orders)
}

// CountByStatus returns the number of orders in status.
func CountByStatus(orders []entity.JobOrder, status entity.Status) int {
	n := 0
	for _, o := range orders {
		if o.Status == status {
			n++
		}
	}
	return n
}

// StatusBreakdown counts every known status, in lifecycle order.
func StatusBreakdown(orders []entity.JobOrder) []StatusCount {
	out := make([]StatusCount, 0, len(entity.Statuses))
	for _, s := range entity.Statuses {
		n := CountByStatus(orders, s)
		out = append(out, StatusCount{Status: s, Count: n, Share: percent(n, len(orders))})
	}
	return out
}

// TotalRevenue sums the total price of completed orders.
func TotalRevenue(orders []entity.JobOrder) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		if o.Completed() {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum
}

// AverageCompletionTime is the mean completion time over orders that
// recorded one.
func AverageCompletionTime(orders []entity.JobOrder) NullDuration {
	var sum time.Duration
	n := 0
	for _, o := range orders {
		if o.CompletionTime > 0 {
			sum += o.CompletionTime
			n++
		}
	}
	return mean(sum, n)
}

// CompletionRate is the percentage of orders that are completed; 0 for no orders.
func CompletionRate(orders []entity.JobOrder) float64 {
	return percent(CountByStatus(orders, entity.StatusCompleted), len(orders))
}

func mean(sum time.Duration, n int) NullDuration {
	if n == 0 {
		return NullDuration{}
	}
	return NullDuration{Duration: sum / time.Duration(n), Valid: true}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
