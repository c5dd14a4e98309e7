package report

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/entity"
)

// MaterialStat is the usage of one catalog material across orders.
type MaterialStat struct {
	Material entity.Material
	// Usage counts orders with at least one line for the material.
	Usage int
	// Revenue is Usage times the catalog unit price. It ignores quantities
	// and captured prices; it is an indicator, not booked revenue.
	Revenue decimal.Decimal
	// Share is Usage relative to the most used material, in percent.
	Share float64
}

// MaterialUsage computes one stat per material, in input order.
func MaterialUsage(materials []entity.Material, orders []entity.JobOrder) []MaterialStat {
	out := make([]MaterialStat, 0, len(materials))
	peak := 0
	for _, m := range materials {
		usage := 0
		for _, o := range orders {
			if o.Uses(m.Code) {
				usage++
			}
		}
		peak = max(peak, usage)
		out = append(out, MaterialStat{
			Material: m,
			Usage:    usage,
			Revenue:  m.UnitPrice.Mul(decimal.NewFromInt(int64(usage))),
		})
	}
	for i := range out {
		out[i].Share = percent(out[i].Usage, peak)
	}
	return out
}

// RankByUsage returns a copy sorted by descending usage. Equal usage keeps
// input order.
func RankByUsage(stats []MaterialStat) []MaterialStat {
	ranked := slices.Clone(stats)
	slices.SortStableFunc(ranked, func(a, b MaterialStat) int {
		return cmp.Compare(b.Usage, a.Usage)
	})
	return ranked
}
