package cli

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/catalog"
	"github.com/Additional-Code/stockflow/internal/entity"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// resolveLines turns CODE:QTY specs into material lines. Known codes take the
// catalog name and price; unknown codes keep only the code and are priced by
// the calculator's fallback.
func resolveLines(snap catalog.Snapshot, specs []string) ([]entity.MaterialLine, error) {
	lines := make([]entity.MaterialLine, 0, len(specs))
	for _, raw := range specs {
		i := strings.LastIndex(raw, ":")
		if i <= 0 || i == len(raw)-1 {
			return nil, errorbank.InvalidInput("material line must look like CODE:QTY", errorbank.WithDetail("line", raw))
		}
		code := strings.TrimSpace(raw[:i])
		qty, err := strconv.Atoi(strings.TrimSpace(raw[i+1:]))
		if err != nil {
			return nil, errorbank.InvalidInput("material quantity must be an integer",
				errorbank.WithCause(err),
				errorbank.WithDetail("line", raw),
			)
		}

		if m, ok := snap.Material(code); ok {
			line, err := entity.NewMaterialLine(m, qty)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
			continue
		}
		lines = append(lines, entity.MaterialLine{Code: code, Name: code, Quantity: qty})
	}
	return lines, nil
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errorbank.InvalidInput(name+" must be a decimal number",
			errorbank.WithCause(err),
			errorbank.WithDetail(name, raw),
		)
	}
	return d, nil
}
