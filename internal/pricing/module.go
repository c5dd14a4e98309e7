package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/Additional-Code/stockflow/internal/config"
)

// Module provides the calculator to Fx.
var Module = fx.Provide(NewFromConfig)

// NewFromConfig wires a Calculator over the supplied price list using the
// configured fallback unit price.
func NewFromConfig(cfg config.Config, prices PriceList) *Calculator {
	return NewCalculator(prices, decimal.NewFromFloat(cfg.Pricing.DefaultUnitPrice))
}
