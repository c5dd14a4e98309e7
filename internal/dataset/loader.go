package dataset

import (
	"context"
	"errors"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockflow/internal/catalog"
	"github.com/Additional-Code/stockflow/internal/config"
	"github.com/Additional-Code/stockflow/internal/pricing"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// Module provides the loader, the loaded snapshot and its price list to Fx.
var Module = fx.Options(
	fx.Provide(NewLoader),
	fx.Provide(func(l *Loader) (catalog.Snapshot, error) {
		return l.Load(context.Background())
	}),
	fx.Provide(func(s catalog.Snapshot) pricing.PriceList {
		return s.Prices()
	}),
)

// Loader supplies snapshots from the configured dataset file, or the sample
// dataset when no path is configured. It never writes.
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader constructs a Loader from configuration.
func NewLoader(cfg config.Config, logger *zap.Logger) *Loader {
	return &Loader{path: cfg.Dataset.Path, logger: logger}
}

// Load reads and validates the dataset.
func (l *Loader) Load(ctx context.Context) (catalog.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Snapshot{}, err
	}

	if l.path == "" {
		snap := Sample()
		if l.logger != nil {
			l.logger.Debug("using sample dataset", zap.Int("orders", len(snap.Orders)))
		}
		return snap, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return catalog.Snapshot{}, errorbank.NotFound("dataset file not found", errorbank.WithDetail("path", l.path))
		}
		return catalog.Snapshot{}, errorbank.Internal("failed to open dataset", errorbank.WithCause(err))
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		if l.logger != nil {
			l.logger.Error("dataset rejected", zap.String("path", l.path), zap.Error(err))
		}
		return catalog.Snapshot{}, err
	}

	if l.logger != nil {
		l.logger.Info("dataset loaded",
			zap.String("path", l.path),
			zap.Int("materials", len(snap.Materials)),
			zap.Int("employees", len(snap.Employees)),
			zap.Int("orders", len(snap.Orders)),
		)
	}
	return snap, nil
}
