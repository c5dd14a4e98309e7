package report

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockflow/internal/catalog"
	"github.com/Additional-Code/stockflow/internal/report"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

const instrumentationName = "github.com/Additional-Code/stockflow/service/report"

var serviceTracer = otel.Tracer(instrumentationName)

// Options selects the slice of the snapshot a dashboard covers.
type Options struct {
	// WindowDays keeps orders created within the last N days; 0 keeps all.
	WindowDays int
	// Now anchors the window. Zero means the service clock.
	Now time.Time
}

// Service builds dashboards from snapshots.
type Service struct {
	logger *zap.Logger
	now    func() time.Time
	orders metric.Int64Histogram
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Logger        *zap.Logger
	MeterProvider metric.MeterProvider `optional:"true"`
}

// NewService wires a new Service instance.
func NewService(p Params) (*Service, error) {
	mp := p.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	orders, err := mp.Meter(instrumentationName).Int64Histogram("stockflow.report.orders",
		metric.WithDescription("Job orders covered by a dashboard"),
	)
	if err != nil {
		return nil, err
	}
	return &Service{
		logger: p.Logger,
		now:    func() time.Time { return time.Now().UTC() },
		orders: orders,
	}, nil
}

// Dashboard validates the snapshot and aggregates the orders inside the
// requested window. Reference data is never windowed.
func (s *Service) Dashboard(ctx context.Context, snap catalog.Snapshot, opts Options) (report.Dashboard, error) {
	ctx, span := serviceTracer.Start(ctx, "ReportService.Dashboard", trace.WithAttributes(
		attribute.Int("report.window_days", opts.WindowDays),
	))
	defer span.End()

	if opts.WindowDays < 0 {
		err := errorbank.InvalidInput("window must not be negative", errorbank.WithDetail("window_days", opts.WindowDays))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid window")
		return report.Dashboard{}, err
	}
	if err := snap.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid snapshot")
		return report.Dashboard{}, err
	}

	now := opts.Now
	if now.IsZero() {
		now = s.now()
	}
	orders := report.Since(snap.Orders, report.WindowStart(now, opts.WindowDays))

	d := report.Build(snap.Materials, snap.Employees, orders)

	s.orders.Record(ctx, int64(d.TotalOrders), metric.WithAttributes(attribute.Int("window_days", opts.WindowDays)))
	span.SetAttributes(
		attribute.Int("report.orders", d.TotalOrders),
		attribute.String("report.revenue", d.TotalRevenue.String()),
	)
	if s.logger != nil {
		s.logger.Debug("dashboard built",
			zap.Int("window_days", opts.WindowDays),
			zap.Int("orders", d.TotalOrders),
			zap.String("revenue", d.TotalRevenue.String()),
		)
	}
	return d, nil
}
