package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Additional-Code/stockflow/internal/dataset"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

func newTestService(t *testing.T) (*Service, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	svc, err := NewService(Params{Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.now = func() time.Time { return time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC) }
	return svc, logs
}

func TestService_Dashboard(t *testing.T) {
	svc, logs := newTestService(t)

	cases := []struct {
		name    string
		opts    Options
		orders  int
		revenue int64
	}{
		{name: "all time", opts: Options{}, orders: 6, revenue: 3150},
		{name: "last 7 days from service clock", opts: Options{WindowDays: 7}, orders: 3, revenue: 450},
		{name: "explicit anchor", opts: Options{WindowDays: 7, Now: time.Date(2024, time.January, 23, 0, 0, 0, 0, time.UTC)}, orders: 5, revenue: 2300},
		{name: "window after every order", opts: Options{WindowDays: 30, Now: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)}, orders: 0, revenue: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := svc.Dashboard(context.Background(), dataset.Sample(), tc.opts)
			if err != nil {
				t.Fatalf("Dashboard: %v", err)
			}
			if d.TotalOrders != tc.orders {
				t.Fatalf("orders = %d, want %d", d.TotalOrders, tc.orders)
			}
			if !d.TotalRevenue.Equal(decimal.NewFromInt(tc.revenue)) {
				t.Fatalf("revenue = %s, want %d", d.TotalRevenue, tc.revenue)
			}
			if len(d.Employees) != 4 || len(d.Materials) != 3 {
				t.Fatalf("reference data must not be windowed")
			}
		})
	}

	if logs.FilterMessage("dashboard built").Len() != len(cases) {
		t.Fatalf("expected one log per dashboard")
	}
}

func TestService_DashboardRejects(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Dashboard(context.Background(), dataset.Sample(), Options{WindowDays: -1}); !errorbank.IsKind(err, errorbank.KindInvalidInput) {
		t.Fatalf("expected invalid input for a negative window, got %v", err)
	}

	snap := dataset.Sample()
	snap.Orders[0].TotalPrice = decimal.NewFromInt(999)
	if _, err := svc.Dashboard(context.Background(), snap, Options{}); !errorbank.IsKind(err, errorbank.KindInvalidInput) {
		t.Fatalf("expected invalid input for an inconsistent snapshot, got %v", err)
	}
}
