package order

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Additional-Code/stockflow/internal/dataset"
	"github.com/Additional-Code/stockflow/internal/entity"
	"github.com/Additional-Code/stockflow/internal/pricing"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// The package tracer binds to the first global provider, so it is installed once.
var spans = tracetest.NewSpanRecorder()

func TestMain(m *testing.M) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)))
	os.Exit(m.Run())
}

var fixedNow = time.Date(2024, time.February, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	calc := pricing.NewCalculator(dataset.Sample().Prices(), pricing.DefaultFallbackPrice)

	svc, err := NewService(Params{Calculator: calc, Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "generated-id" }
	return svc, logs
}

func line(code string, qty int) entity.MaterialLine {
	return entity.MaterialLine{Code: code, Name: code, Quantity: qty}
}

func lastSpan(t *testing.T, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	ended := spans.Ended()
	for i := len(ended) - 1; i >= 0; i-- {
		if ended[i].Name() == name {
			return ended[i]
		}
	}
	t.Fatalf("no span named %s", name)
	return nil
}

func TestService_Quote(t *testing.T) {
	svc, _ := newTestService(t)

	q, err := svc.Quote(context.Background(), []entity.MaterialLine{line("MAT-001", 2), line("MAT-002", 1)}, decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !q.Total.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("total = %s, want 400", q.Total)
	}

	if _, err := svc.Quote(context.Background(), nil, decimal.NewFromInt(-1)); !errorbank.IsKind(err, errorbank.KindInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if span := lastSpan(t, "OrderService.Quote"); span.Status().Code != codes.Error {
		t.Fatalf("rejected quote should mark the span as failed")
	}
}

func TestService_Submit(t *testing.T) {
	svc, logs := newTestService(t)

	o, err := svc.Submit(context.Background(), Draft{
		Number:      " JO-100 ",
		EmployeeID:  "2",
		Lines:       []entity.MaterialLine{line("MAT-003", 2), line("MAT-777", 1)},
		LaborCharge: decimal.NewFromInt(80),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if o.ID != "generated-id" || o.Number != "JO-100" {
		t.Fatalf("identity = %s / %s", o.ID, o.Number)
	}
	if o.Status != entity.StatusPending || o.CompletedAt != nil {
		t.Fatalf("new orders start pending, got %s", o.Status)
	}
	if !o.CreatedAt.Equal(fixedNow) {
		t.Fatalf("created at = %s, want %s", o.CreatedAt, fixedNow)
	}
	if o.PaymentMethod != entity.PaymentCreditCard {
		t.Fatalf("payment method defaults to credit card, got %s", o.PaymentMethod)
	}
	// 2 x 75 + 1 x 100 (fallback) + 80
	if !o.TotalPrice.Equal(decimal.NewFromInt(330)) {
		t.Fatalf("total = %s, want 330", o.TotalPrice)
	}
	if !o.Lines[1].UnitPrice.Equal(pricing.DefaultFallbackPrice) {
		t.Fatalf("fallback price should be captured on the line, got %s", o.Lines[1].UnitPrice)
	}
	if err := pricing.VerifyTotal(o); err != nil {
		t.Fatalf("submitted order should verify: %v", err)
	}

	if logs.FilterMessage("material missing from price list; fallback price applied").Len() != 1 {
		t.Fatalf("expected a fallback warning")
	}
	entries := logs.FilterMessage("job order submitted").All()
	if len(entries) != 1 || entries[0].ContextMap()["total"] != "330" {
		t.Fatalf("unexpected submit log %+v", entries)
	}
}

func TestService_SubmitKeepsProvidedIdentity(t *testing.T) {
	svc, _ := newTestService(t)
	created := time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC)

	o, err := svc.Submit(context.Background(), Draft{
		ID:            "JO-200",
		Number:        "JO-200",
		CreatedAt:     created,
		EmployeeID:    "1",
		PaymentMethod: entity.PaymentCash,
		Lines:         []entity.MaterialLine{line("MAT-001", 1)},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if o.ID != "JO-200" || !o.CreatedAt.Equal(created) || o.PaymentMethod != entity.PaymentCash {
		t.Fatalf("provided fields overwritten: %+v", o)
	}
	if !o.TotalPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("total = %s, want 100", o.TotalPrice)
	}
}

func TestService_SubmitRejects(t *testing.T) {
	valid := func() Draft {
		return Draft{
			Number:      "JO-300",
			EmployeeID:  "1",
			Lines:       []entity.MaterialLine{line("MAT-001", 1)},
			LaborCharge: decimal.NewFromInt(10),
		}
	}

	cases := []struct {
		name   string
		mutate func(d *Draft)
	}{
		{name: "missing number", mutate: func(d *Draft) { d.Number = "  " }},
		{name: "missing employee", mutate: func(d *Draft) { d.EmployeeID = "" }},
		{name: "unknown payment", mutate: func(d *Draft) { d.PaymentMethod = "barter" }},
		{name: "no lines", mutate: func(d *Draft) { d.Lines = nil }},
		{name: "zero quantity", mutate: func(d *Draft) { d.Lines[0].Quantity = 0 }},
		{name: "negative labor", mutate: func(d *Draft) { d.LaborCharge = decimal.NewFromInt(-10) }},
	}

	svc, logs := newTestService(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := valid()
			tc.mutate(&d)
			if _, err := svc.Submit(context.Background(), d); !errorbank.IsKind(err, errorbank.KindInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
	if logs.FilterMessage("job order submitted").Len() != 0 {
		t.Fatalf("rejected drafts must not be logged as submitted")
	}
}

func TestService_Transition(t *testing.T) {
	svc, logs := newTestService(t)
	pending, err := svc.Submit(context.Background(), Draft{
		Number:     "JO-400",
		EmployeeID: "3",
		Lines:      []entity.MaterialLine{line("MAT-002", 1)},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	started, err := svc.Transition(context.Background(), pending, entity.StatusInProgress)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	done, err := svc.Transition(context.Background(), started, entity.StatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(fixedNow) {
		t.Fatalf("completed at = %v, want %s", done.CompletedAt, fixedNow)
	}
	if pending.Status != entity.StatusPending || started.Status != entity.StatusInProgress {
		t.Fatalf("transitions must not mutate their input")
	}

	if _, err := svc.Transition(context.Background(), done, entity.StatusCancelled); !errorbank.IsKind(err, errorbank.KindInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if logs.FilterMessage("job order transition rejected").Len() != 1 {
		t.Fatalf("expected a rejection warning")
	}
	if logs.FilterMessage("job order transitioned").Len() != 2 {
		t.Fatalf("expected two transition logs")
	}

	span := lastSpan(t, "OrderService.Transition")
	if span.Status().Code != codes.Error || len(span.Events()) == 0 {
		t.Fatalf("rejected transition should record the error on the span")
	}
}

func TestService_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	calc := pricing.NewCalculator(dataset.Sample().Prices(), pricing.DefaultFallbackPrice)
	svc, err := NewService(Params{
		Calculator:    calc,
		Logger:        zap.NewNop(),
		MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	ctx := context.Background()
	lines := []entity.MaterialLine{line("MAT-001", 1)}
	if _, err := svc.Quote(ctx, lines, decimal.Zero); err != nil {
		t.Fatalf("Quote: %v", err)
	}
	o, err := svc.Submit(ctx, Draft{Number: "JO-500", EmployeeID: "1", Lines: lines})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Transition(ctx, o, entity.StatusCancelled); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	seen := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				seen[m.Name] += dp.Value
			}
		}
	}
	for _, name := range []string{"stockflow.orders.quoted", "stockflow.orders.submitted", "stockflow.orders.transitions"} {
		if seen[name] != 1 {
			t.Fatalf("%s = %d, want 1", name, seen[name])
		}
	}
}
