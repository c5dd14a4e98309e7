package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Additional-Code/stockflow/internal/config"
	"github.com/Additional-Code/stockflow/internal/entity"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

func TestSample_IsValid(t *testing.T) {
	snap := Sample()
	if err := snap.Validate(); err != nil {
		t.Fatalf("sample dataset is invalid: %v", err)
	}
	if len(snap.Materials) != 3 || len(snap.Employees) != 4 || len(snap.Orders) != 6 {
		t.Fatalf("unexpected sample sizes: %d materials, %d employees, %d orders",
			len(snap.Materials), len(snap.Employees), len(snap.Orders))
	}
}

func TestSample_IsFreshEachCall(t *testing.T) {
	a := Sample()
	a.Orders[0].Lines[0].Quantity = 42
	b := Sample()
	if b.Orders[0].Lines[0].Quantity != 1 {
		t.Fatalf("sample dataset leaked a mutation between calls")
	}
}

func TestDecode_File(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "shop.json"))
	if err != nil {
		t.Fatalf("open testdata: %v", err)
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(snap.Orders))
	}

	first := snap.Orders[0]
	if first.Number != "JO-100" {
		t.Fatalf("number should default to id, got %q", first.Number)
	}
	// 2*100 + 250 + 120.5 = 570.5, rounded half-up.
	if !first.TotalPrice.Equal(decimal.NewFromInt(571)) {
		t.Fatalf("computed total = %s, want 571", first.TotalPrice)
	}
	if first.CompletionTime != 2*time.Hour+15*time.Minute {
		t.Fatalf("completion time = %s", first.CompletionTime)
	}

	second := snap.Orders[1]
	if second.Number != "WO-2024-101" || !second.TotalPrice.Equal(decimal.NewFromInt(140)) {
		t.Fatalf("unexpected second order %+v", second)
	}
	if snap.Employees[1].Status != entity.EmployeeActive {
		t.Fatalf("missing employee status should default to active")
	}
	if p, ok := snap.Prices().UnitPrice("MAT-004"); !ok || !p.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("quoted price string not decoded: %s %v", p, ok)
	}
}

func TestDecode_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{`},
		{name: "unknown field", body: `{"materials": [], "warehouses": []}`},
		{name: "negative hours", body: `{"orders": [{"id": "x", "status": "pending", "payment_method": "cash",
			"lines": [{"code": "A", "unit_price": 1, "quantity": 1}], "completion_hours": -1}]}`},
		{name: "total mismatch", body: `{"orders": [{"id": "x", "status": "pending", "payment_method": "cash",
			"lines": [{"code": "A", "unit_price": 1, "quantity": 1}], "labor_charge": 1, "total_price": 5}]}`},
		{name: "completed without timestamp", body: `{"orders": [{"id": "x", "status": "completed", "payment_method": "cash",
			"lines": [{"code": "A", "unit_price": 1, "quantity": 1}]}]}`},
		{name: "duplicate material", body: `{"materials": [
			{"code": "A", "name": "a", "unit_price": 1}, {"code": "A", "name": "b", "unit_price": 2}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.body))
			if !errorbank.IsKind(err, errorbank.KindInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestDecode_PricingErrorCarriesOrderID(t *testing.T) {
	body := `{"orders": [{"id": "JO-900", "status": "pending", "payment_method": "cash",
		"lines": [{"code": "A", "unit_price": 1, "quantity": -2}]}]}`

	_, err := Decode(strings.NewReader(body))
	if !errorbank.IsKind(err, errorbank.KindInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if got := errorbank.From(err).Details()["id"]; got != "JO-900" {
		t.Fatalf("details id = %v, want JO-900", got)
	}
}

func TestLoader(t *testing.T) {
	t.Run("sample when no path", func(t *testing.T) {
		l := NewLoader(config.Config{}, zap.NewNop())
		snap, err := l.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snap.Orders) != 6 {
			t.Fatalf("expected sample orders, got %d", len(snap.Orders))
		}
	})

	t.Run("file", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		l := NewLoader(config.Config{Dataset: config.Dataset{Path: filepath.Join("testdata", "shop.json")}}, zap.New(core))

		snap, err := l.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snap.Materials) != 2 {
			t.Fatalf("expected 2 materials, got %d", len(snap.Materials))
		}
		entries := logs.FilterMessage("dataset loaded").All()
		if len(entries) != 1 || entries[0].ContextMap()["orders"] != int64(2) {
			t.Fatalf("expected one load log entry, got %+v", entries)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		l := NewLoader(config.Config{Dataset: config.Dataset{Path: filepath.Join(t.TempDir(), "nope.json")}}, nil)
		_, err := l.Load(context.Background())
		if !errorbank.IsKind(err, errorbank.KindNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewLoader(config.Config{}, nil).Load(ctx)
		if err == nil {
			t.Fatalf("expected context error")
		}
	})
}
