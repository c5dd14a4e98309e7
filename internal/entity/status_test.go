package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

func pendingOrder() JobOrder {
	return JobOrder{
		ID:            "JO-100",
		Number:        "JO-100",
		CreatedAt:     time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		EmployeeID:    "1",
		Status:        StatusPending,
		PaymentMethod: PaymentCash,
		Lines: []MaterialLine{
			{Code: "MAT-001", Name: "Steel Pipe", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		},
		LaborCharge: decimal.NewFromInt(50),
		TotalPrice:  decimal.NewFromInt(250),
	}
}

func TestTransition_Allowed(t *testing.T) {
	at := time.Date(2024, 1, 16, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		from Status
		to   Status
	}{
		{name: "start work", from: StatusPending, to: StatusInProgress},
		{name: "cancel pending", from: StatusPending, to: StatusCancelled},
		{name: "complete", from: StatusInProgress, to: StatusCompleted},
		{name: "cancel in progress", from: StatusInProgress, to: StatusCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := pendingOrder()
			order.Status = tc.from

			next, err := order.Transition(tc.to, at)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if next.Status != tc.to {
				t.Fatalf("status = %s, want %s", next.Status, tc.to)
			}
			if tc.to == StatusCompleted {
				if next.CompletedAt == nil || !next.CompletedAt.Equal(at) {
					t.Fatalf("expected completed_at %v, got %v", at, next.CompletedAt)
				}
			} else if next.CompletedAt != nil {
				t.Fatalf("expected completed_at to be unset, got %v", next.CompletedAt)
			}
			if order.Status != tc.from {
				t.Fatalf("receiver was mutated: %s", order.Status)
			}
			if err := next.Validate(); err != nil {
				t.Fatalf("transitioned order is invalid: %v", err)
			}
		})
	}
}

func TestTransition_Rejected(t *testing.T) {
	at := time.Now()

	cases := []struct {
		name string
		from Status
		to   Status
	}{
		{name: "skip to completed", from: StatusPending, to: StatusCompleted},
		{name: "back to pending", from: StatusInProgress, to: StatusPending},
		{name: "self transition", from: StatusPending, to: StatusPending},
		{name: "leave completed", from: StatusCompleted, to: StatusCancelled},
		{name: "leave cancelled", from: StatusCancelled, to: StatusPending},
		{name: "unknown target", from: StatusPending, to: Status("archived")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := pendingOrder()
			order.Status = tc.from
			if tc.from == StatusCompleted {
				done := at
				order.CompletedAt = &done
			}

			_, err := order.Transition(tc.to, at)
			if !errorbank.IsKind(err, errorbank.KindInvalidTransition) {
				t.Fatalf("expected invalid transition, got %v", err)
			}
		})
	}
}

func TestTransition_DoesNotShareLines(t *testing.T) {
	order := pendingOrder()
	next, err := order.Transition(StatusInProgress, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next.Lines[0].Quantity = 99
	if order.Lines[0].Quantity != 2 {
		t.Fatalf("lines are shared between snapshots")
	}
}

func TestStatus_Predicates(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Fatalf("archived should not be valid")
	}
	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Fatalf("completed and cancelled are terminal")
	}
	if StatusPending.Terminal() || StatusInProgress.Terminal() {
		t.Fatalf("pending and in_progress are not terminal")
	}
	if CanTransition(StatusCompleted, StatusCancelled) {
		t.Fatalf("terminal states have no edges")
	}
}
