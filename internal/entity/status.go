package entity

import (
	"slices"
	"time"

	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// Status is the lifecycle state of a job order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// Transition returns a copy of the order moved to status to. Entering
// completed stamps CompletedAt with at; every other target clears it.
func (o JobOrder) Transition(to Status, at time.Time) (JobOrder, error) {
	if !to.Valid() {
		return JobOrder{}, errorbank.InvalidTransition("unknown target status",
			errorbank.WithDetail("id", o.ID),
			errorbank.WithDetail("to", string(to)),
		)
	}
	if o.Status.Terminal() {
		return JobOrder{}, errorbank.InvalidTransition("job order is in a terminal state",
			errorbank.WithDetail("id", o.ID),
			errorbank.WithDetail("from", string(o.Status)),
			errorbank.WithDetail("to", string(to)),
		)
	}
	if !CanTransition(o.Status, to) {
		return JobOrder{}, errorbank.InvalidTransition("transition not allowed",
			errorbank.WithDetail("id", o.ID),
			errorbank.WithDetail("from", string(o.Status)),
			errorbank.WithDetail("to", string(to)),
		)
	}

	next := o.Clone()
	next.Status = to
	next.CompletedAt = nil
	if to == StatusCompleted {
		stamp := at.UTC()
		next.CompletedAt = &stamp
	}
	return next, nil
}
