package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockflow/internal/entity"
	"github.com/Additional-Code/stockflow/internal/pricing"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

const instrumentationName = "github.com/Additional-Code/stockflow/service/order"

var serviceTracer = otel.Tracer(instrumentationName)

// Draft is a job order as collected by the intake form, before pricing.
type Draft struct {
	ID            string
	Number        string
	CreatedAt     time.Time
	EmployeeID    string
	PaymentMethod entity.PaymentMethod
	Lines         []entity.MaterialLine
	LaborCharge   decimal.Decimal
}

// Service is the write path for job orders: pricing, submission and status
// changes. It keeps no order state of its own.
type Service struct {
	calc   *pricing.Calculator
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	quoted      metric.Int64Counter
	submitted   metric.Int64Counter
	transitions metric.Int64Counter
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Calculator    *pricing.Calculator
	Logger        *zap.Logger
	MeterProvider metric.MeterProvider `optional:"true"`
}

// NewService wires a new Service instance.
func NewService(p Params) (*Service, error) {
	meter := meterProvider(p.MeterProvider).Meter(instrumentationName)

	quoted, err := meter.Int64Counter("stockflow.orders.quoted", metric.WithDescription("Quotes computed"))
	if err != nil {
		return nil, err
	}
	submitted, err := meter.Int64Counter("stockflow.orders.submitted", metric.WithDescription("Job orders submitted"))
	if err != nil {
		return nil, err
	}
	transitions, err := meter.Int64Counter("stockflow.orders.transitions", metric.WithDescription("Job order status transitions"))
	if err != nil {
		return nil, err
	}

	return &Service{
		calc:        p.Calculator,
		logger:      p.Logger,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
		quoted:      quoted,
		submitted:   submitted,
		transitions: transitions,
	}, nil
}

// Quote prices lines and labor without creating anything. Callers re-quote
// after every edit; nothing is observed or cached here.
func (s *Service) Quote(ctx context.Context, lines []entity.MaterialLine, laborCharge decimal.Decimal) (pricing.Quote, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Quote", trace.WithAttributes(attribute.Int("order.lines", len(lines))))
	defer span.End()

	q, err := s.calc.Quote(lines, laborCharge)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pricing rejected input")
		return pricing.Quote{}, err
	}

	s.quoted.Add(ctx, 1)
	span.SetAttributes(attribute.String("order.total", q.Total.String()))
	return q, nil
}

// Submit validates a draft and turns it into a pending, priced job order.
// Each line captures the unit price used for the total.
func (s *Service) Submit(ctx context.Context, d Draft) (entity.JobOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Submit", trace.WithAttributes(attribute.String("order.number", d.Number)))
	defer span.End()

	if err := validateDraft(&d); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid draft")
		return entity.JobOrder{}, err
	}

	q, err := s.calc.Quote(d.Lines, d.LaborCharge)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pricing rejected input")
		return entity.JobOrder{}, err
	}

	lines := make([]entity.MaterialLine, len(d.Lines))
	for i, line := range d.Lines {
		line.UnitPrice = q.Lines[i].UnitPrice
		lines[i] = line
		if q.Lines[i].Fallback && s.logger != nil {
			s.logger.Warn("material missing from price list; fallback price applied",
				zap.String("order_number", d.Number),
				zap.String("code", line.Code),
				zap.String("unit_price", line.UnitPrice.String()),
			)
		}
	}

	o := entity.JobOrder{
		ID:            d.ID,
		Number:        d.Number,
		CreatedAt:     d.CreatedAt,
		EmployeeID:    d.EmployeeID,
		Status:        entity.StatusPending,
		PaymentMethod: d.PaymentMethod,
		Lines:         lines,
		LaborCharge:   d.LaborCharge,
		TotalPrice:    q.Total,
	}
	if o.ID == "" {
		o.ID = s.newID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now()
	}

	if err := o.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid order")
		return entity.JobOrder{}, err
	}

	s.submitted.Add(ctx, 1, metric.WithAttributes(attribute.String("payment_method", string(o.PaymentMethod))))
	if s.logger != nil {
		s.logger.Info("job order submitted",
			zap.String("id", o.ID),
			zap.String("number", o.Number),
			zap.String("employee_id", o.EmployeeID),
			zap.String("total", o.TotalPrice.String()),
		)
	}
	return o, nil
}

// Transition moves an order to a new status using the service clock and
// returns the new order value.
func (s *Service) Transition(ctx context.Context, o entity.JobOrder, to entity.Status) (entity.JobOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Transition", trace.WithAttributes(
		attribute.String("order.id", o.ID),
		attribute.String("order.from", string(o.Status)),
		attribute.String("order.to", string(to)),
	))
	defer span.End()

	next, err := o.Transition(to, s.now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transition rejected")
		if s.logger != nil {
			s.logger.Warn("job order transition rejected",
				zap.String("id", o.ID),
				zap.String("from", string(o.Status)),
				zap.String("to", string(to)),
			)
		}
		return entity.JobOrder{}, err
	}

	s.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", string(o.Status)),
		attribute.String("to", string(to)),
	))
	if s.logger != nil {
		s.logger.Info("job order transitioned",
			zap.String("id", o.ID),
			zap.String("from", string(o.Status)),
			zap.String("to", string(to)),
		)
	}
	return next, nil
}

func meterProvider(mp metric.MeterProvider) metric.MeterProvider {
	if mp == nil {
		return otel.GetMeterProvider()
	}
	return mp
}

func validateDraft(d *Draft) error {
	d.Number = strings.TrimSpace(d.Number)
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
	if d.Number == "" {
		return errorbank.InvalidInput("order number is required")
	}
	if d.EmployeeID == "" {
		return errorbank.InvalidInput("employee is required", errorbank.WithDetail("number", d.Number))
	}
	if d.PaymentMethod == "" {
		d.PaymentMethod = entity.PaymentCreditCard
	}
	if !d.PaymentMethod.Valid() {
		return errorbank.InvalidInput("unknown payment method",
			errorbank.WithDetail("number", d.Number),
			errorbank.WithDetail("payment_method", string(d.PaymentMethod)),
		)
	}
	if len(d.Lines) == 0 {
		return errorbank.InvalidInput("at least one material is required", errorbank.WithDetail("number", d.Number))
	}
	for _, line := range d.Lines {
		if line.Quantity < 1 {
			return errorbank.InvalidInput("quantity must be at least 1",
				errorbank.WithDetail("number", d.Number),
				errorbank.WithDetail("code", line.Code),
			)
		}
	}
	return nil
}
