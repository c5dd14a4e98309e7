package cli

import (
	"context"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/Additional-Code/stockflow/internal/catalog"
	"github.com/Additional-Code/stockflow/internal/config"
	"github.com/Additional-Code/stockflow/internal/dto"
	"github.com/Additional-Code/stockflow/internal/entity"
	"github.com/Additional-Code/stockflow/internal/presentation/cli/response"
	serviceorder "github.com/Additional-Code/stockflow/internal/service/order"
	servicereport "github.com/Additional-Code/stockflow/internal/service/report"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

func newQuoteCmd(opts *rootOptions) *cobra.Command {
	var (
		lines []string
		labor string
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price material lines plus labor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env, b *response.Builder) error {
				parsed, err := resolveLines(e.snap, lines)
				if err != nil {
					return err
				}
				laborCharge, err := parseAmount("labor", labor)
				if err != nil {
					return err
				}
				q, err := e.orders.Quote(ctx, parsed, laborCharge)
				if err != nil {
					return err
				}
				b.WithData(dto.NewQuoteResponse(q)).WithMeta("currency", e.cfg.Pricing.Currency)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&lines, "line", nil, "Material line as CODE:QTY (repeatable)")
	cmd.Flags().StringVar(&labor, "labor", "0", "Labor charge")
	return cmd
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		days int
		now  string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the dashboard report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env, b *response.Builder) error {
				window := e.cfg.Report.WindowDays
				if cmd.Flags().Changed("days") {
					window = days
				}
				if !slices.Contains(config.AllowedWindows, window) {
					return errorbank.InvalidInput("unsupported report window",
						errorbank.WithDetail("days", window),
						errorbank.WithDetail("allowed", config.AllowedWindows),
					)
				}

				var anchor time.Time
				if now != "" {
					parsed, err := time.Parse(time.RFC3339, now)
					if err != nil {
						return errorbank.InvalidInput("now must be an RFC 3339 timestamp", errorbank.WithCause(err))
					}
					anchor = parsed
				}

				d, err := e.reports.Dashboard(ctx, e.snap, servicereport.Options{WindowDays: window, Now: anchor})
				if err != nil {
					return err
				}
				b.WithData(dto.NewDashboardResponse(d)).
					WithMeta("window_days", window).
					WithMeta("currency", e.cfg.Pricing.Currency)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Only count orders from the last N days: 0, 7, 30 or 90 (default REPORT_WINDOW_DAYS)")
	cmd.Flags().StringVar(&now, "now", "", "Anchor the window at this RFC 3339 time instead of the current time")
	return cmd
}

func newOrdersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect and manage job orders",
	}
	cmd.AddCommand(newOrdersListCmd(opts), newOrdersSubmitCmd(opts), newOrdersTransitionCmd(opts))
	return cmd
}

func newOrdersListCmd(opts *rootOptions) *cobra.Command {
	var (
		search string
		status string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env, b *response.Builder) error {
				filter := catalog.OrderFilter{Term: search}
				if status != "" && status != "all" {
					filter.Status = entity.Status(status)
					if !filter.Status.Valid() {
						return errorbank.InvalidInput("unknown status filter", errorbank.WithDetail("status", status))
					}
				}
				orders := catalog.SearchOrders(e.snap, filter)
				b.WithData(orderResponses(e.snap, orders)).WithMeta("count", len(orders))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Match order number, employee name or material name")
	cmd.Flags().StringVar(&status, "status", "", "Only orders in this status (or all)")
	return cmd
}

func newOrdersSubmitCmd(opts *rootOptions) *cobra.Command {
	var (
		draft   serviceorder.Draft
		payment string
		lines   []string
		labor   string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and price a new job order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env, b *response.Builder) error {
				parsed, err := resolveLines(e.snap, lines)
				if err != nil {
					return err
				}
				laborCharge, err := parseAmount("labor", labor)
				if err != nil {
					return err
				}
				draft.Lines = parsed
				draft.LaborCharge = laborCharge
				draft.PaymentMethod = entity.PaymentMethod(payment)

				o, err := e.orders.Submit(ctx, draft)
				if err != nil {
					return err
				}
				b.WithData(orderResponse(e.snap, o)).WithMeta("currency", e.cfg.Pricing.Currency)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&draft.ID, "id", "", "Order id (generated when empty)")
	cmd.Flags().StringVar(&draft.Number, "number", "", "Order number")
	cmd.Flags().StringVar(&draft.EmployeeID, "employee", "", "Assigned employee id")
	cmd.Flags().StringVar(&payment, "payment", string(entity.PaymentCreditCard), "Payment method: credit_card, cash or bank_transfer")
	cmd.Flags().StringArrayVar(&lines, "line", nil, "Material line as CODE:QTY (repeatable)")
	cmd.Flags().StringVar(&labor, "labor", "0", "Labor charge")
	return cmd
}

func newOrdersTransitionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transition [id] [status]",
		Short: "Move a job order to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env, b *response.Builder) error {
				o, err := e.snap.Order(args[0])
				if err != nil {
					return err
				}
				next, err := e.orders.Transition(ctx, o, entity.Status(args[1]))
				if err != nil {
					return err
				}
				b.WithData(orderResponse(e.snap, next)).WithMeta("from", string(o.Status))
				return nil
			})
		},
	}
}

func newMaterialsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Inspect the material catalog",
	}
	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env, b *response.Builder) error {
				materials := catalog.SearchMaterials(e.snap.Materials, search)
				b.WithData(dto.NewMaterialResponses(materials)).WithMeta("count", len(materials))
				return nil
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "Match code, name or brand")
	cmd.AddCommand(list)
	return cmd
}

func newEmployeesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Inspect employees",
	}
	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env, b *response.Builder) error {
				employees := catalog.SearchEmployees(e.snap.Employees, search)
				b.WithData(dto.NewEmployeeResponses(employees)).WithMeta("count", len(employees))
				return nil
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "Match name, email or position")
	cmd.AddCommand(list)
	return cmd
}

func orderResponses(snap catalog.Snapshot, orders []entity.JobOrder) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderResponse(snap, o))
	}
	return out
}

func orderResponse(snap catalog.Snapshot, o entity.JobOrder) dto.OrderResponse {
	var name string
	if e, ok := snap.Employee(o.EmployeeID); ok {
		name = e.Name
	}
	return dto.NewOrderResponse(o, name)
}
