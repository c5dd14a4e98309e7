package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockflow/internal/app"
	"github.com/Additional-Code/stockflow/internal/catalog"
	"github.com/Additional-Code/stockflow/internal/config"
	"github.com/Additional-Code/stockflow/internal/observability"
	"github.com/Additional-Code/stockflow/internal/presentation/cli/response"
	serviceorder "github.com/Additional-Code/stockflow/internal/service/order"
	servicereport "github.com/Additional-Code/stockflow/internal/service/report"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	datasetPath string
	metricsOut  string
	compact     bool
}

// env is the slice of the Fx graph commands work with.
type env struct {
	cfg     config.Config
	logger  *zap.Logger
	snap    catalog.Snapshot
	orders  *serviceorder.Service
	reports *servicereport.Service
	obs     *observability.Manager
}

// NewRootCommand builds the root stockflow CLI command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "stockflow",
		Short:         "Job order pricing and shop reporting",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errorbank.InvalidInput(err.Error())
	})

	flags := root.PersistentFlags()
	flags.StringVar(&opts.datasetPath, "dataset", "", "JSON dataset file (overrides DATASET_PATH; default is the built-in sample)")
	flags.StringVar(&opts.metricsOut, "metrics-out", "", "Write Prometheus metrics to this file after the command")
	flags.BoolVar(&opts.compact, "compact", false, "Print single-line JSON")

	root.AddCommand(newQuoteCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newOrdersCmd(opts))
	root.AddCommand(newMaterialsCmd(opts))
	root.AddCommand(newEmployeesCmd(opts))

	return root
}

// Execute runs the stockflow CLI. Failures are rendered as an error envelope
// on stdout and returned so the caller can pick the exit code.
func Execute(ctx context.Context) error {
	return execute(ctx, NewRootCommand())
}

func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		_ = response.New(root.OutOrStdout()).WithError(err).Build()
	}
	return err
}

// run resolves the application graph, lets fn fill the response and renders
// it. Metrics are dumped while the meter provider is still running.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, e *env, b *response.Builder) error) error {
	var e env
	opts := fx.Options(
		app.Core,
		fx.Decorate(o.decorateConfig),
		fx.Populate(&e.cfg, &e.logger, &e.snap, &e.orders, &e.reports, &e.obs),
	)
	return runWithApp(cmd.Context(), opts, func(ctx context.Context) error {
		b := response.New(cmd.OutOrStdout())
		if o.compact {
			b.Compact()
		}
		if err := fn(ctx, &e, b); err != nil {
			return err
		}
		if err := b.Build(); err != nil {
			return errorbank.Internal("failed to write output", errorbank.WithCause(err))
		}
		e.logger.Debug("command completed", zap.String("command", cmd.CommandPath()))
		if o.metricsOut != "" {
			return e.obs.WriteMetrics(o.metricsOut)
		}
		return nil
	})
}

func (o *rootOptions) decorateConfig(cfg config.Config) config.Config {
	if o.datasetPath != "" {
		cfg.Dataset.Path = o.datasetPath
	}
	return cfg
}

func runWithApp(ctx context.Context, opts fx.Option, fn func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	application := fx.New(opts, fx.NopLogger)
	if err := application.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = application.Stop(stopCtx)
	}()
	return fn(ctx)
}
