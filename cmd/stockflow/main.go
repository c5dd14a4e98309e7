package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Additional-Code/stockflow/internal/cli"
	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(errorbank.From(err).ExitCode())
	}
}
