package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/stockflow/internal/config"
	"github.com/Additional-Code/stockflow/internal/dataset"
	"github.com/Additional-Code/stockflow/internal/logger"
	"github.com/Additional-Code/stockflow/internal/observability"
	"github.com/Additional-Code/stockflow/internal/pricing"
	serviceorder "github.com/Additional-Code/stockflow/internal/service/order"
	servicereport "github.com/Additional-Code/stockflow/internal/service/report"
)

// Core provides the foundational modules shared by every command.
var Core = fx.Options(
	config.Module,
	logger.Module,
	observability.Module,
	dataset.Module,
	pricing.Module,
	serviceorder.Module,
	servicereport.Module,
)
