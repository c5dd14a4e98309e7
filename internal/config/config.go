package config

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Pricing configures the order pricing calculator.
type Pricing struct {
	DefaultUnitPrice float64
	Currency         string
}

// Dataset points at the JSON dataset to load; empty means the built-in sample.
type Dataset struct {
	Path string
}

// Report holds dashboard defaults.
type Report struct {
	WindowDays int
}

// Observability contains logging, tracing, and metrics configuration.
type Observability struct {
	ServiceName     string
	Environment     string
	LogLevel        string
	LogEncoding     string
	EnableTracing   bool
	TraceExporter   string
	TraceEndpoint   string
	TraceInsecure   bool
	EnableMetrics   bool
	MetricsExporter string
}

// Config wraps all application configuration knobs.
type Config struct {
	Pricing       Pricing
	Dataset       Dataset
	Report        Report
	Observability Observability
}

// AllowedWindows are the dashboard time ranges in days; zero means all time.
var AllowedWindows = []int{0, 7, 30, 90}

// Module wires the configuration loader into the Fx graph.
var Module = fx.Provide(New)

var loadEnvOnce sync.Once

// New builds a Config from environment variables or defaults.
func New() (Config, error) {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	cfg := Config{
		Pricing: Pricing{
			DefaultUnitPrice: getEnvAsFloat("PRICING_DEFAULT_UNIT_PRICE", 100),
			Currency:         getEnv("PRICING_CURRENCY", "USD"),
		},
		Dataset: Dataset{
			Path: getEnv("DATASET_PATH", ""),
		},
		Report: Report{
			WindowDays: getEnvAsInt("REPORT_WINDOW_DAYS", 0),
		},
		Observability: Observability{
			ServiceName:     getEnv("OBS_SERVICE_NAME", "stockflow"),
			Environment:     getEnv("OBS_ENVIRONMENT", "local"),
			LogLevel:        getEnv("OBS_LOG_LEVEL", "info"),
			LogEncoding:     getEnv("OBS_LOG_ENCODING", "json"),
			EnableTracing:   getEnvAsBool("OBS_ENABLE_TRACING", false),
			TraceExporter:   getEnv("OBS_TRACE_EXPORTER", "stdout"),
			TraceEndpoint:   getEnv("OBS_OTLP_ENDPOINT", "localhost:4317"),
			TraceInsecure:   getEnvAsBool("OBS_OTLP_INSECURE", true),
			EnableMetrics:   getEnvAsBool("OBS_ENABLE_METRICS", true),
			MetricsExporter: getEnv("OBS_METRICS_EXPORTER", "prometheus"),
		},
	}

	if cfg.Pricing.DefaultUnitPrice < 0 {
		return Config{}, fmt.Errorf("invalid PRICING_DEFAULT_UNIT_PRICE: %v", cfg.Pricing.DefaultUnitPrice)
	}
	cfg.Pricing.Currency = strings.ToUpper(strings.TrimSpace(cfg.Pricing.Currency))
	if cfg.Pricing.Currency == "" {
		cfg.Pricing.Currency = "USD"
	}

	cfg.Dataset.Path = strings.TrimSpace(cfg.Dataset.Path)

	if !slices.Contains(AllowedWindows, cfg.Report.WindowDays) {
		return Config{}, fmt.Errorf("unsupported REPORT_WINDOW_DAYS: %d", cfg.Report.WindowDays)
	}

	cfg.Observability.LogLevel = strings.ToLower(strings.TrimSpace(cfg.Observability.LogLevel))
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	cfg.Observability.LogEncoding = strings.ToLower(strings.TrimSpace(cfg.Observability.LogEncoding))
	if cfg.Observability.LogEncoding == "" {
		cfg.Observability.LogEncoding = "json"
	}
	cfg.Observability.TraceExporter = strings.ToLower(strings.TrimSpace(cfg.Observability.TraceExporter))
	if cfg.Observability.TraceExporter == "" {
		cfg.Observability.TraceExporter = "stdout"
	}
	cfg.Observability.MetricsExporter = strings.ToLower(strings.TrimSpace(cfg.Observability.MetricsExporter))
	if cfg.Observability.MetricsExporter == "" {
		cfg.Observability.MetricsExporter = "prometheus"
	}

	return cfg, nil
}
