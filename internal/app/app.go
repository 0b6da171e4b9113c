package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/metagraph/internal/config"
	"github.com/vk/metagraph/internal/hclformat"
	"github.com/vk/metagraph/internal/metrics"
	"github.com/vk/metagraph/internal/textformat"
	"github.com/vk/metagraph/internal/yamlformat"
)

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	logger   *slog.Logger
	config   *Config
	loaders  *config.Registry
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// New is the constructor for the main application. Logs are written to logW.
// Each App gets its own logger and metrics registry.
func New(logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	loaders := config.NewRegistry()
	loaders.Register(config.FormatText, textformat.NewLoader())
	loaders.Register(config.FormatHCL, hclformat.NewLoader())
	loaders.Register(config.FormatYAML, yamlformat.NewLoader())

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise metrics: %w", err)
	}
	logger.Debug("Metrics registered.")

	return &App{
		logger:   logger,
		config:   cfg,
		loaders:  loaders,
		registry: reg,
		metrics:  m,
	}, nil
}

// Metrics returns the application's collectors. This is primarily for testing.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}
