package app

import (
	"errors"
	"fmt"

	"github.com/vk/metagraph/internal/config"
	"github.com/vk/metagraph/internal/nodeid"
	"github.com/vk/metagraph/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Inputs      []string // files, directories or doublestar patterns
	InputFormat config.Format

	OutputPath   string // empty means the App's stdout writer
	OutputDir    string // one result file per input
	OutputFormat report.Format

	LogFormat   string
	LogLevel    string
	WorkerCount int
	MetricsFile string
	FailOnCycle bool
	// Nodes limits evaluation and output to these keys. Empty means all.
	Nodes []nodeid.Key
}

// NewConfig validates cfg and returns a normalised copy.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Inputs) == 0 {
		return nil, errors.New("at least one input is required")
	}
	if cfg.OutputPath != "" && cfg.OutputDir != "" {
		return nil, errors.New("output path and output directory are mutually exclusive")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", cfg.WorkerCount)
	}

	inFormat, err := config.ParseFormat(string(cfg.InputFormat))
	if err != nil {
		return nil, err
	}
	cfg.InputFormat = inFormat

	outFormat, err := report.ParseFormat(string(cfg.OutputFormat))
	if err != nil {
		return nil, err
	}
	cfg.OutputFormat = outFormat

	cfg.Inputs = append([]string(nil), cfg.Inputs...)
	if len(cfg.Nodes) > 0 {
		cfg.Nodes = append([]nodeid.Key(nil), cfg.Nodes...)
	}
	return &cfg, nil
}
