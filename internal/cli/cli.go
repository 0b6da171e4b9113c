package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/vk/metagraph/internal/app"
	"github.com/vk/metagraph/internal/config"
	"github.com/vk/metagraph/internal/nodeid"
	"github.com/vk/metagraph/internal/report"
)

// Environment variables that provide flag defaults.
const (
	EnvLogLevel = "METAGRAPH_LOG_LEVEL"
	EnvWorkers  = "METAGRAPH_WORKERS"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments using the process environment for
// defaults. It returns a populated Config, a boolean indicating if the
// program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return ParseWithEnv(args, output, os.Getenv)
}

// ParseWithEnv is Parse with an explicit environment lookup.
func ParseWithEnv(args []string, output io.Writer, getenv func(string) string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("metagraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
metagraph - computes vertex and edge attributes of a metagraph from per-node rules.

Usage:
  metagraph [options] INPUT...

Arguments:
  INPUT
    A metagraph file (.txt/.mg text, .hcl or .yaml), a directory, or a
    doublestar pattern such as 'graphs/**/*.hcl'.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprintf(output, `
Environment:
  %s   default for -log-level
  %s     default for -workers
`, EnvLogLevel, EnvWorkers)
	}

	defaultLevel := "info"
	if v := getenv(EnvLogLevel); v != "" {
		defaultLevel = v
	}
	defaultWorkers := runtime.GOMAXPROCS(0)
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, false, usageError("invalid %s: %q is not an integer", EnvWorkers, v)
		}
		defaultWorkers = n
	}

	inputFormatFlag := flagSet.String("input-format", "auto", "Input format. Options: 'auto', 'text', 'hcl', 'yaml'.")
	outputFlag := flagSet.String("output", "", "Write results to this file instead of stdout.")
	oFlag := flagSet.String("o", "", "Write results to this file (shorthand).")
	outputDirFlag := flagSet.String("output-dir", "", "Write one result file per input into this directory.")
	formatFlag := flagSet.String("format", "text", "Result format. Options: 'text', 'json', 'yaml'.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaultLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", defaultWorkers, "Number of inputs evaluated concurrently.")
	metricsFileFlag := flagSet.String("metrics-file", "", "Write Prometheus metrics to this file after the run.")
	nodesFlag := flagSet.String("nodes", "", "Comma-separated node keys to evaluate and print, e.g. 'v2,e1'. Empty means all.")
	failOnCycleFlag := flagSet.Bool("fail-on-cycle", false, "Fail instead of substituting defaults when a dependency cycle exists.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No inputs provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if *outputFlag != "" && *oFlag != "" && *outputFlag != *oFlag {
		return nil, false, usageError("-output and -o name different files; give only one")
	}
	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	nodes, err := parseNodes(*nodesFlag)
	if err != nil {
		return nil, false, usageError("invalid nodes: %v", err)
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		Inputs:       flagSet.Args(),
		InputFormat:  config.Format(*inputFormatFlag),
		OutputPath:   outputPath,
		OutputDir:    *outputDirFlag,
		OutputFormat: report.Format(*formatFlag),
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		WorkerCount:  *workersFlag,
		MetricsFile:  *metricsFileFlag,
		FailOnCycle:  *failOnCycleFlag,
		Nodes:        nodes,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

// parseNodes splits a comma-separated key list.
func parseNodes(raw string) ([]nodeid.Key, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var keys []nodeid.Key
	for _, part := range strings.Split(raw, ",") {
		key, err := nodeid.Parse(part)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
