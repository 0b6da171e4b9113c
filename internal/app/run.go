package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/metagraph/internal/ctxlog"
	"github.com/vk/metagraph/internal/dag"
	"github.com/vk/metagraph/internal/evaluator"
	"github.com/vk/metagraph/internal/fsutil"
	"github.com/vk/metagraph/internal/metrics"
	"github.com/vk/metagraph/internal/report"
	"golang.org/x/sync/errgroup"
)

// outcome is the evaluation of one input.
type outcome struct {
	path   string
	result *evaluator.Result
}

// Run evaluates every input and writes the results. Inputs are independent
// and are evaluated concurrently, but results are written in input order.
// The first failing input aborts the run.
func (a *App) Run(ctx context.Context, outW io.Writer) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	paths, err := fsutil.ExpandInputs(a.config.Inputs)
	if err != nil {
		return fmt.Errorf("failed to resolve inputs: %w", err)
	}
	a.logger.Info("Inputs resolved.", "count", len(paths), "workers", a.config.WorkerCount)

	outcomes := make([]outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := a.evaluateFile(gctx, path)
			if err != nil {
				a.metrics.ObserveFailure()
				return fmt.Errorf("%s: %w", path, err)
			}
			outcomes[i] = outcome{path: path, result: result}
			return nil
		})
	}
	runErr := g.Wait()

	if a.config.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.config.MetricsFile, a.registry); err != nil {
			runErr = errors.Join(runErr, err)
		} else {
			a.logger.Debug("Metrics written.", "path", a.config.MetricsFile)
		}
	}
	if runErr != nil {
		return runErr
	}

	if err := a.writeResults(outW, outcomes); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// evaluateFile loads one input and runs a full pass over it.
func (a *App) evaluateFile(ctx context.Context, path string) (*evaluator.Result, error) {
	logger := ctxlog.FromContext(ctx).With("input", path)
	ctx = ctxlog.WithLogger(ctx, logger)

	mg, err := a.loaders.Load(ctx, a.config.InputFormat, path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	graph, err := dag.Build(ctx, mg)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	if a.config.FailOnCycle {
		if err := graph.DetectCycles(); err != nil {
			return nil, err
		}
	}

	ev := evaluator.New(ctx, graph)
	var result *evaluator.Result
	if len(a.config.Nodes) > 0 {
		result, err = ev.ResolveKeys(a.config.Nodes)
		if err != nil {
			return nil, err
		}
	} else {
		result = ev.Run()
	}
	elapsed := time.Since(start)
	a.metrics.ObservePass(result, elapsed)
	logger.Info("All attributes computed.", "nodes", result.Values.Len(), "cycle_breaks", len(result.CycleBreaks), "duration", elapsed)
	return result, nil
}

// writeResults sends every outcome to its destination.
func (a *App) writeResults(outW io.Writer, outcomes []outcome) error {
	format := a.config.OutputFormat

	if a.config.OutputDir != "" {
		if err := os.MkdirAll(a.config.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		for _, o := range outcomes {
			target := filepath.Join(a.config.OutputDir, resultFileName(o.path, format))
			if err := writeFile(target, format, o); err != nil {
				return err
			}
			a.logger.Info("Results saved.", "input", o.path, "output", target)
		}
		return nil
	}

	if a.config.OutputPath != "" {
		f, err := os.Create(a.config.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := writeAll(f, format, outcomes); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
		a.logger.Info("Results saved.", "output", a.config.OutputPath)
		return nil
	}

	return writeAll(outW, format, outcomes)
}

// writeAll writes all outcomes to one stream. With several inputs, text
// results get a "# path" header and YAML results become separate documents.
func writeAll(w io.Writer, format report.Format, outcomes []outcome) error {
	multi := len(outcomes) > 1
	for _, o := range outcomes {
		if multi {
			var sep string
			switch format {
			case report.FormatText:
				sep = "# " + o.path + "\n"
			case report.FormatYAML:
				sep = "---\n"
			}
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
		if err := report.Write(w, format, o.path, o.result); err != nil {
			return fmt.Errorf("failed to write results for %s: %w", o.path, err)
		}
	}
	return nil
}

func writeFile(path string, format report.Format, o outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := report.Write(f, format, o.path, o.result); err != nil {
		f.Close()
		return fmt.Errorf("failed to write results for %s: %w", o.path, err)
	}
	return f.Close()
}

// resultFileName maps "graphs/a.hcl" to "a.json" for the JSON format.
func resultFileName(input string, format report.Format) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + format.Extension()
}
