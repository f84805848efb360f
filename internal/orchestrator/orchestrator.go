// Package orchestrator sequences a benchmark invocation: drive each
// workload, load its previous run, compute the comparison, render the
// artifact, and promote the current run to be the next baseline.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katharostech/benchmark-games/internal/bench"
	"github.com/katharostech/benchmark-games/internal/config"
	"github.com/katharostech/benchmark-games/internal/game"
	"github.com/katharostech/benchmark-games/internal/report"
	"github.com/katharostech/benchmark-games/internal/stats"
)

// Orchestrator wires the harness components together for one invocation.
// The sampler inside Driver must already be open: counter availability is
// checked before any workload runs, never during.
type Orchestrator struct {
	Config    config.Config
	Driver    *bench.Driver
	Baselines *bench.BaselineStore
	Renderer  report.Renderer

	// NewWorkload is injectable for tests; defaults to the game registry.
	NewWorkload func(name string) (bench.Workload, error)
	// Out receives the human summary. Defaults to stdout.
	Out io.Writer
}

// Run benchmarks the named workloads. A workload failure discards that
// workload's partial run and skips its report and baseline, but the remaining
// workloads still execute; the aggregated error makes the invocation exit
// non-zero. A render failure is fatal too, though fresh baselines are
// persisted first so the next invocation still has a comparison point.
func (o *Orchestrator) Run(ctx context.Context, names []string, headless bool) error {
	newWorkload := o.NewWorkload
	if newWorkload == nil {
		newWorkload = func(name string) (bench.Workload, error) { return game.New(name) }
	}
	out := o.Out
	if out == nil {
		out = os.Stdout
	}

	iterations := o.Config.Iterations
	if !headless {
		iterations = o.Config.HeadfulIterations
	}

	var (
		failures []error
		reports  []stats.ComparisonReport
		runs     []bench.Run
	)

	for _, name := range names {
		workload, err := newWorkload(name)
		if err != nil {
			return err
		}

		run, err := o.Driver.Run(ctx, workload, iterations, headless)
		if err != nil {
			slog.Error("Workload run aborted", "workload", name, "error", err)
			failures = append(failures, err)
			continue
		}

		var previous *bench.Run
		if run.Comparable {
			prev, err := o.Baselines.Load(name, iterations)
			switch {
			case errors.Is(err, bench.ErrNoBaseline):
				slog.Warn("No usable baseline, rendering current run only", "workload", name, "reason", err)
			case err != nil:
				slog.Warn("Baseline load failed, rendering current run only", "workload", name, "error", err)
			default:
				previous = &prev
			}
		}

		reports = append(reports, stats.Compare(name, run, previous, o.Config.RegressionThresholdPct))
		runs = append(runs, run)
	}

	if len(reports) == 0 {
		return errors.Join(failures...)
	}

	renderErr := o.Renderer.WriteFile(reports, o.Config.ReportPath())
	if renderErr == nil {
		slog.Info("Report written", "path", o.Config.ReportPath())
	}

	// Baselines are promoted even when rendering failed, so the next
	// invocation compares against this run rather than a stale one.
	for _, run := range runs {
		if !run.Comparable {
			slog.Debug("Skipping baseline promotion for non-comparable run", "workload", run.Workload)
			continue
		}
		if err := o.Baselines.Replace(run); err != nil {
			failures = append(failures, fmt.Errorf("promoting baseline for %s: %w", run.Workload, err))
		}
	}

	printSummary(out, reports, o.Config.ReportPath())

	if renderErr != nil {
		failures = append(failures, fmt.Errorf("rendering report: %w", renderErr))
	}
	return errors.Join(failures...)
}
