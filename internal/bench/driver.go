package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/katharostech/benchmark-games/internal/counter"
)

// Workload is the harness-side view of a simulation: advance exactly one
// fixed logical tick per Step. Any internal parallelism is opaque; one Step
// is an atomic, blocking unit whose wall time and counter delta are measured.
type Workload interface {
	Name() string
	Step() error
}

// Presenter is implemented by workloads that can visualize a frame in
// headful mode.
type Presenter interface {
	Present(w io.Writer) error
}

// Driver executes a workload for a fixed number of iterations, timing each
// one and sampling hardware counters around it.
type Driver struct {
	Sampler counter.Sampler
	// PresentTo receives headful presentation output. Defaults to stdout.
	PresentTo io.Writer
}

// Run drives the workload. Iterations run strictly sequentially; there is no
// per-iteration timeout, a hung frame blocks the run. A Step error aborts
// immediately and the partial samples are discarded, never finalized.
func (d *Driver) Run(ctx context.Context, w Workload, iterations int, headless bool) (Run, error) {
	if iterations < 1 {
		return Run{}, fmt.Errorf("iterations must be at least 1, got %d", iterations)
	}

	store := NewSampleStore(w.Name(), iterations, headless)

	presentTo := d.PresentTo
	if presentTo == nil {
		presentTo = os.Stdout
	}
	presenter, canPresent := w.(Presenter)
	if !headless && !canPresent {
		slog.Warn("Workload cannot present frames, headful run degrades to stepping only", "workload", w.Name())
	}

	slog.Info("Driving workload", "workload", w.Name(), "iterations", iterations, "headless", headless)

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Run{}, fmt.Errorf("run of %s canceled at iteration %d: %w", w.Name(), i, err)
		}

		start := time.Now()
		if err := d.Sampler.Begin(); err != nil {
			return Run{}, fmt.Errorf("opening sampling region for %s iteration %d: %w", w.Name(), i, err)
		}

		stepErr := w.Step()

		counts, endErr := d.Sampler.End()
		elapsed := time.Since(start)

		if stepErr != nil {
			return Run{}, fmt.Errorf("workload %s failed at iteration %d: %w", w.Name(), i, stepErr)
		}
		if endErr != nil {
			return Run{}, fmt.Errorf("closing sampling region for %s iteration %d: %w", w.Name(), i, endErr)
		}

		if err := store.Append(Sample{
			FrameTime:    elapsed,
			Cycles:       counts.Cycles,
			Instructions: counts.Instructions,
		}); err != nil {
			return Run{}, err
		}

		// Presentation stays outside the sampled region so headful
		// frames measure the same work as headless ones.
		if !headless && canPresent {
			if err := presenter.Present(presentTo); err != nil {
				return Run{}, fmt.Errorf("presenting %s frame %d: %w", w.Name(), i, err)
			}
		}
	}

	return store.Finalize(), nil
}
