package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katharostech/benchmark-games/internal/bench"
)

// runWithCycles builds a run whose cpu_cycles samples take the given values.
func runWithCycles(values ...uint64) bench.Run {
	run := bench.Run{Workload: "test", Iterations: len(values), Headless: true, Comparable: true}
	for _, v := range values {
		run.Samples = append(run.Samples, bench.Sample{
			FrameTime:    time.Duration(v) * time.Nanosecond,
			Cycles:       v,
			Instructions: 2 * v,
		})
	}
	return run
}

func TestComputeMeanMatchesArithmeticMean(t *testing.T) {
	run := runWithCycles(100, 200, 300, 400)

	dist := Compute(run, MetricCycles)

	assert.InDelta(t, 250.0, dist.Mean, 1e-9)
	assert.Equal(t, 4, dist.N)
}

func TestComputeSingleSampleDegenerates(t *testing.T) {
	run := runWithCycles(1000)

	dist := Compute(run, MetricCycles)

	assert.Equal(t, 0.0, dist.StdDev)
	assert.InDelta(t, 1000.0, dist.Mean, 1e-9)
	require.Len(t, dist.Curve, 3, "degenerate spike, not a KDE grid")
	assert.InDelta(t, 1.0, dist.Integral(), 1e-6)
}

func TestComputeZeroVarianceDegenerates(t *testing.T) {
	run := runWithCycles(500, 500, 500, 500)

	dist := Compute(run, MetricCycles)

	assert.Equal(t, 0.0, dist.StdDev)
	assert.InDelta(t, 1.0, dist.Integral(), 1e-6)
}

func TestComputeEmptyRun(t *testing.T) {
	dist := Compute(bench.Run{Workload: "empty"}, MetricCycles)

	assert.Equal(t, 0, dist.N)
	assert.Empty(t, dist.Curve)
}

func TestComputeDensityIntegratesToOne(t *testing.T) {
	run := runWithCycles(90, 95, 100, 100, 102, 105, 110, 111, 120, 130)

	dist := Compute(run, MetricCycles)

	require.Len(t, dist.Curve, 256)
	assert.InDelta(t, 1.0, dist.Integral(), 0.02)
}

func TestComputeDomainCoversMeanPlusMinusFourSigma(t *testing.T) {
	run := runWithCycles(90, 95, 100, 105, 110, 120, 150, 200)

	dist := Compute(run, MetricCycles)

	lo, hi := dist.Domain()
	assert.LessOrEqual(t, lo, dist.Mean-4*dist.StdDev)
	assert.GreaterOrEqual(t, hi, dist.Mean+4*dist.StdDev)
}

func TestComputeDensityNonNegative(t *testing.T) {
	run := runWithCycles(1, 2, 3, 100, 200, 1000)

	dist := Compute(run, MetricCycles)

	for _, p := range dist.Curve {
		assert.GreaterOrEqual(t, p.Y, 0.0)
	}
}

func TestMetricExtract(t *testing.T) {
	s := bench.Sample{
		FrameTime:    1500 * time.Microsecond,
		Cycles:       42,
		Instructions: 99,
	}

	assert.InDelta(t, 1500.0, MetricFrameTime.Extract(s), 1e-9, "frame time extracts as microseconds")
	assert.Equal(t, 42.0, MetricCycles.Extract(s))
	assert.Equal(t, 99.0, MetricInstructions.Extract(s))
}

func TestMetricNames(t *testing.T) {
	assert.Len(t, Metrics(), 3)
	for _, m := range Metrics() {
		assert.NotEqual(t, "unknown", m.String())
		assert.NotEqual(t, "unknown", m.Label())
	}
}
