// Package stats turns a run's raw samples into per-metric distributions and
// pairs current against previous distributions for regression detection.
package stats

import (
	"math"

	moremath "github.com/aclements/go-moremath/stats"

	"github.com/katharostech/benchmark-games/internal/bench"
)

// Metric identifies one of the measured quantities. All metrics are computed
// identically over a numeric extractor; only units differ.
type Metric int

const (
	MetricFrameTime Metric = iota
	MetricCycles
	MetricInstructions
)

// Metrics lists every metric in report order.
func Metrics() []Metric {
	return []Metric{MetricFrameTime, MetricCycles, MetricInstructions}
}

func (m Metric) String() string {
	switch m {
	case MetricFrameTime:
		return "frame_time"
	case MetricCycles:
		return "cpu_cycles"
	case MetricInstructions:
		return "cpu_instructions"
	}
	return "unknown"
}

// Label is the human-readable axis title, including the unit.
func (m Metric) Label() string {
	switch m {
	case MetricFrameTime:
		return "frame time (µs)"
	case MetricCycles:
		return "CPU cycles / frame"
	case MetricInstructions:
		return "instructions / frame"
	}
	return "unknown"
}

// Extract pulls the metric's value out of a sample. Frame time is reported in
// microseconds, matching the scale frame budgets are discussed in.
func (m Metric) Extract(s bench.Sample) float64 {
	switch m {
	case MetricFrameTime:
		return float64(s.FrameTime.Nanoseconds()) / 1e3
	case MetricCycles:
		return float64(s.Cycles)
	case MetricInstructions:
		return float64(s.Instructions)
	}
	return 0
}

// Point is one evaluation of the density curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distribution describes one metric of one run: sample mean, sample standard
// deviation, and a smoothed probability density curve whose trapezoid
// integral is ~1 over its domain.
type Distribution struct {
	Metric Metric
	N      int
	Mean   float64
	StdDev float64
	Curve  []Point
}

// curvePoints is the fixed density evaluation grid size.
const curvePoints = 256

// Compute derives the metric's distribution from a run's raw samples.
// A run with fewer than two samples (or zero spread) yields a degenerate
// unit-area spike rather than a division by zero.
func Compute(run bench.Run, m Metric) Distribution {
	xs := make([]float64, len(run.Samples))
	for i, s := range run.Samples {
		xs[i] = m.Extract(s)
	}

	dist := Distribution{Metric: m, N: len(xs)}
	if len(xs) == 0 {
		return dist
	}

	samp := moremath.Sample{Xs: xs}
	dist.Mean = samp.Mean()
	if len(xs) >= 2 {
		dist.StdDev = samp.StdDev()
	}

	if dist.StdDev == 0 {
		dist.Curve = spikeCurve(dist.Mean)
		return dist
	}

	// Gaussian kernel density with Scott's-rule bandwidth. go-moremath's
	// Sample supplies the moments and bounds; the kernel sum is evaluated
	// directly because the curve needs a fixed grid over a domain of at
	// least mean±4σ, widened to the observed range plus kernel margin.
	h := dist.StdDev * math.Pow(float64(len(xs)), -0.2)
	min, max := samp.Bounds()
	lo := math.Min(dist.Mean-4*dist.StdDev, min-3*h)
	hi := math.Max(dist.Mean+4*dist.StdDev, max+3*h)

	norm := 1 / (float64(len(xs)) * h * math.Sqrt(2*math.Pi))
	dist.Curve = make([]Point, curvePoints)
	for i := range dist.Curve {
		x := lo + (hi-lo)*float64(i)/float64(curvePoints-1)
		y := 0.0
		for _, xi := range xs {
			z := (x - xi) / h
			y += math.Exp(-0.5 * z * z)
		}
		dist.Curve[i] = Point{X: x, Y: y * norm}
	}
	return dist
}

// spikeCurve is the degenerate density for zero-variance data: a narrow
// triangle of area one centered on the mean.
func spikeCurve(mean float64) []Point {
	halfWidth := math.Max(math.Abs(mean)*1e-6, 1e-9)
	return []Point{
		{X: mean - halfWidth, Y: 0},
		{X: mean, Y: 1 / halfWidth},
		{X: mean + halfWidth, Y: 0},
	}
}

// Integral numerically integrates the density curve by the trapezoid rule.
// Useful as a sanity check; a well-formed curve integrates to ~1.
func (d Distribution) Integral() float64 {
	total := 0.0
	for i := 1; i < len(d.Curve); i++ {
		dx := d.Curve[i].X - d.Curve[i-1].X
		total += dx * (d.Curve[i].Y + d.Curve[i-1].Y) / 2
	}
	return total
}

// Domain reports the curve's x extent.
func (d Distribution) Domain() (lo, hi float64) {
	if len(d.Curve) == 0 {
		return 0, 0
	}
	return d.Curve[0].X, d.Curve[len(d.Curve)-1].X
}
