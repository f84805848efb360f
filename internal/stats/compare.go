package stats

import (
	"github.com/katharostech/benchmark-games/internal/bench"
)

// MetricComparison pairs the current and previous distributions of one
// metric. Previous is nil when no baseline was available.
type MetricComparison struct {
	Metric   Metric
	Current  Distribution
	Previous *Distribution
	// DeltaPct is the current mean's change versus the previous mean, in
	// percent. Zero when there is no baseline to compare against.
	DeltaPct float64
	// Regressed flags a probable regression: the mean moved up by more
	// than the configured threshold. Descriptive, not a hypothesis test.
	Regressed bool
}

// ComparisonReport is the per-workload pairing of current and previous
// distributions for every metric. Purely derived; regenerated each run.
type ComparisonReport struct {
	Workload string
	Metrics  []MetricComparison
}

// Compare computes distributions for every metric of the current run and,
// when a previous run exists, of the baseline, flagging mean regressions
// beyond thresholdPct.
func Compare(workload string, current bench.Run, previous *bench.Run, thresholdPct float64) ComparisonReport {
	report := ComparisonReport{Workload: workload}

	for _, m := range Metrics() {
		mc := MetricComparison{
			Metric:  m,
			Current: Compute(current, m),
		}
		if previous != nil {
			prev := Compute(*previous, m)
			mc.Previous = &prev
			if prev.Mean != 0 {
				mc.DeltaPct = (mc.Current.Mean - prev.Mean) / prev.Mean * 100
				mc.Regressed = mc.DeltaPct > thresholdPct
			}
		}
		report.Metrics = append(report.Metrics, mc)
	}
	return report
}
