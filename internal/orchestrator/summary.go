package orchestrator

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/katharostech/benchmark-games/internal/stats"
)

var (
	summaryTitle  = lipgloss.NewStyle().Bold(true)
	improvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	regressStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// printSummary writes the per-metric comparison table to the terminal,
// mirroring what the SVG artifact shows.
func printSummary(out io.Writer, reports []stats.ComparisonReport, artifactPath string) {
	fmt.Fprintln(out, summaryTitle.Render("Benchmark summary"))

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "WORKLOAD\tMETRIC\tMEAN\tSTDDEV\tΔ MEAN\tSTATUS")

	for _, rep := range reports {
		for _, mc := range rep.Metrics {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\t%s\n",
				rep.Workload, mc.Metric, mc.Current.Mean, mc.Current.StdDev,
				deltaCell(mc), statusCell(mc))
		}
	}
	w.Flush()

	fmt.Fprintln(out, mutedStyle.Render("report: "+artifactPath))
}

func deltaCell(mc stats.MetricComparison) string {
	if mc.Previous == nil {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", mc.DeltaPct)
}

func statusCell(mc stats.MetricComparison) string {
	switch {
	case mc.Previous == nil:
		return mutedStyle.Render("NEW")
	case mc.Regressed:
		return regressStyle.Render("REGRESSED")
	case mc.DeltaPct < 0:
		return improvedStyle.Render("IMPROVED")
	default:
		return "OK"
	}
}
