// Package report renders the comparison report as an SVG artifact: one panel
// per metric per workload, overlaying the previous and current probability
// density curves with mean markers. SVG keeps the comparison legible at any
// zoom, and successive runs overwrite the same file.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/katharostech/benchmark-games/internal/stats"
)

const (
	panelWidth   = 680
	panelHeight  = 190
	marginLeft   = 70
	marginRight  = 25
	marginTop    = 34
	marginBottom = 30
	headerHeight = 40
)

const (
	previousFill = "fill:steelblue;fill-opacity:0.45;stroke:steelblue;stroke-width:1"
	currentFill  = "fill:darkorange;fill-opacity:0.45;stroke:darkorange;stroke-width:1"
	previousMean = "stroke:steelblue;stroke-width:1.5;stroke-dasharray:5,3"
	currentMean  = "stroke:darkorange;stroke-width:1.5;stroke-dasharray:5,3"
	axisStyle    = "stroke:#444;stroke-width:1"
	titleStyle   = "font-family:sans-serif;font-size:13px;fill:#222"
	headerStyle  = "font-family:sans-serif;font-size:16px;font-weight:bold;fill:#222"
	labelStyle   = "font-family:sans-serif;font-size:11px;fill:#555"
	alertStyle   = "font-family:sans-serif;font-size:12px;font-weight:bold;fill:#c0392b"
	okStyle      = "font-family:sans-serif;font-size:12px;fill:#2e7d32"
)

// Renderer draws comparison reports into a single SVG document.
type Renderer struct{}

// Render writes the artifact for every workload's report. The previous curve
// is omitted from a panel when no baseline was available; the current curve
// always renders.
func (Renderer) Render(reports []stats.ComparisonReport, w io.Writer) error {
	if len(reports) == 0 {
		return fmt.Errorf("no reports to render")
	}

	panels := 0
	for _, rep := range reports {
		panels += len(rep.Metrics)
	}

	height := len(reports)*headerHeight + panels*panelHeight
	canvas := svg.New(w)
	canvas.Start(panelWidth, height)
	canvas.Rect(0, 0, panelWidth, height, "fill:white")

	y := 0
	for _, rep := range reports {
		canvas.Text(marginLeft, y+headerHeight-14, rep.Workload, headerStyle)
		y += headerHeight
		for _, mc := range rep.Metrics {
			drawPanel(canvas, mc, y)
			y += panelHeight
		}
	}

	canvas.End()
	return nil
}

// WriteFile renders to the fixed artifact path, overwriting any previous one.
func (r Renderer) WriteFile(reports []stats.ComparisonReport, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report artifact: %w", err)
	}
	if err := r.Render(reports, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func drawPanel(canvas *svg.SVG, mc stats.MetricComparison, top int) {
	plotLeft := marginLeft
	plotRight := panelWidth - marginRight
	plotTop := top + marginTop
	plotBottom := top + panelHeight - marginBottom

	lo, hi, yMax := panelBounds(mc)
	if hi <= lo {
		hi = lo + 1
	}
	if yMax <= 0 {
		yMax = 1
	}

	xPix := func(x float64) int {
		return plotLeft + int(math.Round((x-lo)/(hi-lo)*float64(plotRight-plotLeft)))
	}
	yPix := func(y float64) int {
		return plotBottom - int(math.Round(y/yMax*float64(plotBottom-plotTop)))
	}

	canvas.Text(plotLeft, top+20, mc.Metric.Label(), titleStyle)
	drawDelta(canvas, mc, plotRight, top+20)

	if mc.Previous != nil {
		drawCurve(canvas, mc.Previous.Curve, xPix, yPix, plotBottom, previousFill)
	}
	drawCurve(canvas, mc.Current.Curve, xPix, yPix, plotBottom, currentFill)

	if mc.Previous != nil {
		x := xPix(mc.Previous.Mean)
		canvas.Line(x, plotTop, x, plotBottom, previousMean)
	}
	x := xPix(mc.Current.Mean)
	canvas.Line(x, plotTop, x, plotBottom, currentMean)

	// x axis with end labels
	canvas.Line(plotLeft, plotBottom, plotRight, plotBottom, axisStyle)
	canvas.Text(plotLeft, plotBottom+14, formatValue(lo), labelStyle)
	canvas.Text(plotRight-50, plotBottom+14, formatValue(hi), labelStyle)

	// legend
	legendX := plotRight - 150
	if mc.Previous != nil {
		canvas.Rect(legendX, plotTop, 10, 10, previousFill)
		canvas.Text(legendX+14, plotTop+9, "previous", labelStyle)
	}
	canvas.Rect(legendX+75, plotTop, 10, 10, currentFill)
	canvas.Text(legendX+89, plotTop+9, "current", labelStyle)
}

// drawCurve fills the area under a density curve down to the axis.
func drawCurve(canvas *svg.SVG, curve []stats.Point, xPix func(float64) int, yPix func(float64) int, plotBottom int, style string) {
	if len(curve) == 0 {
		return
	}

	xs := make([]int, 0, len(curve)+2)
	ys := make([]int, 0, len(curve)+2)

	xs = append(xs, xPix(curve[0].X))
	ys = append(ys, plotBottom)
	for _, p := range curve {
		xs = append(xs, xPix(p.X))
		ys = append(ys, yPix(p.Y))
	}
	xs = append(xs, xPix(curve[len(curve)-1].X))
	ys = append(ys, plotBottom)

	canvas.Polygon(xs, ys, style)
}

func drawDelta(canvas *svg.SVG, mc stats.MetricComparison, right, y int) {
	if mc.Previous == nil {
		canvas.Text(right-100, y, "no baseline", labelStyle)
		return
	}
	style := okStyle
	if mc.Regressed {
		style = alertStyle
	}
	canvas.Text(right-100, y, fmt.Sprintf("Δ mean %+.2f%%", mc.DeltaPct), style)
}

// panelBounds finds the shared x domain and y peak across both curves so the
// two fills are directly comparable.
func panelBounds(mc stats.MetricComparison) (lo, hi, yMax float64) {
	lo, hi = mc.Current.Domain()
	for _, p := range mc.Current.Curve {
		yMax = math.Max(yMax, p.Y)
	}
	if mc.Previous != nil {
		plo, phi := mc.Previous.Domain()
		lo = math.Min(lo, plo)
		hi = math.Max(hi, phi)
		for _, p := range mc.Previous.Curve {
			yMax = math.Max(yMax, p.Y)
		}
	}
	return lo, hi, yMax
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
