// Package charts renders the dashboard charts as PNG images.
package charts

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/justsurfingit/jadarat-dashboard/internal/dtos"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type Kind string

const (
	KindRegions    Kind = "regions"
	KindExperience Kind = "experience"
	KindGender     Kind = "gender"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindRegions, KindExperience, KindGender:
		return Kind(s), true
	}
	return "", false
}

const (
	RegionTitle     = "Jobs by region"
	ExperienceTitle = "Required experience"
	GenderTitle     = "Is there a gender preference?"
)

var (
	barColor     = drawing.ColorFromHex("3182bd")
	pieColors    = []drawing.Color{chart.ColorBlue, drawing.ColorFromHex("ffc0cb"), drawing.ColorFromHex("808080")}
	histFill     = color.RGBA{R: 0, G: 128, B: 0, A: 150}
	densityColor = color.RGBA{R: 0, G: 100, B: 0, A: 255}
)

type Renderer struct {
	Width  int
	Height int
}

func NewRenderer() *Renderer {
	return &Renderer{Width: 800, Height: 450}
}

// Render draws the chart of the given kind from a computed dashboard.
func (r *Renderer) Render(kind Kind, d *dtos.DashboardResponse) ([]byte, error) {
	switch kind {
	case KindRegions:
		return r.RegionBar(d.RegionCounts)
	case KindExperience:
		return r.ExperienceHistogram(d.Experience)
	case KindGender:
		return r.GenderPie(d.GenderShares)
	}
	return nil, fmt.Errorf("unknown chart kind %q", kind)
}

// RegionBar draws one bar per region in the given order.
func (r *Renderer) RegionBar(counts []dtos.RegionCount) ([]byte, error) {
	if len(counts) == 0 {
		return r.empty(RegionTitle, "Region", "Number of jobs")
	}

	maxCount := 0
	bars := make([]chart.Value, 0, len(counts))
	for _, rc := range counts {
		if rc.Count > maxCount {
			maxCount = rc.Count
		}
		bars = append(bars, chart.Value{
			Label: rc.Region,
			Value: float64(rc.Count),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}

	width := r.Width
	if w := 70 * len(bars); w > width {
		width = w
	}
	bc := chart.BarChart{
		Title:      RegionTitle,
		Width:      width,
		Height:     r.Height,
		BarWidth:   40,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  "Number of jobs",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) * 1.1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render region chart: %w", err)
	}
	return buf.Bytes(), nil
}

// ExperienceHistogram draws the bins and, when present, the density curve.
func (r *Renderer) ExperienceHistogram(h dtos.Histogram) ([]byte, error) {
	if len(h.Bins) == 0 {
		return r.empty(ExperienceTitle, "Years of experience", "Number of jobs")
	}

	p := plot.New()
	p.Title.Text = ExperienceTitle
	p.X.Label.Text = "Years of experience"
	p.Y.Label.Text = "Number of jobs"

	bins := make([]plotter.HistogramBin, len(h.Bins))
	for i, b := range h.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
	}
	hist := &plotter.Histogram{
		Bins:      bins,
		Width:     h.Bins[0].Max - h.Bins[0].Min,
		FillColor: histFill,
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(hist)

	if len(h.Density) > 0 {
		pts := make(plotter.XYs, len(h.Density))
		for i, dp := range h.Density {
			pts[i].X = dp.X
			pts[i].Y = dp.Y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("density line: %w", err)
		}
		line.LineStyle.Color = densityColor
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("density", line)
		p.Legend.Top = true
	}
	p.Y.Min = 0

	return r.savePlot(p)
}

// GenderPie draws one slice per gender labelled with its share.
func (r *Renderer) GenderPie(shares []dtos.GenderShare) ([]byte, error) {
	if len(shares) == 0 {
		return r.empty(GenderTitle, "", "")
	}

	values := make([]chart.Value, 0, len(shares))
	for i, gs := range shares {
		c := pieColors[i%len(pieColors)]
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", gs.Label, gs.Percent),
			Value: float64(gs.Count),
			Style: chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite},
		})
	}

	size := r.Height
	pc := chart.PieChart{
		Title:  GenderTitle,
		Width:  size,
		Height: size,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render gender chart: %w", err)
	}
	return buf.Bytes(), nil
}

// empty draws a titled, data-free plot so the page keeps its layout when no
// postings match.
func (r *Renderer) empty(title, xLabel, yLabel string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title + " (no matching postings)"
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return r.savePlot(p)
}

func (r *Renderer) savePlot(p *plot.Plot) ([]byte, error) {
	// go-chart sizes are pixels at 96 DPI; vg works in points.
	w := vg.Length(r.Width) * vg.Inch / 96
	h := vg.Length(r.Height) * vg.Inch / 96

	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("encode plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write plot: %w", err)
	}
	return buf.Bytes(), nil
}
