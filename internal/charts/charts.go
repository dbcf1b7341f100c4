// Package charts renders the analysis results as PNG images: a four-panel
// Jobs-to-be-Done dashboard and a customer journey satisfaction line chart.
package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"saltlens/internal/analysis"
	"saltlens/internal/interview"
	"saltlens/internal/utils"
)

// Options control the raster size. Zero fields fall back to the defaults.
type Options struct {
	WidthPx  int
	HeightPx int
	DPI      int
}

const (
	defaultWidthPx  = 1600
	defaultHeightPx = 1200
	defaultDPI      = 100
)

func (o Options) withDefaults() Options {
	if o.WidthPx <= 0 {
		o.WidthPx = defaultWidthPx
	}
	if o.HeightPx <= 0 {
		o.HeightPx = defaultHeightPx
	}
	if o.DPI <= 0 {
		o.DPI = defaultDPI
	}
	return o
}

var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
}

// RenderDashboard writes the four-panel dashboard PNG: job distribution,
// pain points, income by usage, and jobs by income bracket.
func RenderDashboard(rep *analysis.Report, path string, opts Options) error {
	jtbd, err := jtbdPanel(rep)
	if err != nil {
		return fmt.Errorf("jtbd panel: %w", err)
	}
	pains, err := painPanel(rep)
	if err != nil {
		return fmt.Errorf("pain panel: %w", err)
	}
	income, err := incomePanel(rep)
	if err != nil {
		return fmt.Errorf("income panel: %w", err)
	}
	brackets, err := bracketPanel(rep)
	if err != nil {
		return fmt.Errorf("bracket panel: %w", err)
	}
	grid := [][]*plot.Plot{
		{jtbd, pains},
		{income, brackets},
	}
	return writeTiled(grid, path, opts.withDefaults())
}

// RenderJourney writes the journey satisfaction line chart with the weakest
// stage called out.
func RenderJourney(rep *analysis.Report, path string, opts Options) error {
	p := plot.New()
	p.Title.Text = "Customer Journey Satisfaction"
	p.Y.Label.Text = "Average score (1-5)"
	p.Y.Min, p.Y.Max = 0, 5

	n := len(rep.Journey.Stages)
	pts := make(plotter.XYs, n)
	names := make([]string, n)
	marks := plotter.XYLabels{}
	lowIdx := 0
	for i, st := range rep.Journey.Stages {
		pts[i] = plotter.XY{X: float64(i), Y: st.Mean}
		names[i] = string(st.Stage)
		marks.XYs = append(marks.XYs, plotter.XY{X: float64(i), Y: st.Mean + 0.18})
		marks.Labels = append(marks.Labels, fmt.Sprintf("%.1f", st.Mean))
		if st.Stage == rep.Journey.Lowest {
			lowIdx = i
		}
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("journey line: %w", err)
	}
	line.Color = palette[0]
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(4)
	points.Color = palette[0]

	// Neutral reference at the scale midpoint.
	neutral, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 3}, {X: float64(n - 1), Y: 3}})
	if err != nil {
		return fmt.Errorf("neutral line: %w", err)
	}
	neutral.Color = color.RGBA{R: 153, G: 153, B: 153, A: 255}
	neutral.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	low := rep.Journey.Stages[lowIdx]
	marks.XYs = append(marks.XYs, plotter.XY{X: float64(lowIdx), Y: low.Mean - 0.45})
	marks.Labels = append(marks.Labels, fmt.Sprintf("Biggest drop-off (%.1f)", low.Mean))
	if low.Stage == interview.StageUsage {
		marks.XYs = append(marks.XYs, plotter.XY{X: float64(lowIdx), Y: low.Mean - 0.75})
		marks.Labels = append(marks.Labels, "Visual disappointment impacts usage")
	}

	labels, err := plotter.NewLabels(marks)
	if err != nil {
		return fmt.Errorf("journey labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
	}

	p.Add(plotter.NewGrid(), neutral, line, points, labels)
	p.NominalX(names...)

	return writeTiled([][]*plot.Plot{{p}}, path, opts.withDefaults())
}

func jtbdPanel(rep *analysis.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "What Jobs Does Blue Salt Do?"
	p.Y.Label.Text = "% of interviews"

	dist := rep.JTBD.Distribution
	names := make([]string, 0, len(dist))
	vals := make(plotter.Values, 0, len(dist))
	labels := plotter.XYLabels{}
	maxPct := 0.0
	for i, c := range dist {
		names = append(names, titleWords(c.Value))
		vals = append(vals, c.Percent)
		labels.XYs = append(labels.XYs, plotter.XY{X: float64(i), Y: c.Percent + 1.5})
		labels.Labels = append(labels.Labels, c.Label)
		if c.Percent > maxPct {
			maxPct = c.Percent
		}
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = palette[0]
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	if err := addLabels(p, labels); err != nil {
		return nil, err
	}
	p.Y.Max = maxPct * 1.2
	return p, nil
}

func painPanel(rep *analysis.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Top Pain Points"
	p.X.Label.Text = "% of interviews"

	// Bottom-up so the biggest bar lands on top.
	rows := []struct {
		name string
		rate analysis.Rate
	}{
		{"Taste uncertainty", rep.PainPoints.TasteUncertainty},
		{"Visual disappointment", rep.PainPoints.Visual},
		{"Price concern", rep.PainPoints.Price},
	}
	names := make([]string, 0, len(rows))
	vals := make(plotter.Values, 0, len(rows))
	labels := plotter.XYLabels{}
	maxPct := 0.0
	for i, r := range rows {
		names = append(names, r.name)
		vals = append(vals, r.rate.Percent)
		labels.XYs = append(labels.XYs, plotter.XY{X: r.rate.Percent + 1.5, Y: float64(i)})
		labels.Labels = append(labels.Labels, r.rate.Label)
		if r.rate.Percent > maxPct {
			maxPct = r.rate.Percent
		}
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(26))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = palette[3]
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(names...)
	lbl, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(lbl)
	p.X.Max = maxPct * 1.25
	return p, nil
}

func incomePanel(rep *analysis.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Average Income by Usage Frequency"
	p.Y.Label.Text = "Income ($)"

	groups := rep.Usage.AvgIncomeByUsage
	names := make([]string, 0, len(groups))
	vals := make(plotter.Values, 0, len(groups))
	labels := plotter.XYLabels{}
	maxVal := 0.0
	for _, g := range groups {
		if g.Mean > maxVal {
			maxVal = g.Mean
		}
	}
	for i, g := range groups {
		names = append(names, titleWords(g.Group))
		vals = append(vals, g.Mean)
		labels.XYs = append(labels.XYs, plotter.XY{X: float64(i), Y: g.Mean + maxVal*0.03})
		labels.Labels = append(labels.Labels, fmt.Sprintf("$%.0fK", g.Mean/1000))
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = palette[2]
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	if err := addLabels(p, labels); err != nil {
		return nil, err
	}
	p.Y.Max = maxVal * 1.2
	return p, nil
}

func bracketPanel(rep *analysis.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Jobs by Income Bracket"
	p.Y.Label.Text = "Interviews"

	ct := rep.JTBD.ByIncomeBracket
	width := vg.Points(16)
	maxCount := 0
	for j, job := range ct.Cols {
		vals := make(plotter.Values, len(ct.Rows))
		for i := range ct.Rows {
			vals[i] = float64(ct.Counts[i][j])
			if ct.Counts[i][j] > maxCount {
				maxCount = ct.Counts[i][j]
			}
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return nil, err
		}
		bars.Color = palette[j%len(palette)]
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(j-1) * width
		p.Add(bars)
		p.Legend.Add(titleWords(job), bars)
	}
	p.NominalX(ct.Rows...)
	p.Legend.Top = true
	p.Y.Max = float64(maxCount) + 1
	return p, nil
}

func addLabels(p *plot.Plot, xys plotter.XYLabels) error {
	lbl, err := plotter.NewLabels(xys)
	if err != nil {
		return err
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].XAlign = text.XCenter
	}
	p.Add(lbl)
	return nil
}

// writeTiled lays the plots out on one canvas and writes it as PNG.
func writeTiled(grid [][]*plot.Plot, path string, o Options) error {
	img := vgimg.NewWith(
		vgimg.UseWH(pixelLength(o.WidthPx, o.DPI), pixelLength(o.HeightPx, o.DPI)),
		vgimg.UseDPI(o.DPI),
	)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(grid), Cols: len(grid[0]),
		PadX: vg.Points(14), PadY: vg.Points(14),
		PadTop: vg.Points(10), PadBottom: vg.Points(10),
		PadLeft: vg.Points(10), PadRight: vg.Points(10),
	}
	canvases := plot.Align(grid, tiles, dc)
	for r := range grid {
		for c := range grid[r] {
			if grid[r][c] != nil {
				grid[r][c].Draw(canvases[r][c])
			}
		}
	}

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func pixelLength(px, dpi int) vg.Length {
	return vg.Inch * vg.Length(px) / vg.Length(dpi)
}

// titleWords turns a vocabulary value like "social_bonding" into a chart
// label like "Social Bonding".
func titleWords(v string) string {
	words := strings.Split(v, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
