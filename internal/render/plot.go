package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func writePlot(p *plot.Plot, opt Options) ([]byte, error) {
	wt, err := p.WriterTo(vg.Length(opt.Width), vg.Length(opt.Height), "svg")
	if err != nil {
		return nil, fmt.Errorf("svg writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write svg: %w", err)
	}
	return buf.Bytes(), nil
}

func checkSeries(spec *analysis.ChartSpec) error {
	if len(spec.Series) == 0 || len(spec.Categories) == 0 {
		return ErrEmptyChart
	}
	for _, s := range spec.Series {
		if len(s.Values) != len(spec.Categories) {
			return fmt.Errorf("series %q has %d values for %d categories", s.Name, len(s.Values), len(spec.Categories))
		}
	}
	return nil
}

// barWidth splits the plotting width between categories and series.
func barWidth(opt Options, categories, series int) vg.Length {
	group := opt.Width * 0.65 / float64(categories)
	return vg.Points(group / float64(series))
}

func barSVG(spec *analysis.ChartSpec, opt Options) ([]byte, error) {
	if err := checkSeries(spec); err != nil {
		return nil, err
	}
	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)
	n := len(spec.Series)
	w := barWidth(opt, len(spec.Categories), n)
	top := 0.0
	for i, s := range spec.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), w)
		if err != nil {
			return nil, fmt.Errorf("bars %q: %w", s.Name, err)
		}
		bars.Color = parseColor(seriesColor(s, i), 1)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * w
		p.Add(bars)
		if n > 1 {
			p.Legend.Add(s.Name, bars)
		}
		for _, v := range s.Values {
			top = math.Max(top, v)
		}
	}
	if n == 1 && spec.ValueFormat != "" {
		xys := make([]plotter.XY, len(spec.Categories))
		labels := make([]string, len(spec.Categories))
		for k, v := range spec.Series[0].Values {
			xys[k] = plotter.XY{X: float64(k), Y: v + top*0.02}
			labels[k] = fmt.Sprintf(spec.ValueFormat, v)
		}
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, err
		}
		for i := range l.TextStyle {
			l.TextStyle[i].XAlign = draw.XCenter
		}
		p.Add(l)
	}
	p.Y.Min = 0
	p.Y.Max = top * 1.1
	p.NominalX(spec.Categories...)
	return writePlot(p, opt)
}

func stackedSVG(spec *analysis.ChartSpec, opt Options) ([]byte, error) {
	if err := checkSeries(spec); err != nil {
		return nil, err
	}
	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)
	w := vg.Points(opt.Height * 0.55 / float64(len(spec.Categories)))
	var prev *plotter.BarChart
	for i, s := range spec.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), w)
		if err != nil {
			return nil, fmt.Errorf("bars %q: %w", s.Name, err)
		}
		bars.Horizontal = true
		bars.Color = parseColor(seriesColor(s, i), 1)
		bars.LineStyle.Width = 0
		if prev != nil {
			bars.StackOn(prev)
		}
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
		prev = bars
	}
	p.X.Min = 0
	p.NominalY(spec.Categories...)
	return writePlot(p, opt)
}

func lineSVG(spec *analysis.ChartSpec, opt Options) ([]byte, error) {
	if err := checkSeries(spec); err != nil {
		return nil, err
	}
	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)
	for i, s := range spec.Series {
		xys := make(plotter.XYs, len(s.Values))
		for k, v := range s.Values {
			xys[k] = plotter.XY{X: float64(k), Y: v}
		}
		c := parseColor(seriesColor(s, i), 1)
		if !spec.Markers {
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("line %q: %w", s.Name, err)
			}
			line.Color = c
			line.Width = vg.Points(2)
			p.Add(line)
			p.Legend.Add(s.Name, line)
			continue
		}
		line, pts, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", s.Name, err)
		}
		line.Color = c
		line.Width = vg.Points(2)
		pts.GlyphStyle.Color = c
		pts.GlyphStyle.Shape = draw.CircleGlyph{}
		pts.GlyphStyle.Radius = vg.Points(3.5)
		p.Add(line, pts)
		p.Legend.Add(s.Name, line, pts)
	}
	p.NominalX(spec.Categories...)
	return writePlot(p, opt)
}

// facetSVG lays scatter panels out on a grid of at most FacetWrap columns,
// sharing axis ranges across panels.
func facetSVG(spec *analysis.ChartSpec, opt Options) ([]byte, error) {
	if len(spec.Panels) == 0 {
		return nil, ErrEmptyChart
	}
	cols := spec.FacetWrap
	if cols <= 0 || cols > len(spec.Panels) {
		cols = len(spec.Panels)
	}
	rows := (len(spec.Panels) + cols - 1) / cols

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, panel := range spec.Panels {
		for _, s := range panel.Series {
			for _, pt := range s.Points {
				xmin, xmax = math.Min(xmin, pt.X), math.Max(xmax, pt.X)
				ymin, ymax = math.Min(ymin, pt.Y), math.Max(ymax, pt.Y)
			}
		}
	}
	if math.IsInf(xmin, 1) {
		return nil, ErrEmptyChart
	}

	w, h := vg.Length(opt.Width), vg.Length(opt.Height)*vg.Length(rows)
	canvas := vgsvg.New(w, h)
	dc := draw.New(canvas)

	header := plot.New()
	sty := header.Title.TextStyle
	sty.Font.Size = vg.Points(13)
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	titleH := vg.Points(26)
	dc.FillText(sty, vg.Point{X: w / 2, Y: h - vg.Points(6)}, spec.Title)

	body := draw.Crop(dc, 0, 0, 0, -titleH)
	tiles := draw.Tiles{Rows: rows, Cols: cols, PadX: vg.Millimeter * 3, PadY: vg.Millimeter * 3}
	for i, panel := range spec.Panels {
		p := newPlot(panel.Title, spec.XLabel, spec.YLabel)
		p.X.Min, p.X.Max = xmin, xmax
		p.Y.Min, p.Y.Max = ymin, ymax
		for k, s := range panel.Series {
			xys := make(plotter.XYs, len(s.Points))
			for j, pt := range s.Points {
				xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
			}
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("scatter %q: %w", panel.Title, err)
			}
			sc.GlyphStyle.Color = parseColor(seriesColor(s, k), spec.Opacity)
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			sc.GlyphStyle.Radius = vg.Points(2.5)
			p.Add(sc)
		}
		p.Draw(tiles.At(body, i%cols, i/cols))
	}

	var buf bytes.Buffer
	if _, err := canvas.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write svg: %w", err)
	}
	return buf.Bytes(), nil
}
