package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/KaramelBytes/edareport/internal/analysis"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const donutTitleHeight = 28

// donutSVG renders each panel as a donut and places them side by side
// under the chart title.
func donutSVG(spec *analysis.ChartSpec, opt Options) ([]byte, error) {
	if len(spec.Panels) == 0 {
		return nil, ErrEmptyChart
	}
	width, height := int(opt.Width), int(opt.Height)
	pw := width / len(spec.Panels)
	ph := height - donutTitleHeight

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	fmt.Fprintf(&b, `<text x="%d" y="18" text-anchor="middle" font-family="sans-serif" font-size="14">%s</text>`, width/2, escapeXML(spec.Title))
	for i, panel := range spec.Panels {
		fmt.Fprintf(&b, `<g transform="translate(%d,%d)">`, i*pw, donutTitleHeight)
		inner, err := donutPanel(panel, pw, ph)
		if err != nil {
			return nil, fmt.Errorf("donut %q: %w", panel.Title, err)
		}
		b.Write(inner)
		b.WriteString(`</g>`)
	}
	b.WriteString(`</svg>`)
	return b.Bytes(), nil
}

func donutPanel(p analysis.Panel, w, h int) ([]byte, error) {
	var total float64
	for _, v := range p.Values {
		total += v
	}
	if total == 0 {
		return []byte(fmt.Sprintf(`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="12">%s: sin datos</text>`,
			w/2, h/2, escapeXML(p.Title))), nil
	}
	values := make([]chart.Value, 0, len(p.Values))
	for i, v := range p.Values {
		label := ""
		if i < len(p.Labels) {
			label = p.Labels[i]
		}
		col := analysis.PaletteColor(i)
		if i < len(p.Colors) {
			col = p.Colors[i]
		}
		values = append(values, chart.Value{
			Value: v,
			Label: fmt.Sprintf("%s: %.1f%%", label, 100*v/total),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(strings.TrimPrefix(col, "#")),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}
	d := chart.DonutChart{
		Title:  p.Title,
		Width:  w,
		Height: h,
		Values: values,
	}
	var buf bytes.Buffer
	if err := d.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}
	return stripProlog(buf.Bytes()), nil
}

// stripProlog drops an XML declaration so the document can be nested.
func stripProlog(svg []byte) []byte {
	s := bytes.TrimSpace(svg)
	if bytes.HasPrefix(s, []byte("<?xml")) {
		if i := bytes.Index(s, []byte("?>")); i >= 0 {
			s = bytes.TrimSpace(s[i+2:])
		}
	}
	return s
}
