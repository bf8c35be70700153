// Package render draws declarative chart specs as SVG.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/KaramelBytes/edareport/internal/analysis"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrUnsupportedKind is returned for chart kinds with no renderer.
	ErrUnsupportedKind = errors.New("unsupported chart kind")
	// ErrEmptyChart is returned when a spec carries nothing to draw.
	ErrEmptyChart = errors.New("chart has no data")
)

// Options sets the output size in points.
type Options struct {
	Width  float64
	Height float64
}

// DefaultOptions returns a 720x432pt canvas.
func DefaultOptions() Options { return Options{Width: 720, Height: 432} }

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// SVG renders spec and returns the SVG document.
func SVG(spec *analysis.ChartSpec, opt Options) ([]byte, error) {
	if spec == nil {
		return nil, ErrEmptyChart
	}
	opt = opt.normalized()
	var (
		out []byte
		err error
	)
	switch spec.Kind {
	case analysis.KindBar, analysis.KindGroupedBar:
		out, err = barSVG(spec, opt)
	case analysis.KindStackedBarH:
		out, err = stackedSVG(spec, opt)
	case analysis.KindLine:
		out, err = lineSVG(spec, opt)
	case analysis.KindScatter:
		out, err = facetSVG(spec, opt)
	case analysis.KindDonut:
		out, err = donutSVG(spec, opt)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, spec.Kind)
	}
	if err != nil {
		return nil, err
	}
	// inline documents must not carry an XML declaration
	return stripProlog(out), nil
}

// parseColor reads a #rrggbb colour, falling back to black.
func parseColor(hex string, alpha float64) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Black
	}
	r, g, b := c.RGB255()
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

func seriesColor(s analysis.Series, i int) string {
	if s.Color != "" {
		return s.Color
	}
	return analysis.PaletteColor(i)
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
