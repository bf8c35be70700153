package analysis

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// pubu is the sequential purple-blue ramp, light to dark.
var pubu = []string{
	"#fff7fb", "#ece7f2", "#d0d1e6", "#a6bddb", "#74a9cf",
	"#3690c0", "#0570b0", "#045a8d", "#023858",
}

const (
	darkText  = "#f1f1f1"
	lightText = "#000000"
	// backgrounds with relative luminance below this get light text
	textLuminanceThreshold = 0.408
)

// StyledTable is a frame plus per-cell background and text colours.
type StyledTable struct {
	Caption    string     `json:"caption,omitempty" yaml:"caption,omitempty"`
	Frame      *Frame     `json:"frame" yaml:"frame"`
	Background [][]string `json:"background" yaml:"background"`
	Foreground [][]string `json:"foreground" yaml:"foreground"`
}

// Plain wraps f with no colouring.
func Plain(caption string, f *Frame) StyledTable {
	return StyledTable{Caption: caption, Frame: f}
}

// Gradient colours each cell by its position between its column's minimum
// and maximum on the PuBu ramp. A constant column maps to the lightest shade.
func Gradient(caption string, f *Frame) StyledTable {
	rows, cols := f.Shape()
	st := StyledTable{Caption: caption, Frame: f, Background: make([][]string, rows), Foreground: make([][]string, rows)}
	for i := range st.Background {
		st.Background[i] = make([]string, cols)
		st.Foreground[i] = make([]string, cols)
	}
	for j, name := range f.Columns {
		col, _ := f.Column(name)
		lo, hi := floats.Min(col), floats.Max(col)
		for i, v := range col {
			t := 0.0
			if hi > lo {
				t = (v - lo) / (hi - lo)
			}
			c := RampColor(t)
			st.Background[i][j] = c.Hex()
			st.Foreground[i][j] = TextColor(c)
		}
	}
	return st
}

// RampColor samples the PuBu ramp at t in [0, 1].
func RampColor(t float64) colorful.Color {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(pubu)-1)
	i := int(math.Floor(pos))
	if i >= len(pubu)-1 {
		return mustHex(pubu[len(pubu)-1])
	}
	return mustHex(pubu[i]).BlendRgb(mustHex(pubu[i+1]), pos-float64(i)).Clamped()
}

// TextColor picks a readable text colour for background c.
func TextColor(c colorful.Color) string {
	if relativeLuminance(c) < textLuminanceThreshold {
		return darkText
	}
	return lightText
}

func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
