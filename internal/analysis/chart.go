package analysis

// ChartKind names a chart layout understood by the renderers.
type ChartKind string

const (
	KindBar         ChartKind = "bar"
	KindGroupedBar  ChartKind = "grouped_bar"
	KindLine        ChartKind = "line"
	KindScatter     ChartKind = "scatter"
	KindDonut       ChartKind = "donut"
	KindStackedBarH ChartKind = "stacked_barh"
)

// Palette is the categorical colour sequence used when a series does not
// pin its own colour.
var Palette = []string{
	"#3366CC", "#DC3912", "#FF9900", "#109618", "#990099",
	"#0099C6", "#DD4477", "#66AA00", "#B82E2E", "#316395",
}

// PaletteColor returns the i-th palette colour, cycling.
func PaletteColor(i int) string { return Palette[i%len(Palette)] }

// Point is one scatter observation.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Series is one trace. Values align with ChartSpec.Categories; Points are
// used by scatter charts only.
type Series struct {
	Name   string    `json:"name" yaml:"name"`
	Color  string    `json:"color,omitempty" yaml:"color,omitempty"`
	Values []float64 `json:"values,omitempty" yaml:"values,omitempty"`
	Points []Point   `json:"points,omitempty" yaml:"points,omitempty"`
}

// Panel is one facet (scatter) or one pie (donut) of a multi-panel chart.
type Panel struct {
	Title string `json:"title" yaml:"title"`
	// Labels name donut slices; Colors pin them in the same order.
	Labels []string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Colors []string  `json:"colors,omitempty" yaml:"colors,omitempty"`
	Values []float64 `json:"values,omitempty" yaml:"values,omitempty"`
	Series []Series  `json:"series,omitempty" yaml:"series,omitempty"`
}

// ChartSpec is a declarative chart: what to draw, not how.
type ChartSpec struct {
	Kind       ChartKind `json:"kind" yaml:"kind"`
	Title      string    `json:"title" yaml:"title"`
	XLabel     string    `json:"x_label,omitempty" yaml:"x_label,omitempty"`
	YLabel     string    `json:"y_label,omitempty" yaml:"y_label,omitempty"`
	Legend     string    `json:"legend,omitempty" yaml:"legend,omitempty"`
	Categories []string  `json:"categories,omitempty" yaml:"categories,omitempty"`
	Series     []Series  `json:"series,omitempty" yaml:"series,omitempty"`
	Panels     []Panel   `json:"panels,omitempty" yaml:"panels,omitempty"`
	// Hole is the inner radius of donut panels as a fraction of the outer.
	Hole    float64 `json:"hole,omitempty" yaml:"hole,omitempty"`
	Markers bool    `json:"markers,omitempty" yaml:"markers,omitempty"`
	Opacity float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	// FacetWrap caps facet panels per row.
	FacetWrap int `json:"facet_wrap,omitempty" yaml:"facet_wrap,omitempty"`
	// ValueFormat is a printf verb used for value labels and hover text.
	ValueFormat string `json:"value_format,omitempty" yaml:"value_format,omitempty"`
}

// seriesFromColumns turns each column of f into a series over f.Index.
// colors pins colours by column name; other columns take palette colours.
func seriesFromColumns(f *Frame, colors map[string]string) []Series {
	out := make([]Series, len(f.Columns))
	for j, c := range f.Columns {
		vals, _ := f.Column(c)
		col := colors[c]
		if col == "" {
			col = PaletteColor(j)
		}
		out[j] = Series{Name: c, Color: col, Values: vals}
	}
	return out
}
