package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
)

// Bins partitions a closed range into equal-width intervals.
// Interval 0 is [Edges[0], Edges[1]]; interval i>0 is (Edges[i], Edges[i+1]].
type Bins struct {
	Edges  []float64
	Labels []string
}

// maxLabelPrecision bounds the decimals tried when making labels unique.
const maxLabelPrecision = 15

// NewBins builds n equal-width bins spanning [lo, hi]. A zero-width range is
// widened by 0.1% on each side. Labels use the fewest decimals (at least two)
// that keep every edge distinct.
func NewBins(lo, hi float64, n int) Bins {
	if n <= 0 {
		n = 1
	}
	if lo == hi {
		pad := math.Abs(lo) * 0.001
		if pad == 0 {
			pad = 0.001
		}
		lo, hi = lo-pad, hi+pad
	}
	width := (hi - lo) / float64(n)
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	// pin the upper edge so rounding never leaves the maximum outside
	edges[n] = hi
	return Bins{Edges: edges, Labels: binLabels(edges)}
}

func binLabels(edges []float64) []string {
	text := formatEdges(edges)
	n := len(edges) - 1
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		open := "("
		if i == 0 {
			open = "["
		}
		labels[i] = fmt.Sprintf("%s%s, %s]", open, text[i], text[i+1])
	}
	return labels
}

// formatEdges raises the precision until no two edges print the same.
func formatEdges(edges []float64) []string {
	var text []string
	for prec := 2; prec <= maxLabelPrecision; prec++ {
		text = make([]string, len(edges))
		seen := make(map[string]bool, len(edges))
		unique := true
		for i, e := range edges {
			text[i] = formatEdge(e, prec)
			if seen[text[i]] {
				unique = false
			}
			seen[text[i]] = true
		}
		if unique {
			return text
		}
	}
	return text
}

// Bucketize computes n equal-width bins from the observed minimum and maximum
// and returns the bin index of every value.
func Bucketize(values []float64, n int) (Bins, []int, error) {
	if len(values) == 0 {
		return Bins{}, nil, errors.New("bucketize: no values")
	}
	lo, err := stats.Min(values)
	if err != nil {
		return Bins{}, nil, fmt.Errorf("bucketize: min: %w", err)
	}
	hi, err := stats.Max(values)
	if err != nil {
		return Bins{}, nil, fmt.Errorf("bucketize: max: %w", err)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Bins{}, nil, errors.New("bucketize: values contain NaN")
	}
	b := NewBins(lo, hi, n)
	idx := make([]int, len(values))
	for i, v := range values {
		idx[i] = b.Index(v)
	}
	return b, idx, nil
}

// Len returns the number of bins.
func (b Bins) Len() int { return len(b.Labels) }

// Index returns the bin holding x, or -1 when x is outside the range.
func (b Bins) Index(x float64) int {
	n := b.Len()
	if n == 0 || math.IsNaN(x) || x < b.Edges[0] || x > b.Edges[n] {
		return -1
	}
	for i := 0; i < n; i++ {
		if x <= b.Edges[i+1] {
			return i
		}
	}
	return n - 1
}

// Label returns the label of bin i, or "" when i is out of range.
func (b Bins) Label(i int) string {
	if i < 0 || i >= len(b.Labels) {
		return ""
	}
	return b.Labels[i]
}

// Rank returns the position of label in bin order, or -1.
func (b Bins) Rank(label string) int {
	for i, l := range b.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

func formatEdge(x float64, prec int) string {
	p := math.Pow10(prec)
	return strconv.FormatFloat(math.Round(x*p)/p, 'f', -1, 64)
}
