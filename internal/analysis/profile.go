package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/edareport/internal/dataset"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Profile is a markdown-friendly overview of the loaded dataset.
type Profile struct {
	Name    string
	Rows    int
	Cols    []ColumnProfile
	Samples [][]string
	// Pairs holds the strongest correlations among spend columns.
	Pairs []CorrelationPair
}

// ColumnProfile captures the inferred kind and statistics of one column.
type ColumnProfile struct {
	Name    string
	Kind    string // numeric|categorical
	Missing int
	Unique  int

	Min, Max, Mean, Std float64
	// robust z-score outliers via MAD
	Outliers int

	Top []LevelCount
}

// LevelCount is the frequency of one categorical value.
type LevelCount struct {
	Value string
	Count int
}

// CorrelationPair is a Pearson correlation between two columns.
type CorrelationPair struct {
	A, B string
	R    float64
}

const outlierZ = 3.5

// ProfileTable summarises every column of t and keeps the first sample rows.
func ProfileTable(t *dataset.Table, sample int) (*Profile, error) {
	p := &Profile{Name: t.Path, Rows: t.Rows()}
	for _, name := range t.Columns() {
		raw, err := t.Strings(name)
		if err != nil {
			return nil, err
		}
		p.Cols = append(p.Cols, profileColumn(name, raw))
	}
	head := t.Head(sample)
	if len(head) > 1 {
		p.Samples = head[1:]
	}
	pairs, err := spendCorrelations(t)
	if err != nil {
		return nil, err
	}
	p.Pairs = pairs
	return p, nil
}

func profileColumn(name string, raw []string) ColumnProfile {
	c := ColumnProfile{Name: name}
	counts := map[string]int{}
	var nums []float64
	numeric := true
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || s == "NaN" {
			c.Missing++
			continue
		}
		counts[s]++
		if !numeric {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			numeric = false
			continue
		}
		nums = append(nums, v)
	}
	c.Unique = len(counts)
	if numeric && len(nums) > 0 {
		c.Kind = "numeric"
		c.Min, c.Max = floats.Min(nums), floats.Max(nums)
		c.Mean, c.Std = stat.MeanStdDev(nums, nil)
		c.Outliers = countOutliers(nums)
		return c
	}
	c.Kind = "categorical"
	for v, n := range counts {
		c.Top = append(c.Top, LevelCount{Value: v, Count: n})
	}
	sort.Slice(c.Top, func(i, j int) bool {
		if c.Top[i].Count == c.Top[j].Count {
			return c.Top[i].Value < c.Top[j].Value
		}
		return c.Top[i].Count > c.Top[j].Count
	})
	if len(c.Top) > 5 {
		c.Top = c.Top[:5]
	}
	return c
}

func countOutliers(x []float64) int {
	med, err := stats.Median(x)
	if err != nil {
		return 0
	}
	mad, err := stats.MedianAbsoluteDeviation(x)
	if err != nil || mad == 0 {
		return 0
	}
	n := 0
	for _, v := range x {
		if math.Abs(0.6745*(v-med)/mad) > outlierZ {
			n++
		}
	}
	return n
}

func spendCorrelations(t *dataset.Table) ([]CorrelationPair, error) {
	cols := append([]string{dataset.ColIncome}, dataset.SpendColumns...)
	data := make([][]float64, len(cols))
	for i, c := range cols {
		x, err := t.Floats(c)
		if err != nil {
			return nil, err
		}
		data[i] = x
	}
	var pairs []CorrelationPair
	for i := range cols {
		for j := i + 1; j < len(cols); j++ {
			r := stat.Correlation(data[i], data[j], nil)
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, CorrelationPair{A: cols[i], B: cols[j], R: r})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return math.Abs(pairs[i].R) > math.Abs(pairs[j].R) })
	if len(pairs) > 8 {
		pairs = pairs[:8]
	}
	return pairs, nil
}

// Markdown renders the profile as plain markdown.
func (p *Profile) Markdown() string {
	var b strings.Builder
	b.WriteString("## Resumen del dataset\n\n")
	b.WriteString(fmt.Sprintf("- Archivo: `%s`\n", p.Name))
	b.WriteString(fmt.Sprintf("- Filas: %d\n", p.Rows))
	b.WriteString(fmt.Sprintf("- Columnas: %d\n\n", len(p.Cols)))

	b.WriteString("### Columnas\n\n")
	for _, c := range p.Cols {
		b.WriteString(fmt.Sprintf("- **%s**: %s", escapeCell(c.Name), c.Kind))
		if c.Missing > 0 {
			b.WriteString(fmt.Sprintf(", %d vacíos", c.Missing))
		}
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(" (min %.4g, max %.4g, media %.4g, desv. %.4g", c.Min, c.Max, c.Mean, c.Std))
			if c.Outliers > 0 {
				b.WriteString(fmt.Sprintf(", %d atípicos", c.Outliers))
			}
			b.WriteString(")")
		case "categorical":
			parts := make([]string, len(c.Top))
			for i, kv := range c.Top {
				parts[i] = fmt.Sprintf("%s (%d)", escapeCell(kv.Value), kv.Count)
			}
			b.WriteString(": " + strings.Join(parts, ", "))
			if c.Unique > len(c.Top) {
				b.WriteString(fmt.Sprintf("; %d valores", c.Unique))
			}
		}
		b.WriteString("\n")
	}

	if len(p.Pairs) > 0 {
		b.WriteString("\n### Correlaciones\n\n")
		for _, pr := range p.Pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", pr.A, pr.B, pr.R))
		}
	}

	if len(p.Samples) > 0 {
		b.WriteString("\n### Primeras filas\n\n")
		header := make([]string, len(p.Cols))
		for i, c := range p.Cols {
			header[i] = c.Name
		}
		b.WriteString(MarkdownTable(header, p.Samples))
	}
	return b.String()
}

// MarkdownTable renders a pipe table.
func MarkdownTable(header []string, rows [][]string) string {
	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for _, c := range cells {
			b.WriteString(" " + escapeCell(c) + " |")
		}
		b.WriteString("\n")
	}
	writeRow(header)
	b.WriteString("|")
	for range header {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, r := range rows {
		writeRow(r)
	}
	return b.String()
}

// FrameMarkdown renders a frame as a pipe table with two decimals.
func FrameMarkdown(f *Frame) string {
	header := append([]string{f.IndexName}, f.Columns...)
	rows := make([][]string, len(f.Index))
	for i, label := range f.Index {
		row := []string{label}
		for _, v := range f.Values[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 2, 64))
		}
		rows[i] = row
	}
	return MarkdownTable(header, rows)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
