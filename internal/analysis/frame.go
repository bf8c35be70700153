package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Frame is a wide table: one row per index label, one column per metric.
// Frames are values produced by recipes; methods return new frames.
type Frame struct {
	Name      string      `json:"name,omitempty" yaml:"name,omitempty"`
	IndexName string      `json:"index_name" yaml:"index_name"`
	Index     []string    `json:"index" yaml:"index"`
	Columns   []string    `json:"columns" yaml:"columns"`
	Values    [][]float64 `json:"values" yaml:"values"`
}

// LongRow is one (key, variable) observation of a melted frame.
type LongRow struct {
	Key      string  `json:"key" yaml:"key"`
	Variable string  `json:"variable" yaml:"variable"`
	Value    float64 `json:"value" yaml:"value"`
}

// LongFrame is the one-row-per-(key, metric) form of a Frame.
type LongFrame struct {
	KeyName   string    `json:"key_name" yaml:"key_name"`
	VarName   string    `json:"var_name" yaml:"var_name"`
	ValueName string    `json:"value_name" yaml:"value_name"`
	Rows      []LongRow `json:"rows" yaml:"rows"`
}

// NewFrame returns a zero-filled frame of len(index) x len(columns).
func NewFrame(indexName string, index, columns []string) *Frame {
	vals := make([][]float64, len(index))
	for i := range vals {
		vals[i] = make([]float64, len(columns))
	}
	return &Frame{
		IndexName: indexName,
		Index:     append([]string(nil), index...),
		Columns:   append([]string(nil), columns...),
		Values:    vals,
	}
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	out := NewFrame(f.IndexName, f.Index, f.Columns)
	out.Name = f.Name
	for i, row := range f.Values {
		copy(out.Values[i], row)
	}
	return out
}

// Shape returns rows and columns.
func (f *Frame) Shape() (int, int) { return len(f.Index), len(f.Columns) }

// At returns the value at (row label, column name).
func (f *Frame) At(row, col string) (float64, bool) {
	i, j := indexOf(f.Index, row), indexOf(f.Columns, col)
	if i < 0 || j < 0 {
		return 0, false
	}
	return f.Values[i][j], true
}

// Column returns a copy of the named column.
func (f *Frame) Column(name string) ([]float64, bool) {
	j := indexOf(f.Columns, name)
	if j < 0 {
		return nil, false
	}
	out := make([]float64, len(f.Index))
	for i, row := range f.Values {
		out[i] = row[j]
	}
	return out, true
}

// Scale multiplies every cell by k.
func (f *Frame) Scale(k float64) *Frame {
	out := f.Clone()
	for _, row := range out.Values {
		floats.Scale(k, row)
	}
	return out
}

// Transpose swaps index and columns.
func (f *Frame) Transpose() *Frame {
	out := NewFrame("", f.Columns, f.Index)
	out.Name = f.Name
	for i, row := range f.Values {
		for j, v := range row {
			out.Values[j][i] = v
		}
	}
	return out
}

// NormalizeRows divides each row by its sum so rows add up to 1.
// Rows summing to zero are left as zeros.
func (f *Frame) NormalizeRows() *Frame {
	out := f.Clone()
	for _, row := range out.Values {
		s := floats.Sum(row)
		if s == 0 {
			continue
		}
		floats.Scale(1/s, row)
	}
	return out
}

// Reorder arranges rows in the given label order. Labels absent from the
// frame are skipped; rows not named in order are dropped.
func (f *Frame) Reorder(order []string) *Frame {
	var idx []string
	var vals [][]float64
	for _, label := range order {
		i := indexOf(f.Index, label)
		if i < 0 {
			continue
		}
		idx = append(idx, label)
		vals = append(vals, append([]float64(nil), f.Values[i]...))
	}
	return &Frame{Name: f.Name, IndexName: f.IndexName, Index: idx, Columns: append([]string(nil), f.Columns...), Values: vals}
}

// Relabel renames columns through names. Every column listed in required
// that is still absent after renaming is appended and zero-filled.
func (f *Frame) Relabel(names map[string]string, required ...string) *Frame {
	out := f.Clone()
	for j, c := range out.Columns {
		if n, ok := names[c]; ok {
			out.Columns[j] = n
		}
	}
	for _, r := range required {
		if indexOf(out.Columns, r) >= 0 {
			continue
		}
		out.Columns = append(out.Columns, r)
		for i := range out.Values {
			out.Values[i] = append(out.Values[i], 0)
		}
	}
	return out
}

// Select keeps the named columns in the given order.
func (f *Frame) Select(cols ...string) (*Frame, error) {
	out := NewFrame(f.IndexName, f.Index, cols)
	out.Name = f.Name
	for k, c := range cols {
		j := indexOf(f.Columns, c)
		if j < 0 {
			return nil, fmt.Errorf("select: unknown column %q", c)
		}
		for i := range f.Values {
			out.Values[i][k] = f.Values[i][j]
		}
	}
	return out, nil
}

// SortByColumn orders rows ascending by column j; ties keep their order.
func (f *Frame) SortByColumn(j int) *Frame {
	out := f.Clone()
	perm := make([]int, len(out.Index))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool { return f.Values[perm[a]][j] < f.Values[perm[b]][j] })
	for k, i := range perm {
		out.Index[k] = f.Index[i]
		copy(out.Values[k], f.Values[i])
	}
	return out
}

// Melt reshapes the frame into long form, key-major.
func (f *Frame) Melt(varName, valueName string) *LongFrame {
	lf := &LongFrame{KeyName: f.IndexName, VarName: varName, ValueName: valueName}
	lf.Rows = make([]LongRow, 0, len(f.Index)*len(f.Columns))
	for i, key := range f.Index {
		for j, col := range f.Columns {
			lf.Rows = append(lf.Rows, LongRow{Key: key, Variable: col, Value: f.Values[i][j]})
		}
	}
	return lf
}

// Replace renames variables, keeping rows and order.
func (l *LongFrame) Replace(vars map[string]string) *LongFrame {
	out := &LongFrame{KeyName: l.KeyName, VarName: l.VarName, ValueName: l.ValueName}
	out.Rows = make([]LongRow, len(l.Rows))
	for i, r := range l.Rows {
		if n, ok := vars[r.Variable]; ok {
			r.Variable = n
		}
		out.Rows[i] = r
	}
	return out
}

// Keys returns the distinct keys in first-seen order.
func (l *LongFrame) Keys() []string { return distinct(l.Rows, func(r LongRow) string { return r.Key }) }

// Variables returns the distinct variables in first-seen order.
func (l *LongFrame) Variables() []string {
	return distinct(l.Rows, func(r LongRow) string { return r.Variable })
}

// Value looks up a (key, variable) cell.
func (l *LongFrame) Value(key, variable string) (float64, bool) {
	for _, r := range l.Rows {
		if r.Key == key && r.Variable == variable {
			return r.Value, true
		}
	}
	return 0, false
}

func distinct(rows []LongRow, pick func(LongRow) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range rows {
		k := pick(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
