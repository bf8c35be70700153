package dataset

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Options controls how a source file is read.
type Options struct {
	// Delimiter for delimited text. If 0, chosen from the file extension.
	Delimiter rune
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// Table is the loaded campaign dataset plus its derived columns.
// It is read-only: every accessor returns fresh slices or frames.
type Table struct {
	Path     string
	LoadedAt time.Time

	df   dataframe.DataFrame
	bins Bins
	// rows whose source age group disagrees with AgeGroup(age)
	ageMismatches int
}

// Group is one partition of a table by a key column.
type Group struct {
	Key   string
	Table *Table
}

// Load reads path, validates the schema and derives the age group and
// income bucket columns.
func Load(path string, opt Options) (*Table, error) {
	df, err := readFrame(path, opt)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if missing := missingColumns(df.Names(), RequiredColumns()); len(missing) > 0 {
		return nil, &SchemaError{Path: filepath.Base(path), Missing: missing}
	}
	if df.Nrow() == 0 {
		return nil, &LoadError{Path: path, Err: ErrEmptyTable}
	}
	t := &Table{Path: path, LoadedAt: time.Now(), df: df}
	if err := t.derive(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return t, nil
}

// FromFrame wraps an in-memory dataframe, applying the same validation and
// derivations as Load.
func FromFrame(name string, df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, &LoadError{Path: name, Err: df.Err}
	}
	if missing := missingColumns(df.Names(), RequiredColumns()); len(missing) > 0 {
		return nil, &SchemaError{Path: name, Missing: missing}
	}
	if df.Nrow() == 0 {
		return nil, &LoadError{Path: name, Err: ErrEmptyTable}
	}
	t := &Table{Path: name, LoadedAt: time.Now(), df: df}
	if err := t.derive(); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	return t, nil
}

func (t *Table) derive() error {
	names := t.df.Names()
	if !contains(names, ColTotalSpend) {
		total := make([]float64, t.df.Nrow())
		for _, c := range SpendColumns {
			for i, v := range t.df.Col(c).Float() {
				total[i] += v
			}
		}
		t.df = t.df.Mutate(series.New(total, series.Float, ColTotalSpend))
	}
	if !contains(names, ColAnyAccepted) {
		accepted := make([]int, t.df.Nrow())
		for _, c := range CampaignColumns {
			for i, v := range t.df.Col(c).Float() {
				if v == 1 {
					accepted[i] = 1
				}
			}
		}
		t.df = t.df.Mutate(series.New(accepted, series.Int, ColAnyAccepted))
	}

	ages := t.df.Col(ColAge).Float()
	groups := make([]string, len(ages))
	for i, a := range ages {
		groups[i] = AgeGroup(a)
	}
	// A source age group column wins as long as it only uses known labels.
	keep := false
	if contains(names, ColAgeGroup) {
		src := t.df.Col(ColAgeGroup).Records()
		keep = true
		for i, g := range src {
			if g != groups[i] {
				t.ageMismatches++
			}
			if !contains(AgeGroups, g) {
				keep = false
			}
		}
	}
	if !keep {
		t.df = t.df.Mutate(series.New(groups, series.String, ColAgeGroup))
	}

	bins, idx, err := Bucketize(t.df.Col(ColIncome).Float(), IncomeBuckets)
	if err != nil {
		return fmt.Errorf("income buckets: %w", err)
	}
	labels := make([]string, len(idx))
	for i, b := range idx {
		labels[i] = bins.Label(b)
	}
	t.df = t.df.Mutate(series.New(labels, series.String, ColIncomeOrder))
	t.bins = bins
	if t.df.Err != nil {
		return t.df.Err
	}
	return nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.df.Nrow() }

// AgeGroupMismatches reports how many rows carried a source age group that
// differs from the one computed from their age.
func (t *Table) AgeGroupMismatches() int { return t.ageMismatches }

// Columns returns the column names in file order, derived columns last.
func (t *Table) Columns() []string { return t.df.Names() }

// Has reports whether col exists.
func (t *Table) Has(col string) bool { return contains(t.df.Names(), col) }

// IncomeBins returns the bins used for the income bucket column.
func (t *Table) IncomeBins() Bins { return t.bins }

// Floats returns a numeric copy of col.
func (t *Table) Floats(col string) ([]float64, error) {
	if !t.Has(col) {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	return t.df.Col(col).Float(), nil
}

// Strings returns the textual values of col.
func (t *Table) Strings(col string) ([]string, error) {
	if !t.Has(col) {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	return t.df.Col(col).Records(), nil
}

// Head returns the header followed by the first n rows.
func (t *Table) Head(n int) [][]string {
	if n > t.Rows() {
		n = t.Rows()
	}
	if n <= 0 {
		return [][]string{t.df.Names()}
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.df.Subset(idx).Records()
}

// Filter returns the rows where col equals value.
func (t *Table) Filter(col string, value int) (*Table, error) {
	if !t.Has(col) {
		return nil, fmt.Errorf("filter: unknown column %q", col)
	}
	df := t.df.Filter(dataframe.F{Colname: col, Comparator: series.Eq, Comparando: value})
	if df.Err != nil {
		return nil, fmt.Errorf("filter %s == %d: %w", col, value, df.Err)
	}
	return &Table{Path: t.Path, LoadedAt: t.LoadedAt, df: df, bins: t.bins}, nil
}

// GroupBy partitions the table by col. Groups are sorted by key; levels that
// do not occur in the data produce no group.
func (t *Table) GroupBy(col string) ([]Group, error) {
	if !t.Has(col) {
		return nil, fmt.Errorf("group by: unknown column %q", col)
	}
	if t.Rows() == 0 {
		return nil, nil
	}
	gs := t.df.GroupBy(col)
	if gs == nil {
		return nil, fmt.Errorf("group by %s: no groups", col)
	}
	out := make([]Group, 0)
	for _, df := range gs.GetGroups() {
		if df.Nrow() == 0 {
			continue
		}
		key := df.Col(col).Records()[0]
		out = append(out, Group{Key: key, Table: &Table{Path: t.Path, LoadedAt: t.LoadedAt, df: df, bins: t.bins}})
	}
	sort.Slice(out, func(i, j int) bool { return lessKey(out[i].Key, out[j].Key) })
	return out, nil
}

// Aggregate reduces every column in cols per level of key using gota's
// group aggregation. Keys come back in GroupBy order; values[i][j] belongs to
// keys[i] and cols[j].
func (t *Table) Aggregate(key string, typ dataframe.AggregationType, cols []string) ([]string, [][]float64, error) {
	for _, c := range append([]string{key}, cols...) {
		if !t.Has(c) {
			return nil, nil, fmt.Errorf("aggregate: unknown column %q", c)
		}
	}
	if t.Rows() == 0 || len(cols) == 0 {
		return nil, nil, nil
	}
	gs := t.df.GroupBy(key)
	if gs.Err != nil {
		return nil, nil, fmt.Errorf("aggregate by %s: %w", key, gs.Err)
	}
	typs := make([]dataframe.AggregationType, len(cols))
	for i := range typs {
		typs[i] = typ
	}
	agg := gs.Aggregation(typs, cols)
	if agg.Err != nil {
		return nil, nil, fmt.Errorf("aggregate by %s: %w", key, agg.Err)
	}

	raw := agg.Col(key).Records()
	order := make([]int, len(raw))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return lessKey(raw[order[a]], raw[order[b]]) })

	columns := make([][]float64, len(cols))
	for j, c := range cols {
		// gota names aggregated columns <col>_<TYPE>
		columns[j] = agg.Col(fmt.Sprintf("%s_%s", c, typ)).Float()
	}
	keys := make([]string, len(order))
	values := make([][]float64, len(order))
	for i, r := range order {
		keys[i] = raw[r]
		values[i] = make([]float64, len(cols))
		for j := range cols {
			values[i][j] = columns[j][r]
		}
	}
	return keys, values, nil
}

// Records returns the header and every row as text.
func (t *Table) Records() [][]string { return t.df.Records() }

// lessKey orders numeric keys numerically and everything else lexically.
func lessKey(a, b string) bool {
	fa, erra := parseFloat(a)
	fb, errb := parseFloat(b)
	if erra == nil && errb == nil {
		return fa < fb
	}
	return a < b
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("not numeric: %q", s)
	}
	return f, nil
}

func missingColumns(have, want []string) []string {
	var missing []string
	for _, w := range want {
		if !contains(have, w) {
			missing = append(missing, w)
		}
	}
	return missing
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
