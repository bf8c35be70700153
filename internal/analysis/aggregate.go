package analysis

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/KaramelBytes/edareport/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// ObservationWindowMonths converts totals collected over the observation
// window into monthly rates.
const ObservationWindowMonths = 24

// MonthlyRate converts a window total into a per-month value.
func MonthlyRate(total float64) float64 { return total / ObservationWindowMonths }

// GroupMeans returns the arithmetic mean of cols per level of key.
func GroupMeans(t *dataset.Table, key string, cols []string) (*Frame, error) {
	return groupAggregate(t, key, cols, dataframe.Aggregation_MEAN)
}

// GroupSums returns the sum of cols per level of key.
func GroupSums(t *dataset.Table, key string, cols []string) (*Frame, error) {
	return groupAggregate(t, key, cols, dataframe.Aggregation_SUM)
}

func groupAggregate(t *dataset.Table, key string, cols []string, typ dataframe.AggregationType) (*Frame, error) {
	keys, values, err := t.Aggregate(key, typ, cols)
	if err != nil {
		return nil, err
	}
	f := NewFrame(key, keys, cols)
	for i := range keys {
		copy(f.Values[i], values[i])
	}
	return f, nil
}

// CountBy keeps rows where filterCol == value and counts them per level of
// key. The result has a single "total" column.
func CountBy(t *dataset.Table, filterCol string, value int, key string) (*Frame, error) {
	sub, err := t.Filter(filterCol, value)
	if err != nil {
		return nil, err
	}
	groups, err := sub.GroupBy(key)
	if err != nil {
		return nil, err
	}
	index := make([]string, len(groups))
	for i, g := range groups {
		index[i] = g.Key
	}
	f := NewFrame(key, index, []string{"total"})
	for i, g := range groups {
		f.Values[i][0] = float64(g.Table.Rows())
	}
	return f, nil
}

// Crosstab counts rows for every (rowKey, colKey) pair. Column levels are
// the levels of colKey present anywhere in t; row levels are those of rowKey.
func Crosstab(t *dataset.Table, rowKey, colKey string) (*Frame, error) {
	colVals, err := t.Strings(colKey)
	if err != nil {
		return nil, fmt.Errorf("crosstab: %w", err)
	}
	levels := uniqueSorted(colVals)
	groups, err := t.GroupBy(rowKey)
	if err != nil {
		return nil, fmt.Errorf("crosstab: %w", err)
	}
	index := make([]string, len(groups))
	for i, g := range groups {
		index[i] = g.Key
	}
	f := NewFrame(rowKey, index, levels)
	for i, g := range groups {
		vals, err := g.Table.Strings(colKey)
		if err != nil {
			return nil, fmt.Errorf("crosstab: %w", err)
		}
		for _, v := range vals {
			if j := indexOf(levels, v); j >= 0 {
				f.Values[i][j]++
			}
		}
	}
	return f, nil
}

// ColumnMeans returns one row per column holding its mean over all rows.
func ColumnMeans(t *dataset.Table, cols []string, valueName string) (*Frame, error) {
	f := NewFrame("index", cols, []string{valueName})
	for i, c := range cols {
		x, err := t.Floats(c)
		if err != nil {
			return nil, fmt.Errorf("column mean: %w", err)
		}
		f.Values[i][0] = stat.Mean(x, nil)
	}
	return f, nil
}

// uniqueSorted orders numeric levels numerically, others lexically.
func uniqueSorted(vals []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.ParseFloat(out[i], 64)
		b, errB := strconv.ParseFloat(out[j], 64)
		if errA == nil && errB == nil {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}
