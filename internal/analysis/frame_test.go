package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrame() *Frame {
	f := NewFrame("k", []string{"b", "a", "c"}, []string{"x", "y"})
	f.Values = [][]float64{{3, 1}, {1, 1}, {0, 0}}
	return f
}

func TestScaleRoundTrip(t *testing.T) {
	f := sampleFrame()
	back := f.Scale(1.0 / ObservationWindowMonths).Scale(ObservationWindowMonths)
	if diff := cmp.Diff(f.Values, back.Values, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("scale round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3.0, f.Values[0][0], "Scale must not mutate the receiver")
}

func TestNormalizeRows(t *testing.T) {
	n := sampleFrame().NormalizeRows()
	assert.InDelta(t, 0.75, n.Values[0][0], 1e-12)
	assert.InDelta(t, 0.5, n.Values[1][1], 1e-12)
	assert.Equal(t, []float64{0, 0}, n.Values[2], "zero rows stay zero")
}

func TestReorderAndSelect(t *testing.T) {
	f := sampleFrame().Reorder([]string{"a", "missing", "b"})
	assert.Equal(t, []string{"a", "b"}, f.Index)
	assert.Equal(t, []float64{1, 1}, f.Values[0])

	s, err := f.Select("y", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, s.Columns)
	assert.Equal(t, []float64{1, 3}, s.Values[1])

	_, err = f.Select("z")
	assert.Error(t, err)
}

func TestRelabelZeroFillsRequired(t *testing.T) {
	f := NewFrame("IncomeOrder", []string{"low", "high"}, []string{"0"})
	f.Values = [][]float64{{1}, {1}}
	r := f.Relabel(map[string]string{"0": "Rechazan", "1": "Aceptan"}, "Aceptan", "Rechazan")
	assert.Equal(t, []string{"Rechazan", "Aceptan"}, r.Columns)
	v, ok := r.At("high", "Aceptan")
	require.True(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, []string{"0"}, f.Columns, "Relabel must not mutate the receiver")
}

func TestMeltShape(t *testing.T) {
	f := sampleFrame()
	long := f.Melt("type", "value")
	rows, cols := f.Shape()
	assert.Len(t, long.Rows, rows*cols)
	assert.Equal(t, []string{"b", "a", "c"}, long.Keys())
	assert.Equal(t, []string{"x", "y"}, long.Variables())
	v, ok := long.Replace(map[string]string{"x": "X"}).Value("b", "X")
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestTransposeAndSort(t *testing.T) {
	f := sampleFrame()
	tr := f.Transpose()
	assert.Equal(t, f.Columns, tr.Index)
	assert.Equal(t, f.Index, tr.Columns)
	assert.Equal(t, []float64{3, 1, 0}, tr.Values[0])

	s := f.SortByColumn(1)
	assert.Equal(t, []string{"c", "b", "a"}, s.Index, "ties keep their original order")
}
