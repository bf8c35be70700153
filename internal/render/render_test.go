package render

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/KaramelBytes/edareport/internal/dataset"
	"github.com/KaramelBytes/edareport/internal/dataset/datasettest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureArtifacts(t *testing.T) []*analysis.Artifact {
	t.Helper()
	p := datasettest.WriteCSV(t, t.TempDir(), datasettest.Rows())
	tbl, err := dataset.Load(p, dataset.Options{})
	require.NoError(t, err)
	arts, err := analysis.BuildAll(context.Background(), tbl)
	require.NoError(t, err)
	return arts
}

func TestSVGRendersEveryChart(t *testing.T) {
	for _, a := range fixtureArtifacts(t) {
		if a.Chart == nil {
			continue
		}
		t.Run(a.ID, func(t *testing.T) {
			out, err := SVG(a.Chart, DefaultOptions())
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(bytes.TrimSpace(out), []byte("<")), "output should be markup")
			assert.Contains(t, string(out), "<svg")
			assert.NotContains(t, string(out), "<?xml")
		})
	}
}

func TestSVGDonutPlacesPanelsSideBySide(t *testing.T) {
	spec := &analysis.ChartSpec{
		Kind:  analysis.KindDonut,
		Title: "a & b",
		Panels: []analysis.Panel{
			{Title: "left", Labels: []string{"0", "1"}, Colors: []string{"#f56a59", "#398ef5"}, Values: []float64{3, 1}},
			{Title: "right", Labels: []string{"0"}, Values: []float64{0}},
		},
	}
	out, err := SVG(spec, Options{Width: 600, Height: 300})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `width="600"`)
	assert.Contains(t, s, "a &amp; b")
	assert.Contains(t, s, "translate(300,28)")
	assert.Contains(t, s, "right: sin datos")
}

func TestSVGErrors(t *testing.T) {
	_, err := SVG(nil, DefaultOptions())
	assert.True(t, errors.Is(err, ErrEmptyChart))

	_, err = SVG(&analysis.ChartSpec{Kind: "radar"}, DefaultOptions())
	assert.True(t, errors.Is(err, ErrUnsupportedKind))

	_, err = SVG(&analysis.ChartSpec{Kind: analysis.KindBar}, DefaultOptions())
	assert.True(t, errors.Is(err, ErrEmptyChart))

	_, err = SVG(&analysis.ChartSpec{
		Kind:       analysis.KindLine,
		Categories: []string{"a", "b"},
		Series:     []analysis.Series{{Name: "x", Values: []float64{1}}},
	}, DefaultOptions())
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	r, g, b, a := parseColor("#3f51b5", 0.5).RGBA()
	assert.NotZero(t, b)
	assert.Less(t, r, b)
	assert.Less(t, g, b)
	assert.InDelta(t, 0x8080, a, 0x100)
}
