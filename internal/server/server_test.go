package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/edareport/internal/dataset"
	"github.com/KaramelBytes/edareport/internal/dataset/datasettest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T) (*Server, *dataset.Cache) {
	t.Helper()
	dir := t.TempDir()
	p := datasettest.WriteCSV(t, dir, datasettest.Rows())
	cache := dataset.NewCache(dataset.Options{})
	s := New(Config{DataPath: p, ImagePath: filepath.Join(dir, "missing.png"), PreviewRows: 3}, cache, zaptest.NewLogger(t))
	return s, cache
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndexAndRawToggle(t *testing.T) {
	s, cache := newTestServer(t)
	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Reporte de análisis exploratorio de datos")
	assert.Contains(t, body, `href="/?raw=1"`)
	assert.NotContains(t, body, "<h3>Datos crudos</h3>")

	rec = get(t, s.Handler(), "/?raw=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h3>Datos crudos</h3>")
	assert.Equal(t, 1, cache.Loads(), "the table is loaded once and reused")
}

func TestChartRoute(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/charts/prior-acceptance.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Body.String(), "<svg"))

	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/charts/nope.svg").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/charts/campaigns-by-income.svg").Code)
}

func TestArtifactsAPI(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/api/artifacts")
	require.Equal(t, http.StatusOK, rec.Code)
	var arts []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &arts))
	assert.Len(t, arts, 11)
}

func TestHealthAndImage(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/image").Code)
}

func TestLoadFailureIs500(t *testing.T) {
	cache := dataset.NewCache(dataset.Options{})
	s := New(Config{DataPath: filepath.Join(t.TempDir(), "none.csv")}, cache, nil)
	rec := get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestReloadRereadsDataset(t *testing.T) {
	dir := t.TempDir()
	p := datasettest.WriteCSV(t, dir, datasettest.Rows())
	cache := dataset.NewCache(dataset.Options{})
	s := New(Config{DataPath: p, Reload: true}, cache, zaptest.NewLogger(t))

	require.Equal(t, http.StatusOK, get(t, s.Handler(), "/api/artifacts").Code)
	first, err := cache.Get(p)
	require.NoError(t, err)
	assert.Equal(t, 12, first.Rows())

	datasettest.WriteCSV(t, dir, datasettest.Rows()[:8])
	require.Equal(t, http.StatusOK, get(t, s.Handler(), "/api/artifacts").Code)
	second, err := cache.Get(p)
	require.NoError(t, err)
	assert.Equal(t, 8, second.Rows(), "edits to the data file are picked up")
	assert.Equal(t, 2, cache.Loads())
}
