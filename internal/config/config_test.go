package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "ifood_df_eda.csv"), c.DataPath)
	assert.Equal(t, filepath.Join("data", "ifood.png"), c.ImagePath)
	assert.Equal(t, 5, c.PreviewRows)
	assert.Equal(t, 720.0, c.ChartWidth)
	assert.Equal(t, 432.0, c.ChartHeight)
	assert.Equal(t, ":8501", c.ListenAddr)
	assert.Equal(t, rune(0), c.DelimiterRune())
}

func TestSaveLoadRoundTripAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "cfg", "config.yaml")

	c, err := Load(path)
	require.NoError(t, err, "a missing explicit config file falls back to defaults")
	require.NoError(t, c.Set("data_path", "other.csv"))
	require.NoError(t, c.Set("preview_rows", "12"))
	require.NoError(t, c.Set("delimiter", ";"))
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.csv", got.DataPath)
	assert.Equal(t, 12, got.PreviewRows)
	assert.Equal(t, ';', got.DelimiterRune())

	t.Setenv("EDAREPORT_PREVIEW_ROWS", "3")
	got, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.PreviewRows, "env wins over the file")
}

func TestSaveDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Set("listen_addr", ":9000"))
	require.NoError(t, Save(c, ""))

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".edareport", "config.yaml"), p)
	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", got.ListenAddr)
}

func TestSetValidation(t *testing.T) {
	c := &Global{}
	assert.Error(t, c.Set("preview_rows", "-1"))
	assert.Error(t, c.Set("chart_width", "wide"))
	assert.Error(t, c.Set("delimiter", ";;"))
	assert.Error(t, c.Set("nope", "x"))
	require.NoError(t, c.Set("delimiter", "tab"))
	assert.Equal(t, '\t', c.DelimiterRune())
}
