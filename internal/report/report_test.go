package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/KaramelBytes/edareport/internal/dataset"
	"github.com/KaramelBytes/edareport/internal/dataset/datasettest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var pixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func buildDoc(t *testing.T, opt Options) *Document {
	t.Helper()
	dir := t.TempDir()
	p := datasettest.WriteCSV(t, dir, datasettest.Rows())
	tbl, err := dataset.Load(p, dataset.Options{})
	require.NoError(t, err)
	doc, err := Build(context.Background(), tbl, opt)
	require.NoError(t, err)
	return doc
}

func TestBuildSectionsInOrder(t *testing.T) {
	doc := buildDoc(t, Options{})
	require.Len(t, doc.Sections, 3)
	counts := []int{}
	for i, s := range doc.Sections {
		assert.Equal(t, analysis.Sections[i], s.Heading)
		counts = append(counts, len(s.Blocks))
	}
	assert.Equal(t, []int{4, 4, 3}, counts)
	assert.Len(t, doc.Artifacts(), 11)
	assert.NotEmpty(t, doc.RunID)
	assert.Nil(t, doc.Raw, "raw preview is off by default")

	svg, ok := doc.Chart("acceptance-by-income")
	require.True(t, ok)
	assert.Contains(t, string(svg), "<svg")
	_, ok = doc.Chart("campaigns-by-income")
	assert.False(t, ok, "table artifacts have no chart")
}

func TestHTMLFixedBlockOrder(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "hero.png")
	require.NoError(t, os.WriteFile(img, pixel, 0o644))
	doc := buildDoc(t, Options{ImagePath: img, Raw: true, PreviewRows: 2})

	var buf bytes.Buffer
	require.NoError(t, doc.HTML(&buf))
	page := buf.String()

	order := []string{
		"<h1>" + Title + "</h1>",
		"data:image/png;base64,",
		"iFood es la aplicación",
		"Se cuenta con una muestra",
		"<h3>Datos crudos</h3>",
		"<h2>" + analysis.SectionCustomer + "</h2>",
		`id="purchase-frequency-by-age"`,
		"<h2>" + analysis.SectionCampaign + "</h2>",
		`id="campaigns-by-income"`,
		"<h2>" + analysis.SectionProduct + "</h2>",
		`id="monthly-spend-by-segment"`,
	}
	last := -1
	for _, want := range order {
		i := strings.Index(page, want)
		require.GreaterOrEqual(t, i, 0, "page missing %q", want)
		require.Greater(t, i, last, "%q out of order", want)
		last = i
	}
	assert.Contains(t, page, "background-color: #023858")
	assert.Contains(t, page, "<li>Los clientes compran")
}

func TestMissingImageIsAWarning(t *testing.T) {
	doc := buildDoc(t, Options{ImagePath: filepath.Join(t.TempDir(), "none.png")})
	assert.Nil(t, doc.Image)
	require.Len(t, doc.Warnings, 1)
	assert.Contains(t, doc.Warnings[0], "read image")
}

func TestMarkdown(t *testing.T) {
	doc := buildDoc(t, Options{Raw: true, PreviewRows: 3})
	md := doc.Markdown()
	assert.True(t, strings.HasPrefix(md, "# "+Title))
	assert.Contains(t, md, "## "+analysis.SectionProduct)
	assert.Contains(t, md, "### % Aceptación de la campaña según nivel de ingreso")
	assert.Contains(t, md, "| IncomeOrder | Aceptan | Rechazan |")
	assert.Contains(t, md, "Education=PhD: 3 puntos")
}

func TestHTMLToggleLink(t *testing.T) {
	doc := buildDoc(t, Options{})
	var buf bytes.Buffer
	require.NoError(t, doc.HTMLWithToggle(&buf, "/?raw=1"))
	assert.Contains(t, buf.String(), `<a href="/?raw=1">Mostrar datos crudos</a>`)
}
