package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/report.html.tmpl
var pageTemplate string

var page = template.Must(template.New("report").Funcs(template.FuncMap{
	"markdown":  markdownHTML,
	"svg":       func(b []byte) template.HTML { return template.HTML(b) },
	"cell":      formatCell,
	"cellStyle": cellStyle,
}).Parse(pageTemplate))

type pageData struct {
	*Document
	RawToggle  string
	RawHeading string
	// RawURL flips the raw preview when served.
	RawURL string
}

// HTML writes the document as a standalone page.
func (d *Document) HTML(w io.Writer) error {
	return d.HTMLWithToggle(w, "")
}

// HTMLWithToggle writes the page with a link that toggles the raw preview.
// An empty url hides the link.
func (d *Document) HTMLWithToggle(w io.Writer, url string) error {
	data := pageData{Document: d, RawToggle: rawToggleLabel, RawHeading: rawHeading, RawURL: url}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// markdownHTML converts commentary markdown into trusted HTML. The source is
// the report's own static text.
func markdownHTML(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(src), p, r))
}

func formatCell(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func cellStyle(st analysis.StyledTable, i, j int) template.CSS {
	if i >= len(st.Background) || j >= len(st.Background[i]) {
		return ""
	}
	return template.CSS(fmt.Sprintf("background-color: %s; color: %s", st.Background[i][j], st.Foreground[i][j]))
}
