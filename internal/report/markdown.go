package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/edareport/internal/analysis"
)

// Markdown renders the document for the terminal. Charts are replaced by
// their backing data as pipe tables.
func (d *Document) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	for _, w := range d.Warnings {
		fmt.Fprintf(&b, "> ⚠ %s\n\n", w)
	}
	if d.Image != nil {
		fmt.Fprintf(&b, "![%s](%s)\n\n", d.Image.Path, d.Image.Path)
	}
	for _, p := range d.Intro {
		b.WriteString(p + "\n\n")
	}
	if d.Raw != nil {
		fmt.Fprintf(&b, "### %s\n\n", rawHeading)
		b.WriteString(analysis.MarkdownTable(d.Raw.Header, d.Raw.Rows))
		b.WriteString("\n")
	}
	for _, s := range d.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Heading)
		for _, blk := range s.Blocks {
			writeArtifact(&b, blk.Artifact)
		}
	}
	return b.String()
}

func writeArtifact(b *strings.Builder, a *analysis.Artifact) {
	if a.Chart != nil {
		fmt.Fprintf(b, "### %s\n\n", strings.TrimSpace(a.Chart.Title))
	}
	if a.Prompt != "" {
		fmt.Fprintf(b, "`%s`\n\n", a.Prompt)
	}
	switch {
	case len(a.Tables) > 0:
		for _, st := range a.Tables {
			b.WriteString(analysis.FrameMarkdown(st.Frame))
			b.WriteString("\n")
		}
	case len(a.Data) > 0:
		for _, f := range a.Data {
			if f.Name != "" {
				fmt.Fprintf(b, "_%s_\n\n", f.Name)
			}
			b.WriteString(analysis.FrameMarkdown(f))
			b.WriteString("\n")
		}
	case a.Chart != nil && len(a.Chart.Panels) > 0:
		for _, p := range a.Chart.Panels {
			n := 0
			for _, s := range p.Series {
				n += len(s.Points)
			}
			fmt.Fprintf(b, "- %s: %d puntos\n", p.Title, n)
		}
		b.WriteString("\n")
	}
	for _, c := range a.Commentary {
		b.WriteString(c + "\n\n")
	}
}
