package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/KaramelBytes/edareport/internal/utils"
	"gopkg.in/yaml.v3"
)

// Format selects a spec encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, yaml or json)", s)
	}
}

// WriteSpecs encodes the artifacts in the given format.
func WriteSpecs(w io.Writer, arts []*analysis.Artifact, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(arts); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		b, err := utils.PrettyJSON(arts)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatText, "":
		return writeText(w, arts)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, arts []*analysis.Artifact) error {
	section := ""
	for i, a := range arts {
		if a.Section != section {
			section = a.Section
			if _, err := fmt.Fprintf(w, "%s\n", section); err != nil {
				return err
			}
		}
		kind := "table"
		if a.Chart != nil {
			kind = string(a.Chart.Kind)
		}
		if _, err := fmt.Fprintf(w, "  %2d. %-28s %-13s %s\n", i+1, a.ID, kind, strings.TrimSpace(a.Title())); err != nil {
			return err
		}
	}
	return nil
}
