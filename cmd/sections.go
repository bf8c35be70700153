package cmd

import (
	"bytes"
	"fmt"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/KaramelBytes/edareport/internal/export"
	"github.com/KaramelBytes/edareport/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sectionsFormat     string
	sectionsOutputPath string
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List report artifacts or export their chart specs and tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(sectionsFormat)
		if err != nil {
			return err
		}
		t, err := loadTable()
		if err != nil {
			return err
		}
		arts, err := analysis.BuildAll(cmd.Context(), t)
		if err != nil {
			return err
		}
		if sectionsOutputPath == "" {
			return export.WriteSpecs(cmd.OutOrStdout(), arts, format)
		}
		var buf bytes.Buffer
		if err := export.WriteSpecs(&buf, arts, format); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(sectionsOutputPath, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d artifacts to %s\n", len(arts), sectionsOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.Flags().StringVar(&sectionsFormat, "format", "text", "output format: text|yaml|json")
	sectionsCmd.Flags().StringVarP(&sectionsOutputPath, "output", "o", "", "write to file instead of stdout")
}
