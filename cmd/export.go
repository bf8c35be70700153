package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/KaramelBytes/edareport/internal/export"
	"github.com/KaramelBytes/edareport/internal/utils"
	"github.com/spf13/cobra"
)

var exportOutputPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every artifact table to an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		arts, err := analysis.BuildAll(cmd.Context(), t)
		if err != nil {
			return err
		}
		out := outputPath(exportOutputPath, "report.xlsx")
		if err := utils.EnsureDir(filepath.Dir(out)); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := export.WriteWorkbook(arts, out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote workbook to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "", "output XLSX file (default <output_dir>/report.xlsx)")
}
