package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/edareport/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderOutputPath string
	renderRaw        bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the report as a self-contained HTML page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := buildDocument(cmd.Context(), renderRaw)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := doc.HTML(&buf); err != nil {
			return err
		}
		out := outputPath(renderOutputPath, "report.html")
		if err := utils.EnsureDir(filepath.Dir(out)); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return err
		}
		logger.Debug("report rendered", zap.String("run_id", doc.RunID), zap.Int("bytes", buf.Len()))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutputPath, "output", "o", "", "output HTML file (default <output_dir>/report.html)")
	renderCmd.Flags().BoolVar(&renderRaw, "raw", false, "include the raw data preview and column profile")
}
