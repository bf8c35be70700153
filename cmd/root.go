package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cfgpkg "github.com/KaramelBytes/edareport/internal/config"
	"github.com/KaramelBytes/edareport/internal/dataset"
	"github.com/KaramelBytes/edareport/internal/logging"
	"github.com/KaramelBytes/edareport/internal/render"
	"github.com/KaramelBytes/edareport/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	flagData  string
	flagImage string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "edareport",
	Short: "Exploratory report for the iFood pilot campaign dataset",
	Long: `edareport loads the marketing campaign dataset, computes the fixed set of
exploratory analyses and presents them as an HTML report, a local dashboard,
a workbook or a terminal summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edareport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "dataset path, CSV or XLSX (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagImage, "image", "", "hero image path (overrides config)")

	// Hooks are wired here: loadConfig reads rootCmd's flags.
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}
}

func setup(cmd *cobra.Command, args []string) error {
	l, err := logging.New(debug)
	if err != nil {
		return err
	}
	logger = l
	return loadConfig()
}

func loadConfig() error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data") && flagData != "" {
		cfg.DataPath = flagData
	}
	if f.Changed("image") && flagImage != "" {
		cfg.ImagePath = flagImage
	}
	logger.Debug("config loaded",
		zap.String("data", cfg.DataPath),
		zap.String("image", cfg.ImagePath),
		zap.Int("preview_rows", cfg.PreviewRows))
	return nil
}

func datasetOptions() dataset.Options {
	return dataset.Options{Delimiter: cfg.DelimiterRune(), Sheet: cfg.Sheet}
}

func chartOptions() render.Options {
	return render.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight}
}

func loadTable() (*dataset.Table, error) {
	t, err := dataset.Load(cfg.DataPath, datasetOptions())
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		zap.String("path", t.Path),
		zap.Int("rows", t.Rows()),
		zap.Int("columns", len(t.Columns())))
	if n := t.AgeGroupMismatches(); n > 0 {
		logger.Debug("source age groups differ from age thresholds", zap.Int("rows", n))
	}
	return t, nil
}

func buildDocument(ctx context.Context, raw bool) (*report.Document, error) {
	t, err := loadTable()
	if err != nil {
		return nil, err
	}
	return documentFor(ctx, t, raw)
}

func documentFor(ctx context.Context, t *dataset.Table, raw bool) (*report.Document, error) {
	doc, err := report.Build(ctx, t, report.Options{
		ImagePath:   cfg.ImagePath,
		Raw:         raw,
		PreviewRows: cfg.PreviewRows,
		Chart:       chartOptions(),
	})
	if err != nil {
		return nil, err
	}
	for _, w := range doc.Warnings {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
	}
	return doc, nil
}

// outputPath resolves a bare file name against the configured output dir.
func outputPath(flagValue, def string) string {
	if flagValue != "" {
		return flagValue
	}
	return filepath.Join(cfg.OutputDir, def)
}
