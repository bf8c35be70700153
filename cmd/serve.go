package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/edareport/internal/dataset"
	"github.com/KaramelBytes/edareport/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report as a local dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.ListenAddr
		if cmd.Flags().Changed("addr") && serveAddr != "" {
			addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cache := dataset.NewCache(datasetOptions())
		// Fail fast on a bad dataset instead of on the first request.
		if _, err := cache.Get(cfg.DataPath); err != nil {
			return err
		}
		srv := server.New(server.Config{
			Addr:        addr,
			DataPath:    cfg.DataPath,
			ImagePath:   cfg.ImagePath,
			PreviewRows: cfg.PreviewRows,
			Chart:       chartOptions(),
			Reload:      serveReload,
		}, cache, logger)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8501)")
	serveCmd.Flags().BoolVar(&serveReload, "reload", false, "re-read the dataset on every request")
}
