package cmd

import (
	"fmt"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	summaryPlain   bool
	summaryProfile bool
	summaryWidth   int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the report to the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		doc, err := documentFor(cmd.Context(), t, false)
		if err != nil {
			return err
		}
		md := doc.Markdown()
		if summaryProfile {
			prof, err := analysis.ProfileTable(t, cfg.PreviewRows)
			if err != nil {
				return err
			}
			md += "\n" + prof.Markdown()
		}
		if summaryPlain {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(summaryWidth),
		)
		if err != nil {
			return fmt.Errorf("init markdown renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&summaryPlain, "plain", false, "print raw markdown without terminal styling")
	summaryCmd.Flags().BoolVar(&summaryProfile, "profile", false, "append the dataset column profile")
	summaryCmd.Flags().IntVar(&summaryWidth, "width", 100, "word wrap width")
}
