package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mertens-software-gmbh/todo/internal/date"
	"github.com/mertens-software-gmbh/todo/internal/output"
	"github.com/mertens-software-gmbh/todo/internal/query"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"status"},
	Short:   "Show list overview",
	Long:    `Shows totals, completion counts, overdue tasks, and per-priority and per-category breakdowns.`,
	RunE:    runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}

	overview := query.Summary(cfg.List.Name, st.Tasks(), date.Today())

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, overview)
	}
	if format == output.FormatCompact {
		output.OverviewCompact(os.Stdout, overview)
		return nil
	}

	output.OverviewTable(os.Stdout, overview)
	return nil
}
