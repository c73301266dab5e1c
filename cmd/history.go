package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mossgate/crosslink/internal/config"
	"github.com/mossgate/crosslink/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded validation runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := config.Load()
	if cfg.HistoryDB == "" {
		return fmt.Errorf("no history database configured (set history_db in .crosslink.yaml)")
	}

	store, err := history.Open(cmd.Context(), cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs recorded")
		return nil
	}

	for _, r := range runs {
		verdict := "FAIL"
		if r.Passed {
			verdict = "PASS"
		}
		domain := r.Domain
		if domain == "" {
			domain = "all"
		}
		fmt.Fprintf(os.Stderr, "  %s  %-4s  %-12s  %5d entities  %5d edges  %3d errors  %3d warnings\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), verdict, domain, r.Entities, r.Edges, r.Errors, r.Warnings)
	}
	return nil
}
