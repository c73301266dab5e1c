package cmd

import (
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mossgate/crosslink/internal/config"
	"github.com/mossgate/crosslink/internal/dataset"
	"github.com/mossgate/crosslink/internal/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate whenever a domain file changes",
	Long: `Runs an initial validation, then watches the dataset directory and re-runs
the full check after every settled change to a domain file. Intended for
data-authoring sessions; interrupt (Ctrl-C) to stop.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("domain", "", "validate only this domain's outgoing edges")
	watchCmd.Flags().Bool("details", false, "print every finding instead of capped examples")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	domain, _ := cmd.Flags().GetString("domain")
	details, _ := cmd.Flags().GetBool("details")

	cfg := config.Load()
	printer := report.New(os.Stderr)
	printer.Details = details

	revalidate := func() {
		rep, err := runValidation(cfg, domain)
		if err != nil {
			// In watch mode a broken load is a state to recover from, not a
			// reason to exit; the next save retriggers.
			printer.Error(err.Error())
			return
		}
		printer.Render(rep)
		recordRun(cmd.Context(), cfg, domain, rep, printer)
	}

	revalidate()

	var files []string
	for _, dc := range cfg.Domains {
		files = append(files, dc.File)
	}
	watcher, err := dataset.NewWatcher(cfg.DataDir, files)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	printer.Info("watching " + cfg.DataDir + " — Ctrl-C to stop")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	for {
		select {
		case change, ok := <-watcher.Changes:
			if !ok {
				return nil
			}
			printer.Info(filepath.Base(change.File) + " changed, revalidating")
			revalidate()
		case <-interrupt:
			return nil
		}
	}
}
