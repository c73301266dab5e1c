package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mossgate/crosslink/internal/config"
	"github.com/mossgate/crosslink/internal/dataset"
	"github.com/mossgate/crosslink/internal/history"
	"github.com/mossgate/crosslink/internal/integrity"
	"github.com/mossgate/crosslink/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate cross-domain relationship integrity",
	Long: `Loads every domain collection, walks each entity's relationship edges and
reports dangling references, stale cached paths, missing backlinks and
structural problems.

Exit codes: 0 no errors (warnings allowed), 1 at least one error-severity
finding, 2 fatal load failure.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("domain", "", "validate only this domain's outgoing edges")
	validateCmd.Flags().Bool("details", false, "print every finding instead of capped examples")
	validateCmd.Flags().String("export", "", "write the full report as JSON to this path")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	domain, _ := cmd.Flags().GetString("domain")
	details, _ := cmd.Flags().GetBool("details")
	export, _ := cmd.Flags().GetString("export")

	cfg := config.Load()
	printer := report.New(os.Stderr)
	printer.Details = details

	rep, err := runValidation(cfg, domain)
	if err != nil {
		printer.Error(err.Error())
		os.Exit(2)
	}

	printer.Render(rep)

	if export != "" {
		if err := report.Export(rep, export); err != nil {
			printer.Error(err.Error())
			os.Exit(2)
		}
		printer.Info("report exported to " + export)
	}

	recordRun(cmd.Context(), cfg, domain, rep, printer)

	if code := rep.ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}

// runValidation executes one full load → index → validate → aggregate pass.
// The returned error is reserved for fatal load conditions; data problems
// come back inside the report.
func runValidation(cfg config.Config, domain string) (*report.Report, error) {
	if domain != "" {
		if _, ok := cfg.Domains[domain]; !ok {
			return nil, fmt.Errorf("unknown domain %q", domain)
		}
	}

	relations := integrity.DefaultRelations()
	if cfg.RelationsFile != "" {
		var err error
		relations, err = integrity.LoadRelations(cfg.RelationsFile)
		if err != nil {
			return nil, err
		}
	}

	ds, err := dataset.Load(cfg.DataDir, cfg.Domains)
	if err != nil {
		return nil, err
	}

	idx := dataset.BuildIndex(ds, cfg.Domains)
	res := integrity.Run(ds, idx, integrity.Options{Domain: domain, Relations: relations})
	return report.Build(res, cfg.MaxExamples), nil
}

// recordRun appends the run summary to the history database when one is
// configured. History failures never change the validation outcome.
func recordRun(ctx context.Context, cfg config.Config, domain string, rep *report.Report, printer *report.Printer) {
	if cfg.HistoryDB == "" {
		return
	}
	store, err := history.Open(ctx, cfg.HistoryDB)
	if err != nil {
		printer.Error("history: " + err.Error())
		return
	}
	defer store.Close()

	_, err = store.Record(ctx, history.Run{
		Domain:   domain,
		Entities: rep.EntitiesScanned,
		Edges:    rep.EdgesScanned,
		Errors:   rep.Errors,
		Warnings: rep.Warnings,
		Passed:   rep.Passed,
	})
	if err != nil {
		printer.Error("history: " + err.Error())
	}
}
