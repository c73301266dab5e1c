package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mossgate/crosslink/internal/config"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List registered domains and their path templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		names := make([]string, 0, len(cfg.Domains))
		for name := range cfg.Domains {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			dc := cfg.Domains[name]
			fmt.Fprintf(os.Stderr, "  %-14s %-20s %s\n", name, dc.File, dc.PathTemplate)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}
