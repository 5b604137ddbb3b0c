package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/systmms/prospectus/internal/config"
	"github.com/systmms/prospectus/internal/modules"
)

func NewModulesCommand(cfg *config.Config) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List available module types",
		Long:  `Display the built-in module types and the settings each one accepts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := modules.NewRegistry()
			out := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(out, "Built-in Module Types:")
			_, _ = fmt.Fprintln(out, "=====================")

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "TYPE\tKEYS\tDESCRIPTION\n")
			_, _ = fmt.Fprintf(w, "----\t----\t-----------\n")
			for _, moduleType := range registry.SupportedTypes() {
				d := registry.Describe(moduleType)
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", moduleType, strings.Join(d.Keys, ","), d.Summary)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if verbose {
				_, _ = fmt.Fprintln(out, "\nModule Details:")
				_, _ = fmt.Fprintln(out, "===============")
				for _, moduleType := range registry.SupportedTypes() {
					_, _ = fmt.Fprintf(out, "\n%s:\n", moduleType)
					for _, detail := range registry.Describe(moduleType).Details {
						_, _ = fmt.Fprintf(out, "  • %s\n", detail)
					}
				}
			}

			cfg.GetLogger().Debug("listed %d module types", len(registry.SupportedTypes()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed module information")

	return cmd
}
