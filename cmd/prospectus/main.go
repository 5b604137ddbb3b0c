package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/systmms/prospectus/cmd/prospectus/commands"
	"github.com/systmms/prospectus/internal/config"
	dserrors "github.com/systmms/prospectus/internal/errors"
	"github.com/systmms/prospectus/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", dserrors.SimplifyError(err))
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		noColor        bool
		debug          bool
		nonInteractive bool
		tokenFile      string
		metricsFile    string
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "prospectus",
		Short: "Load the current state of things from files and remote APIs",
		Long: `prospectus loads a single piece of state, such as the first matching line
of a local file or the latest tag of a GitLab project, and compares it with
an expected value.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			// Update config with parsed values
			cfg.Logger = logger
			cfg.Debug = debug
			cfg.NonInteractive = nonInteractive
			cfg.TokenFile = tokenFile
			cfg.MetricsFile = metricsFile
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt for a missing API token")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "GitLab API token file (default ~/.gitlab_api)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write load metrics to this file in Prometheus textfile format")

	// Add commands
	rootCmd.AddCommand(
		commands.NewLoadCommand(cfg),
		commands.NewModulesCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer func() { _ = cfg.GetLogger().Sync() }()

	return rootCmd.ExecuteContext(ctx)
}
