package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/systmms/prospectus/internal/checks"
	"github.com/systmms/prospectus/internal/config"
	dserrors "github.com/systmms/prospectus/internal/errors"
	"github.com/systmms/prospectus/internal/metrics"
	"github.com/systmms/prospectus/internal/modules"
	"github.com/systmms/prospectus/pkg/module"
)

// Output formats accepted by --output
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

func NewLoadCommand(cfg *config.Config) *cobra.Command {
	var (
		settings []string
		expected string
		name     string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "load <module-type>",
		Short: "Load state with a single module",
		Long: `Configure one module with --set key=value pairs, load its state and print it.

By default only the raw state is printed, making it suitable for scripting.
With --expect the command fails when the loaded state differs.

Examples:
  # First line of a file matching a pattern
  prospectus load grep --set file=VERSION --set pattern='^v[0-9]'

  # Latest tag of a GitLab project
  prospectus load gitlab_tag --set repo=group/project

  # Compare against an expected value and print the result as JSON
  prospectus load gitlab_tag --set repo=group/project --expect v1.2.0 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleType := args[0]
			logger := cfg.GetLogger()

			switch output {
			case OutputText, OutputJSON, OutputYAML:
			default:
				return dserrors.ConfigError{
					Field:      "output",
					Value:      output,
					Message:    "unsupported output format",
					Suggestion: "Use one of: text, json, yaml",
				}
			}

			registry := modules.NewRegistry()
			if !registry.IsSupported(moduleType) {
				return dserrors.ConfigError{
					Field:      "module",
					Value:      moduleType,
					Message:    "unknown module type",
					Suggestion: fmt.Sprintf("Available types: %s", strings.Join(registry.SupportedTypes(), ", ")),
				}
			}

			pairs, err := parseSettings(settings)
			if err != nil {
				return err
			}

			recorder := metrics.NewRecorder()
			m, err := registry.Create(moduleType, cfg.ModuleOptions(cfg.SecretStore(), recorder))
			if err != nil {
				return dserrors.ModuleError(moduleType, "create", err)
			}
			defer func() {
				if err := module.Close(m); err != nil {
					logger.Warn("failed to close %s module: %v", moduleType, err)
				}
			}()
			for _, pair := range pairs {
				if err := m.Configure(pair.key, pair.value); err != nil {
					return dserrors.ModuleError(moduleType, "configure", err)
				}
			}

			if name == "" {
				name = moduleType
			}
			set := checks.CheckSet{{Name: name, Module: m, Expected: expected}}
			logger.Debug("loading %s with %d settings", moduleType, len(pairs))
			results := set.Execute(cmd.Context())
			result := results[0]

			if cfg.MetricsFile != "" {
				if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
					logger.Warn("failed to write metrics to %s: %v", cfg.MetricsFile, err)
				}
			}

			if err := writeResult(cmd, output, result); err != nil {
				return err
			}

			if result.Failed() {
				return dserrors.ModuleError(moduleType, "load", result.Err)
			}
			if changed := results.Changed(); len(changed) > 0 {
				return dserrors.UserError{
					Message:    fmt.Sprintf("%s: state %q does not match expected %q", name, result.Actual, result.Expected),
					Details:    strings.TrimSpace(changed.String()),
					Suggestion: "Update the expected value or the thing being checked",
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&settings, "set", nil, "Module setting as key=value (repeatable)")
	cmd.Flags().StringVar(&expected, "expect", "", "Expected state; the command fails on mismatch")
	cmd.Flags().StringVar(&name, "name", "", "Name for the check in structured output (default module type)")
	cmd.Flags().StringVarP(&output, "output", "o", OutputText, "Output format: text, json, yaml")

	return cmd
}

type setting struct {
	key   string
	value string
}

// parseSettings splits key=value pairs, keeping their order. Values may
// contain further '=' characters.
func parseSettings(raw []string) ([]setting, error) {
	pairs := make([]setting, 0, len(raw))
	for _, item := range raw {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, dserrors.ConfigError{
				Field:      "set",
				Value:      item,
				Message:    "expected key=value",
				Suggestion: "Use --set file=/path/to/state",
			}
		}
		pairs = append(pairs, setting{key: key, value: value})
	}
	return pairs, nil
}

func writeResult(cmd *cobra.Command, output string, result checks.Result) error {
	out := cmd.OutOrStdout()
	switch output {
	case OutputJSON:
		data, err := checks.ResultSet{result}.JSON()
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, data)
		return err
	case OutputYAML:
		data, err := checks.ResultSet{result}.YAML()
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = fmt.Fprint(out, data)
		return err
	default:
		// Raw state only; failures are reported through the returned error
		if result.Failed() {
			return nil
		}
		_, err := fmt.Fprintln(out, result.Actual)
		return err
	}
}
