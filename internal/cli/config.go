package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/csheth/promptlens/internal/config"
)

func newConfigCommand(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect promptlens configuration",
	}
	configCmd.AddCommand(newConfigShowCommand(opts))
	configCmd.AddCommand(newConfigPathCommand())
	return configCmd
}

func newConfigShowCommand(opts *rootOptions) *cobra.Command {
	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the configuration after merging defaults, config files,
.env, environment variables and flags.`,
		Example: `  promptlens config show
  promptlens config show --format json
  promptlens --api-url https://analyzer.example.com config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.loadEnvironment(false)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer env.close()

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				data, err := json.MarshalIndent(env.cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(env.cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}
			return nil
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")
	return showCmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration file search paths (highest priority first):")
			for i, path := range config.SearchPaths() {
				state := "not found"
				if info, err := os.Stat(path); err == nil && !info.IsDir() {
					state = "exists"
				}
				fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, path, state)
			}
			fmt.Fprintf(out, "\nEndpoint variables, highest priority first: %s\n", strings.Join(config.BaseURLEnvVars, ", "))
		},
	}
}
