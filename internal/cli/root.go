// Package cli wires the promptlens commands: the interactive analyzer and
// its one-shot, watch and diagnostic companions.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/promptlens/internal/analysis"
	"github.com/csheth/promptlens/internal/config"
	"github.com/csheth/promptlens/internal/logging"
)

type rootOptions struct {
	configPath string
	apiURL     string
	verbose    bool
	noEmoji    bool
	logFile    string
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "promptlens",
		Short: "Score and critique prompts against an analysis service",
		Long: `PromptLens sends a prompt to an analysis service and shows the score,
detected technique, strengths, issues and suggestions it returns.

Run without a subcommand to open the interactive analyzer.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.RunE = newTUIRunner(opts)
	addTUIFlags(rootCmd)

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "analysis service base URL (overrides env and config)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug-level diagnostics")
	rootCmd.PersistentFlags().BoolVar(&opts.noEmoji, "no-emoji", false, "use ASCII symbols instead of emoji")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write diagnostics to this file")

	rootCmd.AddCommand(newAnalyzeCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))
	rootCmd.AddCommand(newHealthCommand(opts))
	rootCmd.AddCommand(newExamplesCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "promptlens %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// environment is everything a command needs once flags, env and config
// files have been merged.
type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	client analysis.Client
}

// loadEnvironment resolves configuration and builds the logger and client.
// Interactive sessions always log to a file so the terminal stays clean.
func (o *rootOptions) loadEnvironment(interactive bool) (*environment, error) {
	cfg, err := config.NewLoader().LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.apiURL != "" {
		cfg.API.BaseURL = o.apiURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--api-url: %w", err)
		}
	}
	if o.noEmoji {
		cfg.UI.NoEmoji = true
	}
	if o.logFile != "" {
		cfg.Logging.File = o.logFile
	}

	logOpts := logging.Options{Level: cfg.Logging.Level, Verbose: o.verbose}
	if interactive || cfg.Logging.File != "" {
		logOpts.File = cfg.LogFile()
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	client := analysis.New(analysis.Config{BaseURL: cfg.API.BaseURL})
	logger.Debug("configuration resolved",
		zap.String("endpoint", client.Endpoint()),
		zap.Bool("no_emoji", cfg.UI.NoEmoji),
		zap.String("output", cfg.UI.Output))
	return &environment{cfg: cfg, logger: logger, client: client}, nil
}

func (e *environment) close() {
	_ = e.logger.Sync()
}
