package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/csheth/promptlens/internal/report"
	"github.com/csheth/promptlens/internal/session"
	"github.com/csheth/promptlens/internal/watch"
)

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var (
		output   string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-analyze a prompt file every time it is saved",
		Long: `Analyze a prompt file, then analyze it again each time it changes.

Saves that land while an analysis is running are folded into a single
follow-up analysis. Press Ctrl+C to stop watching.

Examples:
  promptlens watch prompt.md
  promptlens watch --output markdown drafts/system.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.loadEnvironment(false)
			if err != nil {
				return err
			}
			defer env.close()

			if !cmd.Flags().Changed("output") {
				output = env.cfg.UI.Output
			}
			formatter, err := report.New(output, report.Options{
				NoEmoji: env.cfg.UI.NoEmoji,
				Width:   env.cfg.UI.WrapWidth,
				Style:   env.cfg.UI.Style,
			})
			if err != nil {
				return err
			}

			watcher, err := watch.New(watch.Options{
				Path:       args[0],
				Controller: session.NewController(env.client, env.logger),
				Formatter:  formatter,
				Out:        cmd.OutOrStdout(),
				Logger:     env.logger,
				Debounce:   debounce,
			})
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s against %s (Ctrl+C to stop)\n", args[0], env.client.Endpoint())
			return watcher.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format")
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "quiet period before a save is analyzed")
	return cmd
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
