package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/promptlens/internal/report"
)

const probeTimeout = 10 * time.Second

func newHealthCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the analysis service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.loadEnvironment(false)
			if err != nil {
				return err
			}
			defer env.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
			defer cancel()
			started := time.Now()
			status, err := env.client.Health(ctx)
			if err != nil {
				env.logger.Error("health probe failed", zap.String("endpoint", env.client.Endpoint()), zap.Error(err))
				return fmt.Errorf("analysis service at %s is unreachable", env.client.Endpoint())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Endpoint: %s\n", env.client.Endpoint())
			fmt.Fprintf(out, "Status:   %s (%s)\n", status.Status, time.Since(started).Round(time.Millisecond))
			if status.Version != "" {
				fmt.Fprintf(out, "Version:  %s\n", status.Version)
			}
			if status.Redis != "" {
				fmt.Fprintf(out, "Redis:    %s\n", status.Redis)
			}
			if status.Claude != "" {
				fmt.Fprintf(out, "Claude:   %s\n", status.Claude)
			}
			if !status.Healthy() {
				return fmt.Errorf("analysis service reports %q", status.Status)
			}
			return nil
		},
	}
}

func newExamplesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List the example prompts published by the analysis service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.loadEnvironment(false)
			if err != nil {
				return err
			}
			defer env.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
			defer cancel()
			examples, err := env.client.Examples(ctx)
			if err != nil {
				env.logger.Error("examples request failed", zap.Error(err))
				return fmt.Errorf("could not load examples from %s", env.client.Endpoint())
			}

			out := cmd.OutOrStdout()
			if len(examples) == 0 {
				fmt.Fprintln(out, "The analysis service published no examples.")
				return nil
			}
			for i, example := range examples {
				tier := report.TierFor(example.ExpectedScore)
				fmt.Fprintf(out, "%d. %s  %s expected %d/10\n", i+1, example.Title, tier.Symbol(env.cfg.UI.NoEmoji), example.ExpectedScore)
				fmt.Fprintf(out, "   %s\n", strings.ReplaceAll(strings.TrimSpace(example.Prompt), "\n", "\n   "))
			}
			return nil
		},
	}
}
