package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/promptlens/internal/prompt"
	"github.com/csheth/promptlens/internal/tui"
)

func addTUIFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-alt-screen", false, "disable the alternate screen buffer")
	cmd.Flags().String("prompt-file", "", "prefill the input from a .txt, .md or .pdf file")
}

func newTUIRunner(opts *rootOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := opts.loadEnvironment(true)
		if err != nil {
			return err
		}
		defer env.close()

		initial := ""
		if path, _ := cmd.Flags().GetString("prompt-file"); path != "" {
			src, err := prompt.LoadFile(path)
			if err != nil {
				return err
			}
			if src.Truncated {
				env.logger.Warn("prompt file truncated", zap.String("path", src.Path), zap.Int("limit", prompt.MaxChars))
			}
			initial = src.Text
		}

		programOpts := []tea.ProgramOption{}
		noAltScreen, _ := cmd.Flags().GetBool("no-alt-screen")
		if env.cfg.UI.AltScreen && !noAltScreen {
			programOpts = append(programOpts, tea.WithAltScreen())
		}
		program := tea.NewProgram(
			tui.New(tui.Config{
				Client:        env.client,
				Logger:        env.logger,
				NoEmoji:       env.cfg.UI.NoEmoji,
				InitialPrompt: initial,
			}),
			programOpts...,
		)

		env.logger.Info("interactive session started", zap.String("endpoint", env.client.Endpoint()))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("program error: %w", err)
		}
		env.logger.Info("interactive session ended")
		return nil
	}
}
