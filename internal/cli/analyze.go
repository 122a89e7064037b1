package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/promptlens/internal/prompt"
	"github.com/csheth/promptlens/internal/report"
	"github.com/csheth/promptlens/internal/session"
)

// errAnalysisFailed is what the user sees for any failed request; details
// go to the diagnostic log.
var errAnalysisFailed = errors.New(session.GenericFailure)

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	var (
		file   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "analyze [prompt]",
		Short: "Analyze a single prompt and print the critique",
		Long: `Send one prompt to the analysis service and print the result.

The prompt comes from the argument, from --file, or from stdin, in that
order. Prompts longer than 2000 characters are truncated.

Examples:
  promptlens analyze "Write a story about a robot learning to paint"
  promptlens analyze --file prompt.md --output markdown
  cat prompt.txt | promptlens analyze --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := resolvePrompt(cmd, args, file)
			if err != nil {
				return err
			}
			if prompt.IsBlank(src.Text) {
				return fmt.Errorf("%w: pass text as an argument, with --file, or on stdin", prompt.ErrBlankPrompt)
			}

			env, err := opts.loadEnvironment(false)
			if err != nil {
				return err
			}
			defer env.close()
			if src.Truncated {
				env.logger.Warn("prompt truncated", zap.Int("limit", prompt.MaxChars))
			}

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

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			controller := session.NewController(env.client, env.logger)
			state, _ := controller.Submit(ctx, src.Text)
			if state.Phase != session.Succeeded {
				return errAnalysisFailed
			}
			body, err := formatter.Format(*state.Result)
			if err != nil {
				return fmt.Errorf("render result: %w", err)
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(body); err != nil {
				return err
			}
			if len(body) > 0 && body[len(body)-1] != '\n' {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the prompt from a .txt, .md or .pdf file")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format ("+strings.Join(report.Formats, ", ")+")")
	return cmd
}

// resolvePrompt picks the prompt source: argument, then --file, then stdin
// when it is not an interactive terminal.
func resolvePrompt(cmd *cobra.Command, args []string, file string) (prompt.Source, error) {
	switch {
	case len(args) == 1:
		return prompt.FromText("", args[0]), nil
	case file != "":
		return prompt.LoadFile(file)
	}
	in := cmd.InOrStdin()
	if isTerminal(in) {
		return prompt.Source{}, nil
	}
	return prompt.Read(in)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
