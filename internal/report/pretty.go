package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/csheth/promptlens/internal/analysis"
)

type prettyFormatter struct {
	opts Options
}

func (f *prettyFormatter) Format(result analysis.Result) ([]byte, error) {
	width := f.opts.Width
	if width <= 0 {
		width = defaultWrapWidth
	}
	styleOpt := glamour.WithAutoStyle()
	if f.opts.Style != "" && f.opts.Style != "auto" {
		styleOpt = glamour.WithStylePath(f.opts.Style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("init markdown renderer: %w", err)
	}
	out, err := renderer.Render(RenderMarkdown(result, f.opts))
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return []byte(out), nil
}
