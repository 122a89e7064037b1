package report

import (
	"fmt"
	"strings"

	"github.com/csheth/promptlens/internal/analysis"
)

type markdownFormatter struct {
	opts Options
}

func (f *markdownFormatter) Format(result analysis.Result) ([]byte, error) {
	return []byte(RenderMarkdown(result, f.opts)), nil
}

// RenderMarkdown renders result as a Markdown document.
func RenderMarkdown(result analysis.Result, opts Options) string {
	var b strings.Builder
	for _, section := range Sections(result, opts) {
		switch section.Kind {
		case SectionScore:
			fmt.Fprintf(&b, "# %s\n\n", section.Title)
			fmt.Fprintf(&b, "**Score:** %s\n\n", ScoreLine(section.Score, opts.NoEmoji))
			fmt.Fprintf(&b, "**Technique:** `%s`\n", section.Technique)
		case SectionStrengths, SectionIssues:
			fmt.Fprintf(&b, "\n## %s\n\n", section.Title)
			for _, item := range section.Items {
				fmt.Fprintf(&b, "- %s\n", item)
			}
		case SectionSuggestions:
			fmt.Fprintf(&b, "\n## %s\n", section.Title)
			for _, card := range section.Cards {
				fmt.Fprintf(&b, "\n### %s\n\n%s\n", card.Issue, card.Suggestion)
				if card.HasExample() {
					fmt.Fprintf(&b, "\n> **Example:** %s\n", card.Example)
				}
			}
		}
	}
	return b.String()
}
