package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/promptlens/internal/analysis"
)

const defaultWrapWidth = 76

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	techniqueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e40af")).Background(lipgloss.Color("#dbeafe")).Padding(0, 1)
	strengthsStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#15803d"))
	issuesStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b91c1c"))
	suggestionStyle = lipgloss.NewStyle().Bold(true)
	cardIssueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e5e7eb"))
	cardBodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	cardRuleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	exampleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type textFormatter struct {
	opts Options
}

func (f *textFormatter) Format(result analysis.Result) ([]byte, error) {
	return []byte(RenderText(result, f.opts)), nil
}

// RenderText renders result as styled terminal text. It is what the TUI
// shows in its results area.
func RenderText(result analysis.Result, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = defaultWrapWidth
	}
	blocks := make([]string, 0, 4)
	for _, section := range Sections(result, opts) {
		switch section.Kind {
		case SectionScore:
			blocks = append(blocks, renderScoreBlock(section, opts))
		case SectionStrengths:
			blocks = append(blocks, renderList(strengthsStyle.Render(section.Title), section.Items, width))
		case SectionIssues:
			blocks = append(blocks, renderList(issuesStyle.Render(section.Title), section.Items, width))
		case SectionSuggestions:
			blocks = append(blocks, renderCards(section, width))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderScoreBlock(section Section, opts Options) string {
	score := lipgloss.NewStyle().Bold(true).Foreground(section.Tier.Color()).
		Render(ScoreLine(section.Score, opts.NoEmoji))
	header := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render(section.Title), "   ", score)
	return header + "\n" + techniqueStyle.Render("Technique: "+section.Technique)
}

func renderList(title string, items []string, width int) string {
	var b strings.Builder
	b.WriteString(title)
	for _, item := range items {
		b.WriteRune('\n')
		body := wordwrap.String(item, width-4)
		b.WriteString("  • ")
		b.WriteString(strings.TrimPrefix(indent.String(body, 4), "    "))
	}
	return b.String()
}

func renderCards(section Section, width int) string {
	var b strings.Builder
	b.WriteString(suggestionStyle.Render(section.Title))
	for _, card := range section.Cards {
		lines := []string{
			cardIssueStyle.Render(wordwrap.String(card.Issue, width-4)),
			cardBodyStyle.Render(wordwrap.String(card.Suggestion, width-4)),
		}
		if card.HasExample() {
			lines = append(lines, exampleStyle.Render(wordwrap.String("Example: "+card.Example, width-4)))
		}
		b.WriteString("\n\n")
		b.WriteString(withRule(strings.Join(lines, "\n")))
	}
	return b.String()
}

func withRule(block string) string {
	lines := strings.Split(block, "\n")
	rule := cardRuleStyle.Render("┃")
	for i, line := range lines {
		lines[i] = rule + " " + line
	}
	return strings.Join(lines, "\n")
}
