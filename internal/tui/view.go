package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/csheth/promptlens/internal/prompt"
	"github.com/csheth/promptlens/internal/session"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	state := m.controller.State()

	parts := []string{m.heroView(), m.inputPanel(state)}
	if state.Phase == session.Failed {
		parts = append(parts, errorBannerStyle.Render(state.Message))
	}
	if state.Phase == session.Succeeded && state.Result != nil {
		parts = append(parts, m.resultsPanel(state))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	parts = append(parts, m.statusBarView())
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	lines := []string{
		heroTitleStyle.Render(heroTitle),
		taglineStyle.Render(heroTagline),
	}
	if endpoint := m.endpoint(); endpoint != "" {
		lines = append(lines, helperStyle.Render(fmt.Sprintf("API: %s  %s", endpoint, m.healthLabel())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *model) healthLabel() string {
	switch {
	case m.tracker.running(jobKindHealth):
		return "checking…"
	case m.healthError:
		return "unreachable"
	case m.health == nil:
		return ""
	case m.health.Healthy():
		if m.health.Version != "" {
			return fmt.Sprintf("online (v%s)", m.health.Version)
		}
		return "online"
	default:
		return m.health.Status
	}
}

func (m *model) inputPanel(state session.State) string {
	counter := counterStyle.Width(m.layout.inputWidth).Render(m.counterText())
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionHeaderStyle.Render(inputLabel),
		m.input.View(),
		counter,
		m.buttonView(state),
	)
}

func (m *model) counterText() string {
	return fmt.Sprintf("%d / %d characters", prompt.Length(m.input.Value()), prompt.MaxChars)
}

func (m *model) buttonView(state session.State) string {
	if state.Busy() {
		return buttonDisabledStyle.Render(m.spinner.View() + " " + analyzingLabel)
	}
	if !m.controller.CanSubmit(m.input.Value()) {
		return buttonDisabledStyle.Render(analyzeLabel)
	}
	return buttonStyle.Render(analyzeLabel)
}

func (m *model) resultsPanel(state session.State) string {
	body := resultsBoxStyle.Render(m.viewport.View())
	meta := fmt.Sprintf("analyzed %s", humanize.Time(state.CompletedAt))
	if !m.viewport.AtBottom() || !m.viewport.AtTop() {
		meta = fmt.Sprintf("%s  •  %.0f%%", meta, m.viewport.ScrollPercent()*100)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, helperStyle.Render(meta))
}

func (m *model) statusBarView() string {
	state := m.controller.State()
	stats := []string{fmt.Sprintf("State %s", state.Phase)}
	if len(m.examples) > 0 {
		stats = append(stats, fmt.Sprintf("Examples %d", len(m.examples)))
	}
	stats = append(stats, m.jobStatusBadges()...)
	stats = append(stats, "F1 help")
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	kinds := []jobKind{jobKindAnalyze, jobKindHealth, jobKindExamples}
	badges := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		snapshot, ok := m.tracker[kind]
		if !ok {
			continue
		}
		switch snapshot.Status {
		case jobStatusRunning:
			badges = append(badges, fmt.Sprintf("%s…", kind))
		case jobStatusFailed:
			badges = append(badges, fmt.Sprintf("%s failed", kind))
		case jobStatusSucceeded:
			if kind == jobKindAnalyze {
				badges = append(badges, fmt.Sprintf("%s %s", kind, snapshot.Duration.Round(10*time.Millisecond)))
			}
		}
	}
	return badges
}

func (m *model) keyLegendView() string {
	rows := []string{sectionHeaderStyle.Render("Keys")}
	const columns = 3
	for i := 0; i < len(keyHints); i += columns {
		end := i + columns
		if end > len(keyHints) {
			end = len(keyHints)
		}
		var cells []string
		for _, hint := range keyHints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}
