package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	inputWidth     int
	viewportWidth  int
	viewportHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		inputWidth:     76,
		viewportWidth:  76,
		viewportHeight: 12,
	}
}

// Update resizes the input and the results viewport for a window of the
// given size. Everything else on the page has a fixed height.
func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.inputWidth = innerWidth
	l.viewportWidth = innerWidth
	const chrome = 14
	usable := height - chrome - inputHeight
	if usable < 6 {
		usable = 6
	}
	l.viewportHeight = usable
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	heroAccentColor        = lipgloss.Color("#2563eb")
	heroSecondaryTextColor = lipgloss.Color("#64748b")

	heroTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	taglineStyle        = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	counterStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Align(lipgloss.Right)
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#2563eb")).Padding(0, 2)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb")).Background(lipgloss.Color("#9ca3af")).Padding(0, 2)
	errorBannerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c")).Background(lipgloss.Color("#fef2f2")).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#fecaca")).Padding(0, 1)
	resultsBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	statusBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
)

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
