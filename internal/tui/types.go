package tui

const (
	heroTitle   = "Prompt Analyzer"
	heroTagline = "Write better prompts with AI-powered feedback."
)

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	inputHeight               = 6
)

const (
	inputLabel       = "Enter your prompt"
	inputPlaceholder = "e.g., Write a story about a robot learning to paint..."
	analyzeLabel     = "Analyze Prompt"
	analyzingLabel   = "Analyzing..."
)

type keyHint struct {
	Key         string
	Description string
}

var keyHints = []keyHint{
	{"Ctrl+S", "Analyze"},
	{"Ctrl+O", "Next example"},
	{"Ctrl+L", "Clear"},
	{"PgUp/PgDn", "Scroll results"},
	{"F1", "Toggle help"},
	{"Esc", "Quit"},
}
