package tui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/promptlens/internal/analysis"
	"github.com/csheth/promptlens/internal/prompt"
	"github.com/csheth/promptlens/internal/report"
	"github.com/csheth/promptlens/internal/session"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Client        analysis.Client
	Logger        *zap.Logger
	NoEmoji       bool
	InitialPrompt string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	input := textarea.New()
	input.Placeholder = inputPlaceholder
	// The textarea measures display width and caps rows, so the limit is
	// applied to runes by setPrompt instead.
	input.CharLimit = 0
	input.MaxHeight = 0
	input.ShowLineNumbers = false
	input.SetWidth(76)
	input.SetHeight(inputHeight)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 12)
	vp.MouseWheelEnabled = true

	m := &model{
		config:     config,
		input:      input,
		spinner:    spin,
		viewport:   vp,
		layout:     newPageLayout(),
		controller: session.NewController(config.Client, config.Logger),
		jobs:       newJobBus(config.Logger),
		tracker:    jobTracker{},
		exampleIdx: -1,
	}
	if config.InitialPrompt != "" {
		m.setPrompt(config.InitialPrompt)
	}
	m.infoMessage = m.idleHint()
	return m
}

type model struct {
	config     Config
	input      textarea.Model
	spinner    spinner.Model
	viewport   viewport.Model
	layout     pageLayout
	controller *session.Controller
	jobs       *jobBus
	tracker    jobTracker

	examples    []analysis.ExamplePrompt
	exampleIdx  int
	health      *analysis.HealthStatus
	healthError bool

	infoMessage   string
	helpVisible   bool
	viewportDirty bool
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.config.Client != nil {
		cmds = append(cmds,
			m.jobs.Start(jobKindHealth, healthJob(m.config.Client)),
			m.jobs.Start(jobKindExamples, examplesJob(m.config.Client)),
		)
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.controller.State().Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.controller.State().Phase == session.Succeeded {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.input.SetWidth(m.layout.inputWidth)
		m.viewport.Width = m.layout.viewportWidth
		m.viewport.Height = m.layout.viewportHeight
		m.markViewportDirty()
		return m, nil
	case jobSignalMsg:
		m.tracker.record(msg.Snapshot)
		return m, nil
	case jobResultEnvelope:
		m.tracker.record(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case analysisResultMsg:
		state := m.controller.Complete(msg.outcome)
		switch state.Phase {
		case session.Succeeded:
			m.infoMessage = fmt.Sprintf("Scored %s. Edit and press Ctrl+S to re-run.", report.ScoreLine(state.Result.Score, m.config.NoEmoji))
			m.viewport.GotoTop()
		case session.Failed:
			m.infoMessage = "Edit your prompt or press Ctrl+S to try again."
		}
		m.markViewportDirty()
		return m, nil
	case healthResultMsg:
		if msg.err != nil {
			m.healthError = true
			m.config.Logger.Warn("health probe failed", zap.String("endpoint", m.endpoint()), zap.Error(msg.err))
			return m, nil
		}
		status := msg.status
		m.health = &status
		m.healthError = false
		return m, nil
	case examplesResultMsg:
		if msg.err != nil {
			m.config.Logger.Warn("examples unavailable", zap.Error(msg.err))
			return m, nil
		}
		m.examples = msg.examples
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+s", "alt+enter":
		return m, m.submit()
	case "ctrl+o":
		m.nextExample()
		return m, nil
	case "ctrl+l":
		m.input.Reset()
		m.infoMessage = m.idleHint()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	case "f1":
		m.helpVisible = !m.helpVisible
		return m, nil
	}
	// The input stays editable while a request is outstanding.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	if prompt.Length(m.input.Value()) > prompt.MaxChars {
		m.setPrompt(m.input.Value())
	}
	return m, cmd
}

// submit hands the current text to the controller. Blank input and
// overlapping submissions produce no command at all.
func (m *model) submit() tea.Cmd {
	req, ok := m.controller.Begin(m.input.Value())
	if !ok {
		return nil
	}
	m.infoMessage = analyzingLabel
	m.markViewportDirty()
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindAnalyze, analyzeJob(m.controller, req)))
}

func (m *model) nextExample() {
	if len(m.examples) == 0 {
		m.infoMessage = "No example prompts available from the analysis service."
		return
	}
	m.exampleIdx = (m.exampleIdx + 1) % len(m.examples)
	example := m.examples[m.exampleIdx]
	m.setPrompt(example.Prompt)
	m.infoMessage = fmt.Sprintf("Example %d/%d: %s (expected score %d)", m.exampleIdx+1, len(m.examples), example.Title, example.ExpectedScore)
}

// setPrompt replaces the input text, dropping anything past the limit.
func (m *model) setPrompt(text string) {
	m.input.SetValue(prompt.Truncate(editableText(text)))
}

// editableText applies the textarea's own rewrites up front so the value
// it stores is exactly the value that was measured: tabs become four
// spaces, carriage returns become line feeds, and other control runes are
// dropped.
func editableText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || (r != '\n' && unicode.IsControl(r)) {
			return -1
		}
		return r
	}, text)
}

func (m *model) idleHint() string {
	if m.config.Client == nil {
		return "No analysis endpoint configured."
	}
	return "Type a prompt and press Ctrl+S to analyze it."
}

func (m *model) endpoint() string {
	if m.config.Client == nil {
		return ""
	}
	return m.config.Client.Endpoint()
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	m.viewportDirty = false
	state := m.controller.State()
	if state.Phase != session.Succeeded || state.Result == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(report.RenderText(*state.Result, report.Options{
		NoEmoji: m.config.NoEmoji,
		Width:   m.layout.viewportWidth - 2,
	}))
}
