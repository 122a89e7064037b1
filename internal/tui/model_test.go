package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/promptlens/internal/analysis"
	"github.com/csheth/promptlens/internal/prompt"
	"github.com/csheth/promptlens/internal/session"
)

func sampleResult() analysis.Result {
	return analysis.Result{
		Score:     9,
		Technique: "Few-shot",
		Strengths: []string{"Clear objective"},
		Issues:    []string{"No output format"},
		Suggestions: []analysis.Suggestion{
			{Issue: "Vague audience", Suggestion: "Name the reader", Example: "Write for new hires"},
			{Issue: "No length", Suggestion: "Give a word budget"},
		},
	}
}

func press(m *model, key tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

func typeText(m *model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func sizedModel(t *testing.T, client analysis.Client) *model {
	t.Helper()
	m := newTestModel(t, client)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 80})
	return m
}

func complete(m *model, result analysis.Result, err error) {
	m.Update(analysisResultMsg{outcome: session.Outcome{
		RequestID: m.controller.State().RequestID,
		Result:    result,
		Err:       err,
	}})
}

func TestSubmitBlankPromptDoesNothing(t *testing.T) {
	client := &fakeClient{}
	m := sizedModel(t, client)
	typeText(m, "   ")

	if cmd := press(m, tea.KeyCtrlS); cmd != nil {
		t.Fatalf("blank submission should not produce a command, got %T", cmd)
	}
	if phase := m.controller.State().Phase; phase != session.Idle {
		t.Fatalf("phase changed on blank submit: %v", phase)
	}
	if m.controller.CanSubmit(m.input.Value()) {
		t.Fatal("button should be disabled for whitespace-only input")
	}
}

func TestSubmitWhileInFlightIsIgnored(t *testing.T) {
	client := &fakeClient{}
	m := sizedModel(t, client)
	typeText(m, "Write a haiku")

	if cmd := press(m, tea.KeyCtrlS); cmd == nil {
		t.Fatal("first submission should start the analyze job")
	}
	if !m.controller.State().Busy() {
		t.Fatal("controller should be in flight")
	}
	if !strings.Contains(m.View(), analyzingLabel) {
		t.Fatalf("button should show the in-flight label:\n%s", m.View())
	}
	if cmd := press(m, tea.KeyCtrlS); cmd != nil {
		t.Fatalf("second submission should be ignored while in flight, got %T", cmd)
	}

	typeText(m, "!")
	if got := m.input.Value(); got != "Write a haiku!" {
		t.Fatalf("input should stay editable while in flight, got %q", got)
	}
}

func TestSuccessfulAnalysisRendersResults(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	typeText(m, "Write a haiku")
	press(m, tea.KeyCtrlS)
	complete(m, sampleResult(), nil)

	if phase := m.controller.State().Phase; phase != session.Succeeded {
		t.Fatalf("expected succeeded, got %v", phase)
	}
	view := m.View()
	for _, want := range []string{
		"Analysis Results",
		"9/10 🌟",
		"Technique: Few-shot",
		"Strengths",
		"Clear objective",
		"Areas for Improvement",
		"No output format",
		"Suggestions",
		"Vague audience",
		"Example: Write for new hires",
		"Give a word budget",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Count(view, "Example:") != 1 {
		t.Fatalf("example line should only render when present:\n%s", view)
	}
	if strings.Contains(view, session.GenericFailure) {
		t.Fatal("error banner should be hidden after success")
	}
}

func TestFailedAnalysisShowsGenericMessage(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	typeText(m, "Write a haiku")
	press(m, tea.KeyCtrlS)
	complete(m, sampleResult(), nil)
	press(m, tea.KeyCtrlS)
	complete(m, analysis.Result{}, errors.New("status 500: upstream exploded"))

	view := m.View()
	if !strings.Contains(view, "Failed to analyze prompt. Please try again.") {
		t.Fatalf("generic failure banner missing:\n%s", view)
	}
	if strings.Contains(view, "upstream exploded") {
		t.Fatal("transport details must not leak into the view")
	}
	if strings.Contains(view, "Analysis Results") {
		t.Fatal("stale results should be replaced by the failure")
	}
	if !m.controller.CanSubmit(m.input.Value()) {
		t.Fatal("retry should be possible after a failure")
	}
}

func TestEmptyListsAreOmitted(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	typeText(m, "Write a haiku")
	press(m, tea.KeyCtrlS)
	complete(m, analysis.Result{Score: 3, Technique: "Zero-shot", Issues: []string{"Too short"}}, nil)

	view := m.View()
	if !strings.Contains(view, "3/10 🎯") {
		t.Fatalf("low tier score missing:\n%s", view)
	}
	for _, unwanted := range []string{"Strengths", "Suggestions"} {
		if strings.Contains(view, unwanted) {
			t.Fatalf("empty section %q should be omitted:\n%s", unwanted, view)
		}
	}
}

func TestStaleOutcomeIsIgnored(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	typeText(m, "Write a haiku")
	press(m, tea.KeyCtrlS)
	m.Update(analysisResultMsg{outcome: session.Outcome{RequestID: "someone-else", Result: sampleResult()}})

	if !m.controller.State().Busy() {
		t.Fatal("outcome for another request should not settle the current one")
	}
}

func TestCounterTracksRunes(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	if got := m.counterText(); got != "0 / 2000 characters" {
		t.Fatalf("unexpected initial counter: %q", got)
	}
	typeText(m, "héllo")
	if got := m.counterText(); got != "5 / 2000 characters" {
		t.Fatalf("counter should count characters: %q", got)
	}
	if !strings.Contains(m.View(), "5 / 2000 characters") {
		t.Fatal("counter missing from view")
	}
}

func TestLongPromptIsTruncated(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	m.setPrompt(strings.Repeat("a", prompt.MaxChars+500))
	if got := prompt.Length(m.input.Value()); got != prompt.MaxChars {
		t.Fatalf("expected exactly %d characters, got %d", prompt.MaxChars, got)
	}

	m.setPrompt("")
	typeText(m, strings.Repeat("b", prompt.MaxChars+500))
	if got := prompt.Length(m.input.Value()); got != prompt.MaxChars {
		t.Fatalf("paste kept %d characters, want %d", got, prompt.MaxChars)
	}
	if got := m.counterText(); got != "2000 / 2000 characters" {
		t.Fatalf("counter out of step with input: %q", got)
	}
	typeText(m, "c")
	if got := prompt.Length(m.input.Value()); got != prompt.MaxChars {
		t.Fatalf("typing past the limit grew the input to %d", got)
	}
}

func TestWideRunesCountOncePerCharacter(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	for i := 0; i < 1500; i++ {
		typeText(m, "語")
	}
	if got := m.counterText(); got != "1500 / 2000 characters" {
		t.Fatalf("wide runes were limited by display width: %q", got)
	}

	m.setPrompt(strings.Repeat("語", prompt.MaxChars+1))
	if got := prompt.Length(m.input.Value()); got != prompt.MaxChars {
		t.Fatalf("wide prompt kept %d characters", got)
	}
}

func TestManyLinePromptIsKept(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	text := strings.TrimSuffix(strings.Repeat("step\n", 150), "\n")
	m.setPrompt(text)
	if got := m.input.Value(); got != text {
		t.Fatalf("multi-line prompt changed: %d lines kept", strings.Count(got, "\n")+1)
	}
	if got := m.counterText(); got != "749 / 2000 characters" {
		t.Fatalf("unexpected counter: %q", got)
	}
}

func TestSetPromptNormalizesLikeTheInput(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	m.setPrompt("a\tb\r\nc")
	if got := m.input.Value(); got != "a    b\nc" {
		t.Fatalf("unexpected input value: %q", got)
	}
	if got := m.counterText(); got != "8 / 2000 characters" {
		t.Fatalf("counter should match the stored value: %q", got)
	}
}

func TestExamplesCycle(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	press(m, tea.KeyCtrlO)
	if m.input.Value() != "" {
		t.Fatal("no examples loaded yet; input should stay empty")
	}

	m.Update(examplesResultMsg{examples: []analysis.ExamplePrompt{
		{Title: "Basic", Prompt: "Write a story", ExpectedScore: 3},
		{Title: "Detailed", Prompt: "Write a 300 word story for children", ExpectedScore: 8},
	}})
	press(m, tea.KeyCtrlO)
	if got := m.input.Value(); got != "Write a story" {
		t.Fatalf("first example not loaded: %q", got)
	}
	press(m, tea.KeyCtrlO)
	press(m, tea.KeyCtrlO)
	if got := m.input.Value(); got != "Write a story" {
		t.Fatalf("examples should wrap around: %q", got)
	}
}

func TestClearResetsInput(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	typeText(m, "draft")
	press(m, tea.KeyCtrlL)
	if m.input.Value() != "" {
		t.Fatalf("input not cleared: %q", m.input.Value())
	}
}

func TestHealthShownInHero(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	m.Update(healthResultMsg{status: analysis.HealthStatus{Status: "healthy", Version: "1.0.0"}})
	if !strings.Contains(m.View(), "online (v1.0.0)") {
		t.Fatalf("health label missing:\n%s", m.View())
	}
	m.Update(healthResultMsg{err: errors.New("dial tcp")})
	if !strings.Contains(m.View(), "unreachable") {
		t.Fatal("unreachable label missing")
	}
}

func TestNoClientDisablesSubmit(t *testing.T) {
	m := newTestModel(t, nil)
	typeText(m, "hello")
	if cmd := press(m, tea.KeyCtrlS); cmd != nil {
		t.Fatal("submission without a client should be skipped")
	}
	if cmd := m.Init(); cmd == nil {
		t.Fatal("init should still start the cursor blink")
	}
}

func TestHelpToggle(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	press(m, tea.KeyF1)
	if !m.helpVisible {
		t.Fatal("F1 should open the key legend")
	}
	if !strings.Contains(m.View(), "Next example") {
		t.Fatal("legend not rendered")
	}
	press(m, tea.KeyF1)
	if m.helpVisible {
		t.Fatal("F1 should close the key legend")
	}
}

func TestQuestionMarkIsTyped(t *testing.T) {
	m := sizedModel(t, &fakeClient{})
	typeText(m, "?")
	if m.helpVisible {
		t.Fatal("? must not toggle help")
	}
	if got := m.input.Value(); got != "?" {
		t.Fatalf("? should start the prompt, got %q", got)
	}
}
