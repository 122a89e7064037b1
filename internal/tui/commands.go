package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/promptlens/internal/analysis"
	"github.com/csheth/promptlens/internal/session"
)

const probeTimeout = 10 * time.Second

type analysisResultMsg struct {
	outcome session.Outcome
}

type healthResultMsg struct {
	status analysis.HealthStatus
	err    error
}

type examplesResultMsg struct {
	examples []analysis.ExamplePrompt
	err      error
}

// analyzeJob performs the single analysis call for req. No timeout is
// imposed here; the transport default applies.
func analyzeJob(controller *session.Controller, req session.Request) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		outcome := controller.Run(parent, req)
		return analysisResultMsg{outcome: outcome}, outcome.Err
	}
}

func healthJob(client analysis.Client) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, probeTimeout)
		defer cancel()
		status, err := client.Health(ctx)
		return healthResultMsg{status: status, err: err}, err
	}
}

func examplesJob(client analysis.Client) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, probeTimeout)
		defer cancel()
		examples, err := client.Examples(ctx)
		return examplesResultMsg{examples: examples, err: err}, err
	}
}
