package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type jobKind string

type jobStatus string

const (
	jobKindAnalyze  jobKind = "analyze"
	jobKindHealth   jobKind = "health"
	jobKindExamples jobKind = "examples"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	logger  *zap.Logger
}

func newJobBus(logger *zap.Logger) *jobBus {
	return &jobBus{logger: logger}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start emits a running snapshot, then runs runner off the Update loop and
// delivers its payload wrapped in a jobResultEnvelope.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		payload, err := runner(context.Background())
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		b.logger.Debug("job finished",
			zap.String("job", id),
			zap.String("status", string(snapshot.Status)),
			zap.Duration("duration", snapshot.Duration),
			zap.Error(err))
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}

// jobTracker keeps the latest snapshot per kind for the status bar.
type jobTracker map[jobKind]jobSnapshot

func (t jobTracker) record(snapshot jobSnapshot) {
	current, ok := t[snapshot.Kind]
	if ok && current.ID != snapshot.ID && current.StartedAt.After(snapshot.StartedAt) {
		return
	}
	t[snapshot.Kind] = snapshot
}

func (t jobTracker) running(kind jobKind) bool {
	snapshot, ok := t[kind]
	return ok && snapshot.Status == jobStatusRunning
}
