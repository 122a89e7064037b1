package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/promptlens/internal/analysis"
	"github.com/csheth/promptlens/internal/session"
)

type recordingClient struct {
	mu      sync.Mutex
	prompts []string
	err     error

	// When gate is set, each call reports on started and then blocks until
	// gate is closed.
	gate    chan struct{}
	started chan string
}

func (c *recordingClient) Analyze(ctx context.Context, text string) (analysis.Result, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, text)
	score := len(c.prompts)
	c.mu.Unlock()

	if c.gate != nil {
		c.started <- text
		select {
		case <-c.gate:
		case <-ctx.Done():
			return analysis.Result{}, ctx.Err()
		}
	}
	if c.err != nil {
		return analysis.Result{}, c.err
	}
	return analysis.Result{Score: score, Technique: "Zero-shot"}, nil
}

func (c *recordingClient) Health(context.Context) (analysis.HealthStatus, error) {
	return analysis.HealthStatus{}, nil
}

func (c *recordingClient) Examples(context.Context) ([]analysis.ExamplePrompt, error) {
	return nil, nil
}

func (c *recordingClient) Endpoint() string { return "http://analysis.test" }

func (c *recordingClient) seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}

type harness struct {
	states chan session.State
	cancel context.CancelFunc
	done   chan error
}

func startWatcher(t *testing.T, path string, client analysis.Client) *harness {
	t.Helper()
	h := &harness{states: make(chan session.State, 8), done: make(chan error, 1)}
	w, err := New(Options{
		Path:       path,
		Controller: session.NewController(client, nil),
		Out:        &bytes.Buffer{},
		Debounce:   20 * time.Millisecond,
		Notify:     func(s session.State) { h.states <- s },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-h.done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	return h
}

func (h *harness) next(t *testing.T) session.State {
	t.Helper()
	select {
	case s := <-h.states:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for an analysis")
		return session.State{}
	}
}

func TestWatcherAnalyzesOnStartAndOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("Write a poem\n"), 0o644))
	client := &recordingClient{}
	h := startWatcher(t, path, client)

	first := h.next(t)
	require.Equal(t, session.Succeeded, first.Phase)
	assert.Equal(t, 1, first.Result.Score)

	require.NoError(t, os.WriteFile(path, []byte("Write a sonnet about autumn"), 0o644))
	second := h.next(t)
	require.Equal(t, session.Succeeded, second.Phase)

	prompts := client.seen()
	require.GreaterOrEqual(t, len(prompts), 2)
	assert.Equal(t, "Write a poem", prompts[0])
	assert.Equal(t, "Write a sonnet about autumn", prompts[len(prompts)-1])
}

func TestSavesDuringAnalysisFoldIntoOneFollowUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))
	client := &recordingClient{gate: make(chan struct{}), started: make(chan string, 4)}
	h := startWatcher(t, path, client)

	select {
	case text := <-client.started:
		require.Equal(t, "v1", text)
	case <-time.After(5 * time.Second):
		t.Fatal("initial analysis never started")
	}

	// Both saves land while v1 is still outstanding; each outlives the
	// debounce so the watcher sees them as separate saves.
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v3"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"v1"}, client.seen())

	close(client.gate)
	first := h.next(t)
	require.Equal(t, session.Succeeded, first.Phase)
	assert.Equal(t, 1, first.Result.Score)

	followUp := h.next(t)
	require.Equal(t, session.Succeeded, followUp.Phase)
	assert.Equal(t, 2, followUp.Result.Score)

	select {
	case extra := <-h.states:
		t.Fatalf("unexpected extra analysis: %+v", extra)
	case <-time.After(200 * time.Millisecond):
	}
	assert.Equal(t, []string{"v1", "v3"}, client.seen())
}

func TestWatcherSkipsBlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o644))
	client := &recordingClient{}
	h := startWatcher(t, path, client)

	// Give the initial trigger time to fire before the first real save.
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, client.seen())

	require.NoError(t, os.WriteFile(path, []byte("Explain recursion"), 0o644))
	state := h.next(t)
	assert.Equal(t, session.Succeeded, state.Phase)
	assert.Equal(t, []string{"Explain recursion"}, client.seen())
}

func TestWatcherReportsGenericFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("Summarize"), 0o644))
	h := startWatcher(t, path, &recordingClient{err: errors.New("connection refused")})

	state := h.next(t)
	assert.Equal(t, session.Failed, state.Phase)
	assert.Equal(t, session.GenericFailure, state.Message)
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{Controller: session.NewController(&recordingClient{}, nil)})
	assert.Error(t, err)

	_, err = New(Options{Path: "prompt.txt"})
	assert.Error(t, err)
}
