// Package tuitest drives the promptlens binary through a pseudo terminal and
// records what it draws.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 120
	defaultHeight  = 32
	defaultTimeout = 5 * time.Second
)

// Step is one scripted interaction. The delay is waited out before the input
// is written; either may be zero.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Config configures how the harness spawns and drives the program.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
	AllowInterrupt   bool
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	ExitCode int
	Duration time.Duration
}

// Run executes the configured command inside a PTY, replays the scripted
// steps, and captures every byte written to the terminal.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	cfg = withDefaults(cfg)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(cfg.Height), Cols: uint16(cfg.Width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	capture := &screenCapture{}
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		capture.drain(ptmx)
	}()

	start := time.Now()
	if err := replay(ctx, ptmx, cfg.Steps); err != nil {
		return nil, err
	}

	exitCode, err := waitForExit(ctx, cmd, cfg)
	if err != nil {
		return nil, err
	}

	// Closing the PTY lets the reader goroutine finish draining.
	_ = ptmx.Close()
	<-copyDone

	raw := capture.bytes()
	return &Recording{
		Raw:      raw,
		Frames:   parseFrames(raw),
		ExitCode: exitCode,
		Duration: time.Since(start),
	}, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}

type screenCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// drain copies terminal output until the PTY closes, answering terminal
// queries along the way.
func (c *screenCapture) drain(ptmx *os.File) {
	responder := newTerminalResponder(ptmx)
	chunk := make([]byte, 4096)
	for {
		n, err := ptmx.Read(chunk)
		if n > 0 {
			responder.Process(chunk[:n])
			c.mu.Lock()
			c.buf.Write(chunk[:n])
			c.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (c *screenCapture) bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.buf.Bytes()...)
}

func replay(ctx context.Context, ptmx *os.File, steps []Step) error {
	for _, step := range steps {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("tuitest: context cancelled before script finished: %w", ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) == 0 {
			continue
		}
		if _, err := ptmx.Write(step.Input); err != nil {
			return fmt.Errorf("tuitest: write input: %w", err)
		}
	}
	return nil
}

func waitForExit(ctx context.Context, cmd *exec.Cmd, cfg Config) (int, error) {
	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
	}()

	select {
	case err := <-waitErr:
		if err == nil {
			return 0, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			for _, allowed := range cfg.AllowedExitCodes {
				if code == allowed {
					return code, nil
				}
			}
		}
		if cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt") {
			return -1, nil
		}
		return 0, fmt.Errorf("tuitest: program exited with error: %w", err)
	case <-ctx.Done():
		return 0, fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

// Type returns a step that writes text as if typed.
func Type(text string) Step {
	return Step{Input: []byte(text)}
}

// Wait returns a step that only pauses.
func Wait(d time.Duration) Step {
	return Step{Delay: d}
}

var (
	// KeyEnter sends a carriage return to the PTY.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC requests the program to terminate.
	KeyCtrlC = []byte{3}
	// KeyCtrlL clears the prompt input.
	KeyCtrlL = []byte{12}
	// KeyCtrlO loads the next example prompt.
	KeyCtrlO = []byte{15}
	// KeyCtrlS submits the prompt for analysis.
	KeyCtrlS = []byte{19}
	// KeyEsc quits the TUI.
	KeyEsc = []byte{27}
)
