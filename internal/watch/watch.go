// Package watch re-analyzes a prompt file every time it is saved.
//
// All controller access happens on the single event loop goroutine; only
// the network call runs elsewhere. A save that lands while a request is
// outstanding is not submitted on its own. Instead one follow-up analysis
// runs once the outstanding request settles.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/csheth/promptlens/internal/prompt"
	"github.com/csheth/promptlens/internal/report"
	"github.com/csheth/promptlens/internal/session"
)

const defaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Path       string
	Controller *session.Controller
	Formatter  report.Formatter
	Out        io.Writer
	Logger     *zap.Logger
	// Debounce coalesces bursts of write events from editors.
	Debounce time.Duration
	// Notify, when set, observes every settled state.
	Notify func(session.State)
}

// Watcher ties a prompt file to an analysis controller.
type Watcher struct {
	path       string
	controller *session.Controller
	formatter  report.Formatter
	out        io.Writer
	logger     *zap.Logger
	debounce   time.Duration
	notify     func(session.State)
}

// New validates opts and returns a Watcher.
func New(opts Options) (*Watcher, error) {
	if opts.Path == "" {
		return nil, errors.New("watch: path is required")
	}
	if opts.Controller == nil {
		return nil, errors.New("watch: controller is required")
	}
	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", opts.Path, err)
	}
	if opts.Formatter == nil {
		opts.Formatter, _ = report.New("text", report.Options{})
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	return &Watcher{
		path:       filepath.Clean(abs),
		controller: opts.Controller,
		formatter:  opts.Formatter,
		out:        opts.Out,
		logger:     opts.Logger,
		debounce:   opts.Debounce,
		notify:     opts.Notify,
	}, nil
}

// Run analyzes the file once, then again after every save, until ctx is
// cancelled. Cancellation is a clean exit.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if cerr := fw.Close(); cerr != nil {
			w.logger.Warn("failed to close watcher", zap.Error(cerr))
		}
	}()
	// Editors often replace the file on save, so the directory is watched
	// and events are filtered by name.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.logger.Info("watching prompt file", zap.String("path", w.path))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.loop(gctx, g, fw)
	})
	return g.Wait()
}

func (w *Watcher) loop(ctx context.Context, g *errgroup.Group, fw *fsnotify.Watcher) error {
	outcomes := make(chan session.Outcome, 1)
	trigger := time.NewTimer(0)
	defer trigger.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("prompt file changed", zap.String("op", event.Op.String()))
			trigger.Reset(w.debounce)
		case werr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(werr))
		case <-trigger.C:
			if w.controller.State().Busy() {
				pending = true
				w.logger.Debug("save during analysis; follow-up queued")
				continue
			}
			w.submit(ctx, g, outcomes)
		case out := <-outcomes:
			w.settle(w.controller.Complete(out))
			if pending {
				pending = false
				trigger.Reset(0)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) submit(ctx context.Context, g *errgroup.Group, outcomes chan<- session.Outcome) {
	src, err := prompt.LoadFile(w.path)
	if err != nil {
		w.logger.Warn("failed to read prompt file", zap.String("path", w.path), zap.Error(err))
		fmt.Fprintf(w.out, "Could not read %s: %v\n", filepath.Base(w.path), err)
		return
	}
	if src.Truncated {
		w.logger.Warn("prompt truncated", zap.String("path", w.path), zap.Int("limit", prompt.MaxChars))
	}
	req, ok := w.controller.Begin(src.Text)
	if !ok {
		fmt.Fprintf(w.out, "%s is empty; waiting for changes.\n", filepath.Base(w.path))
		return
	}
	fmt.Fprintf(w.out, "Analyzing %s (%d characters)...\n", filepath.Base(w.path), prompt.Length(src.Text))
	g.Go(func() error {
		out := w.controller.Run(ctx, req)
		select {
		case outcomes <- out:
		case <-ctx.Done():
		}
		return nil
	})
}

func (w *Watcher) settle(state session.State) {
	switch state.Phase {
	case session.Succeeded:
		body, err := w.formatter.Format(*state.Result)
		if err != nil {
			w.logger.Error("failed to render result", zap.Error(err))
			fmt.Fprintln(w.out, session.GenericFailure)
			break
		}
		fmt.Fprintf(w.out, "\n%s\n\n", body)
	case session.Failed:
		fmt.Fprintln(w.out, state.Message)
	}
	if w.notify != nil {
		w.notify(state)
	}
}
