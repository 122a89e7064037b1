// Package session owns the request lifecycle of a single analysis form: it
// guards against blank and overlapping submissions, performs the one network
// call, and folds its outcome into a tagged State.
//
// A Controller is not safe for concurrent use. The TUI drives it from the
// bubbletea Update loop; the CLI commands drive it sequentially.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/csheth/promptlens/internal/analysis"
	"github.com/csheth/promptlens/internal/prompt"
)

// Request is an accepted submission waiting to be sent.
type Request struct {
	ID     string
	Prompt string
}

// Outcome is what came back for a Request.
type Outcome struct {
	RequestID string
	Result    analysis.Result
	Err       error
	Duration  time.Duration
}

// Controller turns submissions into state transitions.
type Controller struct {
	client analysis.Client
	logger *zap.Logger
	state  State
	now    func() time.Time
	newID  func() string
}

// NewController returns a Controller in the Idle phase.
func NewController(client analysis.Client, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		client: client,
		logger: logger,
		state:  idle(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// CanSubmit reports whether Begin would accept text right now.
func (c *Controller) CanSubmit(text string) bool {
	return c.client != nil && !prompt.IsBlank(text) && !c.state.Busy()
}

// Begin validates text and moves to InFlight. It returns false, leaving the
// state untouched, for blank text or while another request is outstanding.
// The returned Request carries the text exactly as typed.
func (c *Controller) Begin(text string) (Request, bool) {
	if c.client == nil {
		c.logger.Debug("submission skipped", zap.String("reason", "no analysis client"))
		return Request{}, false
	}
	if prompt.IsBlank(text) {
		c.logger.Debug("submission skipped", zap.String("reason", "blank prompt"))
		return Request{}, false
	}
	if c.state.Busy() {
		c.logger.Debug("submission skipped",
			zap.String("reason", "request in flight"),
			zap.String("request_id", c.state.RequestID))
		return Request{}, false
	}
	req := Request{ID: c.newID(), Prompt: text}
	c.state = inFlight(req.ID)
	c.logger.Info("analysis requested",
		zap.String("request_id", req.ID),
		zap.Int("length", prompt.Length(text)))
	return req, true
}

// Run performs the network call for req. It does not touch controller state
// and may run on another goroutine.
func (c *Controller) Run(ctx context.Context, req Request) Outcome {
	started := time.Now()
	ctx = analysis.WithRequestID(ctx, req.ID)
	result, err := c.client.Analyze(ctx, req.Prompt)
	return Outcome{RequestID: req.ID, Result: result, Err: err, Duration: time.Since(started)}
}

// Complete records out and clears the in-flight indicator. Outcomes for a
// request other than the outstanding one are ignored.
func (c *Controller) Complete(out Outcome) State {
	if !c.state.Busy() || out.RequestID != c.state.RequestID {
		c.logger.Warn("stale analysis outcome ignored",
			zap.String("request_id", out.RequestID),
			zap.Stringer("phase", c.state.Phase))
		return c.state
	}
	at := c.now()
	if out.Err != nil {
		c.logger.Error("analysis failed",
			zap.String("request_id", out.RequestID),
			zap.String("kind", failureKind(out.Err)),
			zap.Duration("duration", out.Duration),
			zap.Error(out.Err))
		c.state = failed(out.RequestID, at)
		return c.state
	}
	c.logger.Info("analysis complete",
		zap.String("request_id", out.RequestID),
		zap.Int("score", out.Result.Score),
		zap.String("technique", out.Result.Technique),
		zap.Duration("duration", out.Duration))
	c.state = succeeded(out.RequestID, out.Result, at)
	return c.state
}

// Submit runs Begin, Run and Complete back to back. The boolean is false
// when the submission was skipped.
func (c *Controller) Submit(ctx context.Context, text string) (State, bool) {
	req, ok := c.Begin(text)
	if !ok {
		return c.state, false
	}
	return c.Complete(c.Run(ctx, req)), true
}

func failureKind(err error) string {
	var statusErr *analysis.StatusError
	switch {
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "transport_or_decode"
	}
}
