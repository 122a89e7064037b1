package session

import (
	"time"

	"github.com/csheth/promptlens/internal/analysis"
)

// GenericFailure is the only failure text ever shown to the user.
const GenericFailure = "Failed to analyze prompt. Please try again."

// Phase is the tag of a State.
type Phase int

const (
	Idle Phase = iota
	InFlight
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the outcome of the most recent submission. Only the payload of
// the active phase is set: Result for Succeeded, Message for Failed.
type State struct {
	Phase       Phase
	Result      *analysis.Result
	Message     string
	RequestID   string
	CompletedAt time.Time
}

func idle() State {
	return State{Phase: Idle}
}

func inFlight(id string) State {
	return State{Phase: InFlight, RequestID: id}
}

func succeeded(id string, result analysis.Result, at time.Time) State {
	return State{Phase: Succeeded, Result: &result, RequestID: id, CompletedAt: at}
}

func failed(id string, at time.Time) State {
	return State{Phase: Failed, Message: GenericFailure, RequestID: id, CompletedAt: at}
}

// Busy reports whether a request is outstanding.
func (s State) Busy() bool {
	return s.Phase == InFlight
}
