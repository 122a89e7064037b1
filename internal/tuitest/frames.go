package tuitest

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Frame is one full repaint of the screen.
type Frame struct {
	Index int
	// ANSI is the repaint as written, escape sequences included.
	ANSI string
	// Plain is the visible text with trailing blanks trimmed.
	Plain string
}

// eraseDisplay matches the erase sequence Bubble Tea writes before a repaint.
var eraseDisplay = regexp.MustCompile(`\x1b\[[0-9;]*J`)

func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, chunk := range eraseDisplay.Split(stream, -1) {
		if frame, ok := newFrame(len(frames), chunk); ok {
			frames = append(frames, frame)
		}
	}
	return frames
}

func newFrame(index int, chunk string) (Frame, bool) {
	chunk = strings.TrimPrefix(strings.Trim(chunk, "\x00"), "\x1b[H")
	plain := trimBlankTail(visibleText(chunk))
	if strings.TrimSpace(plain) == "" {
		return Frame{}, false
	}
	return Frame{Index: index, ANSI: chunk, Plain: plain}, true
}

// visibleText drops escape sequences and every control character except
// line feeds.
func visibleText(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}

func trimBlankTail(s string) string {
	lines := strings.Split(s, "\n")
	end := 0
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
		if lines[i] != "" {
			end = i + 1
		}
	}
	return strings.Join(lines[:end], "\n")
}

// FinalFrame returns the last repaint, or false when nothing was drawn.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// FrameContaining returns the first frame whose plain text contains substr.
func (r *Recording) FrameContaining(substr string) (Frame, bool) {
	if r == nil {
		return Frame{}, false
	}
	for _, frame := range r.Frames {
		if strings.Contains(frame.Plain, substr) {
			return frame, true
		}
	}
	return Frame{}, false
}

// Contains reports whether any frame, or the raw stream once stripped,
// shows substr. Partial repaints never start a new frame, so the raw
// stream is checked too.
func (r *Recording) Contains(substr string) bool {
	if _, ok := r.FrameContaining(substr); ok {
		return true
	}
	return r != nil && strings.Contains(visibleText(string(r.Raw)), substr)
}
