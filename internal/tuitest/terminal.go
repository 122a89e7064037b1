package tuitest

import (
	"bytes"
	"io"
)

// terminalReply pairs a query the program may emit with the answer a real
// terminal would send back. Bubble Tea blocks on some of these at startup.
type terminalReply struct {
	query  string
	answer string
}

var terminalReplies = []terminalReply{
	{query: "\x1b[6n", answer: "\x1b[1;1R"},
	{query: "\x1b]10;?\x07", answer: "\x1b]10;rgb:cccc/cccc/cccc\x07"},
	{query: "\x1b]10;?\x1b\\", answer: "\x1b]10;rgb:cccc/cccc/cccc\x1b\\"},
	{query: "\x1b]11;?\x07", answer: "\x1b]11;rgb:0000/0000/0000\x07"},
	{query: "\x1b]11;?\x1b\\", answer: "\x1b]11;rgb:0000/0000/0000\x1b\\"},
}

// maxPending bounds how much unanswered output is retained between reads.
const maxPending = 64

type terminalResponder struct {
	w       io.Writer
	pending []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w}
}

// Process answers every complete query in chunk, in the order the program
// sent them. Queries split across reads are answered once the tail arrives.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.pending = append(tr.pending, chunk...)
	for {
		reply, end := tr.nextQuery()
		if end < 0 {
			break
		}
		_, _ = io.WriteString(tr.w, reply.answer)
		tr.pending = tr.pending[end:]
	}
	if len(tr.pending) > maxPending {
		tr.pending = append([]byte(nil), tr.pending[len(tr.pending)-maxPending:]...)
	}
}

// nextQuery finds the earliest known query in the pending bytes and returns
// the offset just past it, or -1.
func (tr *terminalResponder) nextQuery() (terminalReply, int) {
	var (
		found terminalReply
		start = -1
	)
	for _, reply := range terminalReplies {
		idx := bytes.Index(tr.pending, []byte(reply.query))
		if idx >= 0 && (start < 0 || idx < start) {
			found, start = reply, idx
		}
	}
	if start < 0 {
		return found, -1
	}
	return found, start + len(found.query)
}
