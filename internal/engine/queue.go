package engine

import (
	"sync"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// InputQueue holds at most one pending input. A newer input replaces one
// that no tick has consumed yet, so rapid presses collapse to the last one.
type InputQueue struct {
	mu       sync.Mutex
	pending  core.InputFrame
	has      bool
	replaced uint64
}

// Push stores in as the pending input and reports whether it replaced an
// unconsumed one. Empty frames are ignored.
func (q *InputQueue) Push(in core.InputFrame) bool {
	if in.Empty() {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	replaced := q.has
	if replaced {
		q.replaced++
	}
	q.pending = in
	q.has = true
	return replaced
}

// Take returns and clears the pending input.
func (q *InputQueue) Take() (core.InputFrame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.has {
		return core.InputFrame{}, false
	}
	in := q.pending
	q.pending = core.InputFrame{}
	q.has = false
	return in, true
}

// Replaced counts inputs overwritten before a tick consumed them.
func (q *InputQueue) Replaced() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.replaced
}
