package recognize

import (
	"context"
	"errors"
	"sync"
)

// ErrStale marks a reply that arrived after a newer submission started.
var ErrStale = errors.New("superseded by a newer submission")

// Tracker hands out monotonically increasing request ids. Starting a new
// request cancels the one before it so only the latest reply is applied.
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Begin registers a new request and returns its id together with a context
// that is cancelled when a later request begins. The returned release func
// must be called once the request has finished.
func (t *Tracker) Begin(parent context.Context) (uint64, context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	id := t.seq
	t.cancel = cancel
	t.mu.Unlock()

	release := func() {
		t.mu.Lock()
		if t.seq == id {
			t.cancel = nil
		}
		t.mu.Unlock()
		cancel()
	}
	return id, ctx, release
}

// Current reports whether id is the most recent request.
func (t *Tracker) Current(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return id == t.seq
}

// Latest returns the id of the most recent request, or zero.
func (t *Tracker) Latest() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}
