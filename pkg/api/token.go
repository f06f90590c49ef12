package api

import "sync/atomic"

const (
	tokenIdle int32 = iota
	tokenBusy
	tokenCancelled
)

// Token is a run's cancellation flag. It only ever moves from live to
// cancelled. The zero value is a live token.
type Token struct {
	state atomic.Int32
}

// NewToken returns a live token.
func NewToken() *Token { return &Token{} }

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool {
	return t.state.Load() == tokenCancelled
}

// Cancel marks the token cancelled and reports whether this call did so.
// A callback already inside Guard runs to completion; no later Guard body
// starts. Cancel never blocks, so it may be called from a callback.
func (t *Token) Cancel() bool {
	for {
		s := t.state.Load()
		if s == tokenCancelled {
			return false
		}
		if t.state.CompareAndSwap(s, tokenCancelled) {
			return true
		}
	}
}

// Guard runs fn unless the token is cancelled and reports whether fn ran.
func (t *Token) Guard(fn func()) bool {
	if !t.state.CompareAndSwap(tokenIdle, tokenBusy) {
		return false
	}
	// A concurrent Cancel may have replaced busy; leave it cancelled.
	defer t.state.CompareAndSwap(tokenBusy, tokenIdle)
	fn()
	return true
}
