package tui

import (
	"context"
	"sync"
)

// RequestState owns the context shared by every in-flight API call.
// Cancel aborts all of them at once (on quit).
type RequestState struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRequestState derives the shared context from parent
func NewRequestState(parent context.Context) *RequestState {
	ctx, cancel := context.WithCancel(parent)
	return &RequestState{ctx: ctx, cancel: cancel}
}

// Context returns the shared context for a new call
func (r *RequestState) Context() context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctx
}

// Cancel cancels every call started from the shared context
func (r *RequestState) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Canceled reports whether Cancel has been called
func (r *RequestState) Canceled() bool {
	return r.Context().Err() != nil
}
