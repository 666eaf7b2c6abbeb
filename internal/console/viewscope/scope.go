// Package viewscope ties the async work of one console view to the view's
// lifetime. Once the view is left, its pending results are discarded.
package viewscope

import (
	"context"
	"sync"
)

type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// New derives a scope from parent.
func New(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is passed to every request the view makes.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Cancel ends the scope. It is safe to call more than once.
func (s *Scope) Cancel() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

// Active reports whether the scope can still apply results.
func (s *Scope) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.ctx.Err() == nil
}

// Apply runs fn only while the scope is active and reports whether it ran.
// fn runs under the scope lock, so a concurrent Cancel waits for it.
func (s *Scope) Apply(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// Run calls work with the scope context and hands its result to apply,
// unless the scope ended in the meantime. The returned error is work's,
// or context.Canceled when the result was dropped.
func Run[T any](s *Scope, work func(ctx context.Context) (T, error), apply func(T)) error {
	v, err := work(s.ctx)
	if err != nil {
		if !s.Active() {
			return context.Canceled
		}
		return err
	}
	if !s.Apply(func() { apply(v) }) {
		return context.Canceled
	}
	return nil
}
