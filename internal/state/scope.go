package state

import (
	"context"
	"sync"
)

// Scope binds background work to a view's lifetime. Every fetch a screen
// starts runs under the scope's context; closing the scope on teardown
// cancels outstanding requests so late responses cannot mutate released
// state.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewScope creates a scope detached from any parent.
func NewScope() *Scope {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context returns the scope's context for use in remote calls.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Go runs fn on the scope. After Close, fn is dropped.
func (s *Scope) Go(fn func(ctx context.Context)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Close cancels the scope and waits for in-flight tasks to observe the
// cancellation and return.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
