package feed

import (
	"context"
	"errors"
	"sync"

	"codal-docs-be/internal/entity"
)

var ErrScopeClosed = errors.New("feed scope closed")

// Scope holds at most one subscription for its owner. Opening a new one
// closes the previous one first, and Close releases whatever is held.
type Scope struct {
	feed *Feed

	mu      sync.Mutex
	current *Subscription
	closed  bool
}

func (f *Feed) NewScope() *Scope {
	return &Scope{feed: f}
}

// Subscribe replaces the held subscription. When it returns, the previous
// subscription has stopped delivering.
func (s *Scope) Subscribe(ctx context.Context, filter entity.DocumentFilter) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrScopeClosed
	}
	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
	s.current = s.feed.subscribe(ctx, filter)
	return s.current, nil
}

// Release closes the held subscription, if any. The scope stays usable.
func (s *Scope) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
}

func (s *Scope) Current() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close releases and retires the scope. Safe to call more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
	s.closed = true
}
