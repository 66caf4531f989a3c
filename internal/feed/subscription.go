package feed

import (
	"context"
	"sync"
	"time"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/entity"
)

// Snapshot is the full ordered result of a subscription's filter at one
// point in time. Err is set, and Documents nil, when the load failed.
type Snapshot struct {
	SubscriptionId uint64
	Filter         entity.DocumentFilter
	Documents      []*entity.Document
	Err            error
	LoadedAt       time.Time
}

// Subscription is one live list. Snapshots arrive on C until Close returns;
// C itself is never closed.
type Subscription struct {
	id     uint64
	filter entity.DocumentFilter
	feed   *Feed

	out   chan Snapshot
	dirty chan struct{}
	done  chan struct{}

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (s *Subscription) Id() uint64 {
	return s.id
}

func (s *Subscription) Filter() entity.DocumentFilter {
	return s.filter
}

func (s *Subscription) C() <-chan Snapshot {
	return s.out
}

// Done is closed once the subscription has stopped delivering.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Refresh asks for a new snapshot, e.g. after a failed load.
func (s *Subscription) Refresh() {
	s.markDirty()
}

// Close stops the subscription and waits until nothing more can be
// delivered. Safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
		s.feed.remove(s.id)
	})
}

func (s *Subscription) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
		// already pending
	}
}

func (s *Subscription) run() {
	defer close(s.done)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.dirty:
		}

		if !s.deliverLatest() {
			return
		}
	}
}

// deliverLatest loads and hands a snapshot to the reader. A change that lands
// while the reader is busy replaces the pending snapshot with a fresh load.
func (s *Subscription) deliverLatest() bool {
	for {
		snap := s.load()
		if s.ctx.Err() != nil {
			return false
		}

		select {
		case s.out <- snap:
			return true
		case <-s.ctx.Done():
			return false
		case <-s.dirty:
		}
	}
}

func (s *Subscription) load() Snapshot {
	ctx, cancel := context.WithTimeout(s.ctx, s.feed.timeout)
	defer cancel()

	docs, err := s.feed.loader.List(ctx, s.filter)
	snap := Snapshot{
		SubscriptionId: s.id,
		Filter:         s.filter,
		LoadedAt:       time.Now(),
	}
	if err != nil {
		if _, ok := apperror.As(err); !ok {
			err = apperror.LoadFailure(err)
		}
		snap.Err = err
		s.feed.logger.Warn("Feed", "Subscription load failed", map[string]interface{}{
			"subscription_id": s.id,
			"error":           err.Error(),
		})
		return snap
	}

	Sort(docs)
	snap.Documents = docs
	return snap
}
