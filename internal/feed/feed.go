package feed

import (
	"context"
	"sync"
	"time"

	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/pkg/logger"
)

// Loader reads the current document set for a filter.
type Loader interface {
	List(ctx context.Context, filter entity.DocumentFilter) ([]*entity.Document, error)
}

// Feed owns every live subscription of the process. Subscriptions are
// created through a Scope so each owner holds at most one at a time.
type Feed struct {
	loader  Loader
	logger  logger.ILogger
	timeout time.Duration

	mu       sync.Mutex
	nextId   uint64
	subs     map[uint64]*Subscription
	watchers map[uint64]*TaxonomyWatch
}

func New(loader Loader, log logger.ILogger, timeout time.Duration) *Feed {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Feed{
		loader:   loader,
		logger:   log,
		timeout:  timeout,
		subs:     make(map[uint64]*Subscription),
		watchers: make(map[uint64]*TaxonomyWatch),
	}
}

// subscribe starts a subscription whose first snapshot is the current set.
func (f *Feed) subscribe(ctx context.Context, filter entity.DocumentFilter) *Subscription {
	subCtx, cancel := context.WithCancel(ctx)

	f.mu.Lock()
	f.nextId++
	s := &Subscription{
		id:     f.nextId,
		filter: filter,
		feed:   f,
		out:    make(chan Snapshot),
		dirty:  make(chan struct{}, 1),
		done:   make(chan struct{}),
		ctx:    subCtx,
		cancel: cancel,
	}
	f.subs[s.id] = s
	f.mu.Unlock()

	s.markDirty()
	go s.run()

	f.logger.Debug("Feed", "Subscription opened", map[string]interface{}{
		"subscription_id": s.id,
		"subject_id":      deref(filter.SubjectId),
		"subtopic_id":     deref(filter.SubtopicId),
	})
	return s
}

func (f *Feed) remove(id uint64) {
	f.mu.Lock()
	delete(f.subs, id)
	f.mu.Unlock()

	f.logger.Debug("Feed", "Subscription closed", map[string]interface{}{"subscription_id": id})
}

// ActiveSubscriptions counts subscriptions that have not been closed.
func (f *Feed) ActiveSubscriptions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Notify routes a change notice to the subscriptions and watchers it affects.
func (f *Feed) Notify(n Notice) {
	switch n.Kind {
	case DocumentChanged:
		f.invalidate(n)
	case SubtopicAdded, SubjectsChanged:
		f.broadcastTaxonomy(n)
	default:
		f.logger.Warn("Feed", "Unknown notice kind", map[string]interface{}{"kind": n.Kind})
	}
}

func (f *Feed) invalidate(n Notice) {
	f.mu.Lock()
	var touched []*Subscription
	for _, s := range f.subs {
		if n.Touches(s.filter) {
			touched = append(touched, s)
		}
	}
	f.mu.Unlock()

	for _, s := range touched {
		s.markDirty()
	}
}

// WatchTaxonomy registers for subtopic and subject notices. The watch must
// be closed by its owner.
func (f *Feed) WatchTaxonomy() *TaxonomyWatch {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextId++
	w := &TaxonomyWatch{
		id:   f.nextId,
		feed: f,
		ch:   make(chan Notice, 16),
	}
	f.watchers[w.id] = w
	return w
}

func (f *Feed) broadcastTaxonomy(n Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, w := range f.watchers {
		w.offer(n)
	}
}

// TaxonomyWatch delivers taxonomy notices. A watcher that falls behind loses
// the oldest pending notices, never the newest.
type TaxonomyWatch struct {
	id        uint64
	feed      *Feed
	ch        chan Notice
	closeOnce sync.Once
}

func (w *TaxonomyWatch) C() <-chan Notice {
	return w.ch
}

func (w *TaxonomyWatch) Close() {
	w.closeOnce.Do(func() {
		w.feed.mu.Lock()
		delete(w.feed.watchers, w.id)
		w.feed.mu.Unlock()
	})
}

// offer is called with feed.mu held.
func (w *TaxonomyWatch) offer(n Notice) {
	for {
		select {
		case w.ch <- n:
			return
		default:
		}
		select {
		case <-w.ch:
		default:
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
