// Package realtime keeps subscribers in sync with the persisted dataset
// document. Every save is echoed back to every subscriber, the saver included,
// so all views converge on the stored state.
package realtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/id"
	"github.com/globaldefense/index-server/internal/store"
)

// SnapshotFunc receives dataset revisions. A nil dataset means no document
// exists (or it could not be read) at subscription time.
type SnapshotFunc func(*domain.Dataset)

// subscriber delivers revisions on its own goroutine. The slot channel has
// capacity one and newer revisions displace older undelivered ones, so a slow
// subscriber sees a coalesced stream but always in order and always ending on
// the latest state.
type subscriber struct {
	fn    SnapshotFunc
	pubMu sync.Mutex
	slot  chan *domain.Dataset
	done  chan struct{}
}

func (s *subscriber) run() {
	for {
		select {
		case ds := <-s.slot:
			s.fn(ds)
		case <-s.done:
			return
		}
	}
}

func (s *subscriber) publish(ds *domain.Dataset) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	for {
		select {
		case s.slot <- ds:
			return
		default:
		}
		// Slot occupied: displace the stale revision and retry.
		select {
		case <-s.slot:
		default:
		}
	}
}

// Syncer coordinates reads, writes, and subscriptions over one Backend.
type Syncer struct {
	backend store.Backend
	logger  *slog.Logger

	mu     sync.Mutex
	subs   map[string]*subscriber
	closed bool
}

// New creates a Syncer over the given backend.
func New(backend store.Backend, logger *slog.Logger) *Syncer {
	return &Syncer{
		backend: backend,
		logger:  logger,
		subs:    make(map[string]*subscriber),
	}
}

// Load returns the current dataset, or (nil, nil) when none exists.
func (s *Syncer) Load(ctx context.Context) (*domain.Dataset, error) {
	return s.backend.Load(ctx)
}

// Subscribe registers fn for dataset revisions and returns a disposer.
// The current state is delivered immediately: the stored dataset, or nil when
// no document exists or the backend is unreachable. Subscribing never fails.
func (s *Syncer) Subscribe(ctx context.Context, fn SnapshotFunc) (dispose func()) {
	sub := &subscriber{
		fn:   fn,
		slot: make(chan *domain.Dataset, 1),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}

	// The initial load happens under the lock: a concurrent Save commits to
	// the backend before its broadcast can take the lock, so the save is
	// either visible to this load or delivered once the subscriber is
	// registered. Loading first would let a revision slip between the two.
	initial, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Warn("initial load failed, delivering empty state", "error", err)
		initial = nil
	}

	subID := id.MustGenerate("sub")
	s.subs[subID] = sub
	total := len(s.subs)
	// Slot the initial state before any broadcast can see this subscriber,
	// so updates are never delivered ahead of it.
	sub.publish(initial)
	s.mu.Unlock()

	go sub.run()

	s.logger.Debug("subscriber registered", "subscriber_id", subID, "total", total)

	return func() {
		s.mu.Lock()
		registered, ok := s.subs[subID]
		if ok {
			delete(s.subs, subID)
		}
		s.mu.Unlock()
		if ok {
			close(registered.done)
		}
	}
}

// Save merges the patch into the stored document, broadcasts the merged
// result to every subscriber, and returns it.
func (s *Syncer) Save(ctx context.Context, patch domain.Patch) (*domain.Dataset, error) {
	if patch.IsEmpty() {
		return s.backend.Load(ctx)
	}

	merged, err := s.backend.Save(ctx, patch)
	if err != nil {
		return nil, err
	}

	s.broadcast(merged)
	return merged, nil
}

// EnsureSeeded seeds the backend with the given dataset when no document
// exists, broadcasting the seed to subscribers if it was written.
func (s *Syncer) EnsureSeeded(ctx context.Context, seed *domain.Dataset) (*domain.Dataset, error) {
	stored, wrote, err := s.backend.EnsureSeeded(ctx, seed)
	if err != nil {
		return nil, err
	}
	if wrote {
		s.broadcast(stored)
	}
	return stored, nil
}

// Close detaches all subscribers. The backend is closed by its owner.
func (s *Syncer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		close(sub.done)
	}
	s.subs = make(map[string]*subscriber)
}

// broadcast hands each subscriber its own deep copy so callbacks can never
// mutate shared state. Publishing never blocks, so holding the lock keeps
// concurrent saves from reordering revisions between subscribers.
func (s *Syncer) broadcast(ds *domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		sub.publish(ds.Clone())
	}
}
