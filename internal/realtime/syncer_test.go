package realtime

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSyncer(t *testing.T) *Syncer {
	t.Helper()
	backend, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	s := New(backend, slog.New(slog.DiscardHandler))
	t.Cleanup(s.Close)
	return s
}

func waitFor(t *testing.T, ch <-chan *domain.Dataset) *domain.Dataset {
	t.Helper()
	select {
	case ds := <-ch:
		return ds
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
		return nil
	}
}

func TestSubscribe_InitialDeliveryIsNilWhenEmpty(t *testing.T) {
	s := setupSyncer(t)

	got := make(chan *domain.Dataset, 1)
	dispose := s.Subscribe(context.Background(), func(ds *domain.Dataset) { got <- ds })
	defer dispose()

	assert.Nil(t, waitFor(t, got))
}

func TestSubscribe_InitialDeliveryOfStoredState(t *testing.T) {
	s := setupSyncer(t)
	ctx := context.Background()

	countries := []domain.Entity{{ID: "usa", Name: "United States", Score: 98.5, Rank: 1}}
	_, err := s.Save(ctx, domain.Patch{Countries: &countries})
	require.NoError(t, err)

	got := make(chan *domain.Dataset, 1)
	dispose := s.Subscribe(ctx, func(ds *domain.Dataset) { got <- ds })
	defer dispose()

	ds := waitFor(t, got)
	require.NotNil(t, ds)
	assert.Equal(t, "usa", ds.Countries[0].ID)
}

func TestSave_EchoesBackToSaver(t *testing.T) {
	s := setupSyncer(t)
	ctx := context.Background()

	got := make(chan *domain.Dataset, 4)
	dispose := s.Subscribe(ctx, func(ds *domain.Dataset) { got <- ds })
	defer dispose()

	assert.Nil(t, waitFor(t, got)) // initial

	countries := []domain.Entity{{ID: "rus", Name: "Russia", Score: 94.2, Rank: 1}}
	merged, err := s.Save(ctx, domain.Patch{Countries: &countries})
	require.NoError(t, err)

	echoed := waitFor(t, got)
	require.NotNil(t, echoed)
	assert.Equal(t, merged, echoed)
}

func TestSave_ReachesAllSubscribers(t *testing.T) {
	s := setupSyncer(t)
	ctx := context.Background()

	a := make(chan *domain.Dataset, 4)
	b := make(chan *domain.Dataset, 4)
	disposeA := s.Subscribe(ctx, func(ds *domain.Dataset) { a <- ds })
	defer disposeA()
	disposeB := s.Subscribe(ctx, func(ds *domain.Dataset) { b <- ds })
	defer disposeB()

	waitFor(t, a)
	waitFor(t, b)

	cats := []string{"Military"}
	_, err := s.Save(ctx, domain.Patch{Categories: &cats})
	require.NoError(t, err)

	require.NotNil(t, waitFor(t, a))
	require.NotNil(t, waitFor(t, b))
}

func TestDispose_StopsDelivery(t *testing.T) {
	s := setupSyncer(t)
	ctx := context.Background()

	got := make(chan *domain.Dataset, 4)
	dispose := s.Subscribe(ctx, func(ds *domain.Dataset) { got <- ds })
	waitFor(t, got) // initial

	dispose()
	dispose() // disposing twice is harmless

	cats := []string{"Military"}
	_, err := s.Save(ctx, domain.Patch{Categories: &cats})
	require.NoError(t, err)

	select {
	case ds := <-got:
		t.Fatalf("delivery after dispose: %+v", ds)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSave_EmptyPatchDoesNotBroadcast(t *testing.T) {
	s := setupSyncer(t)
	ctx := context.Background()

	got := make(chan *domain.Dataset, 4)
	dispose := s.Subscribe(ctx, func(ds *domain.Dataset) { got <- ds })
	defer dispose()
	waitFor(t, got) // initial

	_, err := s.Save(ctx, domain.Patch{})
	require.NoError(t, err)

	select {
	case <-got:
		t.Fatal("empty patch should not produce a revision")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEnsureSeeded_BroadcastsOnlyWhenWritten(t *testing.T) {
	s := setupSyncer(t)
	ctx := context.Background()

	got := make(chan *domain.Dataset, 4)
	dispose := s.Subscribe(ctx, func(ds *domain.Dataset) { got <- ds })
	defer dispose()
	assert.Nil(t, waitFor(t, got)) // initial, no document yet

	seed := domain.DefaultDataset()
	ds, err := s.EnsureSeeded(ctx, seed)
	require.NoError(t, err)
	require.NotNil(t, ds)

	seeded := waitFor(t, got)
	require.NotNil(t, seeded)
	assert.Len(t, seeded.Countries, len(seed.Countries))

	// Already seeded: no further revision.
	_, err = s.EnsureSeeded(ctx, seed)
	require.NoError(t, err)
	select {
	case <-got:
		t.Fatal("second seed should not produce a revision")
	case <-time.After(100 * time.Millisecond):
	}
}

// stalledLoadBackend snapshots the stored state on the first Load, then
// blocks until released before returning that (possibly stale) snapshot.
// Save signals once the write has committed.
type stalledLoadBackend struct {
	store.Backend
	entered   chan struct{}
	release   chan struct{}
	committed chan struct{}
	stallOnce sync.Once
	saveOnce  sync.Once
}

func (b *stalledLoadBackend) Load(ctx context.Context) (*domain.Dataset, error) {
	ds, err := b.Backend.Load(ctx)
	b.stallOnce.Do(func() {
		close(b.entered)
		<-b.release
	})
	return ds, err
}

func (b *stalledLoadBackend) Save(ctx context.Context, patch domain.Patch) (*domain.Dataset, error) {
	ds, err := b.Backend.Save(ctx, patch)
	b.saveOnce.Do(func() { close(b.committed) })
	return ds, err
}

func TestSubscribe_DoesNotMissSaveDuringInitialLoad(t *testing.T) {
	backend, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	stalled := &stalledLoadBackend{
		Backend:   backend,
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
		committed: make(chan struct{}),
	}
	s := New(stalled, slog.New(slog.DiscardHandler))
	t.Cleanup(s.Close)

	got := make(chan *domain.Dataset, 4)
	disposed := make(chan func(), 1)
	go func() {
		disposed <- s.Subscribe(context.Background(), func(ds *domain.Dataset) { got <- ds })
	}()
	<-stalled.entered

	// Commit a save while the subscription's initial load is in flight,
	// then let the load resume.
	saved := make(chan error, 1)
	go func() {
		cats := []string{"Military"}
		_, err := s.Save(context.Background(), domain.Patch{Categories: &cats})
		saved <- err
	}()
	<-stalled.committed
	close(stalled.release)

	require.NoError(t, <-saved)
	dispose := <-disposed
	defer dispose()

	// The saved revision must reach the subscriber, either as the initial
	// snapshot or as the broadcast right after it.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ds := <-got:
			if ds != nil && len(ds.Categories) == 1 && ds.Categories[0] == "Military" {
				return
			}
		case <-deadline:
			t.Fatal("saved revision never delivered to the new subscriber")
		}
	}
}

func TestSubscriberCallbackCannotMutateSharedState(t *testing.T) {
	s := setupSyncer(t)
	ctx := context.Background()

	tampered := make(chan *domain.Dataset, 4)
	dispose := s.Subscribe(ctx, func(ds *domain.Dataset) {
		if ds != nil && len(ds.Countries) > 0 {
			ds.Countries[0].Name = "tampered"
		}
		tampered <- ds
	})
	defer dispose()
	waitFor(t, tampered)

	countries := []domain.Entity{{ID: "usa", Name: "United States"}}
	merged, err := s.Save(ctx, domain.Patch{Countries: &countries})
	require.NoError(t, err)
	waitFor(t, tampered)

	assert.Equal(t, "United States", merged.Countries[0].Name)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "United States", loaded.Countries[0].Name)
}
