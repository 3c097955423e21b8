package query

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devseo/dashboard-gateway/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.Init()
	m.Run()
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestFetchCachesValue(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeClock(), 0)
	key := Key{Resource: ResourceWebsites}
	calls := 0
	fn := func(context.Context) (any, error) {
		calls++
		return "v1", nil
	}

	for i := 0; i < 3; i++ {
		v, err := store.Fetch(context.Background(), key, fn)
		require.NoError(t, err)
		require.Equal(t, "v1", v)
	}
	require.Equal(t, 1, calls)
}

func TestConcurrentFetchesShareOneBackendCall(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeClock(), 0)
	key := Key{Resource: ResourceScans, ID: "s1"}

	var mu sync.Mutex
	calls := 0
	gate := make(chan struct{})
	fn := func(context.Context) (any, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-gate
		return "scan", nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := 0; i < readers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.Fetch(context.Background(), key, fn)
			require.NoError(t, err)
			results[i] = v
		}()
	}

	// Let the readers pile onto the in-flight request before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 1, calls, "concurrent reads for one key must share a single backend call")
	for _, v := range results {
		require.Equal(t, "scan", v)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeClock(), 0)
	key := Key{Resource: ResourceScans}
	calls := 0
	fn := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	v, err := store.Fetch(context.Background(), key, fn)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	store.Invalidate(key)

	v, err = store.Fetch(context.Background(), key, fn)
	require.NoError(t, err)
	require.Equal(t, 2, v, "invalidated key must re-fetch instead of serving stale data")
}

func TestInvalidateResourceCoversFilteredCollections(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeClock(), 0)
	all := Key{Resource: ResourceScans}
	filtered := Key{Resource: ResourceScans, ID: "w1"}
	other := Key{Resource: ResourceWebsites}
	calls := map[Key]int{}
	fnFor := func(key Key) FetchFunc {
		return func(context.Context) (any, error) {
			calls[key]++
			return calls[key], nil
		}
	}

	for _, key := range []Key{all, filtered, other} {
		_, err := store.Fetch(context.Background(), key, fnFor(key))
		require.NoError(t, err)
	}

	store.InvalidateResource(ResourceScans)

	for _, key := range []Key{all, filtered} {
		v, err := store.Fetch(context.Background(), key, fnFor(key))
		require.NoError(t, err)
		require.Equal(t, 2, v)
	}
	v, err := store.Fetch(context.Background(), other, fnFor(other))
	require.NoError(t, err)
	require.Equal(t, 1, v, "unrelated resources must keep their cache")
}

func TestStaleResponseDoesNotOverwriteFresherData(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeClock(), 0)
	key := Key{Resource: ResourceReports, ID: "s1"}

	staleGate := make(chan struct{})
	staleStarted := make(chan struct{})
	staleDone := make(chan struct{})

	// Older fetch: starts first, resolves last.
	go func() {
		defer close(staleDone)
		_, _ = store.Fetch(context.Background(), key, func(context.Context) (any, error) {
			close(staleStarted)
			<-staleGate
			return "stale", nil
		})
	}()
	<-staleStarted

	// Invalidation supersedes the in-flight fetch; a newer one completes.
	store.Invalidate(key)
	v, err := store.Fetch(context.Background(), key, func(context.Context) (any, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	require.Equal(t, "fresh", v)

	// Let the older fetch resolve after the newer one.
	close(staleGate)
	<-staleDone

	v, err = store.Fetch(context.Background(), key, func(context.Context) (any, error) {
		t.Error("cache should still hold the fresh value")
		return nil, nil
	})
	require.NoError(t, err)
	require.Equal(t, "fresh", v, "the newer result must be the one retained")
}

func TestFetchErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeClock(), 0)
	key := Key{Resource: ResourceWebsites, ID: "w1"}
	calls := 0

	_, err := store.Fetch(context.Background(), key, func(context.Context) (any, error) {
		calls++
		return nil, context.DeadlineExceeded
	})
	require.Error(t, err)

	v, err := store.Fetch(context.Background(), key, func(context.Context) (any, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", v)
	require.Equal(t, 2, calls)
}

func TestTTLExpiresEntries(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	store := NewStore(clk, time.Minute)
	key := Key{Resource: ResourceWebsites}
	calls := 0
	fn := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	_, err := store.Fetch(context.Background(), key, fn)
	require.NoError(t, err)

	clk.Advance(30 * time.Second)
	_, err = store.Fetch(context.Background(), key, fn)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	clk.Advance(31 * time.Second)
	v, err := store.Fetch(context.Background(), key, fn)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}
