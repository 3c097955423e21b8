// Package query caches backend reads, de-duplicates concurrent fetches, and
// applies the invalidation rules that keep dashboard views fresh after
// mutations.
package query

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/devseo/dashboard-gateway/internal/clock"
	"github.com/devseo/dashboard-gateway/internal/metrics"
)

// Key identifies one cached resource. ID is empty for whole collections.
type Key struct {
	Resource string
	ID       string
}

func (k Key) String() string {
	return k.Resource + "/" + k.ID
}

// FetchFunc loads the value for a key from the backend.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
	gen       uint64
}

// Store is the in-memory read cache. Concurrent fetches for one key collapse
// into a single in-flight request, and a per-key generation counter ensures a
// response from before an invalidation never overwrites fresher data.
//
// Errors are never cached: a failed fetch leaves the key empty so the next
// read re-attempts, matching the no-implicit-retry contract (the consumer has
// to issue a new read).
type Store struct {
	clk clock.Clock
	ttl time.Duration

	mu      sync.Mutex
	entries map[Key]entry
	gens    map[Key]uint64

	flights singleflight.Group
}

// NewStore constructs a Store. A zero ttl keeps entries until invalidated.
func NewStore(clk clock.Clock, ttl time.Duration) *Store {
	return &Store{
		clk:     clk,
		ttl:     ttl,
		entries: make(map[Key]entry),
		gens:    make(map[Key]uint64),
	}
}

// Fetch returns the cached value for key, or loads it via fn. Callers issuing
// the same key concurrently share one backend call.
func (s *Store) Fetch(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && e.gen == s.gens[key] && !s.expired(e) {
		s.mu.Unlock()
		metrics.ObserveCache(key.Resource, "hit")
		return e.value, nil
	}
	startGen := s.gens[key]
	s.mu.Unlock()
	metrics.ObserveCache(key.Resource, "miss")

	value, err, _ := s.flights.Do(key.String(), func() (any, error) {
		v, fetchErr := fn(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		s.commit(key, startGen, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Refresh forces a fresh backend read for key, bypassing any cached value.
// The result is cached under the new generation.
func (s *Store) Refresh(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	s.Invalidate(key)
	return s.Fetch(ctx, key, fn)
}

// Invalidate bumps the generation for each key so the next read re-fetches.
// Any fetch still in flight for an invalidated key is forgotten and its
// eventual result discarded.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	for _, key := range keys {
		s.gens[key]++
		delete(s.entries, key)
		s.flights.Forget(key.String())
		metrics.ObserveCache(key.Resource, "invalidate")
	}
	s.mu.Unlock()
}

// InvalidateResource invalidates every known key of one resource, collections
// included. Used by mutations whose effect spans filtered views (e.g. a new
// scan shows up in both the global and the per-website scan lists).
func (s *Store) InvalidateResource(resource string) {
	s.mu.Lock()
	for key := range s.gens {
		if key.Resource != resource {
			continue
		}
		s.gens[key]++
		delete(s.entries, key)
		s.flights.Forget(key.String())
	}
	s.mu.Unlock()
	metrics.ObserveCache(resource, "invalidate")
}

// commit stores a fetched value unless the key moved to a newer generation
// while the fetch was in flight.
func (s *Store) commit(key Key, startGen uint64, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[key] != startGen {
		metrics.ObserveCache(key.Resource, "stale_drop")
		return
	}
	s.entries[key] = entry{value: value, fetchedAt: s.clk.Now(), gen: startGen}
}

func (s *Store) expired(e entry) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.clk.Now().Sub(e.fetchedAt) > s.ttl
}
