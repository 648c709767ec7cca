// Package querycache provides the shared, process-wide cache of query
// results. Entries are addressed by a stable key tuple (resource name +
// normalized parameters) and invalidated in bulk by resource prefix, so a
// vote mutation can force every open leaderboard/profile/podium view to
// refetch without enumerating parameter combinations.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultSize bounds the number of live cache entries.
const DefaultSize = 512

// entry wraps a cached value with its freshness window.
type entry struct {
	value      any
	fetchedAt  time.Time
	staleAfter time.Time
}

// Store is a keyed, invalidatable cache of query results. Any view may read;
// only successful mutations or sign-out write invalidations. Concurrent
// readers of the same missing/stale key share one in-flight fetch.
type Store struct {
	cache  *lru.Cache[string, entry]
	group  singleflight.Group
	logger *slog.Logger
}

// New creates a Store bounded to size entries.
func New(size int, logger *slog.Logger) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache backing store: %w", err)
	}
	return &Store{cache: c, logger: logger}, nil
}

// Key builds the canonical cache key for a resource and its parameters.
// Parameters are sorted by name so two reads with the same logical arguments
// always address the same entry. The resource name is the invalidation
// prefix.
func Key(resource string, params map[string]any) string {
	if len(params) == 0 {
		return resource
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(resource)
	for i, name := range names {
		if i == 0 {
			b.WriteByte(':')
		} else {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%s=%v", name, params[name])
	}
	return b.String()
}

// Get returns the cached value for key if present and fresh.
func (s *Store) Get(key string) (any, bool) {
	e, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(e.staleAfter) {
		s.cache.Remove(key)
		return nil, false
	}
	return e.value, true
}

// Set writes a value with the given freshness window.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	now := time.Now()
	s.cache.Add(key, entry{
		value:      value,
		fetchedAt:  now,
		staleAfter: now.Add(ttl),
	})
}

// GetOrFetch returns the fresh cached value for key, or runs fetch and
// caches its result. Simultaneous callers for the same key are coalesced
// into a single fetch; every caller observes the same result. A failed
// fetch caches nothing.
func (s *Store) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have filled the
		// entry between our miss and the flight starting.
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("coalesced concurrent cache fetch", "key", key)
	}
	return v, nil
}

// InvalidatePrefix drops every entry whose key begins with any of the given
// resource prefixes. The prefixes are applied together as a set: callers
// observe either none or all of the listed invalidations.
func (s *Store) InvalidatePrefix(prefixes ...string) {
	removed := 0
	for _, key := range s.cache.Keys() {
		for _, prefix := range prefixes {
			if key == prefix || strings.HasPrefix(key, prefix+":") {
				s.cache.Remove(key)
				removed++
				break
			}
		}
	}
	s.logger.Debug("cache prefixes invalidated",
		"prefixes", prefixes,
		"entries_removed", removed)
}

// Clear drops every entry regardless of prefix. Used on sign-out, when
// identity itself changed.
func (s *Store) Clear() {
	s.cache.Purge()
	s.logger.Debug("cache cleared")
}

// Len returns the number of live entries, fresh or stale.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Fetch is a typed wrapper over Store.GetOrFetch.
func Fetch[T any](ctx context.Context, s *Store, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.GetOrFetch(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
