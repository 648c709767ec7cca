// Package pagination provides page-indexed list accumulation for the
// scrollable views (leaderboard, vote history, public podium feed).
// Each view owns exactly one Controller; pages are appended in order and
// never reordered.
package pagination

import (
	"context"
	"fmt"
	"sync"
)

// ScrollThresholdPx is how close to the bottom of a scrollable region the
// consumer must be before triggering a background fetch of the next page.
const ScrollThresholdPx = 50

// Meta describes the backend's pagination envelope for a single page.
type Meta struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	HasNextPage bool `json:"hasNextPage"`
}

// Page is one fetched page of items plus its pagination envelope.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"pagination"`
}

// FetchFunc retrieves a single page from the data source. Implementations
// normally go through the query cache so a fresh page is not re-fetched.
type FetchFunc[T any] func(ctx context.Context, page, limit int) (Page[T], error)

// Controller maintains one strictly-growing ordered collection backed by
// page-indexed fetches. A filter change is a new list identity: callers must
// Reset, which bumps the generation token so stale in-flight responses are
// discarded instead of being merged into the new list.
type Controller[T any] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]
	keyOf func(T) string // optional, for in-page dedupe

	limit      int
	items      []T
	page       int // highest page merged so far
	total      int
	hasNext    bool
	generation uint64
	loading    bool // initial load (no data yet) in flight
	fetching   bool // background next-page fetch in flight
}

// NewController creates a controller for pages of the given size.
// keyOf may be nil when in-page dedupe is not needed.
func NewController[T any](limit int, fetch FetchFunc[T], keyOf func(T) string) *Controller[T] {
	return &Controller[T]{
		fetch:   fetch,
		keyOf:   keyOf,
		limit:   limit,
		hasNext: true, // unknown until the first page arrives
	}
}

// Load fetches the given page and merges it into the collection.
// Page numbers are 1-based. Loading page 1 implicitly resets nothing: it is
// only valid as the first fetch after construction or Reset.
func (c *Controller[T]) Load(ctx context.Context, pageNumber int) error {
	if pageNumber < 1 {
		return fmt.Errorf("invalid page number %d", pageNumber)
	}

	c.mu.Lock()
	if c.loading || c.fetching {
		c.mu.Unlock()
		return nil // a fetch for this list is already in flight
	}
	if len(c.items) == 0 {
		c.loading = true
	} else {
		c.fetching = true
	}
	gen := c.generation
	limit := c.limit
	c.mu.Unlock()

	page, err := c.fetch(ctx, pageNumber, limit)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.fetching = false

	if gen != c.generation {
		// List identity changed while the fetch was in flight (e.g. a
		// timeframe switch). The response belongs to the old list.
		return nil
	}
	if err != nil {
		// Keep previously loaded pages visible; the consumer renders a
		// retry affordance alongside the existing items.
		return err
	}

	c.merge(page, pageNumber)
	return nil
}

// LoadNext fetches page N+1 if the last observed envelope reported more
// pages. It is a no-op while another fetch is in flight or when the list is
// exhausted, so rapid scroll triggers issue at most one request.
func (c *Controller[T]) LoadNext(ctx context.Context) error {
	c.mu.Lock()
	if !c.hasNext || c.loading || c.fetching {
		c.mu.Unlock()
		return nil
	}
	next := c.page + 1
	c.mu.Unlock()

	return c.Load(ctx, next)
}

// Reset discards the accumulated collection and installs a new fetch
// function, bumping the generation token. Used when the list identity
// changes (timeframe/period/filter switch).
func (c *Controller[T]) Reset(fetch FetchFunc[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if fetch != nil {
		c.fetch = fetch
	}
	c.items = nil
	c.page = 0
	c.total = 0
	c.hasNext = true
}

// merge appends the page's items, deduplicating within the incoming page
// when a key function is configured. Ids are not deduplicated across pages:
// backend pages are disjoint by contiguous offset, and the in-page dedupe
// only guards against a concurrent backend-side reorder.
func (c *Controller[T]) merge(page Page[T], pageNumber int) {
	if c.keyOf == nil {
		c.items = append(c.items, page.Items...)
	} else {
		seen := make(map[string]struct{}, len(page.Items))
		for _, it := range page.Items {
			k := c.keyOf(it)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			c.items = append(c.items, it)
		}
	}

	if pageNumber > c.page {
		c.page = pageNumber
	}
	c.total = page.Meta.Total
	c.hasNext = page.Meta.HasNextPage
}

// Items returns a copy of the accumulated collection.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// HasMore reports whether the backend signalled another page.
func (c *Controller[T]) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasNext
}

// Loading reports an initial load: no data yet and a fetch in flight.
// Consumers render a full loader for this and an inline spinner for Fetching.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Fetching reports a background next-page fetch while data is already shown.
func (c *Controller[T]) Fetching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetching
}

// Page returns the highest page number merged so far (0 before any load).
func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Total returns the backend-reported total item count from the last page.
func (c *Controller[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Generation returns the current list identity token.
func (c *Controller[T]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// NearBottom reports whether a scroll position is within ScrollThresholdPx
// of the end of the content, the trigger condition for LoadNext.
func NearBottom(scrollTop, viewportHeight, contentHeight float64) bool {
	return contentHeight-(scrollTop+viewportHeight) <= ScrollThresholdPx
}
