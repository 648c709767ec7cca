package pagination

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int
	Name string
}

func rowKey(r row) string { return strconv.Itoa(r.ID) }

// pagedSource serves deterministic pages of sequential rows.
func pagedSource(totalItems int) FetchFunc[row] {
	return func(ctx context.Context, page, limit int) (Page[row], error) {
		start := (page - 1) * limit
		var items []row
		for i := start; i < start+limit && i < totalItems; i++ {
			items = append(items, row{ID: i + 1, Name: "row-" + strconv.Itoa(i+1)})
		}
		return Page[row]{
			Items: items,
			Meta: Meta{
				Page:        page,
				Limit:       limit,
				Total:       totalItems,
				HasNextPage: start+limit < totalItems,
			},
		}, nil
	}
}

func TestController_LoadFirstPage(t *testing.T) {
	c := NewController(3, pagedSource(7), rowKey)

	require.NoError(t, c.Load(context.Background(), 1))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 7, c.Total())
	assert.True(t, c.HasMore())
}

func TestController_LoadNextAccumulatesInOrder(t *testing.T) {
	c := NewController(3, pagedSource(7), rowKey)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx, 1))
	require.NoError(t, c.LoadNext(ctx))
	require.NoError(t, c.LoadNext(ctx))

	items := c.Items()
	require.Len(t, items, 7)
	for i, it := range items {
		assert.Equal(t, i+1, it.ID, "pages append in order, never reorder")
	}
	assert.False(t, c.HasMore())
}

func TestController_LoadNextExhaustedIsNoop(t *testing.T) {
	c := NewController(5, pagedSource(4), rowKey)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx, 1))
	require.False(t, c.HasMore())

	require.NoError(t, c.LoadNext(ctx))
	assert.Len(t, c.Items(), 4, "an exhausted list issues no further fetches")
	assert.Equal(t, 1, c.Page())
}

func TestController_ConcurrentLoadNextFetchesOnce(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	gate := make(chan struct{})

	fetch := func(ctx context.Context, page, limit int) (Page[row], error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-gate
		return pagedSource(20)(ctx, page, limit)
	}

	c := NewController(5, fetch, rowKey)
	ctx := context.Background()

	// Seed page 1.
	go close(gate)
	require.NoError(t, c.Load(ctx, 1))

	gate2 := make(chan struct{})
	c2calls := 0
	c.Reset(func(ctx context.Context, page, limit int) (Page[row], error) {
		mu.Lock()
		c2calls++
		mu.Unlock()
		<-gate2
		return pagedSource(20)(ctx, page, limit)
	})

	// Fire several scroll triggers at once; only one fetch may leave.
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.LoadNext(ctx))
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(gate2)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, c2calls, "rapid triggers collapse into one in-flight fetch")
}

func TestController_ResetDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	slow := func(ctx context.Context, page, limit int) (Page[row], error) {
		<-release
		return Page[row]{
			Items: []row{{ID: 99, Name: "stale"}},
			Meta:  Meta{Page: page, Limit: limit, Total: 1, HasNextPage: false},
		}, nil
	}

	c := NewController(3, slow, rowKey)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.Load(ctx, 1) }()
	time.Sleep(20 * time.Millisecond)

	// The list identity changes while the fetch is in flight.
	c.Reset(pagedSource(2))
	close(release)
	require.NoError(t, <-done)

	assert.Empty(t, c.Items(), "a response from the old list identity is discarded, not merged")

	// The new identity loads normally.
	require.NoError(t, c.Load(ctx, 1))
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "row-1", items[0].Name)
}

func TestController_ErrorKeepsLoadedPages(t *testing.T) {
	wantErr := errors.New("page fetch failed")
	failAfterFirst := func(ctx context.Context, page, limit int) (Page[row], error) {
		if page > 1 {
			return Page[row]{}, wantErr
		}
		return pagedSource(10)(ctx, page, limit)
	}

	c := NewController(3, failAfterFirst, rowKey)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx, 1))
	err := c.LoadNext(ctx)
	assert.ErrorIs(t, err, wantErr)

	assert.Len(t, c.Items(), 3, "already-loaded pages stay visible on a failed fetch")
	assert.Equal(t, 1, c.Page())
	assert.False(t, c.Fetching())
}

func TestController_InPageDedupe(t *testing.T) {
	fetch := func(ctx context.Context, page, limit int) (Page[row], error) {
		return Page[row]{
			Items: []row{{ID: 1}, {ID: 2}, {ID: 1}},
			Meta:  Meta{Page: page, Limit: limit, Total: 3, HasNextPage: false},
		}, nil
	}

	c := NewController(3, fetch, rowKey)
	require.NoError(t, c.Load(context.Background(), 1))

	items := c.Items()
	require.Len(t, items, 2, "duplicates within one page are dropped")
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[1].ID)
}

func TestController_NoCrossPageDedupe(t *testing.T) {
	// The backend legitimately re-serves an id on a later page after a
	// reorder; the accumulated list keeps both occurrences.
	fetch := func(ctx context.Context, page, limit int) (Page[row], error) {
		return Page[row]{
			Items: []row{{ID: 7, Name: "page-" + strconv.Itoa(page)}},
			Meta:  Meta{Page: page, Limit: limit, Total: 2, HasNextPage: page < 2},
		}, nil
	}

	c := NewController(1, fetch, rowKey)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx, 1))
	require.NoError(t, c.LoadNext(ctx))

	assert.Len(t, c.Items(), 2, "ids are not deduplicated across pages")
}

func TestController_LoadingVsFetching(t *testing.T) {
	release := make(chan struct{})
	fetch := func(ctx context.Context, page, limit int) (Page[row], error) {
		<-release
		return pagedSource(10)(ctx, page, limit)
	}

	c := NewController(3, fetch, rowKey)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.Load(ctx, 1) }()
	time.Sleep(20 * time.Millisecond)
	assert.True(t, c.Loading(), "first load with no data is the full-loader state")
	assert.False(t, c.Fetching())

	release <- struct{}{}
	require.NoError(t, <-done)

	go func() { done <- c.LoadNext(ctx) }()
	time.Sleep(20 * time.Millisecond)
	assert.False(t, c.Loading())
	assert.True(t, c.Fetching(), "next-page load with data showing is the inline-spinner state")

	release <- struct{}{}
	require.NoError(t, <-done)
}

func TestNearBottom(t *testing.T) {
	// 1000px of content in a 400px viewport: the trigger line sits at
	// scrollTop 550 (600 - threshold 50).
	assert.False(t, NearBottom(500, 400, 1000))
	assert.True(t, NearBottom(550, 400, 1000))
	assert.True(t, NearBottom(600, 400, 1000))
}
