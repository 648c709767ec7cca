package leaderboard

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Brnd/internal/core/pagination"
	"Brnd/internal/core/querycache"
)

// mockLeaderboardGateway implements Gateway for testing
type mockLeaderboardGateway struct {
	calls int32
}

func (m *mockLeaderboardGateway) GetLeaderboard(ctx context.Context, token string, page, limit int, timeframe string) (*Page, error) {
	atomic.AddInt32(&m.calls, 1)
	return &Page{
		Users: []Entry{{FID: 10, Username: "alice", Rank: 1, Points: 500}},
		Meta:  pagination.Meta{Page: page, Limit: limit, Total: 1},
	}, nil
}

func newLeaderboardService(t *testing.T) (Service, *mockLeaderboardGateway, *querycache.Store) {
	t.Helper()
	cache, err := querycache.New(64, nil)
	require.NoError(t, err)
	gw := &mockLeaderboardGateway{}
	return NewLeaderboardService(gw, cache), gw, cache
}

func TestPage_CachedPerTimeframe(t *testing.T) {
	svc, gw, _ := newLeaderboardService(t)
	ctx := context.Background()

	_, err := svc.Page(ctx, "token", 42, 1, 50, TimeframeAll)
	require.NoError(t, err)
	_, err = svc.Page(ctx, "token", 42, 1, 50, TimeframeAll)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gw.calls))

	// A timeframe switch is a different list identity and a different entry.
	_, err = svc.Page(ctx, "token", 42, 1, 50, TimeframeWeek)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&gw.calls))
}

func TestPage_KeyedByCaller(t *testing.T) {
	svc, gw, _ := newLeaderboardService(t)
	ctx := context.Background()

	// The response carries per-caller ranking context, so two fids cannot
	// share an entry.
	_, err := svc.Page(ctx, "token-a", 1, 1, 50, TimeframeAll)
	require.NoError(t, err)
	_, err = svc.Page(ctx, "token-b", 2, 1, 50, TimeframeAll)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&gw.calls))
}

func TestPage_InvalidTimeframeRejected(t *testing.T) {
	svc, gw, _ := newLeaderboardService(t)

	_, err := svc.Page(context.Background(), "token", 42, 1, 50, "decade")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, int32(0), atomic.LoadInt32(&gw.calls))
}

func TestPage_EmptyTimeframeDefaultsToAll(t *testing.T) {
	svc, gw, _ := newLeaderboardService(t)
	ctx := context.Background()

	_, err := svc.Page(ctx, "token", 42, 1, 50, "")
	require.NoError(t, err)
	_, err = svc.Page(ctx, "token", 42, 1, 50, TimeframeAll)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gw.calls), "empty and explicit all share an entry")
}

func TestPage_RefetchAfterInvalidation(t *testing.T) {
	svc, gw, cache := newLeaderboardService(t)
	ctx := context.Background()

	_, err := svc.Page(ctx, "token", 42, 1, 50, TimeframeAll)
	require.NoError(t, err)

	cache.InvalidatePrefix("leaderboard")

	_, err = svc.Page(ctx, "token", 42, 1, 50, TimeframeAll)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&gw.calls))
}
