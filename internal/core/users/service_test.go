package users

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Brnd/internal/core/querycache"
)

// mockUserGateway implements Gateway for testing
type mockUserGateway struct {
	user *User

	loginCalls int32
	getMeCalls int32
}

func (m *mockUserGateway) LogIn(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	atomic.AddInt32(&m.loginCalls, 1)
	return &LoginResult{User: m.user, Token: "backend-token"}, nil
}

func (m *mockUserGateway) GetMe(ctx context.Context, token string) (*User, error) {
	atomic.AddInt32(&m.getMeCalls, 1)
	return m.user, nil
}

func (m *mockUserGateway) GetMyVoteHistory(ctx context.Context, token string, pageID, limit int) (*VoteHistory, error) {
	return &VoteHistory{Count: 1, Days: map[string]VoteHistoryEntry{"2026-08-29": {ID: "vote-1"}}}, nil
}

func (m *mockUserGateway) GetUserVoteHistory(ctx context.Context, fid int64, pageID, limit int) (*VoteHistory, error) {
	return &VoteHistory{}, nil
}

func (m *mockUserGateway) GetUserBrands(ctx context.Context, token string) ([]UserBrand, error) {
	return []UserBrand{{Points: 60}}, nil
}

func (m *mockUserGateway) GetVotesForDay(ctx context.Context, token string, unixDate int64) (*UserVote, error) {
	return &UserVote{ID: "vote-1"}, nil
}

func newService(t *testing.T) (Service, *mockUserGateway, *querycache.Store) {
	t.Helper()
	cache, err := querycache.New(64, nil)
	require.NoError(t, err)
	gw := &mockUserGateway{user: &User{ID: "u42", FID: 42, Username: "bob"}}
	return NewUserService(gw, cache), gw, cache
}

func TestLogIn_PrimesAuthCache(t *testing.T) {
	svc, gw, _ := newService(t)

	result, err := svc.LogIn(context.Background(), LoginRequest{FID: 42, Token: "qa-token"})
	require.NoError(t, err)
	assert.Equal(t, "backend-token", result.Token)

	// The first CurrentUser read after login is served from the primed entry.
	user, err := svc.CurrentUser(context.Background(), "backend-token", 42)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, int32(0), atomic.LoadInt32(&gw.getMeCalls))
}

func TestLogIn_Validation(t *testing.T) {
	svc, gw, _ := newService(t)

	_, err := svc.LogIn(context.Background(), LoginRequest{Token: "qa-token"})
	assert.True(t, IsValidationError(err))

	_, err = svc.LogIn(context.Background(), LoginRequest{FID: 42})
	assert.True(t, IsValidationError(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&gw.loginCalls))
}

func TestCurrentUser_CachesAcrossReads(t *testing.T) {
	svc, gw, _ := newService(t)

	_, err := svc.CurrentUser(context.Background(), "backend-token", 42)
	require.NoError(t, err)
	_, err = svc.CurrentUser(context.Background(), "backend-token", 42)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&gw.getMeCalls))
}

func TestCurrentUser_RefetchesAfterAuthInvalidation(t *testing.T) {
	svc, gw, cache := newService(t)

	_, err := svc.CurrentUser(context.Background(), "backend-token", 42)
	require.NoError(t, err)

	// A confirmed vote drops the auth prefix; the next read must observe
	// the flipped hasVotedToday flag from the backend.
	gw.user = &User{ID: "u42", FID: 42, Username: "bob", HasVotedToday: true}
	cache.InvalidatePrefix("auth")

	user, err := svc.CurrentUser(context.Background(), "backend-token", 42)
	require.NoError(t, err)
	assert.True(t, user.HasVotedToday)
	assert.Equal(t, int32(2), atomic.LoadInt32(&gw.getMeCalls))
}

func TestCurrentUser_RequiresToken(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.CurrentUser(context.Background(), "", 42)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSignOut_DropsEverything(t *testing.T) {
	svc, _, cache := newService(t)

	_, err := svc.CurrentUser(context.Background(), "backend-token", 42)
	require.NoError(t, err)
	_, err = svc.Brands(context.Background(), "backend-token", 42)
	require.NoError(t, err)
	require.NotZero(t, cache.Len())

	svc.SignOut(context.Background(), 42)
	assert.Zero(t, cache.Len())
}

func TestMyVoteHistory_Defaults(t *testing.T) {
	svc, _, _ := newService(t)

	history, err := svc.MyVoteHistory(context.Background(), "backend-token", 42, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, history.Count)
	_, ok := history.Days["2026-08-29"]
	assert.True(t, ok)
}

func TestVoteHistoryFor_RequiresFID(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.VoteHistoryFor(context.Background(), 0, 1, 15)
	assert.True(t, IsValidationError(err))
}
