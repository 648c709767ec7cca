package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Brnd/internal/core/auth"
)

// memSessionRepo is an in-memory auth.SessionRepo
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*auth.Session)}
}

func (m *memSessionRepo) Create(ctx context.Context, s *auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessionRepo) GetByID(ctx context.Context, id string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, auth.ErrSessionNotFound
}

func (m *memSessionRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func newAuthSetup(t *testing.T) (*SessionAuthMiddleware, *auth.SessionService) {
	t.Helper()
	sessions := auth.NewSessionService(newMemSessionRepo(), []byte("test-secret"), time.Hour)
	return NewSessionAuthMiddleware(sessions), sessions
}

func TestRequireAuth_ValidToken(t *testing.T) {
	m, sessions := newAuthSetup(t)
	token, _, err := sessions.Issue(context.Background(), 42, "backend-token")
	require.NoError(t, err)

	var gotFID int64
	var gotBackend string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFID = GetUserFID(r)
		gotBackend = GetBackendToken(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.RequireAuth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotFID)
	assert.Equal(t, "backend-token", gotBackend)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m, _ := newAuthSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without auth")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_RevokedSession(t *testing.T) {
	m, sessions := newAuthSetup(t)
	token, session, err := sessions.Issue(context.Background(), 42, "backend-token")
	require.NoError(t, err)
	require.NoError(t, sessions.Revoke(context.Background(), session.ID))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a revoked session")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	m, _ := newAuthSetup(t)

	var gotFID int64 = -1
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFID = GetUserFID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	m.OptionalAuth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), gotFID, "anonymous requests run with no session context")
}

func TestOptionalAuth_ValidTokenInjectsContext(t *testing.T) {
	m, sessions := newAuthSetup(t)
	token, _, err := sessions.Issue(context.Background(), 7, "backend-token")
	require.NoError(t, err)

	var gotFID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFID = GetUserFID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.OptionalAuth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotFID)
}
