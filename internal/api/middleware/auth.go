package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"Brnd/internal/core/auth"
)

// Context keys for storing session information
type contextKey string

const (
	UserFIDKey      contextKey = "user_fid"
	SessionIDKey    contextKey = "session_id"
	BackendTokenKey contextKey = "backend_token"
)

// SessionAuthMiddleware enforces session authentication for protected routes
// Validates session JWT Bearer tokens from the Authorization header
type SessionAuthMiddleware struct {
	sessions *auth.SessionService
}

// NewSessionAuthMiddleware creates a new session auth middleware
func NewSessionAuthMiddleware(sessions *auth.SessionService) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{sessions: sessions}
}

// RequireAuth middleware ensures the user holds a valid session token
// If not authenticated, returns 401
// If authenticated, injects fid, session id and backend token into context
func (m *SessionAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeAuthError(w, "Missing or malformed Authorization header. Expected: Bearer <token>")
			return
		}

		session, err := m.sessions.Verify(r.Context(), token)
		if err != nil {
			log.Printf("[AUTH_FAILURE] type=verification_failed ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), UserFIDKey, session.FID)
		ctx = context.WithValue(ctx, SessionIDKey, session.ID)
		ctx = context.WithValue(ctx, BackendTokenKey, session.BackendToken)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads session info if present, but doesn't require it
// Useful for endpoints that work for both authenticated and anonymous users
func (m *SessionAuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			// Not authenticated - continue without user context
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.sessions.Verify(r.Context(), token)
		if err != nil {
			// Invalid token - continue without user context
			log.Printf("Optional auth failed: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserFIDKey, session.FID)
		ctx = context.WithValue(ctx, SessionIDKey, session.ID)
		ctx = context.WithValue(ctx, BackendTokenKey, session.BackendToken)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

// GetUserFID extracts the authenticated user's fid from the request context
// Returns 0 if not authenticated
func GetUserFID(r *http.Request) int64 {
	fid, _ := r.Context().Value(UserFIDKey).(int64)
	return fid
}

// GetSessionID extracts the session id from the request context
// Returns empty string if not authenticated
func GetSessionID(r *http.Request) string {
	id, _ := r.Context().Value(SessionIDKey).(string)
	return id
}

// GetBackendToken extracts the backend bearer token from the request context
// Returns empty string if not authenticated
func GetBackendToken(r *http.Request) string {
	token, _ := r.Context().Value(BackendTokenKey).(string)
	return token
}

// SetTestSession sets session values in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestSession(ctx context.Context, fid int64, sessionID, backendToken string) context.Context {
	ctx = context.WithValue(ctx, UserFIDKey, fid)
	ctx = context.WithValue(ctx, SessionIDKey, sessionID)
	return context.WithValue(ctx, BackendTokenKey, backendToken)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	response := `{"error":"AuthenticationRequired","message":"` + message + `"}`
	if _, err := w.Write([]byte(response)); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
