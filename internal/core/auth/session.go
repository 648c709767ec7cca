package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is a server-side session record. BackendToken is the bearer
// token for the brand-voting backend obtained at login; it never leaves
// the server.
type Session struct {
	ID           string
	FID          int64
	BackendToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// SessionRepo persists session records.
type SessionRepo interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionService mints and verifies the session tokens the mini-app sends
// on every request. The token is an HS256 JWT whose jti points at the
// server-side record, so sign-out revokes immediately.
type SessionService struct {
	repo   SessionRepo
	secret []byte
	ttl    time.Duration
}

// NewSessionService creates a session service.
func NewSessionService(repo SessionRepo, secret []byte, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &SessionService{
		repo:   repo,
		secret: secret,
		ttl:    ttl,
	}
}

// Issue creates a session for the fid and returns the signed token.
func (s *SessionService) Issue(ctx context.Context, fid int64, backendToken string) (string, *Session, error) {
	now := time.Now().UTC()
	session := &Session{
		ID:           uuid.NewString(),
		FID:          fid,
		BackendToken: backendToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to persist session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   fmt.Sprintf("%d", fid),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, session, nil
}

// Verify checks a presented session token and returns the live session.
func (s *SessionService) Verify(ctx context.Context, tokenString string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	session, err := s.repo.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return nil, ErrInvalidToken
	}
	return session, nil
}

// Revoke deletes the session record; the token dies with it.
func (s *SessionService) Revoke(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
