package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionManager issues signed session tokens backed by server-side session rows.
// The token only references a session; logout deletes the row, which revokes it.
type SessionManager struct {
	sessions repositories.SessionRepository
	users    repositories.UserRepository
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

type sessionClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

func NewSessionManager(sessions repositories.SessionRepository, users repositories.UserRepository, secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: sessions,
		users:    users,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL is the lifetime of new sessions.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Start persists a new session for userID and returns its signed token.
func (m *SessionManager) Start(ctx context.Context, userID int) (string, time.Time, error) {
	now := m.now()
	session := &models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID.String(),
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, session.ExpiresAt, nil
}

// Resolve returns the user bound to token. Tokens that fail signature or expiry
// checks are rejected before any store access.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, sessionID, err := m.parse(token)
	if err != nil {
		return nil, err
	}

	session, err := m.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.Expired(m.now()) || session.UserID != claims.UserID {
		return nil, ErrNotAuthenticated
	}

	user, err := m.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// End deletes the session referenced by token. Unknown or invalid tokens are ignored.
func (m *SessionManager) End(ctx context.Context, token string) error {
	_, sessionID, err := m.parse(token)
	if err != nil {
		return nil
	}
	if err := m.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, repositories.ErrSessionNotFound) {
		return err
	}
	return nil
}

// PruneExpired removes sessions past their expiry.
func (m *SessionManager) PruneExpired(ctx context.Context) (int64, error) {
	return m.sessions.DeleteExpired(ctx, m.now())
}

func (m *SessionManager) parse(token string) (*sessionClaims, uuid.UUID, error) {
	if token == "" {
		return nil, uuid.Nil, ErrNotAuthenticated
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, uuid.Nil, ErrNotAuthenticated
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil || claims.UserID <= 0 {
		return nil, uuid.Nil, ErrNotAuthenticated
	}
	return claims, sessionID, nil
}
