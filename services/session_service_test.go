package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/repositories/memory"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

type sessionFixture struct {
	manager  *SessionManager
	users    *memory.Users
	sessions *memory.Sessions
	user     *models.User
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	users := memory.NewUsers()
	sessions := memory.NewSessions()
	user := &models.User{Username: "alice", PasswordHash: "x", FirstName: "Alice", LastName: "Lane"}
	require.NoError(t, users.Create(context.Background(), user))

	return &sessionFixture{
		manager:  NewSessionManager(sessions, users, testSecret, time.Hour),
		users:    users,
		sessions: sessions,
		user:     user,
	}
}

func TestSessionLifecycle(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	token, expires, err := f.manager.Start(ctx, f.user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)
	assert.Equal(t, 1, f.sessions.Len())

	user, err := f.manager.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	require.NoError(t, f.manager.End(ctx, token))
	assert.Zero(t, f.sessions.Len())

	_, err = f.manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// Ending twice is harmless.
	assert.NoError(t, f.manager.End(ctx, token))
}

func TestResolve_RejectsBadTokensWithoutStoreAccess(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID:           f.user.ID,
		RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("some-other-secret-value"))
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID:           f.user.ID,
		RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSession, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID:           f.user.ID,
		RegisteredClaims: jwt.RegisteredClaims{ID: "not-a-uuid", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":       "",
		"garbage":     "not.a.token",
		"forged":      forged,
		"expired":     expired,
		"bad session": noSession,
	} {
		t.Run(name, func(t *testing.T) {
			memory.ResetCalls(f.users, nil, f.sessions)
			_, err := f.manager.Resolve(ctx, token)
			assert.ErrorIs(t, err, ErrNotAuthenticated)
			assert.Zero(t, f.sessions.Calls)
			assert.Zero(t, f.users.Calls)
		})
	}
}

func TestResolve_ExpiredSessionRow(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	token, _, err := f.manager.Start(ctx, f.user.ID)
	require.NoError(t, err)

	// The token still verifies but the clock has moved past the row's expiry.
	f.manager.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = f.manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	n, err := f.manager.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Zero(t, f.sessions.Len())
}
