package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	user  *models.User
	err   error
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, token string) (*models.User, error) {
	s.calls++
	if token != "good" {
		return nil, services.ErrNotAuthenticated
	}
	return s.user, s.err
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		_, _ = io.WriteString(w, user.Username)
	})
}

func TestRequireSession(t *testing.T) {
	resolver := &stubResolver{user: &models.User{ID: 1, Username: "alice"}}
	h := RequireSession(resolver, false, discard())(okHandler(t))

	t.Run("no cookie redirects without resolving", func(t *testing.T) {
		resolver.calls = 0
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/view", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.Zero(t, resolver.calls)
	})

	t.Run("invalid token redirects and clears cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/view", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bad"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("valid token passes user through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/view", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})
}

func TestRequireAPISession(t *testing.T) {
	resolver := &stubResolver{user: &models.User{ID: 1, Username: "alice"}}
	h := RequireAPISession(resolver, false, discard())(okHandler(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestRequireSession_StoreFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("db down")}
	h := RequireSession(resolver, false, discard())(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAPISession_StoreFailureIsJSON(t *testing.T) {
	resolver := &stubResolver{err: errors.New("db down")}
	h := RequireAPISession(resolver, false, discard())(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestRequireSession_ClearsStaleCookieWithSecureFlag(t *testing.T) {
	resolver := &stubResolver{}
	h := RequireSession(resolver, true, discard())(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bad"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
