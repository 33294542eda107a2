package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/services"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "bowling_session"

// SessionResolver maps a session token to its user.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// RequireSession guards HTML pages: visitors without a valid session are
// redirected to /login. secure marks the cookie cleared for a stale token.
func RequireSession(resolver SessionResolver, secure bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return sessionGuard{
		resolver: resolver,
		secure:   secure,
		logger:   logger,
		deny: func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		},
		fail: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}.wrap
}

// RequireAPISession guards JSON endpoints with a 401 response.
func RequireAPISession(resolver SessionResolver, secure bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return sessionGuard{
		resolver: resolver,
		secure:   secure,
		logger:   logger,
		deny: func(w http.ResponseWriter, r *http.Request) {
			writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		},
		fail: func(w http.ResponseWriter, r *http.Request) {
			writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
		},
	}.wrap
}

type sessionGuard struct {
	resolver SessionResolver
	secure   bool
	logger   *slog.Logger
	deny     http.HandlerFunc
	fail     http.HandlerFunc
}

func (g sessionGuard) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			g.deny(w, r)
			return
		}

		user, err := g.resolver.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, services.ErrNotAuthenticated) {
				g.logger.Error("failed to resolve session", slog.String("path", r.URL.Path), slog.Any("error", err))
				g.fail(w, r)
				return
			}
			ClearSessionCookie(w, g.secure)
			g.deny(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
