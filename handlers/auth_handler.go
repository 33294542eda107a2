package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Dosada05/bowling-tracker/metrics"
	"github.com/Dosada05/bowling-tracker/middleware"
	"github.com/Dosada05/bowling-tracker/services"
	"github.com/Dosada05/bowling-tracker/web"
)

// maxRegisterLeagues is the number of league_nameN slots on the registration form.
const maxRegisterLeagues = 5

type AuthHandler struct {
	authService  services.AuthService
	sessions     *services.SessionManager
	renderer     *Renderer
	secureCookie bool
	logger       *slog.Logger
}

func NewAuthHandler(authService services.AuthService, sessions *services.SessionManager, renderer *Renderer, secureCookie bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		renderer:     renderer,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "login", web.Page{Title: "Log in"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, r, flashError, "Could not read the login form.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.authService.Authenticate(r.Context(), strings.TrimSpace(r.PostForm.Get("username")), r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.ObserveLogin("failure")
			setFlash(w, r, flashError, "Invalid username or password.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		metrics.ObserveLogin("error")
		h.renderer.serverError(w, r, err)
		return
	}

	token, expires, err := h.sessions.Start(r.Context(), user.ID)
	if err != nil {
		metrics.ObserveLogin("error")
		h.renderer.serverError(w, r, fmt.Errorf("failed to start session: %w", err))
		return
	}
	metrics.ObserveLogin("success")

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Info("user logged in", slog.Int("user_id", user.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout works with or without a valid session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookieName); err == nil && c.Value != "" {
		if err := h.sessions.End(r.Context(), c.Value); err != nil {
			h.logger.Error("failed to end session", slog.Any("error", err))
		}
	}
	middleware.ClearSessionCookie(w, h.secureCookie)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "register", web.Page{Title: "Register"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusBadRequest, "register", web.Page{Title: "Register", Error: "Could not read the registration form."})
		return
	}
	form := r.PostForm

	input := services.RegisterInput{
		Username:        form.Get("username"),
		Password:        form.Get("password"),
		ConfirmPassword: form.Get("confirm_password"),
		FirstName:       form.Get("first_name"),
		LastName:        form.Get("last_name"),
	}
	for i := 1; i <= maxRegisterLeagues; i++ {
		input.LeagueNames = append(input.LeagueNames, form.Get(fmt.Sprintf("league_name%d", i)))
	}
	input.LeagueNames = append(input.LeagueNames, form["league_names"]...)

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			metrics.ObserveRegistration("error")
			h.renderer.serverError(w, r, err)
			return
		}
		metrics.ObserveRegistration("rejected")
		form.Del("password")
		form.Del("confirm_password")
		h.renderer.Render(w, r, status, "register", web.Page{Title: "Register", Error: userMessage(err), Form: form})
		return
	}

	metrics.ObserveRegistration("success")
	h.logger.Info("user registered", slog.Int("user_id", user.ID), slog.String("username", user.Username))
	setFlash(w, r, flashSuccess, "Account created. Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
