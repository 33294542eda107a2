package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/services"
	"github.com/Dosada05/bowling-tracker/web"
)

// UserHandler serves the settings page and league management.
type UserHandler struct {
	userService services.UserService
	renderer    *Renderer
	logger      *slog.Logger
}

func NewUserHandler(us services.UserService, renderer *Renderer, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: us,
		renderer:    renderer,
		logger:      logger,
	}
}

func (h *UserHandler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetProfileByID(r.Context(), currentUser(r).ID)
	if err != nil {
		h.renderer.serverError(w, r, err)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "settings", web.Page{Title: "Settings", User: user})
}

func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusBadRequest, "settings", web.Page{Title: "Settings", User: user, Error: "Could not read the settings form."})
		return
	}

	names := r.PostForm["league_names"]
	days := r.PostForm["league_days"]
	leagues := make([]models.League, 0, max(len(names), len(days)))
	for i := 0; i < max(len(names), len(days)); i++ {
		var l models.League
		if i < len(names) {
			l.Name = names[i]
		}
		if i < len(days) {
			l.Day = days[i]
		}
		leagues = append(leagues, l)
	}

	_, err := h.userService.UpdateProfile(r.Context(), user.ID, services.ProfileInput{
		FirstName: r.PostForm.Get("first_name"),
		LastName:  r.PostForm.Get("last_name"),
		Leagues:   leagues,
	})
	if err != nil {
		if services.IsValidation(err) {
			h.renderer.Render(w, r, http.StatusBadRequest, "settings", web.Page{Title: "Settings", User: user, Error: userMessage(err)})
			return
		}
		h.renderer.serverError(w, r, err)
		return
	}

	setFlash(w, r, flashSuccess, "Settings saved.")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

type removeLeagueInput struct {
	Index *int `json:"index"`
}

// RemoveLeague accepts {"index": n} as JSON or an index form field.
func (h *UserHandler) RemoveLeague(w http.ResponseWriter, r *http.Request) {
	index, err := leagueIndex(w, r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}

	user, err := h.userService.RemoveLeague(r.Context(), currentUser(r).ID, index)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "leagues": user.Leagues}, nil); err != nil {
		h.logger.Error("failed to write response", slog.Any("error", err))
	}
}

func leagueIndex(w http.ResponseWriter, r *http.Request) (int, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var input removeLeagueInput
		if err := readJSON(w, r, &input); err != nil {
			return 0, err
		}
		if input.Index == nil {
			return 0, fmt.Errorf("%w: index", services.ErrMissingField)
		}
		return *input.Index, nil
	}

	raw := strings.TrimSpace(r.FormValue("index"))
	if raw == "" {
		return 0, fmt.Errorf("%w: index", services.ErrMissingField)
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: index must be a whole number", services.ErrInvalidField)
	}
	return index, nil
}
