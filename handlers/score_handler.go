package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dosada05/bowling-tracker/services"
	"github.com/Dosada05/bowling-tracker/web"
)

// ScoreHandler serves the listing and entry pages.
type ScoreHandler struct {
	scoreService *services.ScoreService
	renderer     *Renderer
	logger       *slog.Logger
	now          func() time.Time
}

func NewScoreHandler(scoreService *services.ScoreService, renderer *Renderer, logger *slog.Logger) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
		renderer:     renderer,
		logger:       logger,
		now:          time.Now,
	}
}

func (h *ScoreHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderOverview(w, r, "index", "Home")
}

func (h *ScoreHandler) View(w http.ResponseWriter, r *http.Request) {
	h.renderOverview(w, r, "view", "Series")
}

func (h *ScoreHandler) renderOverview(w http.ResponseWriter, r *http.Request, page, title string) {
	overview, err := h.scoreService.Overview(r.Context(), currentUser(r).ID)
	if err != nil {
		h.renderer.serverError(w, r, err)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, page, web.Page{Title: title, User: overview.User, Overview: overview})
}

func (h *ScoreHandler) EnterPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "enter", h.enterPage(r, "", nil))
}

func (h *ScoreHandler) AddSeries(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusBadRequest, "enter", h.enterPage(r, "Could not read the form.", nil))
		return
	}

	input, err := seriesFromForm(r)
	if err == nil {
		_, err = h.scoreService.RecordSeries(r.Context(), currentUser(r).ID, input)
	}
	if err != nil {
		if services.IsValidation(err) {
			h.renderer.Render(w, r, http.StatusBadRequest, "enter", h.enterPage(r, userMessage(err), r.PostForm))
			return
		}
		h.renderer.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/view", http.StatusSeeOther)
}

func (h *ScoreHandler) enterPage(r *http.Request, errMsg string, form url.Values) web.Page {
	return web.Page{
		Title: "Enter series",
		User:  currentUser(r),
		Error: errMsg,
		Form:  form,
		Today: h.now().Format(services.DateLayout),
	}
}

func seriesFromForm(r *http.Request) (services.SeriesInput, error) {
	var (
		input services.SeriesInput
		games [3]int
		err   error
	)
	for i := range games {
		field := fmt.Sprintf("game%d", i+1)
		if games[i], err = services.ParseGame(field, r.PostForm.Get(field)); err != nil {
			return input, err
		}
	}

	league := strings.TrimSpace(r.PostForm.Get("league_name"))
	if league == "" {
		return input, fmt.Errorf("%w: league_name", services.ErrMissingField)
	}
	date, err := services.ParseDate("date", r.PostForm.Get("date"))
	if err != nil {
		return input, err
	}

	input.Game1, input.Game2, input.Game3 = games[0], games[1], games[2]
	input.LeagueName = league
	input.BowledOn = date
	return input, nil
}
