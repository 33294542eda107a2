package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Dosada05/bowling-tracker/web"
)

// Renderer executes page templates into a buffer before writing, so a template
// error never produces a half-written page.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

func NewRenderer(pages map[string]*template.Template, logger *slog.Logger) *Renderer {
	return &Renderer{pages: pages, logger: logger}
}

func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page web.Page) {
	tmpl, ok := rn.pages[name]
	if !ok {
		rn.serverError(w, r, fmt.Errorf("unknown page %q", name))
		return
	}
	page.Flashes = append(takeFlashes(w, r), page.Flashes...)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		rn.serverError(w, r, fmt.Errorf("failed to render %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rn.logger.Warn("failed to write page", slog.String("page", name), slog.Any("error", err))
	}
}

func (rn *Renderer) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logServerError(r, rn.logger, err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
