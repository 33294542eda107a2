// Package web embeds the HTML templates and static assets served by the handlers.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/services"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Flash is a one-shot notice shown at the top of the next page.
type Flash struct {
	Kind    string
	Message string
}

// Page is the data every template receives.
type Page struct {
	Title    string
	User     *models.User
	Flashes  []Flash
	Error    string
	Form     url.Values
	Overview *services.Overview
	Today    string
}

// Pages lists every page template rendered inside layout.html.
var Pages = []string{"login", "register", "index", "enter", "view", "settings"}

var funcs = template.FuncMap{
	"round2": func(v float64) string {
		return fmt.Sprintf("%.2f", services.Round2(v))
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(services.DateLayout)
	},
	"inc": func(i int) int { return i + 1 },
}

// ParseTemplates returns one template set per page, keyed by page name.
// Each set executes "layout".
func ParseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(Pages))
	for _, name := range Pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// StaticHandler serves the embedded static directory. Mount it under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
