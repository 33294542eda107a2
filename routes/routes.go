package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/bowling-tracker/handlers"
	"github.com/Dosada05/bowling-tracker/metrics"
	"github.com/Dosada05/bowling-tracker/middleware"
	"github.com/Dosada05/bowling-tracker/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Dependencies collects everything SetupRoutes mounts.
type Dependencies struct {
	Sessions     middleware.SessionResolver
	SecureCookie bool
	AuthLimiter  *middleware.IPRateLimiter
	CORSOrigins  []string
	Logger       *slog.Logger

	Auth      *handlers.AuthHandler
	Scores    *handlers.ScoreHandler
	Users     *handlers.UserHandler
	API       *handlers.APIHandler
	Exports   *handlers.ExportHandler
	WebSocket *handlers.WebSocketHandler
	Health    *handlers.HealthHandler
}

func SetupRoutes(router chi.Router, d Dependencies) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(metrics.InstrumentHandler)

	router.Get("/healthz", d.Health.Healthz)
	router.Handle("/metrics", metrics.Handler())
	router.Handle("/static/*", web.StaticHandler())

	// Публичные страницы
	router.Get("/login", d.Auth.LoginPage)
	router.Get("/register", d.Auth.RegisterPage)
	router.Post("/logout", d.Auth.Logout)
	router.Get("/logout", d.Auth.Logout)
	router.Group(func(r chi.Router) {
		if d.AuthLimiter != nil {
			r.Use(d.AuthLimiter.Handler)
		}
		r.Post("/login", d.Auth.Login)
		r.Post("/register", d.Auth.Register)
	})

	// Страницы, требующие сессии
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(d.Sessions, d.SecureCookie, d.Logger))

		r.Get("/", d.Scores.Index)
		r.Get("/enter", d.Scores.EnterPage)
		r.Post("/add", d.Scores.AddSeries)
		r.Get("/view", d.Scores.View)
		r.Get("/series", d.Scores.View)

		r.Get("/settings", d.Users.SettingsPage)
		r.Post("/settings", d.Users.UpdateSettings)
		r.Post("/remove-league", d.Users.RemoveLeague)

		r.Get("/chart.png", d.Exports.Chart)
		r.Get("/export.xlsx", d.Exports.Workbook)
	})

	// JSON API и WebSocket
	router.Group(func(r chi.Router) {
		if len(d.CORSOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   d.CORSOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
				AllowedHeaders:   []string{"Accept", "Content-Type"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
		}
		r.Use(middleware.RequireAPISession(d.Sessions, d.SecureCookie, d.Logger))

		r.Post("/api/scores", d.API.CreateScore)
		r.Get("/api/stats", d.API.Stats)
		r.Post("/api/exports", d.Exports.Archive)
		r.Get("/ws", d.WebSocket.ServeWs)
	})
}
