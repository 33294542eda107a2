package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/bowling-tracker/config"
	"github.com/Dosada05/bowling-tracker/db"
	"github.com/Dosada05/bowling-tracker/handlers"
	"github.com/Dosada05/bowling-tracker/live"
	"github.com/Dosada05/bowling-tracker/middleware"
	"github.com/Dosada05/bowling-tracker/repositories"
	api "github.com/Dosada05/bowling-tracker/routes"
	"github.com/Dosada05/bowling-tracker/services"
	"github.com/Dosada05/bowling-tracker/storage"
	"github.com/Dosada05/bowling-tracker/web"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const (
	sessionPruneInterval = 15 * time.Minute
	limiterCleanupEvery  = 5 * time.Minute
	limiterMaxIdle       = 30 * time.Minute
	shutdownTimeout      = 15 * time.Second
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Duration("session_ttl", cfg.SessionTTL))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	// Хранилище экспортов (Cloudflare R2), опционально
	var exportUploader storage.FileUploader
	if cfg.ExportStorageEnabled() {
		exportUploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 export storage initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("export storage not configured, cloud exports disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger, live.AllowOrigins(cfg.CORSAllowedOrigins))
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	hasher := services.NewBcryptHasher(cfg.BcryptCost)
	authService := services.NewAuthService(userRepo, hasher)
	sessionManager := services.NewSessionManager(sessionRepo, userRepo, cfg.SessionSecret, cfg.SessionTTL)
	userService := services.NewUserService(userRepo)
	scoreService := services.NewScoreService(scoreRepo, userRepo, wsHub, logger)
	exportService := services.NewExportService(scoreService, exportUploader)
	chartService := services.NewChartService(scoreService)
	logger.Info("Services initialized")

	// Очистка просроченных сессий
	go func() {
		ticker := time.NewTicker(sessionPruneInterval)
		defer ticker.Stop()
		logger.Info("Session prune scheduler started", slog.Duration("interval", sessionPruneInterval))

		prune := func() {
			n, err := sessionManager.PruneExpired(ctx)
			if err != nil {
				logger.Error("Scheduler: session prune failed", slog.Any("error", err))
				return
			}
			if n > 0 {
				logger.Info("Scheduler: expired sessions removed", slog.Int64("count", n))
			}
		}

		prune()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				prune()
			}
		}
	}()

	authLimiter := middleware.NewIPRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst, logger)
	authLimiter.StartCleanup(ctx, limiterCleanupEvery, limiterMaxIdle)

	// Инициализация обработчиков HTTP
	pages, err := web.ParseTemplates()
	if err != nil {
		logger.Error("failed to parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	renderer := handlers.NewRenderer(pages, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Dependencies{
		Sessions:     sessionManager,
		SecureCookie: cfg.SessionSecureCookie,
		AuthLimiter:  authLimiter,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		Logger:       logger,
		Auth:         handlers.NewAuthHandler(authService, sessionManager, renderer, cfg.SessionSecureCookie, logger),
		Scores:       handlers.NewScoreHandler(scoreService, renderer, logger),
		Users:        handlers.NewUserHandler(userService, renderer, logger),
		API:          handlers.NewAPIHandler(scoreService, logger),
		Exports:      handlers.NewExportHandler(exportService, chartService, logger),
		WebSocket:    handlers.NewWebSocketHandler(wsHub),
		Health:       handlers.NewHealthHandler(dbConn, logger),
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
			os.Exit(1)
		}
		logger.Info("server stopped")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	stop()
	logger.Info("application exited")
}
