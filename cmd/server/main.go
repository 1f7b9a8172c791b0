package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/antigone-study/backend/docs"
	"github.com/antigone-study/backend/internal/auth"
	"github.com/antigone-study/backend/internal/config"
	"github.com/antigone-study/backend/internal/content"
	"github.com/antigone-study/backend/internal/handlers"
	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/logger"
	"github.com/antigone-study/backend/internal/middleware"
	"github.com/antigone-study/backend/internal/repositories"
	"github.com/antigone-study/backend/internal/roster"
	"github.com/antigone-study/backend/internal/scheduler"
	"github.com/antigone-study/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Antigone Study API
// @version 1.0
// @description Study records, class roster login and quiz content of the Antigone study guide

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey DeviceToken
// @in header
// @name X-Device-Token
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-API-Key
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting Antigone study service", zap.String("store", cfg.Store.Driver))

	// Open the key-value store
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	baseStore, closeStore, err := kvstore.Open(startupCtx, cfg.StoreOptions(), zapLogger)
	cancelStartup()
	if err != nil {
		zapLogger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeStore()

	// Per-device records are scoped by the device middleware and published to /events
	deviceStore := kvstore.NewObservable(kvstore.NewScoped(baseStore))

	// Load and validate the bundled quiz content
	catalog, err := content.Load(os.DirFS(cfg.Content.Dir), content.Locales...)
	if err != nil {
		zapLogger.Fatal("Failed to load content", zap.Error(err))
	}

	// Initialize repositories
	progressRepo := repositories.NewProgressRepository(deviceStore, zapLogger)
	notesRepo := repositories.NewNotesRepository(deviceStore, zapLogger)
	bookmarksRepo := repositories.NewBookmarksRepository(deviceStore, zapLogger)
	settingsRepo := repositories.NewSettingsRepository(deviceStore, zapLogger)
	sessionRepo := repositories.NewSessionRepository(deviceStore, zapLogger)
	studentsRepo := repositories.NewStudentsRepository(baseStore, zapLogger)

	// Initialize services
	progressService := services.NewProgressService(progressRepo, zapLogger)
	notesService := services.NewNotesService(notesRepo, zapLogger)
	bookmarksService := services.NewBookmarksService(bookmarksRepo, zapLogger)
	settingsService := services.NewSettingsService(settingsRepo, zapLogger)
	directoryService := services.NewDirectoryService(studentsRepo, roster.NewFileSource(cfg.Content.RosterPath), zapLogger)
	authService := services.NewAuthService(directoryService, sessionRepo, zapLogger)
	quizService := services.NewQuizService(catalog, progressService, zapLogger)
	backupService := services.NewBackupService(baseStore, cfg.Store.Driver, zapLogger)
	backupService.InvalidateOnImport(directoryService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(baseStore, zapLogger)
	authHandler := handlers.NewAuthHandler(authService, zapLogger)
	progressHandler := handlers.NewProgressHandler(progressService, zapLogger)
	notesHandler := handlers.NewNotesHandler(notesService, zapLogger)
	bookmarksHandler := handlers.NewBookmarksHandler(bookmarksService, zapLogger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, zapLogger)
	quizHandler := handlers.NewQuizHandler(quizService, zapLogger)
	eventsHandler := handlers.NewEventsHandler(deviceStore, zapLogger)
	adminHandler := handlers.NewAdminHandler(directoryService, backupService, zapLogger)

	// Contributions are optional
	var contributionsHandler *handlers.ContributionsHandler
	if cfg.Contributions.DatabaseURL != "" {
		contributionsDB, err := connectContributionsDB(cfg.Contributions.DatabaseURL)
		if err != nil {
			zapLogger.Fatal("Failed to connect to contributions database", zap.Error(err))
		}
		defer contributionsDB.Close()

		submissionRepo := repositories.NewSubmissionRepository(contributionsDB, zapLogger)
		submissionService := services.NewSubmissionService(submissionRepo, validator.New(), zapLogger)
		contributionsHandler = handlers.NewContributionsHandler(submissionService, zapLogger)
	} else {
		zapLogger.Info("Contributions disabled, CONTRIBUTIONS_DATABASE_URL is not set")
	}

	// Initialize device identity and session middleware
	tokenGenerator := auth.NewTokenGenerator(cfg.Device.TokenSecret, cfg.Device.TokenTTL)
	deviceMiddleware := middleware.DeviceMiddleware(tokenGenerator, middleware.DeviceCookieOptions{
		MaxAge: int(cfg.Device.TokenTTL.Seconds()),
		Secure: cfg.IsProduction(),
	}, zapLogger)
	sessionMiddleware := middleware.RequireSession(authService, zapLogger)
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKey)
	if cfg.APIKey == "" {
		zapLogger.Warn("API_KEY is not set, admin routes will reject every request")
	}

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(zapLogger))
	r.Use(middleware.RecoveryMiddleware(zapLogger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(10*1024*1024, zapLogger)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		healthHandler.RegisterRoutes(r)

		// Register admin routes with API key middleware
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			adminHandler.RegisterRoutes(r)
		})

		// Everything else belongs to the calling device
		r.Group(func(r chi.Router) {
			r.Use(deviceMiddleware)
			authHandler.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(sessionMiddleware)
				progressHandler.RegisterRoutes(r)
				notesHandler.RegisterRoutes(r)
				bookmarksHandler.RegisterRoutes(r)
				settingsHandler.RegisterRoutes(r)
				quizHandler.RegisterRoutes(r)
				eventsHandler.RegisterRoutes(r)
				if contributionsHandler != nil {
					contributionsHandler.RegisterRoutes(r)
				}
			})
		})
	})

	// Start scheduled backups
	if cfg.Backup.Dir != "" {
		backupScheduler := scheduler.New(backupService, scheduler.Options{
			Dir:      cfg.Backup.Dir,
			Interval: cfg.Backup.Interval,
			Retain:   cfg.Backup.Retain,
		}, zapLogger)
		if err := backupScheduler.Start(); err != nil {
			zapLogger.Fatal("Failed to start backup scheduler", zap.Error(err))
		}
		defer backupScheduler.Stop()
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

// connectContributionsDB connects to the remote contributions database
func connectContributionsDB(url string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
