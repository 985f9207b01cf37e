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

	"github.com/bowen700/fantasy-workplace/config"
	"github.com/bowen700/fantasy-workplace/db"
	"github.com/bowen700/fantasy-workplace/handlers"
	"github.com/bowen700/fantasy-workplace/live"
	"github.com/bowen700/fantasy-workplace/repositories"
	api "github.com/bowen700/fantasy-workplace/routes"
	"github.com/bowen700/fantasy-workplace/services"
	"github.com/bowen700/fantasy-workplace/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

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

	// Report exports are optional: without R2 credentials the export
	// endpoint answers 503 instead of blocking startup.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, standings export disabled")
	}

	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	competitorRepo := repositories.NewPostgresCompetitorRepository(dbConn)
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	metricRepo := repositories.NewPostgresMetricRepository(dbConn)
	submissionRepo := repositories.NewPostgresSubmissionRepository(dbConn)
	matchupRepo := repositories.NewPostgresMatchupRepository(dbConn)
	logger.Info("Repositories initialized")

	authService := services.NewAuthService(competitorRepo)
	leagueService := services.NewLeagueService(seasonRepo, metricRepo)
	standingsService := services.NewStandingsService(seasonRepo, competitorRepo, matchupRepo)
	scoreService := services.NewScoreService(seasonRepo, matchupRepo, metricRepo, submissionRepo, cfg.ScoringStrategy, wsHub)
	scheduleService := services.NewScheduleService(
		dbConn, // For week replacement transactions
		seasonRepo,
		competitorRepo,
		matchupRepo,
		standingsService,
		scoreService,
		wsHub,
	)
	submissionService := services.NewSubmissionService(seasonRepo, metricRepo, submissionRepo, scoreService)
	coachService := services.NewCoachService(metricRepo, submissionRepo, cfg)
	reportService := services.NewReportService(seasonRepo, standingsService, uploader)
	logger.Info("Services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	leagueHandler := handlers.NewLeagueHandler(leagueService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, scoreService, matchupRepo)
	standingsHandler := handlers.NewStandingsHandler(standingsService, reportService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, coachService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		leagueHandler,
		scheduleHandler,
		standingsHandler,
		submissionHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
