package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/cache"
	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/repositories"
	api "github.com/Dosada05/swiss-tournament/routes"
	"github.com/Dosada05/swiss-tournament/scheduler"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/Dosada05/swiss-tournament/storage"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("driver", cfg.DatabaseDriver),
		slog.Bool("auth", cfg.AuthEnabled()))

	if err := run(cfg, logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dialect, err := repositories.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		return err
	}

	dbConn, err := db.Connect(dialect, cfg.DatabaseURL, cfg.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.EnsureSchema(ctx, dbConn, dialect); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	var standingsCache services.StandingsCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		standingsCache = cache.NewRedisStandingsCache(redisClient, cfg.CacheTTL)
		logger.Info("standings cache enabled", slog.String("addr", cfg.RedisAddr))
	}

	var uploader storage.FileUploader
	r2Config := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2Config.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, r2Config)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)

	strategy, err := brackets.ParseStrategy(cfg.PairingStrategy)
	if err != nil {
		return err
	}
	generator := brackets.NewSwissGenerator(strategy, cfg.PairingMaxSteps)

	playerRepo := repositories.NewPlayerRepository(dbConn, dialect)
	matchRepo := repositories.NewMatchRepository(dbConn, dialect)

	standingsService := services.NewStandingsService(playerRepo, standingsCache, logger)
	playerService := services.NewPlayerService(dbConn, playerRepo, matchRepo, standingsCache, wsHub, logger)
	matchService := services.NewMatchService(dbConn, playerRepo, matchRepo, standingsCache, wsHub, logger)
	pairingService := services.NewPairingService(dbConn, standingsService, matchRepo, generator, wsHub, logger)
	tournamentService := services.NewTournamentService(playerRepo, matchRepo, standingsService)
	archiveService := services.NewArchiveService(tournamentService, uploader, logger)
	authService := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecretKey, cfg.TokenTTL)
	logger.Info("services initialized", slog.String("pairing", generator.GetName()))

	if cfg.ArchiveSchedule != "" {
		jobs := scheduler.New(archiveService, logger)
		if err := jobs.AddSnapshotJob(cfg.ArchiveSchedule); err != nil {
			return err
		}
		jobs.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			jobs.Stop(stopCtx)
		}()
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Player:    handlers.NewPlayerHandler(playerService, logger),
		Match:     handlers.NewMatchHandler(matchService, pairingService, logger),
		Standings: handlers.NewStandingsHandler(standingsService, tournamentService, archiveService, logger),
		Auth:      handlers.NewAuthHandler(authService, logger),
		WebSocket: handlers.NewWebSocketHandler(wsHub, cfg.AllowedOrigins, logger),
		Health:    handlers.NewHealthHandler(dbConn, logger),
	}, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.AllowedOrigins,
	})

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

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
