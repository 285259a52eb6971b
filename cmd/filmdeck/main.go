// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command filmdeck is the entry point for the Filmdeck UI server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL and run migrations (when configured).
//  4. Connect to Redis (when configured).
//  5. Build the film source and the catalogue loader.
//  6. Start the UI session manager.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/filmdeck/internal/api"
	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/config"
	"github.com/taibuivan/filmdeck/internal/platform/constants"
	"github.com/taibuivan/filmdeck/internal/platform/migration"
	pgstore "github.com/taibuivan/filmdeck/internal/platform/postgres"
	redisstore "github.com/taibuivan/filmdeck/internal/platform/redis"
	"github.com/taibuivan/filmdeck/internal/ui/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Filmdeck] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("film_source", cfg.FilmSource),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives until shutdown: rate limiter cleanup and the session janitor.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	health := api.HealthDependencies{}

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	var pool *pgxpool.Pool
	if cfg.HasDatabase() {
		pool, err = pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		health.CheckDatabase = func(context context.Context) error {
			return pgstore.Ping(context, pool)
		}
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var rdb *redis.Client
	if cfg.HasCache() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		health.CheckCache = func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		}
	}

	// ── 5. Film Source ────────────────────────────────────────────────────
	var source film.Source
	switch cfg.FilmSource {
	case config.SourcePostgres:
		source = film.NewPostgresSource(pool, log)
	default:
		source = film.NewRESTSource(cfg.RemoteBaseURL, cfg.RemoteAuthToken, cfg.RemoteTimeout, log)
	}
	if rdb != nil {
		source = film.NewCachedSource(source, rdb, cfg.CatalogCacheTTL, log)
	}

	loader := film.NewLoader(source, cfg.LoadTimeout, cfg.LoadConcurrency, log)

	// ── 6. UI Sessions ────────────────────────────────────────────────────
	sessions := session.NewManager(loader, session.Settings{
		TTL:           cfg.SessionTTL,
		CommentAuthor: cfg.CommentAuthor,
	}, log)
	defer sessions.Close()

	go sessions.Run(serverCtx)

	// ── 7. HTTP Handlers ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		UI:        api.NewUIHandler(sessions, api.SameOriginOrAllowed(cfg)),
		Catalog:   film.NewHandler(source),
	}

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	serverCancel()
	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String(constants.FieldApp, constants.AppName),
		slog.String(constants.FieldVersion, constants.AppVersion),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
