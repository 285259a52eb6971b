// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command filmdeck-sync copies the remote film service into the PostgreSQL
// mirror, so the UI server can run with FILM_SOURCE=postgres.
//
// # Sequence
//
//  1. Initialize structured logger and load configuration.
//  2. Connect to PostgreSQL and run migrations.
//  3. Fetch the films, then the comments of every film in parallel.
//  4. Replace the mirror in one transaction.
//  5. Drop the cached catalogue (when Redis is configured).
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/config"
	"github.com/taibuivan/filmdeck/internal/platform/constants"
	"github.com/taibuivan/filmdeck/internal/platform/migration"
	pgstore "github.com/taibuivan/filmdeck/internal/platform/postgres"
	redisstore "github.com/taibuivan/filmdeck/internal/platform/redis"
)

func main() {
	// ── 1. Logger & Configuration ─────────────────────────────────────────
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String(constants.FieldApp, constants.AppName+"-sync"))
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.RemoteBaseURL == "" || !cfg.HasDatabase() {
		must(log, errors.New("REMOTE_BASE_URL and DATABASE_URL are both required"), "check configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// ── 2. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 3. Remote Catalogue ───────────────────────────────────────────────
	remote := film.NewRESTSource(cfg.RemoteBaseURL, cfg.RemoteAuthToken, cfg.RemoteTimeout, log)

	films, comments, err := fetch(ctx, remote, cfg.LoadConcurrency)
	must(log, err, "fetch remote catalogue")

	// ── 4. Mirror ─────────────────────────────────────────────────────────
	mirror := film.NewPostgresSource(pool, log)
	must(log, mirror.ReplaceCatalog(ctx, films, comments), "replace mirror")

	// ── 5. Cache ──────────────────────────────────────────────────────────
	if cfg.HasCache() {
		rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer rdb.Close()

		filmIDs := make([]string, 0, len(films))
		for _, record := range films {
			filmIDs = append(filmIDs, record.ID)
		}
		cached := film.NewCachedSource(mirror, rdb, cfg.CatalogCacheTTL, log)
		must(log, cached.Invalidate(ctx, filmIDs...), "invalidate cache")
	}

	log.Info("sync_completed", slog.Int("films", len(films)))
}

// fetch reads the film list and the comments of every film with an id.
func fetch(context context.Context, source film.Source, concurrency int) ([]film.FilmRecord, map[string][]film.CommentRecord, error) {
	records, err := source.Films(context)
	if err != nil {
		return nil, nil, err
	}

	films := make([]film.FilmRecord, 0, len(records))
	for _, record := range records {
		if record.ID != "" {
			films = append(films, record)
		}
	}

	perFilm := make([][]film.CommentRecord, len(films))
	group, groupCtx := errgroup.WithContext(context)
	group.SetLimit(max(concurrency, 1))

	for index, record := range films {
		group.Go(func() error {
			batch, err := source.Comments(groupCtx, record.ID)
			perFilm[index] = batch
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	comments := make(map[string][]film.CommentRecord, len(films))
	for index, record := range films {
		comments[record.ID] = perFilm[index]
	}
	return films, comments, nil
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("sync failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
