// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/filmdeck/internal/platform/apperr"
)

// Loader turns a [Source] into an adapted, reconciled [Catalog].
type Loader struct {
	source      Source
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
}

// NewLoader creates a loader fetching at most concurrency comment lists at once.
func NewLoader(source Source, timeout time.Duration, concurrency int, logger *slog.Logger) *Loader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Loader{source: source, timeout: timeout, concurrency: concurrency, logger: logger}
}

// Load fetches films, then the comments of every valid film in parallel.
// Any source failure or the timeout yields a LOAD_ERROR; malformed records
// are dropped by the adapter and orphaned comments by [Reconcile].
func (loader *Loader) Load(context context.Context) (Catalog, error) {
	startTime := time.Now()

	loadCtx, cancel := contextWithOptionalTimeout(context, loader.timeout)
	defer cancel()

	// 1. Films
	filmRecords, err := loader.source.Films(loadCtx)
	if err != nil {
		return Catalog{}, asLoadError(loadCtx, err)
	}
	films := AdaptFilms(filmRecords, loader.logger)

	// 2. Comments, one request per film
	perFilm := make([][]Comment, len(films))
	group, groupCtx := errgroup.WithContext(loadCtx)
	group.SetLimit(loader.concurrency)

	for index, f := range films {
		group.Go(func() error {
			records, err := loader.source.Comments(groupCtx, f.ID)
			if err != nil {
				return err
			}
			perFilm[index] = AdaptComments(f.ID, records, loader.logger)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Catalog{}, asLoadError(loadCtx, err)
	}

	comments := make([]Comment, 0)
	for _, batch := range perFilm {
		comments = append(comments, batch...)
	}

	// 3. Enforce the association in both directions
	films, comments, report := Reconcile(films, comments)
	if !report.Clean() {
		loader.logger.Warn("catalog_reconciled",
			slog.Int("orphan_comments", len(report.OrphanComments)),
			slog.Int("pruned_references", report.PrunedReferences),
		)
	}

	loader.logger.Info("catalog_loaded",
		slog.Int("films", len(films)),
		slog.Int("comments", len(comments)),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()),
	)

	return Catalog{Films: films, Comments: comments}, nil
}

// asLoadError keeps LOAD_ERRORs as they are and classifies everything else.
func asLoadError(context context.Context, err error) error {
	if apperr.HasCode(err, apperr.CodeLoad) {
		return err
	}
	if context.Err() != nil {
		return apperr.LoadError("Catalogue load timed out", err)
	}
	return apperr.LoadError("Catalogue load failed", err)
}

func contextWithOptionalTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
