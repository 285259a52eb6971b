// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/filmdeck/internal/platform/database/schema"
	"github.com/taibuivan/filmdeck/internal/platform/dberr"
)

// PostgresSource reads and rewrites the catalogue mirror.
// Rows hold the remote records verbatim as JSONB documents.
type PostgresSource struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresSource creates a mirror backed by db.
func NewPostgresSource(db *pgxpool.Pool, logger *slog.Logger) *PostgresSource {
	return &PostgresSource{db: db, logger: logger}
}

// Films returns the mirrored films in their original order.
func (repository *PostgresSource) Films(context context.Context) ([]FilmRecord, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogFilm.ID, schema.CatalogFilm.Document,
		schema.CatalogFilm.Table, schema.CatalogFilm.Position)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.WrapLoad(err, "list_films")
	}
	defer rows.Close()

	records := make([]FilmRecord, 0)
	for rows.Next() {
		var id string
		var document []byte
		if err := rows.Scan(&id, &document); err != nil {
			return nil, dberr.WrapLoad(err, "scan_film")
		}

		var record FilmRecord
		if err := json.Unmarshal(document, &record); err != nil {
			repository.logger.Warn("catalog_record_dropped", slog.String("kind", "film"), slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.WrapLoad(err, "list_films")
	}

	return records, nil
}

// Comments returns the mirrored comments of one film in their original order.
func (repository *PostgresSource) Comments(context context.Context, filmID string) ([]CommentRecord, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.CatalogComment.ID, schema.CatalogComment.Document,
		schema.CatalogComment.Table, schema.CatalogComment.FilmID, schema.CatalogComment.Position)

	rows, err := repository.db.Query(context, query, filmID)
	if err != nil {
		return nil, dberr.WrapLoad(err, "list_comments")
	}
	defer rows.Close()

	records := make([]CommentRecord, 0)
	for rows.Next() {
		var id string
		var document []byte
		if err := rows.Scan(&id, &document); err != nil {
			return nil, dberr.WrapLoad(err, "scan_comment")
		}

		var record CommentRecord
		if err := json.Unmarshal(document, &record); err != nil {
			repository.logger.Warn("catalog_record_dropped", slog.String("kind", "comment"), slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.WrapLoad(err, "list_comments")
	}

	return records, nil
}

// ReplaceCatalog rewrites the mirror in one transaction.
// comments is keyed by film id; entries for unknown films are skipped.
func (repository *PostgresSource) ReplaceCatalog(context context.Context, films []FilmRecord, comments map[string][]CommentRecord) error {
	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {

		// 1. Clear both tables; comments go first because of the foreign key
		if _, err := tx.Exec(context, "DELETE FROM "+schema.CatalogComment.Table); err != nil {
			return dberr.Wrap(err, "clear_comments")
		}
		if _, err := tx.Exec(context, "DELETE FROM "+schema.CatalogFilm.Table); err != nil {
			return dberr.Wrap(err, "clear_films")
		}

		insertFilm := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
			schema.CatalogFilm.Table, schema.CatalogFilm.ID, schema.CatalogFilm.Position, schema.CatalogFilm.Document)
		insertComment := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
			schema.CatalogComment.Table, schema.CatalogComment.ID, schema.CatalogComment.FilmID,
			schema.CatalogComment.Position, schema.CatalogComment.Document)

		// 2. Queue every row in a single batch
		batch := &pgx.Batch{}
		for position, film := range films {
			document, err := json.Marshal(film)
			if err != nil {
				return fmt.Errorf("encode film %s: %w", film.ID, err)
			}
			batch.Queue(insertFilm, film.ID, position, document)

			for commentPosition, comment := range comments[film.ID] {
				commentDocument, err := json.Marshal(comment)
				if err != nil {
					return fmt.Errorf("encode comment %s: %w", comment.ID, err)
				}
				batch.Queue(insertComment, comment.ID, film.ID, commentPosition, commentDocument)
			}
		}

		// 3. Execute and surface the first failure
		if err := tx.SendBatch(context, batch).Close(); err != nil {
			return dberr.Wrap(err, "insert_catalog")
		}

		repository.logger.Info("catalog_mirror_replaced", slog.Int("films", len(films)))
		return nil
	})
}
