// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"html"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/filmdeck/internal/platform/apperr"
	"github.com/taibuivan/filmdeck/internal/platform/validate"
	"github.com/taibuivan/filmdeck/pkg/pointer"
	"github.com/taibuivan/filmdeck/pkg/slice"
)

// timestampLayout is the millisecond ISO 8601 form the remote service emits.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// # Records to Domain

// AdaptFilm translates a remote record into a [Film].
// It returns a VALIDATION_ERROR naming every missing or malformed field.
func AdaptFilm(record FilmRecord) (Film, error) {
	v := &validate.Validator{}
	v.Required("id", record.ID)
	v.Custom("comments", slices.Contains(record.Comments, ""), "Must not contain empty ids")

	if record.FilmInfo == nil {
		v.Custom("film_info", true, "This field is required")
		return Film{}, v.ErrWithMessage("Film record rejected")
	}

	info := record.FilmInfo
	v.Required("film_info.title", info.Title)
	v.Required("film_info.release.date", info.Release.Date)
	v.Timestamp("film_info.release.date", info.Release.Date)
	v.NotNegative("film_info.total_rating", info.TotalRating)
	v.Custom("film_info.duration", info.Duration < 0, "Must not be negative")
	v.Custom("film_info.age_rating", info.AgeRating < 0, "Must not be negative")
	v.Timestamp("user_details.watching_date", pointer.Val(record.UserDetails.WatchingDate))

	if err := v.ErrWithMessage("Film record rejected"); err != nil {
		return Film{}, err
	}

	releaseDate, _ := time.Parse(time.RFC3339, info.Release.Date)

	var watchingDate *time.Time
	if raw := pointer.Val(record.UserDetails.WatchingDate); raw != "" {
		parsed, _ := time.Parse(time.RFC3339, raw)
		watchingDate = &parsed
	}

	return Film{
		ID: record.ID,
		Info: Info{
			Title:            info.Title,
			AlternativeTitle: info.AlternativeTitle,
			TotalRating:      info.TotalRating,
			AgeRating:        info.AgeRating,
			Director:         info.Director,
			Writers:          slices.Clone(info.Writers),
			Actors:           slices.Clone(info.Actors),
			Release:          Release{Date: releaseDate, Country: info.Release.ReleaseCountry},
			Duration:         info.Duration,
			Genres:           slices.Clone(info.Genre),
			Description:      info.Description,
			Poster:           info.Poster,
		},
		UserDetails: UserDetails{
			Watchlist:      record.UserDetails.Watchlist,
			AlreadyWatched: record.UserDetails.AlreadyWatched,
			WatchingDate:   watchingDate,
			Favorite:       record.UserDetails.Favorite,
		},
		Comments: slices.Clone(record.Comments),
	}, nil
}

// AdaptComment translates a remote comment fetched for filmID.
// The text is HTML-escaped here, so every [Comment] in memory is render-safe.
func AdaptComment(filmID string, record CommentRecord) (Comment, error) {
	v := &validate.Validator{}
	v.Required("film_id", filmID)
	v.Required("id", record.ID)
	v.Required("comment", record.Comment)
	v.Required("date", record.Date)
	v.Timestamp("date", record.Date)
	v.OneOf("emotion", record.Emotion, slice.Map(Emotions, func(e Emotion) string { return string(e) })...)

	if err := v.ErrWithMessage("Comment record rejected"); err != nil {
		return Comment{}, err
	}

	date, _ := time.Parse(time.RFC3339, record.Date)

	return Comment{
		ID:      record.ID,
		FilmID:  filmID,
		Author:  strings.TrimSpace(record.Author),
		Text:    html.EscapeString(record.Comment),
		Emotion: Emotion(record.Emotion),
		Date:    date,
	}, nil
}

// AdaptFilms adapts every record, dropping and logging the invalid ones and
// any repeated id. One bad record never aborts the batch.
func AdaptFilms(records []FilmRecord, logger *slog.Logger) []Film {
	films := make([]Film, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, record := range records {
		adapted, err := AdaptFilm(record)
		if err == nil {
			if _, duplicate := seen[adapted.ID]; duplicate {
				err = apperr.Conflict("Duplicate film id")
			}
		}
		if err != nil {
			logDropped(logger, "film", record.ID, err)
			continue
		}
		seen[adapted.ID] = struct{}{}
		films = append(films, adapted)
	}

	return films
}

// AdaptComments adapts the comments fetched for one film, dropping invalid ones.
func AdaptComments(filmID string, records []CommentRecord, logger *slog.Logger) []Comment {
	comments := make([]Comment, 0, len(records))

	for _, record := range records {
		adapted, err := AdaptComment(filmID, record)
		if err != nil {
			logDropped(logger, "comment", record.ID, err)
			continue
		}
		comments = append(comments, adapted)
	}

	return comments
}

func logDropped(logger *slog.Logger, kind, id string, err error) {
	attrs := []any{
		slog.String("kind", kind),
		slog.String("id", id),
		slog.String("error", err.Error()),
	}
	if appError := apperr.As(err); appError != nil && len(appError.Details) > 0 {
		attrs = append(attrs, slog.Any("fields", appError.Details))
	}
	logger.Warn("catalog_record_dropped", attrs...)
}

// # Domain to Records

// ToFilmRecord is the inverse of [AdaptFilm].
func ToFilmRecord(f Film) FilmRecord {
	var watchingDate *string
	if f.UserDetails.WatchingDate != nil {
		watchingDate = pointer.To(f.UserDetails.WatchingDate.UTC().Format(timestampLayout))
	}

	comments := slices.Clone(f.Comments)
	if comments == nil {
		comments = []string{}
	}

	return FilmRecord{
		ID:       f.ID,
		Comments: comments,
		FilmInfo: &FilmInfoRecord{
			Title:            f.Info.Title,
			AlternativeTitle: f.Info.AlternativeTitle,
			TotalRating:      f.Info.TotalRating,
			Poster:           f.Info.Poster,
			AgeRating:        f.Info.AgeRating,
			Director:         f.Info.Director,
			Writers:          slices.Clone(f.Info.Writers),
			Actors:           slices.Clone(f.Info.Actors),
			Release: ReleaseRecord{
				Date:           f.Info.Release.Date.UTC().Format(timestampLayout),
				ReleaseCountry: f.Info.Release.Country,
			},
			Duration:    f.Info.Duration,
			Genre:       slices.Clone(f.Info.Genres),
			Description: f.Info.Description,
		},
		UserDetails: UserDetailsRecord{
			Watchlist:      f.UserDetails.Watchlist,
			AlreadyWatched: f.UserDetails.AlreadyWatched,
			WatchingDate:   watchingDate,
			Favorite:       f.UserDetails.Favorite,
		},
	}
}

// ToCommentRecord is the inverse of [AdaptComment]; the text is unescaped.
func ToCommentRecord(c Comment) CommentRecord {
	return CommentRecord{
		ID:      c.ID,
		Author:  c.Author,
		Comment: html.UnescapeString(c.Text),
		Date:    c.Date.UTC().Format(timestampLayout),
		Emotion: string(c.Emotion),
	}
}

// # Reconciliation

// ReconcileReport summarises what [Reconcile] rejected.
type ReconcileReport struct {
	// OrphanComments are comment ids whose film is unknown or does not list them.
	OrphanComments []string
	// PrunedReferences counts film comment ids with no loaded comment.
	PrunedReferences int
}

// Clean reports whether nothing had to be rejected.
func (r ReconcileReport) Clean() bool {
	return len(r.OrphanComments) == 0 && r.PrunedReferences == 0
}

// Reconcile enforces the film to comment association in both directions.
// A comment survives only if its FilmID names a loaded film that lists the
// comment id. A film keeps only the comment ids that resolve to a surviving
// comment. Inputs are not modified.
func Reconcile(films []Film, comments []Comment) ([]Film, []Comment, ReconcileReport) {
	report := ReconcileReport{}

	listedBy := make(map[string]string)
	for _, f := range films {
		for _, commentID := range f.Comments {
			listedBy[commentID] = f.ID
		}
	}

	kept := make([]Comment, 0, len(comments))
	keptIDs := make(map[string]struct{}, len(comments))
	for _, comment := range comments {
		owner, listed := listedBy[comment.ID]
		_, duplicate := keptIDs[comment.ID]
		if !listed || owner != comment.FilmID || duplicate {
			report.OrphanComments = append(report.OrphanComments, comment.ID)
			continue
		}
		keptIDs[comment.ID] = struct{}{}
		kept = append(kept, comment)
	}

	reconciled := make([]Film, len(films))
	for i, f := range films {
		next := f.Clone()
		next.Comments = slice.Filter(f.Comments, func(id string) bool {
			_, ok := keptIDs[id]
			return ok && listedBy[id] == f.ID
		})
		report.PrunedReferences += len(f.Comments) - len(next.Comments)
		reconciled[i] = next
	}

	return reconciled, kept, report
}
