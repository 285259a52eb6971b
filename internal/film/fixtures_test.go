// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/pkg/pointer"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// newFilm builds a valid film; tweak mutates it before it is returned.
func newFilm(id string, tweak ...func(*film.Film)) film.Film {
	f := film.Film{
		ID: id,
		Info: film.Info{
			Title:       "Film " + id,
			TotalRating: 5,
			Release:     film.Release{Date: day(2000, time.January, 1), Country: "USA"},
			Duration:    90,
			Genres:      []string{"Drama"},
		},
		Comments: []string{},
	}
	for _, apply := range tweak {
		apply(&f)
	}
	return f
}

func withWatchlist(f *film.Film) { f.UserDetails.Watchlist = true }
func withWatched(f *film.Film)   { f.UserDetails.AlreadyWatched = true }
func withFavorite(f *film.Film)  { f.UserDetails.Favorite = true }

func withRating(rating float64) func(*film.Film) {
	return func(f *film.Film) { f.Info.TotalRating = rating }
}

func withRelease(date time.Time) func(*film.Film) {
	return func(f *film.Film) { f.Info.Release.Date = date }
}

func withComments(ids ...string) func(*film.Film) {
	return func(f *film.Film) { f.Comments = ids }
}

func ids(films []film.Film) []string {
	out := make([]string, len(films))
	for i, f := range films {
		out[i] = f.ID
	}
	return out
}

func filmRecord(id string, commentIDs ...string) film.FilmRecord {
	if commentIDs == nil {
		commentIDs = []string{}
	}
	return film.FilmRecord{
		ID:       id,
		Comments: commentIDs,
		FilmInfo: &film.FilmInfoRecord{
			Title:            "The Man with the Golden Arm",
			AlternativeTitle: "Golden Arm",
			TotalRating:      8.9,
			Poster:           "images/posters/the-man-with-the-golden-arm.jpg",
			AgeRating:        16,
			Director:         "Otto Preminger",
			Writers:          []string{"Walter Newman"},
			Actors:           []string{"Frank Sinatra", "Kim Novak"},
			Release:          film.ReleaseRecord{Date: "1955-12-15T00:00:00.000Z", ReleaseCountry: "USA"},
			Duration:         119,
			Genre:            []string{"Drama", "Film-Noir"},
			Description:      "A junkie tries to stay clean.",
		},
		UserDetails: film.UserDetailsRecord{
			Watchlist:      true,
			AlreadyWatched: true,
			WatchingDate:   pointer.To("2022-04-11T16:12:32.554Z"),
			Favorite:       false,
		},
	}
}

func commentRecord(id string) film.CommentRecord {
	return film.CommentRecord{
		ID:      id,
		Author:  "Ilya O'Reilly",
		Comment: "a film that changed my <b>life</b>",
		Date:    "2019-05-11T16:12:32.554Z",
		Emotion: "smile",
	}
}

// fakeSource serves fixed records and counts calls.
type fakeSource struct {
	mu          sync.Mutex
	films       []film.FilmRecord
	comments    map[string][]film.CommentRecord
	filmsErr    error
	commentsErr map[string]error
	delay       time.Duration

	filmCalls    atomic.Int32
	commentCalls atomic.Int32
}

func (source *fakeSource) Films(ctx context.Context) ([]film.FilmRecord, error) {
	source.filmCalls.Add(1)
	if err := source.wait(ctx); err != nil {
		return nil, err
	}
	if source.filmsErr != nil {
		return nil, source.filmsErr
	}
	return source.films, nil
}

func (source *fakeSource) Comments(ctx context.Context, filmID string) ([]film.CommentRecord, error) {
	source.commentCalls.Add(1)
	if err := source.wait(ctx); err != nil {
		return nil, err
	}
	source.mu.Lock()
	defer source.mu.Unlock()
	if err := source.commentsErr[filmID]; err != nil {
		return nil, err
	}
	return source.comments[filmID], nil
}

func (source *fakeSource) wait(ctx context.Context) error {
	if source.delay == 0 {
		return nil
	}
	select {
	case <-time.After(source.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
