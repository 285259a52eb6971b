// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package film holds the catalogue domain: films, comments, the closed
enumerations the UI switches over, the pure derivation functions (filter,
sort, counts) and the adapter from the remote film service's schema.

Architecture:

  - Domain types never carry JSON tags. The external snake_case shape lives
    in record.go and is only translated in adapter.go.
  - Every function in derive.go is pure: inputs are never mutated and
    results never alias inputs.
  - Sources (REST, PostgreSQL mirror, Redis cache) return raw records; the
    [Loader] adapts and reconciles them into a [Catalog].
*/
package film

import (
	"slices"
	"time"

	"github.com/taibuivan/filmdeck/pkg/pointer"
)

// # Enumerations

// UpdateType classifies how much of the UI a model notification re-renders.
type UpdateType string

const (
	// UpdateInit is reserved for the one-time transition out of loading.
	UpdateInit UpdateType = "INIT"
	// UpdatePatch re-renders a single card and its popup.
	UpdatePatch UpdateType = "PATCH"
	// UpdateMinor re-renders the visible list, keeping the pagination count.
	UpdateMinor UpdateType = "MINOR"
	// UpdateMajor re-renders from scratch with default sort and first page.
	UpdateMajor UpdateType = "MAJOR"
)

// IsValid reports whether u is a known update type.
func (u UpdateType) IsValid() bool {
	switch u {
	case UpdateInit, UpdatePatch, UpdateMinor, UpdateMajor:
		return true
	}
	return false
}

// IsMutation reports whether u may accompany a model mutation.
func (u UpdateType) IsMutation() bool {
	switch u {
	case UpdatePatch, UpdateMinor, UpdateMajor:
		return true
	case UpdateInit:
		return false
	}
	return false
}

// UserAction is the semantic intent of a view-originated mutation.
type UserAction string

const (
	ActionUpdateFilm    UserAction = "UPDATE_FILM"
	ActionAddComment    UserAction = "ADD_COMMENT"
	ActionDeleteComment UserAction = "DELETE_COMMENT"
)

// IsValid reports whether a is a known action.
func (a UserAction) IsValid() bool {
	switch a {
	case ActionUpdateFilm, ActionAddComment, ActionDeleteComment:
		return true
	}
	return false
}

// FilterType names a predicate selecting a subset of films.
type FilterType string

const (
	FilterAll       FilterType = "all"
	FilterWatchlist FilterType = "watchlist"
	FilterHistory   FilterType = "history"
	FilterFavorite  FilterType = "favorites"
)

// Filters lists every filter in display order.
var Filters = []FilterType{FilterAll, FilterWatchlist, FilterHistory, FilterFavorite}

// IsValid reports whether f is a known filter.
func (f FilterType) IsValid() bool {
	return slices.Contains(Filters, f)
}

// Label is the navigation caption of the filter.
func (f FilterType) Label() string {
	switch f {
	case FilterAll:
		return "All movies"
	case FilterWatchlist:
		return "Watchlist"
	case FilterHistory:
		return "History"
	case FilterFavorite:
		return "Favorites"
	}
	return string(f)
}

// EmptyMessage is shown when the filter selects nothing.
func (f FilterType) EmptyMessage() string {
	switch f {
	case FilterAll:
		return "There are no movies in our database"
	case FilterWatchlist:
		return "There are no movies to watch now"
	case FilterHistory:
		return "There are no watched movies now"
	case FilterFavorite:
		return "There are no favorite movies now"
	}
	return ""
}

// SortType names a total order applied to the filtered films.
type SortType string

const (
	SortDefault SortType = "default"
	SortDate    SortType = "date"
	SortRating  SortType = "rating"
)

// Sorts lists every sort in display order.
var Sorts = []SortType{SortDefault, SortDate, SortRating}

// IsValid reports whether s is a known sort.
func (s SortType) IsValid() bool {
	return slices.Contains(Sorts, s)
}

// Label is the caption of the sort control.
func (s SortType) Label() string {
	switch s {
	case SortDefault:
		return "Sort by default"
	case SortDate:
		return "Sort by date"
	case SortRating:
		return "Sort by rating"
	}
	return string(s)
}

// Emotion is the reaction attached to a comment.
type Emotion string

const (
	EmotionSmile    Emotion = "smile"
	EmotionSleeping Emotion = "sleeping"
	EmotionPuke     Emotion = "puke"
	EmotionAngry    Emotion = "angry"
)

// DefaultEmotion is preselected in a fresh comment form.
const DefaultEmotion = EmotionSmile

// Emotions lists every emotion in picker order.
var Emotions = []Emotion{EmotionSmile, EmotionSleeping, EmotionPuke, EmotionAngry}

// IsValid reports whether e is a known emotion.
func (e Emotion) IsValid() bool {
	return slices.Contains(Emotions, e)
}

// UserDetail names one of the independent per-user flags of a film.
type UserDetail string

const (
	DetailWatchlist      UserDetail = "watchlist"
	DetailAlreadyWatched UserDetail = "alreadyWatched"
	DetailFavorite       UserDetail = "favorite"
)

// UserDetailsOrder lists the toggles in control order.
var UserDetailsOrder = []UserDetail{DetailWatchlist, DetailAlreadyWatched, DetailFavorite}

// IsValid reports whether d is a known toggle.
func (d UserDetail) IsValid() bool {
	return slices.Contains(UserDetailsOrder, d)
}

// Label is the caption of the toggle control.
func (d UserDetail) Label() string {
	switch d {
	case DetailWatchlist:
		return "Add to watchlist"
	case DetailAlreadyWatched:
		return "Already watched"
	case DetailFavorite:
		return "Add to favorites"
	}
	return string(d)
}

// # Domain Types

// Release is the premiere of a film.
type Release struct {
	Date    time.Time
	Country string
}

// Info is the descriptive part of a film.
type Info struct {
	Title            string
	AlternativeTitle string
	TotalRating      float64
	AgeRating        int
	Director         string
	Writers          []string
	Actors           []string
	Release          Release
	Duration         int // minutes
	Genres           []string
	Description      string
	Poster           string
}

// UserDetails are the per-user flags. They are independent booleans.
type UserDetails struct {
	Watchlist      bool
	AlreadyWatched bool
	WatchingDate   *time.Time
	Favorite       bool
}

// Film is a catalogue entry. Comments lists comment ids in display order.
type Film struct {
	ID          string
	Info        Info
	UserDetails UserDetails
	Comments    []string
}

// Comment is a user annotation on a film. Text is always HTML-escaped.
type Comment struct {
	ID      string
	FilmID  string
	Author  string
	Text    string
	Emotion Emotion
	Date    time.Time
}

// Catalog is the adapted and reconciled result of one load.
type Catalog struct {
	Films    []Film
	Comments []Comment
}

// # Copy Semantics

// Clone returns a deep copy so snapshots never share backing arrays.
func (f Film) Clone() Film {
	clone := f
	clone.Comments = slices.Clone(f.Comments)
	clone.Info.Writers = slices.Clone(f.Info.Writers)
	clone.Info.Actors = slices.Clone(f.Info.Actors)
	clone.Info.Genres = slices.Clone(f.Info.Genres)
	clone.UserDetails.WatchingDate = pointer.Clone(f.UserDetails.WatchingDate)
	return clone
}

// Flag returns the value of one user detail.
func (f Film) Flag(detail UserDetail) bool {
	switch detail {
	case DetailWatchlist:
		return f.UserDetails.Watchlist
	case DetailAlreadyWatched:
		return f.UserDetails.AlreadyWatched
	case DetailFavorite:
		return f.UserDetails.Favorite
	}
	return false
}

// Toggle returns a copy with detail flipped. Marking a film as watched
// stamps WatchingDate with now; un-marking clears it.
func (f Film) Toggle(detail UserDetail, now time.Time) Film {
	next := f.Clone()
	switch detail {
	case DetailWatchlist:
		next.UserDetails.Watchlist = !f.UserDetails.Watchlist
	case DetailAlreadyWatched:
		next.UserDetails.AlreadyWatched = !f.UserDetails.AlreadyWatched
		if next.UserDetails.AlreadyWatched {
			next.UserDetails.WatchingDate = pointer.To(now)
		} else {
			next.UserDetails.WatchingDate = nil
		}
	case DetailFavorite:
		next.UserDetails.Favorite = !f.UserDetails.Favorite
	}
	return next
}

// WithComment returns a copy listing commentID last. An id already listed is not repeated.
func (f Film) WithComment(commentID string) Film {
	next := f.Clone()
	if !slices.Contains(next.Comments, commentID) {
		next.Comments = append(next.Comments, commentID)
	}
	return next
}

// WithoutComment returns a copy with commentID removed from the list.
func (f Film) WithoutComment(commentID string) Film {
	next := f.Clone()
	next.Comments = slices.DeleteFunc(next.Comments, func(id string) bool { return id == commentID })
	return next
}
