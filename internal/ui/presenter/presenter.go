// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package presenter mediates between the UI models and the views mounted in a
[dom.Document].

Architecture:

  - Presenters never change what they show on their own: a user intent goes
    upward as an [Action], the owning model commits and notifies, and the
    subscribed presenters re-render only what the update type asks for.
  - The [FilmListPresenter] owns the film cards: one [FilmPresenter] per
    rendered film, each owning its card and its popup.
  - PATCH re-renders one card (and its open popup), MINOR the visible list
    keeping the page count, MAJOR everything from the first page and the
    default sort.
*/
package presenter

import (
	"log/slog"
	"time"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/constants"
	"github.com/taibuivan/filmdeck/pkg/uuid"
)

// Action is the one upward message of a film presenter: what to do, how much
// to re-render, and on what.
type Action struct {
	Type    film.UserAction
	Update  film.UpdateType
	Film    film.Film
	Comment film.Comment
}

// ActionHandler receives actions from film presenters.
type ActionHandler func(Action) error

// Options are the session-level settings shared by the presenters.
type Options struct {
	// Author signs comments written in this session.
	Author string
	// PageSize is the number of cards per "show more" step.
	PageSize int
	// Now stamps comments and watching dates.
	Now func() time.Time
	// NewID generates comment ids.
	NewID func() string
	// Logger receives presenter diagnostics.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = constants.FilmsPerPage
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.New
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
