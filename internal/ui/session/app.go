// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session hosts the UI state of each connected browser.

Architecture:

  - [App] is the composition root of one browser: the three models, the
    presenters and the [dom.Document] they render into.
  - [Session] serialises every event and the load completion, so each
    state transition runs to completion before the next one starts.
  - [Manager] creates sessions, starts their catalogue load in the
    background and evicts the ones left idle.
*/
package session

import (
	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
	"github.com/taibuivan/filmdeck/internal/ui/model"
	"github.com/taibuivan/filmdeck/internal/ui/presenter"
)

// App wires models, presenters and the document of one browser. It is not
// safe for concurrent use; [Session] guards it.
type App struct {
	Document *dom.Document
	Films    *model.FilmsModel
	Comments *model.CommentsModel
	Filter   *model.FilterModel

	profile    *presenter.ProfilePresenter
	navigation *presenter.FilterPresenter
	list       *presenter.FilmListPresenter
	statistics *presenter.StatisticsPresenter
}

// NewApp builds an app whose films are still loading.
func NewApp(options presenter.Options) *App {
	app := &App{
		Document: dom.NewDocument(),
		Films:    model.NewFilmsModel(),
		Comments: model.NewCommentsModel(),
		Filter:   model.NewFilterModel(),
	}

	app.profile = presenter.NewProfilePresenter(app.Document, app.Films)
	app.navigation = presenter.NewFilterPresenter(app.Document, app.Films, app.Filter)
	app.list = presenter.NewFilmListPresenter(app.Document, app.Films, app.Comments, app.Filter, options)
	app.statistics = presenter.NewStatisticsPresenter(app.Document, app.Films)
	return app
}

// Start renders the shell: profile, navigation, sort, board with the
// loading view, and the footer.
func (app *App) Start() error {
	for _, start := range []func() error{
		app.profile.Init,
		app.navigation.Init,
		app.list.Init,
		app.statistics.Init,
	} {
		if err := start(); err != nil {
			return err
		}
	}
	return nil
}

// Loaded commits the load result. A non-nil loadErr leaves the app in its
// failed state with the controls still interactive.
func (app *App) Loaded(catalog film.Catalog, loadErr error) error {
	if loadErr == nil {
		app.Comments.Init(catalog.Comments)
	}
	return app.Films.Init(catalog.Films, loadErr)
}

// Dispatch routes one browser event.
func (app *App) Dispatch(event dom.Event) error {
	return app.Document.Dispatch(event)
}

// List exposes the film list presenter.
func (app *App) List() *presenter.FilmListPresenter {
	return app.list
}

// Stop unsubscribes every presenter and unmounts the tree.
func (app *App) Stop() {
	app.statistics.Destroy()
	app.list.Destroy()
	app.navigation.Destroy()
	app.profile.Destroy()
}
