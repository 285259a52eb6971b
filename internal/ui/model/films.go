// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package model holds the three observable state slices of one UI session.

Architecture:

  - Every model commits its new state before it notifies.
  - Readers get snapshots: mutating a returned slice never reaches the model.
  - Mutations are classified by a caller-supplied [film.UpdateType]; INIT is
    reserved for the one-time load.
*/
package model

import (
	"fmt"
	"slices"
	"sync"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/apperr"
	"github.com/taibuivan/filmdeck/internal/ui/observable"
)

// State is the load state of the [FilmsModel].
type State string

const (
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// FilmsModel owns the ordered film sequence.
type FilmsModel struct {
	observable.Observable[film.Film]

	mu    sync.RWMutex
	films []film.Film
	state State
	err   error
}

// NewFilmsModel creates a model in the loading state.
func NewFilmsModel() *FilmsModel {
	return &FilmsModel{films: []film.Film{}, state: StateLoading}
}

// State returns the current load state.
func (m *FilmsModel) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Err returns the load error of a failed model.
func (m *FilmsModel) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Films returns a snapshot of the current sequence.
func (m *FilmsModel) Films() []film.Film {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.films)
}

// Init commits the load result and notifies INIT. A non-nil loadErr moves the
// model to [StateFailed] with no films.
func (m *FilmsModel) Init(films []film.Film, loadErr error) error {
	m.mu.Lock()
	if m.state != StateLoading {
		m.mu.Unlock()
		return apperr.Conflict("Films are already loaded")
	}
	if loadErr != nil {
		m.state, m.err, m.films = StateFailed, loadErr, []film.Film{}
	} else {
		m.state, m.films = StateLoaded, cloneFilms(films)
	}
	m.mu.Unlock()

	return m.Notify(film.UpdateInit, film.Film{})
}

// UpdateFilm replaces the film with the same id, keeping its position, and
// notifies (updateType, updated).
func (m *FilmsModel) UpdateFilm(updateType film.UpdateType, updated film.Film) error {
	if !updateType.IsMutation() {
		return apperr.ValidationError(fmt.Sprintf("Update type %q cannot carry a mutation", updateType))
	}

	m.mu.Lock()
	index := film.IndexOf(m.films, updated.ID)
	if index < 0 {
		m.mu.Unlock()
		return apperr.NotFound("Film")
	}

	next := slices.Clone(m.films)
	next[index] = updated.Clone()
	m.films = next
	m.mu.Unlock()

	return m.Notify(updateType, updated.Clone())
}

func cloneFilms(films []film.Film) []film.Film {
	out := make([]film.Film, len(films))
	for i, f := range films {
		out[i] = f.Clone()
	}
	return out
}
