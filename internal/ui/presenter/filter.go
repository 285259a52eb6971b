// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package presenter

import (
	"maps"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
	"github.com/taibuivan/filmdeck/internal/ui/model"
	"github.com/taibuivan/filmdeck/internal/ui/view"
)

// FilterPresenter renders the navigation with per-filter counts.
type FilterPresenter struct {
	doc    *dom.Document
	films  *model.FilmsModel
	filter *model.FilterModel

	view     *view.FilterView
	removers []func()
}

// NewFilterPresenter creates the filter presenter.
func NewFilterPresenter(doc *dom.Document, films *model.FilmsModel, filter *model.FilterModel) *FilterPresenter {
	return &FilterPresenter{doc: doc, films: films, filter: filter}
}

// Init mounts the navigation and subscribes to films and filter changes.
func (p *FilterPresenter) Init() error {
	p.view = p.newView()
	if err := p.doc.Mount(p.view, dom.Main, dom.BeforeEnd); err != nil {
		return err
	}

	p.removers = append(p.removers,
		p.films.AddObserver(func(film.UpdateType, film.Film) error { return p.render() }),
		p.filter.AddObserver(func(film.UpdateType, film.FilterType) error { return p.render() }),
	)
	return nil
}

// Destroy unsubscribes and unmounts the navigation.
func (p *FilterPresenter) Destroy() {
	for _, remove := range p.removers {
		remove()
	}
	p.removers = nil
	p.doc.Unmount(p.view)
}

// Counts returns the counts currently on screen.
func (p *FilterPresenter) Counts() map[film.FilterType]int {
	return maps.Clone(p.view.Counts)
}

// render replaces the navigation when the counts or the active filter changed.
func (p *FilterPresenter) render() error {
	next := p.newView()
	if next.Active == p.view.Active && maps.Equal(next.Counts, p.view.Counts) {
		return nil
	}
	if err := p.doc.Replace(next, p.view); err != nil {
		return err
	}
	p.view = next
	return nil
}

func (p *FilterPresenter) newView() *view.FilterView {
	return &view.FilterView{
		Active: p.filter.Filter(),
		Counts: film.CountByFilter(p.films.Films()),
		Emit:   p.handle,
	}
}

func (p *FilterPresenter) handle(message view.Message) error {
	if message.Kind != view.KindFilter || message.Filter == p.filter.Filter() {
		return nil
	}
	return p.filter.SetFilter(film.UpdateMajor, message.Filter)
}
