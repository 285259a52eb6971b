// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package presenter

import (
	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
	"github.com/taibuivan/filmdeck/internal/ui/model"
	"github.com/taibuivan/filmdeck/internal/ui/view"
)

// ProfilePresenter shows the viewer rank in the header.
type ProfilePresenter struct {
	doc    *dom.Document
	films  *model.FilmsModel
	view   *view.ProfileView
	remove func()
}

// NewProfilePresenter creates the header profile presenter.
func NewProfilePresenter(doc *dom.Document, films *model.FilmsModel) *ProfilePresenter {
	return &ProfilePresenter{doc: doc, films: films}
}

// Init mounts the profile and follows the watched count.
func (p *ProfilePresenter) Init() error {
	p.view = &view.ProfileView{Rank: film.Rank(p.films.Films())}
	if err := p.doc.Mount(p.view, dom.Header, dom.BeforeEnd); err != nil {
		return err
	}
	p.remove = p.films.AddObserver(func(film.UpdateType, film.Film) error {
		rank := film.Rank(p.films.Films())
		if rank == p.view.Rank {
			return nil
		}
		next := &view.ProfileView{Rank: rank}
		if err := p.doc.Replace(next, p.view); err != nil {
			return err
		}
		p.view = next
		return nil
	})
	return nil
}

// Rank returns the rank on screen.
func (p *ProfilePresenter) Rank() film.ProfileRank { return p.view.Rank }

// Destroy unsubscribes and unmounts the profile.
func (p *ProfilePresenter) Destroy() {
	if p.remove != nil {
		p.remove()
	}
	p.doc.Unmount(p.view)
}

// StatisticsPresenter shows the catalogue size in the footer.
type StatisticsPresenter struct {
	doc    *dom.Document
	films  *model.FilmsModel
	view   *view.StatisticsView
	remove func()
}

// NewStatisticsPresenter creates the footer statistics presenter.
func NewStatisticsPresenter(doc *dom.Document, films *model.FilmsModel) *StatisticsPresenter {
	return &StatisticsPresenter{doc: doc, films: films}
}

// Init mounts the footer count and follows the films model.
func (p *StatisticsPresenter) Init() error {
	p.view = &view.StatisticsView{Count: len(p.films.Films())}
	if err := p.doc.Mount(p.view, dom.Footer, dom.BeforeEnd); err != nil {
		return err
	}
	p.remove = p.films.AddObserver(func(film.UpdateType, film.Film) error {
		count := len(p.films.Films())
		if count == p.view.Count {
			return nil
		}
		next := &view.StatisticsView{Count: count}
		if err := p.doc.Replace(next, p.view); err != nil {
			return err
		}
		p.view = next
		return nil
	})
	return nil
}

// Count returns the count on screen.
func (p *StatisticsPresenter) Count() int { return p.view.Count }

// Destroy unsubscribes and unmounts the footer count.
func (p *StatisticsPresenter) Destroy() {
	if p.remove != nil {
		p.remove()
	}
	p.doc.Unmount(p.view)
}
