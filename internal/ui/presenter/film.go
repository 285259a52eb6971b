// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package presenter

import (
	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
	"github.com/taibuivan/filmdeck/internal/ui/model"
	"github.com/taibuivan/filmdeck/internal/ui/view"
)

// FilmPresenter owns the card and the popup of one film. Its lifetime ends
// when the film leaves the rendered slice.
type FilmPresenter struct {
	doc       *dom.Document
	container dom.Container
	comments  *model.CommentsModel
	options   Options
	onAction  ActionHandler
	onOpen    func(*FilmPresenter) error

	film      film.Film
	card      *view.FilmCardView
	popup     *PopupPresenter
	destroyed bool
}

// NewFilmPresenter creates a presenter rendering into container. onOpen is
// asked to open the popup so that the list can keep a single modal;
// onPopupClose runs whenever the popup closes.
func NewFilmPresenter(
	doc *dom.Document,
	container dom.Container,
	comments *model.CommentsModel,
	options Options,
	onAction ActionHandler,
	onOpen func(*FilmPresenter) error,
	onPopupClose func(*FilmPresenter),
) *FilmPresenter {
	p := &FilmPresenter{
		doc:       doc,
		container: container,
		comments:  comments,
		options:   options.withDefaults(),
		onAction:  onAction,
		onOpen:    onOpen,
	}
	p.popup = newPopupPresenter(doc, p.options, film.Film{}, nil, onAction, func() {
		if onPopupClose != nil {
			onPopupClose(p)
		}
	})
	return p
}

// Film returns the film as last rendered.
func (p *FilmPresenter) Film() film.Film {
	return p.film
}

// Init renders f: the card is mounted the first time and replaced in place
// afterwards; an open popup re-renders too.
func (p *FilmPresenter) Init(f film.Film) error {
	p.film = f
	card := &view.FilmCardView{Film: f, Emit: p.handleCard}

	var err error
	if p.card == nil {
		err = p.doc.Mount(card, p.container, dom.BeforeEnd)
	} else {
		err = p.doc.Replace(card, p.card)
	}
	if err != nil {
		return err
	}
	p.card = card

	return p.popup.Reset(f, p.comments.ForFilm(f))
}

// OpenPopup mounts the popup. It is idempotent.
func (p *FilmPresenter) OpenPopup() error {
	if p.destroyed {
		return nil
	}
	return p.popup.Open()
}

// ClosePopup unmounts the popup if it is open.
func (p *FilmPresenter) ClosePopup() {
	p.popup.Close()
}

// IsPopupOpen reports whether the popup is mounted.
func (p *FilmPresenter) IsPopupOpen() bool {
	return p.popup.IsOpen()
}

// Destroy unmounts the card and closes the popup.
func (p *FilmPresenter) Destroy() {
	p.destroyed = true
	p.popup.Close()
	if p.card != nil {
		p.doc.Unmount(p.card)
	}
}

func (p *FilmPresenter) handleCard(message view.Message) error {
	switch message.Kind {
	case view.KindOpen:
		if p.onOpen != nil {
			return p.onOpen(p)
		}
		return p.OpenPopup()

	case view.KindToggle:
		return p.onAction(Action{
			Type:   film.ActionUpdateFilm,
			Update: film.UpdatePatch,
			Film:   p.film.Toggle(message.Detail, p.options.Now()),
		})

	case view.KindClose, view.KindAddComment, view.KindDeleteComment, view.KindEmotion,
		view.KindDraft, view.KindSort, view.KindFilter, view.KindShowMore:
	}
	return nil
}
