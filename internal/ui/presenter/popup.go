// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package presenter

import (
	"html"
	"log/slog"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
	"github.com/taibuivan/filmdeck/internal/ui/view"
)

// escapeKey is the key that dismisses an open popup.
const escapeKey = "Escape"

// PopupPresenter owns the detail modal of one film. Its Escape listener is
// registered exactly while the popup is mounted.
type PopupPresenter struct {
	doc      *dom.Document
	options  Options
	onAction ActionHandler
	onClose  func()

	view     *view.PopupView
	listener int
}

func newPopupPresenter(doc *dom.Document, options Options, f film.Film, comments []film.Comment, onAction ActionHandler, onClose func()) *PopupPresenter {
	p := &PopupPresenter{doc: doc, options: options, onAction: onAction, onClose: onClose}
	p.view = view.NewPopupView(f, comments, p.handle)
	return p
}

// IsOpen reports whether the popup is mounted.
func (p *PopupPresenter) IsOpen() bool {
	return p.doc.IsMounted(p.view)
}

// Open mounts the popup. Opening an open popup does nothing.
func (p *PopupPresenter) Open() error {
	if p.IsOpen() {
		return nil
	}
	if err := p.doc.Mount(p.view, dom.Body, dom.BeforeEnd); err != nil {
		return err
	}
	p.listener = p.doc.AddKeyListener(p.onKeyDown)
	return nil
}

// Close unmounts the popup, drops its listener and resets the comment form.
func (p *PopupPresenter) Close() {
	if !p.IsOpen() {
		return
	}
	p.doc.Unmount(p.view)
	p.doc.RemoveKeyListener(p.listener)
	p.listener = 0
	p.view.Draft, p.view.Emotion = "", film.DefaultEmotion

	if p.onClose != nil {
		p.onClose()
	}
}

// Reset shows f and comments, re-rendering in place when open. The comment
// form keeps its draft.
func (p *PopupPresenter) Reset(f film.Film, comments []film.Comment) error {
	p.view.Film, p.view.Comments = f, comments
	return p.rerender()
}

func (p *PopupPresenter) rerender() error {
	if !p.IsOpen() {
		return nil
	}
	return p.doc.Replace(p.view, p.view)
}

func (p *PopupPresenter) onKeyDown(event dom.Event) error {
	if event.Key == escapeKey {
		p.Close()
	}
	return nil
}

func (p *PopupPresenter) handle(message view.Message) error {
	current := p.view.Film

	switch message.Kind {
	case view.KindClose:
		p.Close()
		return nil

	case view.KindToggle:
		return p.onAction(Action{
			Type:   film.ActionUpdateFilm,
			Update: film.UpdatePatch,
			Film:   current.Toggle(message.Detail, p.options.Now()),
		})

	case view.KindEmotion:
		p.view.Emotion = message.Emotion
		return p.rerender()

	case view.KindDraft:
		p.view.Draft = message.Text
		return nil

	case view.KindAddComment:
		return p.addComment(current, message)

	case view.KindDeleteComment:
		return p.onAction(Action{
			Type:    film.ActionDeleteComment,
			Update:  film.UpdatePatch,
			Film:    current,
			Comment: film.Comment{ID: message.CommentID, FilmID: current.ID},
		})

	case view.KindOpen, view.KindSort, view.KindFilter, view.KindShowMore:
	}
	return nil
}

// addComment clears the form before the model notifies, so the re-render
// that follows shows an empty form. A failed add restores the draft.
func (p *PopupPresenter) addComment(current film.Film, message view.Message) error {
	comment := film.Comment{
		ID:      p.options.NewID(),
		FilmID:  current.ID,
		Author:  p.options.Author,
		Text:    html.EscapeString(message.Text),
		Emotion: message.Emotion,
		Date:    p.options.Now(),
	}

	p.view.Draft, p.view.Emotion = "", film.DefaultEmotion

	err := p.onAction(Action{Type: film.ActionAddComment, Update: film.UpdatePatch, Film: current, Comment: comment})
	if err != nil {
		p.view.Draft, p.view.Emotion = message.Text, message.Emotion
		if renderErr := p.rerender(); renderErr != nil {
			p.options.Logger.Warn("popup_restore_failed", slog.String("error", renderErr.Error()))
		}
		return err
	}
	return nil
}
