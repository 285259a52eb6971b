// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view contains the render glue between presenters and the [dom.Document].

Architecture:

  - A view is template data plus a named html/template. It holds no state
    of its own beyond what its presenter puts in it.
  - A view turns raw browser events into one structured [Message] and hands
    it to its presenter through a single [Emitter]. Unknown actions are
    ignored, malformed values are VALIDATION_ERRORs.
  - Templates are embedded; every template renders exactly one root element.
*/
package view

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/apperr"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("view").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

func execute(name string, data any) (string, error) {
	var buffer bytes.Buffer
	if err := templates.ExecuteTemplate(&buffer, name, data); err != nil {
		return "", apperr.Internal(err)
	}
	return buffer.String(), nil
}

// # Messages

// Kind is the intent behind a [Message].
type Kind string

const (
	KindOpen          Kind = "open"
	KindClose         Kind = "close"
	KindToggle        Kind = "toggle"
	KindAddComment    Kind = "add-comment"
	KindDeleteComment Kind = "delete-comment"
	KindEmotion       Kind = "emotion"
	KindDraft         Kind = "draft"
	KindSort          Kind = "sort"
	KindFilter        Kind = "filter"
	KindShowMore      Kind = "show-more"
)

// Message is the one structured intent a view sends upward per interaction.
// Only the fields relevant to Kind are set.
type Message struct {
	Kind      Kind
	Detail    film.UserDetail
	CommentID string
	Text      string
	Emotion   film.Emotion
	Sort      film.SortType
	Filter    film.FilterType
}

// Emitter is the upward channel of a view.
type Emitter func(Message) error

func (emit Emitter) send(message Message) error {
	if emit == nil {
		return nil
	}
	return emit(message)
}

// Browser actions, mirrored by the data-action attributes in the templates.
const (
	actionOpen          = "open"
	actionClose         = "close"
	actionToggle        = "toggle"
	actionDeleteComment = "delete-comment"
	actionEmotion       = "emotion"
	actionComment       = "comment"
	actionSort          = "sort"
	actionFilter        = "filter"
	actionShowMore      = "show-more"
)

func invalid(field, message string) error {
	return apperr.ValidationError("Invalid event", apperr.FieldError{Field: field, Message: message})
}

// # Simple Views

// LoadingView is shown until the catalogue load settles.
type LoadingView struct{}

func (v *LoadingView) Template() (string, error) { return execute("loading", nil) }
func (v *LoadingView) Handle(dom.Event) error    { return nil }

// EmptyView replaces the film grid when nothing is visible.
type EmptyView struct {
	Message string
}

func (v *EmptyView) Template() (string, error) { return execute("empty", v) }
func (v *EmptyView) Handle(dom.Event) error    { return nil }

// BoardView is the film section. Cards go into its "list" slot and the
// show-more control into its "more" slot.
type BoardView struct{}

// Board slot names.
const (
	SlotList = "list"
	SlotMore = "more"
)

func (v *BoardView) Template() (string, error) { return execute("board", nil) }
func (v *BoardView) Handle(dom.Event) error    { return nil }

// ShowMoreView is the pagination control.
type ShowMoreView struct {
	Emit Emitter
}

func (v *ShowMoreView) Template() (string, error) { return execute("show-more", nil) }

func (v *ShowMoreView) Handle(event dom.Event) error {
	if event.Type == dom.EventClick && event.Action == actionShowMore {
		return v.Emit.send(Message{Kind: KindShowMore})
	}
	return nil
}
