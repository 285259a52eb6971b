// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"strings"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
)

// FilmCardView is one film in the grid.
type FilmCardView struct {
	Film film.Film
	Emit Emitter
}

func (v *FilmCardView) Template() (string, error) { return execute("film-card", v) }

func (v *FilmCardView) Handle(event dom.Event) error {
	if event.Type != dom.EventClick {
		return nil
	}
	switch event.Action {
	case actionOpen:
		return v.Emit.send(Message{Kind: KindOpen})
	case actionToggle:
		return emitToggle(v.Emit, event.Value)
	}
	return nil
}

// PopupView is the film detail modal.
type PopupView struct {
	Film     film.Film
	Comments []film.Comment
	Emotion  film.Emotion
	Draft    string
	Emit     Emitter
}

// NewPopupView creates a popup with a fresh comment form.
func NewPopupView(f film.Film, comments []film.Comment, emit Emitter) *PopupView {
	return &PopupView{Film: f, Comments: comments, Emotion: film.DefaultEmotion, Emit: emit}
}

func (v *PopupView) Template() (string, error) { return execute("popup", v) }

// Handle maps the popup controls onto messages. The comment form submits on
// Ctrl+Enter or Cmd+Enter with non-blank text.
func (v *PopupView) Handle(event dom.Event) error {
	switch event.Type {
	case dom.EventClick:
		switch event.Action {
		case actionClose:
			return v.Emit.send(Message{Kind: KindClose})
		case actionToggle:
			return emitToggle(v.Emit, event.Value)
		case actionDeleteComment:
			if event.Value == "" {
				return invalid("comment_id", "This field is required")
			}
			return v.Emit.send(Message{Kind: KindDeleteComment, CommentID: event.Value})
		}

	case dom.EventChange:
		if event.Action == actionEmotion {
			emotion := film.Emotion(event.Value)
			if !emotion.IsValid() {
				return invalid("emotion", "Unknown emotion")
			}
			return v.Emit.send(Message{Kind: KindEmotion, Emotion: emotion})
		}

	case dom.EventInput:
		if event.Action == actionComment {
			return v.Emit.send(Message{Kind: KindDraft, Text: event.Value})
		}

	case dom.EventKeyDown:
		if event.Action == actionComment && event.Key == "Enter" && (event.Ctrl || event.Meta) {
			if strings.TrimSpace(event.Value) == "" {
				return nil
			}
			return v.Emit.send(Message{Kind: KindAddComment, Text: event.Value, Emotion: v.Emotion})
		}

	case dom.EventScroll:
	}
	return nil
}

func emitToggle(emit Emitter, value string) error {
	detail := film.UserDetail(value)
	if !detail.IsValid() {
		return invalid("detail", "Unknown control")
	}
	return emit.send(Message{Kind: KindToggle, Detail: detail})
}
