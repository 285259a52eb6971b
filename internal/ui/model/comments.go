// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package model

import (
	"slices"
	"sync"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/apperr"
	"github.com/taibuivan/filmdeck/internal/platform/validate"
	"github.com/taibuivan/filmdeck/internal/ui/observable"
)

// CommentChange is the payload of a comment mutation. After a mutation
// Film already lists (or no longer lists) Comment.
type CommentChange struct {
	Film    film.Film
	Comment film.Comment
}

// CommentsModel owns every loaded comment.
type CommentsModel struct {
	observable.Observable[CommentChange]

	mu       sync.RWMutex
	comments []film.Comment
}

// NewCommentsModel creates an empty model.
func NewCommentsModel() *CommentsModel {
	return &CommentsModel{comments: []film.Comment{}}
}

// Init commits the loaded comments. It does not notify: the films model
// announces the load.
func (m *CommentsModel) Init(comments []film.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = slices.Clone(comments)
}

// Comments returns a snapshot of every comment.
func (m *CommentsModel) Comments() []film.Comment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.comments)
}

// ForFilm returns the comments of f in the order f lists them.
func (m *CommentsModel) ForFilm(f film.Film) []film.Comment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byID := make(map[string]film.Comment, len(m.comments))
	for _, c := range m.comments {
		if c.FilmID == f.ID {
			byID[c.ID] = c
		}
	}

	out := make([]film.Comment, 0, len(f.Comments))
	for _, id := range f.Comments {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// AddComment appends change.Comment and notifies with the film now listing it.
func (m *CommentsModel) AddComment(updateType film.UpdateType, change CommentChange) error {
	comment := change.Comment

	v := &validate.Validator{}
	v.Required("id", comment.ID).
		Required("text", comment.Text).
		OneOf("emotion", string(comment.Emotion), emotionValues()...).
		Custom("film_id", comment.FilmID != change.Film.ID, "must reference the film it is added to")
	if err := v.Err(); err != nil {
		return err
	}
	if !updateType.IsMutation() {
		return apperr.ValidationError("Comment update type must be a mutation")
	}

	m.mu.Lock()
	if slices.ContainsFunc(m.comments, func(c film.Comment) bool { return c.ID == comment.ID }) {
		m.mu.Unlock()
		return apperr.Conflict("Comment already exists")
	}
	m.comments = append(slices.Clip(m.comments), comment)
	m.mu.Unlock()

	return m.Notify(updateType, CommentChange{Film: change.Film.WithComment(comment.ID), Comment: comment})
}

// DeleteComment removes change.Comment and notifies with the film no longer
// listing it. The comment must belong to change.Film and be listed by it.
func (m *CommentsModel) DeleteComment(updateType film.UpdateType, change CommentChange) error {
	if !updateType.IsMutation() {
		return apperr.ValidationError("Comment update type must be a mutation")
	}
	if !slices.Contains(change.Film.Comments, change.Comment.ID) {
		return apperr.NotFound("Comment")
	}

	m.mu.Lock()
	index := slices.IndexFunc(m.comments, func(c film.Comment) bool {
		return c.ID == change.Comment.ID && c.FilmID == change.Film.ID
	})
	if index < 0 {
		m.mu.Unlock()
		return apperr.NotFound("Comment")
	}
	removed := m.comments[index]
	m.comments = slices.Delete(slices.Clone(m.comments), index, index+1)
	m.mu.Unlock()

	return m.Notify(updateType, CommentChange{Film: change.Film.WithoutComment(removed.ID), Comment: removed})
}

func emotionValues() []string {
	out := make([]string, len(film.Emotions))
	for i, e := range film.Emotions {
		out[i] = string(e)
	}
	return out
}
