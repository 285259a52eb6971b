// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
)

// Session is one browser's UI. Every method is safe for concurrent use and
// runs under the session lock, one transition at a time.
type Session struct {
	ID string

	mu       sync.Mutex
	app      *App
	logger   *slog.Logger
	lastSeen time.Time

	updates chan struct{}
	done    chan struct{}
	close   sync.Once
}

func newSession(id string, app *App, logger *slog.Logger, now time.Time) *Session {
	return &Session{
		ID:       id,
		app:      app,
		logger:   logger,
		lastSeen: now,
		updates:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Dispatch applies one browser event and returns the patches it produced.
// Events for views that are gone (a stale click racing a re-render) are
// dropped. On error the patches stay queued for the next [Session.Drain].
func (s *Session) Dispatch(context context.Context, event dom.Event) ([]dom.Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()

	err := s.app.Dispatch(event)
	if errors.Is(err, dom.ErrUnknownView) {
		s.logger.DebugContext(context, "ui_event_stale", slog.String("view_id", event.ViewID), slog.String("type", string(event.Type)))
		err = nil
	}
	if err != nil {
		s.logger.WarnContext(context, "ui_event_failed",
			slog.String("view_id", event.ViewID),
			slog.String("action", event.Action),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return s.app.Document.Flush(), nil
}

// Drain returns every queued patch.
func (s *Session) Drain() []dom.Patch {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	return s.app.Document.Flush()
}

// Updates signals that patches were queued outside of a dispatch, such as
// the load result. Receivers call [Session.Drain].
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

// Done is closed when the session is evicted.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Loaded commits the catalogue load and signals the subscribers.
func (s *Session) Loaded(catalog film.Catalog, loadErr error) error {
	s.mu.Lock()
	err := s.app.Loaded(catalog, loadErr)
	s.mu.Unlock()

	s.signal()
	return err
}

// State returns the load state of the session's films.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.app.Films.State())
}

// Inspect runs fn under the session lock.
func (s *Session) Inspect(fn func(app *App)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.app)
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) signal() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func (s *Session) shutdown() {
	s.close.Do(func() {
		s.mu.Lock()
		s.app.Stop()
		s.mu.Unlock()
		close(s.done)
	})
}
