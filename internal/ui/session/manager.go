// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/apperr"
	"github.com/taibuivan/filmdeck/internal/platform/constants"
	"github.com/taibuivan/filmdeck/internal/ui/presenter"
	"github.com/taibuivan/filmdeck/pkg/uuid"
)

// Loader produces the catalogue of a new session.
type Loader interface {
	Load(context context.Context) (film.Catalog, error)
}

// Settings configure a [Manager].
type Settings struct {
	// TTL is how long a session may stay idle before eviction.
	TTL time.Duration
	// CommentAuthor signs comments written in the UI.
	CommentAuthor string
}

// Manager owns every live session.
type Manager struct {
	loader   Loader
	settings Settings
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup
}

// NewManager creates a manager. Call [Manager.Close] to stop pending loads.
func NewManager(loader Loader, settings Settings, logger *slog.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		loader:   loader,
		settings: settings,
		logger:   logger,
		sessions: make(map[string]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Create starts a session: the shell is rendered at once and the catalogue
// loads in the background.
func (manager *Manager) Create(context context.Context) (*Session, error) {
	id := uuid.New()
	logger := manager.logger.With(slog.String("session_id", id))

	app := NewApp(presenter.Options{
		Author: manager.settings.CommentAuthor,
		Logger: logger,
	})
	if err := app.Start(); err != nil {
		return nil, apperr.Internal(err)
	}

	session := newSession(id, app, logger, time.Now())

	manager.mu.Lock()
	manager.sessions[id] = session
	manager.mu.Unlock()

	logger.InfoContext(context, "session_created")

	manager.loads.Add(1)
	go manager.load(session)

	return session, nil
}

func (manager *Manager) load(session *Session) {
	defer manager.loads.Done()

	catalog, err := manager.loader.Load(manager.ctx)
	if err != nil {
		session.logger.Error("session_load_failed", slog.String("error", err.Error()))
		if !apperr.HasCode(err, apperr.CodeLoad) {
			err = apperr.LoadError("Catalogue load failed", err)
		}
	}

	if commitErr := session.Loaded(catalog, err); commitErr != nil {
		session.logger.Error("session_load_commit_failed", slog.String("error", commitErr.Error()))
	}
}

// Get returns the session with id.
func (manager *Manager) Get(id string) (*Session, error) {
	manager.mu.RLock()
	session, ok := manager.sessions[id]
	manager.mu.RUnlock()

	if !ok {
		return nil, apperr.NotFound("Session")
	}
	session.touch()
	return session, nil
}

// Len returns the number of live sessions.
func (manager *Manager) Len() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many it removed.
func (manager *Manager) Sweep(now time.Time) int {
	manager.mu.Lock()
	var expired []*Session
	for id, session := range manager.sessions {
		if session.idleSince(now) > manager.settings.TTL {
			expired = append(expired, session)
			delete(manager.sessions, id)
		}
	}
	manager.mu.Unlock()

	for _, session := range expired {
		session.shutdown()
		session.logger.Info("session_evicted")
	}
	return len(expired)
}

// Run evicts idle sessions until context is cancelled.
func (manager *Manager) Run(context context.Context) {
	ticker := time.NewTicker(constants.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-context.Done():
			return
		case now := <-ticker.C:
			if evicted := manager.Sweep(now); evicted > 0 {
				manager.logger.Info("sessions_swept", slog.Int("evicted", evicted), slog.Int("remaining", manager.Len()))
			}
		}
	}
}

// Wait blocks until every pending load has been committed.
func (manager *Manager) Wait() {
	manager.loads.Wait()
}

// Close cancels pending loads, waits for them and drops every session.
func (manager *Manager) Close() {
	manager.cancel()
	manager.loads.Wait()

	manager.mu.Lock()
	sessions := manager.sessions
	manager.sessions = make(map[string]*Session)
	manager.mu.Unlock()

	for _, session := range sessions {
		session.shutdown()
	}
}
