// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/filmdeck/internal/api"
	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/config"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
	"github.com/taibuivan/filmdeck/internal/ui/session"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// # Fixtures

type gatedLoader struct {
	release chan struct{}
	films   int
}

func (l *gatedLoader) Load(context context.Context) (film.Catalog, error) {
	if l.release != nil {
		select {
		case <-l.release:
		case <-context.Done():
			return film.Catalog{}, context.Err()
		}
	}

	films := make([]film.Film, l.films)
	for i := range films {
		films[i] = film.Film{
			ID: strconv.Itoa(i),
			Info: film.Info{
				Title:    "Film " + strconv.Itoa(i),
				Release:  film.Release{Date: time.Date(1990+i, time.May, 1, 0, 0, 0, 0, time.UTC)},
				Duration: 100,
			},
			Comments: []string{},
		}
	}
	return film.Catalog{Films: films, Comments: []film.Comment{}}, nil
}

type emptySource struct{}

func (emptySource) Films(context.Context) ([]film.FilmRecord, error) { return nil, nil }

func (emptySource) Comments(context.Context, string) ([]film.CommentRecord, error) {
	return nil, nil
}

type fixture struct {
	manager *session.Manager
	server  *httptest.Server
}

func newFixture(t *testing.T, loader session.Loader, deps api.HealthDependencies) *fixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "development", AllowedOriginSuffix: "filmdeck.app"}
	manager := session.NewManager(loader, session.Settings{TTL: time.Minute, CommentAuthor: "Movie Buff"}, discard)
	t.Cleanup(manager.Close)

	liveness, readiness := api.NewHealthHandlers(deps, discard)
	server := api.NewServer(ctx, cfg, discard, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		UI:        api.NewUIHandler(manager, api.SameOriginOrAllowed(cfg)),
		Catalog:   film.NewHandler(emptySource{}),
	})

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	return &fixture{manager: manager, server: httpServer}
}

type envelope struct {
	Data  api.PatchBatch `json:"data"`
	Code  string         `json:"code"`
	Error string         `json:"error"`
}

func (f *fixture) postEvent(t *testing.T, sessionID string, event any) (int, envelope) {
	t.Helper()

	body, err := json.Marshal(event)
	require.NoError(t, err)

	response, err := http.Post(f.server.URL+"/ui/sessions/"+sessionID+"/events", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer response.Body.Close()

	var decoded envelope
	require.NoError(t, json.NewDecoder(response.Body).Decode(&decoded))
	return response.StatusCode, decoded
}

func navigationView(t *testing.T, patches []dom.Patch) string {
	t.Helper()
	for _, patch := range patches {
		if strings.Contains(patch.HTML, `class="main-navigation"`) {
			return patch.ViewID
		}
	}
	require.Fail(t, "navigation not mounted")
	return ""
}

// # Health

/*
TestHealth covers the liveness probe and a degraded readiness check.
*/
func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		deps   api.HealthDependencies
		status int
		body   string
	}{
		{"liveness", "/health", api.HealthDependencies{}, http.StatusOK, `"ok"`},
		{"ready_without_deps", "/ready", api.HealthDependencies{}, http.StatusOK, `"ready"`},
		{
			name: "degraded_cache",
			path: "/ready",
			deps: api.HealthDependencies{
				CheckDatabase: func(context.Context) error { return nil },
				CheckCache:    func(context.Context) error { return errors.New("dial tcp: refused") },
			},
			status: http.StatusServiceUnavailable,
			body:   `"degraded"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &gatedLoader{}, tt.deps)

			response, err := http.Get(f.server.URL + tt.path)
			require.NoError(t, err)
			defer response.Body.Close()

			body, _ := io.ReadAll(response.Body)
			assert.Equal(t, tt.status, response.StatusCode)
			assert.Contains(t, string(body), tt.body)
		})
	}
}

// # UI

/*
TestUI_Page creates a session and embeds its id in the shell.
*/
func TestUI_Page(t *testing.T) {
	f := newFixture(t, &gatedLoader{films: 2}, api.HealthDependencies{})

	response, err := http.Get(f.server.URL + "/")
	require.NoError(t, err)
	defer response.Body.Close()

	body, _ := io.ReadAll(response.Body)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, response.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), `data-view-id="root"`)
	assert.Contains(t, string(body), `data-slot="main"`)

	match := regexp.MustCompile(`data-session-id="([^"]+)"`).FindStringSubmatch(string(body))
	require.Len(t, match, 2)

	_, err = f.manager.Get(match[1])
	assert.NoError(t, err)

	script, err := http.Get(f.server.URL + "/static/app.js")
	require.NoError(t, err)
	defer script.Body.Close()
	assert.Equal(t, http.StatusOK, script.StatusCode)
}

/*
TestUI_Events dispatches browser events over plain HTTP.
*/
func TestUI_Events(t *testing.T) {
	f := newFixture(t, &gatedLoader{films: 3}, api.HealthDependencies{})

	created, err := f.manager.Create(context.Background())
	require.NoError(t, err)
	f.manager.Wait()

	response, err := http.Get(f.server.URL + "/ui/sessions/" + created.ID + "/patches")
	require.NoError(t, err)
	var drained envelope
	require.NoError(t, json.NewDecoder(response.Body).Decode(&drained))
	response.Body.Close()

	nav := navigationView(t, drained.Data.Patches)

	tests := []struct {
		name      string
		sessionID string
		event     any
		status    int
		code      string
		patches   bool
	}{
		{
			name:      "filter_click",
			sessionID: created.ID,
			event:     dom.Event{ViewID: nav, Type: dom.EventClick, Action: "filter", Value: string(film.FilterFavorite)},
			status:    http.StatusOK,
			patches:   true,
		},
		{
			name:      "stale_view",
			sessionID: created.ID,
			event:     dom.Event{ViewID: "v-999", Type: dom.EventClick, Action: "open"},
			status:    http.StatusOK,
		},
		{
			name:      "escape_without_view",
			sessionID: created.ID,
			event:     dom.Event{Type: dom.EventKeyDown, Key: "Escape"},
			status:    http.StatusOK,
		},
		{
			name:      "unknown_type",
			sessionID: created.ID,
			event:     map[string]string{"view_id": nav, "type": "hover"},
			status:    http.StatusBadRequest,
			code:      "VALIDATION_ERROR",
		},
		{
			name:      "missing_view",
			sessionID: created.ID,
			event:     dom.Event{Type: dom.EventClick, Action: "filter"},
			status:    http.StatusBadRequest,
			code:      "VALIDATION_ERROR",
		},
		{
			name:      "unknown_session",
			sessionID: "nope",
			event:     dom.Event{ViewID: nav, Type: dom.EventClick},
			status:    http.StatusNotFound,
			code:      "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := f.postEvent(t, tt.sessionID, tt.event)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			if tt.patches {
				assert.NotEmpty(t, body.Data.Patches)
			}
		})
	}
}

/*
TestUI_Stream delivers the asynchronous load result and event errors over
the websocket.
*/
func TestUI_Stream(t *testing.T) {
	loader := &gatedLoader{films: 7, release: make(chan struct{})}
	f := newFixture(t, loader, api.HealthDependencies{})

	created, err := f.manager.Create(context.Background())
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ui/sessions/" + created.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() api.StreamMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var message api.StreamMessage
		require.NoError(t, conn.ReadJSON(&message))
		return message
	}

	// 1. The shell queued before the socket opened
	shell := read()
	assert.Equal(t, api.MessagePatches, shell.Type)
	nav := navigationView(t, shell.Patches)

	// 2. The load result arrives unprompted
	close(loader.release)
	loaded := read()
	assert.Equal(t, api.MessagePatches, loaded.Type)

	var cards int
	for _, patch := range loaded.Patches {
		if patch.Op == dom.OpMount && strings.Contains(patch.HTML, `class="film-card"`) {
			cards++
		}
	}
	assert.Equal(t, 5, cards)

	// 3. Invalid events are answered with an error frame
	require.NoError(t, conn.WriteJSON(map[string]string{"view_id": nav, "type": "hover"}))
	failed := read()
	assert.Equal(t, api.MessageError, failed.Type)
	assert.Equal(t, "VALIDATION_ERROR", failed.Code)

	// 4. Valid events are answered with their patches
	require.NoError(t, conn.WriteJSON(dom.Event{ViewID: nav, Type: dom.EventClick, Action: "filter", Value: string(film.FilterHistory)}))
	filtered := read()
	assert.Equal(t, api.MessagePatches, filtered.Type)
	assert.NotEmpty(t, filtered.Patches)
}

/*
TestUI_StreamUnknownSession rejects the upgrade.
*/
func TestUI_StreamUnknownSession(t *testing.T) {
	f := newFixture(t, &gatedLoader{}, api.HealthDependencies{})

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ui/sessions/missing/ws"
	_, response, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, response)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

/*
TestCatalogAPI serves the source in the remote schema.
*/
func TestCatalogAPI(t *testing.T) {
	f := newFixture(t, &gatedLoader{}, api.HealthDependencies{})

	response, err := http.Get(f.server.URL + "/api/v1/movies")
	require.NoError(t, err)
	defer response.Body.Close()

	body, _ := io.ReadAll(response.Body)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

/*
TestSameOriginOrAllowed checks the websocket origin policy outside development.
*/
func TestSameOriginOrAllowed(t *testing.T) {
	check := api.SameOriginOrAllowed(&config.Config{Environment: "production", AllowedOriginSuffix: "filmdeck.app"})

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no_origin", "", true},
		{"same_host", "http://example.test", true},
		{"allowed_suffix", "https://www.filmdeck.app", true},
		{"foreign", "https://evil.test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "http://example.test/ui/sessions/x/ws", nil)
			if tt.origin != "" {
				request.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, check(request))
		})
	}
}
