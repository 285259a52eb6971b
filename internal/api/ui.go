// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/taibuivan/filmdeck/internal/platform/apperr"
	"github.com/taibuivan/filmdeck/internal/platform/constants"
	"github.com/taibuivan/filmdeck/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/filmdeck/internal/platform/request"
	"github.com/taibuivan/filmdeck/internal/platform/respond"
	"github.com/taibuivan/filmdeck/internal/platform/validate"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
	"github.com/taibuivan/filmdeck/internal/ui/session"
)

//go:embed web
var webFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(webFiles, "web/index.html"))

// # Wire Messages

// Message types sent over the websocket.
const (
	MessagePatches = "patches"
	MessageError   = "error"
)

// PatchBatch is the response of every UI endpoint.
type PatchBatch struct {
	Patches []dom.Patch `json:"patches"`
}

// StreamMessage is one server-to-browser websocket frame.
type StreamMessage struct {
	Type    string      `json:"type"`
	Patches []dom.Patch `json:"patches,omitempty"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// # Handler

// SessionStore is what the UI handler needs from the session manager.
type SessionStore interface {
	Create(context context.Context) (*session.Session, error)
	Get(id string) (*session.Session, error)
}

// UIHandler serves the page shell and the patch protocol of UI sessions.
type UIHandler struct {
	sessions SessionStore
	upgrader websocket.Upgrader
}

// NewUIHandler creates the UI handler. checkOrigin guards websocket upgrades.
func NewUIHandler(sessions SessionStore, checkOrigin func(*http.Request) bool) *UIHandler {
	return &UIHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16384,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Routes returns the request/response routes. [UIHandler.Stream] is mounted
// separately because it must outlive the request timeout.
func (handler *UIHandler) Routes() chi.Router {
	router := chi.NewRouter()

	static, _ := fs.Sub(webFiles, "web/static")
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	router.Get("/", handler.page)
	router.Get("/ui/sessions/{sessionID}/patches", handler.drain)
	router.Post("/ui/sessions/{sessionID}/events", handler.dispatch)
	return router
}

// page handles GET /: it starts a session and serves the empty shell the
// session's patches fill in.
func (handler *UIHandler) page(writer http.ResponseWriter, request *http.Request) {
	created, err := handler.sessions.Create(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&body, "index.html", map[string]string{
		"SessionID":  created.ID,
		"RootViewID": dom.RootViewID,
	}); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	writer.Header().Set("Cache-Control", "no-store")
	respond.HTML(writer, http.StatusOK, body.Bytes())
}

// drain handles GET /ui/sessions/{sessionID}/patches.
func (handler *UIHandler) drain(writer http.ResponseWriter, request *http.Request) {
	current, request, err := handler.lookup(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, batch(current.Drain()))
}

// dispatch handles POST /ui/sessions/{sessionID}/events.
func (handler *UIHandler) dispatch(writer http.ResponseWriter, request *http.Request) {
	current, request, err := handler.lookup(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var event dom.Event
	if err := requestutil.DecodeJSON(request, &event); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateEvent(event); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patches, err := current.Dispatch(request.Context(), event)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, batch(patches))
}

// Stream handles GET /ui/sessions/{sessionID}/ws. Browser events come in as
// [dom.Event] frames; every resulting batch, including the asynchronous load
// result, goes out as a [StreamMessage].
func (handler *UIHandler) Stream(writer http.ResponseWriter, request *http.Request) {
	current, request, err := handler.lookup(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	logger := ctxutil.GetLogger(request.Context())

	conn, err := handler.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// The upgrader already answered the client
		logger.Warn("ui_stream_upgrade_failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	logger.Info("ui_stream_opened")
	defer logger.Info("ui_stream_closed")

	events := make(chan dom.Event)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(events)
		for {
			var event dom.Event
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			select {
			case events <- event:
			case <-stop:
				return
			}
		}
	}()

	// Whatever was queued before the socket opened
	if err := writePatches(conn, current.Drain()); err != nil {
		return
	}

	for {
		select {
		case <-request.Context().Done():
			return

		case <-current.Done():
			deadline := time.Now().Add(constants.WebsocketWriteTimeout)
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session expired"), deadline)
			return

		case <-current.Updates():
			if err := writePatches(conn, current.Drain()); err != nil {
				return
			}

		case event, ok := <-events:
			if !ok {
				return
			}
			if err := handler.streamEvent(request.Context(), conn, current, event); err != nil {
				logger.Debug("ui_stream_write_failed", slog.String("error", err.Error()))
				return
			}
		}
	}
}

func (handler *UIHandler) streamEvent(context context.Context, conn *websocket.Conn, current *session.Session, event dom.Event) error {
	if err := validateEvent(event); err != nil {
		return writeError(conn, err)
	}

	patches, err := current.Dispatch(context, event)
	if err == nil {
		return writePatches(conn, patches)
	}

	if err := writeError(conn, err); err != nil {
		return err
	}
	// A failed action may still have re-rendered, e.g. to restore a draft
	return writePatches(conn, current.Drain())
}

// # Helpers

// lookup resolves the {sessionID} parameter and scopes the request context
// and its logger to that session.
func (handler *UIHandler) lookup(request *http.Request) (*session.Session, *http.Request, error) {
	current, err := handler.sessions.Get(requestutil.Param(request, "sessionID"))
	if err != nil {
		return nil, request, err
	}

	ctx := ctxutil.WithSessionID(request.Context(), current.ID)
	ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("session_id", current.ID)))
	return current, request.WithContext(ctx), nil
}

func validateEvent(event dom.Event) error {
	eventTypes := make([]string, len(dom.EventTypes))
	for index, eventType := range dom.EventTypes {
		eventTypes[index] = string(eventType)
	}

	var validator validate.Validator
	validator.OneOf("type", string(event.Type), eventTypes...)
	validator.Custom("view_id", event.ViewID == "" && event.Type != dom.EventKeyDown, "is required for non-keyboard events")
	validator.Custom("scroll_top", event.ScrollTop < 0, "must not be negative")
	return validator.Err()
}

func batch(patches []dom.Patch) PatchBatch {
	if patches == nil {
		patches = []dom.Patch{}
	}
	return PatchBatch{Patches: patches}
}

func writePatches(conn *websocket.Conn, patches []dom.Patch) error {
	if len(patches) == 0 {
		return nil
	}
	return writeMessage(conn, StreamMessage{Type: MessagePatches, Patches: patches})
}

func writeError(conn *websocket.Conn, err error) error {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}
	return writeMessage(conn, StreamMessage{Type: MessageError, Code: appError.Code, Error: appError.Message})
}

func writeMessage(conn *websocket.Conn, message StreamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(constants.WebsocketWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(message)
}
