package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"langcat/internal/render"
	"langcat/pkg/browser"
	"langcat/pkg/view"
)

const (
	// LiveReadLimit caps one incoming frame. Larger frames end the session
	// and the page falls back to /api/cards until it reconnects.
	LiveReadLimit    = 1 << 20
	liveWriteTimeout = 10 * time.Second
)

// LiveMessage is the JSON frame exchanged on /api/live.
// Clients send {"type":"input","value":"..."}; the server answers with
// {"type":"render","kind":"cards","html":"..."}.
type LiveMessage struct {
	Type  string    `json:"type"`
	Value *string   `json:"value,omitempty"`
	Kind  view.Kind `json:"kind,omitempty"`
	HTML  string    `json:"html,omitempty"`
}

// LiveHandler turns websocket input events into re-rendered card fragments.
type LiveHandler struct {
	ctrl     *browser.Controller
	renderer *render.Renderer
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

func NewLiveHandler(ctrl *browser.Controller, r *render.Renderer) *LiveHandler {
	return &LiveHandler{
		ctrl:     ctrl,
		renderer: r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		conns: make(map[string]*websocket.Conn),
	}
}

// Sessions returns the number of open live connections.
func (h *LiveHandler) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close drops every open connection. Hijacked connections are not closed by
// http.Server.Shutdown, so the server registers this as a shutdown hook.
func (h *LiveHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.conns {
		_ = c.Close()
		delete(h.conns, id)
	}
}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		slog.Warn("Live upgrade failed", "error", err)
		return
	}

	session := uuid.NewString()
	h.mu.Lock()
	h.conns[session] = conn
	h.mu.Unlock()
	slog.Debug("Live session opened", "session", session)

	defer func() {
		h.mu.Lock()
		delete(h.conns, session)
		h.mu.Unlock()
		_ = conn.Close()
		slog.Debug("Live session closed", "session", session)
	}()

	conn.SetReadLimit(LiveReadLimit)
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("Live session read failed", "session", session, "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply, ok := h.handleMessage(session, data)
		if !ok {
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			slog.Warn("Live session write failed", "session", session, "error", err)
			return
		}
	}
}

// handleMessage decodes one frame. Frames that are not input events, or that
// carry no value, produce no reply.
func (h *LiveHandler) handleMessage(session string, data []byte) (LiveMessage, bool) {
	var msg LiveMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Debug("Live session sent invalid frame", "session", session, "error", err)
		return LiveMessage{}, false
	}
	if msg.Type != "input" {
		return LiveMessage{}, false
	}

	v, ok := h.ctrl.Handle(browser.InputChanged{Value: msg.Value, Channel: "live"})
	if !ok {
		return LiveMessage{}, false
	}

	html, err := h.renderer.Fragment(v)
	if err != nil {
		slog.Error("Failed to render live fragment", "session", session, "error", err)
		return LiveMessage{}, false
	}
	return LiveMessage{Type: "render", Kind: v.Kind, HTML: html}, true
}
