package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

// EventHandler streams the refresh events of a session.
type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	hub *sse.Hub
}

func NewEventHandler(hub *sse.Hub) EventHandler {
	return &eventHandlerImpl{hub: hub}
}

// Stream handles SSE connection for real-time screen refreshes
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	ws := middleware.Workspace(r.Context())
	if ws == nil {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(ws.ID)
	defer cleanup()

	// Send initial connection event
	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()
	slog.DebugContext(r.Context(), "Event stream opened", "session_id", ws.ID, "subscribers", h.hub.SubscriberCount(ws.ID))

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: %s\ndata: {\"timestamp\":%d}\n\n", sse.EventPing, time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
