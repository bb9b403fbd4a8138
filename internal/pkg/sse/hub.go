package sse

import (
	"sync"
)

const (
	// EventRefresh tells the other tabs of a session that a screen's data changed.
	EventRefresh = "refresh"
	EventPing    = "ping"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	SessionID string
	Event     string
	Data      interface{}
}

// RefreshData is the payload of an EventRefresh.
type RefreshData struct {
	Screen string `json:"screen"`
	Action string `json:"action"`
	ID     int64  `json:"id,omitempty"`
}

// Publisher is the send side of the Hub.
type Publisher interface {
	Publish(sessionID string, event Event)
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a session and returns the event channel and cleanup function
func (h *Hub) Subscribe(sessionID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[sessionID] == nil {
		h.subscribers[sessionID] = make(map[chan Event]struct{})
	}
	h.subscribers[sessionID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		// Close may already have removed ch.
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subscribers[sessionID][ch]; !ok {
				return
			}
			delete(h.subscribers[sessionID], ch)
			close(ch)
			if len(h.subscribers[sessionID]) == 0 {
				delete(h.subscribers, sessionID)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a session
func (h *Hub) Publish(sessionID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.SessionID = sessionID
	if subs, ok := h.subscribers[sessionID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// Refresh publishes an EventRefresh for screen.
func (h *Hub) Refresh(sessionID, screen, action string, id int64) {
	h.Publish(sessionID, Event{
		Event: EventRefresh,
		Data:  RefreshData{Screen: screen, Action: action, ID: id},
	})
}

// Close drops every subscriber of a session, ending their streams.
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers[sessionID] {
		close(ch)
	}
	delete(h.subscribers, sessionID)
}

// SubscriberCount returns the number of active subscribers for a session
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[sessionID]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the total number of active subscribers across all sessions
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
