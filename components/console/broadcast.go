package console

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/goliatone/go-console/pkg/wsclient"
)

// RefreshEvent tells connected browsers something changed.
type RefreshEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// BroadcastHub fans refresh events out to in-process subscribers and serves
// them to browsers over WebSocket or SSE. It carries both locally originated
// action events and backend events relayed from a wsclient connection.
type BroadcastHub struct {
	mu   sync.RWMutex
	subs map[int]chan RefreshEvent
	next int
}

// NewBroadcastHub creates an empty hub.
func NewBroadcastHub() *BroadcastHub {
	return &BroadcastHub{subs: make(map[int]chan RefreshEvent)}
}

// Publish delivers the event to every subscriber; slow subscribers drop it.
func (h *BroadcastHub) Publish(event RefreshEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of refresh events and a cancel func.
func (h *BroadcastHub) Subscribe() (<-chan RefreshEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan RefreshEvent, 8)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// RelayFrom republishes every event the backend channel delivers. The
// returned func detaches the relay.
func (h *BroadcastHub) RelayFrom(client *wsclient.Client, eventTypes ...string) func() {
	cancels := make([]func(), 0, len(eventTypes))
	for _, eventType := range eventTypes {
		cancels = append(cancels, client.Subscribe(eventType, func(evt wsclient.Event) {
			h.Publish(RefreshEvent{Type: evt.Type, Payload: evt.Payload})
		}))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams refresh events as JSON.
func (h *BroadcastHub) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for refresh events.
func (h *BroadcastHub) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// notify publishes an action event with a JSON payload; encode failures are
// impossible for the map payloads used internally.
func (h *BroadcastHub) notify(_ context.Context, eventType string, payload map[string]any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = nil
	}
	h.Publish(RefreshEvent{Type: eventType, Payload: raw})
}
