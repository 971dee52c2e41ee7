// Package websocket pushes live task updates to connected dashboards so
// every household screen reflects creations and completions without a
// reload.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event types broadcast to clients.
const (
	EventTaskCreated     = "task_created"
	EventTaskCompleted   = "task_completed"
	EventTaskDeactivated = "task_deactivated"
)

// Event is a task change notification.
type Event struct {
	Type        string `json:"type"`
	TaskID      int64  `json:"task_id"`
	HouseholdID int64  `json:"household_id"`
}

// Hub tracks connected clients and fans events out to the ones watching
// the same household.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast delivers the event to every client in the event's household.
// Slow clients are skipped rather than blocked on.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.householdID != ev.HouseholdID {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
