// Package sse pushes back-office notifications (new leads, new pickup
// requests) to connected admin browsers over Server-Sent Events.
// Delivery is best-effort: no ordering or dedup guarantees, and a slow
// client just misses events instead of blocking the writer.
package sse

import (
	"encoding/json"
	"sync"
)

type Event struct {
	Type string `json:"event"`
	Data string `json:"data"`
}

type Client struct {
	ID     string
	Events chan Event
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.Events)
		delete(h.clients, id)
	}
}

// Broadcast sends to every connected client, dropping the event for any
// client whose buffer is full.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.Events <- ev:
		default:
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishLeadCreated announces a freshly verified lead.
func (h *Hub) PublishLeadCreated(leadID, deviceName string) {
	data, _ := json.Marshal(map[string]string{"lead_id": leadID, "device": deviceName})
	h.Broadcast(Event{Type: "lead.created", Data: string(data)})
}

// PublishPickupCreated announces a scheduled pickup.
func (h *Hub) PublishPickupCreated(pickupID, deviceName string, finalPrice int64) {
	data, _ := json.Marshal(map[string]any{
		"pickup_id": pickupID, "device": deviceName, "final_price": finalPrice,
	})
	h.Broadcast(Event{Type: "pickup.created", Data: string(data)})
}
