package ws

import (
	"encoding/json"
	"sync"

	"rps_referee/internal/domain"
	"rps_referee/internal/logger"
)

// Hub fans committed rounds out to every connected spectator. It never
// touches game state; the snapshot function is its only read path.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	snapshot func() domain.Snapshot
}

func NewHub(snapshot func() domain.Snapshot) *Hub {
	return &Hub{
		clients:  make(map[*Client]struct{}),
		snapshot: snapshot,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logger.Debug("ws client registered", "clients", n)
}

// join registers c and then queues the current snapshot. A round committed
// while the snapshot is taken reaches c as a round frame ahead of it, so the
// feed never skips one.
func (h *Hub) join(c *Client) {
	h.register(c)
	if h.snapshot == nil {
		return
	}

	msg, err := json.Marshal(Message{Type: MsgSnapshot, Payload: h.snapshot()})
	if err != nil {
		logger.Error("ws marshal snapshot", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.Send <- msg:
	default:
		logger.Warn("ws client too slow, dropping")
		delete(h.clients, c)
		close(c.Send)
	}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	logger.Debug("ws client unregistered", "clients", n)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoundCommitted broadcasts rec. It is called with the referee lock held, so
// it must not block or read the snapshot: clients whose buffer is full are
// dropped.
func (h *Hub) RoundCommitted(rec domain.RoundRecord) {
	msg, err := json.Marshal(Message{Type: MsgRound, Payload: rec})
	if err != nil {
		logger.Error("ws marshal round", "error", err)
		return
	}
	h.broadcast(msg)
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws client too slow, dropping")
			delete(h.clients, c)
			close(c.Send)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.Send)
	}
}
