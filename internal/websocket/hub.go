package websocket

import (
	"context"
	"sync"

	"codal-docs-be/internal/pkg/logger"
)

// Hub tracks the live sync connections of this instance and shuts them
// down when the server stops.
type Hub struct {
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu     sync.RWMutex
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     log,
	}
}

// Run owns registration until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			clients := h.clients
			h.clients = make(map[string]*Client)
			h.mu.Unlock()

			for _, c := range clients {
				c.close()
			}
			h.logger.Info("Hub", "Hub stopped", map[string]interface{}{"closed_sessions": len(clients)})
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Id] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Session registered", map[string]interface{}{"session_id": client.Id})

		case client := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[client.Id]; ok && c == client {
				delete(h.clients, client.Id)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Session unregistered", map[string]interface{}{"session_id": client.Id})
		}
	}
}

// Register adds a client. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Count returns the number of registered sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
