package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"matchboard/internal/cache"
	"matchboard/internal/middleware"
	"matchboard/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerSession = 8
	maxTotalConns      = 10000
)

var (
	ErrServerConnLimit  = errors.New("server connection limit reached")
	ErrSessionConnLimit = errors.New("session connection limit reached")
)

// Hub maps session ID -> connected clients.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]map[*Client]struct{}
	totalConns int
	closed     bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*Client]struct{})}
}

// Register adds a connection for sessionID.
func (h *Hub) Register(sessionID string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || h.totalConns >= maxTotalConns {
		return nil, ErrServerConnLimit
	}

	m, ok := h.conns[sessionID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[sessionID] = m
	}
	if len(m) >= maxConnsPerSession {
		return nil, ErrSessionConnLimit
	}

	client := newClient(h, conn, sessionID)
	m[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnectionsTotal.Set(float64(h.totalConns))
	return client, nil
}

// UnregisterClient removes a client and closes its send channel.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.SessionID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	close(client.Send)
	h.totalConns--
	if len(m) == 0 {
		delete(h.conns, client.SessionID)
	}
	observability.WebSocketConnectionsTotal.Set(float64(h.totalConns))
}

// Subscribers returns how many clients watch sessionID.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[sessionID])
}

// Broadcast sends message to all connections of sessionID.
func (h *Hub) Broadcast(sessionID string, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.conns[sessionID] {
		c.TrySend(data)
	}
}

// BroadcastAll sends message to every connected client.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for _, clients := range h.conns {
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// StartWiring subscribes the hub to the notifier and forwards each event
// to the clients of its session.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		if channel == cache.BroadcastChannel {
			h.BroadcastAll(payload)
			return
		}
		sessionID, ok := cache.SessionFromChannel(channel)
		if !ok {
			middleware.Logger.Warn("Invalid session channel", slog.String("channel", channel))
			return
		}
		h.Broadcast(sessionID, payload)
	})
}

// Shutdown closes every client and refuses new ones. Each client's write
// loop sends the close frame once its Send channel is closed.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	closed := 0
	for _, clients := range h.conns {
		for client := range clients {
			close(client.Send)
			closed++
		}
	}
	h.conns = make(map[string]map[*Client]struct{})
	h.totalConns = 0
	observability.WebSocketConnectionsTotal.Set(0)
	middleware.Logger.Info("Notification hub closed", slog.Int("clients", closed))
	return nil
}
