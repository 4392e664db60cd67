package notifications

import (
	"encoding/json"
	"log/slog"
	"time"

	"matchboard/internal/middleware"
	"matchboard/internal/models"
	"matchboard/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// Dashboard sockets are receive-only; peers send control frames at most.
	maxInboundFrame = 512

	sendBuffer = 64
)

// Client is one WebSocket subscriber of a dashboard session.
type Client struct {
	hub *Hub

	// Conn is nil for clients registered in tests.
	Conn *websocket.Conn

	// Send queues outbound frames. The hub closes it on unregister.
	Send chan []byte

	SessionID string
}

func newClient(hub *Hub, conn *websocket.Conn, sessionID string) *Client {
	return &Client{
		hub:       hub,
		Conn:      conn,
		SessionID: sessionID,
		Send:      make(chan []byte, sendBuffer),
	}
}

// Serve runs the socket until the peer disconnects or the hub closes the
// client. It blocks; the Fiber websocket handler must not return earlier.
func (c *Client) Serve() {
	go c.writeLoop()
	c.readLoop()
}

// readLoop discards inbound frames and keeps the read deadline moving with
// pongs. Any read error ends the client.
func (c *Client) readLoop() {
	defer func() {
		c.hub.UnregisterClient(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxInboundFrame)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				middleware.Logger.Warn("Dashboard socket closed unexpectedly",
					slog.String("session_id", c.SessionID), slog.String("error", err.Error()))
			}
			return
		}
	}
}

// writeLoop forwards queued frames and pings the peer. A closed Send
// channel means the hub let go of the client.
func (c *Client) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		_ = c.Conn.Close()
	}()

	for {
		var (
			kind    = websocket.PingMessage
			payload []byte
		)
		select {
		case frame, ok := <-c.Send:
			if !ok {
				_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			kind, payload = websocket.TextMessage, frame
		case <-ping.C:
		}

		_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.Conn.WriteMessage(kind, payload); err != nil {
			return
		}
	}
}

// SendEvent encodes ev and queues it like TrySend.
func (c *Client) SendEvent(ev models.SessionEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		middleware.Logger.Error("Failed to encode session event",
			slog.String("session_id", c.SessionID), slog.String("error", err.Error()))
		return
	}
	c.TrySend(payload)
}

// TrySend queues a frame without blocking. When the buffer is full the
// frame is dropped and, if room remains, an events_dropped notice is
// queued so the browser knows to refetch.
func (c *Client) TrySend(frame []byte) {
	defer func() {
		// Send was closed by the hub between lookup and send.
		if recover() != nil {
			observability.WebSocketBackpressureDrops.WithLabelValues("closed").Inc()
		}
	}()

	select {
	case c.Send <- frame:
		return
	default:
	}

	observability.WebSocketBackpressureDrops.WithLabelValues("full").Inc()
	middleware.Logger.Warn("Dashboard socket buffer full, dropped event", slog.String("session_id", c.SessionID))

	notice, _ := json.Marshal(models.SessionEvent{
		Type:      models.EventsDropped,
		SessionID: c.SessionID,
		At:        time.Now(),
	})
	select {
	case c.Send <- notice:
	default:
	}
}
