package server

import (
	"time"

	"matchboard/internal/middleware"
	"matchboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// UpgradeRequired rejects plain HTTP requests to WebSocket routes.
func (s *Server) UpgradeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	}
}

// WebsocketHandler streams the session's toast, refresh and navigation
// events. Toasts still pending when the socket opens are sent first.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		sessionID, _ := conn.Locals(middleware.SessionLocalKey).(string)
		if sessionID == "" {
			_ = conn.WriteJSON(fiber.Map{"error": "missing session"})
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(sessionID, conn)
		if err != nil {
			middleware.Logger.Warn("WebSocket register failed", "session_id", sessionID, "error", err.Error())
			_ = conn.WriteJSON(fiber.Map{"error": err.Error()})
			_ = conn.Close()
			return
		}
		middleware.Logger.Info("WebSocket connected", "session_id", sessionID)

		if sess, ok := s.sessions.Lookup(sessionID); ok {
			for _, t := range sess.Shell.DrainToasts() {
				toast := t
				client.SendEvent(models.SessionEvent{
					Type:      models.EventToast,
					SessionID: sessionID,
					Toast:     &toast,
					At:        time.Now(),
				})
			}
		}

		client.Serve()
	})
}
