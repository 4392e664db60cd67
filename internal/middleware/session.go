package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie carrying the dashboard session ID.
	SessionCookieName = "mb_session"
	// SessionLocalKey is the Fiber locals key holding the session ID.
	SessionLocalKey = "sessionID"

	sessionCookieTTL = 30 * 24 * time.Hour
)

// Session assigns every client a dashboard session ID. An existing cookie
// is reused when it holds a valid UUID; otherwise a new one is issued.
// The ID outlives the request, so the cookie value is copied out of
// Fiber's reusable buffer.
func Session(secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := utils.CopyString(c.Cookies(SessionCookieName))
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    sid,
				Path:     "/",
				Expires:  time.Now().Add(sessionCookieTTL),
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(SessionLocalKey, sid)
		c.SetUserContext(context.WithValue(c.UserContext(), SessionIDKey, sid))
		return c.Next()
	}
}

// SessionID returns the session ID set by Session, or "" when absent.
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(SessionLocalKey).(string)
	return sid
}
