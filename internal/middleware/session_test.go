package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionApp() *fiber.App {
	app := fiber.New()
	app.Use(Session(false))
	app.Get("/", func(c *fiber.Ctx) error {
		sid, _ := c.UserContext().Value(SessionIDKey).(string)
		if sid != SessionID(c) {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(sid)
	})
	return app
}

func TestSession_IssuesCookie(t *testing.T) {
	app := sessionApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	_, err = uuid.Parse(cookie.Value)
	assert.NoError(t, err)
	assert.True(t, cookie.HttpOnly)
}

func TestSession_ReusesValidCookie(t *testing.T) {
	app := sessionApp()
	sid := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sid})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, sid, string(body))
	assert.Empty(t, resp.Cookies())
}

func TestSession_ReplacesInvalidCookie(t *testing.T) {
	app := sessionApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotEmpty(t, resp.Cookies())
	assert.NotEqual(t, "not-a-uuid", resp.Cookies()[0].Value)
}

func TestSession_IDSurvivesLaterRequests(t *testing.T) {
	var seen []string
	app := fiber.New()
	app.Use(Session(false))
	app.Get("/", func(c *fiber.Ctx) error {
		seen = append(seen, SessionID(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	first, second := uuid.NewString(), uuid.NewString()
	for _, sid := range []string{first, second} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sid})
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, []string{first, second}, seen)
}
