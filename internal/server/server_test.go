package server

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"matchboard/internal/backend"
	"matchboard/internal/bootstrap"
	"matchboard/internal/config"
	"matchboard/internal/fixtures"
	"matchboard/internal/middleware"
	"matchboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                  "8375",
		Env:                   "test",
		AllowedOrigins:        "http://localhost:3000",
		BackendMode:           config.BackendModeFixtures,
		BackendTimeoutSeconds: 2,
		MessageFetchLimit:     10,
		FeatureFlags:          "",
	}
}

// newTestApp builds the full middleware and route stack over rt.
func newTestApp(t *testing.T, cfg *config.Config, rt *bootstrap.Runtime) (*Server, *fiber.App) {
	t.Helper()
	s, err := NewServerWithDeps(cfg, rt)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	app := NewApp()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return s, app
}

// newFixtureApp serves the built-in dataset.
func newFixtureApp(t *testing.T) (*Server, *fiber.App, *fixtures.Store) {
	t.Helper()
	return newFixtureAppWithConfig(t, testConfig())
}

func newFixtureAppWithConfig(t *testing.T, cfg *config.Config) (*Server, *fiber.App, *fixtures.Store) {
	t.Helper()
	rt, err := bootstrap.SelectBackend(context.Background(), cfg, bootstrap.Options{
		Rand: rand.New(rand.NewPCG(7, 7)),
		Now:  func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	s, app := newTestApp(t, cfg, rt)
	return s, app, rt.Fixtures
}

func newStubApp(t *testing.T, b *backend.Backend) (*Server, *fiber.App) {
	t.Helper()
	return newTestApp(t, testConfig(), &bootstrap.Runtime{Backend: b})
}

// client keeps the session cookie between requests.
type client struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app}
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	resp, err := c.app.Test(req, 5000)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookieName {
			c.cookie = ck
		}
	}
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out
}

func (c *client) decode(method, path string, body any, wantStatus int, out any) {
	c.t.Helper()
	status, raw := c.do(method, path, body)
	require.Equal(c.t, wantStatus, status, string(raw))
	if out != nil {
		require.NoError(c.t, json.Unmarshal(raw, out), string(raw))
	}
}

func (c *client) toasts() []models.Toast {
	c.t.Helper()
	var out []models.Toast
	c.decode(http.MethodGet, "/api/toasts", nil, http.StatusOK, &out)
	return out
}
