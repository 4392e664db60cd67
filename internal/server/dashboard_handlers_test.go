package server

import (
	"net/http"
	"testing"

	"matchboard/internal/middleware"
	"matchboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardBody struct {
	Sidebar struct {
		Breadcrumb string `json:"breadcrumb"`
		User       struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"sidebar"`
	Preview bool `json:"preview"`
	Main    struct {
		Loading bool           `json:"loading"`
		View    string         `json:"view"`
		Content map[string]any `json:"content"`
	} `json:"main"`
}

func TestGetDashboard_FixtureMode(t *testing.T) {
	_, app, _ := newFixtureApp(t)
	c := newClient(t, app)

	var body dashboardBody
	c.decode(http.MethodGet, "/api/dashboard", nil, http.StatusOK, &body)
	require.NotNil(t, c.cookie, "session cookie must be issued")

	assert.True(t, body.Preview)
	assert.False(t, body.Main.Loading)
	assert.Equal(t, "overview", body.Main.View)
	assert.Equal(t, "Demo User", body.Sidebar.User.Name)
	assert.Contains(t, body.Main.Content, "stats")

	toasts := c.toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Preview mode", toasts[0].Title)
	assert.Empty(t, c.toasts())
}

func TestNavigateDashboard(t *testing.T) {
	_, app, _ := newFixtureApp(t)
	c := newClient(t, app)

	var body dashboardBody
	c.decode(http.MethodPost, "/api/dashboard/navigate", map[string]string{"view": "analytics"}, http.StatusOK, &body)
	assert.Equal(t, "analytics", body.Main.View)
	assert.Equal(t, "Analytics", body.Sidebar.Breadcrumb)

	c.decode(http.MethodPost, "/api/dashboard/navigate", map[string]string{"view": "nowhere"}, http.StatusOK, &body)
	assert.Equal(t, "overview", body.Main.View)

	c.decode(http.MethodPost, "/api/dashboard/navigate", map[string]string{"view": "settings"}, http.StatusOK, &body)
	assert.Equal(t, "settings", body.Main.View)
	assert.Contains(t, body.Main.Content, "stats", "settings renders the overview")

	c.decode(http.MethodGet, "/api/dashboard", nil, http.StatusOK, &body)
	assert.Equal(t, "settings", body.Main.View, "navigation is kept per session")

	other := newClient(t, app)
	other.decode(http.MethodGet, "/api/dashboard", nil, http.StatusOK, &body)
	assert.Equal(t, "overview", body.Main.View)
}

func TestGetView_DoesNotNavigate(t *testing.T) {
	_, app, _ := newFixtureApp(t)
	c := newClient(t, app)

	var rendered struct {
		View    string         `json:"view"`
		Content map[string]any `json:"content"`
	}
	c.decode(http.MethodGet, "/api/views/profile", nil, http.StatusOK, &rendered)
	assert.Equal(t, "profile", rendered.View)
	assert.Contains(t, rendered.Content, "user")

	var body dashboardBody
	c.decode(http.MethodGet, "/api/dashboard", nil, http.StatusOK, &body)
	assert.Equal(t, "overview", body.Main.View)
}

func TestGetAnalytics(t *testing.T) {
	_, app, _ := newFixtureApp(t)
	c := newClient(t, app)

	var analytics struct {
		Stats struct {
			TotalMatches int `json:"total_matches"`
		} `json:"stats"`
		Placeholder bool `json:"placeholder"`
	}
	c.decode(http.MethodGet, "/api/analytics", nil, http.StatusOK, &analytics)
	assert.True(t, analytics.Placeholder)
	assert.Equal(t, 5, analytics.Stats.TotalMatches)
}

func TestRefreshDashboard_FailureKeepsData(t *testing.T) {
	b, matches := stubBackend()
	_, app := newStubApp(t, b)
	c := newClient(t, app)

	var body dashboardBody
	c.decode(http.MethodGet, "/api/dashboard", nil, http.StatusOK, &body)
	c.toasts()

	matches.failList = true
	status, _ := c.do(http.MethodPost, "/api/dashboard/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, status)

	var cards []map[string]any
	c.decode(http.MethodGet, "/api/matches", nil, http.StatusOK, &cards)
	assert.Len(t, cards, 2, "previous matches are kept")

	toasts := c.toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, models.ErrorToast("Failed to load dashboard data"), toasts[0])
}

func TestSessions_KeepTheirIDsAcrossClients(t *testing.T) {
	s, app, _ := newFixtureApp(t)
	idA, idB := uuid.NewString(), uuid.NewString()

	a := newClient(t, app)
	a.cookie = &http.Cookie{Name: middleware.SessionCookieName, Value: idA}
	a.decode(http.MethodGet, "/api/dashboard", nil, http.StatusOK, nil)

	b := newClient(t, app)
	b.cookie = &http.Cookie{Name: middleware.SessionCookieName, Value: idB}
	b.decode(http.MethodGet, "/api/dashboard", nil, http.StatusOK, nil)

	sessA, ok := s.sessions.Lookup(idA)
	require.True(t, ok)
	assert.Equal(t, idA, sessA.ID)
	assert.Equal(t, idA, sessA.Shell.SessionID())

	sessB, ok := s.sessions.Lookup(idB)
	require.True(t, ok)
	assert.NotSame(t, sessA, sessB)
	assert.Equal(t, 2, s.sessions.Len())
}
