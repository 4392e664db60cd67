package server

import (
	"time"

	"matchboard/internal/dashboard"
	"matchboard/internal/models"
	"matchboard/internal/views"

	"github.com/gofiber/fiber/v2"
)

// DashboardResponse is the whole screen: chrome plus the active view.
type DashboardResponse struct {
	Sidebar         views.SidebarModel `json:"sidebar"`
	Preview         bool               `json:"preview"`
	LastRefreshedAt *time.Time         `json:"last_refreshed_at,omitempty"`
	Main            dashboard.Rendered `json:"main"`
}

func dashboardResponse(sess *dashboard.Session) DashboardResponse {
	state := sess.Shell.Snapshot()
	return DashboardResponse{
		Sidebar:         views.Sidebar(state.Data(), state.ActiveView),
		Preview:         state.Preview,
		LastRefreshedAt: state.LastRefreshedAt,
		Main:            sess.Render(),
	}
}

// GetDashboard handles GET /api/dashboard
// @Summary Dashboard screen
// @Description Sidebar, preview flag and the active view of the session
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	return c.JSON(dashboardResponse(s.session(c)))
}

// RefreshDashboard handles POST /api/dashboard/refresh
// @Summary Refetch dashboard data
// @Description Refetches user, matches and messages. On failure the previous data is kept.
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /dashboard/refresh [post]
func (s *Server) RefreshDashboard(c *fiber.Ctx) error {
	sess := s.session(c)
	if err := sess.Shell.Refresh(c.UserContext()); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(dashboardResponse(sess))
}

// NavigateDashboard handles POST /api/dashboard/navigate
// @Summary Switch the active view
// @Description Unknown views select the overview
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body object{view=string} true "Target view"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /dashboard/navigate [post]
func (s *Server) NavigateDashboard(c *fiber.Ctx) error {
	var req struct {
		View string `json:"view"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	sess := s.session(c)
	sess.Shell.Navigate(c.UserContext(), req.View)
	return c.JSON(dashboardResponse(sess))
}

// GetView handles GET /api/views/:view
// @Summary Render one view
// @Description Projects a view without changing the active view
// @Tags dashboard
// @Produce json
// @Param view path string true "View name"
// @Success 200 {object} dashboard.Rendered
// @Router /views/{view} [get]
func (s *Server) GetView(c *fiber.Ctx) error {
	return c.JSON(s.session(c).RenderView(views.Parse(c.Params("view"))))
}

// GetAnalytics handles GET /api/analytics
// @Summary Analytics view
// @Tags dashboard
// @Produce json
// @Success 200 {object} views.AnalyticsModel
// @Router /analytics [get]
func (s *Server) GetAnalytics(c *fiber.Ctx) error {
	return c.JSON(views.Analytics(s.session(c).Shell.Snapshot().Data()))
}

// GetToasts handles GET /api/toasts
// @Summary Drain pending toasts
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.Toast
// @Router /toasts [get]
func (s *Server) GetToasts(c *fiber.Ctx) error {
	toasts := s.session(c).Shell.DrainToasts()
	if toasts == nil {
		toasts = []models.Toast{}
	}
	return c.JSON(toasts)
}
