package server

import (
	"matchboard/internal/featureflags"
	"matchboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/feature-flags
// @Summary Feature flags for this session
// @Description Configured values, per-session evaluation and the flags the dashboard reads
// @Tags dashboard
// @Produce json
// @Success 200 {object} object{raw=map[string]string,evaluated=map[string]bool,known=map[string]string}
// @Router /feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(middleware.SessionID(c)),
		"known":     featureflags.Known,
	})
}
