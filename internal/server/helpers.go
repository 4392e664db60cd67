package server

import (
	"matchboard/internal/dashboard"
	"matchboard/internal/middleware"
	"matchboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// session returns the dashboard session of the request, creating it (and
// running its initial fetch) on first use.
func (s *Server) session(c *fiber.Ctx) *dashboard.Session {
	return s.sessions.Get(c.UserContext(), middleware.SessionID(c))
}

// mapServiceError writes err with the HTTP status of its code. Errors that
// are not AppErrors come from the data backend and answer 502.
func mapServiceError(c *fiber.Ctx, err error) error {
	appErr := models.AsAppError(err)
	return models.RespondWithError(c, appErr.Status(), appErr)
}

func invalidBody(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusBadRequest,
		models.NewValidationError("Invalid request body"))
}
