package server

import (
	"strings"

	"matchboard/internal/models"
	"matchboard/internal/views"

	"github.com/gofiber/fiber/v2"
)

// GetPendingMatches handles GET /api/matches
// @Summary Pending match recommendations
// @Tags matches
// @Produce json
// @Success 200 {array} views.MatchCard
// @Router /matches [get]
func (s *Server) GetPendingMatches(c *fiber.Ctx) error {
	return c.JSON(views.PendingMatches(s.session(c).Shell.Snapshot().Matches))
}

// AcceptMatch handles POST /api/matches/:id/accept
// @Summary Accept a match
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {array} views.MatchCard
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /matches/{id}/accept [post]
func (s *Server) AcceptMatch(c *fiber.Ctx) error {
	return s.respondToMatch(c, models.MatchStatusAccepted)
}

// DeclineMatch handles POST /api/matches/:id/decline
// @Summary Decline a match
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {array} views.MatchCard
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /matches/{id}/decline [post]
func (s *Server) DeclineMatch(c *fiber.Ctx) error {
	return s.respondToMatch(c, models.MatchStatusDeclined)
}

func (s *Server) respondToMatch(c *fiber.Ctx, status models.MatchStatus) error {
	matchID := strings.TrimSpace(c.Params("id"))
	if matchID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid match ID"))
	}

	sess := s.session(c)
	if err := s.matchService.Respond(c.UserContext(), sess, matchID, status); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(views.PendingMatches(sess.Shell.Snapshot().Matches))
}
