package server

import (
	"matchboard/internal/views"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) profileModel(c *fiber.Ctx) views.ProfileModel {
	sess := s.session(c)
	d := sess.Shell.Snapshot().Data()
	var model views.ProfileModel
	_ = sess.Editor(func(e *views.ProfileEditor) error {
		model = views.Profile(d, e)
		return nil
	})
	return model
}

// GetProfile handles GET /api/profile
// @Summary Profile view
// @Tags profile
// @Produce json
// @Success 200 {object} views.ProfileModel
// @Router /profile [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	return c.JSON(s.profileModel(c))
}

// BeginProfileEdit handles POST /api/profile/edit
// @Summary Enter edit mode
// @Tags profile
// @Produce json
// @Success 200 {object} views.ProfileDraft
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/edit [post]
func (s *Server) BeginProfileEdit(c *fiber.Ctx) error {
	draft, err := s.profileService.Begin(s.session(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(draft)
}

// UpdateProfileDraft handles PUT /api/profile/draft
// @Summary Edit the draft
// @Tags profile
// @Accept json
// @Produce json
// @Param request body views.DraftPatch true "Fields to change"
// @Success 200 {object} views.ProfileDraft
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/draft [put]
func (s *Server) UpdateProfileDraft(c *fiber.Ctx) error {
	var patch views.DraftPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c)
	}
	draft, err := s.profileService.UpdateDraft(s.session(c), patch)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(draft)
}

// GetProfileChanges handles GET /api/profile/changes
// @Summary Pending draft changes
// @Tags profile
// @Produce json
// @Success 200 {array} views.FieldChange
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/changes [get]
func (s *Server) GetProfileChanges(c *fiber.Ctx) error {
	changes, err := s.profileService.Changes(s.session(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(changes)
}

// CancelProfileEdit handles POST /api/profile/cancel
// @Summary Discard the draft
// @Tags profile
// @Produce json
// @Success 200 {object} views.ProfileModel
// @Router /profile/cancel [post]
func (s *Server) CancelProfileEdit(c *fiber.Ctx) error {
	s.profileService.Cancel(s.session(c))
	return c.JSON(s.profileModel(c))
}

// SaveProfile handles POST /api/profile/save
// @Summary Save the draft
// @Description Issues one update of name, bio, location and interests, then refreshes
// @Tags profile
// @Produce json
// @Success 200 {object} views.ProfileModel
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /profile/save [post]
func (s *Server) SaveProfile(c *fiber.Ctx) error {
	if err := s.profileService.Save(c.UserContext(), s.session(c)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(s.profileModel(c))
}
