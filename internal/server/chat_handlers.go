package server

import (
	"matchboard/internal/models"
	"matchboard/internal/views"

	"github.com/gofiber/fiber/v2"
)

// GetConversations handles GET /api/conversations
// @Summary Messages view
// @Description Conversations grouped by counterpart plus the selected thread
// @Tags chat
// @Produce json
// @Success 200 {object} views.ChatModel
// @Router /conversations [get]
func (s *Server) GetConversations(c *fiber.Ctx) error {
	sess := s.session(c)
	return c.JSON(views.Chat(sess.Shell.Snapshot().Data(), sess.SelectedConversation(), sess.ChatInput()))
}

// SelectConversation handles POST /api/conversations/select
// @Summary Open a conversation
// @Tags chat
// @Accept json
// @Produce json
// @Param request body object{counterpart_id=string} true "Counterpart"
// @Success 200 {object} views.ChatModel
// @Failure 400 {object} models.ErrorResponse
// @Router /conversations/select [post]
func (s *Server) SelectConversation(c *fiber.Ctx) error {
	var req struct {
		CounterpartID string `json:"counterpart_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	sess := s.session(c)
	if err := s.chatService.Select(sess, req.CounterpartID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(views.Chat(sess.Shell.Snapshot().Data(), sess.SelectedConversation(), sess.ChatInput()))
}

// GetConversation handles GET /api/conversations/:counterpartId
// @Summary One conversation thread
// @Tags chat
// @Produce json
// @Param counterpartId path string true "Counterpart user ID"
// @Success 200 {object} object{conversation=views.Conversation,thread=[]views.ChatLine}
// @Failure 404 {object} models.ErrorResponse
// @Router /conversations/{counterpartId} [get]
func (s *Server) GetConversation(c *fiber.Ctx) error {
	counterpartID := c.Params("counterpartId")
	d := s.session(c).Shell.Snapshot().Data()

	conv, ok := views.FindConversation(views.GroupConversations(d.Messages, d.CurrentUserID()), counterpartID)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Conversation", counterpartID))
	}

	return c.JSON(fiber.Map{
		"conversation": conv,
		"thread":       views.Chat(d, counterpartID, "").Thread,
	})
}

// SendMessage handles POST /api/conversations/:counterpartId/messages
// @Summary Send a message
// @Description Inserts the message. The conversation list updates on the next refresh.
// @Tags chat
// @Accept json
// @Produce json
// @Param counterpartId path string true "Counterpart user ID"
// @Param request body object{content=string} true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /conversations/{counterpartId}/messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	sess := s.session(c)
	if err := s.chatService.Select(sess, c.Params("counterpartId")); err != nil {
		return mapServiceError(c, err)
	}
	msg, err := s.chatService.Send(c.UserContext(), sess, req.Content)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
