package service

import (
	"context"
	"strings"

	"matchboard/internal/dashboard"
	"matchboard/internal/featureflags"
	"matchboard/internal/models"
)

// ChatService sends direct messages from the current user.
type ChatService struct {
	flags *featureflags.Manager
}

// NewChatService returns a new ChatService. flags may be nil.
func NewChatService(flags *featureflags.Manager) *ChatService {
	return &ChatService{flags: flags}
}

// Select opens the conversation with counterpartID. The session keeps its
// own copy, so callers may pass strings backed by a request buffer.
func (s *ChatService) Select(sess *dashboard.Session, counterpartID string) error {
	counterpartID = strings.TrimSpace(counterpartID)
	if counterpartID == "" {
		return models.NewValidationError("counterpart_id is required")
	}
	sess.SelectConversation(strings.Clone(counterpartID))
	return nil
}

// Send inserts content from the current user to the selected conversation
// and clears the chat input. The sent message is not added to the session's
// messages; it appears after the next refresh, which only runs here when
// the chat_refresh_after_send flag is on.
func (s *ChatService) Send(ctx context.Context, sess *dashboard.Session, content string) (*models.Message, error) {
	sess.SetChatInput(content)

	content = strings.TrimSpace(content)
	receiverID := sess.SelectedConversation()
	current := sess.Shell.Snapshot().CurrentUser
	switch {
	case content == "":
		return nil, models.NewValidationError("message content is required")
	case receiverID == "":
		return nil, models.NewValidationError("select a conversation first")
	case current == nil:
		return nil, models.NewValidationError("current user is not loaded")
	}

	msg := &models.Message{
		SenderID:   current.ID,
		ReceiverID: receiverID,
		Content:    content,
	}
	shell := sess.Shell
	err := shell.Attempt(ctx, func(ctx context.Context) error {
		return shell.Backend().Messages.Create(ctx, msg)
	}, models.SuccessToast("Message sent successfully"), models.ErrorToast("Failed to send message"))
	if err != nil {
		return nil, err
	}

	sess.SetChatInput("")
	if s.flags.Enabled(featureflags.ChatRefreshAfterSend, sess.ID) {
		_ = shell.Refresh(ctx)
	}
	return msg, nil
}
