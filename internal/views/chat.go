package views

import (
	"time"

	"matchboard/internal/models"
)

// UnknownUserName labels a conversation whose newest message was sent by
// the current user, since only senders are joined.
const UnknownUserName = "Unknown User"

// Participant is the other side of a conversation.
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Initial   string `json:"initial"`
	AvatarURL string `json:"avatar_url"`
}

// Conversation is every fetched message exchanged with one counterpart,
// newest first as fetched.
type Conversation struct {
	CounterpartID string           `json:"counterpart_id"`
	Counterpart   Participant      `json:"counterpart"`
	LastMessage   string           `json:"last_message"`
	Messages      []models.Message `json:"-"`
}

// ChatLine is one message in a thread, oriented for display.
type ChatLine struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	FromMe  bool   `json:"from_me"`
	SentAt  string `json:"sent_at"`
}

// ChatModel is the messages screen.
type ChatModel struct {
	Title         string         `json:"title"`
	Conversations []Conversation `json:"conversations"`
	SelectedID    string         `json:"selected_id,omitempty"`
	Thread        []ChatLine     `json:"thread"`
	Input         string         `json:"input"`
}

// ConversationKey is the participant of msg who is not currentUserID.
func ConversationKey(msg models.Message, currentUserID string) string {
	return msg.Counterpart(currentUserID)
}

// GroupConversations buckets messages by counterpart. Buckets are ordered by
// first appearance and keep the input order of their messages.
func GroupConversations(messages []models.Message, currentUserID string) []Conversation {
	index := make(map[string]int)
	var out []Conversation
	for _, msg := range messages {
		key := ConversationKey(msg, currentUserID)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Conversation{CounterpartID: key})
		}
		out[i].Messages = append(out[i].Messages, msg)
	}

	for i := range out {
		newest := out[i].Messages[0]
		out[i].LastMessage = newest.Content
		if newest.SenderID == currentUserID {
			out[i].Counterpart = Participant{
				ID:        out[i].CounterpartID,
				Name:      UnknownUserName,
				Initial:   initial(UnknownUserName),
				AvatarURL: avatarOrPlaceholder(""),
			}
			continue
		}
		out[i].Counterpart = Participant{
			ID:        newest.Sender.ID,
			Name:      newest.Sender.Name,
			Initial:   initial(newest.Sender.Name),
			AvatarURL: avatarOrPlaceholder(newest.Sender.AvatarURL),
		}
		if out[i].Counterpart.ID == "" {
			out[i].Counterpart.ID = out[i].CounterpartID
		}
	}
	return out
}

// FindConversation returns the bucket for counterpartID.
func FindConversation(convs []Conversation, counterpartID string) (Conversation, bool) {
	for _, c := range convs {
		if c.CounterpartID == counterpartID {
			return c, true
		}
	}
	return Conversation{}, false
}

// Thread returns conv's messages oldest first. conv is not modified.
func Thread(conv Conversation) []models.Message {
	out := make([]models.Message, len(conv.Messages))
	for i, msg := range conv.Messages {
		out[len(conv.Messages)-1-i] = msg
	}
	return out
}

// Chat projects the conversation list and, when one is selected, its thread.
func Chat(d Data, selectedID, input string) ChatModel {
	currentID := d.CurrentUserID()
	convs := GroupConversations(d.Messages, currentID)
	out := ChatModel{
		Title:         "Select a conversation",
		Conversations: convs,
		SelectedID:    selectedID,
		Thread:        []ChatLine{},
		Input:         input,
	}
	if out.Conversations == nil {
		out.Conversations = []Conversation{}
	}
	if selectedID != "" {
		out.Title = "Chat"
	}
	if conv, ok := FindConversation(convs, selectedID); ok {
		for _, msg := range Thread(conv) {
			out.Thread = append(out.Thread, ChatLine{
				ID:      msg.ID,
				Content: msg.Content,
				FromMe:  msg.SenderID == currentID,
				SentAt:  msg.CreatedAt.Format(time.TimeOnly),
			})
		}
	}
	return out
}
