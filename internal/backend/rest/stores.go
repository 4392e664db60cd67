package rest

import (
	"context"

	"matchboard/internal/backend"
	"matchboard/internal/models"
)

const (
	usersTable    = "users"
	matchesTable  = "matches"
	messagesTable = "messages"

	matchSelect   = "*,user:users!matches_user2_id_fkey(*)"
	messageSelect = "*,sender:users!messages_sender_id_fkey(*)"
)

// NewBackend exposes c as a backend.Backend.
func NewBackend(c *Client) *backend.Backend {
	return &backend.Backend{
		Mode:     backend.ModeREST,
		Users:    &userStore{client: c},
		Matches:  &matchStore{client: c},
		Messages: &messageStore{client: c},
	}
}

type userStore struct {
	client *Client
}

func (s *userStore) Current(ctx context.Context) (*models.User, error) {
	var rows []userRow
	if err := s.client.Select(ctx, usersTable, NewQuery().Select("*").Limit(1), &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, models.NewNotFoundError("User", "current")
	}
	user := rows[0].toModel()
	return &user, nil
}

func (s *userStore) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) error {
	interests := patch.Interests
	if interests == nil {
		interests = []string{}
	}
	return s.client.Update(ctx, usersTable, NewQuery().Eq("id", id), profilePatchRow{
		Name:      patch.Name,
		Bio:       patch.Bio,
		Location:  patch.Location,
		Interests: interests,
	})
}

type matchStore struct {
	client *Client
}

func (s *matchStore) ListForUser(ctx context.Context, userID string) ([]models.Match, error) {
	var rows []matchRow
	q := NewQuery().Select(matchSelect).Eq("user1_id", userID)
	if err := s.client.Select(ctx, matchesTable, q, &rows); err != nil {
		return nil, err
	}
	matches := make([]models.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, row.toModel())
	}
	return matches, nil
}

func (s *matchStore) UpdateStatus(ctx context.Context, id string, status models.MatchStatus) error {
	return s.client.Update(ctx, matchesTable, NewQuery().Eq("id", id), statusPatchRow{Status: status})
}

type messageStore struct {
	client *Client
}

func (s *messageStore) ListForUser(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	var rows []messageRow
	q := NewQuery().
		Select(messageSelect).
		Or(EqFilter("sender_id", userID), EqFilter("receiver_id", userID)).
		Order("created_at", true).
		Limit(limit)
	if err := s.client.Select(ctx, messagesTable, q, &rows); err != nil {
		return nil, err
	}
	messages := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, row.toModel())
	}
	return messages, nil
}

func (s *messageStore) Create(ctx context.Context, msg *models.Message) error {
	return s.client.Insert(ctx, messagesTable, newMessageRow{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
	})
}
