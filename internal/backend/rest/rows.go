package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"matchboard/internal/models"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05.999999",
}

// timestamp accepts both zoned and zone-less Postgres timestamps.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", raw)
}

type userRow struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Age        int        `json:"age"`
	Location   string     `json:"location"`
	Bio        string     `json:"bio"`
	AvatarURL  string     `json:"avatar_url"`
	Interests  []string   `json:"interests"`
	MatchScore *int       `json:"match_score"`
	LastActive *timestamp `json:"last_active"`
	CreatedAt  timestamp  `json:"created_at"`
}

func (r *userRow) toModel() models.User {
	if r == nil {
		return models.User{}
	}
	u := models.User{
		ID:         r.ID,
		Name:       r.Name,
		Age:        r.Age,
		Location:   r.Location,
		Bio:        r.Bio,
		AvatarURL:  r.AvatarURL,
		Interests:  r.Interests,
		MatchScore: r.MatchScore,
		CreatedAt:  r.CreatedAt.Time,
	}
	if r.LastActive != nil && !r.LastActive.IsZero() {
		ts := r.LastActive.Time
		u.LastActive = &ts
	}
	return u
}

type matchRow struct {
	ID         string             `json:"id"`
	User1ID    string             `json:"user1_id"`
	User2ID    string             `json:"user2_id"`
	MatchScore int                `json:"match_score"`
	Status     models.MatchStatus `json:"status"`
	CreatedAt  timestamp          `json:"created_at"`
	User       *userRow           `json:"user"`
}

func (r matchRow) toModel() models.Match {
	return models.Match{
		ID:         r.ID,
		User1ID:    r.User1ID,
		User2ID:    r.User2ID,
		MatchScore: r.MatchScore,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt.Time,
		User:       r.User.toModel(),
	}
}

type messageRow struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  timestamp `json:"created_at"`
	Sender     *userRow  `json:"sender"`
}

func (r messageRow) toModel() models.Message {
	return models.Message{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt.Time,
		Sender:     r.Sender.toModel(),
	}
}

// newMessageRow is the insert payload; the server assigns id and created_at.
type newMessageRow struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

type profilePatchRow struct {
	Name      string   `json:"name"`
	Bio       string   `json:"bio"`
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
}

type statusPatchRow struct {
	Status models.MatchStatus `json:"status"`
}
