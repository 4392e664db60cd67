// Package fixtures provides the built-in mock dataset and an in-memory
// backend that serves it when no hosted backend is configured.
package fixtures

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"matchboard/internal/models"
	"matchboard/internal/placeholder"

	"gopkg.in/yaml.v3"
)

// DemoUserID is the identifier of the built-in current user.
const DemoUserID = "00000000-0000-0000-0000-000000000000"

const fixtureMatchCount = 5

// Dataset is a complete set of dashboard data.
type Dataset struct {
	CurrentUser models.User      `yaml:"current_user"`
	Matches     []models.Match   `yaml:"matches"`
	Messages    []models.Message `yaml:"messages"`
}

// DemoUser returns the built-in current user.
func DemoUser() models.User {
	return models.User{
		ID:        DemoUserID,
		Name:      "Demo User",
		Age:       29,
		Location:  "Demo City",
		Bio:       "👋 I’m a mock profile because the backend isn’t configured yet.",
		AvatarURL: "/placeholder.svg?height=200&width=200",
		Interests: []string{"demo", "mock-data", "preview"},
	}
}

// Default builds the built-in dataset: the demo user, five pending matches
// with placeholder scores and one inbound message. A nil rng uses the
// package-level source.
func Default(rng *rand.Rand, now time.Time) Dataset {
	current := DemoUser()
	current.CreatedAt = now

	matches := make([]models.Match, 0, fixtureMatchCount)
	for i := 0; i < fixtureMatchCount; i++ {
		counterpart := DemoUser()
		counterpart.ID = fmt.Sprintf("user-%d", i)
		counterpart.Name = fmt.Sprintf("Match %d", i+1)
		counterpart.CreatedAt = now

		matches = append(matches, models.Match{
			ID:         fmt.Sprintf("match-%d", i),
			User1ID:    current.ID,
			User2ID:    counterpart.ID,
			MatchScore: placeholder.MatchScore(rng),
			Status:     models.MatchStatusPending,
			CreatedAt:  now,
			User:       counterpart,
		})
	}

	messages := []models.Message{{
		ID:         "msg-1",
		SenderID:   "user-0",
		ReceiverID: current.ID,
		Content:    "Hi there 👋 (mock message)",
		CreatedAt:  now,
		Sender:     matches[0].User.Clone(),
	}}

	return Dataset{CurrentUser: current, Matches: matches, Messages: messages}
}

// LoadFile reads a YAML dataset from path.
func LoadFile(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read fixtures file: %w", err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse fixtures file: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, fmt.Errorf("invalid fixtures file: %w", err)
	}
	return ds, nil
}

// Validate checks identifiers and statuses.
func (ds Dataset) Validate() error {
	if ds.CurrentUser.ID == "" {
		return errors.New("current_user.id is required")
	}
	seen := make(map[string]struct{}, len(ds.Matches))
	for i, m := range ds.Matches {
		if m.ID == "" {
			return fmt.Errorf("matches[%d].id is required", i)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("duplicate match id %q", m.ID)
		}
		seen[m.ID] = struct{}{}
		if !m.Status.Valid() {
			return fmt.Errorf("matches[%d] has unknown status %q", i, m.Status)
		}
	}
	for i, msg := range ds.Messages {
		if msg.SenderID == "" || msg.ReceiverID == "" {
			return fmt.Errorf("messages[%d] needs sender_id and receiver_id", i)
		}
	}
	return nil
}
