// Package backend defines the data-backend collaborator the dashboard reads
// from and writes to. Concrete providers live in internal/backend/rest,
// internal/repository and internal/fixtures.
package backend

import (
	"context"

	"matchboard/internal/models"
)

// Mode names a backend provider.
type Mode string

const (
	ModeREST     Mode = "rest"
	ModePostgres Mode = "postgres"
	ModeFixtures Mode = "fixtures"
)

// UserStore reads and edits user profiles.
type UserStore interface {
	// Current returns the first row of the users table.
	Current(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) error
}

// MatchStore reads matches and records accept/decline decisions.
type MatchStore interface {
	// ListForUser returns matches where user1_id = userID with the
	// counterpart (user2) profile joined.
	ListForUser(ctx context.Context, userID string) ([]models.Match, error)
	// UpdateStatus changes the status of the single match with this id.
	UpdateStatus(ctx context.Context, id string, status models.MatchStatus) error
}

// MessageStore reads and creates direct messages.
type MessageStore interface {
	// ListForUser returns at most limit messages sent or received by
	// userID, newest first, with the sender profile joined.
	ListForUser(ctx context.Context, userID string, limit int) ([]models.Message, error)
	// Create inserts msg. Only SenderID, ReceiverID and Content are sent.
	Create(ctx context.Context, msg *models.Message) error
}

// Backend bundles the three stores of one provider.
type Backend struct {
	Mode     Mode
	Users    UserStore
	Matches  MatchStore
	Messages MessageStore
}

// Preview reports whether the backend serves built-in mock data.
func (b *Backend) Preview() bool {
	return b != nil && b.Mode == ModeFixtures
}
