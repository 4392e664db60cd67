package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchStatus represents the lifecycle state of a match.
type MatchStatus string

const (
	// MatchStatusPending is the initial state of every match.
	MatchStatusPending MatchStatus = "pending"
	// MatchStatusAccepted marks a match the current user accepted.
	MatchStatusAccepted MatchStatus = "accepted"
	// MatchStatusDeclined marks a match the current user declined.
	MatchStatusDeclined MatchStatus = "declined"
)

// Valid reports whether s is one of the known statuses.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusAccepted, MatchStatusDeclined:
		return true
	}
	return false
}

// CanTransition reports whether a match may move from s to next.
// Only pending matches move, and only to accepted or declined.
func (s MatchStatus) CanTransition(next MatchStatus) bool {
	return s == MatchStatusPending && (next == MatchStatusAccepted || next == MatchStatusDeclined)
}

// Match pairs the current user (User1) with a candidate (User2).
type Match struct {
	ID         string      `gorm:"primaryKey;type:varchar(64)" json:"id" yaml:"id"`
	User1ID    string      `gorm:"not null;type:varchar(64);index:idx_matches_user1" json:"user1_id" yaml:"user1_id"`
	User2ID    string      `gorm:"not null;type:varchar(64)" json:"user2_id" yaml:"user2_id"`
	MatchScore int         `json:"match_score" yaml:"match_score"`
	Status     MatchStatus `gorm:"type:varchar(20);default:'pending';index:idx_matches_status" json:"status" yaml:"status"`
	CreatedAt  time.Time   `json:"created_at" yaml:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:User2ID" json:"user" yaml:"user"`
}

// TableName specifies the table name for GORM
func (Match) TableName() string {
	return "matches"
}

// BeforeCreate assigns a UUID when the caller did not supply an ID.
func (m *Match) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = MatchStatusPending
	}
	return nil
}

// Clone returns a deep copy of m.
func (m Match) Clone() Match {
	out := m
	out.User = m.User.Clone()
	return out
}
