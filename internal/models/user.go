// Package models contains data structures for the dashboard's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a dating profile. The dashboard only ever edits Name, Bio,
// Location and Interests.
type User struct {
	ID         string     `gorm:"primaryKey;type:varchar(64)" json:"id" yaml:"id"`
	Name       string     `gorm:"not null" json:"name" yaml:"name"`
	Age        int        `json:"age" yaml:"age"`
	Location   string     `json:"location" yaml:"location"`
	Bio        string     `gorm:"type:text" json:"bio" yaml:"bio"`
	AvatarURL  string     `json:"avatar_url" yaml:"avatar_url"`
	Interests  []string   `gorm:"serializer:json;type:text" json:"interests" yaml:"interests"`
	MatchScore *int       `gorm:"-" json:"match_score,omitempty" yaml:"match_score,omitempty"`
	LastActive *time.Time `json:"last_active,omitempty" yaml:"last_active,omitempty"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when the caller did not supply an ID.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ProfilePatch carries the four editable profile fields.
type ProfilePatch struct {
	Name      string   `json:"name"`
	Bio       string   `json:"bio"`
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
}

// Apply copies the patch onto u.
func (p ProfilePatch) Apply(u *User) {
	u.Name = p.Name
	u.Bio = p.Bio
	u.Location = p.Location
	u.Interests = append([]string(nil), p.Interests...)
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	out := u
	if u.Interests != nil {
		out.Interests = append([]string(nil), u.Interests...)
	}
	if u.MatchScore != nil {
		score := *u.MatchScore
		out.MatchScore = &score
	}
	if u.LastActive != nil {
		ts := *u.LastActive
		out.LastActive = &ts
	}
	return out
}
