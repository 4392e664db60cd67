package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct message between two users.
type Message struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id" yaml:"id"`
	SenderID   string    `gorm:"not null;type:varchar(64);index:idx_messages_sender" json:"sender_id" yaml:"sender_id"`
	ReceiverID string    `gorm:"not null;type:varchar(64);index:idx_messages_receiver" json:"receiver_id" yaml:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content" yaml:"content"`
	CreatedAt  time.Time `gorm:"index:idx_messages_created_at" json:"created_at" yaml:"created_at"`

	// Relationships
	Sender User `gorm:"foreignKey:SenderID" json:"sender" yaml:"sender"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns a UUID when the caller did not supply an ID.
func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Counterpart returns the other participant's ID from userID's point of view.
func (m Message) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Clone returns a deep copy of m.
func (m Message) Clone() Message {
	out := m
	out.Sender = m.Sender.Clone()
	return out
}
