package repository

import (
	"context"

	"matchboard/internal/backend"
	"matchboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	backend.MessageStore
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) ListForUser(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	q := r.db.WithContext(ctx).
		Preload("Sender").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var messages []models.Message
	if err := q.Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Create inserts only the sender, receiver and content; the row gets a
// fresh id and timestamp.
func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	row := models.Message{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return translateError(err, "Message", row.ID)
	}
	msg.ID = row.ID
	msg.CreatedAt = row.CreatedAt
	return nil
}
