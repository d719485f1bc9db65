package repository

import (
	"errors"
	"time"

	chatdomain "moodchat-backend/internal/chat/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of messageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) Create(message *chatdomain.Message) error {
	message.ID = uuid.New().String()
	message.CreatedAt = time.Now()
	if message.MessageType == "" {
		message.MessageType = chatdomain.MessageTypeText
	}
	return r.db.Create(message).Error
}

func (r *messageRepository) FindByID(id string) (*chatdomain.Message, error) {
	var message chatdomain.Message
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// ListByRoom pages backwards through a room's history. beforeID is an
// optional message id cursor.
func (r *messageRepository) ListByRoom(roomID, beforeID string, limit int) ([]chatdomain.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := r.db.Where("room_id = ? AND deleted_at IS NULL", roomID)
	if beforeID != "" {
		var cursor chatdomain.Message
		if err := r.db.Select("created_at").Where("id = ?", beforeID).First(&cursor).Error; err == nil {
			query = query.Where("created_at < ?", cursor.CreatedAt)
		}
	}

	var messages []chatdomain.Message
	err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// StampEmotion writes the analysis outcome onto the message row, best-effort
func (r *messageRepository) StampEmotion(messageID, emotion string, sentiment float64) error {
	return r.db.Model(&chatdomain.Message{}).
		Where("id = ?", messageID).
		Updates(map[string]interface{}{
			"emotion":   emotion,
			"sentiment": sentiment,
		}).Error
}

// SoftDelete hides a message without dropping the row; the emotion sample
// recorded for it is preserved for analytics.
func (r *messageRepository) SoftDelete(messageID string) error {
	now := time.Now()
	return r.db.Model(&chatdomain.Message{}).
		Where("id = ? AND deleted_at IS NULL", messageID).
		Update("deleted_at", now).Error
}
