package domain

import "time"

// Message type constants
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

// Message is a chat message. Emotion and Sentiment are stamped after the
// background analysis finishes; they stay nil when analysis fails or is
// still in flight.
type Message struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	RoomID      string     `json:"room_id" gorm:"index;not null"`
	SenderID    string     `json:"sender_id" gorm:"index;not null"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	MessageType string     `json:"message_type"`
	Emotion     *string    `json:"emotion,omitempty"`
	Sentiment   *float64   `json:"sentiment,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}
