package domain

import (
	"time"

	"moodchat-backend/pkg/classifier"
)

// EmotionSample is the immutable per-message classification record. It is
// created exactly once per analyzed message and never mutated afterwards,
// except to set MessageID (once) and to flip SupportTriggered false->true.
type EmotionSample struct {
	ID               string            `json:"id" gorm:"primaryKey"`
	AuthorID         string            `json:"author_id" gorm:"index;not null"`
	RoomID           string            `json:"room_id" gorm:"index;not null"`
	MessageID        *string           `json:"message_id,omitempty" gorm:"index"` // nil until linked
	Text             string            `json:"text" gorm:"type:text"`
	EmotionLabel     classifier.Label  `json:"emotion_label"`
	SentimentScore   float64           `json:"sentiment_score"` // [-1, 1]
	Magnitude        float64           `json:"magnitude"`       // >= 0
	Confidence       float64           `json:"confidence"`      // [0, 1]
	ClassifierSource classifier.Source `json:"classifier_source"`
	SupportTriggered bool              `json:"support_triggered"`
	CreatedAt        time.Time         `json:"created_at"`
}
