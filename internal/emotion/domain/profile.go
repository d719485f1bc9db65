package domain

import (
	"time"

	"moodchat-backend/pkg/classifier"
)

// HistoryCapacity bounds the recent history kept on a profile (FIFO eviction)
const HistoryCapacity = 100

// Confidence gates for profile updates
const (
	// MinProfileConfidence is the floor below which a sample does not touch the profile
	MinProfileConfidence = 0.3
	// MinDominantConfidence is required before a sample may overwrite the dominant emotion
	MinDominantConfidence = 0.7
)

// HistoryEntry is one observation in a profile's recent history
type HistoryEntry struct {
	Emotion    classifier.Label `json:"emotion"`
	Confidence float64          `json:"confidence"`
	Timestamp  time.Time        `json:"timestamp"`
}

// UserEmotionProfile is the rolling per-user emotion trend. One row per user.
type UserEmotionProfile struct {
	UserID           string           `json:"user_id" gorm:"primaryKey"`
	DominantEmotion  classifier.Label `json:"dominant_emotion"`
	AverageSentiment float64          `json:"average_sentiment"`
	SampleCount      int64            `json:"sample_count"`
	RecentHistory    []HistoryEntry   `json:"recent_history" gorm:"type:jsonb;serializer:json"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
