package domain

import (
	"time"

	"moodchat-backend/pkg/classifier"
)

// BucketDateLayout keys trend buckets by calendar day. Buckets are always
// assigned in UTC so assignment is deterministic across processes.
const BucketDateLayout = "2006-01-02"

// RoomEmotionTrend is the per-room per-day emotion aggregate.
// AverageSentiment is a recency-biased blend (new = (old+sample)/2), not a
// true running mean; callers must not read it as statistically correct.
type RoomEmotionTrend struct {
	ID               string                     `json:"id" gorm:"primaryKey"`
	RoomID           string                     `json:"room_id" gorm:"uniqueIndex:idx_room_day;not null"`
	BucketDate       string                     `json:"bucket_date" gorm:"uniqueIndex:idx_room_day;not null"`
	EmotionCounts    map[classifier.Label]int64 `json:"emotion_counts" gorm:"type:jsonb;serializer:json"`
	AverageSentiment float64                    `json:"average_sentiment"`
	SampleCount      int64                      `json:"sample_count"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// BucketDateFor returns the UTC day key for a timestamp
func BucketDateFor(t time.Time) string {
	return t.UTC().Format(BucketDateLayout)
}
