package repository

import emotiondomain "moodchat-backend/internal/emotion/domain"

// SampleRepository persists immutable emotion samples. Samples are
// append-only: the only writes after creation are the one-shot message link
// and the monotonic support flag.
type SampleRepository interface {
	Create(sample *emotiondomain.EmotionSample) error
	LinkMessage(sampleID, messageID string) error
	MarkSupportTriggered(sampleID string) error
	FindByID(id string) (*emotiondomain.EmotionSample, error)
	ListByAuthor(authorID string, limit int) ([]emotiondomain.EmotionSample, error)
}

// ProfileRepository persists per-user emotion profiles
type ProfileRepository interface {
	FindByUser(userID string) (*emotiondomain.UserEmotionProfile, error)
	Save(profile *emotiondomain.UserEmotionProfile) error
}

// TrendRepository persists per-room per-day trend buckets
type TrendRepository interface {
	FindBucket(roomID, bucketDate string) (*emotiondomain.RoomEmotionTrend, error)
	Save(bucket *emotiondomain.RoomEmotionTrend) error
	ListByRoom(roomID string, limit int) ([]emotiondomain.RoomEmotionTrend, error)
}
