package usecase

import (
	"fmt"

	emotiondomain "moodchat-backend/internal/emotion/domain"
	"moodchat-backend/internal/emotion/repository"
	"moodchat-backend/pkg/classifier"
)

// TrendAggregator rolls emotion samples into per-user and per-room
// statistics. Both updates are best-effort: a retried update double-counts,
// which is acceptable because trends are informational, not billing-grade.
type TrendAggregator struct {
	profileRepo repository.ProfileRepository
	trendRepo   repository.TrendRepository
}

// NewTrendAggregator creates a new TrendAggregator
func NewTrendAggregator(profileRepo repository.ProfileRepository, trendRepo repository.TrendRepository) *TrendAggregator {
	return &TrendAggregator{
		profileRepo: profileRepo,
		trendRepo:   trendRepo,
	}
}

// ApplyToProfile updates the author's rolling profile from a sample.
// Low-confidence samples (<= 0.3) are ignored entirely; the dominant emotion
// is only overwritten by samples above the 0.7 confidence gate.
func (a *TrendAggregator) ApplyToProfile(userID string, sample *emotiondomain.EmotionSample) error {
	if sample.Confidence <= emotiondomain.MinProfileConfidence {
		return nil
	}

	profile, err := a.profileRepo.FindByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		profile = &emotiondomain.UserEmotionProfile{
			UserID:          userID,
			DominantEmotion: classifier.LabelNeutral,
		}
	}

	profile.AverageSentiment = (profile.AverageSentiment*float64(profile.SampleCount) + sample.SentimentScore) / float64(profile.SampleCount+1)
	profile.SampleCount++

	if sample.Confidence > emotiondomain.MinDominantConfidence {
		profile.DominantEmotion = sample.EmotionLabel
	}

	profile.RecentHistory = append(profile.RecentHistory, emotiondomain.HistoryEntry{
		Emotion:    sample.EmotionLabel,
		Confidence: sample.Confidence,
		Timestamp:  sample.CreatedAt,
	})
	if len(profile.RecentHistory) > emotiondomain.HistoryCapacity {
		profile.RecentHistory = profile.RecentHistory[len(profile.RecentHistory)-emotiondomain.HistoryCapacity:]
	}

	if err := a.profileRepo.Save(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// ApplyToRoom updates today's (room, day) bucket: increments the matching
// emotion counter and blends sentiment as (old+new)/2. The blend is
// recency-biased drift, kept as documented rather than a true mean.
func (a *TrendAggregator) ApplyToRoom(roomID string, sample *emotiondomain.EmotionSample) error {
	bucketDate := emotiondomain.BucketDateFor(sample.CreatedAt)

	bucket, err := a.trendRepo.FindBucket(roomID, bucketDate)
	if err != nil {
		return fmt.Errorf("failed to load trend bucket: %w", err)
	}
	if bucket == nil {
		bucket = &emotiondomain.RoomEmotionTrend{
			RoomID:        roomID,
			BucketDate:    bucketDate,
			EmotionCounts: make(map[classifier.Label]int64),
		}
	}
	if bucket.EmotionCounts == nil {
		bucket.EmotionCounts = make(map[classifier.Label]int64)
	}

	bucket.EmotionCounts[sample.EmotionLabel]++
	if bucket.SampleCount == 0 {
		bucket.AverageSentiment = sample.SentimentScore
	} else {
		bucket.AverageSentiment = (bucket.AverageSentiment + sample.SentimentScore) / 2
	}
	bucket.SampleCount++

	if err := a.trendRepo.Save(bucket); err != nil {
		return fmt.Errorf("failed to save trend bucket: %w", err)
	}
	return nil
}
