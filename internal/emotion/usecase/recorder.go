package usecase

import (
	"fmt"

	emotiondomain "moodchat-backend/internal/emotion/domain"
	"moodchat-backend/internal/emotion/repository"
	"moodchat-backend/pkg/classifier"
)

// Recorder persists one immutable emotion sample per analyzed message.
// Recording failure is non-fatal to message delivery; callers log and move on.
type Recorder struct {
	sampleRepo repository.SampleRepository
}

// NewRecorder creates a new Recorder
func NewRecorder(sampleRepo repository.SampleRepository) *Recorder {
	return &Recorder{
		sampleRepo: sampleRepo,
	}
}

// Record builds and persists a sample from a classification result
func (r *Recorder) Record(authorID, roomID, text string, result *classifier.Result) (*emotiondomain.EmotionSample, error) {
	if result == nil {
		return nil, fmt.Errorf("classification result is required")
	}

	sample := &emotiondomain.EmotionSample{
		AuthorID:         authorID,
		RoomID:           roomID,
		Text:             text,
		EmotionLabel:     result.Label,
		SentimentScore:   result.Score,
		Magnitude:        result.Magnitude,
		Confidence:       result.Confidence,
		ClassifierSource: result.Source,
	}
	if err := r.sampleRepo.Create(sample); err != nil {
		return nil, fmt.Errorf("failed to persist emotion sample: %w", err)
	}
	return sample, nil
}

// LinkMessage ties a sample to its stored message, once
func (r *Recorder) LinkMessage(sampleID, messageID string) error {
	return r.sampleRepo.LinkMessage(sampleID, messageID)
}

// MarkSupportTriggered records that a support dispatch was attempted for
// this sample. The flag only ever moves false->true.
func (r *Recorder) MarkSupportTriggered(sampleID string) error {
	return r.sampleRepo.MarkSupportTriggered(sampleID)
}
