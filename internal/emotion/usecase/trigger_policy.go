package usecase

import (
	"fmt"
	"time"

	emotiondomain "moodchat-backend/internal/emotion/domain"
)

// SupportThreshold is the crisis sentiment threshold, inclusive. It is a
// tunable constant, not an adaptive value.
const SupportThreshold = -0.6

// SupportTitle is the fixed support notification title
const SupportTitle = "We're here for you"

// SupportPayload is the canonical support notification content
type SupportPayload struct {
	Title string
	Body  string
	Data  map[string]string
}

// TriggerPolicy takes the point-in-time decision whether a sample warrants
// a support notification. It is deliberately stateless: deduplication
// against recent alerts is the caller's job, via the SupportTriggered flag
// on the sample and the dispatcher's per-user cooldown.
type TriggerPolicy struct{}

// NewTriggerPolicy creates a new TriggerPolicy
func NewTriggerPolicy() *TriggerPolicy {
	return &TriggerPolicy{}
}

// Evaluate returns whether a support notification must fire for this sample,
// plus the canonical payload addressed to the author. The policy never sends
// anything itself.
func (p *TriggerPolicy) Evaluate(sample *emotiondomain.EmotionSample, displayName string) (bool, *SupportPayload) {
	if sample.SentimentScore > SupportThreshold {
		return false, nil
	}

	return true, &SupportPayload{
		Title: SupportTitle,
		Body:  fmt.Sprintf("%s, it sounds like things are heavy right now. You're not alone - we're thinking of you.", displayName),
		Data: map[string]string{
			"type":           "emotional_support",
			"sentimentScore": fmt.Sprintf("%.2f", sample.SentimentScore),
			"emotion":        string(sample.EmotionLabel),
			"roomId":         sample.RoomID,
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		},
	}
}
