package usecase_test

import (
	"testing"

	emotiondomain "moodchat-backend/internal/emotion/domain"
	"moodchat-backend/internal/emotion/usecase"
	"moodchat-backend/pkg/classifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerPolicy_BoundaryIsInclusive(t *testing.T) {
	policy := usecase.NewTriggerPolicy()

	tests := []struct {
		score float64
		want  bool
	}{
		{-1.0, true},
		{-0.7, true},
		{-0.6, true}, // boundary exact, inclusive
		{-0.59, false},
		{-0.3, false},
		{0, false},
		{0.9, false},
	}
	for _, tt := range tests {
		sample := &emotiondomain.EmotionSample{SentimentScore: tt.score}
		triggered, _ := policy.Evaluate(sample, "Alex")
		assert.Equal(t, tt.want, triggered, "score %v", tt.score)
	}
}

func TestTriggerPolicy_PayloadContract(t *testing.T) {
	policy := usecase.NewTriggerPolicy()

	sample := &emotiondomain.EmotionSample{
		RoomID:         "room-1",
		SentimentScore: -0.85,
		EmotionLabel:   classifier.LabelSadness,
	}
	triggered, payload := policy.Evaluate(sample, "Alex")
	require.True(t, triggered)
	require.NotNil(t, payload)

	assert.Equal(t, usecase.SupportTitle, payload.Title)
	assert.Contains(t, payload.Body, "Alex")
	assert.Equal(t, "emotional_support", payload.Data["type"])
	assert.Equal(t, "-0.85", payload.Data["sentimentScore"])
	assert.Equal(t, "sadness", payload.Data["emotion"])
	assert.Equal(t, "room-1", payload.Data["roomId"])
	assert.NotEmpty(t, payload.Data["timestamp"])
}

func TestTriggerPolicy_NoPayloadWhenNotTriggered(t *testing.T) {
	policy := usecase.NewTriggerPolicy()

	triggered, payload := policy.Evaluate(&emotiondomain.EmotionSample{SentimentScore: 0.2}, "Alex")
	assert.False(t, triggered)
	assert.Nil(t, payload)
}
