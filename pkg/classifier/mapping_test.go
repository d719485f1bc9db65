package classifier_test

import (
	"testing"

	"moodchat-backend/pkg/classifier"

	"github.com/stretchr/testify/assert"
)

func TestMapToLabel_LowMagnitudeIsAlwaysNeutral(t *testing.T) {
	scores := []float64{-1, -0.61, -0.3, 0, 0.3, 0.61, 1}
	for _, score := range scores {
		assert.Equal(t, classifier.LabelNeutral, classifier.MapToLabel(score, 0.29), "score %v", score)
		assert.Equal(t, classifier.LabelNeutral, classifier.MapToLabel(score, 0), "score %v", score)
	}
}

func TestMapToLabel_Bands(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		magnitude float64
		want      classifier.Label
	}{
		{"strong positive, moderate magnitude", 0.8, 0.5, classifier.LabelJoy},
		{"strong positive, intense magnitude", 0.8, 0.9, classifier.LabelSurprise},
		{"strong positive boundary", 0.6, 0.5, classifier.LabelJoy},
		{"mild positive", 0.3, 0.5, classifier.LabelJoy},
		{"mild positive boundary", 0.2, 0.5, classifier.LabelJoy},
		{"flat band positive side", 0.19, 0.5, classifier.LabelNeutral},
		{"flat band negative side", -0.19, 0.5, classifier.LabelNeutral},
		{"mild negative, calm", -0.3, 0.5, classifier.LabelSadness},
		{"mild negative, elevated", -0.3, 0.7, classifier.LabelFear},
		{"strong negative, calm", -0.7, 0.5, classifier.LabelSadness},
		{"strong negative, elevated", -0.7, 0.8, classifier.LabelAnger},
		{"strong negative boundary", -0.6, 0.5, classifier.LabelSadness},
		{"strong negative boundary, elevated", -0.6, 0.7, classifier.LabelAnger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.MapToLabel(tt.score, tt.magnitude))
		})
	}
}

// The band boundaries are contract constants; changing one should be a
// deliberate, visible decision.
func TestBandConstants(t *testing.T) {
	assert.Equal(t, 0.6, classifier.ScoreStrongPositive)
	assert.Equal(t, 0.2, classifier.ScoreMildPositive)
	assert.Equal(t, -0.2, classifier.ScoreMildNegative)
	assert.Equal(t, -0.6, classifier.ScoreStrongNegative)
	assert.Equal(t, 0.3, classifier.MagnitudeLowSignal)
	assert.Equal(t, 0.7, classifier.MagnitudeElevated)
	assert.Equal(t, 0.8, classifier.MagnitudeIntense)
}

func TestDeriveConfidence(t *testing.T) {
	assert.InDelta(t, 0.35, classifier.DeriveConfidence(-0.7, 0.5), 1e-9)
	assert.Equal(t, 1.0, classifier.DeriveConfidence(1, 3.0), "confidence is capped at 1")
	assert.Equal(t, 0.0, classifier.DeriveConfidence(0, 2.0))
}

func TestClamping(t *testing.T) {
	assert.Equal(t, 1.0, classifier.ClampScore(3.5))
	assert.Equal(t, -1.0, classifier.ClampScore(-2))
	assert.Equal(t, 0.4, classifier.ClampScore(0.4))
	assert.Equal(t, 0.0, classifier.ClampMagnitude(-1))
	assert.Equal(t, 2.5, classifier.ClampMagnitude(2.5))
}
