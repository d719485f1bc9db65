package classifier

import (
	"context"
	"math"
	"strings"
)

// KeywordClassifier is the local heuristic fallback. It scores a message by
// scanning for weighted sentiment terms, so it works without any network
// access and never fails for non-empty input.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// term weights: crisis vocabulary pulls hard toward -1 so the support
// trigger still fires when the primary provider is down.
var termWeights = map[string]float64{
	// crisis
	"hopeless": -1.0, "worthless": -1.0, "suicidal": -1.0, "depressed": -1.0,
	"unbearable": -1.0, "pointless": -1.0,
	// negative
	"sad": -0.5, "angry": -0.5, "furious": -0.6, "hate": -0.6, "terrible": -0.5,
	"awful": -0.5, "miserable": -0.7, "lonely": -0.5, "afraid": -0.5,
	"scared": -0.5, "anxious": -0.5, "crying": -0.5, "hurt": -0.4,
	"disgusting": -0.6, "gross": -0.5, "sick": -0.4, "worried": -0.4,
	// positive
	"happy": 0.5, "great": 0.4, "love": 0.6, "wonderful": 0.6, "amazing": 0.6,
	"excited": 0.5, "joy": 0.6, "glad": 0.4, "awesome": 0.6, "fantastic": 0.6,
	"thanks": 0.4, "perfect": 0.5,
}

// crisis phrases matched against the whole lowercased text
var crisisPhrases = []string{
	"kill myself", "end it all", "want to die", "no reason to live",
	"nothing matters", "give up on everything",
}

// label hints let the heuristic reach labels the band mapping alone
// cannot, like disgust
var labelHints = map[string]Label{
	"angry": LabelAnger, "furious": LabelAnger, "hate": LabelAnger,
	"afraid": LabelFear, "scared": LabelFear, "anxious": LabelFear, "worried": LabelFear,
	"disgusting": LabelDisgust, "gross": LabelDisgust,
	"wow": LabelSurprise, "unbelievable": LabelSurprise, "surprised": LabelSurprise,
	"sad": LabelSadness, "lonely": LabelSadness, "crying": LabelSadness,
	"hopeless": LabelSadness, "depressed": LabelSadness, "miserable": LabelSadness,
	"happy": LabelJoy, "love": LabelJoy, "glad": LabelJoy, "excited": LabelJoy,
}

func (k *KeywordClassifier) Classify(ctx context.Context, text string) (*Result, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})

	var sum float64
	var hits int
	hintCounts := make(map[Label]int)

	for _, w := range words {
		if weight, ok := termWeights[w]; ok {
			sum += weight
			hits++
		}
		if hint, ok := labelHints[w]; ok {
			hintCounts[hint]++
		}
	}
	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			sum += -1.0
			hits++
			hintCounts[LabelSadness]++
		}
	}

	if hits == 0 {
		return &Result{
			Label:      LabelNeutral,
			Score:      0,
			Magnitude:  0,
			Confidence: 0,
			Source:     SourceFallback,
		}, nil
	}

	score := ClampScore(sum / float64(hits))
	magnitude := math.Min(float64(hits)*0.5, 2.0) * math.Abs(score)

	label := MapToLabel(score, magnitude)
	if label != LabelNeutral {
		if hint, ok := dominantHint(hintCounts); ok {
			label = hint
		}
	}

	return &Result{
		Label:      label,
		Score:      score,
		Magnitude:  magnitude,
		Confidence: DeriveConfidence(score, magnitude),
		Source:     SourceFallback,
	}, nil
}

// dominantHint returns the hint label with strictly more hits than any other
func dominantHint(counts map[Label]int) (Label, bool) {
	var best Label
	bestCount := 0
	tied := false
	for label, n := range counts {
		if n > bestCount {
			best, bestCount, tied = label, n, false
		} else if n == bestCount && n > 0 {
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return "", false
	}
	return best, true
}
