package classifier

import (
	"context"
	"errors"
)

// Label is the closed emotion taxonomy used across the backend.
type Label string

const (
	LabelJoy      Label = "joy"
	LabelSadness  Label = "sadness"
	LabelAnger    Label = "anger"
	LabelFear     Label = "fear"
	LabelSurprise Label = "surprise"
	LabelDisgust  Label = "disgust"
	LabelNeutral  Label = "neutral"
)

// Source identifies which provider produced a result
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

// Result is a single classification outcome.
// Score is always within [-1, 1], Magnitude >= 0, Confidence within [0, 1].
type Result struct {
	Label      Label   `json:"label"`
	Score      float64 `json:"score"`
	Magnitude  float64 `json:"magnitude"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// Classifier is the interface for sentiment/emotion providers.
// Implement this interface to add new providers (Google NL, local heuristics, ...).
type Classifier interface {
	Classify(ctx context.Context, text string) (*Result, error)
}

// ErrEmptyText is the only caller-visible classification failure.
var ErrEmptyText = errors.New("text must not be empty")

// ProviderType selects the classification provider
type ProviderType string

const (
	ProviderGoogle  ProviderType = "google"
	ProviderKeyword ProviderType = "keyword"
	ProviderAuto    ProviderType = "auto"
)
