package classifier

import (
	"context"
	"log"
	"time"
)

// FallbackClassifier routes classification to a primary provider and degrades
// to the local keyword heuristic when the provider misbehaves. Classification
// never fails for non-empty input: any primary error (transport, auth, quota,
// timeout) yields a fallback result instead.
type FallbackClassifier struct {
	primary Classifier
	local   *KeywordClassifier
	timeout time.Duration
}

// NewFallbackClassifier wraps primary with the keyword fallback.
// primary may be nil, in which case every call uses the local heuristic.
func NewFallbackClassifier(primary Classifier, timeout time.Duration) *FallbackClassifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &FallbackClassifier{
		primary: primary,
		local:   NewKeywordClassifier(),
		timeout: timeout,
	}
}

func (f *FallbackClassifier) Classify(ctx context.Context, text string) (*Result, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	if f.primary != nil {
		pctx, cancel := context.WithTimeout(ctx, f.timeout)
		result, err := f.primary.Classify(pctx, text)
		cancel()
		if err == nil {
			return result, nil
		}
		log.Printf("[Classifier] Primary provider failed: %v, falling back to keyword heuristic", err)
	}

	return f.local.Classify(ctx, text)
}
