package classifier

import (
	"context"
	"fmt"
	"log"

	language "google.golang.org/api/language/v2"
	"google.golang.org/api/option"
)

// GoogleClassifier implements Classifier using the Cloud Natural Language API
type GoogleClassifier struct {
	service *language.Service
}

// NewGoogleClassifier creates a classifier backed by Cloud Natural Language.
// credentialsFile may be empty to use application default credentials.
func NewGoogleClassifier(credentialsFile string) (*GoogleClassifier, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := language.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Natural Language service: %w", err)
	}

	log.Println("[Classifier] Google Natural Language client initialized")
	return &GoogleClassifier{service: svc}, nil
}

// Classify analyzes sentiment through the Natural Language API and maps it
// onto the emotion taxonomy. Provider output is clamped into documented
// ranges before mapping.
func (g *GoogleClassifier) Classify(ctx context.Context, text string) (*Result, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	req := &language.AnalyzeSentimentRequest{
		Document: &language.Document{
			Content: text,
			Type:    "PLAIN_TEXT",
		},
		EncodingType: "UTF8",
	}

	resp, err := g.service.Documents.AnalyzeSentiment(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("analyze sentiment failed: %w", err)
	}
	if resp.DocumentSentiment == nil {
		return nil, fmt.Errorf("analyze sentiment returned no document sentiment")
	}

	score := ClampScore(resp.DocumentSentiment.Score)
	magnitude := ClampMagnitude(resp.DocumentSentiment.Magnitude)

	return &Result{
		Label:      MapToLabel(score, magnitude),
		Score:      score,
		Magnitude:  magnitude,
		Confidence: DeriveConfidence(score, magnitude),
		Source:     SourcePrimary,
	}, nil
}
