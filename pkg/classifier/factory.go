package classifier

import (
	"log"
	"time"
)

// FactoryConfig holds classifier provider configuration
type FactoryConfig struct {
	Provider        ProviderType
	CredentialsFile string
	Timeout         time.Duration
}

// NewClassifier builds the classifier stack from config. The returned
// classifier always degrades gracefully: a missing or broken Google client
// just means every result is tagged source=fallback.
func NewClassifier(cfg FactoryConfig) Classifier {
	switch cfg.Provider {
	case ProviderKeyword:
		return NewFallbackClassifier(nil, cfg.Timeout)

	case ProviderGoogle, ProviderAuto, "":
		google, err := NewGoogleClassifier(cfg.CredentialsFile)
		if err != nil {
			log.Printf("[Classifier] Google provider unavailable: %v, using keyword heuristic only", err)
			return NewFallbackClassifier(nil, cfg.Timeout)
		}
		return NewFallbackClassifier(google, cfg.Timeout)

	default:
		log.Printf("[Classifier] Unknown provider %q, using keyword heuristic only", cfg.Provider)
		return NewFallbackClassifier(nil, cfg.Timeout)
	}
}
