package transcribe

import (
	"context"
	"fmt"
)

// Transcriber converts one orthographic word into its phonemic
// representation. Implementations must be deterministic for a given word
// and must never report success with an empty transcription: an
// untranscribable word is an *Error, not an empty string.
//
// Implementations must be safe for concurrent use.
type Transcriber interface {
	// Transcribe returns the phonemic (IPA) form of word.
	Transcribe(ctx context.Context, word string) (string, error)

	// Name returns the provider name.
	Name() string

	// IsAvailable checks that the provider is configured and reachable.
	IsAvailable() error
}

// Config holds common configuration for transcription providers.
type Config struct {
	Provider string // "espeak", "openai" or "table"
	Language string // language tag, e.g. "en"
	Voice    string // espeak-ng voice, e.g. "en-us"

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string
}

// NewTranscriber creates the provider selected by config.
func NewTranscriber(config *Config) (Transcriber, error) {
	if config == nil {
		return nil, fmt.Errorf("transcriber configuration is required")
	}

	switch config.Provider {
	case "espeak":
		return NewESpeak(config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAI(config), nil

	case "table":
		return NewTable(nil), nil

	default:
		return nil, fmt.Errorf("unknown transcription provider: %s", config.Provider)
	}
}

// Error reports that a word could not be transcribed.
type Error struct {
	Word     string
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transcribe %q via %s: %v", e.Word, e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// WithFallback wraps a primary transcriber with a fallback that is tried
// when the primary fails.
type WithFallback struct {
	primary  Transcriber
	fallback Transcriber
}

// NewWithFallback creates a transcriber that falls back to secondary when
// primary fails.
func NewWithFallback(primary, fallback Transcriber) *WithFallback {
	return &WithFallback{primary: primary, fallback: fallback}
}

// Transcribe tries the primary transcriber first.
func (t *WithFallback) Transcribe(ctx context.Context, word string) (string, error) {
	ipa, err := t.primary.Transcribe(ctx, word)
	if err == nil {
		return ipa, nil
	}
	return t.fallback.Transcribe(ctx, word)
}

// Name returns both provider names.
func (t *WithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", t.primary.Name(), t.fallback.Name())
}

// IsAvailable checks that at least one provider is available.
func (t *WithFallback) IsAvailable() error {
	primaryErr := t.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}
	fallbackErr := t.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}
	return fmt.Errorf("both transcribers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
