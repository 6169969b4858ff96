package transcribe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

// OpenAI transcribes words with a chat-completion request asking for a
// bare IPA transcription. Calls go through a circuit breaker so that a
// failing API does not stall a long corpus run word by word.
type OpenAI struct {
	client   *openai.Client
	model    string
	language string
	breaker  *gobreaker.CircuitBreaker
}

// NewOpenAI creates an OpenAI-backed transcriber.
func NewOpenAI(config *Config) *OpenAI {
	model := config.OpenAIModel
	if model == "" {
		model = openai.GPT4oMini
	}
	language := config.Language
	if language == "" {
		language = "en"
	}

	return &OpenAI{
		client:   openai.NewClient(config.OpenAIKey),
		model:    model,
		language: language,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "openai-transcribe",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Transcribe asks the model for the IPA form of word.
func (o *OpenAI) Transcribe(ctx context.Context, word string) (string, error) {
	if word == "" {
		return "", &Error{Word: word, Provider: o.Name(), Err: fmt.Errorf("empty word")}
	}

	result, err := o.breaker.Execute(func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		req := openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleSystem,
					Content: "You are a phonetician. Answer with the IPA transcription only: " +
						"no slashes, no brackets, no stress or length marks, no explanation.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("Transcribe the %s word '%s' to IPA.", o.language, word),
				},
			},
			MaxTokens:   50,
			Temperature: 0,
		}

		resp, err := o.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("OpenAI API error: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no transcription returned")
		}
		return strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), "/[]"), nil
	})
	if err != nil {
		return "", &Error{Word: word, Provider: o.Name(), Err: err}
	}

	ipa := result.(string)
	if ipa == "" {
		return "", &Error{Word: word, Provider: o.Name(), Err: fmt.Errorf("empty transcription")}
	}
	return ipa, nil
}

// Name returns the provider name.
func (o *OpenAI) Name() string { return "openai" }

// IsAvailable checks that an API key is configured.
func (o *OpenAI) IsAvailable() error {
	if o.client == nil {
		return fmt.Errorf("OpenAI client not configured")
	}
	return nil
}
