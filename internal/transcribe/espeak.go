package transcribe

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// espeakStrip lists the marks removed from espeak-ng IPA output: primary
// and secondary stress, length marks, and the whitespace espeak prints
// around its result.
const espeakStrip = "ˈˌːˑ \t\r\n"

// ESpeak transcribes words by invoking the espeak-ng engine with its
// --ipa phonemization output.
type ESpeak struct {
	voice        string
	replacements []string // old/new pairs applied after stripping
}

// NewESpeak creates an espeak-ng backed transcriber for the configured
// voice. It fails when espeak-ng is not installed.
func NewESpeak(config *Config) (*ESpeak, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}
	voice := config.Voice
	if voice == "" {
		voice = config.Language
	}
	if voice == "" {
		return nil, fmt.Errorf("espeak-ng voice is required")
	}

	e := &ESpeak{voice: voice}
	if config.Language == "en" {
		// espeak-ng renders any schwa before r as the syllabic ɹ̩;
		// undo that so the vowel inventory stays closed.
		e.replacements = []string{"ɹ̩", "əɹ"}
	}
	return e, nil
}

// Transcribe runs espeak-ng in quiet IPA mode and cleans up its output.
func (e *ESpeak) Transcribe(ctx context.Context, word string) (string, error) {
	if word == "" {
		return "", &Error{Word: word, Provider: e.Name(), Err: fmt.Errorf("empty word")}
	}

	cmd := exec.CommandContext(ctx, "espeak-ng", "-q", "--ipa", "-v", e.voice, word)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", &Error{Word: word, Provider: e.Name(),
			Err: fmt.Errorf("espeak-ng failed: %w, output: %s", err, string(output))}
	}

	ipa := strings.Map(func(r rune) rune {
		if strings.ContainsRune(espeakStrip, r) {
			return -1
		}
		return r
	}, string(output))
	ipa = strings.NewReplacer(e.replacements...).Replace(ipa)

	if ipa == "" {
		return "", &Error{Word: word, Provider: e.Name(), Err: fmt.Errorf("empty transcription")}
	}
	return ipa, nil
}

// Name returns the provider name.
func (e *ESpeak) Name() string { return "espeak" }

// IsAvailable checks that the espeak-ng binary can be found.
func (e *ESpeak) IsAvailable() error { return checkESpeakInstalled() }

func checkESpeakInstalled() error {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return fmt.Errorf("espeak-ng is not installed: %w", err)
	}
	return nil
}
