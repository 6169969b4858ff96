package corpus

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"codeberg.org/snonux/syllabify/internal/language"
	"codeberg.org/snonux/syllabify/internal/syllable"
	"codeberg.org/snonux/syllabify/internal/transcribe"
)

// failFor transcribes identically except for one word that always fails.
type failFor struct {
	word string
}

func (f *failFor) Transcribe(_ context.Context, word string) (string, error) {
	if word == f.word {
		return "", &transcribe.Error{Word: word, Provider: f.Name(), Err: fmt.Errorf("cannot transcribe")}
	}
	return word, nil
}

func (f *failFor) Name() string { return "failing" }

func (f *failFor) IsAvailable() error { return nil }

func newTestProcessor(t *testing.T, tr transcribe.Transcriber, skipFailed bool) *Processor {
	t.Helper()

	pattern, err := syllable.Compile(language.Profile{
		Language:   "test",
		Vowels:     []string{"a", "o"},
		Consonants: []string{"c", "t", "d", "g"},
	})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	syllabifier, err := syllable.NewSyllabifier(pattern, 64)
	if err != nil {
		t.Fatalf("NewSyllabifier failed: %v", err)
	}
	if tr == nil {
		tr = transcribe.NewTable(nil)
	}

	processor, err := NewProcessor(Config{
		Syllabifier:   syllabifier,
		Transcriber:   tr,
		Forbidden:     regexp.MustCompile("[^a-zA-Z ]"),
		AddBoundaries: true,

		SkipFailedWords: skipFailed,
	})
	if err != nil {
		t.Fatalf("NewProcessor failed: %v", err)
	}
	return processor
}

func TestProcessLine(t *testing.T) {
	processor := newTestProcessor(t, nil, false)

	event, err := processor.ProcessLine(context.Background(), "cat! dog?")
	if err != nil {
		t.Fatalf("ProcessLine failed: %v", err)
	}
	if event.Cues != "#cat#_#dog#" {
		t.Errorf("Cues = %q, want %q", event.Cues, "#cat#_#dog#")
	}
	if event.Outcomes != "cat_dog" {
		t.Errorf("Outcomes = %q, want %q", event.Outcomes, "cat_dog")
	}
}

func TestProcessLine_NoSurvivors(t *testing.T) {
	processor := newTestProcessor(t, nil, false)

	for _, line := range []string{"", "?!42...", "   "} {
		event, err := processor.ProcessLine(context.Background(), line)
		if err != nil {
			t.Fatalf("ProcessLine(%q) failed: %v", line, err)
		}
		if !event.Empty() {
			t.Errorf("ProcessLine(%q) = %+v, want empty event", line, event)
		}
	}
}

func TestProcessLine_DropsUnparseableWordsFromBoth(t *testing.T) {
	processor := newTestProcessor(t, nil, false)

	// "xyz" has no symbol in the inventory, so it syllabifies to nothing
	// and must vanish from cues and outcomes together.
	event, err := processor.ProcessLine(context.Background(), "cat xyz dog")
	if err != nil {
		t.Fatalf("ProcessLine failed: %v", err)
	}
	if event.Outcomes != "cat_dog" {
		t.Errorf("Outcomes = %q, want %q", event.Outcomes, "cat_dog")
	}
	if event.Cues != "#cat#_#dog#" {
		t.Errorf("Cues = %q, want %q", event.Cues, "#cat#_#dog#")
	}
}

func TestProcessLine_Alignment(t *testing.T) {
	processor := newTestProcessor(t, nil, false)

	groups, err := processor.Syllables(context.Background(), "cat xyz dog gato to")
	if err != nil {
		t.Fatalf("Syllables failed: %v", err)
	}
	event, err := processor.ProcessLine(context.Background(), "cat xyz dog gato to")
	if err != nil {
		t.Fatalf("ProcessLine failed: %v", err)
	}

	words := strings.Split(event.Outcomes, "_")
	if len(groups) != len(words) {
		t.Errorf("cue groups = %d, outcome words = %d; must match 1:1", len(groups), len(words))
	}
}

func TestProcessLine_TranscriptionError(t *testing.T) {
	processor := newTestProcessor(t, &failFor{word: "dog"}, false)

	_, err := processor.ProcessLine(context.Background(), "cat dog")
	if err == nil {
		t.Fatal("expected transcription error to fail the line")
	}
	var trErr *transcribe.Error
	if !errors.As(err, &trErr) || trErr.Word != "dog" {
		t.Errorf("error = %v, want *transcribe.Error for %q", err, "dog")
	}
}

func TestProcessLine_SkipFailedWords(t *testing.T) {
	processor := newTestProcessor(t, &failFor{word: "dog"}, true)

	event, err := processor.ProcessLine(context.Background(), "cat dog gato")
	if err != nil {
		t.Fatalf("ProcessLine failed: %v", err)
	}
	if event.Outcomes != "cat_gato" {
		t.Errorf("Outcomes = %q, want %q", event.Outcomes, "cat_gato")
	}
	if event.Cues != "#cat#_#ga_to#" {
		t.Errorf("Cues = %q, want %q", event.Cues, "#cat#_#ga_to#")
	}
}

func TestTokenize(t *testing.T) {
	processor := newTestProcessor(t, nil, false)

	tests := []struct {
		line string
		want []string
	}{
		{"Cat! dog?", []string{"cat", "dog"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"?!", nil},
		{"", nil},
	}

	for _, tt := range tests {
		if got := processor.Tokenize(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
