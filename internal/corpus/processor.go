package corpus

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"codeberg.org/snonux/syllabify/internal/syllable"
	"codeberg.org/snonux/syllabify/internal/transcribe"
)

// Processor converts single corpus lines into events. It holds only
// immutable or concurrency-safe collaborators and may be shared by all
// pipeline workers.
type Processor struct {
	syllabifier *syllable.Syllabifier
	transcriber transcribe.Transcriber
	forbidden   *regexp.Regexp

	// AddBoundaries wraps every word's syllable group in # markers.
	addBoundaries bool

	// skipFailedWords drops untranscribable words from cues and outcomes
	// together instead of failing the line.
	skipFailedWords bool
}

// Config configures a line processor.
type Config struct {
	Syllabifier *syllable.Syllabifier
	Transcriber transcribe.Transcriber

	// Forbidden matches every character that is not part of the
	// language's orthography; each match is replaced by one space.
	Forbidden *regexp.Regexp

	AddBoundaries   bool
	SkipFailedWords bool
}

// NewProcessor creates a line processor.
func NewProcessor(config Config) (*Processor, error) {
	if config.Syllabifier == nil {
		return nil, fmt.Errorf("line processor needs a syllabifier")
	}
	if config.Transcriber == nil {
		return nil, fmt.Errorf("line processor needs a transcriber")
	}
	if config.Forbidden == nil {
		return nil, fmt.Errorf("line processor needs a forbidden-symbol pattern")
	}
	return &Processor{
		syllabifier:     config.Syllabifier,
		transcriber:     config.Transcriber,
		forbidden:       config.Forbidden,
		addBoundaries:   config.AddBoundaries,
		skipFailedWords: config.SkipFailedWords,
	}, nil
}

// Tokenize scrubs forbidden characters to spaces, lowercases the line and
// splits it into words, discarding empty tokens.
func (p *Processor) Tokenize(line string) []string {
	clean := p.forbidden.ReplaceAllString(line, " ")
	return strings.Fields(strings.ToLower(clean))
}

// ProcessLine turns one line into an Event. A line with no surviving
// words yields an empty Event, not an error. A word that cannot be
// transcribed fails the line unless SkipFailedWords is set, in which case
// it is dropped from both cues and outcomes.
func (p *Processor) ProcessLine(ctx context.Context, line string) (Event, error) {
	cues, words, err := p.processWords(ctx, line)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Cues:     strings.Join(cues, "_"),
		Outcomes: strings.Join(words, "_"),
	}, nil
}

// Syllables returns the per-word syllable groups of a line without
// assembling an event.
func (p *Processor) Syllables(ctx context.Context, line string) ([]string, error) {
	cues, _, err := p.processWords(ctx, line)
	return cues, err
}

func (p *Processor) processWords(ctx context.Context, line string) (cues, words []string, err error) {
	for _, word := range p.Tokenize(line) {
		phonemic, err := p.transcriber.Transcribe(ctx, word)
		if err != nil {
			if p.skipFailedWords {
				fmt.Fprintf(os.Stderr, "Warning: skipping word: %v\n", err)
				continue
			}
			return nil, nil, err
		}

		group := p.syllabifier.Syllabify(word, phonemic, p.addBoundaries)
		if group == "" || group == syllable.Empty {
			continue // dropped from cues and outcomes together
		}
		cues = append(cues, group)
		words = append(words, word)
	}
	return cues, words, nil
}
