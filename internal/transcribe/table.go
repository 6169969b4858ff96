package transcribe

import (
	"context"
	"fmt"
)

// Table transcribes by mapping each rune through a fixed table. Runes
// without an entry map to themselves, so a nil table is the identity
// transcriber, useful for corpora that are already phonemic and for
// tests.
type Table struct {
	mapping map[rune]string
}

// NewTable creates a rune-mapping transcriber.
func NewTable(mapping map[rune]string) *Table {
	return &Table{mapping: mapping}
}

// Transcribe maps word rune by rune.
func (t *Table) Transcribe(_ context.Context, word string) (string, error) {
	if word == "" {
		return "", &Error{Word: word, Provider: t.Name(), Err: fmt.Errorf("empty word")}
	}
	if t.mapping == nil {
		return word, nil
	}
	out := make([]byte, 0, len(word))
	for _, r := range word {
		if s, ok := t.mapping[r]; ok {
			out = append(out, s...)
		} else {
			out = append(out, string(r)...)
		}
	}
	return string(out), nil
}

// Name returns the provider name.
func (t *Table) Name() string { return "table" }

// IsAvailable always succeeds; a table needs no external service.
func (t *Table) IsAvailable() error { return nil }
