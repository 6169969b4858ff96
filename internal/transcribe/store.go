package transcribe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists transcriptions in a SQLite database keyed by
// (language, word), so repeat runs over the same vocabulary skip the
// external transcriber entirely.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the transcription database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open transcription store: %w", err)
	}
	// The store is written from pipeline workers; serialize through a
	// single connection rather than fighting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	schema := `CREATE TABLE IF NOT EXISTS transcriptions (
		language TEXT NOT NULL,
		word     TEXT NOT NULL,
		ipa      TEXT NOT NULL,
		PRIMARY KEY (language, word)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcriptions table: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the stored transcription for word, if any.
func (s *Store) Get(language, word string) (string, bool, error) {
	var ipa string
	err := s.db.QueryRow(
		"SELECT ipa FROM transcriptions WHERE language = ? AND word = ?",
		language, word).Scan(&ipa)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read transcription store: %w", err)
	}
	return ipa, true, nil
}

// Put records a transcription, replacing any previous entry.
func (s *Store) Put(language, word, ipa string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO transcriptions (language, word, ipa) VALUES (?, ?, ?)",
		language, word, ipa)
	if err != nil {
		return fmt.Errorf("write transcription store: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Cached wraps inner so that transcriptions are looked up in store first
// and successful results are written back. Store errors are not fatal to
// a run: a broken cache degrades to the inner transcriber.
func Cached(inner Transcriber, store *Store, language string) Transcriber {
	return &cached{inner: inner, store: store, language: language}
}

type cached struct {
	inner    Transcriber
	store    *Store
	language string
}

func (c *cached) Transcribe(ctx context.Context, word string) (string, error) {
	if ipa, ok, err := c.store.Get(c.language, word); err == nil && ok {
		return ipa, nil
	}

	ipa, err := c.inner.Transcribe(ctx, word)
	if err != nil {
		return "", err
	}
	if err := c.store.Put(c.language, word, ipa); err != nil {
		fmt.Printf("Warning: failed to store transcription for %q: %v\n", word, err)
	}
	return ipa, nil
}

func (c *cached) Name() string { return c.inner.Name() + " (cached)" }

func (c *cached) IsAvailable() error { return c.inner.IsAvailable() }
