package syllable

import (
	"fmt"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Boundary is the marker wrapped around a word's syllable sequence when
// boundaries are requested, and Empty is the result for a word that
// produced no syllables at all.
const (
	Boundary = "#"
	Empty    = Boundary + Boundary
)

// DefaultCacheSize bounds the memoization cache. Distinct word types in a
// corpus are far fewer than tokens, so even a modest cache serves almost
// every lookup; raise it for corpora with very large vocabularies.
const DefaultCacheSize = 1 << 18

type cacheKey struct {
	fingerprint string
	word        string
	boundaries  bool
}

// Syllabifier applies a compiled Pattern to transcribed words and
// memoizes the results. It is safe for concurrent use; a single instance
// is shared by all pipeline workers so that each distinct word is
// segmented at most once per process.
type Syllabifier struct {
	pattern  *Pattern
	cache    *lru.Cache[cacheKey, string]
	computed atomic.Int64
}

// NewSyllabifier creates a Syllabifier with a cache bounded to cacheSize
// entries. A cacheSize of 0 selects DefaultCacheSize.
func NewSyllabifier(pattern *Pattern, cacheSize int) (*Syllabifier, error) {
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create syllable cache: %w", err)
	}
	return &Syllabifier{pattern: pattern, cache: cache}, nil
}

// Syllabify segments the phonemic transcription of word and joins the
// syllables with underscores, wrapped in boundary markers when requested.
// Results are memoized per (pattern, word, boundaries); repeated calls
// with the same word return the cached string without re-scanning.
//
// A word whose transcription contains no nucleus falls back to the whole
// consonant run. A word that yields nothing at all produces "" (or "##"
// with boundaries), which callers treat as no content.
func (s *Syllabifier) Syllabify(word, phonemic string, addBoundaries bool) string {
	key := cacheKey{s.pattern.fingerprint, word, addBoundaries}
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	s.computed.Add(1)

	matches := s.pattern.Syllables(phonemic)
	if len(matches) == 0 {
		matches = s.pattern.ConsonantRun(phonemic)
	}
	joined := strings.Join(matches, "_")
	if addBoundaries {
		joined = Boundary + joined + Boundary
	}

	s.cache.Add(key, joined)
	return joined
}

// Computations returns how many syllabifications were actually computed,
// i.e. calls not served from the cache.
func (s *Syllabifier) Computations() int64 {
	return s.computed.Load()
}
