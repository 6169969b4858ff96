package language

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Profile describes the symbol inventory of one language. Vowels and
// Consonants hold single-rune symbols; Diphthongs and ConsonantClusters
// hold multi-rune symbols that are matched before their single-rune
// counterparts. A Profile is immutable after New returns it.
type Profile struct {
	// Language is the tag used for transcription lookups, e.g. "en" or "pl".
	Language string

	// Vowels are the single-rune syllable nuclei.
	Vowels []string

	// Diphthongs are multi-rune nuclei, tried before single vowels.
	Diphthongs []string

	// Consonants are the single-rune consonant symbols.
	Consonants []string

	// ConsonantClusters are multi-rune consonant symbols such as
	// affricates, tried before single consonants.
	ConsonantClusters []string

	// NotSymbol is a regular expression matching every character that is
	// not part of the language's orthography. Matched characters are
	// replaced by a space before tokenization.
	NotSymbol string

	// Voice is the espeak-ng voice used to transcribe words of this
	// language, e.g. "en-us".
	Voice string
}

// New validates the given profile and returns it. The vowel and consonant
// universes must be non-empty, disjoint and free of duplicates; single-rune
// lists must contain single runes and multi-rune lists multi-rune strings.
// Symbols may not contain whitespace or "|".
func New(p Profile) (Profile, error) {
	if len(p.Vowels) == 0 && len(p.Diphthongs) == 0 {
		return Profile{}, &ProfileError{Language: p.Language, Reason: "no vowels or diphthongs defined"}
	}
	if len(p.Consonants) == 0 && len(p.ConsonantClusters) == 0 {
		return Profile{}, &ProfileError{Language: p.Language, Reason: "no consonants defined"}
	}

	seen := make(map[string]string) // symbol -> list it came from
	check := func(list string, symbols []string, wantSingle bool) error {
		for _, s := range symbols {
			if s == "" {
				return &ProfileError{Language: p.Language, Reason: fmt.Sprintf("empty symbol in %s", list)}
			}
			// Whitespace cannot survive tokenization, and "|" is the
			// list separator in pattern fingerprints.
			if strings.ContainsAny(s, " \t\r\n|") {
				return &ProfileError{Language: p.Language, Symbol: s,
					Reason: fmt.Sprintf("symbol %q in %s contains whitespace or '|'", s, list)}
			}
			n := utf8.RuneCountInString(s)
			if wantSingle && n != 1 {
				return &ProfileError{Language: p.Language, Symbol: s,
					Reason: fmt.Sprintf("%s must hold single characters, %q has %d", list, s, n)}
			}
			if !wantSingle && n < 2 {
				return &ProfileError{Language: p.Language, Symbol: s,
					Reason: fmt.Sprintf("%s must hold multi-character symbols, %q has %d", list, s, n)}
			}
			if prev, ok := seen[s]; ok {
				return &ProfileError{Language: p.Language, Symbol: s,
					Reason: fmt.Sprintf("symbol %q appears in both %s and %s", s, prev, list)}
			}
			seen[s] = list
		}
		return nil
	}

	if err := check("vowels", p.Vowels, true); err != nil {
		return Profile{}, err
	}
	if err := check("diphthongs", p.Diphthongs, false); err != nil {
		return Profile{}, err
	}
	if err := check("consonants", p.Consonants, true); err != nil {
		return Profile{}, err
	}
	if err := check("consonant clusters", p.ConsonantClusters, false); err != nil {
		return Profile{}, err
	}

	return p, nil
}

// ProfileError reports a malformed or self-contradictory Profile.
type ProfileError struct {
	Language string
	Symbol   string
	Reason   string
}

func (e *ProfileError) Error() string {
	if e.Language == "" {
		return fmt.Sprintf("invalid language profile: %s", e.Reason)
	}
	return fmt.Sprintf("invalid language profile %q: %s", e.Language, e.Reason)
}
