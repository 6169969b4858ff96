package syllable

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/syllabify/internal/language"
)

// Pattern is a compiled syllable matcher for one language profile. It is
// immutable and may be shared across goroutines without locking.
type Pattern struct {
	nuclei      []string // diphthongs before vowels, longest first
	consonants  []string // clusters before single consonants, longest first
	fingerprint string
}

// Compile builds a Pattern from a profile. It is pure and deterministic
// and fails only for a profile that does not validate.
func Compile(p language.Profile) (*Pattern, error) {
	p, err := language.New(p)
	if err != nil {
		return nil, fmt.Errorf("compile syllable pattern: %w", err)
	}

	return &Pattern{
		nuclei:      longestFirst(p.Diphthongs, p.Vowels),
		consonants:  longestFirst(p.ConsonantClusters, p.Consonants),
		fingerprint: fingerprint(p),
	}, nil
}

// longestFirst concatenates the multi-character and single-character
// alternatives so that longer symbols are always tried first. The sort is
// stable, preserving profile order among symbols of equal length.
func longestFirst(multi, single []string) []string {
	out := make([]string, 0, len(multi)+len(single))
	out = append(out, multi...)
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return append(out, single...)
}

// fingerprint identifies a compiled pattern for memoization. Two patterns
// compiled from identical symbol inventories share a fingerprint; profile
// validation forbids the " " and "|" separators inside symbols, so
// distinct inventories never collide.
func fingerprint(p language.Profile) string {
	var b strings.Builder
	b.WriteString(p.Language)
	for _, list := range [][]string{p.Vowels, p.Diphthongs, p.Consonants, p.ConsonantClusters} {
		b.WriteByte('|')
		b.WriteString(strings.Join(list, " "))
	}
	return b.String()
}

// Fingerprint returns the pattern's identity string.
func (p *Pattern) Fingerprint() string { return p.fingerprint }

type span struct{ start, end int }

// Syllables returns the syllables of a phonemic string, or nil if the
// string contains no nucleus. A nucleus whose neighbouring gaps contain
// symbols outside the consonant inventory yields no syllable; such
// symbols are dropped rather than guessed at.
func (p *Pattern) Syllables(phonemic string) []string {
	nuclei := p.findNuclei(phonemic)
	if len(nuclei) == 0 {
		return nil
	}

	var out []string
	for i, n := range nuclei {
		start := 0
		if i > 0 {
			start = nuclei[i-1].end
		}
		next := len(phonemic)
		if i < len(nuclei)-1 {
			next = nuclei[i+1].start
		}

		// Both the onset gap and the gap up to the next nucleus (or the
		// word end) must be consonant runs, mirroring the C*VC* shape.
		if !p.isConsonantRun(phonemic[start:n.start]) || !p.isConsonantRun(phonemic[n.end:next]) {
			continue
		}

		end := n.end
		if i == len(nuclei)-1 {
			end = next // final syllable keeps the coda
		}
		out = append(out, phonemic[start:end])
	}
	return out
}

// ConsonantRun is the fallback for words without any nucleus: the whole
// string is one syllable when it is a non-empty run of consonant symbols.
func (p *Pattern) ConsonantRun(phonemic string) []string {
	if phonemic == "" || !p.isConsonantRun(phonemic) {
		return nil
	}
	return []string{phonemic}
}

// findNuclei locates every nucleus left to right. Diphthongs are tried
// before single vowels at each position, and a matched nucleus advances
// the scan past itself so nuclei never overlap.
func (p *Pattern) findNuclei(s string) []span {
	var out []span
	for i := 0; i < len(s); {
		if w := matchAny(s[i:], p.nuclei); w > 0 {
			out = append(out, span{i, i + w})
			i += w
			continue
		}
		_, w := utf8.DecodeRuneInString(s[i:])
		i += w
	}
	return out
}

// isConsonantRun reports whether s consists entirely of consonant
// symbols, clusters tried before singles. The empty string is a valid
// (zero-length) run.
func (p *Pattern) isConsonantRun(s string) bool {
	for i := 0; i < len(s); {
		w := matchAny(s[i:], p.consonants)
		if w == 0 {
			return false
		}
		i += w
	}
	return true
}

// matchAny returns the byte width of the first alternative that prefixes
// s, or 0 if none does.
func matchAny(s string, alternatives []string) int {
	for _, a := range alternatives {
		if strings.HasPrefix(s, a) {
			return len(a)
		}
	}
	return 0
}
