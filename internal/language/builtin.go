package language

import "strings"

// Built-in inventories. The symbol sets follow the IPA output of the
// respective espeak-ng voices; they are configuration, not linguistics.

const (
	englishLetters = "abcdefghijklmnopqrstuvwxyz"
	polishLetters  = "aąbcćdeęfghijklłmnńoóprsśtuwyzźżqvx"
)

// English returns the profile for English IPA transcriptions.
func English() Profile {
	p, err := New(Profile{
		Language:   "en",
		Vowels:     splitRunes("æɑəɛiɪɔuʊʌ"),
		Diphthongs: []string{"aj", "aw", "ej", "oj", "ow"},
		// The combining tie (U+0361) counts as a consonant so that
		// affricates like t͡ʃ survive the consonant-run scan.
		Consonants: splitRunes("θwlmvhpɡŋszbkʃɹdnʒjtðf͡"),
		NotSymbol:  notLetters(englishLetters),
		Voice:      "en-us",
	})
	if err != nil {
		panic(err) // built-in inventories are validated by tests
	}
	return p
}

// Polish returns the profile for Polish IPA transcriptions. The nasal
// vowels ɛ̃ and ɔ̃ are two runes each and live in the diphthong slot.
func Polish() Profile {
	p, err := New(Profile{
		Language:   "pl",
		Vowels:     splitRunes("aɛiɨɔu"),
		Diphthongs: []string{"ɛ̃", "ɔ̃"},
		Consonants: splitRunes("ɕʑʐɣɲʂxwlmvpɡŋszbkdrnjtf"),
		ConsonantClusters: []string{
			"d͡z", "d͡ʑ", "d͡ʐ", "t͡ɕ", "t͡s", "t͡ʂ", "ɡʲ", "kʲ",
		},
		NotSymbol: notLetters(polishLetters),
		Voice:     "pl",
	})
	if err != nil {
		panic(err)
	}
	return p
}

// Builtin returns the built-in profile for the given language tag.
func Builtin(tag string) (Profile, bool) {
	switch strings.ToLower(tag) {
	case "en", "eng", "english":
		return English(), true
	case "pl", "pol", "polish":
		return Polish(), true
	}
	return Profile{}, false
}

func splitRunes(s string) []string {
	var out []string
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// notLetters builds a character-class expression matching everything
// outside the given lowercase alphabet (plus its uppercase forms and the
// space that tokenization splits on).
func notLetters(lower string) string {
	return "[^" + lower + strings.ToUpper(lower) + " ]"
}
