// Package syllable segments phonemic transcriptions into syllables.
//
// A language.Profile is compiled once into a Pattern, which is immutable
// and shared read-only by any number of goroutines. Segmentation is an
// explicit scan over nucleus positions: all vowel and diphthong
// occurrences are located first, longest alternative first, and syllable
// spans are derived from consecutive nuclei. Each syllable takes the
// consonants between the previous nucleus and its own, and the final
// syllable additionally takes the trailing consonants of the word. Words
// without any nucleus fall back to a single whole-word consonant run.
//
// The Syllabifier memoizes results per word in a bounded LRU cache that
// is safe for concurrent use.
package syllable
