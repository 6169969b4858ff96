// Package language defines the phoneme inventory of a language as an
// immutable Profile value. A Profile lists the vowels, diphthongs,
// consonants and consonant clusters of one language plus the characters
// that are not part of its orthography. Profiles are validated at
// construction so that syllable pattern compilation cannot fail later.
package language
