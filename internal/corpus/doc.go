// Package corpus turns raw corpus lines into learning events. A line is
// scrubbed of characters outside the language's orthography, lowercased
// and tokenized; each word is transcribed and syllabified; and the
// surviving syllable groups and words become the cues and outcomes of one
// Event. Words that syllabify to nothing are dropped from cues and
// outcomes together, so the i-th cue group always belongs to the i-th
// outcome word.
package corpus
