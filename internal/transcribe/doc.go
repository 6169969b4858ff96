// Package transcribe maps orthographic words to phonemic (IPA) strings.
//
// Transcription is an external concern: a Transcriber wraps either the
// espeak-ng speech engine, the OpenAI API, or a plain rune-mapping table
// for corpora that are already phonemic. Providers share the same
// interface so the pipeline does not care which one is configured, and a
// fallback wrapper can chain two of them.
//
// Because remote transcription is slow and repeat words are common, a
// persistent SQLite store can cache (language, word) → IPA across runs.
package transcribe
