package cli

import "runtime"

// Flags holds all command-line flag values.
type Flags struct {
	// General flags
	CfgFile  string
	Language string
	Output   string
	Limit    int

	// Syllabification flags
	NoBoundaries bool
	CacheSize    int

	// Transcription flags
	Transcriber     string
	Voice           string
	TranscriptionDB string
	OpenAIModel     string

	// Pipeline flags
	Workers    int
	ChunkSize  int
	SkipErrors bool
}

// NewFlags creates a new Flags instance with default values.
func NewFlags() *Flags {
	return &Flags{
		Language:    "en",
		Transcriber: "espeak",
		Workers:     runtime.NumCPU(),
		ChunkSize:   64,
	}
}
