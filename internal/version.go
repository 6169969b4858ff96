package internal

// Version is the released version of syllabify.
const Version = "0.1.0"
