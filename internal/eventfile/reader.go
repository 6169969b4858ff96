package eventfile

import (
	"bufio"
	"fmt"
	"os"

	"codeberg.org/snonux/syllabify/internal/pipeline"
)

// maxLineSize caps a single corpus line at 1 MiB; web-scraped corpora
// occasionally contain lines far beyond bufio's default buffer.
const maxLineSize = 1 << 20

// Corpus streams the lines of a corpus file. It satisfies
// pipeline.Scanner and must be closed after the run.
type Corpus struct {
	*bufio.Scanner
	file *os.File
}

// OpenCorpus opens a line-oriented corpus file for streaming.
func OpenCorpus(path string) (*Corpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Corpus{Scanner: scanner, file: file}, nil
}

// Close closes the underlying file.
func (c *Corpus) Close() error { return c.file.Close() }

// Head wraps a scanner so that at most n lines are yielded, mirroring a
// quick look at the front of a large corpus.
func Head(lines pipeline.Scanner, n int) pipeline.Scanner {
	return &head{lines: lines, remaining: n}
}

type head struct {
	lines     pipeline.Scanner
	remaining int
}

func (h *head) Scan() bool {
	if h.remaining <= 0 {
		return false
	}
	if !h.lines.Scan() {
		return false
	}
	h.remaining--
	return true
}

func (h *head) Text() string { return h.lines.Text() }

func (h *head) Err() error { return h.lines.Err() }
