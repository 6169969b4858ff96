package eventfile

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"

	"codeberg.org/snonux/syllabify/internal/corpus"
)

// Writer writes gzip-compressed tab-separated event records. Empty
// events are omitted, not written as blank lines. On error the partially
// written file is left as flushed; nothing pretends success.
type Writer struct {
	file    *os.File
	buf     *bufio.Writer
	gz      *gzip.Writer
	written int64
	omitted int64
}

// NewWriter creates the event file at path, truncating any existing one.
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create event file: %w", err)
	}
	buf := bufio.NewWriter(file)
	return &Writer{file: file, buf: buf, gz: gzip.NewWriter(buf)}, nil
}

// Write appends one event as "cues\toutcomes\n", or nothing for an empty
// event.
func (w *Writer) Write(event corpus.Event) error {
	if event.Empty() {
		w.omitted++
		return nil
	}
	if _, err := fmt.Fprintf(w.gz, "%s\t%s\n", event.Cues, event.Outcomes); err != nil {
		return fmt.Errorf("write event file: %w", err)
	}
	w.written++
	return nil
}

// Counts returns how many events were written and how many empty events
// were omitted.
func (w *Writer) Counts() (written, omitted int64) {
	return w.written, w.omitted
}

// Close flushes the compressed stream and closes the file.
func (w *Writer) Close() error {
	if err := w.gz.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("finish event file: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("flush event file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close event file: %w", err)
	}
	return nil
}
