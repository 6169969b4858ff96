package eventfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"codeberg.org/snonux/syllabify/internal/corpus"
	"codeberg.org/snonux/syllabify/internal/pipeline"
)

// BuildOptions tunes a Build run.
type BuildOptions struct {
	Pipeline pipeline.Config

	// Limit processes only the first Limit corpus lines when positive.
	Limit int

	// ProgressEvery is the line cadence of progress reports; 0 means
	// every 10000 lines.
	ProgressEvery int64

	// Progress receives advisory progress output, os.Stdout when nil.
	Progress io.Writer
}

// Build streams the corpus at corpusPath through the pipeline and writes
// the event file to outPath. Progress reporting is advisory only and has
// no effect on ordering.
func Build(ctx context.Context, corpusPath, outPath string, processor *corpus.Processor, opts BuildOptions) (pipeline.Stats, error) {
	if opts.ProgressEvery == 0 {
		opts.ProgressEvery = 10000
	}
	if opts.Progress == nil {
		opts.Progress = os.Stdout
	}

	source, err := OpenCorpus(corpusPath)
	if err != nil {
		return pipeline.Stats{}, err
	}
	defer source.Close()

	var lines pipeline.Scanner = source
	if opts.Limit > 0 {
		lines = Head(lines, opts.Limit)
	}

	writer, err := NewWriter(outPath)
	if err != nil {
		return pipeline.Stats{}, err
	}

	start := time.Now()
	var emitted int64
	emit := func(event corpus.Event) error {
		if err := writer.Write(event); err != nil {
			return err
		}
		emitted++
		if emitted%opts.ProgressEvery == 0 {
			fmt.Fprintf(opts.Progress, "Processed %d lines in %.2f minutes\r",
				emitted, time.Since(start).Minutes())
		}
		return nil
	}

	stats, runErr := pipeline.Run(ctx, lines, processor.ProcessLine, emit, opts.Pipeline)

	// Keep whatever was flushed even when the run failed; a partial
	// event file plus an error beats silent truncation.
	if err := writer.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return stats, runErr
	}

	written, omitted := writer.Counts()
	fmt.Fprintf(opts.Progress, "All processed in %.2f minutes!\n", time.Since(start).Minutes())
	fmt.Fprintf(opts.Progress, "Wrote %d events to %s (%d empty lines omitted", written, outPath, omitted)
	if stats.Skipped > 0 {
		fmt.Fprintf(opts.Progress, ", %d lines skipped after errors", stats.Skipped)
	}
	fmt.Fprintln(opts.Progress, ")")

	return stats, nil
}
