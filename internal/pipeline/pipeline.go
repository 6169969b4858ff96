package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"codeberg.org/snonux/syllabify/internal/corpus"
)

// ErrorPolicy selects what a failing line does to the run.
type ErrorPolicy int

const (
	// Abort cancels the run on the first line error and returns it,
	// identified by line number. This is the default.
	Abort ErrorPolicy = iota

	// SkipLines substitutes an empty event for a failing line and
	// continues; skipped lines are counted in Stats.
	SkipLines
)

// LineFunc processes one corpus line into an event.
type LineFunc func(ctx context.Context, line string) (corpus.Event, error)

// EmitFunc receives events strictly in corpus order.
type EmitFunc func(event corpus.Event) error

// Scanner is the corpus stream, satisfied by *bufio.Scanner.
type Scanner interface {
	Scan() bool
	Text() string
	Err() error
}

// Config tunes a pipeline run.
type Config struct {
	// Workers is the fixed worker pool size, at least 1.
	Workers int

	// ChunkSize is the number of lines per dispatch, at least 1.
	ChunkSize int

	// OnError selects the line-failure policy.
	OnError ErrorPolicy
}

// Stats summarizes a completed run.
type Stats struct {
	Lines   int64 // lines read from the corpus
	Skipped int64 // lines replaced by empty events under SkipLines
}

type chunk struct {
	lineNo int // 1-based corpus line number of lines[0]
	lines  []string
	out    []corpus.Event
	wg     *sync.WaitGroup
}

type run struct {
	cfg     Config
	fn      LineFunc
	ctx     context.Context
	cancel  context.CancelFunc
	tasks   chan chunk
	workers sync.WaitGroup
	skipped atomic.Int64

	mu  sync.Mutex
	err error
}

// Run streams the corpus through the worker pool and emits one event per
// line in corpus order. The pool is created at the start of the run and
// torn down on every exit path. Cancelling ctx stops dispatch; already
// dispatched chunks drain without doing further work.
func Run(ctx context.Context, lines Scanner, fn LineFunc, emit EmitFunc, cfg Config) (Stats, error) {
	if cfg.Workers < 1 {
		return Stats{}, fmt.Errorf("pipeline needs at least 1 worker, got %d", cfg.Workers)
	}
	if cfg.ChunkSize < 1 {
		return Stats{}, fmt.Errorf("pipeline needs a chunk size of at least 1, got %d", cfg.ChunkSize)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := &run{
		cfg:    cfg,
		fn:     fn,
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(chan chunk),
	}

	r.workers.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go r.worker()
	}
	// Workers exit only when tasks is closed, so dispatch never blocks on
	// a dead pool and shutdown is a close-and-wait on every path.
	defer r.workers.Wait()
	defer close(r.tasks)

	batchCap := cfg.Workers * cfg.ChunkSize
	batch := make([]string, 0, batchCap)
	results := make([]corpus.Event, batchCap)

	var stats Stats
	for {
		if ctx.Err() != nil {
			break // cancelled: stop dispatching new chunks
		}
		batch = batch[:0]
		for len(batch) < batchCap && lines.Scan() {
			batch = append(batch, lines.Text())
		}
		if err := lines.Err(); err != nil {
			r.fail(fmt.Errorf("read corpus: %w", err))
			break
		}
		if len(batch) == 0 {
			break
		}

		out := results[:len(batch)]
		var wg sync.WaitGroup
		for start := 0; start < len(batch); start += cfg.ChunkSize {
			end := min(start+cfg.ChunkSize, len(batch))
			wg.Add(1)
			r.tasks <- chunk{
				lineNo: int(stats.Lines) + start + 1,
				lines:  batch[start:end],
				out:    out[start:end],
				wg:     &wg,
			}
		}
		wg.Wait()

		if r.failed() != nil {
			break
		}
		if ctx.Err() != nil {
			// Cancelled mid-batch: draining workers leave their slots
			// unwritten, still holding the previous batch's events.
			break
		}
		for i := range out {
			if err := emit(out[i]); err != nil {
				r.fail(fmt.Errorf("write event: %w", err))
				break
			}
		}
		stats.Lines += int64(len(batch))
		if r.failed() != nil {
			break
		}
	}

	stats.Skipped = r.skipped.Load()
	if err := r.failed(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

func (r *run) worker() {
	defer r.workers.Done()
	for c := range r.tasks {
		r.process(c)
	}
}

func (r *run) process(c chunk) {
	defer c.wg.Done()
	defer func() {
		if rec := recover(); rec != nil {
			r.fail(fmt.Errorf("worker panicked near line %d: %v", c.lineNo, rec))
		}
	}()

	for i, line := range c.lines {
		if r.ctx.Err() != nil {
			return // run is aborting, drain without working
		}
		event, err := r.fn(r.ctx, line)
		if err != nil {
			if r.cfg.OnError == SkipLines {
				r.skipped.Add(1)
				c.out[i] = corpus.Event{}
				continue
			}
			r.fail(fmt.Errorf("line %d: %w", c.lineNo+i, err))
			return
		}
		c.out[i] = event
	}
}

// fail records the first run error and cancels in-flight work.
func (r *run) fail(err error) {
	r.mu.Lock()
	if r.err == nil {
		r.err = err
		r.cancel()
	}
	r.mu.Unlock()
}

func (r *run) failed() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
