package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/syllabify/internal/corpus"
)

// sliceScanner streams a fixed set of lines, optionally failing at the end.
type sliceScanner struct {
	lines []string
	pos   int
	err   error
}

func (s *sliceScanner) Scan() bool {
	if s.pos >= len(s.lines) {
		return false
	}
	s.pos++
	return true
}

func (s *sliceScanner) Text() string { return s.lines[s.pos-1] }

func (s *sliceScanner) Err() error {
	if s.pos >= len(s.lines) {
		return s.err
	}
	return nil
}

func testLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

// jitteredUpper processes a line with an uneven delay so that workers
// finish chunks out of order.
func jitteredUpper(_ context.Context, line string) (corpus.Event, error) {
	time.Sleep(time.Duration(len(line)%4) * time.Millisecond)
	return corpus.Event{Cues: strings.ToUpper(line), Outcomes: line}, nil
}

func collect(events *[]corpus.Event) EmitFunc {
	return func(event corpus.Event) error {
		*events = append(*events, event)
		return nil
	}
}

func runAll(t *testing.T, lines []string, fn LineFunc, cfg Config) []corpus.Event {
	t.Helper()
	var events []corpus.Event
	_, err := Run(context.Background(), &sliceScanner{lines: lines}, fn, collect(&events), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return events
}

func TestRun_PreservesOrder(t *testing.T) {
	lines := testLines(103)
	want := runAll(t, lines, jitteredUpper, Config{Workers: 1, ChunkSize: 1})

	for _, workers := range []int{1, 2, 8} {
		for _, chunkSize := range []int{1, 10, 500} {
			name := fmt.Sprintf("workers=%d/chunk=%d", workers, chunkSize)
			t.Run(name, func(t *testing.T) {
				got := runAll(t, lines, jitteredUpper, Config{Workers: workers, ChunkSize: chunkSize})
				if len(got) != len(want) {
					t.Fatalf("got %d events, want %d", len(got), len(want))
				}
				for i := range want {
					if got[i] != want[i] {
						t.Fatalf("event %d = %+v, want %+v", i, got[i], want[i])
					}
				}
			})
		}
	}
}

func TestRun_Stats(t *testing.T) {
	lines := testLines(42)
	var events []corpus.Event
	stats, err := Run(context.Background(), &sliceScanner{lines: lines},
		jitteredUpper, collect(&events), Config{Workers: 3, ChunkSize: 5})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Lines != 42 || stats.Skipped != 0 {
		t.Errorf("stats = %+v, want 42 lines, 0 skipped", stats)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	fn := func(context.Context, string) (corpus.Event, error) { return corpus.Event{}, nil }
	emit := func(corpus.Event) error { return nil }

	if _, err := Run(context.Background(), &sliceScanner{}, fn, emit, Config{Workers: 0, ChunkSize: 1}); err == nil {
		t.Error("expected error for zero workers")
	}
	if _, err := Run(context.Background(), &sliceScanner{}, fn, emit, Config{Workers: 1, ChunkSize: 0}); err == nil {
		t.Error("expected error for zero chunk size")
	}
}

func TestRun_AbortOnError(t *testing.T) {
	boom := errors.New("cannot transcribe")
	fn := func(_ context.Context, line string) (corpus.Event, error) {
		if line == "line 7" {
			return corpus.Event{}, boom
		}
		return corpus.Event{Outcomes: line}, nil
	}

	var events []corpus.Event
	_, err := Run(context.Background(), &sliceScanner{lines: testLines(20)},
		fn, collect(&events), Config{Workers: 2, ChunkSize: 3})
	if err == nil {
		t.Fatal("expected run to abort")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
	if !strings.Contains(err.Error(), "line 8") {
		t.Errorf("error %q does not identify the offending line (1-based)", err)
	}
}

func TestRun_SkipLines(t *testing.T) {
	fn := func(_ context.Context, line string) (corpus.Event, error) {
		if line == "line 7" {
			return corpus.Event{}, errors.New("cannot transcribe")
		}
		return corpus.Event{Cues: line, Outcomes: line}, nil
	}

	var events []corpus.Event
	stats, err := Run(context.Background(), &sliceScanner{lines: testLines(20)},
		fn, collect(&events), Config{Workers: 2, ChunkSize: 3, OnError: SkipLines})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if len(events) != 20 {
		t.Fatalf("got %d events, want 20", len(events))
	}
	if !events[7].Empty() {
		t.Errorf("event 7 = %+v, want empty sentinel", events[7])
	}
	if events[8].Outcomes != "line 8" {
		t.Errorf("event 8 = %+v; skipping must not shift later lines", events[8])
	}
}

func TestRun_WorkerPanic(t *testing.T) {
	fn := func(_ context.Context, line string) (corpus.Event, error) {
		if line == "line 13" {
			panic("worker exploded")
		}
		return corpus.Event{Outcomes: line}, nil
	}

	var events []corpus.Event
	_, err := Run(context.Background(), &sliceScanner{lines: testLines(20)},
		fn, collect(&events), Config{Workers: 4, ChunkSize: 2})
	if err == nil {
		t.Fatal("expected a worker panic to fail the run")
	}
	if !strings.Contains(err.Error(), "panic") {
		t.Errorf("error = %v, want panic report", err)
	}
}

func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(_ context.Context, line string) (corpus.Event, error) {
		if line == "line 5" {
			cancel()
		}
		return corpus.Event{Outcomes: line}, nil
	}

	var events []corpus.Event
	_, err := Run(ctx, &sliceScanner{lines: testLines(1000)},
		fn, collect(&events), Config{Workers: 2, ChunkSize: 4})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(events) >= 1000 {
		t.Error("cancellation must stop dispatching new chunks")
	}
}

func TestRun_CancellationDropsIncompleteBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(_ context.Context, line string) (corpus.Event, error) {
		if line == "line 2" {
			cancel()
		}
		return corpus.Event{Cues: line, Outcomes: line}, nil
	}

	var events []corpus.Event
	_, err := Run(ctx, &sliceScanner{lines: testLines(4)},
		fn, collect(&events), Config{Workers: 1, ChunkSize: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	// Only the completed first batch may be emitted. The cancelled
	// batch's result slots are reused from the previous batch and still
	// hold its events, so emitting them would fabricate records.
	if len(events) != 2 {
		t.Fatalf("got %d events after cancellation, want 2: %+v", len(events), events)
	}
	for i, event := range events {
		if want := fmt.Sprintf("line %d", i); event.Outcomes != want {
			t.Errorf("event %d = %+v, want outcomes %q", i, event, want)
		}
	}
}

func TestRun_ScannerError(t *testing.T) {
	broken := errors.New("disk on fire")
	var events []corpus.Event
	_, err := Run(context.Background(),
		&sliceScanner{lines: testLines(5), err: broken},
		jitteredUpper, collect(&events), Config{Workers: 2, ChunkSize: 2})
	if !errors.Is(err, broken) {
		t.Errorf("error = %v, want wrapped scanner error", err)
	}
}

func TestRun_EmptyCorpus(t *testing.T) {
	var events []corpus.Event
	stats, err := Run(context.Background(), &sliceScanner{},
		jitteredUpper, collect(&events), Config{Workers: 2, ChunkSize: 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Lines != 0 || len(events) != 0 {
		t.Errorf("stats = %+v with %d events, want none", stats, len(events))
	}
}
