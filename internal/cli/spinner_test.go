package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsProgress(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Loading")
	s.Start()
	s.SetComment("Exporting the image")
	s.Progress(1, 4)
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if got := out.String(); !strings.Contains(got, "Exporting the image  25%") {
		t.Errorf("spinner output = %q, want comment with percentage", got)
	}
	if s.Cancelled() {
		t.Error("Spinner should not report cancellation after Stop")
	}
}

func TestSpinnerProgressClamps(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "x")
	s.Progress(10, 4)
	if s.percent != 100 {
		t.Errorf("percent = %d, want 100", s.percent)
	}
	s.Progress(1, 0)
	if s.percent != 100 {
		t.Errorf("percent after zero total = %d, want unchanged 100", s.percent)
	}
	s.SetComment("y")
	if s.percent != -1 {
		t.Errorf("percent after SetComment = %d, want -1", s.percent)
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, &syncBuffer{}, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "never started")
	s.Stop()
	if out.String() != "" {
		t.Errorf("output = %q, want empty", out.String())
	}
}
