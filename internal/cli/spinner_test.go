package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
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

func quietSpinner(ctx context.Context, msg string) (*spinner, *syncBuffer) {
	out := &syncBuffer{}
	s := newSpinner(ctx, msg)
	s.out = out
	s.interval = 5 * time.Millisecond
	return s, out
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	s, out := quietSpinner(context.Background(), "Exporting step 0 → 1...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Exporting step 0 → 1...") {
		t.Errorf("output %q should contain the message", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Error("Stop should leave a cleared line")
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "twice")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerParentContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancelled", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"deadline", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 10*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()
			s, _ := quietSpinner(ctx, "waiting")
			s.Start()
			select {
			case <-s.exited:
			case <-time.After(time.Second):
				t.Fatal("spinner kept running after its context ended")
			}
			s.Stop()
		})
	}
}

func TestSpinnerFail(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "failing")
	s.Start()
	s.Fail("Export failed")
	select {
	case <-s.exited:
	default:
		t.Error("Fail should stop the spinner")
	}
}
