package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a one-line status on stderr while a long render runs, so
// it never mixes with artifacts written to stdout. It stops on Stop or when
// its context ends.
type spinner struct {
	out      io.Writer
	message  string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}
	once   sync.Once
}

func newSpinner(ctx context.Context, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{
		out:      os.Stderr,
		message:  message,
		interval: 80 * time.Millisecond,
		ctx:      ctx,
		cancel:   cancel,
		exited:   make(chan struct{}),
	}
}

// Start launches the drawing goroutine.
func (s *spinner) Start() {
	go s.run()
}

func (s *spinner) run() {
	defer close(s.exited)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.out, "\r%s %s", styleAccent.Render(frame), styleMuted.Render(s.message))
		}
	}
}

// Stop halts the animation and waits for the line to be cleared. Calling it
// more than once is harmless.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.exited
	})
}

// Fail stops the spinner and prints msg as an error line.
func (s *spinner) Fail(msg string) {
	s.Stop()
	printError("%s", msg)
}

// clear blanks the spinner line. Only called from run.
func (s *spinner) clear() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", utf8.RuneCountInString(s.message)+2))
}
