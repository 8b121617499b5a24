// Package cli implements the eqsteps command-line interface.
//
// The commands load a derivation document, lay out its steps and turn them
// into artifacts: per-step SVG, PNG, text and frame JSON, PNG sequences of
// the transition between two steps, and a diagram of the component tree.
// play animates the derivation in the terminal and serve exposes it over
// HTTP. Rendered artifacts go through the configured cache.
//
// # Commands
//
//   - steps: list the steps of a document
//   - layout: print the frame list of one step
//   - render: write one or more formats per step
//   - export: write the transition between two steps as PNG frames
//   - play: interactive terminal player
//   - tree: component tree as DOT or SVG
//   - serve: HTTP preview server
//   - easing: plot the easing curve of each animation kind
//   - config: print or initialise the configuration
//   - cache: inspect and clear the artifact cache
//
// # Logging
//
// All commands log through one charmbracelet logger on stderr; --verbose
// (-v) lowers its level to debug.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w with centisecond timestamps
// ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch times a batch of artifact renders and counts how many were
// served from the cache. Not safe for concurrent use.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
	cached int
	fresh  int
}

func startStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// count records one finished render.
func (s *stopwatch) count(cached bool) {
	if cached {
		s.cached++
	} else {
		s.fresh++
	}
}

// done logs msg with the elapsed time and the cache split.
func (s *stopwatch) done(msg string) {
	s.logger.Info(msg,
		"elapsed", time.Since(s.start).Round(time.Millisecond),
		"cached", s.cached,
		"fresh", s.fresh)
}
