package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info passes info", log.InfoLevel, func(l *log.Logger) { l.Info("x") }, true},
		{"info drops debug", log.InfoLevel, func(l *log.Logger) { l.Debug("x") }, false},
		{"debug passes debug", log.DebugLevel, func(l *log.Logger) { l.Debug("x") }, true},
		{"warn drops info", log.WarnLevel, func(l *log.Logger) { l.Info("x") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
}

func TestStopwatch(t *testing.T) {
	var buf bytes.Buffer
	sw := startStopwatch(newLogger(&buf, log.InfoLevel))
	sw.count(true)
	sw.count(false)
	sw.count(false)
	sw.done("Rendered 3 step(s)")

	out := buf.String()
	for _, want := range []string{"Rendered 3 step(s)", "elapsed=", "cached=1", "fresh=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
