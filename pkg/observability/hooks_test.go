package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type countingCache struct {
	NoopCacheHooks
	hits int
}

func (c *countingCache) OnCacheHit(context.Context, string) { c.hits++ }

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("default pipeline hooks = %T", Pipeline())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("default http hooks = %T", HTTP())
	}

	c := &countingCache{}
	SetCacheHooks(c)
	SetCacheHooks(nil)
	Cache().OnCacheHit(context.Background(), "frames")
	Cache().OnCacheMiss(context.Background(), "frames")
	if c.hits != 1 {
		t.Errorf("hits = %d, want 1", c.hits)
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("after Reset cache hooks = %T", Cache())
	}
}

func TestLogHooks(t *testing.T) {
	t.Cleanup(Reset)
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	Install(LogHooks{Logger: logger})

	ctx := context.Background()
	tests := []struct {
		name string
		emit func()
		want []string
	}{
		{"load", func() { Pipeline().OnLoadComplete(ctx, "steps.json", 4, time.Millisecond, nil) },
			[]string{"loaded", "source=steps.json", "steps=4"}},
		{"failed render", func() { Pipeline().OnRenderComplete(ctx, "png", 0, time.Millisecond, errors.New("no font")) },
			[]string{"WARN", "rendered", "format=png", "no font"}},
		{"transition", func() { Playback().OnTransitionStart("c1", -1, 0, 14) },
			[]string{"transition", "from=-1", "to=0", "animations=14"}},
		{"dropped", func() { Playback().OnTransitionDropped("c1", 2) },
			[]string{"navigation dropped", "to=2"}},
		{"cache", func() { Cache().OnCacheSet(ctx, "artifact", 1024) },
			[]string{"cache set", "kind=artifact", "bytes=1024"}},
		{"http", func() { HTTP().OnResponse(ctx, "GET", "/steps/1.svg", 200, time.Millisecond) },
			[]string{"response", "path=/steps/1.svg", "status=200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.emit()
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}
