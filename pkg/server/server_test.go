package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/pipeline"
	"github.com/matzehuels/eqsteps/pkg/step"
)

func testInstructions() *step.Instructions {
	return &step.Instructions{
		Terms:   []string{"a", "+", "b"},
		Metrics: step.Metrics{Widths: []float64{20, 20, 20}, Height: 30, Ascent: 24},
		Steps: []step.Step{
			{Root: layout.Descriptor{Type: layout.KindHBox, Children: []layout.Child{
				layout.RefChild("t0"), layout.RefChild("t1"), layout.RefChild("t2"),
			}}, Text: "first"},
			{Root: layout.Descriptor{Type: layout.KindHBox, Children: []layout.Child{
				layout.RefChild("t2"), layout.RefChild("t1"), layout.RefChild("t0"),
			}}, Text: "swapped"},
		},
	}
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestServer(t *testing.T) (*Server, *clock) {
	t.Helper()
	doc, err := pipeline.NewDocument(testInstructions(), pipeline.Options{})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	clk := &clock{now: time.Unix(1000, 0)}
	s, err := New(pipeline.NewRunner(nil, nil, nil), doc, Options{
		Pipeline: pipeline.Options{Width: 300},
		Now:      clk.Now,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, clk
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestStaticEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/healthz", http.StatusOK, "application/json", `"status":"ok"`},
		{"/steps", http.StatusOK, "application/json", `"captions":["first","swapped"]`},
		{"/steps/0/layout", http.StatusOK, "application/json", `"ref": "t2"`},
		{"/steps/1.svg", http.StatusOK, "image/svg+xml", "<svg"},
		{"/steps/1.png", http.StatusOK, "image/png", "PNG"},
		{"/steps/0.svg?width=500", http.StatusOK, "image/svg+xml", `width="500"`},
		{"/steps/5.svg", http.StatusNotFound, "application/json", "STEP_NOT_FOUND"},
		{"/steps/0.svg?width=abc", http.StatusBadRequest, "application/json", "INVALID_INPUT"},
		{"/steps/x.svg", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.contentType != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.contentType) {
				t.Errorf("content type = %q, want %q", rec.Header().Get("Content-Type"), tt.contentType)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body does not contain %q: %.200s", tt.contains, rec.Body.String())
			}
		})
	}
}

func TestSessionPlayback(t *testing.T) {
	s, clk := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/sessions")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[sessionResponse](t, rec)
	if created.ID == "" || created.Step != 0 || !created.Busy {
		t.Fatalf("created = %+v, want step 0 animating", created)
	}
	base := "/sessions/" + created.ID

	// Navigation is dropped while the first render animates.
	nav := decode[navigateResponse](t, do(t, s, http.MethodPost, base+"/next"))
	if nav.Accepted {
		t.Error("next should be dropped while busy")
	}

	clk.Advance(time.Second)
	state := decode[sessionResponse](t, do(t, s, http.MethodGet, base))
	if state.Busy {
		t.Error("transition should be done after a second")
	}
	if len(state.Frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(state.Frames))
	}

	nav = decode[navigateResponse](t, do(t, s, http.MethodPost, base+"/next"))
	if !nav.Accepted || nav.Step != 1 || !nav.Busy {
		t.Fatalf("next = %+v", nav)
	}

	clk.Advance(300 * time.Millisecond)
	mid := decode[sessionResponse](t, do(t, s, http.MethodGet, base))
	if !mid.Busy || mid.Progress <= 0 || mid.Progress >= 1 {
		t.Errorf("mid transition = busy %v progress %v", mid.Busy, mid.Progress)
	}

	done := decode[sessionResponse](t, do(t, s, http.MethodPost, base+"/skip"))
	if done.Busy || done.Progress != 1 {
		t.Errorf("after skip = busy %v progress %v", done.Busy, done.Progress)
	}

	svg := do(t, s, http.MethodGet, base+"/scene.svg")
	if !strings.Contains(svg.Body.String(), "<svg") {
		t.Error("scene.svg did not return svg")
	}

	if rec := do(t, s, http.MethodPost, base+"/goto/9"); rec.Code != http.StatusNotFound {
		t.Errorf("goto out of range = %d, want 404", rec.Code)
	}

	resized := decode[sessionResponse](t, do(t, s, http.MethodPost, base+"/resize?width=640"))
	if resized.Width != 640 {
		t.Errorf("width after resize = %v", resized.Width)
	}
	if rec := do(t, s, http.MethodPost, base+"/resize?width=-1"); rec.Code != http.StatusBadRequest {
		t.Errorf("negative resize = %d, want 400", rec.Code)
	}

	if rec := do(t, s, http.MethodDelete, base); rec.Code != http.StatusNoContent {
		t.Errorf("delete = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, base); rec.Code != http.StatusNotFound {
		t.Errorf("deleted session = %d, want 404", rec.Code)
	}
}

func TestSessionEviction(t *testing.T) {
	s, clk := newTestServer(t)
	s.opts.MaxSessions = 2

	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, decode[sessionResponse](t, do(t, s, http.MethodPost, "/sessions")).ID)
		clk.Advance(time.Second)
	}
	if len(s.sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(s.sessions))
	}
	if rec := do(t, s, http.MethodGet, "/sessions/"+ids[0]); rec.Code != http.StatusNotFound {
		t.Error("oldest session should be evicted")
	}

	clk.Advance(time.Hour)
	do(t, s, http.MethodPost, "/sessions")
	if len(s.sessions) != 1 {
		t.Errorf("expired sessions should be dropped, have %d", len(s.sessions))
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
