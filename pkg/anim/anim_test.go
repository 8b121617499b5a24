package anim

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/eqsteps/pkg/layout"
)

func TestEasingEndpoints(t *testing.T) {
	for kind, timing := range DefaultTimings() {
		e := timing.Easing
		if got := e.At(0); got != 0 {
			t.Errorf("%s: At(0) = %v", kind, got)
		}
		if got := e.At(1); got != 1 {
			t.Errorf("%s: At(1) = %v", kind, got)
		}
	}
}

func TestEasingCurves(t *testing.T) {
	tests := []struct {
		name string
		e    Easing
		x    float64
		want float64
	}{
		{"linear", Linear, 0.25, 0.25},
		{"flat control points are linear", Easing{0.5, 0.5, 0.5, 0.5}, 0.7, 0.7},
		// cubic-bezier(0.4, 0, 0.2, 1) at 0.5
		{"standard midpoint", Easing{0.4, 0, 0.2, 1}, 0.5, 0.7756},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.At(tt.x); math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("At(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestEasingMonotone(t *testing.T) {
	e := DefaultTimings().Of(KindAdd).Easing
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := e.At(float64(i) / 100)
		if v < prev {
			t.Fatalf("not monotone at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestEasingOvershoot(t *testing.T) {
	back := Easing{0.3, -0.5, 0.7, 1.5}
	if v := back.At(0.1); v >= 0 {
		t.Errorf("expected undershoot near start, got %v", v)
	}
}

func TestSetCompletesOnce(t *testing.T) {
	var value float64
	s := NewSet()
	s.Add(
		NewProgress(Timing{Duration: 100 * time.Millisecond, Easing: Linear}, 0, 1, func(v float64) { value = v }),
		NewCanvasSize(Timing{Duration: 300 * time.Millisecond, Easing: Linear}, 10, 40, func(float64) {}),
	)
	calls := 0
	s.OnDone(func() { calls++ })

	t0 := time.Unix(0, 0)
	s.Start(t0)
	if s.Tick(t0.Add(50 * time.Millisecond)) {
		t.Fatal("set finished early")
	}
	if math.Abs(value-0.5) > 1e-9 {
		t.Errorf("value at half = %v", value)
	}
	if s.Tick(t0.Add(150 * time.Millisecond)) {
		t.Fatal("set finished before its longest member")
	}
	if value != 1 {
		t.Errorf("finished member should hold its end value, got %v", value)
	}
	if !s.Tick(t0.Add(300 * time.Millisecond)) {
		t.Fatal("set should be done")
	}
	s.Tick(t0.Add(400 * time.Millisecond))
	if calls != 1 {
		t.Errorf("completion fired %d times, want 1", calls)
	}
	if s.Duration() != 300*time.Millisecond {
		t.Errorf("Duration() = %v", s.Duration())
	}
}

func TestEmptySetCompletesOnFirstTick(t *testing.T) {
	s := NewSet()
	done := false
	s.OnDone(func() { done = true })
	if !s.Tick(time.Now()) || !done {
		t.Error("empty set should complete immediately")
	}
}

func TestSchedulerRedrawsOncePerTick(t *testing.T) {
	var order []string
	redraws := 0
	sc := NewScheduler(func() {
		redraws++
		order = append(order, "redraw")
	})

	timing := Timing{Duration: 100 * time.Millisecond, Easing: Linear}
	mark := func(name string) func(float64) {
		return func(float64) { order = append(order, name) }
	}
	a, b := NewSet(), NewSet()
	a.Add(NewProgress(timing, 0, 1, mark("a1")), NewProgress(timing, 0, 1, mark("a2")))
	b.Add(NewProgress(timing, 0, 1, mark("b1")))

	t0 := time.Unix(0, 0)
	sc.Run(a, t0)
	sc.Run(b, t0)
	if !sc.Tick(t0.Add(10 * time.Millisecond)) {
		t.Fatal("scheduler should still be active")
	}
	if redraws != 1 {
		t.Fatalf("redraws = %d, want 1", redraws)
	}
	if order[len(order)-1] != "redraw" || len(order) != 4 {
		t.Errorf("mutations must all precede the redraw: %v", order)
	}
	if sc.Tick(t0.Add(time.Second)) {
		t.Error("scheduler should be idle after completion")
	}
	if sc.Active() || redraws != 2 {
		t.Errorf("active=%v redraws=%d", sc.Active(), redraws)
	}
	if sc.Tick(t0.Add(2 * time.Second)) || redraws != 2 {
		t.Error("idle tick should not redraw")
	}
}

func testContent() layout.Content {
	s := layout.NewStore(layout.Padding{}, layout.Padding{})
	return s.AddTerm("x", 10, 10, 8)
}

func TestMoveAndStyle(t *testing.T) {
	c := testContent()
	c.SetOpacity(0.6)
	from := &layout.Frame{Component: c, X: 0, Y: 0, Width: 10, Height: 10, Scale: 1}
	to := &layout.Frame{Component: c, X: 100, Y: 50, Width: 20, Height: 20, Scale: 2}
	d := NewDrawable(from)

	timing := Timing{Duration: time.Second, Easing: Linear}
	s := NewSet()
	s.Add(
		NewMove(timing, d, from, to),
		NewColor(timing, c, layout.RGB{R: 200}),
		NewOpacity(timing, c, 0.9),
	)
	s.Seek(500 * time.Millisecond)

	if d.Frame.X != 50 || d.Frame.Y != 25 || d.Frame.Scale != 1.5 {
		t.Errorf("mid frame = %+v", d.Frame)
	}
	r := d.Resolved()
	if r.Color.R != 100 || math.Abs(r.Opacity-0.75) > 1e-9 {
		t.Errorf("attached drawable should follow content style, got %v/%v", r.Color, r.Opacity)
	}
	s.Finish()
	if !d.Frame.SameGeometry(to) {
		t.Errorf("final frame = %+v, want %+v", d.Frame, *to)
	}
}

func TestAddAndRemove(t *testing.T) {
	c := testContent()
	to := &layout.Frame{Component: c, X: 10, Y: 10, Width: 20, Height: 20, Scale: 1, Opacity: 0.6}
	d := NewDrawable(to)
	add := NewAdd(Timing{Duration: time.Second, Easing: Linear}, d, to)
	if !d.Detached || d.Frame.Width != 0 || d.Frame.X != 20 {
		t.Fatalf("add should start collapsed at the center: %+v", d.Frame)
	}
	add.Apply(0.5)
	if d.Frame.Width != 10 || math.Abs(d.Frame.Opacity-0.3) > 1e-9 {
		t.Errorf("half-way add = %+v", d.Frame)
	}
	add.Apply(1)
	if !d.Frame.SameGeometry(to) || d.Frame.Opacity != 0.6 {
		t.Errorf("final add = %+v", d.Frame)
	}

	r := NewDrawable(to)
	rm := NewRemove(Timing{Duration: time.Second, Easing: Linear}, r, to)
	rm.Apply(1)
	if r.Frame.Width != 0 || r.Frame.Opacity != 0 || r.Frame.Scale != 0 {
		t.Errorf("final remove = %+v", r.Frame)
	}
}
