package playback

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/eqsteps/pkg/anim"
	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/render"
	"github.com/matzehuels/eqsteps/pkg/step"
)

const fixture = `{
	"terms": ["x", "+", "1", "=", "y"],
	"metrics": {"widths": [20, 20, 20, 20, 20], "height": 30, "ascent": 24},
	"hDividers": 1,
	"steps": [
		{"root": {"type": "vbox", "children": [{"type": "hbox", "children": ["t0", "t1", "t2"]}]}, "text": "start"},
		{"root": {"type": "vbox", "children": [{"type": "hbox", "children": ["t2", "t1", "t0"]}]}},
		{"root": {"type": "vbox", "children": [
			{"type": "hbox", "children": ["t0", "t1", "t2"]},
			"h0",
			{"type": "subSuper", "top": ["t4"], "middle": ["t3"], "bottom": []}
		]}, "color": {"t3": "red"}, "opacity": {"t4": 0.9}}
	]
}`

var t0 = time.Unix(0, 0)

func loadInstructions(t *testing.T, raw string) *step.Instructions {
	t.Helper()
	var in step.Instructions
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &in
}

func newController(t *testing.T, raw string) (*Controller, *render.Buffer) {
	t.Helper()
	buf := render.NewBuffer()
	c, err := New(loadInstructions(t, raw), buf, WithWidth(400))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, buf
}

// settle runs the current transition to completion.
func settle(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; c.Tick(t0.Add(time.Duration(i+1) * time.Hour)); i++ {
		if i > 3 {
			t.Fatal("transition did not complete")
		}
	}
	if c.Busy() {
		t.Fatal("controller still busy after settling")
	}
}

// must fails the test when a navigation call errors or is dropped. It takes
// the call's results directly: must(t)(c.Next(now)).
func must(t *testing.T) func(bool, error) {
	t.Helper()
	return func(ok bool, err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("transition was dropped")
		}
	}
}

func content(t *testing.T, c *Controller, id string) layout.Content {
	t.Helper()
	ct, err := c.Store().Resolve(id)
	if err != nil {
		t.Fatal(err)
	}
	return ct
}

func TestFirstRenderAddsEverything(t *testing.T) {
	c, _ := newController(t, fixture)
	ok, err := c.Start(t0)
	must(t)(ok, err)

	set := c.current
	if got := set.Count(anim.KindAdd); got != 3 {
		t.Errorf("adds = %d, want 3", got)
	}
	for _, k := range []anim.Kind{anim.KindRemove, anim.KindMove, anim.KindColor, anim.KindOpacity} {
		if n := set.Count(k); n != 0 {
			t.Errorf("%s count = %d, want 0", k, n)
		}
	}
	if set.Count(anim.KindCanvasSize) != 1 || set.Count(anim.KindProgress) != 1 {
		t.Error("canvas size and progress are always emitted")
	}
}

func TestSelfDiff(t *testing.T) {
	c, _ := newController(t, fixture)
	c.Start(t0)
	settle(t, c)

	tr := c.Diff(c.frames, c.frames, c.height, c.height, c.step, c.step)
	if tr.Set.Len() != 2 {
		for _, a := range tr.Set.Animations() {
			t.Logf("unexpected %s", a.Kind())
		}
		t.Fatalf("self diff produced %d animations, want 2", tr.Set.Len())
	}
	if tr.Set.Count(anim.KindCanvasSize) != 1 || tr.Set.Count(anim.KindProgress) != 1 {
		t.Error("self diff must only contain canvas size and progress")
	}
}

func TestRemoveOnly(t *testing.T) {
	c, _ := newController(t, `{
		"terms": ["a", "b"],
		"metrics": {"widths": [20, 20], "height": 30, "ascent": 24},
		"hDividers": 0,
		"steps": [
			{"root": {"type": "vbox", "children": ["t0", "t1"]}},
			{"root": {"type": "vbox", "children": ["t0"]}}
		]
	}`)
	c.Start(t0)
	settle(t, c)
	must(t)(c.Next(t0))

	set := c.current
	if set.Count(anim.KindRemove) != 1 {
		t.Errorf("removes = %d, want 1", set.Count(anim.KindRemove))
	}
	if set.Count(anim.KindMove) != 0 || set.Count(anim.KindAdd) != 0 {
		t.Errorf("moves = %d, adds = %d, want 0", set.Count(anim.KindMove), set.Count(anim.KindAdd))
	}
	if set.Len() != 3 {
		t.Errorf("set has %d animations, want remove + canvas size + progress", set.Len())
	}
}

func TestRoundTripRestoresGeometry(t *testing.T) {
	c, _ := newController(t, fixture)
	c.Start(t0)
	settle(t, c)

	before := make(map[layout.Content]layout.Frame)
	for ct, f := range layout.ContentFrames(c.Frames()) {
		before[ct] = *f
	}

	must(t)(c.Next(t0))
	if c.current.Count(anim.KindMove) != 2 {
		t.Errorf("swapping the outer terms should move 2 items, got %d", c.current.Count(anim.KindMove))
	}
	settle(t, c)
	must(t)(c.Prev(t0))
	settle(t, c)

	after := layout.ContentFrames(c.Frames())
	if len(after) != len(before) {
		t.Fatalf("frame count changed: %d -> %d", len(before), len(after))
	}
	for ct, want := range before {
		got := after[ct]
		if got == nil || !got.SameGeometry(&want) {
			t.Errorf("%s geometry not restored: %+v vs %+v", ct.Ref(), got, want)
		}
	}
	for _, d := range c.drawables {
		if d.Detached {
			t.Errorf("%s drawable still detached after completion", d.Content.Ref())
		}
	}
}

func TestBusyDropsNavigation(t *testing.T) {
	c, _ := newController(t, fixture)
	must(t)(c.Start(t0))

	for name, nav := range map[string]func(time.Time) (bool, error){
		"next":    c.Next,
		"restart": c.Restart,
	} {
		ok, err := nav(t0)
		if ok || err != nil {
			t.Errorf("%s while busy = %v, %v; want dropped", name, ok, err)
		}
	}
	if c.Step() != 0 {
		t.Errorf("step = %d after dropped navigation", c.Step())
	}
	settle(t, c)
	must(t)(c.Next(t0))
	if c.Step() != 1 {
		t.Errorf("step = %d, want 1", c.Step())
	}
}

func TestNavigationBounds(t *testing.T) {
	c, _ := newController(t, fixture)
	c.Start(t0)
	settle(t, c)
	if ok, _ := c.Prev(t0); ok {
		t.Error("prev at first step should do nothing")
	}
	must(t)(c.GoTo(2, t0))
	settle(t, c)
	if ok, _ := c.Next(t0); ok {
		t.Error("next at last step should do nothing")
	}
	for _, n := range []int{-1, 3, 7} {
		if ok, err := c.GoTo(n, t0); ok || err != nil {
			t.Errorf("GoTo(%d) = %v, %v; want dropped", n, ok, err)
		}
	}
	if c.Step() != 2 || c.Busy() {
		t.Errorf("out-of-range GoTo moved the controller: step %d busy %v", c.Step(), c.Busy())
	}
	if c.Progress() != 1 {
		t.Errorf("progress at last step = %v, want 1", c.Progress())
	}
}

func TestDefaultStyles(t *testing.T) {
	c, _ := newController(t, fixture)
	c.Start(t0)
	settle(t, c)
	def := step.DefaultStyles()
	for _, f := range c.Scene().Frames {
		if f.Color != def.DefaultColor() || f.Opacity != step.OpacityNormal {
			t.Errorf("frame style = %v/%v, want default/%v", f.Color, f.Opacity, step.OpacityNormal)
		}
	}
}

// Added items take their destination style immediately; only their
// geometry animates.
func TestAddSnapsStyle(t *testing.T) {
	c, _ := newController(t, fixture)
	c.Start(t0)
	settle(t, c)
	must(t)(c.GoTo(2, t0))

	eq := content(t, c, "t3")
	if eq.Color() != step.DefaultPalette()["red"] {
		t.Errorf("t3 color = %v, want red before the first tick", eq.Color())
	}
	if y := content(t, c, "t4"); y.Opacity() != step.OpacityFocused {
		t.Errorf("t4 opacity = %v, want %v", y.Opacity(), step.OpacityFocused)
	}
	if n := c.current.Count(anim.KindColor) + c.current.Count(anim.KindOpacity); n != 0 {
		t.Errorf("added items must not get style animations, got %d", n)
	}
	if c.current.Count(anim.KindAdd) != 3 {
		t.Errorf("adds = %d, want 3 (t3, t4, h0)", c.current.Count(anim.KindAdd))
	}
}

func TestColorChangeAnimates(t *testing.T) {
	c, _ := newController(t, fixture)
	c.Start(t0)
	settle(t, c)
	c.GoTo(2, t0)
	settle(t, c)

	edited := c.Instructions().Clone()
	edited.Steps[2].Color = map[string]string{"t0": "blue"}
	must(t)(c.Replace(edited, t0))
	if c.current.Count(anim.KindColor) != 2 {
		t.Errorf("color animations = %d, want 2 (t0 to blue, t3 back to default)", c.current.Count(anim.KindColor))
	}
	settle(t, c)
	if got := content(t, c, "t0").Color(); got != step.DefaultPalette()["blue"] {
		t.Errorf("t0 color = %v", got)
	}
}

func TestRedrawOncePerTick(t *testing.T) {
	c, buf := newController(t, fixture)
	c.Start(t0)
	c.Tick(t0.Add(100 * time.Millisecond))
	c.Tick(t0.Add(200 * time.Millisecond))
	if buf.Redraws() != 2 {
		t.Errorf("redraws = %d, want 2", buf.Redraws())
	}
	if got := buf.Scene().Caption; got != "start" {
		t.Errorf("caption = %q", got)
	}
}

func TestCanvasHeight(t *testing.T) {
	c, buf := newController(t, fixture)
	c.Start(t0)
	settle(t, c)
	_, h := buf.Size()
	if h != layout.Root(c.Frames()).Height || h == 0 {
		t.Errorf("surface height = %v, root height = %v", h, layout.Root(c.Frames()).Height)
	}
}

func TestVBoxRootPadding(t *testing.T) {
	c, _ := newController(t, `{
		"terms": ["x"],
		"metrics": {"widths": [20], "height": 30, "ascent": 24},
		"steps": [{"root": {"type": "vbox", "children": ["t0"]}}]
	}`)
	c.Start(t0)
	settle(t, c)
	// 30 plus term padding of 5 on each side, plus vbox padding of 6.
	if c.Height() != 52 {
		t.Errorf("height = %v, want 52", c.Height())
	}
}

func TestResizeDeferredWhileBusy(t *testing.T) {
	c, _ := newController(t, fixture)
	c.Start(t0)
	if err := c.Resize(600); err != nil {
		t.Fatal(err)
	}
	if c.Width() != 400 {
		t.Errorf("width changed during transition: %v", c.Width())
	}
	settle(t, c)
	if c.Width() != 600 || layout.Root(c.Frames()).Width != 600 {
		t.Errorf("deferred width not applied: %v / %v", c.Width(), layout.Root(c.Frames()).Width)
	}

	if err := c.Resize(300); err != nil {
		t.Fatal(err)
	}
	if layout.Root(c.Frames()).Width != 300 {
		t.Error("idle resize should relayout immediately")
	}
	if err := c.Resize(0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Resize(0) = %v", err)
	}
}

func TestNewRejectsUnknownContainer(t *testing.T) {
	raw := strings.Replace(fixture, `"type": "hbox", "children": ["t2"`, `"type": "boxx", "children": ["t2"`, 1)
	c, err := New(loadInstructions(t, raw), nil)
	if c != nil {
		t.Error("no controller should be built")
	}
	if !errors.Is(err, errors.ErrCodeInvalidContainer) || !strings.Contains(err.Error(), "boxx") {
		t.Errorf("error = %v, want INVALID_CONTAINER naming boxx", err)
	}
}

func TestControllersAreIndependent(t *testing.T) {
	a, _ := newController(t, fixture)
	b, _ := newController(t, fixture)
	if a.ID() == b.ID() {
		t.Error("controller ids should differ")
	}
	a.Start(t0)
	if b.Busy() || b.Step() != -1 {
		t.Error("starting one controller affected another")
	}
}
