package layout

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/eqsteps/pkg/errors"
)

// testStore returns a store with unpadded terms of the given sizes.
func testStore(sizes ...[2]float64) *Store {
	s := NewStore(Padding{}, Padding{})
	for i, sz := range sizes {
		s.AddTerm(string(rune('a'+i)), sz[0], sz[1], sz[1])
	}
	return s
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestVBoxExample(t *testing.T) {
	s := testStore([2]float64{40, 20}, [2]float64{60, 20})
	terms := s.Terms()
	v := NewVBox(Even(10), terms[0], terms[1])

	if got := v.Width(); got != 80 {
		t.Errorf("Width() = %v, want 80", got)
	}
	if got := v.Height(); got != 60 {
		t.Errorf("Height() = %v, want 60", got)
	}

	frames := Layout(v, 0, 0, 1, nil)
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if Root(frames).Component != v {
		t.Error("root frame must be last")
	}

	tests := []struct {
		term       *Term
		x, y, w, h float64
	}{
		{terms[0], 20, 10, 40, 20},
		{terms[1], 10, 30, 60, 20},
	}
	for _, tt := range tests {
		f := FrameOf(frames, tt.term)
		if f == nil {
			t.Fatalf("no frame for %s", tt.term)
		}
		if f.X != tt.x || f.Y != tt.y || f.Width != tt.w || f.Height != tt.h {
			t.Errorf("%s frame = {%v %v %v %v}, want {%v %v %v %v}",
				tt.term, f.X, f.Y, f.Width, f.Height, tt.x, tt.y, tt.w, tt.h)
		}
		if f.Parent != Root(frames) {
			t.Errorf("%s parent is not the vbox frame", tt.term)
		}
	}
}

func TestHBoxSizing(t *testing.T) {
	s := testStore([2]float64{40, 20}, [2]float64{60, 30})
	terms := s.Terms()
	h := NewHBox(Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}, terms[0], terms[1])

	if got := h.Width(); got != 106 {
		t.Errorf("Width() = %v, want 106", got)
	}
	if got := h.Height(); got != 34 {
		t.Errorf("Height() = %v, want 34", got)
	}

	frames := Layout(h, 0, 0, 1, nil)
	a := FrameOf(frames, terms[0])
	b := FrameOf(frames, terms[1])
	if a.X != 4 || b.X != 44 {
		t.Errorf("x positions = %v, %v; want 4, 44", a.X, b.X)
	}
	// vertically centered in the 30-high inner area
	if a.Y != 6 || b.Y != 1 {
		t.Errorf("y positions = %v, %v; want 6, 1", a.Y, b.Y)
	}
}

func TestFixedSizeOverrides(t *testing.T) {
	s := testStore([2]float64{40, 20})
	v := NewVBox(Padding{}, s.Terms()[0])
	v.SetFixedWidth(500)
	v.SetFixedHeight(300)
	if v.Width() != 500 || v.Height() != 300 {
		t.Errorf("size = %vx%v, want 500x300", v.Width(), v.Height())
	}
}

func TestTightHBox(t *testing.T) {
	s := NewStore(Even(5), Padding{Top: 5, Right: 1, Bottom: 5, Left: 1})
	x := s.AddTerm("x", 10, 20, 16)
	if x.Width() != 20 || x.TightWidth() != 12 {
		t.Fatalf("term widths = %v/%v, want 20/12", x.Width(), x.TightWidth())
	}

	tight := NewTightHBox(Padding{}, x)
	if tight.Kind() != KindTightHBox {
		t.Errorf("Kind() = %v", tight.Kind())
	}
	if got := tight.Width(); got != 12 {
		t.Errorf("Width() = %v, want 12", got)
	}
	frames := Layout(tight, 0, 0, 1, nil)
	f := FrameOf(frames, x)
	if !f.Tight || f.Width != 12 {
		t.Errorf("term frame tight=%v width=%v", f.Tight, f.Width)
	}
	if Root(frames).Component != tight {
		t.Error("root frame should reference the tight box")
	}
}

func TestDividerStretch(t *testing.T) {
	s := testStore([2]float64{100, 20})
	d := s.AddDivider(10, 4)
	v := NewVBox(Padding{}, s.Terms()[0], d)
	frames := Layout(v, 0, 0, 1, nil)
	f := FrameOf(frames, d)
	if f.Width != 100 || f.X != 0 || f.Y != 20 {
		t.Errorf("divider frame = {%v %v %v}, want {0 20 100}", f.X, f.Y, f.Width)
	}
}

func TestScaleComposes(t *testing.T) {
	s := testStore([2]float64{10, 10}, [2]float64{20, 20}, [2]float64{10, 10})
	terms := s.Terms()
	sub := NewSubSuper(
		NewHBox(Padding{}, terms[0]),
		NewTightHBox(Padding{}, terms[1]),
		NewHBox(Padding{}),
		Padding{}, 0.5, 0.5,
	)
	inner := NewSubSuper(
		NewHBox(Padding{}, terms[2]),
		NewTightHBox(Padding{}, sub),
		NewHBox(Padding{}),
		Padding{}, 0.5, 0.5,
	)
	frames := Layout(inner, 0, 0, 2, nil)

	if got := FrameOf(frames, terms[1]).Scale; got != 2 {
		t.Errorf("base scale = %v, want 2", got)
	}
	if got := FrameOf(frames, terms[0]).Scale; got != 1 {
		t.Errorf("script scale = %v, want 1", got)
	}
	if got := FrameOf(frames, terms[2]).Scale; got != 1 {
		t.Errorf("outer script scale = %v, want 1", got)
	}
	if got := FrameOf(frames, terms[0]).Width; got != 10 {
		t.Errorf("script frame width = %v, want 10", got)
	}
}

func TestSubSuperGeometry(t *testing.T) {
	s := testStore([2]float64{20, 10}, [2]float64{40, 40}, [2]float64{30, 10})
	terms := s.Terms()
	sub := NewSubSuper(
		NewHBox(Padding{}, terms[0]),
		NewTightHBox(Padding{}, terms[1]),
		NewHBox(Padding{}, terms[2]),
		Padding{}, 0.5, 0.4,
	)
	if got := sub.Width(); got != 40+15 {
		t.Errorf("Width() = %v, want 55", got)
	}
	// 10*0.5*0.6 + 40 + 10*0.5*0.6
	if got := sub.Height(); !approx(got, 46) {
		t.Errorf("Height() = %v, want 46", got)
	}

	frames := Layout(sub, 0, 0, 1, nil)
	top := FrameOf(frames, terms[0])
	base := FrameOf(frames, terms[1])
	bottom := FrameOf(frames, terms[2])
	if top.X != 40 || bottom.X != 40 {
		t.Errorf("scripts should start right of the base, got %v and %v", top.X, bottom.X)
	}
	if !approx(base.Y, 3) {
		t.Errorf("base y = %v, want 3", base.Y)
	}
	// bottom overlaps the base by portrusion * script height
	if !approx(bottom.Y, 3+40-2) {
		t.Errorf("bottom y = %v, want 41", bottom.Y)
	}
	if !approx(bottom.Y+bottom.Height, sub.Height()) {
		t.Errorf("bottom edge %v does not reach height %v", bottom.Y+bottom.Height, sub.Height())
	}
}

func TestVCenterVBox(t *testing.T) {
	s := testStore([2]float64{40, 20})
	root := NewVCenterVBox(Padding{}, s.Terms()[0])
	root.SetFixedWidth(200)
	root.SetFixedHeight(100)
	frames := Layout(root, 0, 0, 1, nil)
	f := FrameOf(frames, s.Terms()[0])
	if f.X != 80 || f.Y != 40 {
		t.Errorf("term at (%v, %v), want (80, 40)", f.X, f.Y)
	}
	if Root(frames).Height != 100 {
		t.Errorf("root height = %v", Root(frames).Height)
	}
}

func TestHitTest(t *testing.T) {
	s := testStore([2]float64{40, 20}, [2]float64{60, 20})
	terms := s.Terms()
	inner := NewHBox(Padding{}, terms[0])
	v := NewVBox(Even(10), inner, terms[1])
	frames := Layout(v, 0, 0, 1, nil)

	tests := []struct {
		name string
		x, y float64
		want Component
	}{
		{"term inside hbox", 25, 15, terms[0]},
		{"second term", 15, 35, terms[1]},
		{"padding hits root", 2, 2, v},
		{"outside", 500, 500, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := HitTest(frames, tt.x, tt.y)
			if tt.want == nil {
				if f != nil {
					t.Errorf("got %T, want nil", f.Component)
				}
				return
			}
			if f == nil || f.Component != tt.want {
				t.Errorf("HitTest(%v, %v) = %v, want %v", tt.x, tt.y, f, tt.want)
			}
		})
	}
}

func TestRefRoundTrip(t *testing.T) {
	s := testStore([2]float64{1, 1}, [2]float64{1, 1}, [2]float64{1, 1})
	s.AddDivider(10, 2)
	for _, c := range s.All() {
		id := c.Ref().String()
		got, err := s.Resolve(id)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", id, err)
		}
		if got != c {
			t.Errorf("Resolve(%q) returned a different object", id)
		}
		if got.Ref().String() != id {
			t.Errorf("id round trip: %q -> %q", id, got.Ref().String())
		}
	}
}

func TestStoreOrder(t *testing.T) {
	s := NewStore(Padding{}, Padding{})
	d := s.AddDivider(10, 2)
	a := s.AddTerm("a", 1, 1, 1)
	b := s.AddTerm("b", 1, 1, 1)
	got := s.All()
	want := []Content{a, b, d}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All() order wrong: %v", got)
	}
}

func TestParseRefErrors(t *testing.T) {
	for _, id := range []string{"", "t", "x1", "t-1", "t1.5", "h 2", "T1"} {
		if _, err := ParseRef(id); !errors.Is(err, errors.ErrCodeInvalidReference) {
			t.Errorf("ParseRef(%q) error = %v, want INVALID_REFERENCE", id, err)
		}
	}
	s := testStore([2]float64{1, 1})
	if _, err := s.Resolve("t7"); !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("Resolve(t7) error = %v", err)
	}
}

func parseDescriptor(t *testing.T, raw string) Descriptor {
	t.Helper()
	var d Descriptor
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal descriptor: %v", err)
	}
	return d
}

func TestParse(t *testing.T) {
	s := testStore([2]float64{10, 10}, [2]float64{10, 10}, [2]float64{10, 10})
	s.AddDivider(10, 2)
	p := NewParser(s, DefaultOptions())

	d := parseDescriptor(t, `{"type":"vbox","children":[
		{"type":"hbox","children":["t0","t1"]},
		"h0",
		{"type":"subSuper","top":["t2"],"middle":[],"bottom":[]}
	]}`)
	c, err := p.Parse(d)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, ok := c.(*VBox)
	if !ok {
		t.Fatalf("got %T, want *VBox", c)
	}
	if len(v.Children()) != 3 {
		t.Fatalf("got %d children", len(v.Children()))
	}
	if _, ok := v.Children()[2].(*SubSuper); !ok {
		t.Errorf("third child is %T", v.Children()[2])
	}
	if v.Padding() != Even(6) {
		t.Errorf("vbox padding = %v", v.Padding())
	}
}

func TestParseErrors(t *testing.T) {
	s := testStore([2]float64{10, 10})
	p := NewParser(s, DefaultOptions())

	tests := []struct {
		name string
		raw  string
		code errors.Code
		text string
	}{
		{"unknown type", `{"type":"boxx","children":["t0"]}`, errors.ErrCodeInvalidContainer, "boxx"},
		{"nested unknown type", `{"type":"vbox","children":[{"type":"boxx"}]}`, errors.ErrCodeInvalidContainer, "boxx"},
		{"missing type", `{"children":["t0"]}`, errors.ErrCodeInvalidContainer, "missing type"},
		{"unknown ref", `{"type":"hbox","children":["t9"]}`, errors.ErrCodeInvalidReference, "t9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := p.Parse(parseDescriptor(t, tt.raw))
			if c != nil {
				t.Error("expected no partial tree")
			}
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			if !strings.Contains(err.Error(), tt.text) {
				t.Errorf("error %q does not mention %q", err, tt.text)
			}
		})
	}
}

func TestChildUnmarshalRejectsNumbers(t *testing.T) {
	var d Descriptor
	if err := json.Unmarshal([]byte(`{"type":"vbox","children":[3]}`), &d); err == nil {
		t.Error("expected error for numeric child")
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	s := testStore([2]float64{10, 10}, [2]float64{10, 10}, [2]float64{10, 10})
	s.AddDivider(10, 2)
	p := NewParser(s, DefaultOptions())

	tests := []struct {
		name string
		raw  string
	}{
		{"vbox root", `{"type":"vbox","children":[{"type":"hbox","children":["t0","t1"]},"h0"]}`},
		{"hbox root", `{"type":"hbox","children":["t0",{"type":"tightHBox","children":["t1"]}]}`},
		{"sub super", `{"type":"vbox","children":[{"type":"subSuper","top":["t0"],"middle":["t1"],"bottom":["t2"],"portrusion":0.3}]}`},
		{"sub super default portrusion", `{"type":"vbox","children":[{"type":"subSuper","middle":["t1"],"bottom":["t2"]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseDescriptor(t, tt.raw)
			root, err := p.ParseRoot(d, 400)
			if err != nil {
				t.Fatalf("ParseRoot: %v", err)
			}
			got := ToDescriptor(root)
			if !reflect.DeepEqual(got, d) {
				a, _ := json.Marshal(got)
				t.Errorf("round trip mismatch:\n got  %s\n want %s", a, tt.raw)
			}
			if !reflect.DeepEqual(got.Refs(), d.Refs()) {
				t.Errorf("refs = %v, want %v", got.Refs(), d.Refs())
			}
		})
	}
}

func TestParseRootFixedWidth(t *testing.T) {
	s := testStore([2]float64{10, 10})
	p := NewParser(s, DefaultOptions())
	root, err := p.ParseRoot(parseDescriptor(t, `{"type":"vbox","children":["t0"]}`), 640)
	if err != nil {
		t.Fatal(err)
	}
	if root.Width() != 640 {
		t.Errorf("root width = %v, want 640", root.Width())
	}
	if root.Kind() != KindVBox {
		t.Errorf("root kind = %v", root.Kind())
	}
}

func TestParseRootPadding(t *testing.T) {
	s := testStore([2]float64{20, 15}, [2]float64{10, 5})
	p := NewParser(s, DefaultOptions())

	tests := []struct {
		name string
		raw  string
		want float64
	}{
		// A vbox root keeps the vbox padding around its stacked children.
		{"vbox root", `{"type":"vbox","children":["t0","t1"]}`, 15 + 5 + 12},
		// A wrapped hbox carries its own padding; the root adds none.
		{"hbox root", `{"type":"hbox","children":["t0"]}`, 15 + 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := p.ParseRoot(parseDescriptor(t, tt.raw), 200)
			if err != nil {
				t.Fatal(err)
			}
			if !approx(root.Height(), tt.want) {
				t.Errorf("root height = %v, want %v", root.Height(), tt.want)
			}
		})
	}
}

func TestEditableBox(t *testing.T) {
	s := testStore([2]float64{10, 10}, [2]float64{20, 10}, [2]float64{30, 10})
	terms := s.Terms()
	h := NewHBox(Padding{}, terms[0], terms[2])
	h.InsertChild(1, terms[1])
	if h.IndexOf(terms[1]) != 1 || h.Width() != 60 {
		t.Errorf("after insert index=%d width=%v", h.IndexOf(terms[1]), h.Width())
	}
	if !h.RemoveChild(terms[0]) || h.IndexOf(terms[0]) != -1 {
		t.Error("RemoveChild failed")
	}
	if h.RemoveChild(terms[0]) {
		t.Error("removing twice should report false")
	}
	got := ContentUnder(NewVBox(Padding{}, h))
	if len(got) != 2 || got[0] != terms[1] || got[1] != terms[2] {
		t.Errorf("ContentUnder = %v", got)
	}
}

func TestStyleSnapshot(t *testing.T) {
	s := testStore([2]float64{10, 10})
	term := s.Terms()[0]
	red := RGB{R: 229, G: 57, B: 53}
	frames := Layout(term, 0, 0, 1, func(Content) (RGB, float64) { return red, 0.3 })
	if frames[0].Color != red || frames[0].Opacity != 0.3 {
		t.Errorf("snapshot = %v/%v", frames[0].Color, frames[0].Opacity)
	}
	term.SetOpacity(0.9)
	frames = Layout(term, 0, 0, 1, nil)
	if frames[0].Opacity != 0.9 {
		t.Errorf("nil style should snapshot current opacity, got %v", frames[0].Opacity)
	}
}

func TestRGB(t *testing.T) {
	c := RGB{R: 0, G: 100, B: 255}.Lerp(RGB{R: 100, G: 100, B: 255}, 0.5)
	if c.R != 50 {
		t.Errorf("Lerp R = %v", c.R)
	}
	if got := (RGB{R: 229, G: 57, B: 53}).Hex(); got != "#e53935" {
		t.Errorf("Hex() = %q", got)
	}
	if got := (RGB{R: 300, G: -4}).Hex(); got != "#ff0000" {
		t.Errorf("Hex() should clamp, got %q", got)
	}
}
