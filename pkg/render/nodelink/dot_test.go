package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/eqsteps/pkg/layout"
)

func testTree() layout.Container {
	s := layout.NewStore(layout.Even(5), layout.Padding{Top: 5, Right: 1, Bottom: 5, Left: 1})
	x := s.AddTerm("x", 20, 30, 24)
	two := s.AddTerm("2", 20, 30, 24)
	d := s.AddDivider(20, 10)
	sub := layout.NewSubSuper(
		layout.NewHBox(layout.Padding{}, two),
		layout.NewTightHBox(layout.Padding{}, x),
		layout.NewHBox(layout.Padding{}),
		layout.Padding{}, 0.6, 0.45,
	)
	root := layout.NewVCenterVBox(layout.Padding{}, sub, d)
	root.SetFixedWidth(400)
	return root
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testTree(), Options{})

	for _, want := range []string{
		"digraph G {",
		`label="root"`,
		`label="subSuper"`,
		`label="top: hbox"`,
		`label="middle: tightHBox"`,
		`label="t0 x"`,
		`label="t1 2"`,
		"n0 -> n1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != 7 {
		t.Errorf("edge count = %d, want 7", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testTree(), Options{Detailed: true})
	for _, want := range []string{"400.0 ×", "portrusion 0.45", "fontcolor=\"#000000\""} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q", want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.50 200.00" width="100" height="200"`) {
		t.Errorf("normalized = %s", out)
	}
	if plain := normalizeViewBox([]byte("<svg/>")); string(plain) != "<svg/>" {
		t.Error("svg without viewBox should be unchanged")
	}
}
