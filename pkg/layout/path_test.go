package layout

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/eqsteps/pkg/errors"
)

const pathDescriptor = `{"type":"vbox","children":[
	{"type":"hbox","children":["t0",{"type":"subSuper","top":["t1"],"middle":["t2"],"bottom":[]}]},
	"h0"
]}`

func TestPathOf(t *testing.T) {
	s := testStore([2]float64{10, 10}, [2]float64{10, 10}, [2]float64{10, 10})
	s.AddDivider(10, 2)
	p := NewParser(s, DefaultOptions())
	root, err := p.ParseRoot(parseDescriptor(t, pathDescriptor), 300)
	if err != nil {
		t.Fatal(err)
	}
	frames := Layout(root, 0, 0, 1, nil)

	tests := []struct {
		id   string
		want Path
	}{
		{"t0", Path{0, 0}},
		{"t1", Path{0, 1, 0, 0}},
		{"t2", Path{0, 1, 1, 0}},
		{"h0", Path{1}},
	}
	for _, tt := range tests {
		c, _ := s.Resolve(tt.id)
		got := PathOf(FrameOf(frames, c))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PathOf(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
	if got := PathOf(Root(frames)); len(got) != 0 {
		t.Errorf("root path = %v", got)
	}
}

func TestWrappedRootPath(t *testing.T) {
	s := testStore([2]float64{10, 10})
	p := NewParser(s, DefaultOptions())
	root, err := p.ParseRoot(parseDescriptor(t, `{"type":"hbox","children":["t0"]}`), 300)
	if err != nil {
		t.Fatal(err)
	}
	frames := Layout(root, 0, 0, 1, nil)
	path := PathOf(FrameOf(frames, s.Terms()[0]))
	if got := root.DescriptorPath(path); !reflect.DeepEqual(got, Path{0}) {
		t.Errorf("DescriptorPath = %v, want [0]", got)
	}
}

func TestRemoveAt(t *testing.T) {
	tests := []struct {
		name string
		path Path
		code errors.Code
		want []string
	}{
		{"content in hbox", Path{0, 0}, "", []string{"t1", "t2", "h0"}},
		{"content in part", Path{0, 1, 0, 0}, "", []string{"t0", "t2", "h0"}},
		{"whole subSuper", Path{0, 1}, "", []string{"t0", "h0"}},
		{"root", Path{}, errors.ErrCodeNotDeletable, nil},
		{"part", Path{0, 1, 2}, errors.ErrCodeNotDeletable, nil},
		{"out of range", Path{5}, errors.ErrCodeNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseDescriptor(t, pathDescriptor)
			err := d.RemoveAt(tt.path)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("RemoveAt = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := d.Refs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("refs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertAfter(t *testing.T) {
	d := parseDescriptor(t, pathDescriptor)
	if err := d.InsertAfter(Path{0, 0}, RefChild("t3")); err != nil {
		t.Fatal(err)
	}
	if err := d.InsertAfter(Path{}, RefChild("t4")); err != nil {
		t.Fatal(err)
	}
	want := []string{"t0", "t3", "t1", "t2", "h0", "t4"}
	if got := d.Refs(); !reflect.DeepEqual(got, want) {
		t.Errorf("refs = %v, want %v", got, want)
	}

	list, err := d.ChildList(Path{0, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	*list = append(*list, RefChild("t5"))
	data, _ := json.Marshal(d)
	var back Descriptor
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	sub := back.Children[0].Container.Children[2].Container
	if len(sub.Bottom) != 1 || sub.Bottom[0].Ref != "t5" {
		t.Errorf("bottom part = %+v", sub.Bottom)
	}
	if _, err := d.ChildList(Path{0, 2}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ChildList on subSuper = %v", err)
	}
}

func TestSubSuperRootHasNoDirectChildren(t *testing.T) {
	d := parseDescriptor(t, `{"type":"subSuper","top":["t1"],"middle":["t0"]}`)
	if err := d.InsertAfter(Path{}, RefChild("t2")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("InsertAfter on subSuper root = %v, want %s", err, errors.ErrCodeUnsupported)
	}
	if _, err := d.ChildList(Path{}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ChildList on subSuper root = %v, want %s", err, errors.ErrCodeUnsupported)
	}
	if got, want := d.Refs(), []string{"t1", "t0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("refs = %v, want %v", got, want)
	}
}
