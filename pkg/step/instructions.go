package step

import (
	"encoding/json"

	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/layout"
)

// Instructions is the complete description of one animation.
type Instructions struct {
	Terms     []string `json:"terms"`
	Metrics   Metrics  `json:"metrics"`
	HDividers int      `json:"hDividers"`
	Steps     []Step   `json:"steps"`
}

// Metrics holds the measured text metrics of the terms. Widths are
// parallel to [Instructions.Terms]; every term shares Height and Ascent.
type Metrics struct {
	Widths []float64 `json:"widths"`
	Height float64   `json:"height"`
	Ascent float64   `json:"ascent"`
}

// Step is one displayed state of the animation.
type Step struct {
	Root    layout.Descriptor  `json:"root"`
	Text    string             `json:"text,omitempty"`
	Color   map[string]string  `json:"color,omitempty"`
	Opacity map[string]float64 `json:"opacity,omitempty"`
}

// ContentOptions controls how content items are created from instructions.
type ContentOptions struct {
	TermPadding      layout.Padding
	TightTermPadding layout.Padding
	DividerMinWidth  float64
	DividerHeight    float64
}

// DefaultContentOptions returns a term padding of 5 with a tight
// horizontal padding of 1, and 20x10 dividers.
func DefaultContentOptions() ContentOptions {
	return ContentOptions{
		TermPadding:      layout.Even(5),
		TightTermPadding: layout.Padding{Top: 5, Right: 1, Bottom: 5, Left: 1},
		DividerMinWidth:  20,
		DividerHeight:    10,
	}
}

// NewStore creates every content item named by the instructions: one term
// per entry of Terms followed by HDividers dividers.
func (in *Instructions) NewStore(opts ContentOptions) *layout.Store {
	s := layout.NewStore(opts.TermPadding, opts.TightTermPadding)
	for i, text := range in.Terms {
		var w float64
		if i < len(in.Metrics.Widths) {
			w = in.Metrics.Widths[i]
		}
		s.AddTerm(text, w, in.Metrics.Height, in.Metrics.Ascent)
	}
	for i := 0; i < in.HDividers; i++ {
		s.AddDivider(opts.DividerMinWidth, opts.DividerHeight)
	}
	return s
}

// Step returns step n.
func (in *Instructions) Step(n int) (*Step, error) {
	if n < 0 || n >= len(in.Steps) {
		return nil, errors.New(errors.ErrCodeStepNotFound, "step %d out of range [0, %d)", n, len(in.Steps))
	}
	return &in.Steps[n], nil
}

// Clone returns a deep copy of the instructions.
func (in *Instructions) Clone() *Instructions {
	data, err := json.Marshal(in)
	if err != nil {
		panic(err)
	}
	var out Instructions
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

// ContentIDs returns every content id of the instructions: terms by index,
// then dividers.
func (in *Instructions) ContentIDs() []string {
	out := make([]string, 0, len(in.Terms)+in.HDividers)
	for i := range in.Terms {
		out = append(out, layout.Ref{Kind: layout.RefTerm, Index: i}.String())
	}
	for i := 0; i < in.HDividers; i++ {
		out = append(out, layout.Ref{Kind: layout.RefDivider, Index: i}.String())
	}
	return out
}

func (in *Instructions) hasContent(id string) bool {
	r, err := layout.ParseRef(id)
	if err != nil {
		return false
	}
	if r.Kind == layout.RefTerm {
		return r.Index < len(in.Terms)
	}
	return r.Index < in.HDividers
}
