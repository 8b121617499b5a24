package layout

import "github.com/matzehuels/eqsteps/pkg/errors"

// Store is the arena owning every content item of one animation. Items are
// indexed by creation order and live for the lifetime of the store; the
// same object is returned for an id in every step.
type Store struct {
	terms    []*Term
	dividers []*HDivider
	tightPad Padding
	termPad  Padding
}

// NewStore creates an empty store. termPad and tightPad are the paddings
// around terms in ordinary and tight boxes.
func NewStore(termPad, tightPad Padding) *Store {
	return &Store{termPad: termPad, tightPad: tightPad}
}

// AddTerm creates a term from its unpadded text metrics and assigns it the
// next term id.
func (s *Store) AddTerm(text string, width, height, ascent float64) *Term {
	t := &Term{
		style:     style{opacity: 1},
		ref:       Ref{Kind: RefTerm, Index: len(s.terms)},
		Text:      text,
		width:     width + s.termPad.Width(),
		height:    height + s.termPad.Height(),
		Ascent:    ascent + s.termPad.Top,
		tightDiff: s.termPad.Width() - s.tightPad.Width(),
	}
	s.terms = append(s.terms, t)
	return t
}

// AddDivider creates a divider with a minimum width and total height and
// assigns it the next divider id.
func (s *Store) AddDivider(minWidth, height float64) *HDivider {
	d := &HDivider{
		style:  style{opacity: 1},
		ref:    Ref{Kind: RefDivider, Index: len(s.dividers)},
		width:  minWidth,
		height: height,
	}
	s.dividers = append(s.dividers, d)
	return d
}

// Lookup returns the content item for r.
func (s *Store) Lookup(r Ref) (Content, error) {
	switch r.Kind {
	case RefTerm:
		if r.Index >= 0 && r.Index < len(s.terms) {
			return s.terms[r.Index], nil
		}
	case RefDivider:
		if r.Index >= 0 && r.Index < len(s.dividers) {
			return s.dividers[r.Index], nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidReference, "unknown content id %q", r.String())
}

// Resolve parses id and looks it up.
func (s *Store) Resolve(id string) (Content, error) {
	r, err := ParseRef(id)
	if err != nil {
		return nil, err
	}
	return s.Lookup(r)
}

// All returns every content item: terms by index, then dividers by index.
func (s *Store) All() []Content {
	out := make([]Content, 0, len(s.terms)+len(s.dividers))
	for _, t := range s.terms {
		out = append(out, t)
	}
	for _, d := range s.dividers {
		out = append(out, d)
	}
	return out
}

func (s *Store) Terms() []*Term        { return s.terms }
func (s *Store) Dividers() []*HDivider { return s.dividers }
func (s *Store) Len() int              { return len(s.terms) + len(s.dividers) }
