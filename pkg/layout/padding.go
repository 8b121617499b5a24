package layout

// Padding is the space reserved inside a component on each side.
type Padding struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Right  float64 `json:"right" toml:"right" yaml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
}

// Even returns a padding of n on all four sides.
func Even(n float64) Padding {
	return Padding{Top: n, Right: n, Bottom: n, Left: n}
}

// Width returns the total horizontal padding.
func (p Padding) Width() float64 { return p.Left + p.Right }

// Height returns the total vertical padding.
func (p Padding) Height() float64 { return p.Top + p.Bottom }
