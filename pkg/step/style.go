package step

import (
	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/layout"
)

// DefaultColorName is the palette entry used when a step has no color
// override for a content item.
const DefaultColorName = "default"

// Opacity tiers.
const (
	OpacityFaded   = 0.3
	OpacityNormal  = 0.6
	OpacityFocused = 0.9
)

// Palette maps color names to RGB values.
type Palette map[string]layout.RGB

// DefaultPalette returns the built-in named colors.
func DefaultPalette() Palette {
	return Palette{
		"red":            {R: 229, G: 57, B: 53},
		"pink":           {R: 216, G: 27, B: 96},
		"purple":         {R: 142, G: 36, B: 170},
		"blue":           {R: 30, G: 136, B: 229},
		"teal":           {R: 0, G: 137, B: 123},
		"green":          {R: 67, G: 160, B: 71},
		"orange":         {R: 251, G: 140, B: 0},
		DefaultColorName: {R: 0, G: 0, B: 0},
	}
}

// Styles resolves per-step color and opacity.
type Styles struct {
	Palette        Palette
	DefaultOpacity float64
}

// DefaultStyles returns the default palette with the normal opacity tier.
func DefaultStyles() Styles {
	return Styles{Palette: DefaultPalette(), DefaultOpacity: OpacityNormal}
}

// DefaultColor returns the RGB value of the default color.
func (s Styles) DefaultColor() layout.RGB {
	return s.Palette[DefaultColorName]
}

// ColorName returns the color name that applies to id in st.
func (s Styles) ColorName(st *Step, id string) string {
	if name, ok := st.Color[id]; ok {
		return name
	}
	return DefaultColorName
}

// Color resolves the color of id in st.
func (s Styles) Color(st *Step, id string) (layout.RGB, error) {
	name := s.ColorName(st, id)
	rgb, ok := s.Palette[name]
	if !ok {
		return layout.RGB{}, errors.New(errors.ErrCodeInvalidColor, "unknown color %q for %s", name, id)
	}
	return rgb, nil
}

// Opacity resolves the opacity of id in st.
func (s Styles) Opacity(st *Step, id string) float64 {
	if o, ok := st.Opacity[id]; ok {
		return o
	}
	return s.DefaultOpacity
}

// Resolve returns the color and opacity content c should have in st.
func (s Styles) Resolve(st *Step, c layout.Content) (layout.RGB, float64, error) {
	id := c.Ref().String()
	rgb, err := s.Color(st, id)
	if err != nil {
		return layout.RGB{}, 0, err
	}
	return rgb, s.Opacity(st, id), nil
}
