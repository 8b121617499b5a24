package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/eqsteps/pkg/render"
)

// basicFontHeight is the line height of gg's built-in face, used when no
// font file is configured.
const basicFontHeight = 13.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	fontPath string
	fontSize float64
	caption  bool
}

// WithScale sets the PNG scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithFontFile draws terms with a TrueType font instead of the built-in
// bitmap face.
func WithFontFile(path string) PNGOption {
	return func(r *pngRenderer) { r.fontPath = path }
}

func WithPNGFontSize(s float64) PNGOption { return func(r *pngRenderer) { r.fontSize = s } }
func WithPNGCaption() PNGOption           { return func(r *pngRenderer) { r.caption = true } }

// RenderPNG rasterizes the scene.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	dc, err := Draw(s, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Draw rasterizes the scene into a new gg context.
func Draw(s render.Scene, opts ...PNGOption) (*gg.Context, error) {
	r := pngRenderer{scale: 1, fontSize: DefaultFontSize}
	for _, opt := range opts {
		opt(&r)
	}

	w := max(1, int(math.Ceil(s.Width*r.scale)))
	h := max(1, int(math.Ceil(s.Height*r.scale)))
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	glyphScale := r.fontSize / basicFontHeight
	if r.fontPath != "" {
		if err := dc.LoadFontFace(r.fontPath, r.fontSize); err != nil {
			return nil, fmt.Errorf("load font %s: %w", r.fontPath, err)
		}
		glyphScale = 1
	}

	for _, e := range elements(s.Frames) {
		f := e.frame
		red, green, blue := f.Color.Normalized()
		dc.SetRGBA(red, green, blue, f.Opacity)
		if e.divider {
			t := dividerThickness * f.Scale
			dc.DrawRectangle(f.X, f.Y+f.Height/2-t/2, f.Width, t)
			dc.Fill()
			continue
		}
		if f.Scale <= 0 {
			continue
		}
		cx, cy := center(f)
		dc.Push()
		dc.ScaleAbout(f.Scale*glyphScale, f.Scale*glyphScale, cx, cy)
		dc.DrawStringAnchored(e.text, cx, cy, 0.5, 0.35)
		dc.Pop()
	}

	if s.Progress > 0 {
		red, green, blue := progressColor.Normalized()
		dc.SetRGB(red, green, blue)
		dc.DrawRectangle(0, s.Height-progressHeight, s.Width*s.Progress, progressHeight)
		dc.Fill()
	}
	if r.caption && s.Caption != "" {
		dc.SetRGB(0.38, 0.38, 0.38)
		dc.DrawString(s.Caption, 8, 18)
	}
	return dc, nil
}
