package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/eqsteps/pkg/render"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily string
	fontSize   float64
	caption    bool
	background string
}

func WithFontFamily(f string) SVGOption   { return func(r *svgRenderer) { r.fontFamily = f } }
func WithSVGFontSize(s float64) SVGOption { return func(r *svgRenderer) { r.fontSize = s } }
func WithCaption() SVGOption              { return func(r *svgRenderer) { r.caption = true } }
func WithBackground(c string) SVGOption   { return func(r *svgRenderer) { r.background = c } }

// RenderSVG renders the scene as an SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: "Roboto, sans-serif", fontSize: DefaultFontSize}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if s.Caption != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(s.Caption))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	for _, e := range elements(s.Frames) {
		f := e.frame
		if e.divider {
			fmt.Fprintf(&buf, `  <rect class="divider" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%.3f"/>`+"\n",
				f.X, f.Y+f.Height/2-dividerThickness*f.Scale/2, f.Width, dividerThickness*f.Scale, f.Color.Hex(), f.Opacity)
			continue
		}
		if f.Scale <= 0 {
			continue
		}
		cx, cy := center(f)
		fmt.Fprintf(&buf, `  <text class="term" x="%.2f" y="%.2f" font-family="%s" font-size="%.2f" text-anchor="middle" dominant-baseline="central" fill="%s" fill-opacity="%.3f">%s</text>`+"\n",
			cx, cy, r.fontFamily, r.fontSize*f.Scale, f.Color.Hex(), f.Opacity, html.EscapeString(e.text))
	}

	if s.Progress > 0 {
		fmt.Fprintf(&buf, `  <rect class="progress" x="0" y="%.2f" width="%.2f" height="%.1f" fill="%s"/>`+"\n",
			s.Height-progressHeight, s.Width*s.Progress, progressHeight, progressColor.Hex())
	}
	if r.caption && s.Caption != "" {
		fmt.Fprintf(&buf, `  <text class="caption" x="8" y="%.2f" font-family="%s" font-size="14" fill="#616161">%s</text>`+"\n",
			18.0, r.fontFamily, html.EscapeString(s.Caption))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
