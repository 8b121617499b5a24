// Package render defines the drawing surface contract of the playback
// engine and the scene it draws.
//
// # Overview
//
// A [Surface] receives two calls from a controller: [Surface.Resize] when
// the required canvas height changes, and [Surface.Redraw] once per tick
// with a complete [Scene]. Surfaces never see partial updates.
//
// Encoders for scenes live in subpackages:
//
//   - [sink]: PNG (raster, via fogleman/gg), SVG, and terminal text output
//   - [nodelink]: component-tree diagrams rendered with Graphviz
//
// [Buffer] is a surface that keeps the latest scene so that it can be
// encoded on demand, which is how the CLI, the preview server and the
// interactive player consume a controller.
//
//	buf := render.NewBuffer()
//	ctrl, err := playback.New(instructions, buf)
//	...
//	png, err := sink.RenderPNG(buf.Scene())
//
// [sink]: github.com/matzehuels/eqsteps/pkg/render/sink
// [nodelink]: github.com/matzehuels/eqsteps/pkg/render/nodelink
package render
