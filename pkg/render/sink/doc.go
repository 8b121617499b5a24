// Package sink encodes a [render.Scene] into output formats.
//
//   - [RenderSVG]: a standalone SVG document
//   - [RenderPNG]: a raster image drawn with fogleman/gg
//   - [RenderText]: a character grid for terminals, colored with lipgloss
//
// All sinks draw the same elements: each term's text centered in its frame,
// each divider as a horizontal rule across its frame, the progress line
// along the bottom edge, and the step caption when enabled.
//
// [render.Scene]: github.com/matzehuels/eqsteps/pkg/render.Scene
package sink
