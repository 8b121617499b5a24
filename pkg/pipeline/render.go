package pipeline

import (
	"bytes"
	"fmt"

	eqio "github.com/matzehuels/eqsteps/pkg/io"
	"github.com/matzehuels/eqsteps/pkg/render/nodelink"
	"github.com/matzehuels/eqsteps/pkg/render/sink"
)

// RenderSnapshot encodes a snapshot in each requested format. It does not
// touch the cache.
func RenderSnapshot(snap *Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(snap, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(snap *Snapshot, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(snap.Scene, svgOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(snap.Scene, pngOptions(opts)...)
	case FormatText:
		return []byte(sink.RenderText(snap.Scene, textOptions(opts)...)), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := eqio.WriteFrames(snap.Frames, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(snap.Root, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatTree:
		return nodelink.RenderSVG(nodelink.ToDOT(snap.Root, nodelink.Options{Detailed: opts.Detailed}))
	}
	return nil, ValidateFormat(format)
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.FontSize > 0 {
		out = append(out, sink.WithSVGFontSize(opts.FontSize))
	}
	if opts.Caption {
		out = append(out, sink.WithCaption())
	}
	return out
}

func pngOptions(opts Options) []sink.PNGOption {
	out := []sink.PNGOption{sink.WithScale(opts.Scale)}
	if opts.FontFile != "" {
		out = append(out, sink.WithFontFile(opts.FontFile))
	}
	if opts.FontSize > 0 {
		out = append(out, sink.WithPNGFontSize(opts.FontSize))
	}
	if opts.Caption {
		out = append(out, sink.WithPNGCaption())
	}
	return out
}

func textOptions(opts Options) []sink.TextOption {
	var out []sink.TextOption
	if opts.NoColor {
		out = append(out, sink.WithoutColor())
	}
	if opts.Caption {
		out = append(out, sink.WithTextCaption())
	}
	return out
}
