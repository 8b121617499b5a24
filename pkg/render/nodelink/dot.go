package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/eqsteps/pkg/layout"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes sizes and padding in container labels and the
	// current color in content labels.
	Detailed bool
}

// ToDOT converts a container tree to Graphviz DOT format.
func ToDOT(root layout.Container, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	w := dotWriter{buf: &buf, opts: opts}
	w.node(root, "")
	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	opts Options
	next int
}

// node writes c and its subtree and returns c's node id.
func (w *dotWriter) node(c layout.Component, role string) string {
	id := "n" + strconv.Itoa(w.next)
	w.next++

	switch v := c.(type) {
	case layout.Content:
		fmt.Fprintf(w.buf, "  %s [%s];\n", id, strings.Join(w.contentAttrs(v), ", "))
		return id
	case layout.Container:
		fmt.Fprintf(w.buf, "  %s [%s];\n", id, strings.Join(w.containerAttrs(v, role), ", "))
		roles := childRoles(v)
		for i, child := range v.Children() {
			childID := w.node(child, roles[i])
			fmt.Fprintf(w.buf, "  %s -> %s;\n", id, childID)
		}
	}
	return id
}

func childRoles(c layout.Container) []string {
	roles := make([]string, len(c.Children()))
	if _, ok := c.(*layout.SubSuper); ok {
		copy(roles, []string{"top", "middle", "bottom"})
	}
	return roles
}

func (w *dotWriter) containerAttrs(c layout.Container, role string) []string {
	label := string(c.Kind())
	if _, ok := c.(*layout.VCenterVBox); ok {
		label = "root"
	}
	if role != "" {
		label = role + ": " + label
	}
	if w.opts.Detailed {
		p := c.Padding()
		label += fmt.Sprintf("\n%.1f × %.1f", c.Width(), c.Height())
		label += fmt.Sprintf("\npad %g %g %g %g", p.Top, p.Right, p.Bottom, p.Left)
		if s, ok := c.(*layout.SubSuper); ok {
			label += fmt.Sprintf("\nscript %.2f portrusion %.2f", s.ScriptScale(), s.Portrusion())
		}
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if role != "" {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func (w *dotWriter) contentAttrs(c layout.Content) []string {
	label := c.Ref().String()
	switch v := c.(type) {
	case *layout.Term:
		label += " " + v.Text
	case *layout.HDivider:
		label += " ───"
	}
	if w.opts.Detailed {
		label += fmt.Sprintf("\n%.1f × %.1f", c.Width(), c.Height())
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		"shape=box",
		"style=filled",
		"fillcolor=\"#e3f2fd\"",
	}
	if w.opts.Detailed {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", c.Color().Hex()))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := renderDOT(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.PNG)
}

func renderDOT(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
