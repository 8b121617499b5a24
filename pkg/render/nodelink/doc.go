// Package nodelink renders container trees as node-link diagrams.
//
// # Overview
//
// A step's layout is a tree of containers whose leaves are terms and
// dividers. This package draws that tree with Graphviz: containers appear
// as rounded boxes labelled with their kind, content as filled boxes
// labelled with their id and text, and edges run from each container to its
// children in order. The diagram is the quickest way to see why a step
// lays out the way it does.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - Detailed: include padding and measured size in container labels,
//     and the resolved color of each content item
//
// The three parts of a sub/super container are labelled top, middle and
// bottom so that script placement can be checked at a glance.
package nodelink
