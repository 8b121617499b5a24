// Package pkg provides the libraries behind eqsteps, a layout and animation
// engine for step-by-step equation derivations.
//
// # Overview
//
// A derivation is a list of content items (text terms and horizontal
// dividers) and a sequence of steps. Each step arranges the content in a
// tree of containers and may recolor or fade individual items. Content keeps
// its identity across steps, so moving from one step to the next animates
// every item from its old frame to its new one.
//
// The packages are organized as follows:
//
//  1. [layout] - content store, containers, descriptors and the layout pass
//  2. [step] - instructions, style resolution, validation and edits
//  3. [anim] - easing curves, timings, animation sets and the tick scheduler
//  4. [playback] - the per-canvas controller: navigation, diffing, resize
//  5. [render] - scenes and surfaces; [render/sink] encodes SVG, PNG and text
//  6. [pipeline] - load → layout → render orchestration with caching
//  7. [cache], [config], [io], [errors], [observability] - infrastructure
//  8. [server] - HTTP preview server with playback sessions
//
// # Architecture
//
// The typical data flow:
//
//	Instructions (JSON, YAML or TOML)
//	         ↓
//	    [step] package (validate, resolve styles)
//	         ↓
//	    [layout] package (container tree → frames)
//	         ↓
//	    [playback] package (diff frames → animations, tick)
//	         ↓
//	    Surface: SVG/PNG/text, HTTP session or terminal player
//
// # Quick Start
//
//	inst, _ := io.ImportInstructions("steps.json")
//	buf := render.NewBuffer()
//	ctrl, _ := playback.New(inst, buf)
//	ctrl.Start(time.Now())
//	for ctrl.Tick(time.Now()) {
//	    draw(buf.Scene())
//	}
package pkg
