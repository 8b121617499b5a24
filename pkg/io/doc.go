// Package io reads instruction documents and writes frame lists.
//
// # Overview
//
// An instructions document describes the terms, their measured metrics, the
// number of horizontal dividers and the list of steps. It is accepted in
// three encodings, chosen by file extension:
//
//   - .json: the canonical form
//   - .yaml / .yml: decoded with gopkg.in/yaml.v3
//   - .toml: decoded with github.com/BurntSushi/toml
//
// YAML and TOML are decoded to generic values first and then re-encoded as
// JSON, so every encoding goes through the same field names and the same
// string-or-object handling of container children.
//
// # Import
//
//	inst, err := io.ImportInstructions("steps.yaml")
//
// Import decodes only. Call [step.Instructions.Validate] to check references
// and styles before laying anything out.
//
// # Export
//
// [WriteFrames] writes a laid-out frame list as JSON, one object per frame
// in layout order, which is useful for inspecting a step or feeding the
// geometry into other tools:
//
//	[
//	  {"component": "vbox", "x": 0, "y": 0, "width": 800, "height": 62, ...},
//	  {"component": "term", "ref": "t0", "text": "x", ...}
//	]
//
// [WriteInstructions] writes instructions back out as indented JSON so an
// edited document can be saved.
package io
