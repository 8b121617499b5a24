package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/step"
)

type frame struct {
	Component string  `json:"component"`
	Ref       string  `json:"ref,omitempty"`
	Text      string  `json:"text,omitempty"`
	Parent    *int    `json:"parent,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Scale     float64 `json:"scale"`
	Color     string  `json:"color,omitempty"`
	Opacity   float64 `json:"opacity,omitempty"`
	Tight     bool    `json:"tight,omitempty"`
}

// WriteFrames encodes a frame list as indented JSON and writes it to w.
// Frames keep their layout order; parent links are written as indexes into
// the list. Color and opacity are only written for content frames.
func WriteFrames(frames []*layout.Frame, w io.Writer) error {
	index := make(map[*layout.Frame]int, len(frames))
	for i, f := range frames {
		index[f] = i
	}

	out := make([]frame, len(frames))
	for i, f := range frames {
		fr := frame{
			X:      f.X,
			Y:      f.Y,
			Width:  f.Width,
			Height: f.Height,
			Scale:  f.Scale,
		}
		if f.Parent != nil {
			if p, ok := index[f.Parent]; ok {
				fr.Parent = &p
			}
		}
		switch c := f.Component.(type) {
		case *layout.Term:
			fr.Component = "term"
			fr.Ref = c.Ref().String()
			fr.Text = c.Text
		case *layout.HDivider:
			fr.Component = "divider"
			fr.Ref = c.Ref().String()
		case layout.Container:
			fr.Component = string(c.Kind())
		}
		if _, ok := f.Content(); ok {
			fr.Color = f.Color.Hex()
			fr.Opacity = f.Opacity
			fr.Tight = f.Tight
		}
		out[i] = fr
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFrames writes a frame list to a JSON file at path.
func ExportFrames(frames []*layout.Frame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteFrames(frames, f)
}

// WriteInstructions encodes instructions as indented JSON.
func WriteInstructions(inst *step.Instructions, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(inst); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportInstructions writes instructions to a JSON file at path.
func ExportInstructions(inst *step.Instructions, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteInstructions(inst, f)
}
