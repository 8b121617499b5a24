package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/eqsteps/pkg/cache"
	eqio "github.com/matzehuels/eqsteps/pkg/io"
	"github.com/matzehuels/eqsteps/pkg/observability"
	"github.com/matzehuels/eqsteps/pkg/step"
)

// Document is a loaded and validated instructions document.
type Document struct {
	Path         string
	Instructions *step.Instructions
	// Hash identifies the document's content in cache keys.
	Hash string
}

// Steps returns the number of steps.
func (d *Document) Steps() int { return len(d.Instructions.Steps) }

// NewDocument validates inst against opts' configuration and hashes it.
func NewDocument(inst *step.Instructions, opts Options) (*Document, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := inst.Validate(opts.Config.Styles()); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := eqio.WriteInstructions(inst, &buf); err != nil {
		return nil, err
	}
	return &Document{Instructions: inst, Hash: cache.Hash(buf.Bytes())}, nil
}

// Load reads, validates and hashes the instructions at path.
func (r *Runner) Load(ctx context.Context, path string, opts Options) (*Document, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	doc, err := r.load(path, opts)
	steps := 0
	if doc != nil {
		steps = doc.Steps()
	}
	hooks.OnLoadComplete(ctx, path, steps, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded instructions", "path", path, "steps", steps, "terms", len(doc.Instructions.Terms), "duration", time.Since(start))
	return doc, nil
}

func (r *Runner) load(path string, opts Options) (*Document, error) {
	inst, err := eqio.ImportInstructions(path)
	if err != nil {
		return nil, err
	}
	doc, err := NewDocument(inst, opts)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}
