// Package pipeline runs the load → layout → render stages shared by the
// CLI and the preview server.
//
// # Stages
//
//  1. Load: read an instructions document (JSON, YAML or TOML) and validate
//     it against the configured palette
//  2. Layout: play the document to a step on an offscreen controller and
//     capture its frames and scene
//  3. Render: encode the step as SVG, PNG, a text grid, a frame list or a
//     component tree diagram
//
// Transitions between two steps can also be exported as a PNG frame
// sequence sampled at a fixed frame rate.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := runner.Load(ctx, "steps.yaml", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifacts, err := runner.Render(ctx, doc, 2, opts)
//	svg := artifacts[pipeline.FormatSVG]
//
// Rendered artifacts are cached by a hash of the instructions, the step,
// the render options and the active configuration.
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eqsteps/pkg/cache"
	"github.com/matzehuels/eqsteps/pkg/config"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "txt"
	FormatDOT  = "dot"
	FormatTree = "tree.svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
	FormatTree: true,
}

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 1.0

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 24 * time.Hour

	// maxTransitionFrames bounds exported frame sequences.
	maxTransitionFrames = 2000
)

// Options configures a pipeline run.
type Options struct {
	Config *config.Config `json:"-"`

	Formats  []string `json:"formats,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	FontFile string   `json:"font_file,omitempty"`
	FontSize float64  `json:"font_size,omitempty"`
	Caption  bool     `json:"caption,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	FPS      int      `json:"fps,omitempty"`
	NoColor  bool     `json:"no_color,omitempty"`

	Refresh bool          `json:"-"`
	TTL     time.Duration `json:"-"`
	Logger  *log.Logger   `json:"-"`

	configHash string
	validated  bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames lists the supported formats in a stable order.
func FormatNames() []string {
	return []string{FormatSVG, FormatPNG, FormatJSON, FormatText, FormatDOT, FormatTree}
}

// ValidateAndSetDefaults checks the options and fills in defaults from the
// configuration. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = o.Config.Viewport.Width
	}
	if o.Width < 0 {
		return fmt.Errorf("width must be positive, got %v", o.Width)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return fmt.Errorf("scale must be positive, got %v", o.Scale)
	}
	if o.FPS == 0 {
		o.FPS = o.Config.Viewport.FPS
	}
	if o.FPS < 0 {
		return fmt.Errorf("fps must be positive, got %d", o.FPS)
	}
	if o.TTL == 0 {
		ttl, err := o.Config.CacheTTL()
		if err != nil {
			return err
		}
		o.TTL = ttl
		if o.TTL == 0 {
			o.TTL = DefaultTTL
		}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	hash, err := cache.HashJSON(o.Config)
	if err != nil {
		return fmt.Errorf("hash config: %w", err)
	}
	o.configHash = hash
	o.validated = true
	return nil
}

// LayoutKeyOpts returns the options that identify a cached frame list.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Width: o.Width, Config: o.configHash}
}

// ArtifactKeyOpts returns the options that identify a cached artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		Width:   o.Width,
		Caption: o.Caption,
		Config:  o.configHash,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
		k.FontSize = o.FontSize
	case FormatSVG:
		k.FontSize = o.FontSize
	case FormatDOT, FormatTree:
		k.Detailed = o.Detailed
	}
	return k
}

// TransitionKeyOpts returns the options that identify a cached frame
// sequence.
func (o *Options) TransitionKeyOpts(from, to int) cache.TransitionKeyOpts {
	return cache.TransitionKeyOpts{
		From:   from,
		To:     to,
		FPS:    o.FPS,
		Width:  o.Width,
		Scale:  o.Scale,
		Config: o.configHash,
	}
}

// Stats reports stage durations for one run.
type Stats struct {
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	RenderHit bool
}
