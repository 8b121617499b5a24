// Package config holds the tunable constants of the layout engine, the
// animation runtime and the CLI, loaded from TOML or YAML.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/eqsteps/pkg/anim"
	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/step"
)

const (
	DefaultWidth    = 800
	DefaultFPS      = 30
	DefaultCacheTTL = "24h"
)

type Config struct {
	Layout   LayoutConfig            `toml:"layout" yaml:"layout"`
	Content  ContentConfig           `toml:"content" yaml:"content"`
	Timings  map[string]TimingConfig `toml:"timings" yaml:"timings"`
	Palette  map[string]string       `toml:"palette" yaml:"palette"`
	Opacity  OpacityConfig           `toml:"opacity" yaml:"opacity"`
	Viewport ViewportConfig          `toml:"viewport" yaml:"viewport"`
	Cache    CacheConfig             `toml:"cache" yaml:"cache"`
}

type LayoutConfig struct {
	VBox        layout.Padding `toml:"vbox" yaml:"vbox"`
	HBox        layout.Padding `toml:"hbox" yaml:"hbox"`
	TightHBox   layout.Padding `toml:"tight_hbox" yaml:"tight_hbox"`
	SubSuper    layout.Padding `toml:"sub_super" yaml:"sub_super"`
	Root        layout.Padding `toml:"root" yaml:"root"`
	ScriptScale float64        `toml:"script_scale" yaml:"script_scale"`
	Portrusion  float64        `toml:"portrusion" yaml:"portrusion"`
}

type ContentConfig struct {
	Term            layout.Padding `toml:"term" yaml:"term"`
	TightTerm       layout.Padding `toml:"tight_term" yaml:"tight_term"`
	DividerMinWidth float64        `toml:"divider_min_width" yaml:"divider_min_width"`
	DividerHeight   float64        `toml:"divider_height" yaml:"divider_height"`
}

// TimingConfig is one animation kind's duration in milliseconds and its
// cubic-bezier control points x1, y1, x2, y2.
type TimingConfig struct {
	Millis int        `toml:"ms" yaml:"ms"`
	Easing [4]float64 `toml:"easing" yaml:"easing"`
}

type OpacityConfig struct {
	Default float64 `toml:"default" yaml:"default"`
	Faded   float64 `toml:"faded" yaml:"faded"`
	Normal  float64 `toml:"normal" yaml:"normal"`
	Focused float64 `toml:"focused" yaml:"focused"`
}

type ViewportConfig struct {
	Width float64 `toml:"width" yaml:"width"`
	FPS   int     `toml:"fps" yaml:"fps"`
}

type CacheConfig struct {
	// Backend is one of "file", "redis", "mongo" or "none".
	Backend  string `toml:"backend" yaml:"backend"`
	Dir      string `toml:"dir" yaml:"dir"`
	TTL      string `toml:"ttl" yaml:"ttl"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	MongoURI string `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db" yaml:"mongo_db"`
}

// Default returns the built-in configuration.
func Default() *Config {
	lo := layout.DefaultOptions()
	co := step.DefaultContentOptions()

	timings := make(map[string]TimingConfig, len(anim.Kinds))
	for k, t := range anim.DefaultTimings() {
		e := t.Easing
		timings[string(k)] = TimingConfig{
			Millis: int(t.Duration / time.Millisecond),
			Easing: [4]float64{e.X1, e.Y1, e.X2, e.Y2},
		}
	}

	palette := make(map[string]string)
	for name, rgb := range step.DefaultPalette() {
		palette[name] = rgb.Hex()
	}

	return &Config{
		Layout: LayoutConfig{
			VBox:        lo.Padding.VBox,
			HBox:        lo.Padding.HBox,
			TightHBox:   lo.Padding.TightHBox,
			SubSuper:    lo.Padding.SubSuper,
			Root:        lo.Padding.Root,
			ScriptScale: lo.ScriptScale,
			Portrusion:  lo.Portrusion,
		},
		Content: ContentConfig{
			Term:            co.TermPadding,
			TightTerm:       co.TightTermPadding,
			DividerMinWidth: co.DividerMinWidth,
			DividerHeight:   co.DividerHeight,
		},
		Timings: timings,
		Palette: palette,
		Opacity: OpacityConfig{
			Default: step.OpacityNormal,
			Faded:   step.OpacityFaded,
			Normal:  step.OpacityNormal,
			Focused: step.OpacityFocused,
		},
		Viewport: ViewportConfig{Width: DefaultWidth, FPS: DefaultFPS},
		Cache:    CacheConfig{Backend: "file", TTL: DefaultCacheTTL, MongoDB: "eqsteps"},
	}
}

// Load reads a TOML or YAML file over the defaults, chosen by extension,
// and validates the result. Timings and palette entries in the file are
// merged into the defaults by key; a timings entry replaces the default for
// its kind as a whole.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config file %q (want .toml or .yaml)", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML or YAML, chosen by extension.
func Save(path string, cfg *Config) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		data = buf.Bytes()
	case ".yaml", ".yml":
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config file %q (want .toml or .yaml)", path)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.Layout.ScriptScale <= 0 || c.Layout.ScriptScale > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.script_scale %v out of range (0, 1]", c.Layout.ScriptScale)
	}
	if c.Layout.Portrusion < 0 || c.Layout.Portrusion > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.portrusion %v out of range [0, 1]", c.Layout.Portrusion)
	}
	if c.Content.DividerHeight < 0 || c.Content.DividerMinWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "divider dimensions must not be negative")
	}
	for name, t := range c.Timings {
		if !knownKind(name) {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown animation kind %q in timings", name)
		}
		if t.Millis < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "timings.%s.ms must not be negative", name)
		}
		if err := errors.ValidateEasing(t.Easing); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "timings.%s", name)
		}
	}
	if _, ok := c.Palette[step.DefaultColorName]; !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "palette must define %q", step.DefaultColorName)
	}
	for name, hex := range c.Palette {
		if err := errors.ValidateColorName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette")
		}
		if _, err := ParseHex(hex); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette.%s", name)
		}
	}
	for _, o := range []float64{c.Opacity.Default, c.Opacity.Faded, c.Opacity.Normal, c.Opacity.Focused} {
		if err := errors.ValidateOpacity(o); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "opacity")
		}
	}
	if c.Viewport.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport.width must be positive")
	}
	if c.Viewport.FPS <= 0 || c.Viewport.FPS > 240 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport.fps %d out of range [1, 240]", c.Viewport.FPS)
	}
	switch c.Cache.Backend {
	case "", "none", "file":
	case "redis":
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	case "mongo":
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

func knownKind(name string) bool {
	for _, k := range anim.Kinds {
		if string(k) == name {
			return true
		}
	}
	return false
}

// LayoutOptions returns the parser options.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		Padding: layout.Paddings{
			VBox:      c.Layout.VBox,
			HBox:      c.Layout.HBox,
			TightHBox: c.Layout.TightHBox,
			SubSuper:  c.Layout.SubSuper,
			Root:      c.Layout.Root,
		},
		ScriptScale: c.Layout.ScriptScale,
		Portrusion:  c.Layout.Portrusion,
	}
}

// ContentOptions returns the term and divider options.
func (c *Config) ContentOptions() step.ContentOptions {
	return step.ContentOptions{
		TermPadding:      c.Content.Term,
		TightTermPadding: c.Content.TightTerm,
		DividerMinWidth:  c.Content.DividerMinWidth,
		DividerHeight:    c.Content.DividerHeight,
	}
}

// AnimTimings converts the timings table.
func (c *Config) AnimTimings() anim.Timings {
	out := make(anim.Timings, len(c.Timings))
	for name, t := range c.Timings {
		out[anim.Kind(name)] = anim.Timing{
			Duration: time.Duration(t.Millis) * time.Millisecond,
			Easing:   anim.Easing{X1: t.Easing[0], Y1: t.Easing[1], X2: t.Easing[2], Y2: t.Easing[3]},
		}
	}
	return out
}

// Styles returns the palette and default opacity. The config must be valid.
func (c *Config) Styles() step.Styles {
	palette := make(step.Palette, len(c.Palette))
	for name, hex := range c.Palette {
		rgb, _ := ParseHex(hex)
		palette[name] = rgb
	}
	return step.Styles{Palette: palette, DefaultOpacity: c.Opacity.Default}
}

// OpacityTier resolves a tier name ("faded", "normal", "focused") or a
// numeric opacity.
func (c *Config) OpacityTier(s string) (float64, error) {
	switch s {
	case "faded":
		return c.Opacity.Faded, nil
	case "normal":
		return c.Opacity.Normal, nil
	case "focused":
		return c.Opacity.Focused, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown opacity %q (want faded, normal, focused or a number)", s)
	}
	if err := errors.ValidateOpacity(v); err != nil {
		return 0, err
	}
	return v, nil
}

// CacheTTL parses the cache TTL. An empty TTL means no expiry.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid cache.ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// ParseHex parses a #rrggbb or #rgb color.
func ParseHex(s string) (layout.RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return layout.RGB{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return layout.RGB{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
	}
	return layout.RGB{R: float64(v >> 16 & 0xff), G: float64(v >> 8 & 0xff), B: float64(v & 0xff)}, nil
}
