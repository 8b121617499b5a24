package cache

import "fmt"

// LayoutKeyOpts are the options that change a step's frame list.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Config string  `json:"config"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Width    float64 `json:"width"`
	Scale    float64 `json:"scale,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	Caption  bool    `json:"caption,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Config   string  `json:"config"`
}

// TransitionKeyOpts are the options that change an exported frame sequence.
type TransitionKeyOpts struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	FPS    int     `json:"fps"`
	Width  float64 `json:"width"`
	Scale  float64 `json:"scale,omitempty"`
	Config string  `json:"config"`
}

// Keyer builds cache keys. instHash is the [Hash] of the encoded
// instructions; Config fields carry a hash of the active configuration.
type Keyer interface {
	LayoutKey(instHash string, step int, opts LayoutKeyOpts) string
	ArtifactKey(instHash string, step int, opts ArtifactKeyOpts) string
	TransitionKey(instHash string, opts TransitionKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(instHash string, step int, opts LayoutKeyOpts) string {
	return hashKey("layout", instHash, step, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(instHash string, step int, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), instHash, step, opts)
}

// TransitionKey returns "transition:<hash>".
func (DefaultKeyer) TransitionKey(instHash string, opts TransitionKeyOpts) string {
	return hashKey("transition", instHash, opts)
}
