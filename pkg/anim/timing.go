package anim

import "time"

// Kind names an animation type. Each kind has its own duration and easing.
type Kind string

const (
	KindAdd        Kind = "add"
	KindMove       Kind = "move"
	KindRemove     Kind = "remove"
	KindColor      Kind = "color"
	KindOpacity    Kind = "opacity"
	KindCanvasSize Kind = "canvasSize"
	KindProgress   Kind = "progress"
)

// Kinds lists every animation kind.
var Kinds = []Kind{KindAdd, KindMove, KindRemove, KindColor, KindOpacity, KindCanvasSize, KindProgress}

// Timing is the duration and easing of one animation kind.
type Timing struct {
	Duration time.Duration
	Easing   Easing
}

// Timings maps each kind to its timing.
type Timings map[Kind]Timing

// DefaultTimings returns the standard durations and curves.
func DefaultTimings() Timings {
	standard := Easing{X1: 0.4, Y1: 0, X2: 0.2, Y2: 1}
	flat := Easing{X1: 0.5, Y1: 0.5, X2: 0.5, Y2: 0.5}
	return Timings{
		KindAdd:        {Duration: 600 * time.Millisecond, Easing: Easing{X1: 0, Y1: 0, X2: 0.2, Y2: 1}},
		KindMove:       {Duration: 600 * time.Millisecond, Easing: standard},
		KindRemove:     {Duration: 300 * time.Millisecond, Easing: Easing{X1: 0.4, Y1: 0, X2: 1, Y2: 1}},
		KindColor:      {Duration: 300 * time.Millisecond, Easing: flat},
		KindOpacity:    {Duration: 300 * time.Millisecond, Easing: flat},
		KindCanvasSize: {Duration: 600 * time.Millisecond, Easing: standard},
		KindProgress:   {Duration: 600 * time.Millisecond, Easing: standard},
	}
}

// Of returns the timing for k, falling back to an instant linear timing.
func (t Timings) Of(k Kind) Timing {
	if v, ok := t[k]; ok {
		return v
	}
	return Timing{Easing: Linear}
}

// Longest returns the largest configured duration.
func (t Timings) Longest() time.Duration {
	var d time.Duration
	for _, v := range t {
		d = max(d, v.Duration)
	}
	return d
}
