package anim

import (
	"fmt"
	"math"
)

// Easing is a cubic-bezier timing curve through (0,0), (X1,Y1), (X2,Y2) and
// (1,1). Y values outside [0, 1] produce overshoot.
type Easing struct {
	X1, Y1, X2, Y2 float64
}

// Linear is the identity easing.
var Linear = Easing{X1: 0, Y1: 0, X2: 1, Y2: 1}

const (
	newtonIterations  = 8
	newtonMinSlope    = 0.001
	subdivisionEps    = 1e-7
	subdivisionMaxIts = 20
)

// At returns the eased value for progress x in [0, 1].
func (e Easing) At(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	if e.X1 == e.Y1 && e.X2 == e.Y2 {
		return x
	}
	return bezier(e.solveT(x), e.Y1, e.Y2)
}

func (e Easing) String() string {
	return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", e.X1, e.Y1, e.X2, e.Y2)
}

// solveT finds the curve parameter whose x coordinate equals x.
func (e Easing) solveT(x float64) float64 {
	t := x
	for i := 0; i < newtonIterations; i++ {
		slope := bezierSlope(t, e.X1, e.X2)
		if math.Abs(slope) < newtonMinSlope {
			break
		}
		cur := bezier(t, e.X1, e.X2) - x
		if math.Abs(cur) < subdivisionEps {
			return t
		}
		t -= cur / slope
	}
	if t >= 0 && t <= 1 && math.Abs(bezier(t, e.X1, e.X2)-x) < subdivisionEps {
		return t
	}

	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < subdivisionMaxIts*2; i++ {
		cur := bezier(t, e.X1, e.X2) - x
		if math.Abs(cur) < subdivisionEps {
			break
		}
		if cur > 0 {
			hi = t
		} else {
			lo = t
		}
		t = (lo + hi) / 2
	}
	return t
}

// bezier evaluates one coordinate of the curve with control values a and b.
func bezier(t, a, b float64) float64 {
	return ((1-3*b+3*a)*t+(3*b-6*a))*t*t + 3*a*t
}

func bezierSlope(t, a, b float64) float64 {
	return 3*(1-3*b+3*a)*t*t + 2*(3*b-6*a)*t + 3*a
}
