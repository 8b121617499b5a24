package errors

import "regexp"

// colorName matches palette keys: a lowercase word, optionally with digits,
// dashes or underscores after the first letter.
var colorName = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateColorName checks the syntax of a palette key. Whether the key is
// defined is the palette's concern.
func ValidateColorName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidColor, "color name cannot be empty")
	case !colorName.MatchString(name):
		return New(ErrCodeInvalidColor, "invalid color name %q", name)
	}
	return nil
}

// ValidateOpacity rejects opacities outside [0, 1].
func ValidateOpacity(v float64) error {
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidInput, "opacity %v out of range [0, 1]", v)
	}
	return nil
}

// ValidateEasing checks the control points of a cubic-bezier curve. The x
// coordinates must stay in [0, 1] so the curve remains a function of time;
// y may overshoot.
func ValidateEasing(p [4]float64) error {
	if x1, x2 := p[0], p[2]; x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return New(ErrCodeInvalidInput, "easing x control points must lie in [0, 1], got %v and %v", x1, x2)
	}
	return nil
}
