package playback

import (
	"github.com/matzehuels/eqsteps/pkg/anim"
	"github.com/matzehuels/eqsteps/pkg/layout"
)

// Transition is the result of diffing two layouts: the animations to run
// and the drawables they mutate.
type Transition struct {
	Set       *anim.Set
	Drawables []*anim.Drawable
}

// Diff builds the transition from old to next. The frames of next must
// carry the destination step's resolved styles. A nil old is a first
// render: every content item of next is added.
//
// Content is visited in store order (terms, then dividers). Items present
// in both layouts move when their geometry changed and recolor or re-fade
// when their style differs from their current one; items only in old are
// removed; items only in next are added with their style applied at once.
// Containers are never animated.
func (c *Controller) Diff(old, next []*layout.Frame, hBefore, hAfter float64, stepBefore, stepAfter int) *Transition {
	set := anim.NewSet()
	set.Add(
		anim.NewCanvasSize(c.timings.Of(anim.KindCanvasSize), hBefore, hAfter, c.setHeight),
		anim.NewProgress(c.timings.Of(anim.KindProgress), c.progressOf(stepBefore), c.progressOf(stepAfter), c.setProgress),
	)

	before := layout.ContentFrames(old)
	after := layout.ContentFrames(next)
	var drawables []*anim.Drawable

	for _, content := range c.store.All() {
		from, inOld := before[content]
		to, inNew := after[content]
		switch {
		case inOld && inNew:
			d := anim.NewDrawable(from)
			if from.SameGeometry(to) {
				d.Frame = *to
			} else {
				set.Add(anim.NewMove(c.timings.Of(anim.KindMove), d, from, to))
			}
			if content.Color() != to.Color {
				set.Add(anim.NewColor(c.timings.Of(anim.KindColor), content, to.Color))
			}
			if content.Opacity() != to.Opacity {
				set.Add(anim.NewOpacity(c.timings.Of(anim.KindOpacity), content, to.Opacity))
			}
			drawables = append(drawables, d)

		case inOld:
			f := *from
			f.Color, f.Opacity = content.Color(), content.Opacity()
			d := anim.NewDrawable(&f)
			set.Add(anim.NewRemove(c.timings.Of(anim.KindRemove), d, &f))
			drawables = append(drawables, d)

		case inNew:
			content.SetColor(to.Color)
			content.SetOpacity(to.Opacity)
			d := anim.NewDrawable(to)
			set.Add(anim.NewAdd(c.timings.Of(anim.KindAdd), d, to))
			drawables = append(drawables, d)
		}
	}
	return &Transition{Set: set, Drawables: drawables}
}
