package choreo

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 properties of one Target simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenColor, ...) and call Update(dt) each frame, or hand it to a Scene.
// If the target reports itself disposed, the group stops immediately.
//
// TweenGroup is the lightweight path: it runs on gween tweens and has no
// delay, repeat or callbacks. Use Animation for those.
type TweenGroup struct {
	tweens [4]*gween.Tween
	props  [4]Property
	count  int
	target Target
	Done   bool
}

func newTweenGroup(t Target, duration float64, fn ease.TweenFunc, props []Property, to []float64) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: len(props), target: t}
	for i, p := range props {
		from := 0.0
		if t != nil {
			from = t.Read(p)
		}
		g.tweens[i] = gween.New(float32(from), float32(to[i]), float32(duration), fn)
		g.props[i] = p
	}
	return g
}

// Update advances all tweens by dt seconds and writes the values to the
// target. If the target has been disposed, Done is set and nothing is
// written.
func (g *TweenGroup) Update(dt float64) {
	if g == nil || g.Done {
		return
	}
	if targetGone(g.target) {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		g.target.Apply(g.props[i], float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start value.
func (g *TweenGroup) Reset() {
	if g == nil {
		return
	}
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

// TweenProperty creates a TweenGroup animating a single property from its
// current value to to.
func TweenProperty(t Target, p Property, to, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(t, duration, fn, []Property{p}, []float64{to})
}

// TweenPosition animates X and Y to the given coordinates.
func TweenPosition(t Target, toX, toY, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(t, duration, fn, []Property{PropX, PropY}, []float64{toX, toY})
}

// TweenSize animates Width and Height.
func TweenSize(t Target, toW, toH, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(t, duration, fn, []Property{PropWidth, PropHeight}, []float64{toW, toH})
}

// TweenScale animates the uniform scale.
func TweenScale(t Target, to, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(t, duration, fn, []Property{PropScale}, []float64{to})
}

// TweenColor animates all four color channels to the target color.
func TweenColor(t Target, to Color, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(t, duration, fn,
		[]Property{PropColorR, PropColorG, PropColorB, PropColorA},
		[]float64{to.R, to.G, to.B, to.A})
}

// TweenAlpha animates the opacity.
func TweenAlpha(t Target, to, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(t, duration, fn, []Property{PropOpacity}, []float64{to})
}

// TweenRotation animates the rotation in radians.
func TweenRotation(t Target, to, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(t, duration, fn, []Property{PropRotation}, []float64{to})
}
