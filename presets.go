package choreo

// AnimateProperty returns an animation of property p from its current value
// on t to to, bound to t.
func AnimateProperty(t Target, p Property, to, duration float64) *Animation {
	from := 0.0
	if t != nil {
		from = t.Read(p)
	}
	return NewAnimation(from, to, duration).Bind(t, p)
}

// AnimatePropertyFrom is AnimateProperty with an explicit start value.
func AnimatePropertyFrom(t Target, p Property, from, to, duration float64) *Animation {
	return NewAnimation(from, to, duration).Bind(t, p)
}

// FadeIn animates opacity 0 to 1.
func FadeIn(t Target, duration float64) *Animation {
	return AnimatePropertyFrom(t, PropOpacity, 0, 1, duration)
}

// FadeOut animates opacity 1 to 0.
func FadeOut(t Target, duration float64) *Animation {
	return AnimatePropertyFrom(t, PropOpacity, 1, 0, duration)
}

// ScaleIn grows from 0 to 1 with a slight overshoot.
func ScaleIn(t Target, duration float64) *Animation {
	return AnimatePropertyFrom(t, PropScale, 0, 1, duration).WithEasing(EaseOutBack)
}

// ScaleOut shrinks from 1 to 0, pulling back first.
func ScaleOut(t Target, duration float64) *Animation {
	return AnimatePropertyFrom(t, PropScale, 1, 0, duration).WithEasing(EaseInBack)
}

// Bounce pops the scale to 1.2 and back within duration.
func Bounce(t Target, duration float64) *Animation {
	return AnimatePropertyFrom(t, PropScale, 1, 1.2, duration*0.5).
		WithAutoReverse(true).
		WithEasing(EaseOut)
}

// ShakeAmplitude is the horizontal offset reached by Shake.
const ShakeAmplitude = 10

// Shake wobbles X around its current value: five back-and-forth cycles of
// duration/10 each. X snaps back to its resting value on completion.
func Shake(t Target, duration float64) *Animation {
	base := 0.0
	if t != nil {
		base = t.Read(PropX)
	}
	a := AnimatePropertyFrom(t, PropX, base-ShakeAmplitude, base+ShakeAmplitude, duration*0.1).
		WithRepeat(4).
		WithAutoReverse(true).
		WithEasing(EaseInOut)
	a.OnComplete(func() {
		if t != nil && !targetGone(t) {
			t.Apply(PropX, base)
		}
	})
	return a
}

// Pulse breathes the opacity between 1 and 0.5 forever.
func Pulse(t Target, duration float64) *Animation {
	return AnimatePropertyFrom(t, PropOpacity, 1, 0.5, duration*0.5).
		WithAutoReverse(true).
		WithRepeat(-1).
		WithEasing(EaseInOut)
}

// SlideIn moves t from (fromX, fromY) to its current position.
func SlideIn(t Target, fromX, fromY, duration float64) *ParallelGroup {
	x, y := 0.0, 0.0
	if t != nil {
		x, y = t.Read(PropX), t.Read(PropY)
	}
	return NewParallelGroup(
		AnimatePropertyFrom(t, PropX, fromX, x, duration),
		AnimatePropertyFrom(t, PropY, fromY, y, duration),
	)
}

// SlideOut moves t from its current position to (toX, toY).
func SlideOut(t Target, toX, toY, duration float64) *ParallelGroup {
	return NewParallelGroup(
		AnimateProperty(t, PropX, toX, duration),
		AnimateProperty(t, PropY, toY, duration),
	)
}

// AnimateColor animates the four color channels of t from one color to
// another with the default EaseOut curve.
func AnimateColor(t Target, from, to Color, duration float64) *ParallelGroup {
	return NewParallelGroup(
		AnimatePropertyFrom(t, PropColorR, from.R, to.R, duration),
		AnimatePropertyFrom(t, PropColorG, from.G, to.G, duration),
		AnimatePropertyFrom(t, PropColorB, from.B, to.B, duration),
		AnimatePropertyFrom(t, PropColorA, from.A, to.A, duration),
	)
}
