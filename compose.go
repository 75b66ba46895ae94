package choreo

// Then chains second after first by setting second's delay to first's
// duration, and returns first. It ignores first's own delay, repeats and
// auto-reverse; use ThenAfter when those matter. Both animations still have
// to be added to the same container.
func Then(first, second *Animation) *Animation {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	second.WithDelay(first.Duration)
	return first
}

// ThenAfter chains second so it begins when first finishes for real: its
// delay becomes first's delay plus first's full span (repeats and
// auto-reverse included). An infinitely repeating first never finishes, so
// second is left untouched and false is returned.
func ThenAfter(first, second *Animation) bool {
	if first == nil || second == nil {
		return false
	}
	span := first.Span()
	if span > maxFiniteSpan {
		return false
	}
	second.WithDelay(first.Delay + span)
	return true
}

const maxFiniteSpan = 1e300

// Stagger adds index*between seconds to each animation's delay so a batch
// started together fans out in order. Nil entries keep their slot.
func Stagger(anims []*Animation, between float64) {
	for i, a := range anims {
		if a != nil {
			a.WithDelay(a.Delay + between*float64(i))
		}
	}
}
