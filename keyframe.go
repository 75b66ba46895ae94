package choreo

// Keyframe is one stop of a KeyframeAnimation. Easing shapes the segment
// that arrives at this key.
type Keyframe struct {
	Time   float64
	Value  float64
	Easing Easing
}

// KeyframeAnimation is an Animation whose value follows a list of keyframes
// instead of a From/To pair. Its embedded Animation supplies timing, state,
// repeats and callbacks, so &k.Animation can be handed to any container.
//
// Keys may be added in any order; lookups scan the whole list.
type KeyframeAnimation struct {
	Animation

	keys []Keyframe
	// seconds selects absolute key times within Duration; otherwise key
	// times are progress fractions in [0, 1].
	seconds bool
}

// NewKeyframes creates an idle keyframe animation lasting duration seconds.
// Key times are fractions of the duration until UseSeconds is called. The
// outer easing is linear so each segment is shaped only by its key's easing.
func NewKeyframes(duration float64) *KeyframeAnimation {
	k := &KeyframeAnimation{}
	k.Animation = Animation{
		ID:       nextAnimID(),
		Duration: duration,
		Easing:   EaseLinear,
	}
	k.sample = k.sampleProgress
	return k
}

// UseSeconds interprets key times as seconds from the start of a pass.
func (k *KeyframeAnimation) UseSeconds() *KeyframeAnimation {
	if k != nil {
		k.seconds = true
	}
	return k
}

// Add appends a keyframe. The first key added also becomes From and Current.
func (k *KeyframeAnimation) Add(time, value float64, easing Easing) *KeyframeAnimation {
	if k == nil {
		return k
	}
	k.keys = append(k.keys, Keyframe{Time: time, Value: value, Easing: easing})
	if len(k.keys) == 1 {
		k.From = value
		k.Current = value
	}
	k.To = k.keys[len(k.keys)-1].Value
	return k
}

// Keyframes returns the keys in insertion order. The slice MUST NOT be
// mutated.
func (k *KeyframeAnimation) Keyframes() []Keyframe {
	return k.keys
}

// GetValue returns the value at key time t. Times before the first key or
// after the last clamp to the boundary key's value; an empty list yields 0.
func (k *KeyframeAnimation) GetValue(t float64) float64 {
	if k == nil || len(k.keys) == 0 {
		return 0
	}

	// One pass brackets t with the nearest key at or below it and the
	// nearest key at or above it, whatever the insertion order.
	prev, next := 0, 0
	havePrev, haveNext := false, false
	for i := range k.keys {
		kt := k.keys[i].Time
		if kt <= t && (!havePrev || kt >= k.keys[prev].Time) {
			prev = i
			havePrev = true
		}
		if kt >= t && (!haveNext || kt < k.keys[next].Time) {
			next = i
			haveNext = true
		}
	}

	switch {
	case !havePrev && !haveNext:
		return k.keys[0].Value
	case !havePrev:
		return k.keys[next].Value
	case !haveNext:
		return k.keys[prev].Value
	}

	p, n := k.keys[prev], k.keys[next]
	if prev == next || p.Time == n.Time {
		return p.Value
	}
	localT := (t - p.Time) / (n.Time - p.Time)
	return lerp(p.Value, n.Value, Evaluate(n.Easing, localT))
}

func (k *KeyframeAnimation) sampleProgress(eased float64) float64 {
	t := eased
	if k.seconds {
		t *= k.Duration
	}
	return k.GetValue(t)
}
