package choreo

import (
	"math"
	"sort"
)

// CurveKey is one point of a Curve with Hermite tangents.
type CurveKey struct {
	Time       float64
	Value      float64
	InTangent  float64
	OutTangent float64
}

// Curve is a piecewise cubic Hermite curve. Outside its key range it clamps,
// loops or ping-pongs. A curve over [0, 1] works as an easing: pass
// c.Evaluate to Animation.WithEase.
type Curve struct {
	Loop     bool
	PingPong bool

	keys []CurveKey
}

// NewCurve returns an empty curve.
func NewCurve() *Curve {
	return &Curve{}
}

// AddKey inserts a key with flat tangents. A key at an existing time
// replaces it.
func (c *Curve) AddKey(time, value float64) *Curve {
	return c.AddKeySmooth(time, value, 0, 0)
}

// AddKeySmooth inserts a key with explicit tangents.
func (c *Curve) AddKeySmooth(time, value, in, out float64) *Curve {
	if c == nil {
		return c
	}
	k := CurveKey{Time: time, Value: value, InTangent: in, OutTangent: out}
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time >= time })
	if i < len(c.keys) && c.keys[i].Time == time {
		c.keys[i] = k
		return c
	}
	c.keys = append(c.keys, CurveKey{})
	copy(c.keys[i+1:], c.keys[i:])
	c.keys[i] = k
	return c
}

// Keys returns the keys sorted by time. The slice MUST NOT be mutated.
func (c *Curve) Keys() []CurveKey { return c.keys }

// SmoothTangents replaces every tangent with a Catmull-Rom style slope:
// the secant through the neighbours, one-sided at the ends.
func (c *Curve) SmoothTangents() *Curve {
	if c == nil || len(c.keys) < 2 {
		return c
	}
	n := len(c.keys)
	for i := range c.keys {
		prev, next := i-1, i+1
		if prev < 0 {
			prev = 0
		}
		if next >= n {
			next = n - 1
		}
		dt := c.keys[next].Time - c.keys[prev].Time
		m := 0.0
		if dt > 0 {
			m = (c.keys[next].Value - c.keys[prev].Value) / dt
		}
		c.keys[i].InTangent = m
		c.keys[i].OutTangent = m
	}
	return c
}

// Evaluate returns the curve value at t. An empty curve yields 0.
func (c *Curve) Evaluate(t float64) float64 {
	if c == nil || len(c.keys) == 0 {
		return 0
	}
	first, last := c.keys[0], c.keys[len(c.keys)-1]
	if len(c.keys) == 1 {
		return first.Value
	}
	t = c.wrap(t, first.Time, last.Time)
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time > t })
	k0, k1 := c.keys[i-1], c.keys[i]
	dt := k1.Time - k0.Time
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}

func (c *Curve) wrap(t, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 || (t >= lo && t <= hi) {
		return t
	}
	switch {
	case c.PingPong:
		u := math.Mod(t-lo, 2*span)
		if u < 0 {
			u += 2 * span
		}
		if u > span {
			u = 2*span - u
		}
		return lo + u
	case c.Loop:
		u := math.Mod(t-lo, span)
		if u < 0 {
			u += span
		}
		return lo + u
	}
	return t
}

// curveFrom samples fn at the given times, taking one-sided finite
// differences as tangents so cusps like bounce contacts survive.
func curveFrom(fn func(float64) float64, times ...float64) *Curve {
	const h = 1e-4
	c := NewCurve()
	for _, t := range times {
		in := (fn(t) - fn(t-h)) / h
		out := (fn(t+h) - fn(t)) / h
		if t <= 0 {
			in = out
		}
		if t >= 1 {
			out = in
		}
		c.AddKeySmooth(t, fn(t), in, out)
	}
	return c
}

// CurveLinear returns the identity curve on [0, 1].
func CurveLinear() *Curve {
	return NewCurve().AddKeySmooth(0, 0, 1, 1).AddKeySmooth(1, 1, 1, 1)
}

// CurveEaseIn returns a quadratic ease-in.
func CurveEaseIn() *Curve {
	return NewCurve().AddKeySmooth(0, 0, 0, 0).AddKeySmooth(1, 1, 2, 2)
}

// CurveEaseOut returns a quadratic ease-out.
func CurveEaseOut() *Curve {
	return NewCurve().AddKeySmooth(0, 0, 2, 2).AddKeySmooth(1, 1, 0, 0)
}

// CurveEaseInOut returns smoothstep.
func CurveEaseInOut() *Curve {
	return NewCurve().AddKey(0, 0).AddKey(1, 1)
}

// CurveBounce approximates the bounce-out easing.
func CurveBounce() *Curve {
	return curveFrom(bounceOut, 0, 0.2, 1/bounceD1, 0.45, 2/bounceD1, 0.8, 2.5/bounceD1, 0.95, 1)
}

// CurveElastic approximates the out-elastic easing.
func CurveElastic() *Curve {
	fn := func(t float64) float64 { return Evaluate(EaseOutElastic, t) }
	return curveFrom(fn, 0, 0.05, 0.1, 0.175, 0.25, 0.325, 0.4, 0.475, 0.55, 0.625, 0.7, 0.8, 0.9, 1)
}

// CurveOvershoot approximates the out-back easing.
func CurveOvershoot() *Curve {
	fn := func(t float64) float64 { return Evaluate(EaseOutBack, t) }
	return curveFrom(fn, 0, 0.2, 0.4, 0.6, 0.8, 1)
}
