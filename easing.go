package choreo

import (
	"math"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing selects one of the built-in easing curves.
type Easing uint8

const (
	EaseLinear Easing = iota // identity
	EaseIn                   // cubic ease-in
	EaseOut                  // cubic ease-out
	EaseInOut                // cubic ease-in-out
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInQuart
	EaseOutQuart
	EaseInOutQuart
	EaseInExpo
	EaseOutExpo
	EaseInOutExpo
	EaseInBack // overshoots below 0 near the start
	EaseOutBack
	EaseInOutBack
	EaseInElastic
	EaseOutElastic
	EaseInOutElastic
	EaseBounce // bounce-out
	EaseSpring // approximated with out-elastic

	easingCount
)

var easingNames = [easingCount]string{
	"linear", "easeIn", "easeOut", "easeInOut",
	"inQuad", "outQuad", "inOutQuad",
	"inCubic", "outCubic", "inOutCubic",
	"inQuart", "outQuart", "inOutQuart",
	"inExpo", "outExpo", "inOutExpo",
	"inBack", "outBack", "inOutBack",
	"inElastic", "outElastic", "inOutElastic",
	"bounce", "spring",
}

// String returns the preset name of the easing, as accepted by ParseEasing.
func (e Easing) String() string {
	if e >= easingCount {
		return "linear"
	}
	return easingNames[e]
}

// Easings returns every built-in easing in declaration order.
func Easings() []Easing {
	out := make([]Easing, easingCount)
	for i := range out {
		out[i] = Easing(i)
	}
	return out
}

// ParseEasing looks up an easing by its preset name (case-insensitive).
func ParseEasing(name string) (Easing, bool) {
	for i, n := range easingNames {
		if strings.EqualFold(n, name) {
			return Easing(i), true
		}
	}
	return EaseLinear, false
}

// Eval evaluates the curve at t. t is clamped to [0, 1]; the output is not,
// so back and elastic curves may leave [0, 1] between the endpoints.
func (e Easing) Eval(t float64) float64 {
	return Evaluate(e, t)
}

// Evaluate evaluates the easing kind at t, clamping t to [0, 1]. Unknown
// kinds fall back to linear.
func Evaluate(kind Easing, t float64) float64 {
	t = clamp01(t)
	// Endpoints are pinned for every kind; this also keeps the exponential
	// and elastic forms away from their t=0/1 singularities.
	if t == 0 || t == 1 {
		return t
	}
	switch kind {
	case EaseLinear:
		return t
	case EaseIn, EaseInCubic:
		return t * t * t
	case EaseOut, EaseOutCubic:
		return 1 - math.Pow(1-t, 3)
	case EaseInOut, EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	case EaseInQuad:
		return t * t
	case EaseOutQuad:
		return 1 - (1-t)*(1-t)
	case EaseInOutQuad:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	case EaseInQuart:
		return t * t * t * t
	case EaseOutQuart:
		return 1 - math.Pow(1-t, 4)
	case EaseInOutQuart:
		if t < 0.5 {
			return 8 * t * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 4)/2
	case EaseInExpo:
		return math.Pow(2, 10*t-10)
	case EaseOutExpo:
		return 1 - math.Pow(2, -10*t)
	case EaseInOutExpo:
		if t < 0.5 {
			return math.Pow(2, 20*t-10) / 2
		}
		return (2 - math.Pow(2, -20*t+10)) / 2
	case EaseInBack:
		return backC3*t*t*t - backC1*t*t
	case EaseOutBack:
		return 1 + backC3*math.Pow(t-1, 3) + backC1*math.Pow(t-1, 2)
	case EaseInOutBack:
		if t < 0.5 {
			return (math.Pow(2*t, 2) * ((backC2+1)*2*t - backC2)) / 2
		}
		return (math.Pow(2*t-2, 2)*((backC2+1)*(t*2-2)+backC2) + 2) / 2
	case EaseInElastic:
		return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*elasticC4)
	case EaseOutElastic, EaseSpring:
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*elasticC4) + 1
	case EaseInOutElastic:
		if t < 0.5 {
			return -(math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*elasticC5)) / 2
		}
		return (math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*elasticC5))/2 + 1
	case EaseBounce:
		return bounceOut(t)
	default:
		return t
	}
}

const (
	backC1 = 1.70158
	backC2 = backC1 * 1.525
	backC3 = backC1 + 1

	elasticC4 = (2 * math.Pi) / 3
	elasticC5 = (2 * math.Pi) / 4.5

	bounceN1 = 7.5625
	bounceD1 = 2.75
)

func bounceOut(t float64) float64 {
	switch {
	case t < 1/bounceD1:
		return bounceN1 * t * t
	case t < 2/bounceD1:
		t -= 1.5 / bounceD1
		return bounceN1*t*t + 0.75
	case t < 2.5/bounceD1:
		t -= 2.25 / bounceD1
		return bounceN1*t*t + 0.9375
	default:
		t -= 2.625 / bounceD1
		return bounceN1*t*t + 0.984375
	}
}

// EaseFunc is a custom easing curve. Implementations receive t in [0, 1].
// An Animation with a non-nil EaseFunc uses it instead of its Easing kind.
type EaseFunc func(t float64) float64

// Bezier returns a CSS-style cubic-Bézier easing through (0,0), (x1,y1),
// (x2,y2), (1,1).
func Bezier(x1, y1, x2, y2 float64) EaseFunc {
	return func(t float64) float64 {
		return CubicBezier(t, x1, y1, x2, y2)
	}
}

// CubicBezier solves the curve's x(u) = t for u with five Newton-Raphson
// iterations and returns y(u). Iteration stops early when the slope
// flattens below 1e-6.
func CubicBezier(t, x1, y1, x2, y2 float64) float64 {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx

	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	u := t
	for i := 0; i < 5; i++ {
		x := ((ax*u+bx)*u + cx) * u
		dx := (3*ax*u+2*bx)*u + cx
		if math.Abs(dx) < 1e-6 {
			break
		}
		u -= (x - t) / dx
	}
	return ((ay*u+by)*u + cy) * u
}

// FromTween adapts a gween easing function (Robert Penner signature) into an
// EaseFunc, so any curve from github.com/tanema/gween/ease can drive an
// Animation.
func FromTween(fn ease.TweenFunc) EaseFunc {
	if fn == nil {
		return nil
	}
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
