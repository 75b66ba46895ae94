package choreo

import "math"

// AnimState is the lifecycle state of an Animation.
type AnimState uint8

const (
	StateIdle      AnimState = iota // created or stopped
	StateRunning                    // advancing on Update
	StatePaused                     // alive but frozen
	StateCompleted                  // finished naturally
)

// String returns a lower-case name for the state.
func (s AnimState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// animIDCounter is a plain counter (no atomic; choreo is single-threaded).
var animIDCounter uint64

func nextAnimID() uint64 {
	animIDCounter++
	return animIDCounter
}

// Animation tweens one scalar from From to To over Duration seconds. It is
// driven by calling Update each frame, either directly or through the
// container that owns it (Scheduler, Sequence, ParallelGroup, Timeline,
// AnimStateMachine or Mixer). An Animation belongs to exactly one container.
type Animation struct {
	// ID is unique and increases monotonically across the process.
	ID uint64

	From    float64
	To      float64
	Current float64

	// Duration of one pass in seconds. Values <= 0 complete on the first
	// update.
	Duration float64
	// Elapsed time within the current pass, kept in [0, Duration].
	Elapsed float64
	// Delay in seconds before the first pass begins. Armed on Start.
	Delay float64

	Easing Easing
	// Ease, when set, replaces Easing.
	Ease EaseFunc

	// AutoReverse plays each cycle forward then backward.
	AutoReverse bool
	// RepeatCount is the number of extra cycles: -1 repeats forever, 0 plays
	// once, N plays N+1 times.
	RepeatCount int

	state         AnimState
	currentRepeat int
	reversed      bool
	delayLeft     float64
	disposed      bool

	onUpdate   func(v float64)
	onComplete func()

	// sample maps eased progress to a value; nil means lerp(From, To).
	sample func(eased float64) float64

	target Target
	prop   Property
}

// NewAnimation creates an idle tween with the default EaseOut curve.
func NewAnimation(from, to, duration float64) *Animation {
	return &Animation{
		ID:       nextAnimID(),
		From:     from,
		To:       to,
		Current:  from,
		Duration: duration,
		Easing:   EaseOut,
	}
}

// NewSpringAnimation creates a tween shaped by the spring easing. Its
// duration is the time the config's damping envelope takes to decay to the
// rest threshold, clamped to [0.1s, 5s]; undamped configs get one second.
// Use Spring for true physical motion.
func NewSpringAnimation(from, to float64, cfg SpringConfig) *Animation {
	duration := 1.0
	if cfg.Damping > 0 {
		// envelope e^(-c/2m * t) reaches the threshold at t = ln(1/threshold) * 2m/c
		duration = clamp(math.Log(1/springRestThreshold)*2*cfg.mass()/cfg.Damping, 0.1, 5)
	}
	a := NewAnimation(from, to, duration)
	a.Easing = EaseSpring
	return a
}

// WithEasing sets the easing kind and clears any custom EaseFunc.
func (a *Animation) WithEasing(e Easing) *Animation {
	if a != nil {
		a.Easing = e
		a.Ease = nil
	}
	return a
}

// WithEase installs a custom easing curve.
func (a *Animation) WithEase(fn EaseFunc) *Animation {
	if a != nil {
		a.Ease = fn
	}
	return a
}

// WithDelay sets the start delay in seconds.
func (a *Animation) WithDelay(delay float64) *Animation {
	if a != nil {
		a.Delay = delay
		if a.state == StateIdle {
			a.delayLeft = delay
		}
	}
	return a
}

// WithRepeat sets the number of extra cycles (-1 for infinite).
func (a *Animation) WithRepeat(count int) *Animation {
	if a != nil {
		a.RepeatCount = count
	}
	return a
}

// WithAutoReverse toggles back-and-forth cycles.
func (a *Animation) WithAutoReverse(on bool) *Animation {
	if a != nil {
		a.AutoReverse = on
	}
	return a
}

// OnUpdate registers a callback receiving the value after every progressing
// update.
func (a *Animation) OnUpdate(fn func(v float64)) *Animation {
	if a != nil {
		a.onUpdate = fn
	}
	return a
}

// OnComplete registers a callback fired once on natural completion. Stop,
// Dispose and container removal never fire it.
func (a *Animation) OnComplete(fn func()) *Animation {
	if a != nil {
		a.onComplete = fn
	}
	return a
}

// Bind writes every value to property p of t. Writes stop once t reports
// itself disposed.
func (a *Animation) Bind(t Target, p Property) *Animation {
	if a != nil {
		a.target = t
		a.prop = p
	}
	return a
}

// BoundTarget returns the target and property set by Bind.
func (a *Animation) BoundTarget() (Target, Property) {
	return a.target, a.prop
}

// State returns the lifecycle state.
func (a *Animation) State() AnimState {
	if a == nil {
		return StateIdle
	}
	return a.state
}

// CurrentRepeat returns how many extra cycles have begun.
func (a *Animation) CurrentRepeat() int { return a.currentRepeat }

// Reversed reports whether the current pass runs backward.
func (a *Animation) Reversed() bool { return a.reversed }

// Progress returns Elapsed/Duration clamped to [0, 1]; 1 when Duration <= 0.
func (a *Animation) Progress() float64 {
	if a.Duration <= 0 {
		return 1
	}
	return clamp01(a.Elapsed / a.Duration)
}

// Start moves the animation to Running. A paused animation resumes where it
// stopped; idle and completed ones play from the beginning, delay included.
func (a *Animation) Start() {
	if a == nil || a.disposed {
		return
	}
	switch a.state {
	case StateRunning:
		return
	case StateIdle, StateCompleted:
		a.Reset()
	}
	a.state = StateRunning
}

// Pause freezes a running animation.
func (a *Animation) Pause() {
	if a != nil && a.state == StateRunning {
		a.state = StatePaused
	}
}

// Resume continues a paused animation.
func (a *Animation) Resume() {
	if a != nil && a.state == StatePaused {
		a.state = StateRunning
	}
}

// Stop cancels the animation without firing OnComplete and rewinds it to
// From.
func (a *Animation) Stop() {
	if a == nil {
		return
	}
	a.state = StateIdle
	a.Elapsed = 0
	a.Current = a.From
	a.delayLeft = a.Delay
}

// Reset rewinds timing and repeat bookkeeping but leaves the state alone.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.Elapsed = 0
	a.Current = a.From
	a.currentRepeat = 0
	a.reversed = false
	a.delayLeft = a.Delay
}

// Dispose permanently retires the animation. Containers call it when they
// drop an animation; afterwards Update and Start are no-ops and no callback
// fires again.
func (a *Animation) Dispose() {
	if a == nil {
		return
	}
	a.disposed = true
	a.state = StateIdle
}

// IsDisposed reports whether Dispose has been called.
func (a *Animation) IsDisposed() bool {
	return a == nil || a.disposed
}

// Update advances the animation by dt seconds and reports whether it is
// still alive. Paused animations stay alive without progressing; idle,
// completed and disposed ones report false. The first updates burn down any
// delay without touching the value.
func (a *Animation) Update(dt float64) bool {
	if a == nil || a.disposed {
		return false
	}
	switch a.state {
	case StatePaused:
		return true
	case StateRunning:
	default:
		return false
	}

	if a.delayLeft > 0 {
		a.delayLeft -= dt
		return true
	}

	a.Elapsed += dt
	progress := 1.0
	if a.Duration > 0 {
		progress = clamp01(a.Elapsed / a.Duration)
		a.Elapsed = clamp(a.Elapsed, 0, a.Duration)
	} else {
		a.Elapsed = 0
	}

	p := progress
	if a.reversed {
		p = 1 - progress
	}
	a.emit(a.valueAt(a.ease(p)))

	if progress < 1 {
		return true
	}
	switch {
	case a.AutoReverse && !a.reversed:
		a.reversed = true
		a.Elapsed = 0
	case a.RepeatCount < 0 || a.currentRepeat < a.RepeatCount:
		a.currentRepeat++
		a.Elapsed = 0
		a.reversed = false
	default:
		a.state = StateCompleted
		if a.onComplete != nil {
			a.onComplete()
		}
		return false
	}
	return true
}

func (a *Animation) ease(p float64) float64 {
	if a.Ease != nil {
		return a.Ease(clamp01(p))
	}
	return Evaluate(a.Easing, p)
}

func (a *Animation) valueAt(eased float64) float64 {
	if a.sample != nil {
		return a.sample(eased)
	}
	return lerp(a.From, a.To, eased)
}

// emit stores v as the current value, notifies the update callback and
// writes the bound target.
func (a *Animation) emit(v float64) {
	a.Current = v
	if a.onUpdate != nil {
		a.onUpdate(v)
	}
	if a.target != nil && !targetGone(a.target) {
		a.target.Apply(a.prop, v)
	}
}

// Span returns the active time of the whole animation excluding its delay:
// one pass, doubled by AutoReverse, times RepeatCount+1. Infinite repeats
// yield +Inf.
func (a *Animation) Span() float64 {
	return a.spanFor(a.Duration)
}

func (a *Animation) spanFor(pass float64) float64 {
	if pass < 0 {
		pass = 0
	}
	if a.AutoReverse {
		pass *= 2
	}
	if a.RepeatCount < 0 {
		if pass == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return pass * float64(a.RepeatCount+1)
}

// ValueAt returns the value natural playback would show t seconds after the
// delay elapsed, without changing any state. Times outside the span clamp.
func (a *Animation) ValueAt(t float64) float64 {
	return a.sampleAt(t, a.Duration)
}

// sampleAt evaluates the animation at local time t using pass as the
// duration of one pass. A time landing exactly on a pass boundary reports
// the end of the earlier pass, matching the frame on which Update crosses it.
func (a *Animation) sampleAt(t, pass float64) float64 {
	if pass <= 0 {
		return a.valueAt(a.ease(1))
	}
	passes := 1
	if a.AutoReverse {
		passes = 2
	}
	if t <= 0 {
		return a.valueAt(a.ease(0))
	}

	k := math.Floor(t / pass)
	within := t - k*pass
	if within == 0 {
		k--
		within = pass
	}
	if a.RepeatCount >= 0 {
		last := float64(passes*(a.RepeatCount+1) - 1)
		if k > last {
			k = last
			within = pass
		}
	}
	p := within / pass
	if a.AutoReverse && int64(k)%2 == 1 {
		p = 1 - p
	}
	return a.valueAt(a.ease(p))
}
