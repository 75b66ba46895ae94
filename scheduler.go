package choreo

import (
	"time"

	"github.com/charmbracelet/log"
)

// Scheduler owns a set of running Animations and advances them once per
// frame. Construct one explicitly with NewScheduler and drive it from the
// frame loop; there is no shared instance.
//
// Finished, stopped and removed animations are disposed by the scheduler.
// Callbacks run synchronously in insertion order and may add or remove
// animations, including themselves.
type Scheduler struct {
	active   []*Animation
	pending  []*Animation
	updating bool

	timeScale float64
	paused    bool

	sink     EventSink
	debug    bool
	logger   *log.Logger
	overPopd bool
}

// NewScheduler creates an empty, running scheduler at real-time speed.
func NewScheduler() *Scheduler {
	return &Scheduler{timeScale: 1}
}

// Add starts a and takes ownership of it. Nil, disposed and already
// scheduled animations are ignored. Animations added from inside a callback
// begin advancing on the next Update.
func (s *Scheduler) Add(a *Animation) {
	if s == nil || a == nil || a.disposed || s.Contains(a.ID) {
		return
	}
	a.Start()
	if s.updating {
		s.pending = append(s.pending, a)
		return
	}
	s.active = append(s.active, a)
}

// Remove cancels and disposes a without firing OnComplete. Safe to call from
// any callback, including a's own.
func (s *Scheduler) Remove(a *Animation) {
	if s == nil || a == nil {
		return
	}
	s.RemoveID(a.ID)
}

// RemoveID removes the animation with the given ID, if scheduled.
func (s *Scheduler) RemoveID(id uint64) {
	if s == nil {
		return
	}
	for i, a := range s.active {
		if a.ID != id {
			continue
		}
		a.Dispose()
		if !s.updating {
			s.active = append(s.active[:i], s.active[i+1:]...)
		}
		return
	}
	for i, a := range s.pending {
		if a.ID == id {
			a.Dispose()
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Get returns the scheduled animation with the given ID.
func (s *Scheduler) Get(id uint64) (*Animation, bool) {
	if s == nil {
		return nil, false
	}
	for _, a := range s.active {
		if a.ID == id && !a.disposed {
			return a, true
		}
	}
	for _, a := range s.pending {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Contains reports whether an animation with the given ID is scheduled.
func (s *Scheduler) Contains(id uint64) bool {
	_, ok := s.Get(id)
	return ok
}

// CancelAll disposes every scheduled animation without firing OnComplete.
func (s *Scheduler) CancelAll() {
	if s == nil {
		return
	}
	for _, a := range s.active {
		a.Dispose()
	}
	for _, a := range s.pending {
		a.Dispose()
	}
	s.pending = s.pending[:0]
	if !s.updating {
		clear(s.active)
		s.active = s.active[:0]
	}
}

// Len returns the number of scheduled animations.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	n := len(s.pending)
	for _, a := range s.active {
		if !a.disposed {
			n++
		}
	}
	return n
}

// Pause freezes the whole scheduler; Update becomes a no-op.
func (s *Scheduler) Pause() { s.paused = true }

// Resume undoes Pause.
func (s *Scheduler) Resume() { s.paused = false }

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool { return s.paused }

// SetTimeScale multiplies every future dt: 0 freezes time, 0.5 is slow
// motion, 2 is fast-forward. Negative scales are treated as 0.
func (s *Scheduler) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	s.timeScale = scale
}

// TimeScale returns the current time multiplier.
func (s *Scheduler) TimeScale() float64 { return s.timeScale }

// SetEventSink forwards natural completions to sink.
func (s *Scheduler) SetEventSink(sink EventSink) { s.sink = sink }

// SetDebugMode enables per-frame stats logging on the scheduler's logger.
func (s *Scheduler) SetDebugMode(enabled bool) { s.debug = enabled }

// SetLogger sets the logger used in debug mode. Nil restores log.Default().
func (s *Scheduler) SetLogger(l *log.Logger) { s.logger = l }

// Update advances every scheduled animation by dt*TimeScale seconds and drops
// the ones that report they are no longer alive. Each animation is visited
// exactly once per frame; the survivors are compacted in place so removal
// during iteration neither skips nor revisits an entry.
func (s *Scheduler) Update(dt float64) {
	if s == nil || s.paused {
		return
	}
	dt *= s.timeScale

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.updating = true
	visited := len(s.active)
	kept := 0
	for i := 0; i < visited; i++ {
		a := s.active[i]
		if a.disposed {
			continue
		}
		if a.Update(dt) && !a.disposed {
			s.active[kept] = a
			kept++
			continue
		}
		if a.state == StateCompleted && !a.disposed {
			emit(s.sink, Event{Kind: EventAnimationComplete, AnimationID: a.ID})
		}
		a.Dispose()
	}
	s.updating = false

	removed := visited - kept
	clear(s.active[kept:visited])
	s.active = s.active[:kept]
	if len(s.pending) > 0 {
		s.active = append(s.active, s.pending...)
		clear(s.pending)
		s.pending = s.pending[:0]
	}

	if s.debug {
		s.overPopd = debugCheckPopulation(s.logger, len(s.active), s.overPopd)
		s.debugLog(frameStats{
			updateTime: time.Since(t0),
			active:     len(s.active),
			removed:    removed,
		})
	}
}
