package choreo

import (
	"time"

	"github.com/charmbracelet/log"
)

// SpringSolver is implemented by Spring and HarmonicSpring.
type SpringSolver interface {
	SetTarget(target float64)
	Update(dt float64) float64
	Settled() bool
}

type springBinding struct {
	solver SpringSolver
	target Target
	prop   Property
}

// Scene is the composition root: it owns named nodes and every driver that
// animates them, and advances all of it from one Update call. Construct it
// explicitly and pass it to whatever runs the frame loop.
type Scene struct {
	nodes map[string]*Node
	order []*Node

	scheduler *Scheduler
	choreo    *Choreographer
	machines  []*AnimStateMachine
	mixers    []*Mixer
	tweens    []*TweenGroup
	springs   []springBinding

	store  EventSink
	debug  bool
	logger *log.Logger

	paused  bool
	elapsed float64
	frame   int
}

// NewScene creates an empty scene with its own scheduler and choreographer.
func NewScene() *Scene {
	return &Scene{
		nodes:     make(map[string]*Node),
		scheduler: NewScheduler(),
		choreo:    NewChoreographer(),
	}
}

// Scheduler returns the scene's animation scheduler.
func (s *Scene) Scheduler() *Scheduler { return s.scheduler }

// Choreographer returns the scene's timeline/sequence/group driver.
func (s *Scene) Choreographer() *Choreographer { return s.choreo }

// AddNode registers n under its name, replacing (and disposing) any node
// already registered under that name.
func (s *Scene) AddNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	if old, ok := s.nodes[n.Name]; ok && old != n {
		s.RemoveNode(old.Name)
	}
	if _, ok := s.nodes[n.Name]; !ok {
		s.order = append(s.order, n)
	}
	s.nodes[n.Name] = n
	return n
}

// NewNode creates a node and adds it to the scene.
func (s *Scene) NewNode(name string) *Node {
	return s.AddNode(NewNode(name))
}

// Node returns the named node.
func (s *Scene) Node(name string) (*Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// Nodes returns nodes in insertion order. The slice MUST NOT be mutated.
func (s *Scene) Nodes() []*Node { return s.order }

// RemoveNode disposes the named node. Animations still bound to it stop
// writing; tween groups on it finish on their next update.
func (s *Scene) RemoveNode(name string) bool {
	n, ok := s.nodes[name]
	if !ok {
		return false
	}
	n.Dispose()
	delete(s.nodes, name)
	for i, o := range s.order {
		if o == n {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Animate schedules a on the scene's scheduler and returns it.
func (s *Scene) Animate(a *Animation) *Animation {
	s.scheduler.Add(a)
	return a
}

// AddStateMachine makes the scene drive m.
func (s *Scene) AddStateMachine(m *AnimStateMachine) *AnimStateMachine {
	if m == nil {
		return nil
	}
	if s.store != nil {
		m.sink = s.store
	}
	s.machines = append(s.machines, m)
	return m
}

// StateMachine returns the state machine with the given name.
func (s *Scene) StateMachine(name string) *AnimStateMachine {
	for _, m := range s.machines {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// StateMachines returns the driven state machines. The slice MUST NOT be
// mutated.
func (s *Scene) StateMachines() []*AnimStateMachine { return s.machines }

// AddMixer makes the scene drive m. Mixers run after every other driver so
// their layers blend over this frame's values.
func (s *Scene) AddMixer(m *Mixer) *Mixer {
	if m != nil {
		s.mixers = append(s.mixers, m)
	}
	return m
}

// AddTween drives g until it is done.
func (s *Scene) AddTween(g *TweenGroup) *TweenGroup {
	if g != nil {
		s.tweens = append(s.tweens, g)
	}
	return g
}

// AddSpring writes solver's output to property p of t every frame.
func (s *Scene) AddSpring(t Target, p Property, solver SpringSolver) {
	if t == nil || solver == nil {
		return
	}
	s.springs = append(s.springs, springBinding{solver: solver, target: t, prop: p})
}

// SetEventSink forwards lifecycle events from every driver to store.
func (s *Scene) SetEventSink(store EventSink) {
	s.store = store
	s.scheduler.SetEventSink(store)
	s.choreo.SetEventSink(store)
	for _, m := range s.machines {
		m.sink = store
	}
}

// SetDebugMode enables per-frame stats logging on the scene and its drivers.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.scheduler.SetDebugMode(enabled)
	s.choreo.SetDebugMode(enabled)
}

// SetLogger sets the debug logger for the scene and its drivers.
func (s *Scene) SetLogger(l *log.Logger) {
	s.logger = l
	s.scheduler.SetLogger(l)
	s.choreo.SetLogger(l)
}

// Time returns the accumulated dt passed to Update.
func (s *Scene) Time() float64 { return s.elapsed }

// Frame returns the number of Update calls.
func (s *Scene) Frame() int { return s.frame }

// Play starts everything the choreographer owns.
func (s *Scene) Play() { s.choreo.PlayAll() }

// Pause freezes every driver the scene owns. While paused, Update is a
// no-op and Time and Frame stop advancing.
func (s *Scene) Pause() {
	s.paused = true
	s.scheduler.Pause()
	s.choreo.PauseAll()
}

// Resume undoes Pause.
func (s *Scene) Resume() {
	s.paused = false
	s.scheduler.Resume()
	s.choreo.ResumeAll()
}

// Paused reports whether Pause is in effect.
func (s *Scene) Paused() bool { return s.paused }

// Update advances every driver by dt seconds: scheduler, choreographer,
// state machines, tweens, springs and finally mixers.
func (s *Scene) Update(dt float64) {
	if s.paused {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.scheduler.Update(dt)
	s.choreo.Update(dt)
	for _, m := range s.machines {
		m.Update(dt)
	}

	kept := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	clear(s.tweens[len(kept):])
	s.tweens = kept

	for _, sb := range s.springs {
		if sb.solver.Settled() || targetGone(sb.target) {
			continue
		}
		sb.target.Apply(sb.prop, sb.solver.Update(dt))
	}

	for _, m := range s.mixers {
		m.Update(dt)
	}

	s.elapsed += dt
	s.frame++

	if s.debug {
		loggerOrDefault(s.logger).Debug("scene frame",
			"frame", s.frame,
			"update", time.Since(t0),
			"nodes", len(s.order),
			"tweens", len(s.tweens))
	}
}
