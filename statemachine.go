package choreo

// MachineState is one named state of an AnimStateMachine.
type MachineState struct {
	Name string
	Anim *Animation
	// Loop restarts Anim whenever it completes while the state is current.
	Loop bool
}

// Transition describes how to blend from one state to another.
type Transition struct {
	// Name is an optional trigger name; Trigger also matches on To.
	Name          string
	From          string
	To            string
	BlendDuration float64
	Easing        Easing
	// Guard, when set, must return true for the transition to fire.
	Guard func() bool
}

// WithName sets the trigger name.
func (tr *Transition) WithName(name string) *Transition {
	if tr != nil {
		tr.Name = name
	}
	return tr
}

// When sets the guard predicate.
func (tr *Transition) When(guard func() bool) *Transition {
	if tr != nil {
		tr.Guard = guard
	}
	return tr
}

func (tr *Transition) allowed() bool {
	return tr.Guard == nil || tr.Guard()
}

// AnimStateMachine switches between looping or one-shot state animations and
// cross-fades between them on transitions. The machine owns its state
// animations; bind the machine, not the animations, to a target.
type AnimStateMachine struct {
	Name string

	states      map[string]*MachineState
	transitions []*Transition

	current   *MachineState
	next      *MachineState
	blend     *Transition
	blendTime float64
	value     float64

	target Target
	prop   Property

	onStateChange func(from, to string)
	sink          EventSink
}

// NewStateMachine creates a machine with no states.
func NewStateMachine() *AnimStateMachine {
	return &AnimStateMachine{states: make(map[string]*MachineState)}
}

// AddState registers (or replaces) a state. The first state added becomes
// current.
func (m *AnimStateMachine) AddState(name string, a *Animation, loop bool) *MachineState {
	if m == nil || a == nil {
		return nil
	}
	if old, ok := m.states[name]; ok && old.Anim != a {
		old.Anim.Dispose()
	}
	s := &MachineState{Name: name, Anim: a, Loop: loop}
	m.states[name] = s
	if m.current == nil || m.current.Name == name {
		m.current = s
		a.Stop()
		a.Start()
		m.value = a.Current
	}
	return s
}

// AddTransition registers a blend from one state to another. From may be
// "*" to match any current state.
func (m *AnimStateMachine) AddTransition(from, to string, blend float64, easing Easing) *Transition {
	if m == nil {
		return nil
	}
	tr := &Transition{From: from, To: to, BlendDuration: blend, Easing: easing}
	m.transitions = append(m.transitions, tr)
	return tr
}

// OnStateChange registers a callback fired whenever the current state
// changes, after a hard cut or at the end of a blend.
func (m *AnimStateMachine) OnStateChange(fn func(from, to string)) *AnimStateMachine {
	if m != nil {
		m.onStateChange = fn
	}
	return m
}

// Bind writes the machine's output to property p of t on every update.
func (m *AnimStateMachine) Bind(t Target, p Property) *AnimStateMachine {
	if m != nil {
		m.target = t
		m.prop = p
	}
	return m
}

// State returns the named state.
func (m *AnimStateMachine) State(name string) (*MachineState, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.states[name]
	return s, ok
}

// Current returns the current state name, or "" before any state exists.
func (m *AnimStateMachine) Current() string {
	if m == nil || m.current == nil {
		return ""
	}
	return m.current.Name
}

// Next returns the state being blended toward, or "".
func (m *AnimStateMachine) Next() string {
	if m == nil || m.next == nil {
		return ""
	}
	return m.next.Name
}

// Blending reports whether a transition is in progress.
func (m *AnimStateMachine) Blending() bool { return m != nil && m.blend != nil }

// BlendProgress returns the elapsed fraction of the active blend, 0 when not
// blending.
func (m *AnimStateMachine) BlendProgress() float64 {
	if !m.Blending() {
		return 0
	}
	if m.blend.BlendDuration <= 0 {
		return 1
	}
	return clamp01(m.blendTime / m.blend.BlendDuration)
}

// Value returns the last computed output.
func (m *AnimStateMachine) Value() float64 { return m.value }

// SetState cuts to the named state immediately, abandoning any blend.
func (m *AnimStateMachine) SetState(name string) bool {
	if m == nil {
		return false
	}
	s, ok := m.states[name]
	if !ok {
		return false
	}
	if m.next != nil && m.next != s {
		m.next.Anim.Stop()
	}
	m.blend = nil
	m.next = nil

	prev := m.current
	if prev != nil && prev != s {
		prev.Anim.Stop()
	}
	m.current = s
	s.Anim.Stop()
	s.Anim.Start()
	m.value = s.Anim.Current
	m.write()
	if prev != s {
		m.changed(prev, s)
	}
	return true
}

// Trigger starts the first transition out of the current state whose Name
// or To equals name and whose guard holds. Triggers are ignored while a
// blend is running.
func (m *AnimStateMachine) Trigger(name string) bool {
	if m == nil || m.current == nil || m.blend != nil {
		return false
	}
	for _, tr := range m.transitions {
		if tr.From != m.current.Name && tr.From != "*" {
			continue
		}
		if tr.Name != name && tr.To != name {
			continue
		}
		to, ok := m.states[tr.To]
		if !ok || to == m.current || !tr.allowed() {
			continue
		}
		m.next = to
		m.blend = tr
		m.blendTime = 0
		to.Anim.Stop()
		to.Anim.Start()
		if tr.BlendDuration <= 0 {
			m.finishBlend()
			m.value = m.current.Anim.Current
			m.write()
		}
		return true
	}
	return false
}

// Update advances the current state's animation, the incoming state's
// animation while blending, and the blend itself.
func (m *AnimStateMachine) Update(dt float64) {
	if m == nil || m.current == nil {
		return
	}
	advance(m.current, dt)
	if m.blend == nil {
		m.value = m.current.Anim.Current
		m.write()
		return
	}

	advance(m.next, dt)
	m.blendTime += dt
	p := 1.0
	if m.blend.BlendDuration > 0 {
		p = clamp01(m.blendTime / m.blend.BlendDuration)
	}
	w := Evaluate(m.blend.Easing, p)
	m.value = lerp(m.current.Anim.Current, m.next.Anim.Current, w)
	m.write()
	if p >= 1 {
		m.finishBlend()
	}
}

func advance(s *MachineState, dt float64) {
	if s.Anim.Update(dt) || !s.Loop || s.Anim.State() != StateCompleted {
		return
	}
	s.Anim.Start()
}

func (m *AnimStateMachine) finishBlend() {
	from := m.current
	from.Anim.Stop()
	m.current = m.next
	m.next = nil
	m.blend = nil
	m.blendTime = 0
	m.changed(from, m.current)
}

func (m *AnimStateMachine) changed(from, to *MachineState) {
	fromName := ""
	if from != nil {
		fromName = from.Name
	}
	if m.onStateChange != nil {
		m.onStateChange(fromName, to.Name)
	}
	emit(m.sink, Event{Kind: EventStateChange, Source: m.Name, From: fromName, To: to.Name})
}

func (m *AnimStateMachine) write() {
	if m.target != nil && !targetGone(m.target) {
		m.target.Apply(m.prop, m.value)
	}
}
