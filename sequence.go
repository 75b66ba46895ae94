package choreo

type stepKind uint8

const (
	stepAnimation stepKind = iota
	stepDelay
	stepCallback
	stepParallel
)

type seqStep struct {
	kind  stepKind
	anim  *Animation
	delay float64
	fn    func()
	group *ParallelGroup
}

// Sequence runs steps one after another: animations, fixed delays,
// callbacks and parallel batches. It owns the animations handed to it.
type Sequence struct {
	Name string

	steps    []seqStep
	index    int
	waitLeft float64
	started  bool
	playing  bool
	done     bool
	// run changes on every Start, Stop and Skip so Update and enter can tell
	// when a callback moved the sequence underneath them.
	run int
	// trailing holds first-finisher groups whose step has ended while other
	// members still run; they are driven until every member is done.
	trailing []*ParallelGroup

	onStep     func(index int)
	onComplete func()
	sink       EventSink
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Add appends an animation step.
func (s *Sequence) Add(a *Animation) *Sequence {
	if s != nil && a != nil {
		s.steps = append(s.steps, seqStep{kind: stepAnimation, anim: a})
	}
	return s
}

// AddDelay appends a pause of d seconds.
func (s *Sequence) AddDelay(d float64) *Sequence {
	if s != nil {
		s.steps = append(s.steps, seqStep{kind: stepDelay, delay: d})
	}
	return s
}

// Wait is AddDelay.
func (s *Sequence) Wait(d float64) *Sequence {
	return s.AddDelay(d)
}

// AddCallback appends a step that calls fn and moves on in the same frame.
func (s *Sequence) AddCallback(fn func()) *Sequence {
	if s != nil {
		s.steps = append(s.steps, seqStep{kind: stepCallback, fn: fn})
	}
	return s
}

// AddParallel appends a step that plays anims together and ends when all of
// them finished.
func (s *Sequence) AddParallel(anims ...*Animation) *Sequence {
	if s != nil {
		s.steps = append(s.steps, seqStep{kind: stepParallel, group: NewParallelGroup(anims...)})
	}
	return s
}

// AddGroup appends an existing parallel group as one step; the step ends when
// the group meets its completion policy.
func (s *Sequence) AddGroup(g *ParallelGroup) *Sequence {
	if s != nil && g != nil {
		s.steps = append(s.steps, seqStep{kind: stepParallel, group: g})
	}
	return s
}

// OnStep registers a callback fired with the index of each step as it
// becomes active, the first step included.
func (s *Sequence) OnStep(fn func(index int)) *Sequence {
	if s != nil {
		s.onStep = fn
	}
	return s
}

// OnComplete registers a callback fired once when the last step finishes.
func (s *Sequence) OnComplete(fn func()) *Sequence {
	if s != nil {
		s.onComplete = fn
	}
	return s
}

// Len returns the number of steps.
func (s *Sequence) Len() int { return len(s.steps) }

// CurrentIndex returns the active step index; Len() once done.
func (s *Sequence) CurrentIndex() int { return s.index }

// Playing reports whether the sequence is progressing.
func (s *Sequence) Playing() bool { return s.playing }

// Done reports whether every step has finished.
func (s *Sequence) Done() bool { return s.done }

// Start begins (or restarts) the sequence at step 0.
func (s *Sequence) Start() {
	if s == nil {
		return
	}
	for _, st := range s.steps {
		switch st.kind {
		case stepAnimation:
			st.anim.Stop()
		case stepParallel:
			st.group.Stop()
		}
	}
	s.stopTrailing()
	s.index = 0
	s.started = true
	s.playing = true
	s.done = false
	s.run++
	s.enter()
}

// Pause stops progression; the active step keeps its position.
func (s *Sequence) Pause() {
	if s != nil && s.started && !s.done {
		s.playing = false
	}
}

// Resume continues a paused sequence.
func (s *Sequence) Resume() {
	if s != nil && s.started && !s.done {
		s.playing = true
	}
}

// Stop halts the sequence without firing OnComplete and rewinds it.
func (s *Sequence) Stop() {
	if s == nil {
		return
	}
	if s.index < len(s.steps) {
		s.stopStep(s.index)
	}
	s.stopTrailing()
	s.index = 0
	s.started = false
	s.playing = false
	s.done = false
	s.run++
}

// Skip abandons the active step and enters the next one immediately. Skipped
// animations are stopped without firing their OnComplete.
func (s *Sequence) Skip() {
	if s == nil || !s.started || s.done {
		return
	}
	s.stopStep(s.index)
	s.run++
	s.advance()
}

// Update advances the active step by dt and reports whether the sequence is
// still running. A finished step hands over to the next one on the same
// frame; leftover time is not carried into it. A sequence that has completed
// keeps reporting true while trailing group members are still running.
func (s *Sequence) Update(dt float64) bool {
	if s == nil {
		return false
	}
	if s.playing || s.done {
		s.updateTrailing(dt)
	}
	if s.done {
		return len(s.trailing) > 0
	}
	if !s.playing {
		return s.started
	}

	run := s.run
	st := &s.steps[s.index]
	finished := false
	switch st.kind {
	case stepAnimation:
		finished = !st.anim.Update(dt)
	case stepDelay:
		s.waitLeft -= dt
		finished = s.waitLeft <= 0
	case stepParallel:
		active := st.group.Update(dt)
		finished = !active || st.group.Done()
		if finished && active && s.run == run {
			s.trailing = append(s.trailing, st.group)
		}
	}
	// a completion callback may have restarted, stopped or skipped us
	if finished && s.run == run {
		s.advance()
	}
	return s.started && !s.done || len(s.trailing) > 0
}

func (s *Sequence) updateTrailing(dt float64) {
	if len(s.trailing) == 0 {
		return
	}
	run := s.run
	kept := s.trailing[:0]
	for _, g := range s.trailing {
		if g.Update(dt) {
			kept = append(kept, g)
		}
	}
	if s.run != run {
		// restarted or stopped from a member callback
		return
	}
	clear(s.trailing[len(kept):])
	s.trailing = kept
}

func (s *Sequence) stopTrailing() {
	for _, g := range s.trailing {
		g.Stop()
	}
	clear(s.trailing)
	s.trailing = s.trailing[:0]
}

// enter activates the step at s.index, running callback steps inline until
// a timed step or the end is reached.
func (s *Sequence) enter() {
	run := s.run
	for s.index < len(s.steps) {
		st := &s.steps[s.index]
		if s.onStep != nil {
			s.onStep(s.index)
		}
		emit(s.sink, Event{Kind: EventSequenceStep, Source: s.Name, Index: s.index})

		switch st.kind {
		case stepAnimation:
			st.anim.Start()
			return
		case stepDelay:
			s.waitLeft = st.delay
			if s.waitLeft > 0 {
				return
			}
		case stepParallel:
			st.group.Start()
			if !st.group.Done() {
				return
			}
		case stepCallback:
			if st.fn != nil {
				st.fn()
			}
		}
		if s.run != run {
			return
		}
		s.index++
	}
	s.finish()
}

func (s *Sequence) advance() {
	s.index++
	s.enter()
}

func (s *Sequence) stopStep(i int) {
	st := &s.steps[i]
	switch st.kind {
	case stepAnimation:
		st.anim.Stop()
	case stepParallel:
		st.group.Stop()
	}
}

func (s *Sequence) finish() {
	s.index = len(s.steps)
	s.playing = false
	s.done = true
	if s.onComplete != nil {
		s.onComplete()
	}
	emit(s.sink, Event{Kind: EventSequenceComplete, Source: s.Name})
}
