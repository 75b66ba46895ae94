package choreo

// ParallelGroup starts its members together and drives them every frame.
// The group owns its members outright.
type ParallelGroup struct {
	Name string
	// WaitForAll completes the group only once every member finished. When
	// false the group completes on the frame its first member finishes while
	// the rest keep running.
	WaitForAll bool

	anims    []*Animation
	finished []bool

	completedCount int
	playing        bool
	paused         bool
	done           bool

	onComplete func()
	sink       EventSink
}

// NewParallelGroup creates a group that waits for all members.
func NewParallelGroup(anims ...*Animation) *ParallelGroup {
	g := &ParallelGroup{WaitForAll: true}
	for _, a := range anims {
		g.Add(a)
	}
	return g
}

// Add appends a member. Members added while the group plays start at once.
func (g *ParallelGroup) Add(a *Animation) *ParallelGroup {
	if g == nil || a == nil {
		return g
	}
	g.anims = append(g.anims, a)
	g.finished = append(g.finished, false)
	if g.playing {
		a.Start()
	}
	return g
}

// OnComplete registers the completion callback, fired once per run.
func (g *ParallelGroup) OnComplete(fn func()) *ParallelGroup {
	if g != nil {
		g.onComplete = fn
	}
	return g
}

// Animations returns the members. The slice MUST NOT be mutated.
func (g *ParallelGroup) Animations() []*Animation { return g.anims }

// CompletedCount returns how many members have finished this run.
func (g *ParallelGroup) CompletedCount() int { return g.completedCount }

// Done reports whether the completion policy has been met.
func (g *ParallelGroup) Done() bool { return g.done }

// Playing reports whether the group is started and not paused.
func (g *ParallelGroup) Playing() bool { return g.playing && !g.paused }

// Start (re)starts every member from the beginning.
func (g *ParallelGroup) Start() {
	if g == nil {
		return
	}
	g.completedCount = 0
	g.done = false
	g.paused = false
	g.playing = true
	for i, a := range g.anims {
		g.finished[i] = false
		a.Stop()
		a.Start()
	}
	if len(g.anims) == 0 {
		g.complete()
	}
}

// Pause freezes the group.
func (g *ParallelGroup) Pause() {
	if g != nil && g.playing {
		g.paused = true
	}
}

// Resume undoes Pause.
func (g *ParallelGroup) Resume() {
	if g != nil {
		g.paused = false
	}
}

// Stop halts every member without firing any completion callback.
func (g *ParallelGroup) Stop() {
	if g == nil {
		return
	}
	g.playing = false
	g.paused = false
	for _, a := range g.anims {
		a.Stop()
	}
}

// Update drives every member by dt regardless of individual completion and
// reports whether any member is still active.
func (g *ParallelGroup) Update(dt float64) bool {
	if g == nil || !g.playing {
		return false
	}
	if g.paused {
		return true
	}
	anyActive := false
	for i, a := range g.anims {
		if g.finished[i] {
			continue
		}
		if a.Update(dt) {
			anyActive = true
			continue
		}
		g.finished[i] = true
		g.completedCount++
	}

	if !g.done {
		if g.WaitForAll && g.completedCount == len(g.anims) ||
			!g.WaitForAll && g.completedCount > 0 {
			g.complete()
		}
	}
	if !anyActive {
		g.playing = false
	}
	return anyActive
}

func (g *ParallelGroup) complete() {
	g.done = true
	if g.onComplete != nil {
		g.onComplete()
	}
	emit(g.sink, Event{Kind: EventGroupComplete, Source: g.Name})
}
