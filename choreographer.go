package choreo

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Choreographer drives independent timelines, sequences and parallel groups
// from one Update call with a shared speed multiplier. It adds no semantics
// of its own. Finished sequences and groups are dropped; timelines stay
// until removed so they can be replayed.
type Choreographer struct {
	timelines []*Timeline
	sequences []*Sequence
	groups    []*ParallelGroup

	speed    float64
	updating bool

	sink   EventSink
	debug  bool
	logger *log.Logger
}

// NewChoreographer creates an empty choreographer at speed 1.
func NewChoreographer() *Choreographer {
	return &Choreographer{speed: 1}
}

// AddTimeline takes ownership of tl.
func (c *Choreographer) AddTimeline(tl *Timeline) *Timeline {
	if c == nil || tl == nil || slices.Contains(c.timelines, tl) {
		return tl
	}
	if c.sink != nil {
		tl.sink = c.sink
	}
	c.timelines = append(c.timelines, tl)
	return tl
}

// AddSequence takes ownership of s.
func (c *Choreographer) AddSequence(s *Sequence) *Sequence {
	if c == nil || s == nil || slices.Contains(c.sequences, s) {
		return s
	}
	if c.sink != nil {
		s.sink = c.sink
	}
	c.sequences = append(c.sequences, s)
	return s
}

// AddGroup takes ownership of g.
func (c *Choreographer) AddGroup(g *ParallelGroup) *ParallelGroup {
	if c == nil || g == nil || slices.Contains(c.groups, g) {
		return g
	}
	if c.sink != nil {
		g.sink = c.sink
	}
	c.groups = append(c.groups, g)
	return g
}

// RemoveTimeline stops and drops tl. Safe from callbacks.
func (c *Choreographer) RemoveTimeline(tl *Timeline) {
	if c == nil || tl == nil {
		return
	}
	tl.playing = false
	c.timelines = removeItem(c.timelines, tl, c.updating)
}

// RemoveSequence stops and drops s. Safe from callbacks.
func (c *Choreographer) RemoveSequence(s *Sequence) {
	if c == nil || s == nil {
		return
	}
	s.Stop()
	c.sequences = removeItem(c.sequences, s, c.updating)
}

// RemoveGroup stops and drops g. Safe from callbacks.
func (c *Choreographer) RemoveGroup(g *ParallelGroup) {
	if c == nil || g == nil {
		return
	}
	g.Stop()
	c.groups = removeItem(c.groups, g, c.updating)
}

// removeItem deletes item from items. During an update the slot is nilled
// instead and compacted when the frame ends.
func removeItem[T comparable](items []T, item T, updating bool) []T {
	var zero T
	for i, it := range items {
		if it != item {
			continue
		}
		if updating {
			items[i] = zero
			return items
		}
		return slices.Delete(items, i, i+1)
	}
	return items
}

// Timelines returns the owned timelines. The slice MUST NOT be mutated.
func (c *Choreographer) Timelines() []*Timeline { return c.timelines }

// Sequences returns the owned sequences. The slice MUST NOT be mutated.
func (c *Choreographer) Sequences() []*Sequence { return c.sequences }

// Groups returns the owned groups. The slice MUST NOT be mutated.
func (c *Choreographer) Groups() []*ParallelGroup { return c.groups }

// Timeline returns the owned timeline with the given name.
func (c *Choreographer) Timeline(name string) *Timeline {
	if c == nil {
		return nil
	}
	for _, tl := range c.timelines {
		if tl != nil && tl.Name == name {
			return tl
		}
	}
	return nil
}

// Sequence returns the owned sequence with the given name.
func (c *Choreographer) Sequence(name string) *Sequence {
	if c == nil {
		return nil
	}
	for _, s := range c.sequences {
		if s != nil && s.Name == name {
			return s
		}
	}
	return nil
}

// Group returns the owned group with the given name.
func (c *Choreographer) Group(name string) *ParallelGroup {
	if c == nil {
		return nil
	}
	for _, g := range c.groups {
		if g != nil && g.Name == name {
			return g
		}
	}
	return nil
}

// Speed returns the global speed multiplier.
func (c *Choreographer) Speed() float64 { return c.speed }

// SetSpeed sets the global speed multiplier; negatives are treated as 0.
func (c *Choreographer) SetSpeed(s float64) {
	if c == nil {
		return
	}
	if s < 0 {
		s = 0
	}
	c.speed = s
}

// SetEventSink forwards events from every owned and future container.
func (c *Choreographer) SetEventSink(sink EventSink) {
	if c == nil {
		return
	}
	c.sink = sink
	for _, tl := range c.timelines {
		if tl != nil {
			tl.sink = sink
		}
	}
	for _, s := range c.sequences {
		if s != nil {
			s.sink = sink
		}
	}
	for _, g := range c.groups {
		if g != nil {
			g.sink = sink
		}
	}
}

// SetDebugMode enables per-frame stats logging.
func (c *Choreographer) SetDebugMode(enabled bool) { c.debug = enabled }

// SetLogger sets the debug logger. Nil restores log.Default().
func (c *Choreographer) SetLogger(l *log.Logger) { c.logger = l }

// PlayAll plays every timeline and starts every sequence and group that is
// not already running.
func (c *Choreographer) PlayAll() {
	if c == nil {
		return
	}
	for _, tl := range c.timelines {
		if tl != nil && !tl.playing {
			tl.Play()
		}
	}
	for _, s := range c.sequences {
		if s != nil && !s.started {
			s.Start()
		}
	}
	for _, g := range c.groups {
		if g != nil && !g.playing {
			g.Start()
		}
	}
}

// PauseAll pauses everything owned.
func (c *Choreographer) PauseAll() {
	if c == nil {
		return
	}
	for _, tl := range c.timelines {
		if tl != nil {
			tl.Pause()
		}
	}
	for _, s := range c.sequences {
		if s != nil {
			s.Pause()
		}
	}
	for _, g := range c.groups {
		if g != nil {
			g.Pause()
		}
	}
}

// ResumeAll resumes everything owned.
func (c *Choreographer) ResumeAll() {
	if c == nil {
		return
	}
	for _, tl := range c.timelines {
		if tl != nil {
			tl.Resume()
		}
	}
	for _, s := range c.sequences {
		if s != nil {
			s.Resume()
		}
	}
	for _, g := range c.groups {
		if g != nil {
			g.Resume()
		}
	}
}

// StopAll stops everything owned without firing completion callbacks.
func (c *Choreographer) StopAll() {
	if c == nil {
		return
	}
	for _, tl := range c.timelines {
		if tl != nil {
			tl.Stop()
		}
	}
	for _, s := range c.sequences {
		if s != nil {
			s.Stop()
		}
	}
	for _, g := range c.groups {
		if g != nil {
			g.Stop()
		}
	}
}

// Update forwards dt*Speed to every owned container. Containers added from a
// callback are first updated on the next frame.
func (c *Choreographer) Update(dt float64) {
	if c == nil {
		return
	}
	dt *= c.speed

	var t0 time.Time
	if c.debug {
		t0 = time.Now()
	}

	c.updating = true
	retired := 0

	n := len(c.timelines)
	for i := 0; i < n; i++ {
		if tl := c.timelines[i]; tl != nil {
			tl.Update(dt)
		}
	}

	n = len(c.sequences)
	kept := 0
	for i := 0; i < n; i++ {
		s := c.sequences[i]
		if s == nil {
			continue
		}
		if !s.Update(dt) && s.Done() {
			retired++
			continue
		}
		if c.sequences[i] == nil {
			// removed by its own callback
			continue
		}
		c.sequences[kept] = s
		kept++
	}
	c.sequences = compact(c.sequences, kept, n)

	n = len(c.groups)
	kept = 0
	for i := 0; i < n; i++ {
		g := c.groups[i]
		if g == nil {
			continue
		}
		if !g.Update(dt) && g.Done() {
			retired++
			continue
		}
		if c.groups[i] == nil {
			continue
		}
		c.groups[kept] = g
		kept++
	}
	c.groups = compact(c.groups, kept, n)

	c.updating = false
	c.timelines = slices.DeleteFunc(c.timelines, func(tl *Timeline) bool { return tl == nil })

	if c.debug {
		c.debugLog(choreoStats{
			updateTime: time.Since(t0),
			timelines:  len(c.timelines),
			sequences:  len(c.sequences),
			groups:     len(c.groups),
			retired:    retired,
		})
	}
}

// compact keeps the first kept entries and those appended after visited,
// dropping slots removed during the update.
func compact[T comparable](items []T, kept, visited int) []T {
	var zero T
	out := items[:0]
	for i, it := range items {
		if i >= kept && i < visited || it == zero {
			continue
		}
		out = append(out, it)
	}
	clear(items[len(out):])
	return out
}
