package choreo

import (
	"math"
	"slices"
)

// TimelineEntry places one animation on a track at an absolute start time.
// The timeline samples the animation directly from the playhead, so the
// animation's own state machine is never advanced.
type TimelineEntry struct {
	Anim  *Animation
	Start float64
	// Duration overrides the length of one pass of Anim when > 0.
	Duration float64
	Label    string

	touched bool
	// restore is the target's value when the entry first took over; a
	// rewind writes it back.
	restore float64
}

// WithDuration overrides the length of one pass.
func (e *TimelineEntry) WithDuration(d float64) *TimelineEntry {
	if e != nil {
		e.Duration = d
	}
	return e
}

// WithLabel names the entry for Timeline.SeekLabel.
func (e *TimelineEntry) WithLabel(label string) *TimelineEntry {
	if e != nil {
		e.Label = label
	}
	return e
}

// Bind is shorthand for e.Anim.Bind.
func (e *TimelineEntry) Bind(t Target, p Property) *TimelineEntry {
	if e != nil {
		e.Anim.Bind(t, p)
	}
	return e
}

func (e *TimelineEntry) pass() float64 {
	if e.Duration > 0 {
		return e.Duration
	}
	return e.Anim.Duration
}

// begin is the timeline time at which the entry starts moving.
func (e *TimelineEntry) begin() float64 {
	return e.Start + e.Anim.Delay
}

// End returns the timeline time at which the entry holds its final value.
// Infinitely repeating entries report the end of their first cycle.
func (e *TimelineEntry) End() float64 {
	span := e.Anim.spanFor(e.pass())
	if math.IsInf(span, 1) {
		span = e.pass()
		if e.Anim.AutoReverse {
			span *= 2
		}
	}
	return e.begin() + span
}

// Track is a named lane of entries sorted by start time.
type Track struct {
	Name string
	// Weight is this track's share when several tracks drive the same
	// property. Defaults to 1.
	Weight float64
	Muted  bool
	Solo   bool

	entries []*TimelineEntry
}

// Add places a on the track at start seconds and returns the entry. Entries
// with equal starts keep insertion order.
func (tr *Track) Add(a *Animation, start float64) *TimelineEntry {
	if tr == nil || a == nil {
		return nil
	}
	e := &TimelineEntry{Anim: a, Start: start}
	tr.entries = append(tr.entries, e)
	slices.SortStableFunc(tr.entries, func(x, y *TimelineEntry) int {
		switch {
		case x.Start < y.Start:
			return -1
		case x.Start > y.Start:
			return 1
		}
		return 0
	})
	return e
}

// Entries returns the entries in start order. The slice MUST NOT be mutated.
func (tr *Track) Entries() []*TimelineEntry { return tr.entries }

// Marker is a named point on the timeline.
type Marker struct {
	Name string
	Time float64
}

type blendKey struct {
	target Target
	prop   Property
}

type blendAcc struct {
	sum    float64
	weight float64
}

// Timeline lays animations out on tracks against one playhead. Evaluation is
// a pure function of the playhead, so Seek(t) renders exactly what playback
// reaching t renders.
//
// Within a track, a later entry overrides an earlier one on the same
// property. Across tracks, values for the same property are averaged by
// track weight over the tracks that contribute. Muted tracks never evaluate,
// even when soloed; if any track is soloed only soloed tracks evaluate.
//
// Targets bound to timeline animations must be comparable (pointer types).
type Timeline struct {
	Name string
	// Loop wraps the playhead at either boundary instead of stopping.
	Loop bool
	// PingPong flips direction on every wrap. Only meaningful with Loop.
	PingPong bool
	// Reversed plays from the end toward 0.
	Reversed bool

	tracks  []*Track
	markers []Marker

	duration float64
	speed    float64
	time     float64
	playing  bool
	paused   bool

	onMarker   func(name string)
	onLoop     func()
	onComplete func()
	sink       EventSink

	values    map[blendKey]blendAcc
	trackVals map[blendKey]float64
	order     []blendKey
	rewinds   []rewind
}

type rewind struct {
	key blendKey
	v   float64
}

type sampleResult uint8

const (
	sampleNone sampleResult = iota
	sampleLive
	sampleRewound
)

// NewTimeline creates a timeline of the given length. A duration <= 0 makes
// the length follow the latest entry end.
func NewTimeline(duration float64) *Timeline {
	return &Timeline{
		duration:  duration,
		speed:     1,
		values:    make(map[blendKey]blendAcc),
		trackVals: make(map[blendKey]float64),
	}
}

// AddTrack creates a track with weight 1, or returns the existing track of
// that name.
func (tl *Timeline) AddTrack(name string) *Track {
	if tl == nil {
		return nil
	}
	if tr := tl.Track(name); tr != nil {
		return tr
	}
	tr := &Track{Name: name, Weight: 1}
	tl.tracks = append(tl.tracks, tr)
	return tr
}

// Track looks a track up by name.
func (tl *Timeline) Track(name string) *Track {
	if tl == nil {
		return nil
	}
	for _, tr := range tl.tracks {
		if tr.Name == name {
			return tr
		}
	}
	return nil
}

// Tracks returns the tracks in creation order. The slice MUST NOT be mutated.
func (tl *Timeline) Tracks() []*Track { return tl.tracks }

// AddMarker names a point in time. Re-adding a name moves the marker.
func (tl *Timeline) AddMarker(name string, t float64) *Timeline {
	if tl == nil {
		return tl
	}
	tl.markers = slices.DeleteFunc(tl.markers, func(m Marker) bool { return m.Name == name })
	tl.markers = append(tl.markers, Marker{Name: name, Time: t})
	slices.SortStableFunc(tl.markers, func(x, y Marker) int {
		switch {
		case x.Time < y.Time:
			return -1
		case x.Time > y.Time:
			return 1
		}
		return 0
	})
	return tl
}

// Marker returns the time of the named marker.
func (tl *Timeline) Marker(name string) (float64, bool) {
	if tl == nil {
		return 0, false
	}
	for _, m := range tl.markers {
		if m.Name == name {
			return m.Time, true
		}
	}
	return 0, false
}

// Markers returns the markers sorted by time. The slice MUST NOT be mutated.
func (tl *Timeline) Markers() []Marker { return tl.markers }

// OnMarker registers a callback fired when playback crosses a marker.
func (tl *Timeline) OnMarker(fn func(name string)) *Timeline {
	if tl != nil {
		tl.onMarker = fn
	}
	return tl
}

// OnLoop registers a callback fired on every wrap.
func (tl *Timeline) OnLoop(fn func()) *Timeline {
	if tl != nil {
		tl.onLoop = fn
	}
	return tl
}

// OnComplete registers a callback fired when a non-looping timeline reaches
// its boundary.
func (tl *Timeline) OnComplete(fn func()) *Timeline {
	if tl != nil {
		tl.onComplete = fn
	}
	return tl
}

// Duration returns the timeline length.
func (tl *Timeline) Duration() float64 {
	if tl.duration > 0 {
		return tl.duration
	}
	end := 0.0
	for _, tr := range tl.tracks {
		for _, e := range tr.entries {
			end = math.Max(end, e.End())
		}
	}
	return end
}

// SetDuration fixes the timeline length; <= 0 switches back to following
// the latest entry end.
func (tl *Timeline) SetDuration(d float64) {
	if tl != nil {
		tl.duration = d
	}
}

// Time returns the playhead.
func (tl *Timeline) Time() float64 { return tl.time }

// Progress returns the playhead as a fraction of the duration.
func (tl *Timeline) Progress() float64 {
	d := tl.Duration()
	if d <= 0 {
		return 1
	}
	return clamp01(tl.time / d)
}

// Speed returns the playback rate.
func (tl *Timeline) Speed() float64 { return tl.speed }

// SetSpeed sets the playback rate; negative rates are treated as 0. Use
// Reversed to play backward.
func (tl *Timeline) SetSpeed(s float64) {
	if tl == nil {
		return
	}
	if s < 0 {
		s = 0
	}
	tl.speed = s
}

// Playing reports whether the timeline is started and not paused.
func (tl *Timeline) Playing() bool { return tl.playing && !tl.paused }

// Paused reports whether the timeline is paused.
func (tl *Timeline) Paused() bool { return tl.playing && tl.paused }

// Play starts playback from the playhead. A playhead already sitting on the
// boundary it is heading for is rewound to the other end first.
func (tl *Timeline) Play() {
	if tl == nil {
		return
	}
	d := tl.Duration()
	switch {
	case !tl.Reversed && tl.time >= d:
		tl.time = 0
	case tl.Reversed && tl.time <= 0:
		tl.time = d
	}
	tl.playing = true
	tl.paused = false
	tl.evaluate(tl.time)
}

// Pause freezes the playhead.
func (tl *Timeline) Pause() {
	if tl != nil && tl.playing {
		tl.paused = true
	}
}

// Resume continues a paused timeline. It does nothing otherwise.
func (tl *Timeline) Resume() {
	if tl != nil && tl.playing && tl.paused {
		tl.paused = false
	}
}

// Stop halts playback and rewinds the playhead to 0 without firing
// OnComplete.
func (tl *Timeline) Stop() {
	if tl == nil {
		return
	}
	tl.playing = false
	tl.paused = false
	tl.time = 0
	tl.evaluate(0)
}

// Seek moves the playhead to t (clamped to the duration) and re-evaluates
// every entry. Markers between the old and new playhead do not fire.
func (tl *Timeline) Seek(t float64) {
	if tl == nil {
		return
	}
	tl.time = clamp(t, 0, tl.Duration())
	tl.evaluate(tl.time)
}

// SeekMarker seeks to the named marker and reports whether it exists.
func (tl *Timeline) SeekMarker(name string) bool {
	t, ok := tl.Marker(name)
	if ok {
		tl.Seek(t)
	}
	return ok
}

// SeekLabel seeks to the start of the first entry carrying label.
func (tl *Timeline) SeekLabel(label string) bool {
	if tl == nil {
		return false
	}
	for _, tr := range tl.tracks {
		for _, e := range tr.entries {
			if e.Label == label {
				tl.Seek(e.Start)
				return true
			}
		}
	}
	return false
}

// Update advances the playhead by dt*speed (negated while Reversed) and
// reports whether the timeline is still playing.
func (tl *Timeline) Update(dt float64) bool {
	if tl == nil || !tl.playing {
		return false
	}
	if tl.paused {
		return true
	}
	d := tl.Duration()
	step := dt * tl.speed
	if tl.Reversed {
		step = -step
	}
	next := tl.time + step

	if (step >= 0 && next < d) || (step < 0 && next > 0) {
		tl.fireMarkers(tl.time, next, false)
		tl.time = next
		tl.evaluate(next)
		return true
	}

	edge := d
	if step < 0 {
		edge = 0
	}
	tl.fireMarkers(tl.time, edge, false)
	over := math.Abs(next - edge)

	if !tl.Loop || d <= 0 {
		tl.time = edge
		tl.evaluate(edge)
		tl.playing = false
		if tl.onComplete != nil {
			tl.onComplete()
		}
		emit(tl.sink, Event{Kind: EventTimelineComplete, Source: tl.Name, Time: edge})
		return false
	}

	over = math.Mod(over, d)
	if tl.PingPong {
		tl.Reversed = !tl.Reversed
		if edge == d {
			next = d - over
		} else {
			next = over
		}
		tl.fireMarkers(edge, next, false)
	} else {
		start := 0.0
		if edge == 0 {
			start = d
			next = d - over
		} else {
			next = over
		}
		tl.fireMarkers(start, next, true)
	}
	tl.time = next
	tl.evaluate(next)
	if tl.onLoop != nil {
		tl.onLoop()
	}
	emit(tl.sink, Event{Kind: EventTimelineLoop, Source: tl.Name, Time: next})
	return tl.playing
}

// fireMarkers fires markers passed when moving from a to b. A marker at a is
// included only when inclusive is set; a marker at b always fires.
func (tl *Timeline) fireMarkers(a, b float64, inclusive bool) {
	if len(tl.markers) == 0 || a == b && !inclusive {
		return
	}
	hit := func(m Marker) {
		if tl.onMarker != nil {
			tl.onMarker(m.Name)
		}
		emit(tl.sink, Event{Kind: EventTimelineMarker, Source: tl.Name, Marker: m.Name, Time: m.Time})
	}
	if a <= b {
		for _, m := range tl.markers {
			if (m.Time > a || inclusive && m.Time == a) && m.Time <= b {
				hit(m)
			}
		}
		return
	}
	for i := len(tl.markers) - 1; i >= 0; i-- {
		m := tl.markers[i]
		if (m.Time < a || inclusive && m.Time == a) && m.Time >= b {
			hit(m)
		}
	}
}

func (tl *Timeline) trackLive(tr *Track, soloing bool) bool {
	if tr.Muted {
		return false
	}
	return !soloing || tr.Solo
}

// evaluate renders every live entry at playhead t.
func (tl *Timeline) evaluate(t float64) {
	soloing := false
	for _, tr := range tl.tracks {
		if tr.Solo && !tr.Muted {
			soloing = true
			break
		}
	}

	clear(tl.values)
	tl.order = tl.order[:0]
	tl.rewinds = tl.rewinds[:0]
	for _, tr := range tl.tracks {
		if !tl.trackLive(tr, soloing) {
			continue
		}
		clear(tl.trackVals)
		for _, e := range tr.entries {
			v, res := tl.sampleEntry(e, t)
			if res == sampleNone || e.Anim.target == nil || targetGone(e.Anim.target) {
				continue
			}
			k := blendKey{e.Anim.target, e.Anim.prop}
			if res == sampleRewound {
				tl.rewinds = append(tl.rewinds, rewind{k, v})
				continue
			}
			tl.trackVals[k] = v
		}
		w := tr.Weight
		if w < 0 {
			w = 0
		}
		// walk entries again for a stable write order
		for _, e := range tr.entries {
			if e.Anim.target == nil {
				continue
			}
			k := blendKey{e.Anim.target, e.Anim.prop}
			v, ok := tl.trackVals[k]
			if !ok {
				continue
			}
			delete(tl.trackVals, k)
			acc, seen := tl.values[k]
			if !seen {
				tl.order = append(tl.order, k)
			}
			acc.sum += v * w
			acc.weight += w
			tl.values[k] = acc
		}
	}

	for _, k := range tl.order {
		acc := tl.values[k]
		if acc.weight <= 0 || targetGone(k.target) {
			continue
		}
		k.target.Apply(k.prop, acc.sum/acc.weight)
	}
	// rewound entries only restore properties nothing else is driving
	for _, r := range tl.rewinds {
		if _, driven := tl.values[r.key]; driven || targetGone(r.key.target) {
			continue
		}
		r.key.target.Apply(r.key.prop, r.v)
		tl.values[r.key] = blendAcc{}
	}
}

// sampleEntry computes e's value at playhead t. Entries the playhead has not
// reached contribute nothing; one that had already been rendered is rewound
// once to the value its target held before the entry took over, so
// scrubbing backward matches playback.
func (tl *Timeline) sampleEntry(e *TimelineEntry, t float64) (float64, sampleResult) {
	a := e.Anim
	if a.disposed {
		return 0, sampleNone
	}
	local := t - e.begin()
	if local < 0 {
		if !e.touched {
			return 0, sampleNone
		}
		e.touched = false
		v := e.restore
		a.Current = a.sampleAt(0, e.pass())
		if a.onUpdate != nil {
			a.onUpdate(v)
		}
		return v, sampleRewound
	}

	span := a.spanFor(e.pass())
	covering := local <= span
	v := a.sampleAt(math.Min(local, span), e.pass())
	changed := !e.touched || v != a.Current
	if !e.touched && a.target != nil && !targetGone(a.target) {
		e.restore = a.target.Read(a.prop)
	}
	e.touched = true
	a.Current = v
	if a.onUpdate != nil && (covering || changed) {
		a.onUpdate(v)
	}
	return v, sampleLive
}
