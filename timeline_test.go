package choreo

import (
	"math"
	"slices"
	"testing"
)

// slideTimeline places x: 0->100 over [0, 1] and y: 0->50 over [1, 2].
func slideTimeline(n *Node) *Timeline {
	tl := NewTimeline(0)
	tr := tl.AddTrack("main")
	tr.Add(linearAnim(0, 100, 1), 0).Bind(n, PropX)
	tr.Add(linearAnim(0, 50, 1), 1).Bind(n, PropY)
	return tl
}

func TestTimelineAutoDuration(t *testing.T) {
	tl := slideTimeline(NewNode("n"))
	if d := tl.Duration(); d != 2 {
		t.Errorf("Duration = %v, want 2", d)
	}
	tl.SetDuration(5)
	if d := tl.Duration(); d != 5 {
		t.Errorf("Duration = %v, want 5", d)
	}
}

func TestTimelinePlayback(t *testing.T) {
	n := NewNode("n")
	tl := slideTimeline(n)
	completed := 0
	tl.OnComplete(func() { completed++ })
	tl.Play()

	tl.Update(0.5)
	if n.X != 50 || n.Y != 0 {
		t.Errorf("t=0.5: X=%v Y=%v", n.X, n.Y)
	}
	tl.Update(1)
	if n.X != 100 || n.Y != 25 {
		t.Errorf("t=1.5: X=%v Y=%v", n.X, n.Y)
	}
	if tl.Update(1) {
		t.Error("timeline should stop at its end")
	}
	if n.Y != 50 || tl.Time() != 2 || completed != 1 {
		t.Errorf("end: Y=%v Time=%v completed=%d", n.Y, tl.Time(), completed)
	}
	if tl.Progress() != 1 {
		t.Errorf("Progress = %v, want 1", tl.Progress())
	}
}

func TestTimelineSeekMatchesPlayback(t *testing.T) {
	played := NewNode("played")
	sought := NewNode("sought")
	build := func(n *Node) *Timeline {
		tl := NewTimeline(0)
		a := tl.AddTrack("a")
		a.Add(NewAnimation(0, 100, 1).WithEasing(EaseInOutQuad), 0).Bind(n, PropX)
		a.Add(NewAnimation(100, 0, 1).WithEasing(EaseOutBack), 1.5).Bind(n, PropX)
		b := tl.AddTrack("b")
		b.Add(NewAnimation(0, 1, 0.5).WithAutoReverse(true).WithRepeat(1), 0.25).Bind(n, PropOpacity)
		return tl
	}
	tp := build(played)
	ts := build(sought)
	tp.Play()

	for i := 1; i <= 12; i++ {
		tp.Update(0.25)
		ts.Seek(float64(i) * 0.25)
		if played.X != sought.X || played.Opacity != sought.Opacity {
			t.Errorf("t=%v: played (%v, %v) sought (%v, %v)",
				float64(i)*0.25, played.X, played.Opacity, sought.X, sought.Opacity)
		}
	}
}

func TestTimelineScrubBackwardRewinds(t *testing.T) {
	n := NewNode("n")
	tl := slideTimeline(n)
	tl.Seek(1.5)
	if n.Y != 25 {
		t.Fatalf("Y = %v at 1.5, want 25", n.Y)
	}
	tl.Seek(0.5)
	if n.Y != 0 {
		t.Errorf("Y = %v after scrubbing before its entry, want 0", n.Y)
	}
	if n.X != 50 {
		t.Errorf("X = %v, want 50", n.X)
	}
}

func TestTimelineRewindRestoresPriorValue(t *testing.T) {
	played := NewNode("played")
	sought := NewNode("sought")
	build := func(n *Node) *Timeline {
		n.X = 100
		tl := NewTimeline(2)
		tl.AddTrack("x").Add(linearAnim(0, 10, 1), 1).Bind(n, PropX)
		return tl
	}
	tp := build(played)
	ts := build(sought)

	tp.Play()
	tp.Update(0.5)
	ts.Seek(2)
	if sought.X != 10 {
		t.Fatalf("X = %v at the end, want 10", sought.X)
	}
	ts.Seek(0.5)
	if played.X != 100 || sought.X != played.X {
		t.Errorf("played X = %v sought X = %v, want both 100", played.X, sought.X)
	}
}

func TestTimelineRewoundEntryDoesNotOverrideLive(t *testing.T) {
	n := NewNode("n")
	tl := NewTimeline(3)
	tr := tl.AddTrack("x")
	tr.Add(linearAnim(0, 10, 1), 0).Bind(n, PropX)
	tr.Add(linearAnim(50, 60, 1), 2).Bind(n, PropX)

	tl.Seek(2.5)
	if n.X != 55 {
		t.Fatalf("X = %v, want 55", n.X)
	}
	tl.Seek(0.5)
	if n.X != 5 {
		t.Errorf("X = %v after scrubbing back, want 5 from the earlier entry", n.X)
	}
}

func TestTimelineSeekClamps(t *testing.T) {
	n := NewNode("n")
	tl := slideTimeline(n)
	tl.Seek(10)
	if tl.Time() != 2 || n.Y != 50 {
		t.Errorf("Time = %v Y = %v", tl.Time(), n.Y)
	}
	tl.Seek(-1)
	if tl.Time() != 0 || n.X != 0 {
		t.Errorf("Time = %v X = %v", tl.Time(), n.X)
	}
}

func TestTimelineMarkers(t *testing.T) {
	tl := slideTimeline(NewNode("n"))
	tl.AddMarker("mid", 1).AddMarker("early", 0.25).AddMarker("end", 2)
	var hits []string
	tl.OnMarker(func(name string) { hits = append(hits, name) })
	tl.Play()

	tl.Update(0.5)
	tl.Update(0.5)
	tl.Update(1)
	if !slices.Equal(hits, []string{"early", "mid", "end"}) {
		t.Errorf("hits = %v", hits)
	}
	if got := tl.Markers(); got[0].Name != "early" || got[2].Name != "end" {
		t.Errorf("markers not sorted: %v", got)
	}
}

func TestTimelineSeekDoesNotFireMarkers(t *testing.T) {
	tl := slideTimeline(NewNode("n"))
	tl.AddMarker("mid", 1)
	fired := false
	tl.OnMarker(func(string) { fired = true })
	tl.Seek(1.5)
	if !tl.SeekMarker("mid") || tl.Time() != 1 {
		t.Error("SeekMarker failed")
	}
	if fired {
		t.Error("Seek fired a marker")
	}
	if tl.SeekMarker("missing") {
		t.Error("SeekMarker found a missing marker")
	}
}

func TestTimelineMarkerMoves(t *testing.T) {
	tl := NewTimeline(1)
	tl.AddMarker("m", 0.2).AddMarker("m", 0.8)
	if at, _ := tl.Marker("m"); at != 0.8 || len(tl.Markers()) != 1 {
		t.Errorf("marker at %v, count %d", at, len(tl.Markers()))
	}
}

func TestTimelineLoop(t *testing.T) {
	n := NewNode("n")
	tl := NewTimeline(1)
	tl.AddTrack("x").Add(linearAnim(0, 100, 1), 0).Bind(n, PropX)
	tl.Loop = true
	tl.AddMarker("start", 0)
	loops := 0
	var hits []string
	tl.OnLoop(func() { loops++ })
	tl.OnMarker(func(name string) { hits = append(hits, name) })
	tl.Play()

	tl.Update(0.75)
	if !tl.Update(0.5) {
		t.Fatal("looping timeline stopped")
	}
	if loops != 1 {
		t.Errorf("loops = %d, want 1", loops)
	}
	if math.Abs(tl.Time()-0.25) > 1e-12 || math.Abs(n.X-25) > 1e-9 {
		t.Errorf("Time = %v X = %v after wrap", tl.Time(), n.X)
	}
	if !slices.Equal(hits, []string{"start"}) {
		t.Errorf("hits = %v, want the start marker on wrap", hits)
	}
}

func TestTimelinePingPong(t *testing.T) {
	n := NewNode("n")
	tl := NewTimeline(1)
	tl.AddTrack("x").Add(linearAnim(0, 100, 1), 0).Bind(n, PropX)
	tl.Loop = true
	tl.PingPong = true
	tl.Play()

	tl.Update(0.75)
	tl.Update(0.5)
	if !tl.Reversed {
		t.Fatal("ping-pong should flip direction at the end")
	}
	if math.Abs(tl.Time()-0.75) > 1e-12 || math.Abs(n.X-75) > 1e-9 {
		t.Errorf("Time = %v X = %v", tl.Time(), n.X)
	}
	tl.Update(0.5)
	if math.Abs(n.X-25) > 1e-9 {
		t.Errorf("X = %v heading back, want 25", n.X)
	}
	tl.Update(0.5)
	if tl.Reversed {
		t.Error("ping-pong should flip again at 0")
	}
}

func TestTimelineReversed(t *testing.T) {
	n := NewNode("n")
	tl := NewTimeline(1)
	tl.AddTrack("x").Add(linearAnim(0, 100, 1), 0).Bind(n, PropX)
	tl.Reversed = true
	tl.Play()
	if tl.Time() != 1 || n.X != 100 {
		t.Fatalf("reversed Play: Time = %v X = %v", tl.Time(), n.X)
	}
	tl.Update(0.25)
	if n.X != 75 {
		t.Errorf("X = %v, want 75", n.X)
	}
	if tl.Update(1) {
		t.Error("reversed timeline should stop at 0")
	}
	if n.X != 0 {
		t.Errorf("X = %v, want 0", n.X)
	}
}

func TestTimelineSpeed(t *testing.T) {
	n := NewNode("n")
	tl := slideTimeline(n)
	tl.SetSpeed(2)
	tl.Play()
	tl.Update(0.25)
	if n.X != 50 {
		t.Errorf("X = %v at double speed, want 50", n.X)
	}
	tl.SetSpeed(-3)
	if tl.Speed() != 0 {
		t.Errorf("Speed = %v, want 0", tl.Speed())
	}
}

func TestTimelinePauseResumeStop(t *testing.T) {
	n := NewNode("n")
	tl := slideTimeline(n)
	tl.Play()
	tl.Update(0.5)
	tl.Pause()
	if !tl.Update(0.5) || n.X != 50 || !tl.Paused() {
		t.Fatalf("paused timeline advanced: X = %v", n.X)
	}
	tl.Resume()
	tl.Update(0.25)
	if n.X != 75 {
		t.Errorf("X = %v, want 75", n.X)
	}
	completed := false
	tl.OnComplete(func() { completed = true })
	tl.Stop()
	if tl.Time() != 0 || n.X != 0 || completed || tl.Playing() {
		t.Errorf("Stop: Time = %v X = %v completed = %v", tl.Time(), n.X, completed)
	}
}

func TestTimelinePlayRewindsAtEnd(t *testing.T) {
	n := NewNode("n")
	tl := slideTimeline(n)
	tl.Seek(2)
	tl.Play()
	if tl.Time() != 0 || n.X != 0 {
		t.Errorf("Play at end: Time = %v X = %v", tl.Time(), n.X)
	}
}

func TestTimelineTrackWeights(t *testing.T) {
	n := NewNode("n")
	tl := NewTimeline(1)
	a := tl.AddTrack("a")
	a.Add(linearAnim(0, 0, 1), 0).Bind(n, PropX)
	b := tl.AddTrack("b")
	b.Weight = 3
	b.Add(linearAnim(100, 100, 1), 0).Bind(n, PropX)

	tl.Seek(0.5)
	if n.X != 75 {
		t.Errorf("X = %v, want weighted average 75", n.X)
	}
	b.Weight = -1
	tl.Seek(0.5)
	if n.X != 0 {
		t.Errorf("X = %v with negative weight, want 0", n.X)
	}
}

func TestTimelineMuteSolo(t *testing.T) {
	n := NewNode("n")
	tl := NewTimeline(1)
	a := tl.AddTrack("a")
	a.Add(linearAnim(10, 10, 1), 0).Bind(n, PropX)
	b := tl.AddTrack("b")
	b.Add(linearAnim(20, 20, 1), 0).Bind(n, PropX)

	b.Muted = true
	tl.Seek(0.5)
	if n.X != 10 {
		t.Errorf("muted: X = %v, want 10", n.X)
	}

	b.Muted = false
	b.Solo = true
	tl.Seek(0.5)
	if n.X != 20 {
		t.Errorf("solo: X = %v, want 20", n.X)
	}

	// A muted solo track is silent and does not silence the rest.
	b.Muted = true
	tl.Seek(0.5)
	if n.X != 10 {
		t.Errorf("muted solo: X = %v, want 10", n.X)
	}
}

func TestTimelineLaterEntryOverrides(t *testing.T) {
	n := NewNode("n")
	tl := NewTimeline(2)
	tr := tl.AddTrack("x")
	tr.Add(linearAnim(0, 10, 2), 0).Bind(n, PropX)
	tr.Add(linearAnim(100, 200, 1), 0.5).Bind(n, PropX)
	tl.Seek(1)
	if n.X != 150 {
		t.Errorf("X = %v, want 150 from the later entry", n.X)
	}
}

func TestTimelineEntryDurationOverrideAndLabel(t *testing.T) {
	n := NewNode("n")
	tl := NewTimeline(0)
	tl.AddTrack("x").Add(linearAnim(0, 100, 1), 1).Bind(n, PropX).WithDuration(2).WithLabel("slow")
	if tl.Duration() != 3 {
		t.Errorf("Duration = %v, want 3", tl.Duration())
	}
	if !tl.SeekLabel("slow") || tl.Time() != 1 {
		t.Fatalf("SeekLabel: Time = %v", tl.Time())
	}
	tl.Seek(2)
	if n.X != 50 {
		t.Errorf("X = %v, want 50", n.X)
	}
	if tl.SeekLabel("nope") {
		t.Error("SeekLabel found a missing label")
	}
}

func TestTimelineEntryDelay(t *testing.T) {
	n := NewNode("n")
	tl := NewTimeline(0)
	e := tl.AddTrack("x").Add(linearAnim(0, 100, 1).WithDelay(0.5), 0).Bind(n, PropX)
	if e.End() != 1.5 {
		t.Errorf("End = %v, want 1.5", e.End())
	}
	tl.Seek(1)
	if n.X != 50 {
		t.Errorf("X = %v, want 50", n.X)
	}
}

func TestTimelineEntryOnUpdate(t *testing.T) {
	tl := NewTimeline(2)
	var values []float64
	tl.AddTrack("x").Add(linearAnim(0, 1, 1).OnUpdate(func(v float64) { values = append(values, v) }), 0)
	tl.Seek(0.5)
	tl.Seek(1.5)
	tl.Seek(1.8)
	if !slices.Equal(values, []float64{0.5, 1}) {
		t.Errorf("values = %v, want [0.5 1]", values)
	}
}

func TestTimelineAddTrackReusesName(t *testing.T) {
	tl := NewTimeline(1)
	if tl.AddTrack("a") != tl.AddTrack("a") || len(tl.Tracks()) != 1 {
		t.Error("AddTrack should return the existing track")
	}
	if tl.Track("missing") != nil {
		t.Error("Track found a missing track")
	}
}

func TestTimelineEvents(t *testing.T) {
	sink := &recordingSink{}
	tl := slideTimeline(NewNode("n"))
	tl.Name = "intro"
	tl.sink = sink
	tl.AddMarker("m", 1)
	tl.Play()
	tl.Update(3)
	if sink.count(EventTimelineMarker) != 1 || sink.count(EventTimelineComplete) != 1 {
		t.Errorf("events = %+v", sink.events)
	}
}
