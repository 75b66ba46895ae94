package choreo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestChoreographerDrivesEverything(t *testing.T) {
	n := NewNode("n")
	c := NewChoreographer()

	tl := NewTimeline(0)
	tl.AddTrack("x").Add(linearAnim(0, 100, 1), 0).Bind(n, PropX)
	c.AddTimeline(tl)
	c.AddSequence(NewSequence().Add(linearAnim(0, 10, 1).Bind(n, PropY)))
	c.AddGroup(NewParallelGroup(linearAnim(1, 0, 1).Bind(n, PropOpacity)))
	c.PlayAll()

	c.Update(0.5)
	if n.X != 50 || n.Y != 5 || n.Opacity != 0.5 {
		t.Errorf("X=%v Y=%v Opacity=%v", n.X, n.Y, n.Opacity)
	}
}

func TestChoreographerRetiresFinished(t *testing.T) {
	c := NewChoreographer()
	tl := NewTimeline(0)
	tl.AddTrack("x").Add(linearAnim(0, 1, 0.5), 0)
	c.AddTimeline(tl)
	c.AddSequence(NewSequence().Add(linearAnim(0, 1, 0.5)))
	c.AddGroup(NewParallelGroup(linearAnim(0, 1, 0.5)))
	c.PlayAll()

	c.Update(0.5)
	if len(c.Sequences()) != 0 || len(c.Groups()) != 0 {
		t.Errorf("sequences = %d groups = %d, want 0 0", len(c.Sequences()), len(c.Groups()))
	}
	if len(c.Timelines()) != 1 {
		t.Error("finished timelines should stay for replay")
	}
}

func TestChoreographerSpeed(t *testing.T) {
	n := NewNode("n")
	c := NewChoreographer()
	c.AddSequence(NewSequence().Add(linearAnim(0, 10, 1).Bind(n, PropX)))
	c.PlayAll()
	c.SetSpeed(2)
	c.Update(0.25)
	if n.X != 5 {
		t.Errorf("X = %v, want 5 at double speed", n.X)
	}
	c.SetSpeed(-1)
	if c.Speed() != 0 {
		t.Errorf("Speed = %v, want 0", c.Speed())
	}
}

func TestChoreographerPauseResumeStop(t *testing.T) {
	n := NewNode("n")
	c := NewChoreographer()
	tl := NewTimeline(0)
	tl.AddTrack("x").Add(linearAnim(0, 100, 1), 0).Bind(n, PropX)
	c.AddTimeline(tl)
	c.PlayAll()

	c.PauseAll()
	c.Update(0.5)
	if n.X != 0 {
		t.Fatalf("paused choreographer advanced: X = %v", n.X)
	}
	c.ResumeAll()
	c.Update(0.5)
	if n.X != 50 {
		t.Errorf("X = %v, want 50", n.X)
	}
	c.StopAll()
	if tl.Playing() || n.X != 0 {
		t.Errorf("StopAll: playing = %v X = %v", tl.Playing(), n.X)
	}
}

func TestChoreographerRemoveFromCallback(t *testing.T) {
	c := NewChoreographer()
	victim := NewSequence().Add(linearAnim(0, 1, 10))
	victim.Name = "victim"
	var self *Sequence
	self = NewSequence().
		Add(linearAnim(0, 1, 0.1)).
		AddCallback(func() {
			c.RemoveSequence(victim)
			c.RemoveSequence(self)
		}).
		Wait(10)
	c.AddSequence(self)
	c.AddSequence(victim)
	other := NewSequence().Add(linearAnim(0, 1, 10))
	c.AddSequence(other)
	c.PlayAll()

	c.Update(0.1)
	if got := c.Sequences(); len(got) != 1 || got[0] != other {
		t.Errorf("sequences = %v, want only the untouched one", got)
	}
	if c.Sequence("victim") != nil {
		t.Error("removed sequence still found by name")
	}
}

func TestChoreographerAddFromCallback(t *testing.T) {
	c := NewChoreographer()
	late := NewSequence().Add(linearAnim(0, 10, 1))
	first := NewSequence().
		Add(linearAnim(0, 1, 0.1)).
		AddCallback(func() {
			late.Start()
			c.AddSequence(late)
		})
	c.AddSequence(first)
	c.PlayAll()

	c.Update(0.1)
	if len(c.Sequences()) != 1 || c.Sequences()[0] != late {
		t.Fatalf("sequences = %v, want the late one", c.Sequences())
	}
	c.Update(0.5)
	if late.CurrentIndex() != 0 || late.Done() {
		t.Error("late sequence should be mid-step")
	}
}

func TestChoreographerRemoveTimeline(t *testing.T) {
	c := NewChoreographer()
	tl := NewTimeline(1)
	tl.Name = "intro"
	c.AddTimeline(tl)
	c.AddTimeline(tl)
	if len(c.Timelines()) != 1 {
		t.Fatal("duplicate AddTimeline")
	}
	if c.Timeline("intro") != tl {
		t.Error("Timeline by name failed")
	}
	c.RemoveTimeline(tl)
	if len(c.Timelines()) != 0 {
		t.Error("RemoveTimeline failed")
	}
}

func TestChoreographerEventSink(t *testing.T) {
	sink := &recordingSink{}
	c := NewChoreographer()
	g := NewParallelGroup(linearAnim(0, 1, 0.1))
	g.Name = "burst"
	c.AddGroup(g)
	c.SetEventSink(sink)
	seq := NewSequence().Wait(0.1)
	c.AddSequence(seq)
	c.PlayAll()
	c.Update(0.1)
	if sink.count(EventGroupComplete) != 1 || sink.count(EventSequenceComplete) != 1 {
		t.Errorf("events = %+v", sink.events)
	}
	if c.Group("burst") != nil {
		t.Error("finished group should be retired")
	}
}

func TestChoreographerDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	c := NewChoreographer()
	c.SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	c.SetDebugMode(true)
	c.AddSequence(NewSequence().Wait(0.1))
	c.PlayAll()
	c.Update(0.1)
	if !strings.Contains(buf.String(), "retired=1") {
		t.Errorf("debug output = %q", buf.String())
	}
}

func TestCompact(t *testing.T) {
	a, b, c, d := new(int), new(int), new(int), new(int)
	// a kept, b visited but dropped, nil removed, c and d appended mid-frame.
	items := []*int{a, b, nil, c, d}
	got := compact(items, 1, 3)
	if len(got) != 3 || got[0] != a || got[1] != c || got[2] != d {
		t.Errorf("compact = %v", got)
	}
}
