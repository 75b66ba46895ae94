package choreo

import "testing"

func TestParallelGroupWaitForAll(t *testing.T) {
	short := linearAnim(0, 1, 0.5)
	long := linearAnim(0, 1, 1)
	completed := 0
	g := NewParallelGroup(short, long).OnComplete(func() { completed++ })
	g.Start()

	if !g.Update(0.5) {
		t.Fatal("group should still be active")
	}
	if g.CompletedCount() != 1 || g.Done() {
		t.Errorf("CompletedCount = %d Done = %v, want 1 false", g.CompletedCount(), g.Done())
	}
	if g.Update(0.5) {
		t.Error("group should be inactive once every member finished")
	}
	if !g.Done() || completed != 1 {
		t.Errorf("Done = %v completed = %d", g.Done(), completed)
	}
	if g.Update(0.5) {
		t.Error("finished group reported active")
	}
	if completed != 1 {
		t.Error("onComplete fired twice")
	}
}

func TestParallelGroupFirstFinisher(t *testing.T) {
	short := linearAnim(0, 1, 0.5)
	long := linearAnim(0, 10, 1)
	completed := 0
	g := NewParallelGroup(short, long).OnComplete(func() { completed++ })
	g.WaitForAll = false
	g.Start()

	g.Update(0.5)
	if !g.Done() || completed != 1 {
		t.Fatalf("Done = %v completed = %d after first finisher", g.Done(), completed)
	}
	// The rest keep running.
	if !g.Update(0.25) {
		t.Fatal("long member should keep the group active")
	}
	if long.Current != 7.5 {
		t.Errorf("long.Current = %v, want 7.5", long.Current)
	}
	g.Update(0.25)
	if completed != 1 {
		t.Errorf("onComplete fired %d times, want 1", completed)
	}
}

func TestParallelGroupEmpty(t *testing.T) {
	completed := false
	g := NewParallelGroup().OnComplete(func() { completed = true })
	g.Start()
	if !g.Done() || !completed {
		t.Error("empty group should complete on start")
	}
	if g.Update(0.1) {
		t.Error("empty group reported active")
	}
}

func TestParallelGroupPauseStop(t *testing.T) {
	a := linearAnim(0, 10, 1)
	g := NewParallelGroup(a)
	g.Start()
	g.Pause()
	if !g.Update(0.5) || a.Current != 0 {
		t.Fatalf("paused group advanced: %v", a.Current)
	}
	g.Resume()
	g.Update(0.5)
	if a.Current != 5 {
		t.Errorf("Current = %v, want 5", a.Current)
	}

	completed := false
	g.OnComplete(func() { completed = true })
	g.Stop()
	if g.Update(1) || completed {
		t.Error("stopped group should neither run nor complete")
	}
	if g.Playing() {
		t.Error("stopped group reports playing")
	}
}

func TestParallelGroupAddWhilePlaying(t *testing.T) {
	g := NewParallelGroup(linearAnim(0, 1, 1))
	g.Start()
	late := linearAnim(0, 10, 1)
	g.Add(late)
	if late.State() != StateRunning {
		t.Fatal("member added mid-run should start at once")
	}
	g.Update(0.5)
	if late.Current != 5 {
		t.Errorf("late.Current = %v, want 5", late.Current)
	}
}

func TestParallelGroupRestart(t *testing.T) {
	a := linearAnim(0, 1, 0.5)
	completed := 0
	g := NewParallelGroup(a).OnComplete(func() { completed++ })
	g.Start()
	g.Update(0.5)
	g.Start()
	if g.Done() || g.CompletedCount() != 0 {
		t.Fatal("restart should clear completion")
	}
	g.Update(0.5)
	if completed != 2 {
		t.Errorf("completed = %d, want 2", completed)
	}
}

func TestParallelGroupEvent(t *testing.T) {
	sink := &recordingSink{}
	g := NewParallelGroup(linearAnim(0, 1, 0.1))
	g.Name = "burst"
	g.sink = sink
	g.Start()
	g.Update(0.1)
	if sink.count(EventGroupComplete) != 1 || sink.events[0].Source != "burst" {
		t.Errorf("events = %+v", sink.events)
	}
}
