package choreo

import (
	"math"
	"testing"
)

func linearAnim(from, to, duration float64) *Animation {
	return NewAnimation(from, to, duration).WithEasing(EaseLinear)
}

func TestAnimationBasic(t *testing.T) {
	completed := 0
	a := linearAnim(0, 10, 1).OnComplete(func() { completed++ })
	a.Start()

	if !a.Update(0.5) {
		t.Fatal("should be alive halfway")
	}
	if a.Current != 5 {
		t.Errorf("Current = %v, want 5", a.Current)
	}
	if a.Update(0.5) {
		t.Fatal("should finish after the full duration")
	}
	if a.Current != 10 {
		t.Errorf("Current = %v, want 10", a.Current)
	}
	if a.State() != StateCompleted {
		t.Errorf("State = %v, want completed", a.State())
	}
	if completed != 1 {
		t.Errorf("onComplete fired %d times, want 1", completed)
	}
	if a.Update(0.5) {
		t.Error("completed animation should not be alive")
	}
	if completed != 1 {
		t.Errorf("onComplete fired again after completion")
	}
}

func TestAnimationIdleDoesNotAdvance(t *testing.T) {
	a := linearAnim(0, 10, 1)
	if a.Update(0.5) {
		t.Error("idle animation reported alive")
	}
	if a.Current != 0 {
		t.Errorf("Current = %v, want 0", a.Current)
	}
}

func TestAnimationRepeat(t *testing.T) {
	completed := 0
	passes := 0
	a := linearAnim(0, 1, 1).WithRepeat(2).OnComplete(func() { completed++ })
	a.OnUpdate(func(v float64) {
		if v == 1 {
			passes++
		}
	})
	a.Start()
	for i := 0; i < 3; i++ {
		alive := a.Update(1)
		if want := i < 2; alive != want {
			t.Fatalf("pass %d alive = %v, want %v", i, alive, want)
		}
	}
	if passes != 3 {
		t.Errorf("played %d passes, want 3", passes)
	}
	if completed != 1 {
		t.Errorf("onComplete fired %d times, want 1", completed)
	}
}

func TestAnimationAutoReverse(t *testing.T) {
	a := linearAnim(0, 10, 1).WithAutoReverse(true)
	a.Start()

	steps := []float64{5, 10, 5, 0}
	for i, want := range steps {
		alive := a.Update(0.5)
		if a.Current != want {
			t.Errorf("step %d: Current = %v, want %v", i, a.Current, want)
		}
		if i < len(steps)-1 && !alive {
			t.Fatalf("step %d: finished early", i)
		}
		if i == len(steps)-1 && alive {
			t.Fatal("should finish after forward and backward passes")
		}
	}
}

func TestAnimationInfiniteRepeat(t *testing.T) {
	a := linearAnim(0, 1, 0.1).WithRepeat(-1)
	a.Start()
	for i := 0; i < 1000; i++ {
		if !a.Update(0.1) {
			t.Fatalf("infinite animation finished at step %d", i)
		}
	}
}

func TestAnimationDelay(t *testing.T) {
	a := linearAnim(0, 10, 1).WithDelay(0.5)
	a.Start()

	a.Update(0.25)
	a.Update(0.25)
	if a.Current != 0 || a.Elapsed != 0 {
		t.Fatalf("value moved during delay: Current=%v Elapsed=%v", a.Current, a.Elapsed)
	}
	a.Update(0.5)
	if a.Current != 5 {
		t.Errorf("Current = %v after delay + 0.5s, want 5", a.Current)
	}
	if a.Delay != 0.5 {
		t.Errorf("Delay = %v, configured value should be kept", a.Delay)
	}
}

func TestAnimationZeroDuration(t *testing.T) {
	completed := false
	a := linearAnim(3, 7, 0).OnComplete(func() { completed = true })
	a.Start()
	if a.Update(0) {
		t.Error("zero-duration animation should finish on first update")
	}
	if a.Current != 7 || !completed {
		t.Errorf("Current = %v completed = %v, want 7 true", a.Current, completed)
	}
	if a.Progress() != 1 {
		t.Errorf("Progress = %v, want 1", a.Progress())
	}
}

func TestAnimationPauseResume(t *testing.T) {
	a := linearAnim(0, 10, 1)
	a.Start()
	a.Update(0.25)
	a.Pause()
	if !a.Update(0.5) {
		t.Fatal("paused animation should stay alive")
	}
	if a.Current != 2.5 {
		t.Errorf("paused Current = %v, want 2.5", a.Current)
	}
	a.Resume()
	a.Update(0.25)
	if a.Current != 5 {
		t.Errorf("Current = %v after resume, want 5", a.Current)
	}
}

func TestAnimationStopDoesNotComplete(t *testing.T) {
	completed := false
	a := linearAnim(0, 10, 1).OnComplete(func() { completed = true })
	a.Start()
	a.Update(0.5)
	a.Stop()
	if completed {
		t.Error("Stop fired onComplete")
	}
	if a.Current != 0 || a.State() != StateIdle {
		t.Errorf("Stop left Current=%v State=%v", a.Current, a.State())
	}
}

func TestAnimationRestartAfterComplete(t *testing.T) {
	a := linearAnim(0, 10, 1)
	a.Start()
	a.Update(1)
	a.Start()
	if a.State() != StateRunning || a.Current != 0 {
		t.Fatalf("restart: State=%v Current=%v", a.State(), a.Current)
	}
	a.Update(0.5)
	if a.Current != 5 {
		t.Errorf("Current = %v, want 5", a.Current)
	}
}

func TestAnimationDispose(t *testing.T) {
	a := linearAnim(0, 10, 1)
	a.Start()
	a.Dispose()
	if a.Update(0.5) {
		t.Error("disposed animation reported alive")
	}
	a.Start()
	if a.State() != StateIdle {
		t.Error("Start revived a disposed animation")
	}
	if !a.IsDisposed() {
		t.Error("IsDisposed = false")
	}
}

func TestAnimationBindWritesTarget(t *testing.T) {
	n := NewNode("n")
	a := linearAnim(0, 100, 1).Bind(n, PropY)
	a.Start()
	a.Update(0.25)
	if n.Y != 25 {
		t.Errorf("Y = %v, want 25", n.Y)
	}
	n.Dispose()
	a.Update(0.25)
	if n.Y != 25 {
		t.Errorf("disposed target was written: Y = %v", n.Y)
	}
	if tgt, p := a.BoundTarget(); tgt != Target(n) || p != PropY {
		t.Error("BoundTarget mismatch")
	}
}

func TestAnimationCustomEase(t *testing.T) {
	a := NewAnimation(0, 1, 1).WithEase(func(t float64) float64 { return t * t })
	a.Start()
	a.Update(0.5)
	if a.Current != 0.25 {
		t.Errorf("Current = %v, want 0.25", a.Current)
	}
	a.WithEasing(EaseLinear)
	if a.Ease != nil {
		t.Error("WithEasing should clear the custom ease")
	}
}

func TestAnimationValueAt(t *testing.T) {
	a := linearAnim(0, 10, 1).WithAutoReverse(true).WithRepeat(1)
	tests := []struct {
		t, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.5, 5},
		{2, 0},
		{2.5, 5},
		{4, 0},
		{10, 0},
	}
	for _, tt := range tests {
		if got := a.ValueAt(tt.t); got != tt.want {
			t.Errorf("ValueAt(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestAnimationValueAtMatchesPlayback(t *testing.T) {
	a := NewAnimation(0, 10, 1).WithEasing(EaseOutCubic).WithAutoReverse(true).WithRepeat(1)
	probe := NewAnimation(0, 10, 1).WithEasing(EaseOutCubic).WithAutoReverse(true).WithRepeat(1)
	a.Start()
	for i := 1; i <= 16; i++ {
		a.Update(0.25)
		want := probe.ValueAt(float64(i) * 0.25)
		if math.Abs(a.Current-want) > 1e-12 {
			t.Errorf("t=%v: playback %v, ValueAt %v", float64(i)*0.25, a.Current, want)
		}
	}
}

func TestAnimationSpan(t *testing.T) {
	if s := linearAnim(0, 1, 1).Span(); s != 1 {
		t.Errorf("Span = %v, want 1", s)
	}
	if s := linearAnim(0, 1, 1).WithAutoReverse(true).WithRepeat(2).Span(); s != 6 {
		t.Errorf("Span = %v, want 6", s)
	}
	if s := linearAnim(0, 1, 1).WithRepeat(-1).Span(); !math.IsInf(s, 1) {
		t.Errorf("Span = %v, want +Inf", s)
	}
}

func TestAnimationIDsIncrease(t *testing.T) {
	a := NewAnimation(0, 1, 1)
	b := NewAnimation(0, 1, 1)
	if b.ID <= a.ID {
		t.Errorf("IDs not increasing: %d then %d", a.ID, b.ID)
	}
}

func TestSpringAnimation(t *testing.T) {
	a := NewSpringAnimation(0, 100, SpringDefault())
	if a.Duration < 0.1 || a.Duration > 5 {
		t.Errorf("Duration = %v, want within [0.1, 5]", a.Duration)
	}
	a.Start()
	for a.Update(1.0 / 60) {
	}
	if a.Current != 100 {
		t.Errorf("Current = %v, want 100", a.Current)
	}
	undamped := NewSpringAnimation(0, 1, SpringConfig{Stiffness: 100})
	if undamped.Duration != 1 {
		t.Errorf("undamped Duration = %v, want 1", undamped.Duration)
	}
}

func TestAnimStateString(t *testing.T) {
	for s, want := range map[AnimState]string{
		StateIdle: "idle", StateRunning: "running", StatePaused: "paused", StateCompleted: "completed",
	} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
