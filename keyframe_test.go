package choreo

import "testing"

func TestKeyframesGetValue(t *testing.T) {
	k := NewKeyframes(1).
		Add(0, 0, EaseLinear).
		Add(0.5, 10, EaseLinear).
		Add(1, 0, EaseLinear)

	tests := []struct {
		t, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 5},
		{0.5, 10},
		{0.75, 5},
		{1, 0},
		{2, 0},
	}
	for _, tt := range tests {
		if got := k.GetValue(tt.t); got != tt.want {
			t.Errorf("GetValue(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestKeyframesUnorderedInsert(t *testing.T) {
	k := NewKeyframes(1).
		Add(1, 100, EaseLinear).
		Add(0, 0, EaseLinear).
		Add(0.5, 20, EaseLinear)
	if got := k.GetValue(0.75); got != 60 {
		t.Errorf("GetValue(0.75) = %v, want 60", got)
	}
	if got := k.GetValue(0.25); got != 10 {
		t.Errorf("GetValue(0.25) = %v, want 10", got)
	}
}

func TestKeyframesSegmentEasing(t *testing.T) {
	k := NewKeyframes(1).
		Add(0, 0, EaseLinear).
		Add(1, 1, EaseInQuad)
	if got := k.GetValue(0.5); got != 0.25 {
		t.Errorf("GetValue(0.5) = %v, want 0.25 with inQuad segment", got)
	}
}

func TestKeyframesEmpty(t *testing.T) {
	k := NewKeyframes(1)
	if got := k.GetValue(0.5); got != 0 {
		t.Errorf("empty GetValue = %v, want 0", got)
	}
	k.Start()
	k.Update(0.5)
	if k.Current != 0 {
		t.Errorf("empty Current = %v, want 0", k.Current)
	}
}

func TestKeyframesSingleKey(t *testing.T) {
	k := NewKeyframes(1).Add(0.5, 7, EaseLinear)
	for _, x := range []float64{0, 0.5, 1} {
		if got := k.GetValue(x); got != 7 {
			t.Errorf("GetValue(%v) = %v, want 7", x, got)
		}
	}
}

func TestKeyframesPlayback(t *testing.T) {
	n := NewNode("n")
	k := NewKeyframes(2).
		Add(0, 0, EaseLinear).
		Add(0.5, 100, EaseLinear).
		Add(1, 50, EaseLinear)
	a := k.Bind(n, PropX)
	a.Start()

	a.Update(0.5)
	if n.X != 50 {
		t.Errorf("X = %v at 0.5s, want 50", n.X)
	}
	a.Update(0.5)
	if n.X != 100 {
		t.Errorf("X = %v at 1s, want 100", n.X)
	}
	if a.Update(1) {
		t.Error("keyframe animation should finish at its duration")
	}
	if n.X != 50 {
		t.Errorf("X = %v at end, want 50", n.X)
	}
}

func TestKeyframesSeconds(t *testing.T) {
	k := NewKeyframes(4).UseSeconds().
		Add(0, 0, EaseLinear).
		Add(2, 10, EaseLinear).
		Add(4, 0, EaseLinear)
	k.Start()
	k.Update(1)
	if k.Current != 5 {
		t.Errorf("Current = %v at 1s, want 5", k.Current)
	}
	k.Update(1)
	if k.Current != 10 {
		t.Errorf("Current = %v at 2s, want 10", k.Current)
	}
}

func TestKeyframesFromTo(t *testing.T) {
	k := NewKeyframes(1).Add(0, 3, EaseLinear).Add(1, 9, EaseLinear)
	if k.From != 3 || k.To != 9 || k.Current != 3 {
		t.Errorf("From=%v To=%v Current=%v", k.From, k.To, k.Current)
	}
	if len(k.Keyframes()) != 2 {
		t.Errorf("Keyframes len = %d", len(k.Keyframes()))
	}
}

func TestKeyframesInScheduler(t *testing.T) {
	s := NewScheduler()
	k := NewKeyframes(1).Add(0, 0, EaseLinear).Add(1, 8, EaseLinear)
	s.Add(&k.Animation)
	s.Update(0.5)
	if k.Current != 4 {
		t.Errorf("Current = %v, want 4", k.Current)
	}
}
