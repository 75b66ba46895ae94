package ecs

import (
	"testing"

	"github.com/phanxgames/choreo"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []choreo.Event
	EventType.Subscribe(world, func(w donburi.World, e choreo.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(choreo.Event{Kind: choreo.EventAnimationComplete, AnimationID: 42})
	sink.EmitEvent(choreo.Event{Kind: choreo.EventTimelineMarker, Source: "intro", Marker: "hit", Time: 1.5})

	// Events are queued; process them.
	EventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Kind != choreo.EventAnimationComplete || e.AnimationID != 42 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Marker != "hit" || e.Source != "intro" || e.Time != 1.5 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_KindFilter(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world, choreo.EventStateChange)

	var received []choreo.Event
	EventType.Subscribe(world, func(w donburi.World, e choreo.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(choreo.Event{Kind: choreo.EventAnimationComplete})
	sink.EmitEvent(choreo.Event{Kind: choreo.EventStateChange, From: "idle", To: "walk"})
	EventType.ProcessEvents(world)

	if len(received) != 1 || received[0].To != "walk" {
		t.Fatalf("received = %+v, want only the state change", received)
	}
}

func TestDonburiSink_SceneEvents(t *testing.T) {
	world := donburi.NewWorld()
	scene := choreo.NewScene()
	scene.SetEventSink(NewDonburiSink(world))

	var kinds []choreo.EventKind
	EventType.Subscribe(world, func(w donburi.World, e choreo.Event) {
		kinds = append(kinds, e.Kind)
	})

	box := scene.NewNode("box")
	scene.Animate(choreo.NewAnimation(0, 1, 0.5).WithEasing(choreo.EaseLinear).Bind(box, choreo.PropX))

	seq := choreo.NewSequence().Wait(0.25)
	scene.Choreographer().AddSequence(seq)
	seq.Start()

	for i := 0; i < 4; i++ {
		scene.Update(0.25)
	}
	EventType.ProcessEvents(world)

	want := map[choreo.EventKind]int{
		choreo.EventSequenceStep:      1,
		choreo.EventSequenceComplete:  1,
		choreo.EventAnimationComplete: 1,
	}
	got := map[choreo.EventKind]int{}
	for _, k := range kinds {
		got[k]++
	}
	for k, n := range want {
		if got[k] != n {
			t.Errorf("%s events = %d, want %d", k, got[k], n)
		}
	}
	if box.X != 1 {
		t.Errorf("box.X = %v, want 1", box.X)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	EventType.Subscribe(world, func(w donburi.World, e choreo.Event) {
		count1++
	})
	EventType.Subscribe(world, func(w donburi.World, e choreo.Event) {
		count2++
	})

	sink.EmitEvent(choreo.Event{Kind: choreo.EventGroupComplete})
	EventType.ProcessEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("count1=%d count2=%d, want 1 each", count1, count2)
	}
}
