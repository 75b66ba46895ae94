package ecs

import (
	"github.com/phanxgames/choreo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type for choreo lifecycle events.
var EventType = events.NewEventType[choreo.Event]()

type donburiSink struct {
	world donburi.World
	kinds map[choreo.EventKind]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to EventType and can be consumed with Subscribe and
// ProcessEvents. When kinds are given, only those kinds are forwarded.
func NewDonburiSink(world donburi.World, kinds ...choreo.EventKind) choreo.EventSink {
	s := &donburiSink{world: world}
	if len(kinds) > 0 {
		s.kinds = make(map[choreo.EventKind]bool, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event choreo.Event) {
	if s.kinds != nil && !s.kinds[event.Kind] {
		return
	}
	EventType.Publish(s.world, event)
}
