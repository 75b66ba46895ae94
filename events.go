package choreo

// EventKind identifies a lifecycle notification emitted by a container.
type EventKind uint8

const (
	EventAnimationComplete EventKind = iota // a scheduled animation finished naturally
	EventSequenceStep                       // a sequence step became active
	EventSequenceComplete                   // a sequence ran out of steps
	EventGroupComplete                      // a parallel group met its completion policy
	EventTimelineMarker                     // the playhead crossed a marker
	EventTimelineLoop                       // a looping timeline wrapped
	EventTimelineComplete                   // a non-looping timeline hit its boundary
	EventStateChange                        // a state machine settled into a new state
)

// String returns a short name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventAnimationComplete:
		return "animation-complete"
	case EventSequenceStep:
		return "sequence-step"
	case EventSequenceComplete:
		return "sequence-complete"
	case EventGroupComplete:
		return "group-complete"
	case EventTimelineMarker:
		return "timeline-marker"
	case EventTimelineLoop:
		return "timeline-loop"
	case EventTimelineComplete:
		return "timeline-complete"
	case EventStateChange:
		return "state-change"
	}
	return "unknown"
}

// Event carries a lifecycle notification to an EventSink.
type Event struct {
	Kind EventKind
	// Source is the name of the emitting container (timeline, sequence,
	// group or state machine); empty for scheduler events.
	Source string
	// AnimationID is set for EventAnimationComplete.
	AnimationID uint64
	// Index is the step index for EventSequenceStep.
	Index int
	// Marker is the marker name for EventTimelineMarker.
	Marker string
	// Time is the playhead position for timeline events.
	Time float64
	// From and To are state names for EventStateChange.
	From, To string
}

// EventSink is the interface for optional event forwarding, e.g. into an
// ECS world (see the ecs subpackage). Events are delivered synchronously
// after the container's own callbacks.
type EventSink interface {
	EmitEvent(event Event)
}

func emit(sink EventSink, ev Event) {
	if sink != nil {
		sink.EmitEvent(ev)
	}
}
