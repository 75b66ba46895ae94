// Package ecs provides ECS adapters for choreo's lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges choreo events
// (animation completion, sequence steps, timeline markers and loops, state
// changes) into a [Donburi] world as typed events. Subscribe to [EventType]
// in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
