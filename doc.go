// Package choreo is a frame-stepped animation and timeline engine.
//
// Nothing in choreo runs on its own: every state change happens inside an
// Update(dt) call made by your frame loop, with dt in seconds. There is no
// global scheduler and no goroutine; construct what you need and drive it.
//
// # Quick start
//
// The simplest entry point is a [Scene], which owns named nodes plus one
// [Scheduler] and one [Choreographer]:
//
//	scene := choreo.NewScene()
//	box := scene.NewNode("box")
//	scene.Animate(choreo.NewAnimation(0, 200, 0.5).Bind(box, choreo.PropX))
//
//	for {
//		scene.Update(1.0 / 60)
//	}
//
// # Building blocks
//
// An [Animation] tweens one scalar with an [Easing] kind or any [EaseFunc]
// (cubic [Bezier], a Hermite [Curve], or a gween curve through [FromTween]).
// [KeyframeAnimation] interpolates between keys, [Spring] and
// [HarmonicSpring] simulate physical motion, and [TweenGroup] moves several
// properties of one target at once.
//
// Animations compose into a [Sequence], a [ParallelGroup] or a [Timeline]
// with tracks, markers, looping and scrubbing. An [AnimStateMachine]
// cross-fades between named states; a [Mixer] blends weighted layers onto
// one target. The [Choreographer] drives timelines, sequences and groups
// together with a global speed.
//
// Anything that implements [Target] can be animated. [Node] is the bundled
// implementation.
//
// # Scripts
//
// [LoadScript] reads a YAML scene description and [Script.Build] turns it
// into a ready-to-run Scene. The choreo command bakes, watches and plays
// such scripts.
//
// # Events
//
// Containers report lifecycle events (completion, steps, markers, loops,
// state changes) to an optional [EventSink]. The ecs subpackage forwards
// them into a [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package choreo
