// Package ecs runs keyframe timelines inside a [Donburi] world.
//
// Give an entity the [Animation] component, start a timeline with [Play], and
// call [Update] once per tick from your systems. Each entity's
// AnimationData.Value holds its current sample. When a timeline ends a
// [CompletedEvent] is published on [CompletedEventType].
//
// Usage:
//
//	e := world.Create(ecs.Animation)
//	ecs.Play(world, e, timeline)
//	// each tick
//	ecs.Update(world, dt)
//	ecs.CompletedEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
