// Package ecs provides ECS adapters for ghost's snapshot lifecycle events.
//
// The primary adapter is [NewDonburiSink], which forwards every snapshot
// creation, deletion and timeline key of a [ghost.Session] into a [Donburi]
// world as typed events. Subscribe to [LifecycleEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	session.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
