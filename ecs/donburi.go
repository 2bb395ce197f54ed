// Package ecs provides ECS adapters for ghost.
package ecs

import (
	"github.com/phanxgames/ghost"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for ghost lifecycle events.
// Subscribe to this in your ECS systems to react to snapshots being created
// or deleted.
var LifecycleEventType = events.NewEventType[ghost.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) ghost.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event ghost.Event) {
	LifecycleEventType.Publish(s.world, event)
}
