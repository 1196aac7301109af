package ecs

import (
	"github.com/phanxgames/keyframe"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// AnimationData plays one timeline on an entity. Value holds the sample at
// Elapsed and is what rendering systems read.
type AnimationData struct {
	Timeline *keyframe.Timeline
	Elapsed  float64
	Value    float64
	Done     bool
}

// Animation is the Donburi component holding an entity's AnimationData.
var Animation = donburi.NewComponentType[AnimationData]()

// CompletedEvent is published once when an animation reaches the end of its
// timeline.
type CompletedEvent struct {
	Entity donburi.Entity
	Value  float64
}

// CompletedEventType is the Donburi event type for finished animations.
// Subscribe to it and call ProcessEvents to react to completions.
var CompletedEventType = events.NewEventType[CompletedEvent]()

var animated = donburi.NewQuery(filter.Contains(Animation))

// NewAnimation returns AnimationData positioned at the start of tl.
func NewAnimation(tl *keyframe.Timeline) AnimationData {
	return AnimationData{Timeline: tl, Value: tl.Initial()}
}

// Play starts tl on entity, replacing any animation it was running. The
// entity must have the Animation component.
func Play(world donburi.World, entity donburi.Entity, tl *keyframe.Timeline) {
	Animation.SetValue(world.Entry(entity), NewAnimation(tl))
}

// Update advances every running animation in world by dt seconds.
func Update(world donburi.World, dt float64) {
	animated.Each(world, func(entry *donburi.Entry) {
		a := Animation.Get(entry)
		if a.Done || a.Timeline == nil {
			return
		}
		a.Elapsed += dt
		a.Value = a.Timeline.ValueAtTime(a.Elapsed)
		if a.Elapsed >= a.Timeline.Duration() {
			a.Done = true
			CompletedEventType.Publish(world, CompletedEvent{Entity: entry.Entity(), Value: a.Value})
		}
	})
}
