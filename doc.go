// Package keyframe evaluates keyframe timelines: ordered sequences of typed
// animation segments that together describe one continuous scalar value over
// time.
//
// A timeline can be sampled live, to drive a position, a scale or a pitch
// multiplier frame by frame, or densely offline, to draw its curve. Both use
// the same evaluation path.
//
// # Quick start
//
//	tl, err := keyframe.Build(0,
//		keyframe.LinearSegment(0.5, 1, keyframe.EaseOut),
//		keyframe.CubicSegment(0.8, 0.5),
//		keyframe.SpringSegment(1, 1, keyframe.Bouncy),
//	)
//	if err != nil {
//		// a segment had a non-positive duration or a bad spring
//	}
//	v := tl.ValueAtTime(1.25)
//	points := tl.Sample(100) // 101 points from progress 0 to 1
//
// # Segments
//
// Every [Segment] has a target value and a duration. The segment starts where
// the previous one ended, so value continuity holds by construction.
//
//   - [LinearSegment] interpolates through a [Curve]: the presets [Linear],
//     [EaseIn], [EaseOut], [EaseInOut] and their circular variants, a raw
//     [Bezier] curve, or any gween easing function via [TweenCurve].
//   - [CubicSegment] follows a Hermite curve whose start and end velocities
//     can be constrained. Without an explicit start velocity it continues at
//     the velocity the previous segment ended with.
//   - [SpringSegment] releases a damped [Spring] toward the target and cuts it
//     off after the duration. Under-, critically and overdamped springs each
//     use their own closed-form solution.
//
// # Sampling
//
// [Timeline.ValueAtTime] and [Timeline.ValueAtProgress] never fail: queries
// before the start return the initial value and queries at or past the end
// return the final target exactly. A Timeline is immutable, so any number of
// goroutines may sample it at once.
//
// For live playback, advance a [TrackGroup] from your game loop, or let
// [Play] run a cancellable fixed-interval loop.
//
// Subpackage stream broadcasts sampled tracks over WebSocket, and the
// separate keyframe/ecs module adapts timelines to a [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package keyframe
