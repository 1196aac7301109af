package keyframe

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSegment is returned (wrapped) by Build when a segment has a
// non-positive duration, a non-finite value, or unusable spring parameters.
var ErrInvalidSegment = errors.New("keyframe: invalid segment")

// SegmentError reports which segment made Build fail. It unwraps to
// ErrInvalidSegment.
type SegmentError struct {
	Index  int
	Kind   Kind
	Reason string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("keyframe: invalid %s segment %d: %s", e.Kind, e.Index, e.Reason)
}

func (e *SegmentError) Unwrap() error { return ErrInvalidSegment }

// span is a segment resolved against its neighbours at build time.
type span struct {
	Segment
	from float64 // value at the start of the segment
	v0   float64 // velocity at the start of the segment
	v1   float64 // velocity at the end of the segment
}

// Timeline is an ordered sequence of segments forming one continuous scalar
// trajectory, starting at an initial value at time 0.
//
// A Timeline is immutable once built and safe for concurrent use: a live
// playback loop and an offline sampler may query the same instance at once.
type Timeline struct {
	initial float64
	spans   []span
	starts  []float64 // cumulative start time of each span
	total   float64
}

// Build composes segments into a Timeline starting at initial.
//
// Each segment starts at the previous segment's target (initial for the
// first). Cubic and spring segments without an explicit start velocity
// inherit the velocity the previous segment ended with; a spring cut off by
// its duration passes on its instantaneous velocity at that moment. A Linear
// segment whose curve ends on a vertical tangent, such as CircularEaseIn,
// passes on 0.
//
// Build returns an error wrapping ErrInvalidSegment if any segment is
// invalid; no Timeline is returned in that case. With no segments the
// Timeline evaluates to initial everywhere.
func Build(initial float64, segments ...Segment) (*Timeline, error) {
	if !isFinite(initial) {
		return nil, fmt.Errorf("%w: initial value %v is not finite", ErrInvalidSegment, initial)
	}

	tl := &Timeline{
		initial: initial,
		spans:   make([]span, len(segments)),
		starts:  make([]float64, len(segments)),
	}

	from, velocity, clock := initial, 0.0, 0.0
	for i, seg := range segments {
		if reason := seg.invalid(); reason != "" {
			return nil, &SegmentError{Index: i, Kind: seg.kind, Reason: reason}
		}

		sp := span{Segment: seg, from: from, v0: velocity}
		if seg.hasStartVelocity {
			sp.v0 = seg.startVelocity
		}

		switch seg.kind {
		case KindLinear:
			rate := (seg.target - from) / seg.duration
			sp.v0 = curveVelocity(seg.curve, 0, rate)
			sp.v1 = curveVelocity(seg.curve, 1, rate)
		case KindCubic:
			if seg.hasEndVelocity {
				sp.v1 = seg.endVelocity
			}
		case KindSpring:
			_, sp.v1 = seg.spring.Evaluate(seg.duration, from, seg.target, sp.v0)
		}

		tl.spans[i] = sp
		tl.starts[i] = clock
		clock += seg.duration
		from, velocity = seg.target, sp.v1
	}
	if math.IsInf(clock, 0) {
		return nil, fmt.Errorf("%w: total duration overflows", ErrInvalidSegment)
	}
	tl.total = clock
	return tl, nil
}

// Duration returns the sum of all segment durations.
func (tl *Timeline) Duration() float64 { return tl.total }

// Len returns the number of segments.
func (tl *Timeline) Len() int { return len(tl.spans) }

// Initial returns the value the timeline starts at.
func (tl *Timeline) Initial() float64 { return tl.initial }

// Final returns the value the timeline ends at: the last segment's target,
// or the initial value for an empty timeline.
func (tl *Timeline) Final() float64 {
	if len(tl.spans) == 0 {
		return tl.initial
	}
	return tl.spans[len(tl.spans)-1].target
}

// Segment returns the i'th segment as it was passed to Build.
func (tl *Timeline) Segment(i int) Segment { return tl.spans[i].Segment }

// StartTime returns the time at which the i'th segment begins.
func (tl *Timeline) StartTime(i int) float64 { return tl.starts[i] }

// StartValue returns the value the i'th segment starts from.
func (tl *Timeline) StartValue(i int) float64 { return tl.spans[i].from }

// StartVelocity returns the resolved velocity the i'th segment starts with,
// either explicit or inherited from the previous segment.
func (tl *Timeline) StartVelocity(i int) float64 { return tl.spans[i].v0 }

// EndVelocity returns the velocity the i'th segment ends with.
func (tl *Timeline) EndVelocity(i int) float64 { return tl.spans[i].v1 }

// evaluate returns the position and velocity elapsed seconds into the span.
func (sp *span) evaluate(elapsed float64) (float64, float64) {
	progress := elapsed / sp.duration
	switch sp.kind {
	case KindCubic:
		return evaluateCubic(progress, sp.from, sp.target, sp.v0, sp.v1, sp.duration)
	case KindSpring:
		return sp.spring.Evaluate(elapsed, sp.from, sp.target, sp.v0)
	default:
		delta := sp.target - sp.from
		return sp.from + delta*sp.curve.Evaluate(progress), curveVelocity(sp.curve, progress, delta/sp.duration)
	}
}

// curveVelocity returns the velocity of a Linear segment at progress, where
// rate is its average velocity. A vertical tangent has no finite velocity to
// hand on, so it reports 0 and the next segment starts from rest.
func curveVelocity(c Curve, progress, rate float64) float64 {
	slope := c.Slope(progress)
	if !isFinite(slope) {
		return 0
	}
	return slope * rate
}
