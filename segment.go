package keyframe

import (
	"fmt"
	"math"
)

// Kind selects how a Segment interpolates toward its target.
type Kind uint8

const (
	KindLinear Kind = iota // eased interpolation through a Curve
	KindCubic              // Hermite interpolation with velocity constraints
	KindSpring             // damped harmonic oscillator
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindCubic:
		return "cubic"
	case KindSpring:
		return "spring"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Segment is one interpolation unit of a timeline: it moves the track from
// wherever the previous segment ended to Target over Duration seconds.
// Segments are values; the With methods return modified copies.
type Segment struct {
	kind     Kind
	target   float64
	duration float64

	curve  Curve
	spring Spring

	startVelocity    float64
	endVelocity      float64
	hasStartVelocity bool
	hasEndVelocity   bool
}

// LinearSegment interpolates to target, shaping progress with curve.
func LinearSegment(target, duration float64, curve Curve) Segment {
	return Segment{kind: KindLinear, target: target, duration: duration, curve: curve}
}

// CubicSegment moves to target along a Hermite curve. Without explicit
// velocities it starts with the velocity the previous segment ended with and
// comes to rest at target.
func CubicSegment(target, duration float64) Segment {
	return Segment{kind: KindCubic, target: target, duration: duration}
}

// SpringSegment releases spring toward target and cuts it off after
// duration seconds, settled or not.
//
// The segment after it starts from target, not from where the spring was cut
// off. A spring that has not settled by then makes the value jump at the
// seam by the remaining displacement; give it a long enough duration, or
// make it the last segment, to avoid that. Its velocity at the cut is still
// passed on.
func SpringSegment(target, duration float64, spring Spring) Segment {
	return Segment{kind: KindSpring, target: target, duration: duration, spring: spring}
}

// WithStartVelocity returns a copy of s that starts at velocity v instead of
// inheriting the previous segment's end velocity. Linear segments ignore it.
func (s Segment) WithStartVelocity(v float64) Segment {
	s.startVelocity = v
	s.hasStartVelocity = true
	return s
}

// WithEndVelocity returns a copy of s that arrives at its target with
// velocity v. Only cubic segments honor it.
func (s Segment) WithEndVelocity(v float64) Segment {
	s.endVelocity = v
	s.hasEndVelocity = true
	return s
}

func (s Segment) Kind() Kind           { return s.kind }
func (s Segment) Target() float64      { return s.target }
func (s Segment) Duration() float64    { return s.duration }
func (s Segment) Curve() Curve         { return s.curve }
func (s Segment) SpringParams() Spring { return s.spring }

// StartVelocity returns the explicit start velocity, if one was set.
func (s Segment) StartVelocity() (float64, bool) { return s.startVelocity, s.hasStartVelocity }

// EndVelocity returns the explicit end velocity, if one was set.
func (s Segment) EndVelocity() (float64, bool) { return s.endVelocity, s.hasEndVelocity }

// invalid returns why the segment cannot be part of a timeline, or "".
func (s Segment) invalid() string {
	switch {
	case !(s.duration > 0) || math.IsInf(s.duration, 0):
		return fmt.Sprintf("duration %v must be positive and finite", s.duration)
	case !isFinite(s.target):
		return fmt.Sprintf("target %v is not finite", s.target)
	case s.hasStartVelocity && !isFinite(s.startVelocity):
		return fmt.Sprintf("start velocity %v is not finite", s.startVelocity)
	case s.hasEndVelocity && !isFinite(s.endVelocity):
		return fmt.Sprintf("end velocity %v is not finite", s.endVelocity)
	}
	switch s.kind {
	case KindLinear, KindCubic:
		return ""
	case KindSpring:
		return s.spring.invalid()
	default:
		return fmt.Sprintf("unknown kind %v", s.kind)
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
