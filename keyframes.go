package keyframe

// Keyframe describes the kind and shape of a segment without its target or
// duration. A Keyframes list is turned into a Timeline by dividing a total
// value and duration evenly across its entries.
type Keyframe struct {
	template Segment
}

// LinearKeyframe eases with curve.
func LinearKeyframe(curve Curve) Keyframe {
	return Keyframe{template: Segment{kind: KindLinear, curve: curve}}
}

// CubicKeyframe moves along a Hermite curve.
func CubicKeyframe() Keyframe {
	return Keyframe{template: Segment{kind: KindCubic}}
}

// SpringKeyframe is driven by spring.
func SpringKeyframe(spring Spring) Keyframe {
	return Keyframe{template: Segment{kind: KindSpring, spring: spring}}
}

// WithStartVelocity returns a copy of k with an explicit start velocity.
func (k Keyframe) WithStartVelocity(v float64) Keyframe {
	k.template = k.template.WithStartVelocity(v)
	return k
}

// WithEndVelocity returns a copy of k with an explicit end velocity.
func (k Keyframe) WithEndVelocity(v float64) Keyframe {
	k.template = k.template.WithEndVelocity(v)
	return k
}

// Kind returns the kind of segment the keyframe produces.
func (k Keyframe) Kind() Kind { return k.template.kind }

// Segment returns the keyframe as a segment reaching target over duration.
func (k Keyframe) Segment(target, duration float64) Segment {
	s := k.template
	s.target = target
	s.duration = duration
	return s
}

// Keyframes is an ordered list of keyframes sharing one total duration.
type Keyframes []Keyframe

// Segments divides totalDuration equally across the keyframes. Keyframe i
// targets totalValue·(i+1)/len(ks), so the track climbs from 0 to
// totalValue in equal steps.
func (ks Keyframes) Segments(totalValue, totalDuration float64) []Segment {
	if len(ks) == 0 {
		return nil
	}
	n := float64(len(ks))
	duration := totalDuration / n
	out := make([]Segment, len(ks))
	for i, k := range ks {
		out[i] = k.Segment(totalValue*float64(i+1)/n, duration)
	}
	return out
}

// Timeline builds the equal-division timeline starting at 0.
func (ks Keyframes) Timeline(totalValue, totalDuration float64) (*Timeline, error) {
	return Build(0, ks.Segments(totalValue, totalDuration)...)
}
