package keyframe

import "sort"

// Sample is one point of a sampled timeline.
type Sample struct {
	Progress float64 `json:"progress"`
	Time     float64 `json:"time"`
	Value    float64 `json:"value"`
}

// locate returns the index of the segment whose [start, start+duration)
// interval contains t, -1 before the start, or Len() at or after the end.
func (tl *Timeline) locate(t float64) int {
	if !(t >= 0) || len(tl.spans) == 0 {
		return -1
	}
	if t >= tl.total {
		return len(tl.spans)
	}
	return sort.Search(len(tl.starts), func(i int) bool { return tl.starts[i] > t }) - 1
}

// ValueAtTime returns the track value t seconds into the timeline. Times
// before 0 yield the initial value; times at or after Duration yield the
// final target exactly.
func (tl *Timeline) ValueAtTime(t float64) float64 {
	switch i := tl.locate(t); {
	case i < 0:
		return tl.initial
	case i >= len(tl.spans):
		return tl.spans[len(tl.spans)-1].target
	default:
		v, _ := tl.spans[i].evaluate(t - tl.starts[i])
		return v
	}
}

// ValueAtProgress returns ValueAtTime(p * Duration()). p outside [0, 1] is
// clamped by the same rules.
func (tl *Timeline) ValueAtProgress(p float64) float64 {
	return tl.ValueAtTime(p * tl.total)
}

// VelocityAtTime returns the rate of change, in value per second, t seconds
// into the timeline. It is 0 outside [0, Duration).
func (tl *Timeline) VelocityAtTime(t float64) float64 {
	i := tl.locate(t)
	if i < 0 || i >= len(tl.spans) {
		return 0
	}
	_, v := tl.spans[i].evaluate(t - tl.starts[i])
	return v
}

// SampleAt returns the sample t seconds into the timeline.
func (tl *Timeline) SampleAt(t float64) Sample {
	s := Sample{Time: t, Value: tl.ValueAtTime(t)}
	if tl.total > 0 {
		s.Progress = clamp01(t / tl.total)
	}
	return s
}

// Sample returns n+1 evenly spaced samples covering progress 0 through 1
// inclusive, suitable for drawing the timeline as a curve. n < 1 is treated
// as 1.
func (tl *Timeline) Sample(n int) []Sample {
	n = max(n, 1)
	out := make([]Sample, n+1)
	for i := range out {
		p := float64(i) / float64(n)
		out[i] = Sample{Progress: p, Time: p * tl.total, Value: tl.ValueAtProgress(p)}
	}
	return out
}
