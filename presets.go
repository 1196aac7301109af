package keyframe

import (
	"fmt"
	"math"
)

// Heartbeat scale steps: the heart contracts to diastoleScale with a snappy
// spring over 30% of a beat, then relaxes linearly to systoleScale over the
// following 60%. The remaining 10% of the beat is rest.
const (
	diastoleScale  = 0.6
	systoleScale   = 1.0
	diastoleWindow = 0.3
	systoleWindow  = 0.6
)

// HeartbeatPeriod returns the length of one beat in seconds at bpm beats per
// minute.
func HeartbeatPeriod(bpm float64) float64 {
	return 60 / bpm
}

// Heartbeat returns the scale timeline of one beat at bpm beats per minute,
// starting and ending at scale 1. Replay it every HeartbeatPeriod(bpm)
// seconds for a continuous pulse.
func Heartbeat(bpm float64) (*Timeline, error) {
	if !(bpm > 0) || math.IsInf(bpm, 0) {
		return nil, fmt.Errorf("%w: heartbeat bpm %v must be positive", ErrInvalidSegment, bpm)
	}
	beat := HeartbeatPeriod(bpm)
	return Build(systoleScale,
		SpringSegment(diastoleScale, diastoleWindow*beat, Snappy),
		LinearSegment(systoleScale, systoleWindow*beat, Linear),
	)
}

// StarScale returns the scale track of the star burst: it pops to 2, dips to
// 0.5, swells to 5 and settles back at 1, all on snappy springs.
func StarScale() (*Timeline, error) {
	return Build(1,
		SpringSegment(2, 0.5, Snappy),
		SpringSegment(0.5, 0.5, Snappy),
		SpringSegment(5, 3, Snappy),
		SpringSegment(1, 0.5, Snappy),
	)
}

// StarRotation returns the rotation track of the star burst in degrees.
// direction should be 1 or -1.
func StarRotation(direction float64) (*Timeline, error) {
	const turn = 360
	return Build(0,
		LinearSegment(turn*3*direction, 1, Linear),
		LinearSegment(turn*3.6*direction, 3, Linear),
		SpringSegment(turn*4.2*direction, 0.5, Snappy),
	)
}

// StarOffset returns the horizontal offset track of the star burst: it eases
// out to offset and snaps back to 0.
func StarOffset(offset float64) (*Timeline, error) {
	return Build(0,
		LinearSegment(offset, 0.8, EaseOut),
		LinearSegment(0, 0.2, CircularEaseIn),
	)
}

// PitchMultiplier maps a track value to a tone frequency multiplier, so a
// track at 0 plays the base pitch and a track at 1 plays an octave up.
func PitchMultiplier(value float64) float64 {
	return 1 + value
}
