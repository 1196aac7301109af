package keyframe

import "math"

// Spring describes a damped harmonic oscillator m·x” + c·x' + k·(x - target) = 0.
//
// Use NewSpring or SpringDuration to build one from perceptual parameters, or
// one of the presets. A Spring is a plain value; Build rejects springs with
// non-positive mass or stiffness and negative damping.
type Spring struct {
	Stiffness float64 // k
	Damping   float64 // c
	Mass      float64 // m
}

// Spring presets. Each is a fixed (response, damping ratio) pair with unit
// mass:
//
//	DefaultSpring  response 0.5s  ζ = 1
//	Smooth         response 0.5s  ζ = 1
//	Snappy         response 0.5s  ζ = 0.85
//	Bouncy         response 0.5s  ζ = 0.7
var (
	DefaultSpring = NewSpring(0.5, 1)
	Smooth        = NewSpring(0.5, 1)
	Snappy        = NewSpring(0.5, 0.85)
	Bouncy        = NewSpring(0.5, 0.7)
)

var springs = map[string]Spring{
	"spring": DefaultSpring,
	"smooth": Smooth,
	"snappy": Snappy,
	"bouncy": Bouncy,
}

// SpringByName returns the preset registered under name: "spring", "smooth",
// "snappy" or "bouncy".
func SpringByName(name string) (Spring, bool) {
	s, ok := springs[name]
	return s, ok
}

// NewSpring returns a unit-mass spring with the given response (the period of
// the undamped oscillation, in seconds) and damping ratio.
func NewSpring(response, dampingRatio float64) Spring {
	w := 2 * math.Pi / response
	return Spring{
		Stiffness: w * w,
		Damping:   2 * dampingRatio * w,
		Mass:      1,
	}
}

// SpringDuration returns a spring from a perceptual duration and bounce.
// A bounce of 0 is critically damped, positive values are underdamped and
// negative values are overdamped.
func SpringDuration(duration, bounce float64) Spring {
	ratio := 1 - bounce
	if bounce < 0 {
		ratio = 1 / (1 + bounce)
	}
	return NewSpring(duration, ratio)
}

// DampingRatio returns ζ = c / (2·√(k·m)).
func (s Spring) DampingRatio() float64 {
	return s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
}

// AngularFrequency returns the undamped angular frequency ω0 = √(k/m).
func (s Spring) AngularFrequency() float64 {
	return math.Sqrt(s.Stiffness / s.Mass)
}

// criticalTolerance is how close ζ must be to 1 to use the critically damped
// solution. The under- and overdamped forms divide by √|1-ζ²| and lose
// precision near 1.
const criticalTolerance = 1e-6

// Evaluate returns the position and velocity elapsed seconds after releasing
// the spring at start with the given velocity, pulled toward target.
func (s Spring) Evaluate(elapsed, start, target, velocity float64) (float64, float64) {
	if !(elapsed > 0) {
		return start, velocity
	}
	t := elapsed
	w0 := s.AngularFrequency()
	zeta := s.DampingRatio()
	x0 := start - target
	v0 := velocity

	var x, v float64
	switch {
	case math.Abs(zeta-1) < criticalTolerance:
		decay := math.Exp(-w0 * t)
		b := v0 + w0*x0
		x = decay * (x0 + b*t)
		v = decay * (v0 - w0*b*t)

	case zeta < 1:
		a := zeta * w0
		wd := w0 * math.Sqrt(1-zeta*zeta)
		decay := math.Exp(-a * t)
		sin, cos := math.Sincos(wd * t)
		x = decay * (x0*cos + (v0+a*x0)/wd*sin)
		v = decay * (v0*cos - (a*v0+w0*w0*x0)/wd*sin)

	default:
		root := w0 * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*w0 + root
		r2 := -zeta*w0 - root
		c2 := (v0 - r1*x0) / (r2 - r1)
		c1 := x0 - c2
		e1, e2 := math.Exp(r1*t), math.Exp(r2*t)
		x = c1*e1 + c2*e2
		v = r1*c1*e1 + r2*c2*e2
	}
	return target + x, v
}

// invalid returns why the spring cannot be evaluated, or "".
func (s Spring) invalid() string {
	switch {
	case !(s.Mass > 0) || math.IsInf(s.Mass, 0):
		return "spring mass must be positive and finite"
	case !(s.Stiffness > 0) || math.IsInf(s.Stiffness, 0):
		return "spring stiffness must be positive and finite"
	case !(s.Damping >= 0) || math.IsInf(s.Damping, 0):
		return "spring damping must be non-negative and finite"
	}
	if z := s.DampingRatio(); math.IsNaN(z) || math.IsInf(z, 0) {
		return "spring damping ratio is not finite"
	}
	return ""
}
