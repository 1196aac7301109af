package keyframe

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Curve maps normalized progress in [0, 1] to eased progress in [0, 1]. Curves
// drive Linear segments: the eased progress is used to interpolate between the
// segment's start value and its target.
//
// The zero Curve is the identity. Curves are immutable and safe for
// concurrent use.
type Curve struct {
	name  string
	fn    func(x float64) float64
	slope func(x float64) float64 // analytic derivative, nil if unknown
}

// Preset curves. The ease variants are the cubic Bézier unit curves used by
// CSS and most platform animation APIs; the circular variants are
// quarter-circle arcs.
var (
	Linear            = Curve{name: "linear"}
	EaseIn            = namedBezier("easeIn", 0.42, 0, 1, 1)
	EaseOut           = namedBezier("easeOut", 0, 0, 0.58, 1)
	EaseInOut         = namedBezier("easeInOut", 0.42, 0, 0.58, 1)
	CircularEaseIn    = TweenCurve("circularEaseIn", ease.InCirc).WithSlope(inCircSlope)
	CircularEaseOut   = TweenCurve("circularEaseOut", ease.OutCirc).WithSlope(outCircSlope)
	CircularEaseInOut = TweenCurve("circularEaseInOut", ease.InOutCirc).WithSlope(inOutCircSlope)
)

// The circular arcs have vertical tangents where they meet the unit
// square's corners; the derivatives below are +Inf there.

func inCircSlope(x float64) float64 { return x / math.Sqrt(1-x*x) }

func outCircSlope(x float64) float64 { return (1 - x) / math.Sqrt(1-(x-1)*(x-1)) }

func inOutCircSlope(x float64) float64 {
	if x < 0.5 {
		return 2 * x / math.Sqrt(1-4*x*x)
	}
	u := 2*x - 2
	return -u / math.Sqrt(1-u*u)
}

// curves lists every curve reachable through CurveByName. Only monotonic
// gween functions are registered; back, elastic and bounce overshoot the
// unit interval.
var curves = map[string]Curve{
	"linear":            Linear,
	"easeIn":            EaseIn,
	"easeOut":           EaseOut,
	"easeInOut":         EaseInOut,
	"circularEaseIn":    CircularEaseIn,
	"circularEaseOut":   CircularEaseOut,
	"circularEaseInOut": CircularEaseInOut,
	"inQuad":            TweenCurve("inQuad", ease.InQuad),
	"outQuad":           TweenCurve("outQuad", ease.OutQuad),
	"inOutQuad":         TweenCurve("inOutQuad", ease.InOutQuad),
	"inCubic":           TweenCurve("inCubic", ease.InCubic),
	"outCubic":          TweenCurve("outCubic", ease.OutCubic),
	"inOutCubic":        TweenCurve("inOutCubic", ease.InOutCubic),
	"inQuart":           TweenCurve("inQuart", ease.InQuart),
	"outQuart":          TweenCurve("outQuart", ease.OutQuart),
	"inOutQuart":        TweenCurve("inOutQuart", ease.InOutQuart),
	"inQuint":           TweenCurve("inQuint", ease.InQuint),
	"outQuint":          TweenCurve("outQuint", ease.OutQuint),
	"inOutQuint":        TweenCurve("inOutQuint", ease.InOutQuint),
	"inSine":            TweenCurve("inSine", ease.InSine),
	"outSine":           TweenCurve("outSine", ease.OutSine),
	"inOutSine":         TweenCurve("inOutSine", ease.InOutSine),
}

// CurveByName returns the preset registered under name, for example
// "easeOut" or "circularEaseIn".
func CurveByName(name string) (Curve, bool) {
	c, ok := curves[name]
	return c, ok
}

// TweenCurve adapts a gween easing function to a Curve. The function is
// evaluated with b=0, c=1, d=1 and its output is clamped to [0, 1]. Its slope
// is estimated numerically unless a derivative is supplied with WithSlope.
func TweenCurve(name string, fn ease.TweenFunc) Curve {
	return Curve{name: name, fn: func(x float64) float64 {
		return float64(fn(float32(x), 0, 1, 1))
	}}
}

// Bezier returns a unit curve defined by the control points (x1, y1) and
// (x2, y2), with implicit end points (0, 0) and (1, 1). All four coordinates
// are clamped to [0, 1]: clamped x keeps the curve a function of progress and
// clamped y keeps it monotonic, so overshooting control points such as
// CSS "back" curves are flattened.
func Bezier(x1, y1, x2, y2 float64) Curve {
	return namedBezier(fmt.Sprintf("bezier(%g, %g, %g, %g)", x1, y1, x2, y2), x1, y1, x2, y2)
}

func namedBezier(name string, x1, y1, x2, y2 float64) Curve {
	b := unitBezier{x1: clamp01(x1), y1: clamp01(y1), x2: clamp01(x2), y2: clamp01(y2)}
	return Curve{name: name, fn: b.solve, slope: b.slope}
}

// WithSlope returns a copy of c that uses slope as its exact derivative
// instead of a finite difference estimate.
func (c Curve) WithSlope(slope func(x float64) float64) Curve {
	c.slope = slope
	return c
}

// Name returns the curve's preset name.
func (c Curve) Name() string {
	if c.name == "" {
		return "linear"
	}
	return c.name
}

func (c Curve) String() string { return c.Name() }

// Evaluate returns the eased progress for x. Inputs outside [0, 1] are
// clamped, and the end points are exact: Evaluate(0) == 0, Evaluate(1) == 1.
func (c Curve) Evaluate(x float64) float64 {
	switch {
	case !(x > 0):
		return 0
	case x >= 1:
		return 1
	case c.fn == nil:
		return x
	}
	return clamp01(c.fn(x))
}

// slopeStep is the finite difference width used by Slope.
const slopeStep = 1e-4

// Slope returns the derivative of the curve at x. Presets report it exactly,
// including +Inf where the tangent is vertical. Other curves fall back to a
// finite difference, one-sided at the end points.
func (c Curve) Slope(x float64) float64 {
	if c.fn == nil {
		return 1
	}
	x = clamp01(x)
	if c.slope != nil {
		return c.slope(x)
	}
	switch {
	case x-slopeStep < 0:
		return (c.Evaluate(x+slopeStep) - c.Evaluate(x)) / slopeStep
	case x+slopeStep > 1:
		return (c.Evaluate(x) - c.Evaluate(x-slopeStep)) / slopeStep
	}
	return (c.Evaluate(x+slopeStep) - c.Evaluate(x-slopeStep)) / (2 * slopeStep)
}

// unitBezier is a cubic Bézier from (0, 0) to (1, 1).
type unitBezier struct {
	x1, y1, x2, y2 float64
}

const (
	bezierEpsilon    = 1e-9
	newtonIterations = 8
	bisectIterations = 64
)

// solve returns y at the given x.
func (b unitBezier) solve(x float64) float64 {
	return bezierCoord(b.param(x), b.y1, b.y2)
}

// slope returns dy/dx at the given x. At the end points the tangent is
// taken from the first control point that does not coincide with the end.
func (b unitBezier) slope(x float64) float64 {
	switch {
	case x <= 0:
		return bezierEndSlope(b.x1, b.y1, b.x2, b.y2)
	case x >= 1:
		// Mirroring both axes maps the end onto the start and keeps dy/dx.
		return bezierEndSlope(1-b.x2, 1-b.y2, 1-b.x1, 1-b.y1)
	}
	t := b.param(x)
	return tangentSlope(bezierDerivative(t, b.x1, b.x2), bezierDerivative(t, b.y1, b.y2))
}

// bezierEndSlope returns the slope at (0, 0) of a unit Bézier with inner
// control points (x1, y1) and (x2, y2).
func bezierEndSlope(x1, y1, x2, y2 float64) float64 {
	switch {
	case x1 != 0 || y1 != 0:
		return tangentSlope(x1, y1)
	case x2 != 0 || y2 != 0:
		return tangentSlope(x2, y2)
	}
	return 1
}

func tangentSlope(dx, dy float64) float64 {
	if dx == 0 {
		return math.Inf(1)
	}
	return dy / dx
}

// param finds the parameter t with x(t) == x. Newton's method converges in a
// few steps for typical curves; flat spots fall back to bisection, which
// always converges because x(t) is monotone.
func (b unitBezier) param(x float64) float64 {
	t := x
	for i := 0; i < newtonIterations; i++ {
		dx := bezierCoord(t, b.x1, b.x2) - x
		if math.Abs(dx) < bezierEpsilon {
			return t
		}
		d := bezierDerivative(t, b.x1, b.x2)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= dx / d
	}

	lo, hi := 0.0, 1.0
	for i := 0; i < bisectIterations; i++ {
		t = (lo + hi) / 2
		dx := bezierCoord(t, b.x1, b.x2) - x
		if math.Abs(dx) < bezierEpsilon {
			break
		}
		if dx < 0 {
			lo = t
		} else {
			hi = t
		}
	}
	return t
}

// bezierCoord evaluates one coordinate of a unit cubic Bézier whose inner
// control point coordinates are p1 and p2.
func bezierCoord(t, p1, p2 float64) float64 {
	mt := 1 - t
	return 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t
}

func bezierDerivative(t, p1, p2 float64) float64 {
	mt := 1 - t
	return 3*mt*mt*p1 + 6*mt*t*(p2-p1) + 3*t*t*(1-p2)
}

func clamp01(x float64) float64 {
	switch {
	case !(x > 0):
		return 0
	case x > 1:
		return 1
	}
	return x
}
