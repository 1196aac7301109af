package keyframe

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const starScript = `
tracks:
  - name: scale
    initial: 1
    segments:
      - {kind: spring, target: 2, duration: 0.5, spring: snappy}
      - {kind: linear, target: 1, duration: 0.5, curve: easeOut}
      - {kind: cubic, target: 0, duration: 1, start_velocity: 2, end_velocity: -1}
  - name: graph
    total_value: 1
    total_duration: 2
    keyframes:
      - {kind: spring}
      - {kind: linear, bezier: [0.42, 0, 0.58, 1]}
  - name: wobble
    segments:
      - {kind: spring, target: 1, duration: 1, response: 0.4, damping_ratio: 0.3}
      - {kind: spring, target: 0, duration: 1, stiffness: 200, damping: 5}
`

func TestLoadScript(t *testing.T) {
	s, err := LoadScript([]byte(starScript))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	names := s.Names()
	want := []string{"scale", "graph", "wobble"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", names, want)
	}

	tls, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	scale := tls["scale"]
	if scale.Initial() != 1 || scale.Duration() != 2 || scale.Final() != 0 {
		t.Errorf("scale: initial %v duration %v final %v", scale.Initial(), scale.Duration(), scale.Final())
	}
	if scale.Segment(0).SpringParams() != Snappy {
		t.Errorf("scale segment 0 spring = %+v, want Snappy", scale.Segment(0).SpringParams())
	}
	if scale.Segment(1).Curve().Name() != "easeOut" {
		t.Errorf("scale segment 1 curve = %q", scale.Segment(1).Curve().Name())
	}
	if v := scale.StartVelocity(2); v != 2 {
		t.Errorf("scale segment 2 start velocity = %v, want 2", v)
	}
	if v := scale.EndVelocity(2); v != -1 {
		t.Errorf("scale segment 2 end velocity = %v, want -1", v)
	}

	graph := tls["graph"]
	if graph.Len() != 2 || graph.Duration() != 2 {
		t.Errorf("graph: Len %d Duration %v", graph.Len(), graph.Duration())
	}
	if got := graph.ValueAtTime(1); got != 0.5 {
		t.Errorf("graph ValueAtTime(1) = %v, want 0.5", got)
	}

	wobble := tls["wobble"]
	if z := wobble.Segment(0).SpringParams().DampingRatio(); math.Abs(z-0.3) > 1e-12 {
		t.Errorf("wobble segment 0 ζ = %v, want 0.3", z)
	}
	if m := wobble.Segment(1).SpringParams().Mass; m != 1 {
		t.Errorf("wobble segment 1 mass = %v, want 1", m)
	}
}

func TestLoadScriptJSON(t *testing.T) {
	data := []byte(`{"tracks": [{"name": "x", "initial": 2, "segments": [
		{"kind": "linear", "target": 4, "duration": 1, "curve": "circularEaseInOut"}
	]}]}`)
	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	tl, err := s.Timeline("x")
	if err != nil {
		t.Fatal(err)
	}
	if got := tl.ValueAtProgress(0.5); math.Abs(got-3) > 1e-6 {
		t.Errorf("ValueAtProgress(0.5) = %v, want 3", got)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid yaml", "tracks: [", "parse script"},
		{"no tracks", "tracks: []", "no tracks"},
		{"no name", "tracks: [{segments: [{kind: cubic, target: 1, duration: 1}]}]", "has no name"},
		{"duplicate", "tracks: [{name: a}, {name: a}]", "duplicate track"},
		{"unknown kind", "tracks: [{name: a, segments: [{kind: bounce}]}]", "unknown kind"},
		{"unknown curve", "tracks: [{name: a, segments: [{curve: wobbly}]}]", "unknown curve"},
		{"unknown spring", "tracks: [{name: a, segments: [{kind: spring, spring: jelly}]}]", "unknown spring"},
		{"short bezier", "tracks: [{name: a, segments: [{bezier: [0.1, 0.2]}]}]", "4 control"},
		{"curve and bezier", "tracks: [{name: a, segments: [{curve: easeIn, bezier: [0, 0, 1, 1]}]}]", "both curve and bezier"},
		{"segments and keyframes", "tracks: [{name: a, segments: [{kind: cubic}], keyframes: [{kind: cubic}]}]", "both segments and keyframes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestScriptBuildInvalidDuration(t *testing.T) {
	s, err := LoadScript([]byte("tracks: [{name: a, segments: [{kind: cubic, target: 1}]}]"))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	_, err = s.Build()
	if !errors.Is(err, ErrInvalidSegment) {
		t.Errorf("err = %v, want ErrInvalidSegment", err)
	}
	if _, err := s.Timeline("missing"); err == nil {
		t.Error("expected error for missing track")
	}
}

func TestScriptBezierStaysMonotonic(t *testing.T) {
	s, err := LoadScript([]byte("tracks: [{name: a, segments: [{target: 1, duration: 1, bezier: [0.2, 2, 0.8, -1]}]}]"))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	tl, err := s.Timeline("a")
	if err != nil {
		t.Fatal(err)
	}
	prev := tl.ValueAtProgress(0)
	for i := 1; i <= 100; i++ {
		p := float64(i) / 100
		v := tl.ValueAtProgress(p)
		if v < prev {
			t.Fatalf("value decreased at progress %v: %v < %v", p, v, prev)
		}
		prev = v
	}
}
