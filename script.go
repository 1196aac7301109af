package keyframe

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// segmentEntry is one segment or keyframe entry in a script.
type segmentEntry struct {
	Kind     string    `yaml:"kind"`
	Target   float64   `yaml:"target"`
	Duration float64   `yaml:"duration"`
	Curve    string    `yaml:"curve,omitempty"`
	Bezier   []float64 `yaml:"bezier,omitempty"` // x1, y1, x2, y2, each clamped to [0, 1]

	Spring       string   `yaml:"spring,omitempty"`
	Stiffness    float64  `yaml:"stiffness,omitempty"`
	Damping      float64  `yaml:"damping,omitempty"`
	Mass         float64  `yaml:"mass,omitempty"`
	Response     float64  `yaml:"response,omitempty"`
	DampingRatio *float64 `yaml:"damping_ratio,omitempty"`

	StartVelocity *float64 `yaml:"start_velocity,omitempty"`
	EndVelocity   *float64 `yaml:"end_velocity,omitempty"`
}

// trackEntry is a named track, given either as explicit segments or as
// equal-division keyframes.
type trackEntry struct {
	Name     string         `yaml:"name"`
	Initial  float64        `yaml:"initial"`
	Segments []segmentEntry `yaml:"segments,omitempty"`

	TotalValue    float64        `yaml:"total_value,omitempty"`
	TotalDuration float64        `yaml:"total_duration,omitempty"`
	Keyframes     []segmentEntry `yaml:"keyframes,omitempty"`
}

// scriptFile is the top-level document structure.
type scriptFile struct {
	Tracks []trackEntry `yaml:"tracks"`
}

type scriptTrack struct {
	name     string
	initial  float64
	segments []Segment
}

// Script is a parsed set of named tracks. Build turns it into timelines.
type Script struct {
	tracks []scriptTrack
}

// LoadScript parses a YAML (or JSON) script:
//
//	tracks:
//	  - name: scale
//	    initial: 1
//	    segments:
//	      - {kind: spring, target: 2, duration: 0.5, spring: snappy}
//	      - {kind: linear, target: 1, duration: 0.5, curve: easeOut}
//	  - name: graph
//	    total_value: 1
//	    total_duration: 2
//	    keyframes: [{kind: spring}, {kind: cubic}]
//
// Segment durations are checked by Build, not here.
func LoadScript(data []byte) (*Script, error) {
	var file scriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("keyframe: parse script: %w", err)
	}
	if len(file.Tracks) == 0 {
		return nil, fmt.Errorf("keyframe: parse script: no tracks")
	}

	s := &Script{tracks: make([]scriptTrack, 0, len(file.Tracks))}
	seen := make(map[string]bool, len(file.Tracks))
	for i, ts := range file.Tracks {
		if ts.Name == "" {
			return nil, fmt.Errorf("keyframe: parse script: track %d has no name", i)
		}
		if seen[ts.Name] {
			return nil, fmt.Errorf("keyframe: parse script: duplicate track %q", ts.Name)
		}
		seen[ts.Name] = true

		tr, err := ts.resolve()
		if err != nil {
			return nil, fmt.Errorf("keyframe: parse script: track %q: %w", ts.Name, err)
		}
		s.tracks = append(s.tracks, tr)
	}
	return s, nil
}

// Names returns the track names in document order.
func (s *Script) Names() []string {
	names := make([]string, len(s.tracks))
	for i, tr := range s.tracks {
		names[i] = tr.name
	}
	return names
}

// Timeline builds the named track.
func (s *Script) Timeline(name string) (*Timeline, error) {
	for _, tr := range s.tracks {
		if tr.name == name {
			tl, err := Build(tr.initial, tr.segments...)
			if err != nil {
				return nil, fmt.Errorf("track %q: %w", name, err)
			}
			return tl, nil
		}
	}
	return nil, fmt.Errorf("keyframe: no track %q", name)
}

// Build builds every track, keyed by name.
func (s *Script) Build() (map[string]*Timeline, error) {
	out := make(map[string]*Timeline, len(s.tracks))
	for _, tr := range s.tracks {
		tl, err := s.Timeline(tr.name)
		if err != nil {
			return nil, err
		}
		out[tr.name] = tl
	}
	return out, nil
}

func (ts trackEntry) resolve() (scriptTrack, error) {
	tr := scriptTrack{name: ts.Name, initial: ts.Initial}
	switch {
	case len(ts.Segments) > 0 && len(ts.Keyframes) > 0:
		return tr, fmt.Errorf("both segments and keyframes given")

	case len(ts.Keyframes) > 0:
		ks := make(Keyframes, len(ts.Keyframes))
		for i, se := range ts.Keyframes {
			seg, err := se.segment()
			if err != nil {
				return tr, fmt.Errorf("keyframe %d: %w", i, err)
			}
			ks[i] = Keyframe{template: seg}
		}
		tr.initial = 0
		tr.segments = ks.Segments(ts.TotalValue, ts.TotalDuration)

	default:
		tr.segments = make([]Segment, len(ts.Segments))
		for i, se := range ts.Segments {
			seg, err := se.segment()
			if err != nil {
				return tr, fmt.Errorf("segment %d: %w", i, err)
			}
			tr.segments[i] = seg
		}
	}
	return tr, nil
}

func (se segmentEntry) segment() (Segment, error) {
	var seg Segment
	switch se.Kind {
	case "", "linear":
		curve, err := se.curve()
		if err != nil {
			return seg, err
		}
		seg = LinearSegment(se.Target, se.Duration, curve)
	case "cubic":
		seg = CubicSegment(se.Target, se.Duration)
	case "spring":
		spring, err := se.spring()
		if err != nil {
			return seg, err
		}
		seg = SpringSegment(se.Target, se.Duration, spring)
	default:
		return seg, fmt.Errorf("unknown kind %q", se.Kind)
	}

	if se.StartVelocity != nil {
		seg = seg.WithStartVelocity(*se.StartVelocity)
	}
	if se.EndVelocity != nil {
		seg = seg.WithEndVelocity(*se.EndVelocity)
	}
	return seg, nil
}

func (se segmentEntry) curve() (Curve, error) {
	if len(se.Bezier) > 0 {
		if se.Curve != "" {
			return Curve{}, fmt.Errorf("both curve and bezier given")
		}
		if len(se.Bezier) != 4 {
			return Curve{}, fmt.Errorf("bezier needs 4 control coordinates, got %d", len(se.Bezier))
		}
		b := se.Bezier
		return Bezier(b[0], b[1], b[2], b[3]), nil
	}
	if se.Curve == "" {
		return Linear, nil
	}
	c, ok := CurveByName(se.Curve)
	if !ok {
		return Curve{}, fmt.Errorf("unknown curve %q", se.Curve)
	}
	return c, nil
}

func (se segmentEntry) spring() (Spring, error) {
	switch {
	case se.Spring != "":
		s, ok := SpringByName(se.Spring)
		if !ok {
			return Spring{}, fmt.Errorf("unknown spring %q", se.Spring)
		}
		return s, nil
	case se.Response != 0:
		ratio := 1.0
		if se.DampingRatio != nil {
			ratio = *se.DampingRatio
		}
		return NewSpring(se.Response, ratio), nil
	case se.Stiffness != 0 || se.Damping != 0 || se.Mass != 0:
		mass := se.Mass
		if mass == 0 {
			mass = 1
		}
		return Spring{Stiffness: se.Stiffness, Damping: se.Damping, Mass: mass}, nil
	}
	return DefaultSpring, nil
}
