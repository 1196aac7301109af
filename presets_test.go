package keyframe

import (
	"errors"
	"math"
	"testing"
)

func TestHeartbeat(t *testing.T) {
	tl, err := Heartbeat(60)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(tl.Duration()-0.9) > 1e-12 {
		t.Errorf("Duration() = %v, want 0.9", tl.Duration())
	}
	if got := tl.ValueAtTime(0); got != 1 {
		t.Errorf("ValueAtTime(0) = %v, want 1", got)
	}
	if got := tl.ValueAtTime(0.3); got != 0.6 {
		t.Errorf("ValueAtTime(0.3) = %v, want 0.6", got)
	}
	if got := tl.ValueAtTime(0.15); got >= 1 || got <= 0.6-0.05 {
		t.Errorf("ValueAtTime(0.15) = %v, want contracting toward 0.6", got)
	}
	if got := tl.ValueAtProgress(1); got != 1 {
		t.Errorf("ValueAtProgress(1) = %v, want 1", got)
	}
}

func TestHeartbeatScalesWithBPM(t *testing.T) {
	if p := HeartbeatPeriod(120); p != 0.5 {
		t.Errorf("HeartbeatPeriod(120) = %v, want 0.5", p)
	}
	slow, _ := Heartbeat(30)
	fast, _ := Heartbeat(240)
	if slow.Duration() <= fast.Duration() {
		t.Errorf("slow %v should outlast fast %v", slow.Duration(), fast.Duration())
	}
	for _, bpm := range []float64{0, -10, math.NaN()} {
		if _, err := Heartbeat(bpm); !errors.Is(err, ErrInvalidSegment) {
			t.Errorf("Heartbeat(%v) err = %v, want ErrInvalidSegment", bpm, err)
		}
	}
}

func TestStarTracks(t *testing.T) {
	scale, err := StarScale()
	if err != nil {
		t.Fatal(err)
	}
	if scale.Duration() != 4.5 || scale.Final() != 1 {
		t.Errorf("scale: Duration %v Final %v", scale.Duration(), scale.Final())
	}

	rot, err := StarRotation(-1)
	if err != nil {
		t.Fatal(err)
	}
	if got := rot.ValueAtTime(1); got != -1080 {
		t.Errorf("rotation at 1s = %v, want -1080", got)
	}
	if math.Abs(rot.Final()+1512) > 1e-9 {
		t.Errorf("rotation final = %v, want -1512", rot.Final())
	}

	off, err := StarOffset(120)
	if err != nil {
		t.Fatal(err)
	}
	if got := off.ValueAtTime(0.8); got != 120 {
		t.Errorf("offset at 0.8s = %v, want 120", got)
	}
	if got := off.ValueAtTime(1); got != 0 {
		t.Errorf("offset at 1s = %v, want 0", got)
	}
}

func TestPitchMultiplier(t *testing.T) {
	if got := PitchMultiplier(0.5); got != 1.5 {
		t.Errorf("PitchMultiplier(0.5) = %v", got)
	}
}
