package keyframe

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

// --- TrackGroup ---

func TestAnimateReachesTarget(t *testing.T) {
	x := 42.0
	tl := mustBuild(t, 0, LinearSegment(10, 1, Linear))
	g := Animate(&x, tl)

	if x != 0 {
		t.Fatalf("field = %v after Animate, want initial 0", x)
	}

	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be Done at halfway")
	}
	if x != 5 {
		t.Errorf("x = %v, want 5 at halfway", x)
	}

	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if x != 10 {
		t.Errorf("x = %v, want 10", x)
	}
}

func TestAnimatePositionWaitsForLongestTrack(t *testing.T) {
	var x, y float64
	tx := mustBuild(t, 0, LinearSegment(100, 0.5, EaseOut))
	ty := mustBuild(t, 0, SpringSegment(50, 1, Snappy))
	g := AnimatePosition(&x, &y, tx, ty)

	g.Update(0.75)
	if g.Done {
		t.Fatal("should not be Done before the longer track ends")
	}
	if x != 100 {
		t.Errorf("x = %v, want 100 once its track ended", x)
	}

	g.Update(0.25)
	if !g.Done {
		t.Fatal("expected Done")
	}
	if y != 50 {
		t.Errorf("y = %v, want 50", y)
	}
	if math.Abs(g.Elapsed()-1) > 1e-12 {
		t.Errorf("Elapsed() = %v, want 1", g.Elapsed())
	}
}

func TestTrackGroupDoneIsSticky(t *testing.T) {
	v := 0.0
	g := Animate(&v, mustBuild(t, 0, CubicSegment(1, 0.25)))
	g.Update(0.25)
	if !g.Done {
		t.Fatal("expected Done")
	}
	v = -7
	g.Update(0.1)
	if !g.Done || v != -7 {
		t.Errorf("Update after Done wrote %v", v)
	}
}

func TestAnimateGroupSkipsIncompleteTracks(t *testing.T) {
	v := 3.0
	tl := mustBuild(t, 1, LinearSegment(2, 1, Linear))
	g := AnimateGroup(Track{Field: nil, Timeline: tl}, Track{Field: &v}, Track{Field: &v, Timeline: tl})
	if v != 1 {
		t.Errorf("v = %v, want 1", v)
	}
	g.Update(2)
	if !g.Done || v != 2 {
		t.Errorf("Done %v, v = %v", g.Done, v)
	}
}

func TestTrackGroupUpdateZeroAlloc(t *testing.T) {
	v := 0.0
	g := Animate(&v, mustBuild(t, 0, LinearSegment(1, 1000, Linear)))
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TrackGroup.Update allocated %f times per run, want 0", result)
	}
}

// --- Play ---

func TestPlayRunsToCompletion(t *testing.T) {
	tl := mustBuild(t, 0, LinearSegment(1, 0.03, Linear))

	var samples []Sample
	err := Play(context.Background(), time.Millisecond, tl, func(s Sample) {
		samples = append(samples, s)
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(samples) < 2 {
		t.Fatalf("got %d samples, want at least 2", len(samples))
	}
	if first := samples[0]; first.Time != 0 || first.Value != 0 {
		t.Errorf("first sample = %+v", first)
	}
	last := samples[len(samples)-1]
	if last.Value != 1 || last.Progress != 1 {
		t.Errorf("last sample = %+v, want value 1 at progress 1", last)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time < samples[i-1].Time {
			t.Fatalf("time went backwards at %d", i)
		}
	}
}

func TestPlayStopsOnCancel(t *testing.T) {
	tl := mustBuild(t, 0, SpringSegment(1, 60, Bouncy))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := 0
	err := Play(ctx, time.Millisecond, tl, func(Sample) {
		n++
		if n == 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if n != 3 {
		t.Errorf("fn called %d times after cancel, want 3", n)
	}
}

func TestPlayCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := Play(ctx, 0, mustBuild(t, 0, CubicSegment(1, 1)), func(Sample) { called = true })
	if !errors.Is(err, context.Canceled) || called {
		t.Errorf("err = %v, called = %v", err, called)
	}
}

func TestPlayEmptyTimeline(t *testing.T) {
	var got []Sample
	err := Play(context.Background(), time.Millisecond, mustBuild(t, 4), func(s Sample) {
		got = append(got, s)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Value != 4 {
		t.Errorf("samples = %+v, want one sample at 4", got)
	}
}
