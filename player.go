package keyframe

import (
	"context"
	"time"
)

// Track binds a timeline to the field it drives.
type Track struct {
	Field    *float64
	Timeline *Timeline
}

// TrackGroup plays one or more tracks against a shared clock. Call Update(dt)
// each frame; the group writes the current value of every track into its
// field. Once the clock passes the longest timeline, every field holds its
// track's final value and Done is set.
//
// There is no global animation manager; callers advance groups themselves.
// To restart, build a new group.
type TrackGroup struct {
	tracks []Track
	clock  float64
	end    float64
	Done   bool
}

// Animate creates a TrackGroup driving field with tl.
func Animate(field *float64, tl *Timeline) *TrackGroup {
	return AnimateGroup(Track{Field: field, Timeline: tl})
}

// AnimatePosition creates a TrackGroup driving x and y with separate
// timelines, which may have different durations.
func AnimatePosition(x, y *float64, tx, ty *Timeline) *TrackGroup {
	return AnimateGroup(Track{Field: x, Timeline: tx}, Track{Field: y, Timeline: ty})
}

// AnimateGroup creates a TrackGroup from tracks. Tracks with a nil field or
// timeline are ignored. The fields are set to their initial values
// immediately.
func AnimateGroup(tracks ...Track) *TrackGroup {
	g := &TrackGroup{tracks: make([]Track, 0, len(tracks))}
	for _, tr := range tracks {
		if tr.Field == nil || tr.Timeline == nil {
			continue
		}
		g.tracks = append(g.tracks, tr)
		g.end = max(g.end, tr.Timeline.Duration())
	}
	g.apply()
	return g
}

// Update advances the clock by dt seconds and writes the tracks' values.
func (g *TrackGroup) Update(dt float64) {
	if g.Done {
		return
	}
	if dt > 0 {
		g.clock += dt
	}
	g.apply()
	g.Done = g.clock >= g.end
}

// Elapsed returns the group's clock in seconds.
func (g *TrackGroup) Elapsed() float64 { return g.clock }

func (g *TrackGroup) apply() {
	for _, tr := range g.tracks {
		*tr.Field = tr.Timeline.ValueAtTime(g.clock)
	}
}

// DefaultInterval is the sampling interval Play uses when given a
// non-positive one.
const DefaultInterval = time.Second / 60

// Play samples tl in real time, calling fn once immediately with the initial
// sample and then once per interval tick with the sample at the wall-clock
// time elapsed since Play was called. When the timeline has run its course,
// fn receives the final sample and Play returns nil.
//
// Play checks ctx between samples and returns ctx.Err() once it is done.
// fn runs on the caller's goroutine.
func Play(ctx context.Context, interval time.Duration, tl *Timeline, fn func(Sample)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	fn(tl.SampleAt(0))
	if tl.Duration() <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			elapsed := now.Sub(start).Seconds()
			if elapsed >= tl.Duration() {
				fn(tl.SampleAt(tl.Duration()))
				return nil
			}
			fn(tl.SampleAt(elapsed))
		}
	}
}
