package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoTracks(t *testing.T) {
	names, tracks, err := demoTracks(70)
	require.NoError(t, err)
	require.Len(t, names, 4)
	for _, name := range names {
		assert.Contains(t, tracks, name)
	}
	assert.Equal(t, 1.0, tracks["graph"].Final())

	_, _, err = demoTracks(0)
	assert.Error(t, err)
}

func TestLoadTracksFromScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.yaml")
	script := "tracks:\n  - name: a\n    segments: [{kind: cubic, target: 2, duration: 1}]\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	names, tracks, err := loadTracks(path, 70)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)
	assert.Equal(t, 2.0, tracks["a"].Final())

	_, _, err = loadTracks(filepath.Join(t.TempDir(), "missing.yaml"), 70)
	assert.Error(t, err)
}

func TestPrintSamplesUnknownTrack(t *testing.T) {
	_, tracks, err := demoTracks(70)
	require.NoError(t, err)
	assert.Error(t, printSamples(tracks, "nope", 10))
}
