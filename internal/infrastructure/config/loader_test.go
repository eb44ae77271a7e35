package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadNarrative(t *testing.T) {
	loader := NewLoader("../../../cmd/narrative/configs")

	cfg, err := loader.LoadNarrative()
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Display.ScreenWidth)
	assert.Equal(t, 720, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.TPS)
	assert.Equal(t, 1.2, cfg.Transitions.Crossfade.Duration)
	assert.Equal(t, 0.5, cfg.Transitions.Crossfade.OutgoingAlpha)
	assert.Equal(t, 1.5, cfg.Transitions.Slide.Duration)
	assert.Equal(t, 0.30, cfg.Gestures.Click.Increment)
	assert.Equal(t, 50.0, cfg.Gestures.WheelThreshold)
	assert.Equal(t, 80, cfg.Scenes.Intro.Petals)
	assert.Equal(t, "MEMORY RESTORED", cfg.Scenes.Resolution.Text)
	assert.Equal(t, []string{"/bg.jpg", "/bg2.jpg", "/char.png", "/char02.png"}, cfg.Assets.URIs())
}

func TestLoader_FileMatchesDefaults(t *testing.T) {
	cfg, err := NewLoader("../../../cmd/narrative/configs").LoadNarrative()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		NarrativeFile: {Data: []byte("display:\n  title: Test\naudio:\n  volume: 0.25\n")},
	}

	cfg, err := NewFSLoader(fsys, "mem").LoadNarrative()
	require.NoError(t, err)

	assert.Equal(t, "Test", cfg.Display.Title)
	assert.Equal(t, 0.25, cfg.Audio.Volume)
	assert.Equal(t, 1280, cfg.Display.ScreenWidth)
	assert.Equal(t, 3.0, cfg.Audio.FadeIn)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr string
	}{
		{"missing file", fstest.MapFS{}, "failed to read narrative.yaml"},
		{"bad yaml", fstest.MapFS{NarrativeFile: {Data: []byte("display: [")}}, "failed to parse narrative.yaml"},
		{"invalid values", fstest.MapFS{NarrativeFile: {Data: []byte("audio:\n  volume: 2\n")}}, "audio.volume must be in [0,1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFSLoader(tt.fsys, "mem").LoadNarrative()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Display.ScreenWidth = 0
	cfg.Transitions.Slide.Duration = 0
	cfg.Gestures.Click.Threshold = 1.5

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "display size must be positive")
	assert.ErrorContains(t, err, "transitions.slide.duration must be positive")
	assert.ErrorContains(t, err, "gestures.click.threshold must be in (0,1]")
}
