package ambient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/descent/internal/infrastructure/audio"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

// spyTrack records the order of calls that matter to the crossfader.
type spyTrack struct {
	audio.Silent
	denied bool
	calls  []string
}

func (s *spyTrack) Play() error {
	if s.denied {
		return audio.ErrPlaybackDenied
	}
	s.calls = append(s.calls, "play")
	return s.Silent.Play()
}

func (s *spyTrack) Seek(pos time.Duration) error {
	s.calls = append(s.calls, "seek")
	return s.Silent.Seek(pos)
}

var cfg = Config{Volume: 0.6, FadeIn: 3.0, FadeOut: 1.0}

func step(r *tween.Runner, d float64) {
	for range int(d * 4) {
		r.Update(0.25)
	}
}

func TestCrossfader_EnterRamps(t *testing.T) {
	track := &spyTrack{}
	r := tween.NewRunner()
	c := New(track, r, cfg)

	c.Enter()
	assert.True(t, track.IsPlaying())
	assert.Equal(t, 0.0, track.Volume())
	assert.True(t, c.Fading())

	step(r, 1.5)
	assert.InDelta(t, 0.3, track.Volume(), 1e-6)

	step(r, 1.5)
	assert.Equal(t, 0.6, track.Volume())
	assert.False(t, c.Fading())
}

func TestCrossfader_ExitRewindsThenReenters(t *testing.T) {
	track := &spyTrack{}
	r := tween.NewRunner()
	c := New(track, r, cfg)
	c.Enter()
	step(r, 3)
	require.NoError(t, track.Silent.Seek(42*time.Second))

	c.Exit()
	step(r, 0.5)
	assert.InDelta(t, 0.3, track.Volume(), 1e-6)

	step(r, 0.5)
	assert.Equal(t, time.Duration(0), track.Position())
	assert.Equal(t, []string{"play", "seek", "play"}, track.calls, "rewind happens before playback restarts")
	assert.Equal(t, 0.0, track.Volume(), "enter ramp starts from silence")

	step(r, 3)
	assert.Equal(t, 0.6, track.Volume())
}

func TestCrossfader_ExitInterruptsEnter(t *testing.T) {
	track := &spyTrack{}
	r := tween.NewRunner()
	c := New(track, r, cfg)
	c.Enter()
	step(r, 1.5)

	c.Exit()
	step(r, 1)
	step(r, 3)
	assert.Equal(t, 0.6, track.Volume())
	assert.Equal(t, 0, r.Len())
}

func TestCrossfader_PlaybackDenied(t *testing.T) {
	track := &spyTrack{denied: true}
	r := tween.NewRunner()
	c := New(track, r, cfg)

	assert.NotPanics(t, c.Enter)
	assert.True(t, c.Silent())
	assert.False(t, track.IsPlaying())
	assert.Equal(t, 0.0, track.Volume())
	assert.Zero(t, r.Len())

	// the restart boundary still works without sound
	c.Exit()
	step(r, 1)
	assert.Equal(t, []string{"seek"}, track.calls)
	assert.True(t, c.Silent())
}
