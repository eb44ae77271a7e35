// Package ambient fades the narrative's background track in and out.
//
// The track loops once per narrative cycle: Exit fades to silence, rewinds
// and enters again.
package ambient

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/descent/internal/infrastructure/audio"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

// Config tunes the fades. Durations are in seconds.
type Config struct {
	Volume  float64
	FadeIn  float64
	FadeOut float64
}

// Crossfader drives a Track's volume with tweens on the shared runner.
type Crossfader struct {
	track  audio.Track
	tweens *tween.Runner
	cfg    Config

	volume float64
	ramp   *tween.Tween
	silent bool
}

// New creates a crossfader for track.
func New(track audio.Track, tweens *tween.Runner, cfg Config) *Crossfader {
	return &Crossfader{track: track, tweens: tweens, cfg: cfg}
}

// Enter starts playback at volume 0 and ramps up to the target volume. If
// the platform refuses playback the narrative carries on without sound.
func (c *Crossfader) Enter() {
	c.stopRamp()
	c.setVolume(0)
	if err := c.track.Play(); err != nil {
		c.silent = true
		if errors.Is(err, audio.ErrPlaybackDenied) {
			log.Warn().Err(err).Msg("ambient playback denied, continuing silently")
		} else {
			log.Error().Err(err).Msg("failed to start ambient track")
		}
		return
	}
	c.silent = false
	c.rampTo(c.cfg.Volume, c.cfg.FadeIn, nil)
}

// Exit ramps to silence, rewinds the track and enters again.
func (c *Crossfader) Exit() {
	c.stopRamp()
	c.rampTo(0, c.cfg.FadeOut, func() {
		if err := c.track.Seek(0); err != nil {
			log.Warn().Err(err).Msg("failed to rewind ambient track")
		}
		c.Enter()
	})
}

// Silent reports whether the last Enter was refused.
func (c *Crossfader) Silent() bool {
	return c.silent
}

// Fading reports whether a volume ramp is running.
func (c *Crossfader) Fading() bool {
	return c.ramp != nil && !c.ramp.Done()
}

func (c *Crossfader) rampTo(v, d float64, done func()) {
	c.volume = c.track.Volume()
	t := tween.To(d, ease.Linear, tween.Prop(&c.volume, v))
	t.OnUpdate = func() { c.track.SetVolume(c.volume) }
	t.OnComplete = done
	c.ramp = t
	c.tweens.Add(t)
}

func (c *Crossfader) stopRamp() {
	if c.ramp != nil {
		c.ramp.Stop()
		c.ramp = nil
	}
}

func (c *Crossfader) setVolume(v float64) {
	c.volume = v
	c.track.SetVolume(v)
}
