// Package audio adapts ebiten audio players to the Track interface used by
// the ambient crossfader.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

// ErrPlaybackDenied is returned by Play when the platform refuses to start
// audio, for example before the first user gesture in a browser.
var ErrPlaybackDenied = errors.New("audio: playback denied")

// Track is a looping playback handle.
type Track interface {
	Play() error
	Pause()
	IsPlaying() bool
	Volume() float64
	SetVolume(v float64)
	Position() time.Duration
	Seek(pos time.Duration) error
}

// Player plays a decoded stream through an ebiten audio context.
type Player struct {
	ctx    *audio.Context
	player *audio.Player
}

// LoadMP3 decodes uri from fsys and wraps it in an endless loop.
func LoadMP3(ctx *audio.Context, fsys fs.FS, uri string) (*Player, error) {
	data, err := fs.ReadFile(fsys, strings.TrimPrefix(uri, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", uri, err)
	}
	p, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("failed to create player for %s: %w", uri, err)
	}
	return &Player{ctx: ctx, player: p}, nil
}

// Play implements Track.
func (p *Player) Play() error {
	if !p.ctx.IsReady() {
		return ErrPlaybackDenied
	}
	p.player.Play()
	return nil
}

// Pause implements Track.
func (p *Player) Pause() { p.player.Pause() }

// IsPlaying implements Track.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Volume implements Track.
func (p *Player) Volume() float64 { return p.player.Volume() }

// SetVolume implements Track.
func (p *Player) SetVolume(v float64) { p.player.SetVolume(v) }

// Position implements Track.
func (p *Player) Position() time.Duration { return p.player.Position() }

// Seek implements Track.
func (p *Player) Seek(pos time.Duration) error {
	return p.player.SetPosition(pos)
}

// Silent is a Track that keeps state but produces no sound. It stands in
// when the ambient file is unavailable.
type Silent struct {
	playing bool
	volume  float64
	pos     time.Duration
}

// Play implements Track.
func (s *Silent) Play() error {
	s.playing = true
	return nil
}

// Pause implements Track.
func (s *Silent) Pause() { s.playing = false }

// IsPlaying implements Track.
func (s *Silent) IsPlaying() bool { return s.playing }

// Volume implements Track.
func (s *Silent) Volume() float64 { return s.volume }

// SetVolume implements Track.
func (s *Silent) SetVolume(v float64) { s.volume = v }

// Position implements Track.
func (s *Silent) Position() time.Duration { return s.pos }

// Seek implements Track.
func (s *Silent) Seek(pos time.Duration) error {
	s.pos = pos
	return nil
}
