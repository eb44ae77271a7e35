// Package scenetest provides collaborators for scene tests.
package scenetest

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/descent/internal/application/scene"
	"github.com/younwookim/descent/internal/domain/animator"
	"github.com/younwookim/descent/internal/infrastructure/config"
	"github.com/younwookim/descent/internal/infrastructure/input"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

const (
	Width  = 800
	Height = 600
)

// Textures returns every default asset as a small blank image.
func Textures() scene.TextureMap {
	m := scene.TextureMap{}
	for _, uri := range config.Default().Assets.URIs() {
		m[uri] = ebiten.NewImage(200, 200)
	}
	return m
}

// NewEnv builds an 800x600 environment with default config, blank textures
// and a seeded random source.
func NewEnv() *scene.Env {
	cfg := config.Default()
	cfg.Display.ScreenWidth, cfg.Display.ScreenHeight = Width, Height
	return &scene.Env{
		Screen:   animator.Vec2{X: Width, Y: Height},
		Config:   *cfg,
		Textures: Textures(),
		Input:    input.NewHub(Width/2, Height/2),
		Tweens:   tween.NewRunner(),
		Rand:     rand.New(rand.NewPCG(7, 11)),
	}
}

// Step advances the tween runner and s together for d seconds at 60 Hz.
func Step(env *scene.Env, s scene.Scene, d float64) {
	const dt = 1.0 / 60
	for range int(math.Round(d / dt)) {
		env.Tweens.Update(dt)
		s.Update(dt)
	}
}

// Tap sends a press and release at (x, y).
func Tap(env *scene.Env, x, y float64) {
	env.Input.Dispatch(input.Event{Kind: input.PointerDown, X: x, Y: y})
	env.Input.Dispatch(input.Event{Kind: input.PointerUp, X: x, Y: y})
}

// Recorder collects triggers.
type Recorder struct {
	Triggers []scene.Trigger
}

// Fire records t.
func (r *Recorder) Fire(t scene.Trigger) {
	r.Triggers = append(r.Triggers, t)
}
