// Package scene defines the contract every narrative beat implements.
//
// A scene owns one display subtree, one parameter bag and the input
// listeners it registers. It is constructed by the orchestrator, initialized
// before its root is attached, advanced once per frame while it is the
// committed scene, and torn down exactly once when it is replaced.
package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/younwookim/descent/internal/application/state"
	"github.com/younwookim/descent/internal/domain/animator"
	"github.com/younwookim/descent/internal/infrastructure/assert"
	"github.com/younwookim/descent/internal/infrastructure/config"
	"github.com/younwookim/descent/internal/infrastructure/display"
	"github.com/younwookim/descent/internal/infrastructure/input"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

// ErrMissingTexture is returned by Init when a required texture was not
// resolved.
var ErrMissingTexture = errors.New("texture not resolved")

// Capability flags optional scene behaviour.
type Capability uint8

const (
	// CapIntro marks scenes with an entry animation.
	CapIntro Capability = 1 << iota
	// CapGesture marks scenes that own a gesture machine.
	CapGesture
)

// Has reports whether c includes flag.
func (c Capability) Has(flag Capability) bool {
	return c&flag != 0
}

// Trigger is a semantic event a scene reports to the orchestrator.
type Trigger uint8

const (
	TriggerSubjectTapped Trigger = iota + 1
	TriggerGestureComplete
	TriggerRestartRequested
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	switch t {
	case TriggerSubjectTapped:
		return "SubjectTapped"
	case TriggerGestureComplete:
		return "GestureComplete"
	case TriggerRestartRequested:
		return "RestartRequested"
	default:
		return "Unknown"
	}
}

// Scene is one narrative beat.
type Scene interface {
	Ordinal() state.Ordinal
	Capabilities() Capability

	// Root is the subtree the scene owns. It is valid after Init.
	Root() *display.Node
	Params() *animator.Params

	// Active reports whether the scene is initialized and not torn down.
	Active() bool

	// Init builds the display tree from resolved textures and registers
	// input listeners. Calling it again is a no-op.
	Init() error

	// Update advances the scene by dt seconds.
	Update(dt float64)

	// PlayIntro starts the entry animation on the shared tween runner.
	PlayIntro()

	// Teardown releases listeners and the display subtree. It must be
	// called exactly once.
	Teardown()

	// SetTrigger installs the receiver of semantic events.
	SetTrigger(fn func(Trigger))
}

// Textures resolves the first available texture among uris.
type Textures interface {
	Lookup(uris ...string) (img *ebiten.Image, uri string, ok bool)
}

// TextureMap is a Textures backed by a plain map.
type TextureMap map[string]*ebiten.Image

// Lookup implements Textures.
func (m TextureMap) Lookup(uris ...string) (*ebiten.Image, string, bool) {
	for _, u := range uris {
		if img, ok := m[u]; ok && img != nil {
			return img, u, true
		}
	}
	return nil, "", false
}

// Env carries the collaborators shared by every scene.
type Env struct {
	Screen   animator.Vec2
	Config   config.NarrativeConfig
	Textures Textures
	Input    *input.Hub
	Tweens   *tween.Runner
	Rand     *rand.Rand
}

// Center returns the screen center.
func (e *Env) Center() animator.Vec2 {
	return animator.Vec2{X: e.Screen.X / 2, Y: e.Screen.Y / 2}
}

// Pointer returns the latest pointer position.
func (e *Env) Pointer() animator.Vec2 {
	s := e.Input.Latest()
	return animator.Vec2{X: s.X, Y: s.Y}
}

// Texture returns the first resolved texture among uris or an error naming
// them.
func (e *Env) Texture(uris ...string) (*ebiten.Image, error) {
	img, uri, ok := e.Textures.Lookup(uris...)
	if !ok {
		return nil, fmt.Errorf("%v: %w", uris, ErrMissingTexture)
	}
	if uri != uris[0] {
		log.Warn().Str("uri", uris[0]).Str("fallback", uri).Msg("texture missing, using fallback")
	}
	return img, nil
}

// Base implements the lifecycle bookkeeping shared by the variants.
type Base struct {
	Env *Env

	ordinal state.Ordinal
	caps    Capability
	root    *display.Node
	params  *animator.Params
	anim    *animator.Animator

	listeners input.Scope
	trigger   func(Trigger)

	initialized bool
	tornDown    bool
}

// NewBase creates the shared part of a scene.
func NewBase(env *Env, ord state.Ordinal, caps Capability, params map[string]float64) Base {
	p := animator.NewParams(params)
	return Base{
		Env:     env,
		ordinal: ord,
		caps:    caps,
		root:    display.NewContainer(ord.String()),
		params:  p,
		anim:    animator.New(p, env.Screen),
	}
}

func (b *Base) Ordinal() state.Ordinal { return b.ordinal }
func (b *Base) Capabilities() Capability { return b.caps }
func (b *Base) Root() *display.Node { return b.root }
func (b *Base) Params() *animator.Params { return b.params }
func (b *Base) Animator() *animator.Animator { return b.anim }

// SetTrigger implements Scene.
func (b *Base) SetTrigger(fn func(Trigger)) {
	b.trigger = fn
}

// Active implements Scene.
func (b *Base) Active() bool {
	return b.initialized && !b.tornDown
}

// BeginInit reports whether Init should build the scene. It returns false
// after the first call or after teardown.
func (b *Base) BeginInit() bool {
	if b.initialized || b.tornDown {
		return false
	}
	b.initialized = true
	return true
}

// AbortInit undoes BeginInit after a failed build.
func (b *Base) AbortInit() {
	b.initialized = false
	b.listeners.Release()
}

// Listen registers fn with the input hub for the scene's lifetime. Events
// are dropped while the scene is not active.
func (b *Base) Listen(fn func(input.Event)) {
	b.listeners.Add(b.Env.Input.Listen(func(ev input.Event) {
		if b.Active() {
			fn(ev)
		}
	}))
}

// Fire reports t to the orchestrator.
func (b *Base) Fire(t Trigger) {
	if !b.Active() || b.trigger == nil {
		return
	}
	log.Debug().Stringer("scene", b.ordinal).Stringer("trigger", t).Msg("scene trigger")
	b.trigger(t)
}

// Animate schedules tw on the shared runner, bound to the scene's lifetime.
func (b *Base) Animate(tw *tween.Tween) *tween.Tween {
	tw.Owner(b.root)
	b.Env.Tweens.Add(tw)
	return tw
}

// Advance runs the animator for one frame against the latest pointer sample.
func (b *Base) Advance(dt float64) {
	b.anim.Advance(dt, b.Env.Pointer())
}

// Teardown implements Scene.
func (b *Base) Teardown() {
	assert.That(!b.tornDown, "scene %s torn down twice", b.ordinal)
	if b.tornDown {
		return
	}
	b.tornDown = true
	b.listeners.Release()
	b.root.Dispose()
	log.Debug().Stringer("scene", b.ordinal).Msg("scene torn down")
}
