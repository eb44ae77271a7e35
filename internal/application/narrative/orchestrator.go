// Package narrative drives the Intro, Descent, Resolution cycle.
//
// The orchestrator is the only owner of the committed scene. Scenes report
// semantic triggers, the orchestrator maps them to transitions and ignores
// every trigger that arrives while a transition is running.
package narrative

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/younwookim/descent/internal/application/ambient"
	"github.com/younwookim/descent/internal/application/assets"
	"github.com/younwookim/descent/internal/application/scene"
	"github.com/younwookim/descent/internal/application/scene/descent"
	"github.com/younwookim/descent/internal/application/scene/intro"
	"github.com/younwookim/descent/internal/application/scene/resolution"
	"github.com/younwookim/descent/internal/application/state"
	"github.com/younwookim/descent/internal/application/transition"
	"github.com/younwookim/descent/internal/infrastructure/display"
	"github.com/younwookim/descent/internal/infrastructure/input"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

// Overlay is the entry screen shown until the first accepted entry.
type Overlay interface {
	Dismiss()
}

// Factory constructs a fresh scene.
type Factory func(env *scene.Env) scene.Scene

// DefaultFactories returns the constructors of the three narrative beats.
func DefaultFactories() map[state.Ordinal]Factory {
	return map[state.Ordinal]Factory{
		state.OrdinalIntro:      func(env *scene.Env) scene.Scene { return intro.New(env) },
		state.OrdinalDescent:    func(env *scene.Env) scene.Scene { return descent.New(env) },
		state.OrdinalResolution: func(env *scene.Env) scene.Scene { return resolution.New(env) },
	}
}

// Options wires the orchestrator to its collaborators. Fader and Overlay may
// be nil. Without a Gate the textures in Env are taken as resolved.
type Options struct {
	Env       *scene.Env
	Stage     *display.Node
	Gate      *assets.Gate
	Fader     *ambient.Crossfader
	Overlay   Overlay
	Factories map[state.Ordinal]Factory
}

// Orchestrator owns the narrative state and the committed scene.
type Orchestrator struct {
	env       *scene.Env
	stage     *display.Node
	gate      *assets.Gate
	fader     *ambient.Crossfader
	overlay   Overlay
	factories map[state.Ordinal]Factory

	state   *state.Orchestrator
	choreo  *transition.Choreographer
	current scene.Scene
	wheel   input.Handle
}

// New creates an orchestrator. The wheel listener it registers lives until
// Close.
func New(opts Options) *Orchestrator {
	if opts.Factories == nil {
		opts.Factories = DefaultFactories()
	}
	st := state.New()
	o := &Orchestrator{
		env:       opts.Env,
		stage:     opts.Stage,
		gate:      opts.Gate,
		fader:     opts.Fader,
		overlay:   opts.Overlay,
		factories: opts.Factories,
		state:     st,
		choreo:    transition.New(opts.Stage, opts.Env.Tweens, st, opts.Env.Screen.Y),
	}
	if o.gate == nil || o.gate.Ready() {
		st.MarkLoaded()
	}
	o.wheel = opts.Env.Input.Listen(o.handleWheel)
	return o
}

// State exposes the narrative state for inspection.
func (o *Orchestrator) State() *state.Orchestrator {
	return o.state
}

// Current returns the committed scene, or nil before the first one.
func (o *Orchestrator) Current() scene.Scene {
	return o.current
}

// Choreographer returns the transition runner.
func (o *Orchestrator) Choreographer() *transition.Choreographer {
	return o.choreo
}

// BarHeight returns the letterbox bar height of the committed scene.
func (o *Orchestrator) BarHeight() float64 {
	if o.current != nil {
		if h, ok := o.current.Params().Lookup("barHeight"); ok {
			return h
		}
	}
	return o.env.Config.Display.BarHeight
}

// Enter is the user's entry gesture. It is accepted once, and only after
// the assets are loaded.
func (o *Orchestrator) Enter() bool {
	if !o.state.ResourcesLoaded() {
		log.Debug().Msg("entry ignored, assets not loaded")
		return false
	}
	if !o.state.MarkStarted() {
		log.Debug().Msg("entry ignored, already started")
		return false
	}
	log.Info().Msg("narrative started")

	if o.fader != nil {
		o.fader.Enter()
	}
	if o.overlay != nil {
		o.overlay.Dismiss()
	}
	o.env.Tweens.Add(tween.After(o.env.Config.Transitions.EntryDelay, o.presentIntro))
	return true
}

// Update advances one frame: pending asset results, tweens, then the
// committed scene.
func (o *Orchestrator) Update(dt float64) {
	if o.gate != nil && o.gate.Poll() {
		o.state.MarkLoaded()
	}
	o.env.Tweens.Update(dt)
	if o.current != nil && o.current.Active() {
		o.current.Update(dt)
	}
}

// Close releases the orchestrator's own input listener.
func (o *Orchestrator) Close() {
	o.wheel.Remove()
}

func (o *Orchestrator) presentIntro() {
	s := o.build(state.OrdinalIntro)
	if err := o.choreo.Present(s, o.commit); err != nil {
		log.Error().Err(err).Msg("first scene failed")
	}
}

func (o *Orchestrator) build(ord state.Ordinal) scene.Scene {
	s := o.factories[ord](o.env)
	s.SetTrigger(func(t scene.Trigger) { o.handle(s, t) })
	return s
}

func (o *Orchestrator) commit(s scene.Scene) {
	o.current = s
	o.state.SetCurrent(s.Ordinal())
}

func (o *Orchestrator) handle(from scene.Scene, t scene.Trigger) {
	if o.state.Transitioning() {
		log.Debug().Stringer("trigger", t).Msg("trigger ignored during transition")
		return
	}
	if from != o.current {
		log.Debug().Stringer("trigger", t).Stringer("scene", from.Ordinal()).Msg("trigger from a scene that is not current")
		return
	}

	cfg := o.env.Config.Transitions
	switch {
	case t == scene.TriggerSubjectTapped && from.Ordinal() == state.OrdinalIntro:
		o.advance(state.OrdinalDescent, transition.CrossfadeRecord(cfg.Crossfade))
	case t == scene.TriggerGestureComplete && from.Ordinal() == state.OrdinalDescent:
		o.advance(state.OrdinalResolution, transition.SlideRecord(cfg.Slide))
	case t == scene.TriggerRestartRequested && from.Ordinal() == state.OrdinalResolution:
		if o.advance(state.OrdinalIntro, transition.FadeThroughRecord(cfg.Restart)) && o.fader != nil {
			o.fader.Exit()
		}
	default:
		log.Debug().Stringer("trigger", t).Stringer("scene", from.Ordinal()).Msg("trigger has no transition")
	}
}

func (o *Orchestrator) handleWheel(ev input.Event) {
	if ev.Kind != input.Wheel {
		return
	}
	if !o.state.Started() || o.state.Transitioning() {
		return
	}
	if ev.DeltaY > o.env.Config.Gestures.WheelThreshold && o.state.CurrentOrdinal() == state.OrdinalDescent {
		log.Debug().Float64("delta", ev.DeltaY).Msg("wheel advance")
		o.advance(state.OrdinalResolution, transition.SlideRecord(o.env.Config.Transitions.Slide))
	}
}

func (o *Orchestrator) advance(next state.Ordinal, rec transition.Record) bool {
	rec.Outgoing = o.current
	rec.Incoming = o.build(next)
	if _, err := o.choreo.Transition(rec, o.commit); err != nil {
		if errors.Is(err, transition.ErrBusy) {
			log.Debug().Stringer("scene", next).Msg("transition busy")
		} else {
			log.Error().Err(err).Stringer("scene", next).Msg("transition failed")
		}
		return false
	}
	return true
}
