// Package transition animates the hand-over between two scenes.
//
// A transition runs the exit of the outgoing scene and the entry of the
// incoming one as a single tween group. The group's completion is the only
// place where the outgoing scene is torn down and the incoming one becomes
// current, so the narrative never observes a half-committed state.
package transition

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/descent/internal/application/scene"
	"github.com/younwookim/descent/internal/application/state"
	"github.com/younwookim/descent/internal/infrastructure/config"
	"github.com/younwookim/descent/internal/infrastructure/display"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

// ErrBusy is returned when a transition is requested while another one runs.
var ErrBusy = errors.New("transition already running")

// Kind selects the choreography.
type Kind uint8

const (
	// Crossfade dims the outgoing scene while the incoming one fades in on
	// top of it.
	Crossfade Kind = iota
	// Slide pushes the outgoing scene up and the incoming one in from below.
	Slide
	// FadeThrough fades the outgoing scene out completely before the
	// incoming one fades in.
	FadeThrough
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Crossfade:
		return "Crossfade"
	case Slide:
		return "Slide"
	case FadeThrough:
		return "FadeThrough"
	default:
		return "Unknown"
	}
}

// Record describes one transition. It lives from Transition until commit.
type Record struct {
	Outgoing scene.Scene
	Incoming scene.Scene
	Kind     Kind

	// Duration is the entry length in seconds. Exit is the exit length; zero
	// means the same as Duration.
	Duration float64
	Exit     float64
	Ease     ease.TweenFunc

	// Dim is the alpha the outgoing scene settles at during a crossfade.
	Dim float64
}

// CrossfadeRecord returns the Intro to Descent choreography.
func CrossfadeRecord(cfg config.CrossfadeConfig) Record {
	return Record{Kind: Crossfade, Duration: cfg.Duration, Ease: ease.InOutQuad, Dim: cfg.OutgoingAlpha}
}

// SlideRecord returns the Descent to Resolution choreography.
func SlideRecord(cfg config.SlideConfig) Record {
	return Record{Kind: Slide, Duration: cfg.Duration, Ease: ease.InOutCubic}
}

// FadeThroughRecord returns the restart choreography.
func FadeThroughRecord(cfg config.RestartConfig) Record {
	return Record{Kind: FadeThrough, Duration: cfg.FadeIn, Exit: cfg.FadeOut, Ease: ease.Linear}
}

func (r Record) exit() float64 {
	if r.Exit > 0 {
		return r.Exit
	}
	return r.Duration
}

// Choreographer attaches incoming scenes to the stage and runs transitions.
type Choreographer struct {
	stage   *display.Node
	tweens  *tween.Runner
	state   *state.Orchestrator
	screenH float64

	pending *Record
}

// New creates a choreographer that attaches scenes under stage.
func New(stage *display.Node, tweens *tween.Runner, st *state.Orchestrator, screenH float64) *Choreographer {
	return &Choreographer{
		stage:   stage,
		tweens:  tweens,
		state:   st,
		screenH: screenH,
	}
}

// Pending returns the running transition, or nil.
func (c *Choreographer) Pending() *Record {
	return c.pending
}

// Present initializes s, shows it at once and commits it. It is used for the
// first scene, which has nothing to replace.
func (c *Choreographer) Present(s scene.Scene, commit func(scene.Scene)) error {
	if err := s.Init(); err != nil {
		s.Teardown()
		return fmt.Errorf("init %s: %w", s.Ordinal(), err)
	}
	c.stage.AddChild(s.Root())
	if s.Capabilities().Has(scene.CapIntro) {
		s.PlayIntro()
	}
	commit(s)
	log.Info().Stringer("scene", s.Ordinal()).Msg("scene presented")
	return nil
}

// Transition starts rec. The returned channel is closed after commit has
// been called. On error nothing changed: the incoming scene was torn down
// and the outgoing one stays current.
func (c *Choreographer) Transition(rec Record, commit func(scene.Scene)) (<-chan struct{}, error) {
	if !c.state.BeginTransition() {
		return nil, ErrBusy
	}

	in := rec.Incoming
	if err := in.Init(); err != nil {
		in.Teardown()
		c.state.EndTransition()
		return nil, fmt.Errorf("init %s: %w", in.Ordinal(), err)
	}

	root := in.Root()
	switch rec.Kind {
	case Slide:
		root.Y = c.screenH
	default:
		root.Alpha = 0
	}
	c.stage.AddChild(root)

	c.pending = &rec
	done := make(chan struct{})
	group := c.choreograph(rec)
	group.OnComplete = func() {
		if rec.Outgoing != nil {
			rec.Outgoing.Teardown()
		}
		commit(in)
		c.pending = nil
		c.state.EndTransition()
		close(done)
		log.Info().Stringer("scene", in.Ordinal()).Stringer("kind", rec.Kind).Msg("transition committed")
	}
	c.tweens.Add(group)

	log.Info().Stringer("scene", in.Ordinal()).Stringer("kind", rec.Kind).Msg("transition started")
	return done, nil
}

func (c *Choreographer) choreograph(rec Record) *tween.Group {
	in := rec.Incoming
	inRoot := in.Root()
	intro := in.Capabilities().Has(scene.CapIntro)
	group := tween.NewGroup()

	var entry *tween.Tween
	switch rec.Kind {
	case Crossfade:
		entry = tween.To(rec.Duration, rec.Ease, tween.PropFrom(&inRoot.Alpha, 0, 1))
		if intro {
			entry.OnComplete = in.PlayIntro
		}
		if rec.Outgoing != nil {
			group.Add(tween.To(rec.exit(), rec.Ease, tween.Prop(&rec.Outgoing.Root().Alpha, rec.Dim)))
		}
	case Slide:
		entry = tween.To(rec.Duration, rec.Ease, tween.PropFrom(&inRoot.Y, c.screenH, 0))
		if rec.Outgoing != nil {
			group.Add(tween.To(rec.exit(), rec.Ease, tween.Prop(&rec.Outgoing.Root().Y, -c.screenH)))
		}
	case FadeThrough:
		entry = tween.To(rec.Duration, rec.Ease, tween.PropFrom(&inRoot.Alpha, 0, 1))
		if rec.Outgoing != nil {
			group.Add(tween.To(rec.exit(), rec.Ease, tween.Prop(&rec.Outgoing.Root().Alpha, 0)))
			entry.Delay(rec.exit())
		}
	}
	if intro && rec.Kind != Crossfade {
		entry.OnStart = in.PlayIntro
	}
	group.Add(entry)
	return group
}
