// Package resolution is the closing beat: scattered letters converge into a
// phrase as the viewer clicks, and completion asks for the narrative to
// start over.
package resolution

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/descent/internal/application/scene"
	"github.com/younwookim/descent/internal/application/state"
	"github.com/younwookim/descent/internal/domain/animator"
	"github.com/younwookim/descent/internal/domain/gesture"
	"github.com/younwookim/descent/internal/infrastructure/display"
	"github.com/younwookim/descent/internal/infrastructure/input"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

var (
	colorBackground = display.RGB(0x1A1A2E)
	colorAccent     = display.RGB(0x3498DB)
	colorHint       = display.RGB(0x888888)
)

const (
	barWidth   = 300
	barOffsetY = 120
	maxFloat   = 20
	// floatSpeed is the letter drift in radians per second.
	floatSpeed = 0.15
)

// Resolution is the third scene.
type Resolution struct {
	scene.Base

	machine *gesture.Machine

	letterLayer *display.Node
	progress    *display.Node
	hint        *display.Node
	letters     []letter
}

type letter struct {
	node             *display.Node
	targetX, targetY float64
	scatterX         float64
	scatterY         float64
	scatterRot       float64
}

// New creates the scene. Nothing is built until Init.
func New(env *scene.Env) *Resolution {
	return &Resolution{
		Base: scene.NewBase(env, state.OrdinalResolution, scene.CapIntro|scene.CapGesture, map[string]float64{
			"barHeight": env.Config.Display.BarHeight,
			"floatAmp":  maxFloat,
		}),
	}
}

// Init implements scene.Scene.
func (s *Resolution) Init() error {
	if !s.BeginInit() {
		return nil
	}
	click := s.Env.Config.Gestures.Click
	s.machine = gesture.New(gesture.Config{
		Mode:      gesture.ModeClick,
		Increment: click.Increment,
		DecayRate: click.DecayRate,
		Threshold: click.Threshold,
	}, s.complete)

	if err := s.build(); err != nil {
		s.AbortInit()
		return fmt.Errorf("resolution: %w", err)
	}
	s.wire()
	s.Listen(s.handle)
	return nil
}

func (s *Resolution) build() error {
	env := s.Env
	cfg := env.Config.Scenes.Resolution
	w, h := env.Screen.X, env.Screen.Y
	c := env.Center()
	rng := env.Rand

	big, err := display.Face(60)
	if err != nil {
		return err
	}
	small, err := display.Face(14)
	if err != nil {
		return err
	}

	s.Root().AddChild(display.NewPainter("background", func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		display.FillRect(dst, geo, 0, 0, w, h, colorBackground, alpha)
	}))

	s.letterLayer = display.NewContainer("letters")
	s.letterLayer.X, s.letterLayer.Y = c.X, c.Y
	s.Root().AddChild(s.letterLayer)

	runes := []rune(cfg.Text)
	startX := -float64(len(runes)-1) * cfg.CharSpacing / 2
	for i, r := range runes {
		if r == ' ' {
			continue
		}
		angle := rng.Float64() * math.Pi * 2
		dist := 300 + rng.Float64()*500
		l := letter{
			node:       display.NewText(fmt.Sprintf("letter%d", i), string(r), big),
			targetX:    startX + float64(i)*cfg.CharSpacing,
			scatterX:   math.Cos(angle) * dist,
			scatterY:   math.Sin(angle) * dist,
			scatterRot: (rng.Float64() - 0.5) * math.Pi * 2,
		}
		l.node.X, l.node.Y = l.scatterX, l.scatterY
		l.node.Rotation = l.scatterRot
		l.node.Alpha = 0
		l.node.Tint = grey(0)
		s.letterLayer.AddChild(l.node)
		s.letters = append(s.letters, l)

		phase := rng.Float64() * 100
		n := len(s.letters) - 1
		s.Animator().Oscillate(animator.Oscillator{
			Key: floatKey(n, "X"), AmplitudeKey: "floatAmp", Amplitude: 1,
			Speed: floatSpeed, Phase: phase, Wave: animator.Cosine,
		})
		s.Animator().Oscillate(animator.Oscillator{
			Key: floatKey(n, "Y"), AmplitudeKey: "floatAmp", Amplitude: 1,
			Speed: floatSpeed, Phase: phase,
		})
	}

	s.progress = display.NewContainer("progress")
	s.progress.X, s.progress.Y = c.X, c.Y+barOffsetY
	s.progress.Alpha = 0
	s.progress.AddChild(display.NewPainter("bar", s.paintBar))
	s.hint = display.NewText("hint", ">>> CLICK TO RESTORE <<<", small)
	s.hint.Y = 30
	s.hint.Tint = colorHint
	s.progress.AddChild(s.hint)
	s.Root().AddChild(s.progress)
	return nil
}

func floatKey(i int, axis string) string {
	return fmt.Sprintf("float%d%s", i, axis)
}

func (s *Resolution) wire() {
	c := s.Env.Center()
	a := s.Animator()
	snap := func(key string, base, scale float64, axis func(animator.Vec2) float64) {
		a.Approach(animator.Approach{
			Key:       key,
			Smoothing: 1,
			Target: func(f animator.Frame, _ animator.Snapshot) float64 {
				return base - axis(f.Offset())*scale
			},
		})
	}
	x := func(v animator.Vec2) float64 { return v.X }
	y := func(v animator.Vec2) float64 { return v.Y }
	snap("lettersX", c.X, 0.03, x)
	snap("lettersY", c.Y, 0.03, y)
	snap("progressX", c.X, 0.015, x)
	snap("progressY", c.Y+barOffsetY, 0.015, y)
}

// PlayIntro implements scene.Scene.
func (s *Resolution) PlayIntro() {
	if !s.Active() {
		return
	}
	for _, l := range s.letters {
		s.Animate(tween.To(2.0, ease.InOutQuad, tween.Prop(&l.node.Alpha, 0.6)).Delay(s.Env.Rand.Float64() * 0.5))
	}
	s.Animate(tween.To(1.0, ease.Linear, tween.Prop(&s.progress.Alpha, 1)).Delay(1.0))
	s.Animate(tween.To(0.8, ease.Linear, tween.Prop(&s.hint.Alpha, 0.5)).Repeat(-1, true))
}

// Update implements scene.Scene.
func (s *Resolution) Update(dt float64) {
	if !s.Active() {
		return
	}
	p := s.Params()
	s.Advance(dt)
	s.machine.Update(dt, true)

	e := s.eased()
	s.letterLayer.X = p.Get("lettersX") + p.Get("shakeX")
	s.letterLayer.Y = p.Get("lettersY")
	s.progress.X, s.progress.Y = p.Get("progressX"), p.Get("progressY")

	done := s.machine.Completed()
	for i, l := range s.letters {
		l.node.X = l.scatterX + (l.targetX-l.scatterX)*e + p.Get(floatKey(i, "X"))
		l.node.Y = l.scatterY + (l.targetY-l.scatterY)*e + p.Get(floatKey(i, "Y"))
		l.node.Rotation = l.scatterRot * (1 - e)
		if done {
			l.node.Tint = display.ColorWhite
			l.node.Alpha = 1
		} else {
			l.node.Tint = grey(e)
			l.node.Alpha = 0.5 + 0.5*e
		}
	}

	// read by the oscillators next frame
	p.Set("progress", s.machine.Progress())
	p.Set("floatAmp", (1-e)*maxFloat)
}

// eased maps progress onto the convergence curve.
func (s *Resolution) eased() float64 {
	if s.machine.Completed() {
		return 1
	}
	pr := s.machine.Progress()
	return pr * pr
}

func grey(e float64) display.Color {
	v := (85 + 100*e) / 255
	return display.Color{R: v, G: v, B: v, A: 1}
}

func (s *Resolution) handle(ev input.Event) {
	if ev.Kind != input.PointerDown || s.machine.Completed() {
		return
	}
	s.ripple(ev.X, ev.Y)
	s.machine.Click()
	s.Animate(tween.To(0.05, ease.Linear,
		tween.Prop(&s.letterLayer.ScaleX, 0.95),
		tween.Prop(&s.letterLayer.ScaleY, 0.95),
	).Repeat(1, true))
	s.progress.Alpha = 1
}

// ripple spawns a ring at the click that grows and fades, then disposes
// itself.
func (s *Resolution) ripple(x, y float64) {
	lx, ly := s.Root().ToLocal(x, y)
	ring := display.NewPainter("ripple", func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		display.StrokeCircle(dst, geo, 0, 0, 20, 2, display.ColorWhite, alpha*0.8)
	})
	ring.X, ring.Y = lx, ly
	s.Root().AddChild(ring)

	grow := tween.To(0.4, ease.OutCubic,
		tween.Prop(&ring.ScaleX, 2.5),
		tween.Prop(&ring.ScaleY, 2.5),
		tween.Prop(&ring.Alpha, 0),
	)
	grow.OnComplete = ring.Dispose
	s.Animate(grow)
}

func (s *Resolution) paintBar(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	display.FillRect(dst, geo, -barWidth/2, -2, barWidth, 4, display.ColorWhite, alpha*0.2)
	c := colorAccent
	if s.machine.Completed() {
		c = display.ColorWhite
	}
	if w := barWidth * s.eased(); w > 0 {
		display.FillRect(dst, geo, -barWidth/2, -2, w, 4, c, alpha)
	}
}

// complete runs once, inside the update that reaches the threshold.
func (s *Resolution) complete() {
	log.Info().Stringer("scene", s.Ordinal()).Msg("memory restored")
	p := s.Params()
	s.Animate(tween.To(0.5, ease.Linear, tween.Prop(&s.progress.Alpha, 0)))
	s.Animate(tween.To(0.05, ease.Linear, tween.Prop(p.Field("shakeX"), 5)).Repeat(5, true))
	s.Animate(tween.To(0.2, ease.Linear,
		tween.Prop(&s.letterLayer.ScaleX, 1.1),
		tween.Prop(&s.letterLayer.ScaleY, 1.1),
	).Repeat(1, true))
	s.Animate(tween.After(s.Env.Config.Gestures.Click.SettleDelay, func() {
		s.Fire(scene.TriggerRestartRequested)
	}))
}

// Machine exposes the click gesture.
func (s *Resolution) Machine() *gesture.Machine {
	return s.machine
}

// Letters returns the letter nodes in phrase order.
func (s *Resolution) Letters() []*display.Node {
	out := make([]*display.Node, len(s.letters))
	for i, l := range s.letters {
		out[i] = l.node
	}
	return out
}
