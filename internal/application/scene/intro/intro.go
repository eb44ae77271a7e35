// Package intro is the opening beat: a lit, wind-swept tableau whose subject
// the viewer taps to dive in.
package intro

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/descent/internal/application/scene"
	"github.com/younwookim/descent/internal/application/state"
	"github.com/younwookim/descent/internal/domain/animator"
	"github.com/younwookim/descent/internal/infrastructure/display"
	"github.com/younwookim/descent/internal/infrastructure/input"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

// Layout offsets relative to the screen center.
const (
	backgroundX = -267
	backgroundY = 500
	subjectX    = -9
	subjectY    = 151
	subjectRise = 150

	// timer advances this many units per second
	timeScale = 1.2

	follow      = 0.1
	bokehFollow = 0.05
	edgeMargin  = 50
)

// Intro is the first scene.
type Intro struct {
	scene.Base

	world      *display.Node
	background *display.Node
	fogRear    *display.Node
	fogFront   *display.Node
	mainLayer  *display.Node
	atmosphere *display.Node
	lights     *display.Node
	bokehLayer *display.Node
	subject    *display.Node
	particles  *display.Node
	tooltip    *display.Node

	beams   []*display.Node
	bokehs  []*display.Node
	petals  *animator.Field
	petal   *ebiten.Image
	fogRate [2]float64
	fogTex  *ebiten.Image

	hovering bool
	pressed  bool
}

// New creates the scene. Nothing is built until Init.
func New(env *scene.Env) *Intro {
	cfg := env.Config.Scenes.Intro
	return &Intro{
		Base: scene.NewBase(env, state.OrdinalIntro, scene.CapIntro, map[string]float64{
			"bgScale":          cfg.BackgroundScale,
			"charScale":        cfg.SubjectScale,
			"parallaxStrength": cfg.ParallaxStrength,
			"shakeIntensity":   cfg.ShakeIntensity,
			"lightAlpha":       cfg.LightAlpha,
			"lightAngle":       cfg.LightAngle,
			"lightMoveSpeed":   cfg.LightMoveSpeed,
			"rgbSplit":         cfg.RGBSplit,
			"windSpeedX":       cfg.WindSpeedX,
			"windSpeedY":       cfg.WindSpeedY,
			"barHeight":        env.Config.Display.BarHeight,
		}),
	}
}

// Init implements scene.Scene.
func (s *Intro) Init() error {
	if !s.BeginInit() {
		return nil
	}
	assets := s.Env.Config.Assets
	bg, err := s.Env.Texture(assets.Background)
	if err != nil {
		s.AbortInit()
		return fmt.Errorf("intro background: %w", err)
	}
	subject, err := s.Env.Texture(assets.Subject)
	if err != nil {
		s.AbortInit()
		return fmt.Errorf("intro subject: %w", err)
	}

	s.build(bg, subject)
	s.wire()
	s.Listen(s.handle)
	return nil
}

func (s *Intro) build(bg, subject *ebiten.Image) {
	env := s.Env
	cfg := env.Config.Scenes.Intro
	w, h := env.Screen.X, env.Screen.Y
	c := env.Center()
	rng := env.Rand
	p := s.Params()

	s.world = display.NewContainer("world")
	s.world.PivotX, s.world.PivotY = c.X, c.Y
	s.world.X, s.world.Y = c.X, c.Y
	s.Root().AddChild(s.world)

	s.background = display.NewSprite("background", bg)
	s.background.X, s.background.Y = c.X+backgroundX, c.Y+backgroundY
	s.background.SetScale(p.Get("bgScale"))
	s.background.Alpha = 0
	s.world.AddChild(s.background)
	p.Set("bgX", s.background.X)
	p.Set("bgY", s.background.Y)

	s.fogTex = cloudStrip(rng)
	s.fogRear = s.fogLayer("fogRear")
	s.fogRear.Alpha = 0
	s.world.AddChild(s.fogRear)

	s.mainLayer = display.NewContainer("main")
	s.world.AddChild(s.mainLayer)

	s.atmosphere = display.NewSprite("atmosphere", display.NewVerticalGradient(int(w), int(h),
		display.Color{R: 1, G: 230.0 / 255, B: 200.0 / 255, A: 0.2}, display.Color{}))
	s.atmosphere.X, s.atmosphere.Y = c.X, c.Y
	s.atmosphere.Blend = ebiten.BlendLighter
	s.atmosphere.Alpha = 0
	s.mainLayer.AddChild(s.atmosphere)

	s.lights = display.NewContainer("lights")
	s.lights.X, s.lights.Y = w/2, -100
	s.lights.Alpha = 0
	s.mainLayer.AddChild(s.lights)
	offsets := []float64{-w * 0.3, 0, w * 0.3}
	for i := range cfg.Beams {
		beamW := 200 + rng.Float64()*300
		beam := display.NewSprite(fmt.Sprintf("beam%d", i), display.NewBeam(int(beamW), int(h*1.5)))
		beam.AnchorY = 0
		beam.Blend = ebiten.BlendLighter
		beam.X = offsets[i%len(offsets)] + (rng.Float64()-0.5)*200
		s.lights.AddChild(beam)
		s.beams = append(s.beams, beam)
		s.Animator().Oscillate(animator.Oscillator{
			Key:          fmt.Sprintf("beam%dRotation", i),
			BaselineKey:  "lightAngle",
			Amplitude:    0.1,
			AmplitudeKey: "lightMoveSpeed",
			Speed:        (0.005 + rng.Float64()*0.005) * timeScale,
			Phase:        rng.Float64() * 10,
		})
		s.Animator().Oscillate(animator.Oscillator{
			Key:         fmt.Sprintf("beam%dAlpha", i),
			BaselineKey: "lightAlpha",
			Amplitude:   0.04,
			Speed:       5 + rng.Float64()*4,
			Phase:       rng.Float64() * math.Pi * 2,
		})
	}

	s.bokehLayer = display.NewContainer("bokeh")
	s.bokehLayer.Alpha = 0
	s.mainLayer.AddChild(s.bokehLayer)
	disc := display.NewDisc(50)
	for i := range cfg.Bokehs {
		b := display.NewSprite(fmt.Sprintf("bokeh%d", i), disc)
		b.X = (rng.Float64() - 0.5) * w
		b.Y = (rng.Float64() - 0.5) * h
		b.SetScale(0.5 + rng.Float64())
		b.Alpha = 0.05 + rng.Float64()*0.1
		b.Blend = ebiten.BlendLighter
		if rng.Float64() > 0.5 {
			b.Tint = display.RGB(0xFFF0DD)
		} else {
			b.Tint = display.RGB(0xDDFFFF)
		}
		s.bokehLayer.AddChild(b)
		s.bokehs = append(s.bokehs, b)

		strength := 0.02 + rng.Float64()*0.05
		kx, ky := fmt.Sprintf("bokeh%dX", i), fmt.Sprintf("bokeh%dY", i)
		p.Set(kx, b.X)
		p.Set(ky, b.Y)
		s.Animator().Approach(animator.Approach{
			Key: kx, Smoothing: bokehFollow,
			Target: func(f animator.Frame, _ animator.Snapshot) float64 { return -f.Offset().X * strength * 2 },
		})
		s.Animator().Approach(animator.Approach{
			Key: ky, Smoothing: bokehFollow,
			Target: func(f animator.Frame, _ animator.Snapshot) float64 { return -f.Offset().Y * strength * 2 },
		})
	}

	s.subject = display.NewSprite("subject", subject)
	s.subject.X, s.subject.Y = c.X+subjectX, c.Y+subjectY+subjectRise
	s.subject.SetScale(p.Get("charScale"))
	s.subject.Alpha = 0
	s.subject.AddChild(display.NewPainter("aberration", s.paintAberration))
	s.mainLayer.AddChild(s.subject)
	p.Set("charX", s.subject.X)
	p.Set("charY", s.subject.Y)

	s.petal = display.NewEllipse(8, 4)
	bounds := animator.Bounds{MinX: -edgeMargin, MinY: -edgeMargin, MaxX: w + edgeMargin, MaxY: h + edgeMargin}
	s.petals = animator.NewField(cfg.Petals, bounds, animator.Reseed, rng, seedPetal)
	s.Animator().Drift(s.petals)
	s.particles = display.NewPainter("petals", s.paintPetals)
	s.particles.Alpha = 0
	s.mainLayer.AddChild(s.particles)

	s.fogFront = s.fogLayer("fogFront")
	s.fogFront.Alpha = 0
	s.world.AddChild(s.fogFront)

	face, err := display.Face(16)
	if err == nil {
		s.tooltip = display.NewText("tooltip", "DIVE IN", face)
	} else {
		s.tooltip = display.NewContainer("tooltip")
	}
	s.tooltip.Alpha = 0
	s.tooltip.ZIndex = 999
	s.Root().AddChild(s.tooltip)

	s.fogRate = [2]float64{(0.2 + rng.Float64()*0.3) * 60, (0.2 + rng.Float64()*0.3) * 60 * 1.5}
}

// wire registers the per-frame motion of the world.
func (s *Intro) wire() {
	a := s.Animator()
	c := s.Env.Center()
	parallax := func(axis func(animator.Vec2) float64, scale float64) func(animator.Frame, animator.Snapshot) float64 {
		return func(f animator.Frame, prev animator.Snapshot) float64 {
			return -axis(f.Offset()) * prev.Get("parallaxStrength") * scale
		}
	}
	x := func(v animator.Vec2) float64 { return v.X }
	y := func(v animator.Vec2) float64 { return v.Y }

	a.Approach(animator.Approach{Key: "bgX", Smoothing: follow, Target: offset(c.X+backgroundX, parallax(x, 1))})
	a.Approach(animator.Approach{Key: "bgY", Smoothing: follow, Target: offset(c.Y+backgroundY, parallax(y, 1))})

	visible := func(prev animator.Snapshot) bool { return prev.Get("charAlpha") > 0.9 }
	a.Approach(animator.Approach{Key: "charX", Smoothing: follow, Gate: visible, Target: offset(c.X+subjectX, parallax(x, 0.5))})
	a.Approach(animator.Approach{Key: "charY", Smoothing: follow, Gate: visible, Target: offset(c.Y+subjectY, parallax(y, 0.5))})

	a.Oscillate(animator.Oscillator{Key: "shakeX", AmplitudeKey: "shakeIntensity", Amplitude: 1, Speed: 2 * timeScale})
	a.Oscillate(animator.Oscillator{Key: "shakeY", AmplitudeKey: "shakeIntensity", Amplitude: 1, Speed: 1.5 * timeScale, Wave: animator.Cosine})
}

func offset(base float64, fn func(animator.Frame, animator.Snapshot) float64) func(animator.Frame, animator.Snapshot) float64 {
	return func(f animator.Frame, prev animator.Snapshot) float64 {
		return base + fn(f, prev)
	}
}

// PlayIntro implements scene.Scene.
func (s *Intro) PlayIntro() {
	if !s.Active() {
		return
	}
	c := s.Env.Center()
	for _, n := range []*display.Node{s.background, s.atmosphere, s.lights, s.bokehLayer, s.fogRear, s.fogFront} {
		s.Animate(tween.To(1.5, ease.Linear, tween.Prop(&n.Alpha, 1)))
	}
	s.Animate(tween.To(2.0, ease.OutQuart,
		tween.Prop(&s.subject.Alpha, 1),
		tween.Prop(&s.subject.Y, c.Y+subjectY),
	).Delay(0.5))
	s.Animate(tween.To(2.0, ease.Linear, tween.Prop(&s.particles.Alpha, 1)).Delay(1.0))
	split := s.Params().Field("rgbSplit")
	*split = 15
	s.Animate(tween.To(3.0, ease.OutQuint, tween.Prop(split, s.Env.Config.Scenes.Intro.RGBSplit)).Delay(1.0))
}

// Update implements scene.Scene.
func (s *Intro) Update(dt float64) {
	if !s.Active() {
		return
	}
	p := s.Params()

	// the subject follows its entry tween until it is almost opaque
	p.Set("charAlpha", s.subject.Alpha)
	if s.subject.Alpha <= 0.9 {
		p.Set("charX", s.subject.X)
		p.Set("charY", s.subject.Y)
	}
	s.petals.Wind = animator.Vec2{X: p.Get("windSpeedX"), Y: p.Get("windSpeedY")}

	s.Advance(dt)

	s.background.X, s.background.Y = p.Get("bgX"), p.Get("bgY")
	s.background.SetScale(p.Get("bgScale"))
	if s.subject.Alpha > 0.9 {
		s.subject.X, s.subject.Y = p.Get("charX"), p.Get("charY")
		s.subject.SetScale(p.Get("charScale"))
	}
	for i, beam := range s.beams {
		beam.Rotation = p.Get(fmt.Sprintf("beam%dRotation", i))
		beam.Alpha = p.Get(fmt.Sprintf("beam%dAlpha", i))
	}
	for i, b := range s.bokehs {
		b.X, b.Y = p.Get(fmt.Sprintf("bokeh%dX", i)), p.Get(fmt.Sprintf("bokeh%dY", i))
	}

	c := s.Env.Center()
	s.world.PivotX = c.X + p.Get("shakeX")
	s.world.PivotY = c.Y + p.Get("shakeY")

	t := s.Animator().Time()
	s.fogRear.X = -math.Mod(t*s.fogRate[0], fogWidth*fogScale)
	s.fogFront.X = -math.Mod(t*s.fogRate[1], fogWidth*fogScale)

	pointer := s.Env.Pointer()
	s.setHover(s.subject.HitTest(pointer.X, pointer.Y))
	if s.tooltip.Alpha > 0.01 {
		s.tooltip.X, s.tooltip.Y = pointer.X, pointer.Y
	}
}

// Hovering reports whether the pointer is over the subject.
func (s *Intro) Hovering() bool {
	return s.hovering
}

// Subject returns the tappable subject node.
func (s *Intro) Subject() *display.Node {
	return s.subject
}

func (s *Intro) setHover(over bool) {
	if over == s.hovering {
		return
	}
	s.hovering = over
	if over {
		s.Animate(tween.To(0.3, ease.OutCubic, tween.Prop(&s.tooltip.Alpha, 1)))
		s.Animate(tween.To(0.3, ease.Linear,
			tween.PropFrom(&s.tooltip.ScaleX, 0.5, 1),
			tween.PropFrom(&s.tooltip.ScaleY, 0.5, 1),
		))
		return
	}
	s.Animate(tween.To(0.3, ease.Linear, tween.Prop(&s.tooltip.Alpha, 0)))
}

func (s *Intro) handle(ev input.Event) {
	switch ev.Kind {
	case input.PointerDown:
		s.pressed = s.subject.HitTest(ev.X, ev.Y)
	case input.PointerUp:
		tapped := s.pressed && s.subject.HitTest(ev.X, ev.Y)
		s.pressed = false
		if tapped {
			s.Fire(scene.TriggerSubjectTapped)
		}
	}
}

// paintAberration draws red and blue ghosts of the subject pushed apart
// along the pointer's offset from the screen center.
func (s *Intro) paintAberration(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	img := s.subject.Image
	if img == nil {
		return
	}
	c := s.Env.Center()
	pointer := s.Env.Pointer()
	split := s.Params().Get("rgbSplit")
	dx := (pointer.X - c.X) / c.X * split
	dy := (pointer.Y - c.Y) / c.Y * split

	b := img.Bounds()
	ghost := func(ox, oy float64, r, g, bl float32) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Concat(geo)
		op.GeoM.Translate(ox, oy)
		a := float32(alpha * 0.35)
		op.ColorScale.Scale(r*a, g*a, bl*a, a)
		op.Blend = ebiten.BlendLighter
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, op)
	}
	ghost(-dx, -dy, 1, 0, 0)
	ghost(dx, dy, 0, 0, 1)
}

func (s *Intro) paintPetals(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	b := s.petal.Bounds()
	tint := display.RGB(0xFFEEEE)
	for _, pt := range s.petals.Particles {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(pt.Scale, pt.Scale)
		op.GeoM.Rotate(pt.Rotation)
		op.GeoM.Translate(pt.X, pt.Y)
		op.GeoM.Concat(geo)
		a := float32(pt.Alpha * alpha)
		op.ColorScale.Scale(float32(tint.R)*a, float32(tint.G)*a, float32(tint.B)*a, a)
		dst.DrawImage(s.petal, op)
	}
}

// seedPetal scatters petals over the screen initially and feeds new ones in
// from the left edge afterwards.
func seedPetal(rng *rand.Rand, b animator.Bounds, initial bool) animator.Particle {
	w := b.MaxX - b.MinX - 2*edgeMargin
	h := b.MaxY - b.MinY - 2*edgeMargin
	p := animator.Particle{
		Scale:    0.5 + rng.Float64(),
		Rotation: rng.Float64() * math.Pi * 2,
		Alpha:    0.6 + rng.Float64()*0.4,
		VX:       (1 + rng.Float64()*2) * 0.5 * 60,
		VY:       (rng.Float64() - 0.5) * 0.5 * 60,
		Spin:     (rng.Float64() - 0.5) * 0.05 * 60,
		Y:        rng.Float64() * h,
	}
	if initial {
		p.X = rng.Float64() * w
	} else {
		p.X = b.MinX
	}
	return p
}
