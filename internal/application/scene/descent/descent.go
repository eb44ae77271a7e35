// Package descent is the middle beat: the subject falls past a technical
// readout until the viewer holds the pointer on it long enough to lock on.
package descent

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
	colorBackground = display.RGB(0xE0E0E0)
	colorCliff      = display.RGB(0x546E7A)
	colorAccent     = display.RGB(0x3498DB)
	colorSuccess    = display.RGB(0x2ECC71)
	colorText       = display.RGB(0x546E7A)
	colorWarning    = display.RGB(0xFF5555)
)

const (
	subjectDrop = 50  // resting offset below the screen center
	wrapMargin  = 300 // the falling subject wraps once this far off screen
	boxSize     = 180
)

// Hint texts under the target box.
const (
	HintHold     = "[ HOLD LMB ]"
	HintSyncing  = ">>> SYNCING <<<"
	HintLost     = "! TARGET LOST !"
	HintContinue = "> SCROLL TO CONTINUE <"
)

// Descent is the second scene.
type Descent struct {
	scene.Base

	machine *gesture.Machine
	rescued bool
	hover   bool

	background *display.Node
	decor      *display.Node
	cliff      *display.Node
	shadow     *display.Node
	ui         *display.Node
	subject    *display.Node
	sprite     *display.Node
	targetBox  *display.Node
	recText    *display.Node
	hintText   *display.Node
	overlay    *display.Node
	mouseText  *display.Node
	glow       *display.Node
	labels     []label
	ruler      []rulerMark
	placers    []func()

	ripples []ripple
	motes   *animator.Field
	mote    *ebiten.Image
}

type label struct {
	node             *display.Node
	text             *display.Node
	offsetX, offsetY float64
}

type rulerMark struct {
	node     *display.Node
	initialY float64
}

// New creates the scene. Nothing is built until Init.
func New(env *scene.Env) *Descent {
	cfg := env.Config.Scenes.Descent
	return &Descent{
		Base: scene.NewBase(env, state.OrdinalDescent, scene.CapIntro|scene.CapGesture, map[string]float64{
			"fallSpeed":  cfg.FallSpeed,
			"charScale":  cfg.SubjectScale,
			"barHeight":  env.Config.Display.BarHeight,
			"cliffEnter": -100,
			"uiEnter":    100,
			"charEnter":  -200,
			"b1X":        -144,
			"b1Y":        477,
			"b1Rot":      -0.2,
			"b1Alpha":    0.05,
			"b2X":        -190,
			"b2Y":        920,
			"b2Rot":      -0.15,
			"b2Alpha":    0.1,
		}),
	}
}

// Init implements scene.Scene.
func (s *Descent) Init() error {
	if !s.BeginInit() {
		return nil
	}
	assets := s.Env.Config.Assets
	tex, err := s.Env.Texture(assets.SubjectAlt, assets.Subject)
	if err != nil {
		s.AbortInit()
		return fmt.Errorf("descent subject: %w", err)
	}

	hold := s.Env.Config.Gestures.Hold
	s.machine = gesture.New(gesture.Config{
		Mode:      gesture.ModeHold,
		RiseRate:  hold.RiseRate,
		DecayRate: hold.DecayRate,
		Threshold: hold.Threshold,
	}, s.rescue)

	if err := s.build(tex); err != nil {
		s.AbortInit()
		return fmt.Errorf("descent: %w", err)
	}
	s.wire()
	s.Listen(s.handle)
	return nil
}

func (s *Descent) build(tex *ebiten.Image) error {
	env := s.Env
	w, h := env.Screen.X, env.Screen.Y
	c := env.Center()
	p := s.Params()

	small, err := faces(10, 12, 13)
	if err != nil {
		return err
	}

	s.background = display.NewPainter("background", func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		display.FillRect(dst, geo, 0, 0, w, h, colorBackground, alpha)
	})
	s.Root().AddChild(s.background)

	s.decor = display.NewContainer("decor")
	s.decor.Alpha = 0
	s.decor.AddChild(display.NewPainter("grid", gridPainter(w, h)))
	s.ripples = newRipples(env.Config.Scenes.Descent.Ripples, w, h, env.Rand)
	s.decor.AddChild(display.NewPainter("ripples", s.paintRipples))
	s.mote = display.NewDisc(3)
	s.motes = animator.NewField(env.Config.Scenes.Descent.Motes,
		animator.Bounds{MinX: 0, MinY: 0, MaxX: w, MaxY: h}, animator.Wrap, env.Rand, seedMote)
	s.Animator().Drift(s.motes)
	s.decor.AddChild(display.NewPainter("motes", s.paintMotes))
	s.Root().AddChild(s.decor)

	s.cliff = display.NewPainter("cliff", cliffPainter(w, h))
	s.cliff.Alpha = 0
	s.Root().AddChild(s.cliff)

	s.shadow = display.NewContainer("shadow")
	s.shadow.Alpha = 0
	s.shadow.AddChild(s.block("block1", "b1", -w, -h, w*3, h))
	s.shadow.AddChild(s.block("block2", "b2", -w, 0, w*3, h))
	s.Root().AddChild(s.shadow)

	s.ui = display.NewContainer("ui")
	s.ui.X, s.ui.Y = c.X, c.Y
	s.ui.Alpha = 0
	s.Root().AddChild(s.ui)
	s.buildRuler(w, small[12])
	s.buildFormulas(small[13], small[12])

	s.subject = display.NewContainer("subject")
	s.subject.X, s.subject.Y = c.X, c.Y+subjectDrop
	s.subject.Alpha = 0
	s.Root().AddChild(s.subject)
	p.Set("charY", s.subject.Y)

	s.sprite = display.NewSprite("sprite", tex)
	s.sprite.SetScale(p.Get("charScale"))
	s.sprite.Rotation = 0.1
	s.subject.AddChild(s.sprite)

	s.targetBox = display.NewPainter("targetBox", s.paintTargetBox)
	s.targetBox.Tint = colorAccent
	s.subject.AddChild(s.targetBox)
	s.recText = display.NewText("rec", "REC [00:00:00]", small[10])
	s.recText.Y = -boxSize/2 - 15
	s.recText.Tint = colorAccent
	s.targetBox.AddChild(s.recText)
	s.hintText = display.NewText("hint", "[ HOLD TRACK ]", small[12])
	s.hintText.Y = boxSize/2 + 20
	s.hintText.Tint = colorAccent
	s.targetBox.AddChild(s.hintText)

	s.overlay = display.NewContainer("overlay")
	s.overlay.X, s.overlay.Y = c.X, c.Y
	s.overlay.Alpha = 0
	s.Root().AddChild(s.overlay)
	s.overlay.AddChild(display.NewPainter("links", s.paintLinks))
	s.overlay.AddChild(display.NewPainter("lock", s.paintLock))
	for _, l := range []struct {
		name string
		x, y float64
	}{
		{"ALTITUDE", -200, -150},
		{"VELOCITY_Y", -250, 150},
		{"G-FORCE", 220, -120},
		{"TARGET_LOCK", 210, 150},
	} {
		s.labels = append(s.labels, s.newLabel(l.name, l.x, l.y, small[12]))
	}
	s.mouseText = display.NewText("mouse", "[X:0000 Y:0000]", small[10])
	s.mouseText.AnchorX, s.mouseText.AnchorY = 0, 0
	s.mouseText.Tint = colorAccent
	s.overlay.AddChild(s.mouseText)

	s.glow = display.NewSprite("glow", display.NewHorizontalGradient(200, int(h),
		display.Color{R: 52.0 / 255, G: 152.0 / 255, B: 219.0 / 255},
		display.Color{R: 52.0 / 255, G: 152.0 / 255, B: 219.0 / 255, A: 0.4}))
	s.glow.AnchorX, s.glow.AnchorY = 1, 0
	s.glow.X = w
	s.glow.Blend = ebiten.BlendLighter
	s.glow.Alpha = 0
	glowLayer := display.NewContainer("glowLayer")
	glowLayer.AddChild(s.glow)
	s.Root().AddChild(glowLayer)
	return nil
}

// wire registers the pointer parallax of every layer. Offsets snap to the
// pointer each frame.
func (s *Descent) wire() {
	a := s.Animator()
	c := s.Env.Center()
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

	snap("shadowX", 0, 0.02, x)
	snap("shadowY", 0, 0.02, y)
	snap("cliffX", 0, 0.03, x)
	snap("uiX", c.X, 0.05, x)
	snap("uiY", c.Y, 0.05, y)
	snap("decorX", 0, 0.01, x)
	snap("decorY", 0, 0.01, y)
	snap("glowX", 0, 0.01, x)
	snap("overlayX", c.X, 0.1, x)
	snap("overlayY", c.Y, 0.1, y)
	snap("charX", c.X, 0.04, x)
}

// PlayIntro implements scene.Scene.
func (s *Descent) PlayIntro() {
	if !s.Active() {
		return
	}
	p := s.Params()
	s.Animate(tween.To(2.0, ease.Linear, tween.Prop(&s.decor.Alpha, 1), tween.Prop(&s.glow.Alpha, 1)))
	s.Animate(tween.To(1.5, ease.OutCubic, tween.Prop(&s.cliff.Alpha, 1), tween.Prop(p.Field("cliffEnter"), 0)).Delay(0.5))
	s.Animate(tween.To(1.5, ease.OutCubic, tween.Prop(&s.ui.Alpha, 1), tween.Prop(p.Field("uiEnter"), 0)).Delay(0.8))
	s.Animate(tween.To(2.0, ease.OutCubic, tween.Prop(&s.subject.Alpha, 1), tween.Prop(p.Field("charEnter"), 0)).Delay(1.3))
	s.Animate(tween.To(1.0, ease.Linear, tween.Prop(&s.overlay.Alpha, 1)).Delay(2.8))
	s.Animate(tween.To(2.0, ease.Linear, tween.Prop(&s.shadow.Alpha, 1)).Delay(2.3))
	s.blink(s.hintText, 0.3, 0.5)
}

func (s *Descent) blink(n *display.Node, to, period float64) {
	n.Alpha = 1
	s.Animate(tween.To(period, ease.Linear, tween.Prop(&n.Alpha, to)).Repeat(-1, true))
}

// Update implements scene.Scene.
func (s *Descent) Update(dt float64) {
	if !s.Active() {
		return
	}
	p := s.Params()
	pointer := s.Env.Pointer()

	s.Advance(dt)
	s.stepRipples(dt)

	s.shadow.X, s.shadow.Y = p.Get("shadowX"), p.Get("shadowY")
	s.cliff.X = p.Get("cliffX") + p.Get("cliffEnter")
	s.ui.X, s.ui.Y = p.Get("uiX")+p.Get("uiEnter"), p.Get("uiY")
	s.decor.X, s.decor.Y = p.Get("decorX"), p.Get("decorY")
	s.glow.Parent.X = p.Get("glowX")
	s.overlay.X, s.overlay.Y = p.Get("overlayX"), p.Get("overlayY")
	s.subject.X = p.Get("charX")
	for _, place := range s.placers {
		place()
	}

	if !s.rescued {
		y := p.Get("charY") + p.Get("fallSpeed")*dt
		if y > s.Env.Screen.Y+wrapMargin {
			y = -wrapMargin
		}
		p.Set("charY", y)
		s.subject.Y = y + p.Get("charEnter")

		s.hover = math.Hypot(pointer.X-s.subject.X, pointer.Y-s.subject.Y) < s.Env.Config.Gestures.Hold.Radius
		s.updateHint()

		syncing := s.machine.Armed() && s.hover
		s.machine.Update(dt, s.hover)
		if syncing && !s.rescued {
			s.targetBox.X = (s.Env.Rand.Float64() - 0.5) * 5
			s.targetBox.Y = (s.Env.Rand.Float64() - 0.5) * 5
		} else {
			s.targetBox.X, s.targetBox.Y = 0, 0
		}
	}
	p.Set("progress", s.machine.Progress())

	s.placeLabels()
	s.updateReadouts(pointer)
}

func (s *Descent) updateHint() {
	switch {
	case s.machine.Armed() && s.hover:
		s.hintText.Text, s.hintText.Tint = HintSyncing, display.ColorWhite
	case s.hover:
		s.hintText.Text, s.hintText.Tint = HintHold, colorAccent
	default:
		s.hintText.Text, s.hintText.Tint = HintLost, colorWarning
	}
}

func (s *Descent) updateReadouts(pointer animator.Vec2) {
	if s.rescued {
		s.recText.Text = "SAFE MODE"
	} else {
		s.recText.Text = "REC [" + clock(s.Animator().Time()) + "]"
	}
	s.mouseText.Text = fmt.Sprintf("[X:%04d Y:%04d]", int(pointer.X), int(pointer.Y))
	s.mouseText.X = pointer.X - s.overlay.X + 15
	s.mouseText.Y = pointer.Y - s.overlay.Y + 15

	for _, m := range s.ruler {
		if math.Abs(s.ui.Y+m.initialY-s.subject.Y) < 30 {
			m.node.SetScale(1.5)
			m.node.Tint = colorAccent
		} else {
			m.node.SetScale(1)
			m.node.Tint = colorText
		}
	}
}

// clock formats seconds as mm:ss:cc.
func clock(t float64) string {
	ms := int(t * 1000)
	return fmt.Sprintf("%02d:%02d:%02d", (ms/60000)%60, (ms/1000)%60, (ms%1000)/10)
}

func (s *Descent) handle(ev input.Event) {
	switch ev.Kind {
	case input.PointerDown:
		s.machine.PointerDown()
	case input.PointerUp:
		s.machine.PointerUp()
	}
}

// rescue runs once, inside the update that completes the hold.
func (s *Descent) rescue() {
	s.rescued = true
	log.Info().Stringer("scene", s.Ordinal()).Msg("target locked")

	for _, l := range s.labels {
		l.text.Tint = colorSuccess
	}
	s.targetBox.Tint = colorSuccess
	s.targetBox.X, s.targetBox.Y = 0, 0
	s.recText.Tint = colorSuccess

	p := s.Params()
	c := s.Env.Center()
	s.Animate(tween.To(1.0, ease.OutCubic, tween.Prop(p.Field("fallSpeed"), 0)))
	settle := tween.To(1.5, ease.OutElastic, tween.Prop(&s.subject.Y, c.Y+subjectDrop))
	settle.OnComplete = func() {
		s.hintText.Text = HintContinue
		s.hintText.Tint = display.Color{A: 1}
		s.blink(s.hintText, 0.5, 0.8)
	}
	s.Animate(settle)
	s.Animate(tween.To(1.0, ease.Linear, tween.Prop(&s.sprite.Rotation, 0)))
	root := s.Root()
	s.Animate(tween.To(0.1, ease.Linear, tween.Prop(&root.X, root.X+5), tween.Prop(&root.Y, root.Y+5)).Repeat(5, true))

	s.Animate(tween.After(s.Env.Config.Gestures.Hold.SettleDelay, func() {
		s.Fire(scene.TriggerGestureComplete)
	}))
}

// Machine exposes the hold gesture.
func (s *Descent) Machine() *gesture.Machine {
	return s.machine
}

// Rescued reports whether the hold completed.
func (s *Descent) Rescued() bool {
	return s.rescued
}

// Subject returns the falling subject container.
func (s *Descent) Subject() *display.Node {
	return s.subject
}

// Hint returns the current hint text.
func (s *Descent) Hint() string {
	return s.hintText.Text
}
