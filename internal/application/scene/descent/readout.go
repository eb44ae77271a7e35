package descent

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/descent/internal/domain/animator"
	"github.com/younwookim/descent/internal/infrastructure/display"
)

func faces(sizes ...float64) (map[float64]text.Face, error) {
	out := make(map[float64]text.Face, len(sizes))
	for _, size := range sizes {
		f, err := display.Face(size)
		if err != nil {
			return nil, fmt.Errorf("font %v: %w", size, err)
		}
		out[size] = f
	}
	return out, nil
}

// block is a large rotated shadow slab placed from the params with prefix.
func (s *Descent) block(name, prefix string, x, y, w, h float64) *display.Node {
	n := display.NewPainter(name, func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		display.FillRect(dst, geo, x, y, w, h, display.Color{A: 1}, alpha)
	})
	p := s.Params()
	place := func() {
		n.X, n.Y = p.Get(prefix+"X"), p.Get(prefix+"Y")
		n.Rotation = p.Get(prefix + "Rot")
		n.Alpha = p.Get(prefix + "Alpha")
	}
	place()
	s.placers = append(s.placers, place)
	return n
}

func (s *Descent) buildRuler(w float64, face text.Face) {
	const (
		cell = 60
		rows = 15
	)
	startY := -float64(rows*cell) / 2
	rulerX := w * 0.35

	s.ui.AddChild(display.NewPainter("ruler", func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		display.StrokeLine(dst, geo, rulerX, startY, rulerX, startY+rows*cell, 2, colorText, alpha*0.5)
		for j := 0; j <= rows; j++ {
			y := startY + float64(j*cell)
			display.StrokeLine(dst, geo, rulerX, y, rulerX+15, y, 2, colorText, alpha*0.8)
			if (rows-j)*100 == 1300 {
				display.FillRect(dst, geo, rulerX+90, y-5, 2, 10, colorAccent, alpha*0.8)
			}
			if j == rows {
				continue
			}
			for k := 1; k < 4; k++ {
				sub := y + float64(k*cell)/4
				display.StrokeLine(dst, geo, rulerX, sub, rulerX+8, sub, 1, colorText, alpha*0.3)
			}
		}
	}))

	for j := 0; j <= rows; j++ {
		y := startY + float64(j*cell)
		val := (rows - j) * 100
		mark := display.NewText(fmt.Sprintf("mark%d", val), fmt.Sprintf("%04d", val), face)
		mark.AnchorX = 0
		mark.X, mark.Y = rulerX+25, y
		mark.Tint = colorText
		s.ui.AddChild(mark)
		s.ruler = append(s.ruler, rulerMark{node: mark, initialY: y})

		var header string
		switch val {
		case 1300:
			header = "ABS_HEIGHT // METER"
		case 200:
			header = "LOW_HEIGHT // METER"
		}
		if header != "" {
			hn := display.NewText("header", header, face)
			hn.AnchorX = 0
			hn.X, hn.Y = rulerX+100, y
			hn.Tint = colorText
			s.ui.AddChild(hn)
		}
	}
}

var formulaLines = []string{
	"----------------",
	"v_0 = 0.00 m/s",
	"g   = 9.81 m/s^2",
	"----------------",
	"CALC_TRAJECTORY:",
	"  v = v0 + gt",
	"  h = v0t + 0.5gt^2",
	"  E = mgh + 0.5mv^2",
	"----------------",
	"STATUS: FREE_FALL",
	"WIND_RES: NULL",
	"TERMINAL_VEL: N/A",
}

func (s *Descent) buildFormulas(body, header text.Face) {
	panel := display.NewPainter("formulas", func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		display.FillRect(dst, geo, -10, -10, 180, 420, display.ColorWhite, alpha*0.4)
	})
	panel.X, panel.Y = 365, -340
	s.ui.AddChild(panel)

	title := display.NewText("kernel", "[ PHYSICS_KERNEL ]", header)
	title.AnchorX, title.AnchorY = 0, 0
	title.Tint = colorAccent
	panel.AddChild(title)

	for i, line := range formulaLines {
		n := display.NewText("formula", line, body)
		n.AnchorX, n.AnchorY = 0, 0
		n.X, n.Y = 5, float64(25+i*25)
		switch {
		case strings.Contains(line, "="):
			n.Tint = display.RGB(0x333333)
		case strings.Contains(line, ":"):
			n.Tint = colorAccent
		default:
			n.Tint = colorText
		}
		panel.AddChild(n)
	}
}

func (s *Descent) newLabel(name string, x, y float64, face text.Face) label {
	n := display.NewPainter(name, func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		display.FillRect(dst, geo, 0, -10, 100, 20, display.Color{A: 1}, alpha*0.6)
	})
	t := display.NewText(name+"Text", name, face)
	t.AnchorX, t.AnchorY = 0, 0
	t.X, t.Y = 5, -7
	n.AddChild(t)
	s.overlay.AddChild(n)
	return label{node: n, text: t, offsetX: x, offsetY: y}
}

// target returns the subject position in overlay space.
func (s *Descent) target() (float64, float64) {
	return s.subject.X - s.overlay.X, s.subject.Y - s.overlay.Y
}

func (s *Descent) placeLabels() {
	tx, ty := s.target()
	for _, l := range s.labels {
		l.node.X, l.node.Y = tx+l.offsetX, ty+l.offsetY
	}
}

// paintLinks joins every label to the nearest corner of the target box and
// highlighted ruler marks to the box edge.
func (s *Descent) paintLinks(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	tx, ty := s.target()
	const half = boxSize / 2
	corners := [4][2]float64{{tx - half, ty - half}, {tx + half, ty - half}, {tx + half, ty + half}, {tx - half, ty + half}}

	for _, l := range s.labels {
		sx := l.node.X
		if l.offsetX <= 0 {
			sx += 100
		}
		sy := l.node.Y + 10
		best, bestD := corners[0], math.Inf(1)
		for _, c := range corners {
			if d := (sx-c[0])*(sx-c[0]) + (sy-c[1])*(sy-c[1]); d < bestD {
				best, bestD = c, d
			}
		}
		display.StrokeLine(dst, geo, sx, sy, best[0], best[1], 1, colorAccent, alpha*0.6)
		display.StrokeCircle(dst, geo, best[0], best[1], 2, 2, colorAccent, alpha)
	}

	for _, m := range s.ruler {
		if m.node.ScaleX <= 1 {
			continue
		}
		sx := s.ui.X + m.node.X - s.overlay.X
		sy := s.ui.Y + m.initialY - s.overlay.Y
		display.StrokeLine(dst, geo, sx, sy, tx+half, ty, 1, colorAccent, alpha*0.5)
	}
}

// paintLock draws the lock ring around the pointer while holding.
func (s *Descent) paintLock(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	if s.machine == nil || (!s.machine.Armed() && !s.rescued) {
		return
	}
	progress := s.machine.Progress()
	c := colorAccent
	if progress >= 1 {
		c = colorSuccess
	}
	pointer := s.Env.Pointer()
	x, y := pointer.X-s.overlay.X, pointer.Y-s.overlay.Y
	const radius, cross = 40, 10

	display.StrokeCircle(dst, geo, x, y, radius, 2, c, alpha*0.3)
	if progress > 0 {
		display.StrokeArc(dst, geo, x, y, radius, -math.Pi/2, -math.Pi/2+2*math.Pi*progress, 4, c, alpha)
	}
	display.StrokeLine(dst, geo, x-cross, y, x+cross, y, 1, c, alpha*0.8)
	display.StrokeLine(dst, geo, x, y-cross, x, y+cross, 1, c, alpha*0.8)
}

func (s *Descent) paintTargetBox(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	const (
		half   = boxSize / 2
		corner = 20
	)
	c := s.targetBox.Tint
	display.StrokeRect(dst, geo, -half, -half, boxSize, boxSize, 1, c, alpha*0.3)
	brackets := [][6]float64{
		{-half, -half + corner, -half, -half, -half + corner, -half},
		{half - corner, -half, half, -half, half, -half + corner},
		{half, half - corner, half, half, half - corner, half},
		{-half + corner, half, -half, half, -half, half - corner},
	}
	for _, b := range brackets {
		display.StrokeLine(dst, geo, b[0], b[1], b[2], b[3], 2, c, alpha*0.8)
		display.StrokeLine(dst, geo, b[2], b[3], b[4], b[5], 2, c, alpha*0.8)
	}
	display.StrokeLine(dst, geo, 0, -10, 0, 10, 1, c, alpha*0.5)
	display.StrokeLine(dst, geo, -10, 0, 10, 0, 1, c, alpha*0.5)
}

func gridPainter(w, h float64) display.PaintFunc {
	const step = 100
	return func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		for x := 0.0; x < w; x += step {
			display.StrokeLine(dst, geo, x, 0, x, h, 1, colorText, alpha*0.1)
		}
		for y := 0.0; y < h; y += step {
			display.StrokeLine(dst, geo, 0, y, w, y, 1, colorText, alpha*0.1)
		}
		const cross = 6
		for x := 0; x < int(w); x += step {
			for y := 0; y < int(h); y += step {
				if (x+y)%(step*2) != 0 {
					continue
				}
				fx, fy := float64(x), float64(y)
				display.StrokeLine(dst, geo, fx-cross, fy, fx+cross, fy, 2, colorText, alpha*0.2)
				display.StrokeLine(dst, geo, fx, fy-cross, fx, fy+cross, 2, colorText, alpha*0.2)
			}
		}
	}
}

// cliffPainter draws the wireframe cliff face along the left edge.
func cliffPainter(w, h float64) display.PaintFunc {
	const segments = 15
	maxWidth := w * 0.25
	points := [][2]float64{{-100, 0}, {maxWidth, 0}}
	for i := 1; i <= segments; i++ {
		trend := float64(i) / segments * maxWidth * 0.5
		noise := (math.Sin(float64(i)*0.8) + math.Cos(float64(i)*1.5)) * 15
		points = append(points, [2]float64{maxWidth - trend + noise, float64(i) * h / segments})
	}
	points = append(points, [2]float64{-100, h})

	return func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		for i := 1; i < len(points); i++ {
			a, b := points[i-1], points[i]
			display.StrokeLine(dst, geo, a[0], a[1], b[0], b[1], 2, colorCliff, alpha*0.8)
		}
		for i := 2; i < len(points)-1; i += 2 {
			display.StrokeLine(dst, geo, -100, points[i][1], points[i][0], points[i][1], 1, colorCliff, alpha*0.3)
		}
		px, py := maxWidth*0.2, 0.0
		for _, pt := range points[2:] {
			display.StrokeLine(dst, geo, px, py, pt[0]*0.5, pt[1], 1, colorCliff, alpha*0.3)
			px, py = pt[0]*0.5, pt[1]
		}
	}
}

// ripple is one slowly expanding ring. It is re-seeded at a new position
// once its progress reaches 1.
type ripple struct {
	x, y     float64
	progress float64
	radius   float64
}

// rippleRate is ring progress per second.
const rippleRate = 0.12

func newRipples(n int, w, h float64, rng *rand.Rand) []ripple {
	out := make([]ripple, n)
	for i := range out {
		out[i] = ripple{
			x:        w*0.2 + rng.Float64()*w*0.6,
			y:        h*0.2 + rng.Float64()*h*0.6,
			progress: float64(i) * 0.33,
			radius:   150 + rng.Float64()*50,
		}
	}
	return out
}

func (s *Descent) stepRipples(dt float64) {
	w, h := s.Env.Screen.X, s.Env.Screen.Y
	rng := s.Env.Rand
	for i := range s.ripples {
		r := &s.ripples[i]
		r.progress += rippleRate * dt
		if r.progress >= 1 {
			r.progress = 0
			r.x = w*0.2 + rng.Float64()*w*0.6
			r.y = h*0.2 + rng.Float64()*h*0.6
		}
	}
}

func (s *Descent) paintRipples(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	for _, r := range s.ripples {
		display.StrokeCircle(dst, geo, r.x, r.y, r.radius+r.progress*30, 1, colorText, alpha*(1-r.progress)*0.1)
	}
}

// seedMote scatters slow dust that rises against the fall.
func seedMote(rng *rand.Rand, b animator.Bounds, _ bool) animator.Particle {
	return animator.Particle{
		X:     b.MinX + rng.Float64()*(b.MaxX-b.MinX),
		Y:     b.MinY + rng.Float64()*(b.MaxY-b.MinY),
		VX:    (rng.Float64() - 0.5) * 10,
		VY:    -20 - rng.Float64()*20,
		Scale: 0.5 + rng.Float64(),
		Alpha: 0.1 + rng.Float64()*0.2,
	}
}

func (s *Descent) paintMotes(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	b := s.mote.Bounds()
	for _, m := range s.motes.Particles {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(m.Scale, m.Scale)
		op.GeoM.Translate(m.X, m.Y)
		op.GeoM.Concat(geo)
		a := float32(m.Alpha * alpha)
		op.ColorScale.Scale(float32(colorText.R)*a, float32(colorText.G)*a, float32(colorText.B)*a, a)
		dst.DrawImage(s.mote, op)
	}
}
