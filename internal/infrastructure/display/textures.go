package display

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Procedural textures for scenes that draw soft shapes instead of loading
// files.

// NewDisc returns a filled white circle of radius r with a feathered edge.
func NewDisc(r int) *ebiten.Image {
	return newFromFunc(2*r, 2*r, func(x, y int) color.RGBA {
		dx := float64(x) + 0.5 - float64(r)
		dy := float64(y) + 0.5 - float64(r)
		d := math.Hypot(dx, dy)
		a := clamp01(float64(r) - d)
		return white(a)
	})
}

// NewEllipse returns a filled white ellipse with radii rx, ry.
func NewEllipse(rx, ry int) *ebiten.Image {
	return newFromFunc(2*rx, 2*ry, func(x, y int) color.RGBA {
		nx := (float64(x) + 0.5 - float64(rx)) / float64(rx)
		ny := (float64(y) + 0.5 - float64(ry)) / float64(ry)
		if nx*nx+ny*ny > 1 {
			return color.RGBA{}
		}
		return white(1)
	})
}

// NewVerticalGradient fades from top to bottom over an h-tall strip.
func NewVerticalGradient(w, h int, top, bottom Color) *ebiten.Image {
	return newFromFunc(w, h, func(_, y int) color.RGBA {
		t := float64(y) / math.Max(1, float64(h-1))
		return premultiply(lerpColor(top, bottom, t))
	})
}

// NewHorizontalGradient fades from left to right over a w-wide strip.
func NewHorizontalGradient(w, h int, left, right Color) *ebiten.Image {
	return newFromFunc(w, h, func(x, _ int) color.RGBA {
		t := float64(x) / math.Max(1, float64(w-1))
		return premultiply(lerpColor(left, right, t))
	})
}

// NewBeam returns a trapezoidal light shaft that fades towards its base.
func NewBeam(w, h int) *ebiten.Image {
	return newFromFunc(w, h, func(x, y int) color.RGBA {
		t := float64(y) / math.Max(1, float64(h-1))
		half := (0.3 + 0.2*t) * float64(w)
		if math.Abs(float64(x)+0.5-float64(w)/2) > half {
			return color.RGBA{}
		}
		return white(0.8 * (1 - t))
	})
}

// NewCloudStrip paints soft puffs whose opacity vanishes at both horizontal
// ends, so the strip tiles without a seam.
func NewCloudStrip(w, h int, puffs []Puff) *ebiten.Image {
	return newFromFunc(w, h, func(x, y int) color.RGBA {
		var a float64
		for _, p := range puffs {
			d := math.Hypot(float64(x)-p.X, float64(y)-p.Y)
			if d >= p.R {
				continue
			}
			fade := math.Sin(p.X / float64(w) * math.Pi)
			a += 0.05 * fade * (1 - d/p.R)
		}
		return white(clamp01(a))
	})
}

// Puff is one soft circle of a cloud strip.
type Puff struct {
	X, Y, R float64
}

func newFromFunc(w, h int, fn func(x, y int) color.RGBA) *ebiten.Image {
	w = max(w, 1)
	h = max(h, 1)
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rgba.SetRGBA(x, y, fn(x, y))
		}
	}
	return ebiten.NewImageFromImage(rgba)
}

func white(a float64) color.RGBA {
	v := uint8(255 * clamp01(a))
	return color.RGBA{v, v, v, v}
}

func premultiply(c Color) color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(255 * clamp01(c.R) * a),
		G: uint8(255 * clamp01(c.G) * a),
		B: uint8(255 * clamp01(c.B) * a),
		A: uint8(255 * a),
	}
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
