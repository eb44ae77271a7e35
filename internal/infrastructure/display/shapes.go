package display

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Helpers for PaintFunc implementations. Coordinates are node-local and are
// mapped through geo; stroke widths are in destination pixels.

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// RGBA converts c scaled by alpha into a premultiplied color.
func (c Color) RGBA(alpha float64) color.RGBA {
	return premultiply(Color{R: c.R, G: c.G, B: c.B, A: c.A * alpha})
}

// StrokeLine draws a segment.
func StrokeLine(dst *ebiten.Image, geo ebiten.GeoM, x0, y0, x1, y1, width float64, c Color, alpha float64) {
	ax, ay := geo.Apply(x0, y0)
	bx, by := geo.Apply(x1, y1)
	vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), float32(width), c.RGBA(alpha), true)
}

// StrokeArc draws the arc of radius r around (cx, cy) from angle start to
// end, in radians, as a polyline.
func StrokeArc(dst *ebiten.Image, geo ebiten.GeoM, cx, cy, r, start, end, width float64, c Color, alpha float64) {
	const step = math.Pi / 32
	steps := int(math.Ceil(math.Abs(end-start) / step))
	if steps == 0 {
		return
	}
	px, py := cx+r*math.Cos(start), cy+r*math.Sin(start)
	for i := 1; i <= steps; i++ {
		a := start + (end-start)*float64(i)/float64(steps)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		StrokeLine(dst, geo, px, py, x, y, width, c, alpha)
		px, py = x, y
	}
}

// StrokeCircle draws a full circle outline.
func StrokeCircle(dst *ebiten.Image, geo ebiten.GeoM, cx, cy, r, width float64, c Color, alpha float64) {
	StrokeArc(dst, geo, cx, cy, r, 0, 2*math.Pi, width, c, alpha)
}

// StrokeRect draws the outline of an axis-aligned (in local space) rectangle.
func StrokeRect(dst *ebiten.Image, geo ebiten.GeoM, x, y, w, h, width float64, c Color, alpha float64) {
	StrokeLine(dst, geo, x, y, x+w, y, width, c, alpha)
	StrokeLine(dst, geo, x+w, y, x+w, y+h, width, c, alpha)
	StrokeLine(dst, geo, x+w, y+h, x, y+h, width, c, alpha)
	StrokeLine(dst, geo, x, y+h, x, y, width, c, alpha)
}

// FillRect fills a rectangle. It stays correct under rotation because the
// corners are mapped through geo individually.
func FillRect(dst *ebiten.Image, geo ebiten.GeoM, x, y, w, h float64, c Color, alpha float64) {
	rgba := c.RGBA(alpha)
	r := float32(rgba.R) / 255
	g := float32(rgba.G) / 255
	b := float32(rgba.B) / 255
	a := float32(rgba.A) / 255

	corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	vs := make([]ebiten.Vertex, 4)
	for i, p := range corners {
		dx, dy := geo.Apply(p[0], p[1])
		vs[i] = ebiten.Vertex{
			DstX: float32(dx), DstY: float32(dy),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	dst.DrawTriangles(vs, []uint16{0, 1, 2, 0, 2, 3}, whiteSubImage, &ebiten.DrawTrianglesOptions{})
}
