package intro

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/descent/internal/infrastructure/display"
)

const (
	fogWidth  = 1024
	fogHeight = 256
	fogPuffs  = 30
	fogScale  = 1.5
)

func cloudStrip(rng *rand.Rand) *ebiten.Image {
	puffs := make([]display.Puff, fogPuffs)
	for i := range puffs {
		puffs[i] = display.Puff{
			X: rng.Float64() * fogWidth,
			Y: rng.Float64() * fogHeight,
			R: 30 + rng.Float64()*50,
		}
	}
	return display.NewCloudStrip(fogWidth, fogHeight, puffs)
}

// fogLayer returns a painter that tiles the shared cloud strip across the
// screen. The node's X is the scroll offset.
func (s *Intro) fogLayer(name string) *display.Node {
	w, h := s.Env.Screen.X, s.Env.Screen.Y
	tile := float64(fogWidth) * fogScale
	return display.NewPainter(name, func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		// geo carries the scroll, so cover the screen width plus one tile
		for y := 0.0; y < h; y += float64(fogHeight) * fogScale {
			for x := 0.0; x < w+tile; x += tile {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Scale(fogScale, fogScale)
				op.GeoM.Translate(x, y)
				op.GeoM.Concat(geo)
				op.ColorScale.ScaleAlpha(float32(alpha))
				dst.DrawImage(s.fogTex, op)
			}
		}
	})
}
