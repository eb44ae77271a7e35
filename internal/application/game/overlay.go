package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/younwookim/descent/internal/application/assets"
	"github.com/younwookim/descent/internal/infrastructure/display"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

var (
	colorOverlay = display.RGB(0x000000)
	colorButton  = display.RGB(0xffffff)
)

// Overlay is the entry screen. It shows the asset status on its button and
// fades away once the narrative has started.
type Overlay struct {
	root   *display.Node
	label  *display.Node
	tweens *tween.Runner
	fade   float64
	status assets.Status

	dismissed bool
}

// NewOverlay builds the entry screen for a w x h canvas.
func NewOverlay(w, h float64, tweens *tween.Runner, fade float64) *Overlay {
	o := &Overlay{
		root:   display.NewContainer("overlay"),
		tweens: tweens,
		fade:   fade,
	}
	o.root.ZIndex = 1000

	o.root.AddChild(display.NewPainter("backdrop", func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		display.FillRect(dst, geo, 0, 0, w, h, colorOverlay, alpha)
	}))
	o.root.AddChild(display.NewPainter("button", func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
		display.StrokeRect(dst, geo, w/2-110, h/2-30, 220, 60, 2, colorButton, alpha)
	}))

	face, err := display.Face(20)
	if err != nil {
		log.Warn().Err(err).Msg("overlay font unavailable")
	}
	o.label = display.NewText("label", assets.StatusLoading.String(), face)
	o.label.X, o.label.Y = w/2, h/2
	o.label.AnchorX, o.label.AnchorY = 0.5, 0.5
	o.root.AddChild(o.label)
	return o
}

// Node returns the overlay's display tree.
func (o *Overlay) Node() *display.Node {
	return o.root
}

// SetStatus implements assets.Indicator.
func (o *Overlay) SetStatus(s assets.Status) {
	o.status = s
	o.label.Text = s.String()
}

// Status returns the label currently shown.
func (o *Overlay) Status() assets.Status {
	return o.status
}

// Accepting reports whether a press on the overlay counts as entry.
func (o *Overlay) Accepting() bool {
	return !o.dismissed && o.status == assets.StatusReady
}

// Dismiss fades the overlay out and hides it.
func (o *Overlay) Dismiss() {
	if o.dismissed {
		return
	}
	o.dismissed = true
	tw := tween.To(o.fade, nil, tween.Prop(&o.root.Alpha, 0))
	tw.OnComplete = func() { o.root.Visible = false }
	o.tweens.Add(tw)
}

// Dismissed reports whether Dismiss was called.
func (o *Overlay) Dismissed() bool {
	return o.dismissed
}
