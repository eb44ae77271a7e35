// Package game provides the ebiten loop that feeds input to the narrative and
// draws its stage.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/younwookim/descent/internal/application/narrative"
	"github.com/younwookim/descent/internal/application/replay"
	"github.com/younwookim/descent/internal/application/system"
	"github.com/younwookim/descent/internal/infrastructure/display"
	"github.com/younwookim/descent/internal/infrastructure/input"
)

var (
	colorBG  = display.RGB(0x000000)
	colorBar = display.RGB(0x000000)
)

// InputSource yields one frame of raw input. It reports false once it has
// nothing more to give.
type InputSource interface {
	GetInput() (system.InputState, bool)
}

// LiveInput reads the real pointer through ebiten.
type LiveInput struct {
	sys *system.InputSystem
}

// NewLiveInput creates a live input source.
func NewLiveInput() *LiveInput {
	return &LiveInput{sys: system.NewInputSystem()}
}

// GetInput implements InputSource.
func (l *LiveInput) GetInput() (system.InputState, bool) {
	return l.sys.GetInput(), true
}

// Options wires a Game. Recorder may be nil.
type Options struct {
	Narrative *narrative.Orchestrator
	Hub       *input.Hub
	Stage     *display.Node
	Overlay   *Overlay
	Source    InputSource
	Recorder  *replay.Recorder
	ScreenW   int
	ScreenH   int
	TPS       int
}

// Game implements ebiten.Game and drives the narrative one frame per tick.
type Game struct {
	narrative *narrative.Orchestrator
	hub       *input.Hub
	stage     *display.Node
	overlay   *Overlay
	source    InputSource
	events    *system.InputSystem
	recorder  *replay.Recorder
	screenW   int
	screenH   int
	dt        float64
}

// New creates a new Game.
func New(opts Options) *Game {
	tps := opts.TPS
	if tps <= 0 {
		tps = 60 // Default to 60 FPS
	}
	return &Game{
		narrative: opts.Narrative,
		hub:       opts.Hub,
		stage:     opts.Stage,
		overlay:   opts.Overlay,
		source:    opts.Source,
		events:    system.NewInputSystem(),
		recorder:  opts.Recorder,
		screenW:   opts.ScreenW,
		screenH:   opts.ScreenH,
		dt:        1.0 / float64(tps),
	}
}

// Update publishes this frame's input and advances the narrative.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	in, ok := g.source.GetInput()
	if !ok {
		log.Info().Msg("input exhausted")
		return ebiten.Termination
	}
	if g.recorder != nil {
		g.recorder.RecordFrame(in)
	}

	for _, ev := range g.events.Events(in) {
		if ev.Kind == input.PointerDown && g.overlay != nil && g.overlay.Accepting() {
			g.narrative.Enter()
		}
		g.hub.Dispatch(ev)
	}

	g.narrative.Update(g.dt)
	return nil
}

// Draw renders the stage, the letterbox bars and the overlay.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG.RGBA(1))
	g.stage.Draw(screen)

	if h := g.narrative.BarHeight(); h > 0 {
		w, sh := float64(g.screenW), float64(g.screenH)
		display.FillRect(screen, ebiten.GeoM{}, 0, 0, w, h, colorBar, 1)
		display.FillRect(screen, ebiten.GeoM{}, 0, sh-h, w, h, colorBar, 1)
	}

	if g.overlay != nil {
		g.overlay.Node().Draw(screen)
	}
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}
