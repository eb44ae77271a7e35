// Package system turns raw ebiten input into pointer events.
package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/descent/internal/infrastructure/input"
)

// wheelScale converts ebiten wheel ticks to pixel deltas. Scrolling down is
// positive.
const wheelScale = -100

// InputState holds one frame of raw pointer input in screen coordinates.
type InputState struct {
	MouseX   int
	MouseY   int
	Pressed  bool
	Released bool
	WheelY   float64
}

// InputSystem handles pointer input
type InputSystem struct {
	lastX, lastY int
	seen         bool
	touch        ebiten.TouchID
	touching     bool
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// GetInput reads the current input state. A touch counts as the primary
// button while it lasts.
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	in := InputState{
		MouseX:   mx,
		MouseY:   my,
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		WheelY:   wy,
	}

	if !s.touching {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			s.touch, s.touching = ids[0], true
			in.Pressed = true
		}
	}
	if s.touching {
		in.MouseX, in.MouseY = ebiten.TouchPosition(s.touch)
		if inpututil.IsTouchJustReleased(s.touch) {
			in.MouseX, in.MouseY = inpututil.TouchPositionInPreviousTick(s.touch)
			in.Released = true
			s.touching = false
		}
	}
	return in
}

// Events translates one frame of input into hub events, in the order move,
// press, release, wheel.
func (s *InputSystem) Events(in InputState) []input.Event {
	var out []input.Event
	x, y := float64(in.MouseX), float64(in.MouseY)

	if !s.seen || in.MouseX != s.lastX || in.MouseY != s.lastY {
		out = append(out, input.Event{Kind: input.PointerMove, X: x, Y: y})
		s.lastX, s.lastY, s.seen = in.MouseX, in.MouseY, true
	}
	if in.Pressed {
		out = append(out, input.Event{Kind: input.PointerDown, X: x, Y: y})
	}
	if in.Released {
		out = append(out, input.Event{Kind: input.PointerUp, X: x, Y: y})
	}
	if in.WheelY != 0 {
		out = append(out, input.Event{Kind: input.Wheel, X: x, Y: y, DeltaY: in.WheelY * wheelScale})
	}
	return out
}

// Publish dispatches the events of in to hub.
func (s *InputSystem) Publish(hub *input.Hub, in InputState) {
	for _, ev := range s.Events(in) {
		hub.Dispatch(ev)
	}
}
