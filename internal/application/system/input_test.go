package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/descent/internal/infrastructure/input"
)

func kinds(events []input.Event) []input.EventKind {
	out := make([]input.EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestNewInputSystem(t *testing.T) {
	sys := NewInputSystem()

	require.NotNil(t, sys)
	assert.False(t, sys.seen)
}

func TestInputSystem_Events(t *testing.T) {
	tests := []struct {
		name string
		prev *InputState
		in   InputState
		want []input.EventKind
	}{
		{
			name: "first frame reports the position",
			in:   InputState{MouseX: 10, MouseY: 20},
			want: []input.EventKind{input.PointerMove},
		},
		{
			name: "still pointer is silent",
			prev: &InputState{MouseX: 10, MouseY: 20},
			in:   InputState{MouseX: 10, MouseY: 20},
			want: nil,
		},
		{
			name: "press without movement",
			prev: &InputState{MouseX: 10, MouseY: 20},
			in:   InputState{MouseX: 10, MouseY: 20, Pressed: true},
			want: []input.EventKind{input.PointerDown},
		},
		{
			name: "click within one frame keeps order",
			prev: &InputState{MouseX: 0, MouseY: 0},
			in:   InputState{MouseX: 5, MouseY: 5, Pressed: true, Released: true},
			want: []input.EventKind{input.PointerMove, input.PointerDown, input.PointerUp},
		},
		{
			name: "wheel",
			prev: &InputState{MouseX: 10, MouseY: 20},
			in:   InputState{MouseX: 10, MouseY: 20, WheelY: -1},
			want: []input.EventKind{input.Wheel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewInputSystem()
			if tt.prev != nil {
				sys.Events(*tt.prev)
			}
			got := sys.Events(tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, kinds(got))
		})
	}
}

func TestInputSystem_WheelDownIsPositive(t *testing.T) {
	sys := NewInputSystem()
	events := sys.Events(InputState{WheelY: -1})

	require.Len(t, events, 2)
	assert.Equal(t, input.Wheel, events[1].Kind)
	assert.Equal(t, 100.0, events[1].DeltaY)
}

func TestInputSystem_Publish(t *testing.T) {
	sys := NewInputSystem()
	hub := input.NewHub(0, 0)
	var got []input.Event
	hub.Listen(func(ev input.Event) { got = append(got, ev) })

	sys.Publish(hub, InputState{MouseX: 30, MouseY: 40, Pressed: true})

	require.Len(t, got, 2)
	assert.Equal(t, input.Sample{X: 30, Y: 40, Down: true}, hub.Latest())

	sys.Publish(hub, InputState{MouseX: 30, MouseY: 40, Released: true})
	assert.False(t, hub.Latest().Down)
	assert.Len(t, got, 3)
}
