// Package input holds the process-wide pointer state and the listeners that
// scenes register for the duration of their lifetime.
//
// The hub keeps exactly one latest sample. Every event overwrites it, so
// several events between two frames are coalesced (last write wins) for
// readers that only look at Latest.
package input

// EventKind identifies a pointer event.
type EventKind uint8

const (
	PointerMove EventKind = iota
	PointerDown
	PointerUp
	Wheel
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "PointerMove"
	case PointerDown:
		return "PointerDown"
	case PointerUp:
		return "PointerUp"
	case Wheel:
		return "Wheel"
	default:
		return "Unknown"
	}
}

// Event is one pointer or wheel event in screen coordinates. DeltaY is only
// meaningful for Wheel; positive values scroll down.
type Event struct {
	Kind   EventKind
	X, Y   float64
	DeltaY float64
}

// Sample is the latest known pointer state.
type Sample struct {
	X, Y float64
	Down bool
}

type listener struct {
	id uint32
	fn func(Event)
}

// Hub distributes events to listeners and keeps the latest sample.
type Hub struct {
	latest    Sample
	listeners []listener
	nextID    uint32
}

// NewHub creates a hub whose pointer starts at (x, y), typically the screen
// center.
func NewHub(x, y float64) *Hub {
	return &Hub{latest: Sample{X: x, Y: y}}
}

// Latest returns the most recent pointer sample.
func (h *Hub) Latest() Sample {
	return h.latest
}

// Listen registers fn for every subsequent event. The returned handle
// unregisters it.
func (h *Hub) Listen(fn func(Event)) Handle {
	h.nextID++
	h.listeners = append(h.listeners, listener{id: h.nextID, fn: fn})
	return Handle{id: h.nextID, hub: h}
}

// Listeners returns the number of registered listeners.
func (h *Hub) Listeners() int {
	return len(h.listeners)
}

// Dispatch updates the latest sample and delivers ev to every listener that
// was registered when dispatch began.
func (h *Hub) Dispatch(ev Event) {
	switch ev.Kind {
	case PointerMove:
		h.latest.X, h.latest.Y = ev.X, ev.Y
	case PointerDown:
		h.latest.X, h.latest.Y = ev.X, ev.Y
		h.latest.Down = true
	case PointerUp:
		h.latest.X, h.latest.Y = ev.X, ev.Y
		h.latest.Down = false
	}

	snapshot := make([]listener, len(h.listeners))
	copy(snapshot, h.listeners)
	for _, l := range snapshot {
		if h.registered(l.id) {
			l.fn(ev)
		}
	}
}

func (h *Hub) registered(id uint32) bool {
	for _, l := range h.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

func (h *Hub) remove(id uint32) {
	for i, l := range h.listeners {
		if l.id == id {
			h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
			return
		}
	}
}

// Handle unregisters one listener.
type Handle struct {
	id  uint32
	hub *Hub
}

// Remove unregisters the listener. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.hub == nil {
		return
	}
	h.hub.remove(h.id)
}

// Scope collects handles acquired over a lifetime and releases them together.
type Scope struct {
	handles []Handle
}

// Add keeps h until Release.
func (s *Scope) Add(h Handle) {
	s.handles = append(s.handles, h)
}

// Release removes every collected listener. It is safe to call on an empty
// or already released scope.
func (s *Scope) Release() {
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
}
