// Package gesture implements the bounded progress accumulator that gates
// advancing from a scene.
//
// One Machine covers both mechanics. In hold mode progress rises while the
// pointer is held on target and decays otherwise. In click mode every
// qualifying click adds a fixed increment and progress decays continuously.
// Both complete once, when progress reaches the threshold.
package gesture

import "math"

// Mode selects how input turns into progress.
type Mode uint8

const (
	ModeHold Mode = iota
	ModeClick
)

// State is the observable machine state.
type State uint8

const (
	StateIdle State = iota
	StateArmed
	StateCompleting
	StateCompleted
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateArmed:
		return "Armed"
	case StateCompleting:
		return "Completing"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Config parameterizes a Machine. Rates are progress per second.
type Config struct {
	Mode      Mode
	RiseRate  float64 // hold mode only
	DecayRate float64
	Increment float64 // click mode only
	Threshold float64 // defaults to 1
}

// Machine accumulates progress in [0, 1].
type Machine struct {
	cfg Config

	progress   float64
	armed      bool
	completing bool
	completed  bool
	clicks     int

	onComplete func()
}

// New creates a machine. onComplete runs exactly once, synchronously inside
// the Update that reaches the threshold.
func New(cfg Config, onComplete func()) *Machine {
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = 1
	}
	return &Machine{cfg: cfg, onComplete: onComplete}
}

// Progress returns the current progress.
func (m *Machine) Progress() float64 {
	return m.progress
}

// Armed reports whether the pointer is engaged.
func (m *Machine) Armed() bool {
	return m.armed
}

// Completed reports whether the threshold was reached. It never reverts.
func (m *Machine) Completed() bool {
	return m.completed
}

// State returns the current state.
func (m *Machine) State() State {
	switch {
	case m.completing:
		return StateCompleting
	case m.completed:
		return StateCompleted
	case m.armed:
		return StateArmed
	default:
		return StateIdle
	}
}

// PointerDown arms the machine.
func (m *Machine) PointerDown() {
	if m.completed || m.completing {
		return
	}
	m.armed = true
}

// PointerUp disarms the machine.
func (m *Machine) PointerUp() {
	if m.completed || m.completing {
		return
	}
	m.armed = false
}

// Click queues one increment. Queued increments are applied by the next
// Update after that frame's decay. Clicks are ignored in hold mode and after
// completion.
func (m *Machine) Click() {
	if m.cfg.Mode != ModeClick || m.completed || m.completing {
		return
	}
	m.clicks++
}

// Update advances the machine by dt seconds. onTarget is the scene-specific
// targeting condition; it only matters in hold mode.
//
// Order within one update: rise or decay, then queued clicks, then clamp,
// then the completion check.
func (m *Machine) Update(dt float64, onTarget bool) {
	if m.completed || m.completing {
		return
	}

	switch m.cfg.Mode {
	case ModeHold:
		if m.armed && onTarget {
			m.progress += m.cfg.RiseRate * dt
		} else {
			m.progress -= m.cfg.DecayRate * dt
		}
	case ModeClick:
		m.progress -= m.cfg.DecayRate * dt
		m.progress = math.Max(0, m.progress)
		m.progress += float64(m.clicks) * m.cfg.Increment
		m.clicks = 0
	}
	m.progress = clamp01(m.progress)

	if m.progress >= m.cfg.Threshold {
		m.complete()
	}
}

func (m *Machine) complete() {
	m.completing = true
	m.progress = 1
	m.armed = false
	m.clicks = 0
	if m.onComplete != nil {
		m.onComplete()
	}
	m.completing = false
	m.completed = true
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
