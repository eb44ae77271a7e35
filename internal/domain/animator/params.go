// Package animator advances named numeric parameters once per frame.
//
// Two update patterns are supported: a critically damped approach towards a
// target (parallax, camera follow) and periodic oscillation around a baseline
// (shake, sway, flicker). Particle fields drift independently and are either
// wrapped or re-seeded when they leave their bounds.
//
// Every frame is a single pass: targets and amplitudes are computed from the
// previous frame's snapshot, never from values written in the same frame.
package animator

import (
	"maps"
	"slices"
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Snapshot is a read-only copy of parameter values.
type Snapshot map[string]float64

// Get returns the value for key, or 0.
func (s Snapshot) Get(key string) float64 {
	return s[key]
}

// Params is a scene's parameter bag. Each value has stable storage so a
// tween can animate it through Field.
type Params struct {
	values map[string]*float64
}

// NewParams creates a bag with initial values.
func NewParams(initial map[string]float64) *Params {
	p := &Params{values: make(map[string]*float64, len(initial))}
	for k, v := range initial {
		p.Set(k, v)
	}
	return p
}

// Get returns the value for key, or 0.
func (p *Params) Get(key string) float64 {
	if ref, ok := p.values[key]; ok {
		return *ref
	}
	return 0
}

// Lookup returns the value for key and whether it exists.
func (p *Params) Lookup(key string) (float64, bool) {
	ref, ok := p.values[key]
	if !ok {
		return 0, false
	}
	return *ref, true
}

// Set writes key.
func (p *Params) Set(key string, v float64) {
	*p.Field(key) = v
}

// Field returns the storage for key, creating it at 0 when missing.
func (p *Params) Field(key string) *float64 {
	ref, ok := p.values[key]
	if !ok {
		ref = new(float64)
		p.values[key] = ref
	}
	return ref
}

// Snapshot copies the current values.
func (p *Params) Snapshot() Snapshot {
	s := make(Snapshot, len(p.values))
	for k, ref := range p.values {
		s[k] = *ref
	}
	return s
}

// Keys returns the parameter names in sorted order.
func (p *Params) Keys() []string {
	return slices.Sorted(maps.Keys(p.values))
}
