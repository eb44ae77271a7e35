package animator

import "math"

// referenceStep is the frame spacing smoothing factors are tuned for.
const referenceStep = 1.0 / 60.0

// Damp moves prev towards target. smoothing is the fraction of the remaining
// distance covered per reference frame; the factor is corrected for dt so the
// motion does not depend on frame spacing. The result never overshoots.
func Damp(prev, target, smoothing, dt float64) float64 {
	if dt <= 0 || smoothing <= 0 {
		return prev
	}
	if smoothing >= 1 {
		return target
	}
	k := 1 - math.Pow(1-smoothing, dt/referenceStep)
	return prev + (target-prev)*k
}

// Wave selects the periodic function of an oscillator.
type Wave uint8

const (
	Sine Wave = iota
	Cosine
)

// Oscillator produces baseline + amplitude * wave(t*speed + phase).
// When AmplitudeKey or BaselineKey is set, that parameter's previous value
// scales the amplitude or offsets the baseline.
type Oscillator struct {
	Key          string
	Baseline     float64
	BaselineKey  string
	Amplitude    float64
	AmplitudeKey string
	Speed        float64
	Phase        float64
	Wave         Wave
}

// Value evaluates the oscillator at time t against prev.
func (o Oscillator) Value(t float64, prev Snapshot) float64 {
	base := o.Baseline
	if o.BaselineKey != "" {
		base += prev.Get(o.BaselineKey)
	}
	amp := o.Amplitude
	if o.AmplitudeKey != "" {
		amp *= prev.Get(o.AmplitudeKey)
	}
	x := t*o.Speed + o.Phase
	if o.Wave == Cosine {
		return base + amp*math.Cos(x)
	}
	return base + amp*math.Sin(x)
}

// Frame is the input to one animator pass.
type Frame struct {
	Time    float64
	Dt      float64
	Pointer Vec2
	Screen  Vec2
}

// Center returns the screen center.
func (f Frame) Center() Vec2 {
	return Vec2{f.Screen.X / 2, f.Screen.Y / 2}
}

// Offset returns the pointer position relative to the screen center.
func (f Frame) Offset() Vec2 {
	c := f.Center()
	return Vec2{f.Pointer.X - c.X, f.Pointer.Y - c.Y}
}

// Approach follows a target with Damp. Gate, when set, freezes the
// parameter while it returns false.
type Approach struct {
	Key       string
	Smoothing float64
	Target    func(f Frame, prev Snapshot) float64
	Gate      func(prev Snapshot) bool
}

// Step returns the next value of the parameter.
func (a Approach) Step(f Frame, prev Snapshot) float64 {
	cur := prev.Get(a.Key)
	if a.Gate != nil && !a.Gate(prev) {
		return cur
	}
	return Damp(cur, a.Target(f, prev), a.Smoothing, f.Dt)
}
