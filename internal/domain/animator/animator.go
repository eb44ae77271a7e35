package animator

// Animator owns the per-frame update of one scene's parameters.
type Animator struct {
	params      *Params
	approaches  []Approach
	oscillators []Oscillator
	fields      []*Field
	time        float64
	screen      Vec2
}

// New creates an animator writing into params for a screen of the given
// size.
func New(params *Params, screen Vec2) *Animator {
	return &Animator{params: params, screen: screen}
}

// Params returns the bag the animator writes.
func (a *Animator) Params() *Params {
	return a.params
}

// Time returns the accumulated animation time in seconds.
func (a *Animator) Time() float64 {
	return a.time
}

// Approach registers a damped parameter.
func (a *Animator) Approach(ap Approach) {
	a.approaches = append(a.approaches, ap)
}

// Oscillate registers a periodic parameter.
func (a *Animator) Oscillate(o Oscillator) {
	a.oscillators = append(a.oscillators, o)
}

// Drift registers a particle field.
func (a *Animator) Drift(f *Field) {
	a.fields = append(a.fields, f)
}

// Advance runs one pass: every value is derived from the previous snapshot,
// then all values are written together. Fields step afterwards.
func (a *Animator) Advance(dt float64, pointer Vec2) {
	if dt < 0 {
		dt = 0
	}
	prev := a.params.Snapshot()
	a.time += dt
	f := Frame{Time: a.time, Dt: dt, Pointer: pointer, Screen: a.screen}

	next := make(map[string]float64, len(a.approaches)+len(a.oscillators))
	for _, ap := range a.approaches {
		next[ap.Key] = ap.Step(f, prev)
	}
	for _, o := range a.oscillators {
		next[o.Key] = o.Value(f.Time, prev)
	}
	for k, v := range next {
		a.params.Set(k, v)
	}

	for _, fd := range a.fields {
		fd.Step(dt)
	}
}
