package tween

// Runner owns the active animations and advances them once per frame.
type Runner struct {
	active   []Animation
	pending  []Animation
	updating bool
	clock    float64
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Add schedules a. Animations added from inside a callback start advancing on
// the next Update.
func (r *Runner) Add(a Animation) Animation {
	if r.updating {
		r.pending = append(r.pending, a)
	} else {
		r.active = append(r.active, a)
	}
	return a
}

// Update advances every animation by dt seconds and drops finished ones.
func (r *Runner) Update(dt float64) {
	r.clock += dt
	r.updating = true
	kept := r.active[:0]
	for _, a := range r.active {
		if !a.Update(float32(dt)) {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(r.active); i++ {
		r.active[i] = nil
	}
	r.active = kept
	r.updating = false

	if len(r.pending) > 0 {
		r.active = append(r.active, r.pending...)
		r.pending = r.pending[:0]
	}
}

// Len returns the number of live animations.
func (r *Runner) Len() int {
	return len(r.active) + len(r.pending)
}

// Clock returns the total time advanced so far, in seconds.
func (r *Runner) Clock() float64 {
	return r.clock
}
