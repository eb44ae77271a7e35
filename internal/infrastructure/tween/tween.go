// Package tween animates float64 fields over time with gween easing curves.
//
// There is no global clock: a Runner is advanced by the frame loop and every
// animation it owns advances by the same dt. Callbacks run synchronously
// inside Runner.Update.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/descent/internal/infrastructure/display"
)

// epsilon absorbs the rounding of per-frame steps so that a tween of n
// frames ends on frame n.
const epsilon = 1e-6

// Target is one animated field. When HasFrom is false the start value is read
// from the field at the moment the tween starts.
type Target struct {
	Field   *float64
	From    float64
	To      float64
	HasFrom bool
}

// Prop animates field from its current value to to.
func Prop(field *float64, to float64) Target {
	return Target{Field: field, To: to}
}

// PropFrom animates field from from to to.
func PropFrom(field *float64, from, to float64) Target {
	return Target{Field: field, From: from, To: to, HasFrom: true}
}

// Animation is anything a Runner can advance.
type Animation interface {
	// Update advances by dt seconds and reports whether it has finished.
	Update(dt float32) bool
}

// Tween drives a set of targets with a shared duration and easing.
type Tween struct {
	duration float64
	fn       ease.TweenFunc
	targets  []Target
	tweens   []*gween.Tween

	delay   float64
	waited  float64
	elapsed float64

	owner  *display.Node
	repeat int
	yoyo   bool

	started bool
	done    bool

	OnStart    func()
	OnUpdate   func()
	OnComplete func()
}

// To creates a tween over duration seconds. A nil easing is linear.
func To(duration float64, fn ease.TweenFunc, targets ...Target) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{
		duration: max(duration, 0),
		fn:       fn,
		targets:  targets,
	}
}

// After returns a timer that calls fn once d seconds have elapsed.
func After(d float64, fn func()) *Tween {
	t := To(d, ease.Linear)
	t.OnComplete = fn
	return t
}

// Delay postpones the start by d seconds.
func (t *Tween) Delay(d float64) *Tween {
	t.delay = max(d, 0)
	return t
}

// Owner ties the tween to a node. Once the node is disposed the tween stops
// without writing or calling OnComplete.
func (t *Tween) Owner(n *display.Node) *Tween {
	t.owner = n
	return t
}

// Repeat plays the tween n more times, n < 0 repeats forever. With yoyo every
// other cycle runs backwards.
func (t *Tween) Repeat(n int, yoyo bool) *Tween {
	t.repeat = n
	t.yoyo = yoyo
	return t
}

// Stop ends the tween where it is. OnComplete is not called.
func (t *Tween) Stop() {
	t.done = true
}

// Done reports whether the tween has finished or was stopped.
func (t *Tween) Done() bool {
	return t.done
}

// Started reports whether the delay has elapsed and the tween has begun.
func (t *Tween) Started() bool {
	return t.started
}

// Update implements Animation.
func (t *Tween) Update(dt float32) bool {
	if t.done {
		return true
	}
	if t.owner != nil && t.owner.IsDisposed() {
		t.done = true
		return true
	}

	step := float64(dt)
	if t.waited < t.delay {
		t.waited += step
		if t.waited < t.delay-epsilon {
			return false
		}
		step = max(t.waited-t.delay, 0)
	}

	if !t.started {
		t.start()
		if t.done {
			return true
		}
	}

	t.elapsed += step
	finished := t.elapsed >= t.duration-epsilon
	t.apply(finished)
	if t.OnUpdate != nil {
		t.OnUpdate()
	}
	if !finished {
		return false
	}

	if t.repeat != 0 {
		if t.repeat > 0 {
			t.repeat--
		}
		t.restart()
		return false
	}

	t.done = true
	if t.OnComplete != nil {
		t.OnComplete()
	}
	return true
}

func (t *Tween) start() {
	t.started = true
	t.tweens = make([]*gween.Tween, len(t.targets))
	for i := range t.targets {
		tg := &t.targets[i]
		if !tg.HasFrom {
			tg.From = *tg.Field
			tg.HasFrom = true
		}
		t.tweens[i] = gween.New(float32(tg.From), float32(tg.To), float32(t.duration), t.fn)
	}
	if t.OnStart != nil {
		t.OnStart()
	}
}

func (t *Tween) apply(finished bool) {
	for i, tg := range t.targets {
		if finished {
			*tg.Field = tg.To
			continue
		}
		v, _ := t.tweens[i].Set(float32(t.elapsed))
		*tg.Field = float64(v)
	}
}

func (t *Tween) restart() {
	t.elapsed = 0
	for i := range t.targets {
		tg := &t.targets[i]
		if t.yoyo {
			tg.From, tg.To = tg.To, tg.From
		}
		*tg.Field = tg.From
		t.tweens[i] = gween.New(float32(tg.From), float32(tg.To), float32(t.duration), t.fn)
	}
}
