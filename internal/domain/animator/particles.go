package animator

import (
	"math"
	"math/rand/v2"
)

// Particle is one drifting element.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Rotation float64
	Spin     float64
	Scale    float64
	Alpha    float64
}

// Bounds is the region particles live in, margins included.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether (x, y) is inside b. Edges are inside.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// EdgePolicy decides what happens to a particle that leaves its bounds.
type EdgePolicy uint8

const (
	// Wrap moves the particle to the opposite edge (toroidal).
	Wrap EdgePolicy = iota
	// Reseed replaces the particle with a fresh one from the field's seeder.
	Reseed
)

// String returns the string representation of the policy
func (p EdgePolicy) String() string {
	switch p {
	case Wrap:
		return "Wrap"
	case Reseed:
		return "Reseed"
	default:
		return "Unknown"
	}
}

// Seeder creates a particle. initial is true while populating the field and
// false when replacing one that left the bounds.
type Seeder func(rng *rand.Rand, b Bounds, initial bool) Particle

// Field is a bounded population of particles.
type Field struct {
	Particles []Particle
	Bounds    Bounds
	Policy    EdgePolicy
	Wind      Vec2 // added to every particle's velocity, pixels per second

	seed Seeder
	rng  *rand.Rand
}

// NewField populates n particles using seed.
func NewField(n int, b Bounds, policy EdgePolicy, rng *rand.Rand, seed Seeder) *Field {
	f := &Field{Bounds: b, Policy: policy, seed: seed, rng: rng}
	f.Particles = make([]Particle, n)
	for i := range f.Particles {
		f.Particles[i] = seed(rng, b, true)
	}
	return f
}

// Step advances every particle by dt seconds.
func (f *Field) Step(dt float64) {
	f.Particles = StepParticles(f.Particles, f.Particles, dt, f.Wind, f.Bounds, f.Policy, func(b Bounds) Particle {
		return f.seed(f.rng, b, false)
	})
}

// StepParticles advances src into dst (which may alias src) and returns dst.
// Every particle moves by its own velocity plus wind. Particles outside b are
// wrapped or re-seeded according to policy.
func StepParticles(dst, src []Particle, dt float64, wind Vec2, b Bounds, policy EdgePolicy, reseed func(Bounds) Particle) []Particle {
	dst = dst[:len(src)]
	for i, p := range src {
		p.X += (p.VX + wind.X) * dt
		p.Y += (p.VY + wind.Y) * dt
		p.Rotation += p.Spin * dt
		if !b.Contains(p.X, p.Y) {
			switch policy {
			case Reseed:
				p = reseed(b)
			default:
				p.X = wrap(p.X, b.MinX, b.MaxX)
				p.Y = wrap(p.Y, b.MinY, b.MaxY)
			}
		}
		dst[i] = p
	}
	return dst
}

func wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	return lo + math.Mod(math.Mod(v-lo, span)+span, span)
}
