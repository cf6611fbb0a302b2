// Package sim implements the deterministic fixed-timestep match simulation:
// circle physics, collision resolution, the kick model and the authoritative
// match state machine. Everything here is plain data driven by Step calls so
// multiple matches can run side by side in one process (and in tests).
package sim

import (
	"math"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
)

// Body is a moving circle. InvMass 0 marks an immovable body.
type Body struct {
	Pos, Vel gamemath.Vec2
	Radius   float64
	Mass     float64
	InvMass  float64
	// Damping is the per-step velocity decay at the 60 Hz reference rate.
	Damping float64
}

// NewBody creates a circle. mass <= 0 makes the body immovable.
func NewBody(pos gamemath.Vec2, radius, mass, damping float64) *Body {
	b := &Body{
		Pos:     pos,
		Radius:  radius,
		Mass:    mass,
		Damping: damping,
	}
	if mass > 0 {
		b.InvMass = 1 / mass
	}
	return b
}

func (b *Body) Speed() float64 {
	return b.Vel.Len()
}

// Update integrates position and applies time-normalized damping, so the
// decay per wall-clock second is independent of the step size.
func (b *Body) Update(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	if b.Damping > 0 && b.Damping < 1 {
		b.Vel = b.Vel.Scale(math.Pow(b.Damping, dt*netconfig.StepsPerSecond))
	}
}

// UpdateWithSubsteps integrates against the given segments, splitting dt so a
// single sub-step never moves the body more than its own radius. This keeps a
// fast ball from tunneling through a wall between two checks. The returned
// value is the peak impact speed of the tick, an observable for audio/VFX
// hooks.
func (b *Body) UpdateWithSubsteps(dt float64, segments []pitch.Segment) float64 {
	travel := b.Speed() * dt
	steps := 1
	if b.Radius > 0 && travel > b.Radius {
		steps = int(math.Ceil(travel / b.Radius))
	}
	sub := dt / float64(steps)

	peak := 0.0
	for i := 0; i < steps; i++ {
		b.Update(sub)
		for s := range segments {
			if impact := ResolveSegmentCollision(b, &segments[s]); impact > peak {
				peak = impact
			}
		}
	}
	return peak
}
