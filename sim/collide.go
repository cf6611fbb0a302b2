package sim

import (
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/pitch"
)

// CheckBodyCollision reports whether two circles overlap.
func CheckBodyCollision(a, b *Body) bool {
	return gamemath.CirclesOverlap(a.Pos, a.Radius, b.Pos, b.Radius)
}

// ResolveBodyCollision separates two overlapping circles proportionally to
// inverse mass and exchanges an impulse along the contact normal. A body with
// inverse mass 0 never moves. Coincident centers fall back to the shared safe
// axis instead of dividing by zero.
func ResolveBodyCollision(a, b *Body, restitution float64) {
	if !CheckBodyCollision(a, b) {
		return
	}
	totalInv := a.InvMass + b.InvMass
	if totalInv == 0 {
		return
	}

	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	n := delta.Normalized() // safe axis when dist == 0
	overlap := a.Radius + b.Radius - dist

	a.Pos = a.Pos.Sub(n.Scale(overlap * a.InvMass / totalInv))
	b.Pos = b.Pos.Add(n.Scale(overlap * b.InvMass / totalInv))

	relSpeed := b.Vel.Sub(a.Vel).Dot(n)
	if relSpeed >= 0 {
		// Already separating.
		return
	}
	j := -(1 + restitution) * relSpeed / totalInv
	a.Vel = a.Vel.Sub(n.Scale(j * a.InvMass))
	b.Vel = b.Vel.Add(n.Scale(j * b.InvMass))
}

// CheckSegmentCollision reports whether the body overlaps the segment.
func CheckSegmentCollision(b *Body, s *pitch.Segment) bool {
	_, hit := gamemath.CircleSegmentHit(b.Pos, b.Radius, s.P1, s.P2)
	return hit
}

// ResolveSegmentCollision pushes the body out of the segment and reflects its
// velocity across the contact normal scaled by the segment's restitution. It
// returns the impact speed (velocity component into the wall before the
// bounce), or 0 when there was no contact.
func ResolveSegmentCollision(b *Body, s *pitch.Segment) float64 {
	closest, hit := gamemath.CircleSegmentHit(b.Pos, b.Radius, s.P1, s.P2)
	if !hit {
		return 0
	}

	away := b.Pos.Sub(closest)
	dist := away.Len()
	n := s.Normal
	penetration := b.Radius - dist
	if dist > 0 {
		if away.Dot(s.Normal) >= 0 {
			n = away.Scale(1 / dist)
		} else {
			// Center already crossed the wall line within one sub-step:
			// push back out along the stored outward normal.
			penetration = b.Radius + dist
		}
	}
	b.Pos = b.Pos.Add(n.Scale(penetration))

	impact := -b.Vel.Dot(n)
	if impact < 0 {
		impact = 0
	}
	b.Vel = gamemath.Reflect(b.Vel, n, s.Restitution)
	return impact
}

// KickImpulse adds a velocity change of the given magnitude to the ball,
// directed from the kicker's center through the ball's center. Coincident
// centers kick along the safe axis.
func KickImpulse(kicker, ball *Body, magnitude float64) {
	dir := ball.Pos.Sub(kicker.Pos).Normalized()
	ball.Vel = ball.Vel.Add(dir.Scale(magnitude))
}
