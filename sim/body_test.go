package sim

import (
	"math"
	"testing"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
)

func TestDampingIsTimeNormalized(t *testing.T) {
	b := NewBody(gamemath.Vec2{}, 10, 1, 0.96)
	b.Vel = gamemath.Vec2{X: 100}

	b.Update(netconfig.FixedStep)
	if math.Abs(b.Vel.X-96) > 1e-9 {
		t.Fatalf("one 60Hz step should decay velocity by the damping factor, got %v", b.Vel.X)
	}

	// Two half steps must decay the same as one full step.
	c := NewBody(gamemath.Vec2{}, 10, 1, 0.96)
	c.Vel = gamemath.Vec2{X: 100}
	c.Update(netconfig.FixedStep / 2)
	c.Update(netconfig.FixedStep / 2)
	if math.Abs(c.Vel.X-96) > 1e-9 {
		t.Fatalf("split steps decayed to %v, want 96", c.Vel.X)
	}
}

func TestImmovableBodyHasZeroInvMass(t *testing.T) {
	b := NewBody(gamemath.Vec2{}, 10, 0, 1)
	if b.InvMass != 0 {
		t.Fatalf("mass 0 body should be immovable, InvMass = %v", b.InvMass)
	}
}

func TestNoTunnelingAtHighSpeed(t *testing.T) {
	pt := pitch.Default()

	cases := []struct {
		name string
		pos  gamemath.Vec2
		vel  gamemath.Vec2
	}{
		{"horizontal", gamemath.Vec2{X: 420, Y: 100}, gamemath.Vec2{X: 2000}},
		{"vertical", gamemath.Vec2{X: 420, Y: 260}, gamemath.Vec2{Y: 2000}},
		{"diagonal", gamemath.Vec2{X: 420, Y: 100}, gamemath.Vec2{X: 1700, Y: -1400}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBody(tc.pos, 10, 1, 0.99)
			b.Vel = tc.vel
			for i := 0; i < 600; i++ {
				b.UpdateWithSubsteps(netconfig.FixedStep, pt.Segments)
				// Bounds include the goal nets behind the end lines.
				if b.Pos.X < -24+b.Radius-1e-6 || b.Pos.X > pt.Width+24-b.Radius+1e-6 {
					t.Fatalf("tick %d: ball escaped horizontally at %+v", i, b.Pos)
				}
				if b.Pos.Y < b.Radius-1e-6 || b.Pos.Y > pt.Height-b.Radius+1e-6 {
					t.Fatalf("tick %d: ball escaped vertically at %+v", i, b.Pos)
				}
			}
		})
	}
}

func TestSubstepCountCoversTravel(t *testing.T) {
	b := NewBody(gamemath.Vec2{X: 420, Y: 100}, 10, 1, 1)
	b.Vel = gamemath.Vec2{X: 2000}
	b.UpdateWithSubsteps(netconfig.FixedStep, nil)

	want := 420.0 + 2000*netconfig.FixedStep
	if math.Abs(b.Pos.X-want) > 1e-9 {
		t.Fatalf("substepping changed total displacement: got %v, want %v", b.Pos.X, want)
	}
}
