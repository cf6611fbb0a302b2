package sim

import (
	"math"
	"testing"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
)

func TestResolveBodyCollisionSeparates(t *testing.T) {
	a := NewBody(gamemath.Vec2{X: 0, Y: 0}, 10, 1, 1)
	b := NewBody(gamemath.Vec2{X: 15, Y: 0}, 10, 1, 1)
	a.Vel = gamemath.Vec2{X: 50}

	ResolveBodyCollision(a, b, 1)

	if d := gamemath.Dist(a.Pos, b.Pos); d < 20-1e-9 {
		t.Fatalf("bodies still overlap after resolution, dist = %v", d)
	}
	// Equal masses with restitution 1 swap normal velocity.
	if math.Abs(a.Vel.X) > 1e-9 || math.Abs(b.Vel.X-50) > 1e-9 {
		t.Fatalf("elastic equal-mass hit should transfer velocity, got a=%v b=%v", a.Vel, b.Vel)
	}
}

func TestResolveBodyCollisionCoincidentCenters(t *testing.T) {
	a := NewBody(gamemath.Vec2{X: 100, Y: 100}, 10, 1, 1)
	b := NewBody(gamemath.Vec2{X: 100, Y: 100}, 10, 1, 1)

	ResolveBodyCollision(a, b, 0.7)

	if d := gamemath.Dist(a.Pos, b.Pos); d < 20-1e-9 {
		t.Fatalf("coincident bodies not separated, dist = %v", d)
	}
	if a.Pos.X >= b.Pos.X {
		t.Fatalf("coincident bodies should separate along the fallback axis, a=%+v b=%+v", a.Pos, b.Pos)
	}
	if a.Pos.Y != 100 || b.Pos.Y != 100 {
		t.Fatalf("fallback separation should stay on the axis, a=%+v b=%+v", a.Pos, b.Pos)
	}
}

func TestResolveBodyCollisionImmovable(t *testing.T) {
	wall := NewBody(gamemath.Vec2{X: 0, Y: 0}, 10, 0, 1)
	b := NewBody(gamemath.Vec2{X: 12, Y: 0}, 10, 1, 1)
	b.Vel = gamemath.Vec2{X: -100}

	ResolveBodyCollision(wall, b, 1)

	if wall.Pos != (gamemath.Vec2{}) {
		t.Fatalf("immovable body moved to %+v", wall.Pos)
	}
	if wall.Vel != (gamemath.Vec2{}) {
		t.Fatalf("immovable body gained velocity %+v", wall.Vel)
	}
	if b.Vel.X <= 0 {
		t.Fatalf("moving body should bounce off, vel = %+v", b.Vel)
	}
}

func TestResolveBodyCollisionSeparatingBodiesKeepVelocity(t *testing.T) {
	a := NewBody(gamemath.Vec2{X: 0, Y: 0}, 10, 1, 1)
	b := NewBody(gamemath.Vec2{X: 15, Y: 0}, 10, 1, 1)
	a.Vel = gamemath.Vec2{X: -30}
	b.Vel = gamemath.Vec2{X: 30}

	ResolveBodyCollision(a, b, 1)

	if a.Vel.X != -30 || b.Vel.X != 30 {
		t.Fatalf("already-separating bodies should keep velocity, got a=%v b=%v", a.Vel, b.Vel)
	}
}

func TestKickImpulseDirection(t *testing.T) {
	kicker := NewBody(gamemath.Vec2{X: 480, Y: 300}, 15, 5, 1)
	ball := NewBody(gamemath.Vec2{X: 500, Y: 300}, 10, 1, 1)

	KickImpulse(kicker, ball, 500)

	if math.Abs(ball.Vel.X-500) > 1e-9 || math.Abs(ball.Vel.Y) > 1e-9 {
		t.Fatalf("kick should push the ball straight away from the kicker, got %+v", ball.Vel)
	}
}
