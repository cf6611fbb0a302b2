package netsync

import (
	"testing"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
)

func TestReconcilerConvergesWithoutSnapping(t *testing.T) {
	r := NewReconciler()
	auth := gamemath.Vec2{X: 400, Y: 300}
	authVel := gamemath.Vec2{X: 10}
	pred := gamemath.Vec2{X: 450, Y: 300} // 50 units off, inside the blend band
	vel := gamemath.Vec2{}

	prev := gamemath.Dist(pred, auth)
	below1At := -1
	for i := 0; i < 30; i++ {
		pred, vel = r.Apply(pred, vel, auth, authVel)
		d := gamemath.Dist(pred, auth)
		if d > r.DeadZone && d >= prev {
			t.Fatalf("tick %d: distance %v did not strictly decrease from %v", i, d, prev)
		}
		if d < 1 && below1At < 0 {
			below1At = i
		}
		prev = d
	}
	if below1At < 0 {
		t.Fatalf("error never fell below 1 unit, stuck at %v", prev)
	}
	if gamemath.Dist(vel, authVel) >= 10 {
		t.Fatalf("velocity not corrected, still %v off", gamemath.Dist(vel, authVel))
	}
}

func TestReconcilerSnapsOnTeleportScaleError(t *testing.T) {
	r := NewReconciler()
	auth := gamemath.Vec2{X: 420, Y: 260}
	authVel := gamemath.Vec2{X: -5, Y: 3}

	pos, vel := r.Apply(gamemath.Vec2{X: 420 + 150, Y: 260}, gamemath.Vec2{X: 99}, auth, authVel)
	if pos != auth || vel != authVel {
		t.Fatalf("beyond the snap threshold position must match exactly, got %+v %+v", pos, vel)
	}
}

func TestReconcilerDeadZoneLeavesPredictionAlone(t *testing.T) {
	r := NewReconciler()
	pred := gamemath.Vec2{X: 100.3, Y: 100}
	predVel := gamemath.Vec2{X: 7}

	pos, vel := r.Apply(pred, predVel, gamemath.Vec2{X: 100, Y: 100}, gamemath.Vec2{})
	if pos != pred || vel != predVel {
		t.Fatalf("micro-jitter inside the dead zone must not be corrected, got %+v", pos)
	}
}
