package netsync

import (
	"math"
	"testing"

	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/messages"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
	"github.com/openpitch/kickoff-mp/sim"
)

func TestPredictorMatchesAuthoritativeMovement(t *testing.T) {
	cfg := config.Default()
	pt := pitch.Default()

	p := NewPredictor(cfg, pt)
	p.SetPlayerState(gamemath.Vec2{X: 100, Y: 100}, gamemath.Vec2{})

	// Authoritative movement applied by hand with the same shared rules.
	auth := sim.NewBody(gamemath.Vec2{X: 100, Y: 100}, cfg.Player.Radius, cfg.Player.Mass, cfg.Player.Damping)

	in := messages.PlayerInput{Right: true}
	dir := gamemath.Vec2{X: 1}
	for i := 0; i < 60; i++ {
		in.Sequence++
		p.PredictStep(in, netconfig.FixedStep, nil)

		sim.ApplyMovement(auth, dir, cfg.Player, false, netconfig.FixedStep)
		auth.Update(netconfig.FixedStep)
	}

	if p.PlayerPos() != auth.Pos || p.PlayerVel() != auth.Vel {
		t.Fatalf("prediction diverged from shared movement rules: %+v vs %+v", p.PlayerPos(), auth.Pos)
	}
}

func TestPredictorLocalKickIsReduced(t *testing.T) {
	cfg := config.Default()
	p := NewPredictor(cfg, pitch.Default())
	p.SetPlayerState(gamemath.Vec2{X: 480, Y: 300}, gamemath.Vec2{})
	p.SetBallState(gamemath.Vec2{X: 500, Y: 300}, gamemath.Vec2{})

	p.PredictStep(messages.PlayerInput{Sequence: 1, Kick: true}, netconfig.FixedStep, nil)

	// Full strength is 500; the local impulse applies the reduced share,
	// then one tick of damping.
	want := cfg.Player.KickStrength * p.LocalKickScale * cfg.Ball.Damping
	speed := p.BallVel().Len()
	if math.Abs(speed-want) > 1 {
		t.Fatalf("local kick speed = %v, want ~%v", speed, want)
	}
	if p.BallVel().X <= 0 || math.Abs(p.BallVel().Y) > 1e-9 {
		t.Fatalf("local kick direction wrong: %+v", p.BallVel())
	}
}

func TestPredictorKickDebounceWhileHeld(t *testing.T) {
	cfg := config.Default()
	cfg.Player.KickStrength = 40
	cfg.Ball.Damping = 0.5
	p := NewPredictor(cfg, pitch.Default())
	p.SetPlayerState(gamemath.Vec2{X: 480, Y: 300}, gamemath.Vec2{})
	p.SetBallState(gamemath.Vec2{X: 500, Y: 300}, gamemath.Vec2{})

	in := messages.PlayerInput{Sequence: 1, Kick: true}
	p.PredictStep(in, netconfig.FixedStep, nil)
	first := p.BallVel().Len()

	prev := first
	for i := 0; i < 4; i++ {
		in.Sequence++
		p.PredictStep(in, netconfig.FixedStep, nil)
		if s := p.BallVel().Len(); s >= prev {
			t.Fatalf("held kick re-fired locally, speed %v after %v", s, prev)
		} else {
			prev = s
		}
	}
}

func TestPredictorReconcileSnap(t *testing.T) {
	cfg := config.Default()
	p := NewPredictor(cfg, pitch.Default())
	r := NewReconciler()
	p.SetPlayerState(gamemath.Vec2{X: 100, Y: 100}, gamemath.Vec2{})

	in := messages.PlayerInput{Sequence: 1, Right: true}
	p.PredictStep(in, netconfig.FixedStep, nil)

	auth := gamemath.Vec2{X: 420, Y: 260} // goal reset teleport
	authVel := gamemath.Vec2{}
	p.Reconcile(r, auth, authVel, 1)

	if p.PlayerPos() != auth || p.PlayerVel() != authVel {
		t.Fatalf("teleport-scale error must snap exactly, got %+v", p.PlayerPos())
	}
}

func TestPredictorReconcileDeadZone(t *testing.T) {
	cfg := config.Default()
	p := NewPredictor(cfg, pitch.Default())
	r := NewReconciler()
	p.SetPlayerState(gamemath.Vec2{X: 100, Y: 100}, gamemath.Vec2{})

	in := messages.PlayerInput{Sequence: 1, Right: true}
	p.PredictStep(in, netconfig.FixedStep, nil)
	predicted := p.PlayerPos()

	// Authority agrees within the dead zone: nothing moves.
	auth := predicted.Add(gamemath.Vec2{X: r.DeadZone / 2})
	p.Reconcile(r, auth, gamemath.Vec2{}, 1)
	if p.PlayerPos() != predicted {
		t.Fatalf("dead-zone error should not correct, got %+v", p.PlayerPos())
	}
}

func TestPredictorBallContactTransfersReducedMomentum(t *testing.T) {
	cfg := config.Default()
	p := NewPredictor(cfg, pitch.Default())
	// Player moving into a touching ball.
	p.SetPlayerState(gamemath.Vec2{X: 480, Y: 300}, gamemath.Vec2{X: 120})
	p.SetBallState(gamemath.Vec2{X: 503, Y: 300}, gamemath.Vec2{})

	full := sim.NewBody(gamemath.Vec2{X: 503, Y: 300}, cfg.Ball.Radius, cfg.Ball.Mass, cfg.Ball.Damping)
	kicker := sim.NewBody(gamemath.Vec2{X: 480, Y: 300}, cfg.Player.Radius, cfg.Player.Mass, cfg.Player.Damping)
	kicker.Vel = gamemath.Vec2{X: 120}

	p.PredictStep(messages.PlayerInput{Sequence: 1, Right: true}, netconfig.FixedStep, nil)

	got := p.BallVel().Len()
	if got == 0 {
		t.Fatal("contact should push the predicted ball")
	}
	// The transferred momentum must be well below a full authoritative hit.
	sim.ResolveBodyCollision(kicker, full, cfg.BodyRestitution)
	if got >= full.Vel.Len() {
		t.Fatalf("predicted push %v should be below the full resolution %v", got, full.Vel.Len())
	}
}

func TestApplyConfigPreservesBallMotion(t *testing.T) {
	cfg := config.Default()
	p := NewPredictor(cfg, pitch.Default())
	p.SetPlayerState(gamemath.Vec2{X: 100, Y: 100}, gamemath.Vec2{})
	p.SetBallState(gamemath.Vec2{X: 300, Y: 200}, gamemath.Vec2{X: 50, Y: 0})

	next := cfg
	next.Ball.Radius = 14
	next.Ball.Mass = 2
	next.Ball.Damping = 0.9
	p.ApplyConfig(next)

	if p.BallPos() != (gamemath.Vec2{X: 300, Y: 200}) {
		t.Fatalf("ball position must carry over, got %+v", p.BallPos())
	}
	if p.BallVel() != (gamemath.Vec2{X: 50, Y: 0}) {
		t.Fatalf("ball velocity must carry over, got %+v", p.BallVel())
	}

	// The new damping shows up on the very next predicted step.
	p.PredictStep(messages.PlayerInput{Sequence: 1}, netconfig.FixedStep, nil)
	want := 50 * math.Pow(0.9, netconfig.FixedStep*60)
	if math.Abs(p.BallVel().X-want) > 1e-9 {
		t.Fatalf("ball vel after step = %v, want %v", p.BallVel().X, want)
	}
}

func TestApplyConfigModeSwitchDropsCharge(t *testing.T) {
	cfg := config.Default()
	cfg.KickMode = netconfig.KickChargeable
	p := NewPredictor(cfg, pitch.Default())
	p.SetPlayerState(gamemath.Vec2{X: 100, Y: 100}, gamemath.Vec2{})
	p.SetBallState(gamemath.Vec2{X: 400, Y: 400}, gamemath.Vec2{})

	in := messages.PlayerInput{Kick: true}
	for i := 0; i < 10; i++ {
		in.Sequence++
		p.PredictStep(in, netconfig.FixedStep, nil)
	}
	if !p.Charging() || p.Charge() <= 0 {
		t.Fatalf("expected an in-progress charge, charging=%v charge=%v", p.Charging(), p.Charge())
	}

	next := cfg
	next.KickMode = netconfig.KickClassic
	p.ApplyConfig(next)

	if p.Charging() || p.Charge() != 0 {
		t.Fatalf("mode switch must discard charge, charging=%v charge=%v", p.Charging(), p.Charge())
	}
}

func TestPredictStepCollidesWithRemotePlayers(t *testing.T) {
	cfg := config.Default()
	p := NewPredictor(cfg, pitch.Default())
	p.SetPlayerState(gamemath.Vec2{X: 400, Y: 300}, gamemath.Vec2{})
	p.SetBallState(gamemath.Vec2{X: 700, Y: 500}, gamemath.Vec2{})

	opponent := gamemath.Vec2{X: 440, Y: 300}
	minSep := 2 * cfg.Player.Radius

	in := messages.PlayerInput{Right: true}
	for i := 0; i < 120; i++ {
		in.Sequence++
		p.PredictStep(in, netconfig.FixedStep, []gamemath.Vec2{opponent})
		if d := gamemath.Dist(p.PlayerPos(), opponent); d < minSep-1e-9 {
			t.Fatalf("tick %d: predicted player penetrated the opponent, dist %v < %v", i, d, minSep)
		}
	}

	// The opponent blocks the path; the player ends pressed against it.
	if got := gamemath.Dist(p.PlayerPos(), opponent); got > minSep+1 {
		t.Fatalf("player should be held at the opponent's edge, dist %v", got)
	}
}
