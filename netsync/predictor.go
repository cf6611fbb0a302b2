package netsync

import (
	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/input"
	"github.com/openpitch/kickoff-mp/network"
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/messages"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
	"github.com/openpitch/kickoff-mp/sim"
)

// Local feedback multipliers. These have no derived values; they are tuned
// so the local approximation undershoots the authority and the correction
// arriving one round trip later moves things forward, never backward.
const (
	defaultBallMomentumShare = 0.3
	defaultLocalKickScale    = 0.7
)

// Predictor re-runs the shared movement rules for the locally controlled
// player every input sample, giving instant feedback ahead of the authority.
// Ball contact transfers only a fraction of the momentum and kicks apply at
// reduced strength; the full-strength result arrives with the next snapshot.
type Predictor struct {
	Cfg    config.MatchConfig
	Pitch  *pitch.Pitch
	Buffer *network.PredictionBuffer

	BallMomentumShare float64
	LocalKickScale    float64

	player *sim.Body
	ball   *sim.Body

	kickWasHeld bool
	charging    bool
	charge      float64

	initialized bool
}

func NewPredictor(cfg config.MatchConfig, pt *pitch.Pitch) *Predictor {
	return &Predictor{
		Cfg:               cfg,
		Pitch:             pt,
		Buffer:            &network.PredictionBuffer{},
		BallMomentumShare: defaultBallMomentumShare,
		LocalKickScale:    defaultLocalKickScale,
		player:            sim.NewBody(gamemath.Vec2{}, cfg.Player.Radius, cfg.Player.Mass, cfg.Player.Damping),
		ball:              sim.NewBody(pt.BallSpawn, cfg.Ball.Radius, cfg.Ball.Mass, cfg.Ball.Damping),
	}
}

// Initialized reports whether the first authoritative state has been applied.
func (p *Predictor) Initialized() bool { return p.initialized }

// SetPlayerState seeds or resets the predicted player from authoritative state.
func (p *Predictor) SetPlayerState(pos, vel gamemath.Vec2) {
	p.player.Pos = pos
	p.player.Vel = vel
	p.initialized = true
}

// SetBallState resets the predicted ball from authoritative state.
func (p *Predictor) SetBallState(pos, vel gamemath.Vec2) {
	p.ball.Pos = pos
	p.ball.Vel = vel
}

func (p *Predictor) PlayerPos() gamemath.Vec2 { return p.player.Pos }
func (p *Predictor) PlayerVel() gamemath.Vec2 { return p.player.Vel }
func (p *Predictor) BallPos() gamemath.Vec2   { return p.ball.Pos }
func (p *Predictor) BallVel() gamemath.Vec2   { return p.ball.Vel }

// PredictStep applies one fixed step of the shared movement rules with the
// given input, resolves local collisions, and records the outcome for
// reconciliation. obstacles carries the last-known positions of the other
// players; each is an immovable circle, so the predicted player cannot walk
// through an opponent the authority would collide with. Contacts resolve in
// the authority's order: other players, then the ball, then the walls.
func (p *Predictor) PredictStep(in messages.PlayerInput, dt float64, obstacles []gamemath.Vec2) {
	st := in.State()

	sim.ApplyMovement(p.player, st.Direction().Vec(), p.Cfg.Player, p.charging, dt)
	p.handleKick(st, dt)
	p.player.Update(dt)

	p.ball.UpdateWithSubsteps(dt, p.Pitch.Segments)

	for _, pos := range obstacles {
		other := sim.Body{Pos: pos, Radius: p.Cfg.Player.Radius}
		sim.ResolveBodyCollision(p.player, &other, p.Cfg.BodyRestitution)
	}

	if sim.CheckBodyCollision(p.player, p.ball) {
		// Transfer only a share of the contact momentum; the authoritative
		// result supersedes this within one round trip.
		pre := p.ball.Vel
		sim.ResolveBodyCollision(p.player, p.ball, p.Cfg.BodyRestitution)
		delta := p.ball.Vel.Sub(pre)
		p.ball.Vel = pre.Add(delta.Scale(p.BallMomentumShare))
	}

	for s := range p.Pitch.Segments {
		if p.Pitch.Segments[s].PlayerCollides {
			sim.ResolveSegmentCollision(p.player, &p.Pitch.Segments[s])
		}
	}

	p.Buffer.Store(in, p.player.Pos.X, p.player.Pos.Y, p.player.Vel.X, p.player.Vel.Y)
}

func (p *Predictor) handleKick(st input.State, dt float64) {
	held := st.Kick
	pressed := held && !p.kickWasHeld
	released := !held && p.kickWasHeld

	switch p.Cfg.KickMode {
	case netconfig.KickChargeable:
		if pressed {
			p.charging = true
			p.charge = 0
		}
		if held && p.charging {
			p.charge += dt / p.Cfg.Player.ChargeTime
			if p.charge > 1 {
				p.charge = 1
			}
		}
		if released && p.charging {
			fraction := p.charge
			if fraction < p.Cfg.Player.ChargeFloor {
				fraction = p.Cfg.Player.ChargeFloor
			}
			p.localKick(fraction)
			p.charging = false
			p.charge = 0
		}
	default:
		if pressed {
			p.localKick(1.0)
		}
	}
	p.kickWasHeld = held
}

// localKick applies the reduced-strength local kick impulse.
func (p *Predictor) localKick(fraction float64) {
	reach := p.player.Radius + p.ball.Radius + p.Cfg.Player.KickMargin
	if gamemath.Dist(p.player.Pos, p.ball.Pos) > reach {
		return
	}
	sim.KickImpulse(p.player, p.ball, p.Cfg.Player.KickStrength*fraction*p.LocalKickScale)
}

// Charging reports whether a chargeable kick is currently held.
func (p *Predictor) Charging() bool { return p.charging }

// Charge returns the current charge fraction in [0,1].
func (p *Predictor) Charge() float64 { return p.charge }

// ApplyConfig swaps physics settings mid-session, keeping the predicted
// ball's position and velocity. A kick mode change discards any charge in
// progress.
func (p *Predictor) ApplyConfig(cfg config.MatchConfig) {
	if p.Cfg.KickMode != cfg.KickMode {
		p.charging = false
		p.charge = 0
	}
	p.Cfg = cfg
	if p.ball != nil {
		p.ball.Radius = cfg.Ball.Radius
		p.ball.Damping = cfg.Ball.Damping
		if cfg.Ball.Mass > 0 {
			p.ball.InvMass = 1 / cfg.Ball.Mass
		} else {
			p.ball.InvMass = 0
		}
	}
}

// Reconcile folds an authoritative state for the local player into the
// prediction. lastSeq is the newest input sequence the authority has applied.
func (p *Predictor) Reconcile(r *Reconciler, authPos, authVel gamemath.Vec2, lastSeq uint32) {
	rec, ok := p.Buffer.Get(lastSeq)
	if !ok {
		// History too old to compare against; trust the authority.
		p.SetPlayerState(authPos, authVel)
		return
	}

	d := p.Buffer.PredictionError(lastSeq, authPos.X, authPos.Y)
	switch {
	case d <= r.DeadZone:
		// Prediction is effectively correct; leave it alone.
	case d >= r.SnapThreshold:
		p.SetPlayerState(authPos, authVel)
	default:
		err := authPos.Sub(gamemath.Vec2{X: rec.PredictedX, Y: rec.PredictedY})
		p.player.Pos = p.player.Pos.Add(err.Scale(r.Blend))
		p.player.Vel = gamemath.Lerp(p.player.Vel, authVel, r.Blend)
	}
}

// CorrectBall pulls the predicted ball toward its authoritative state using
// the interpolator's catch-up rule.
func (p *Predictor) CorrectBall(ip *Interpolator, authPos, authVel gamemath.Vec2) {
	p.ball.Pos = ip.StepBall(p.ball.Pos, authPos)
	p.ball.Vel = gamemath.Lerp(p.ball.Vel, authVel, ip.Blend)
}
