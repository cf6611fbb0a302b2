// Package netsync keeps a participant's view of the match visually
// consistent with the authority: prediction for the locally controlled
// player, reconciliation against incoming snapshots, interpolation for every
// other entity and optional dead-reckoning extrapolation. All state lives in
// an explicit Session so several participants (and tests) can run in one
// process.
package netsync

import (
	"github.com/leap-fish/necs/esync"

	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/messages"
	"github.com/openpitch/kickoff-mp/shared/netcomponents"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
)

// ViewEntity is the render-facing projection of one networked entity. Render
// positions are derived from snapshots and prediction; they never feed back
// into simulation.
type ViewEntity struct {
	ID     esync.NetworkId
	Render gamemath.Vec2
	Vel    gamemath.Vec2
	State  EntityState
}

// Session owns one participant's complete sync state.
type Session struct {
	Cfg   config.MatchConfig
	Pitch *pitch.Pitch

	LocalID esync.NetworkId
	Role    Role

	Predictor  *Predictor
	Reconciler *Reconciler
	Interp     *Interpolator
	Extrap     *Extrapolator

	// InputFor, when set, reports the current movement direction of an
	// entity simulated on this machine (the authority's bots). Dead
	// reckoning folds it in so scripted steering projects forward instead
	// of coasting on stale velocity.
	InputFor func(id esync.NetworkId) (gamemath.Vec2, bool)

	Entities map[esync.NetworkId]*ViewEntity
	Match    netcomponents.NetMatchStateData

	lastPhase netconfig.MatchPhase
}

// NewSession builds a session with the given role strategy. The extrapolator
// starts disabled; single-machine configurations enable it by setting a
// horizon.
func NewSession(cfg config.MatchConfig, pt *pitch.Pitch, role Role) *Session {
	return &Session{
		Cfg:        cfg,
		Pitch:      pt,
		Role:       role,
		Predictor:  NewPredictor(cfg, pt),
		Reconciler: NewReconciler(),
		Interp:     NewInterpolator(),
		Extrap:     NewExtrapolator(0),
		Entities:   make(map[esync.NetworkId]*ViewEntity),
	}
}

// HandleSnapshot folds one authoritative snapshot into the session view.
func (s *Session) HandleSnapshot(snapshot esync.WorldSnapshot) {
	t := DecodeSnapshot(snapshot)

	if t.Match != nil {
		// Phase flips reset positions on the authority; stale projections
		// would render a backward jump.
		if t.Match.Phase != s.lastPhase {
			s.Extrap.InvalidateAll()
		}
		s.lastPhase = t.Match.Phase
		s.Match = *t.Match
	}

	s.Role.ApplySnapshot(s, t)

	for id := range s.Entities {
		if _, present := t.Entities[id]; !present {
			delete(s.Entities, id)
		}
	}
}

// Advance runs one fixed step of session-local work with the current input
// sample: prediction for the local entity, interpolation for the rest.
func (s *Session) Advance(in messages.PlayerInput, dt float64) {
	s.Role.Advance(s, in, dt)
}

// ApplyConfigUpdate folds a mid-match config re-sync into local prediction
// so predicted and authoritative trajectories keep agreeing.
func (s *Session) ApplyConfigUpdate(u messages.ConfigUpdate) {
	s.Cfg.KickMode = u.KickMode
	if u.KickStrength > 0 {
		s.Cfg.Player.KickStrength = u.KickStrength
	}
	if u.BallRadius > 0 {
		s.Cfg.Ball = config.BallConfig{
			Radius:  u.BallRadius,
			Mass:    u.BallMass,
			Damping: u.BallDamping,
		}
	}
	s.Predictor.ApplyConfig(s.Cfg)
}

// Entity returns the view entity with the given id, or nil.
func (s *Session) Entity(id esync.NetworkId) *ViewEntity {
	return s.Entities[id]
}

// Ball returns the ball's view entity, or nil before the first snapshot.
func (s *Session) Ball() *ViewEntity {
	for _, ve := range s.Entities {
		if ve.State.Ball != nil {
			return ve
		}
	}
	return nil
}

// remoteObstacles returns the last-known positions of every other player
// entity. Prediction resolves the local player against these circles.
func (s *Session) remoteObstacles() []gamemath.Vec2 {
	var obs []gamemath.Vec2
	for id, ve := range s.Entities {
		if id == s.LocalID || ve.State.Player == nil {
			continue
		}
		obs = append(obs, ve.State.Pos)
	}
	return obs
}

func (s *Session) ensureEntity(id esync.NetworkId, es EntityState) *ViewEntity {
	ve, ok := s.Entities[id]
	if !ok {
		ve = &ViewEntity{ID: id, Render: es.Pos, Vel: es.Vel}
		s.Entities[id] = ve
	}
	return ve
}
