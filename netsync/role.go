package netsync

import (
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/messages"
)

// Role is the per-session strategy deciding how snapshots and local input
// are consumed. It is selected once when the session is created; the tick
// path never branches on "what am I" beyond this dispatch.
type Role interface {
	Name() string
	// ApplySnapshot folds one decoded authoritative state into the view.
	ApplySnapshot(s *Session, t TargetState)
	// Advance runs one fixed step of session-local work.
	Advance(s *Session, in messages.PlayerInput, dt float64)
}

// Authority is the role whose simulation output is ground truth. It consumes
// no snapshots; its view is fed directly from the match it runs, optionally
// projected forward by the extrapolator to mask single-machine input lag.
type Authority struct{}

func (Authority) Name() string { return "authority" }

func (Authority) ApplySnapshot(s *Session, t TargetState) {
	// Ground truth lives in the local match; snapshots carry nothing new.
	for id, es := range t.Entities {
		ve := s.ensureEntity(id, es)
		ve.State = es
		ve.Vel = es.Vel

		if s.InputFor != nil {
			if dir, ok := s.InputFor(id); ok {
				ve.Render = s.Extrap.ProjectWithInput(id, es.Pos, es.Vel, dir, s.Cfg.Player.Acceleration)
				continue
			}
		}
		ve.Render = s.Extrap.Project(id, es.Pos, es.Vel)
	}
}

func (Authority) Advance(*Session, messages.PlayerInput, float64) {}

// PredictingParticipant is a remote player: it predicts its own entity,
// reconciles it against snapshots and interpolates everyone else.
type PredictingParticipant struct{}

func (PredictingParticipant) Name() string { return "predicting-participant" }

func (PredictingParticipant) ApplySnapshot(s *Session, t TargetState) {
	for id, es := range t.Entities {
		ve := s.ensureEntity(id, es)
		ve.State = es

		switch {
		case id == s.LocalID:
			if !s.Predictor.Initialized() || es.Player == nil || es.Player.LastSequence == 0 {
				// Initial spawn: accept the authority directly.
				s.Predictor.SetPlayerState(es.Pos, es.Vel)
				ve.Render = es.Pos
				continue
			}
			s.Predictor.Reconcile(s.Reconciler, es.Pos, es.Vel, es.Player.LastSequence)
		case es.Ball != nil:
			s.Predictor.CorrectBall(s.Interp, es.Pos, es.Vel)
		}
	}
}

func (PredictingParticipant) Advance(s *Session, in messages.PlayerInput, dt float64) {
	if s.Predictor.Initialized() {
		s.Predictor.PredictStep(in, dt, s.remoteObstacles())
	}

	for id, ve := range s.Entities {
		switch {
		case id == s.LocalID:
			ve.Render = s.Predictor.PlayerPos()
			ve.Vel = s.Predictor.PlayerVel()
		case ve.State.Ball != nil:
			// The predicted ball is the local shadow of the authoritative one.
			ve.Render = s.Predictor.BallPos()
			ve.Vel = s.Predictor.BallVel()
		default:
			ve.Render = s.Interp.Step(ve.Render, ve.State.Pos)
			ve.Vel = gamemath.Lerp(ve.Vel, ve.State.Vel, s.Interp.Blend)
		}
	}
}

// Spectator consumes snapshots without predicting anything; every entity is
// interpolated toward its target.
type Spectator struct{}

func (Spectator) Name() string { return "spectator" }

func (Spectator) ApplySnapshot(s *Session, t TargetState) {
	for id, es := range t.Entities {
		ve := s.ensureEntity(id, es)
		ve.State = es
	}
}

func (Spectator) Advance(s *Session, _ messages.PlayerInput, _ float64) {
	for _, ve := range s.Entities {
		if ve.State.Ball != nil {
			ve.Render = s.Interp.StepBall(ve.Render, ve.State.Pos)
		} else {
			ve.Render = s.Interp.Step(ve.Render, ve.State.Pos)
		}
		ve.Vel = gamemath.Lerp(ve.Vel, ve.State.Vel, s.Interp.Blend)
	}
}
