package netsync

import (
	"testing"

	"github.com/leap-fish/necs/esync"

	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/messages"
	"github.com/openpitch/kickoff-mp/shared/netcomponents"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
)

func targetWith(entities ...EntityState) TargetState {
	t := TargetState{Entities: make(map[esync.NetworkId]EntityState)}
	for _, es := range entities {
		t.Entities[es.ID] = es
	}
	return t
}

func TestPredictingParticipantSeedsFromFirstSnapshot(t *testing.T) {
	s := NewSession(config.Default(), pitch.Default(), PredictingParticipant{})
	s.LocalID = 7

	spawn := gamemath.Vec2{X: 140, Y: 260}
	s.Role.ApplySnapshot(s, targetWith(EntityState{
		ID:     7,
		Pos:    spawn,
		Player: &netcomponents.NetPlayerStateData{Team: netconfig.TeamRed},
	}))

	if !s.Predictor.Initialized() {
		t.Fatal("first snapshot should seed the predictor")
	}
	if s.Predictor.PlayerPos() != spawn {
		t.Fatalf("predictor seeded at %+v, want %+v", s.Predictor.PlayerPos(), spawn)
	}
}

func TestPredictingParticipantPredictsLocalEntity(t *testing.T) {
	s := NewSession(config.Default(), pitch.Default(), PredictingParticipant{})
	s.LocalID = 7

	start := gamemath.Vec2{X: 140, Y: 260}
	s.Role.ApplySnapshot(s, targetWith(EntityState{
		ID:     7,
		Pos:    start,
		Player: &netcomponents.NetPlayerStateData{Team: netconfig.TeamRed},
	}))

	in := messages.PlayerInput{Sequence: 1, Right: true}
	for i := 0; i < 10; i++ {
		in.Sequence = uint32(i + 1)
		s.Advance(in, netconfig.FixedStep)
	}

	ve := s.Entity(7)
	if ve == nil || ve.Render.X <= start.X {
		t.Fatalf("local entity should move immediately under prediction, render = %+v", ve.Render)
	}
}

func TestPredictingParticipantInterpolatesRemotes(t *testing.T) {
	s := NewSession(config.Default(), pitch.Default(), PredictingParticipant{})
	s.LocalID = 7

	local := EntityState{ID: 7, Pos: gamemath.Vec2{X: 140, Y: 260}, Player: &netcomponents.NetPlayerStateData{}}
	remote := EntityState{ID: 9, Pos: gamemath.Vec2{X: 300, Y: 260}, Player: &netcomponents.NetPlayerStateData{Team: netconfig.TeamBlue}}
	s.Role.ApplySnapshot(s, targetWith(local, remote))

	// Remote target jumps; the view must close in monotonically, not snap.
	remote.Pos = gamemath.Vec2{X: 340, Y: 260}
	s.Role.ApplySnapshot(s, targetWith(local, remote))

	ve := s.Entity(9)
	prev := gamemath.Dist(ve.Render, remote.Pos)
	if prev == 0 {
		t.Fatal("remote entity should not snap to its new target")
	}
	for i := 0; i < 20; i++ {
		s.Advance(messages.PlayerInput{Sequence: uint32(i + 20)}, netconfig.FixedStep)
		d := gamemath.Dist(ve.Render, remote.Pos)
		if d >= prev && d != 0 {
			t.Fatalf("tick %d: remote view %v did not approach target from %v", i, d, prev)
		}
		prev = d
	}
}

func TestSpectatorInterpolatesEverything(t *testing.T) {
	s := NewSession(config.Default(), pitch.Default(), Spectator{})

	player := EntityState{ID: 3, Pos: gamemath.Vec2{X: 100, Y: 100}, Player: &netcomponents.NetPlayerStateData{}}
	ball := EntityState{ID: 4, Pos: gamemath.Vec2{X: 420, Y: 260}, Ball: &netcomponents.NetBallData{Radius: 10}}
	s.Role.ApplySnapshot(s, targetWith(player, ball))

	s.Advance(messages.PlayerInput{}, netconfig.FixedStep)

	if s.Ball() == nil {
		t.Fatal("ball entity missing from spectator view")
	}

	// Move both targets; views drift toward them without prediction.
	player.Pos = gamemath.Vec2{X: 120, Y: 100}
	ball.Pos = gamemath.Vec2{X: 440, Y: 260}
	s.Role.ApplySnapshot(s, targetWith(player, ball))
	s.Advance(messages.PlayerInput{}, netconfig.FixedStep)

	pv := s.Entity(3)
	if pv.Render.X <= 100 || pv.Render.X >= 120 {
		t.Fatalf("spectator player view should blend toward target, got %+v", pv.Render)
	}
	bv := s.Entity(4)
	if bv.Render.X <= 420 || bv.Render.X >= 440 {
		t.Fatalf("spectator ball view should blend toward target, got %+v", bv.Render)
	}
}

func TestPredictingParticipantBlockedByOpponent(t *testing.T) {
	s := NewSession(config.Default(), pitch.Default(), PredictingParticipant{})
	s.LocalID = 7

	local := EntityState{ID: 7, Pos: gamemath.Vec2{X: 400, Y: 300}, Player: &netcomponents.NetPlayerStateData{}}
	opponent := EntityState{ID: 9, Pos: gamemath.Vec2{X: 440, Y: 300}, Player: &netcomponents.NetPlayerStateData{Team: netconfig.TeamBlue}}
	s.Role.ApplySnapshot(s, targetWith(local, opponent))

	minSep := 2 * s.Cfg.Player.Radius
	in := messages.PlayerInput{Right: true}
	for i := 0; i < 120; i++ {
		in.Sequence = uint32(i + 1)
		s.Advance(in, netconfig.FixedStep)
		if d := gamemath.Dist(s.Entity(7).Render, opponent.Pos); d < minSep-1e-9 {
			t.Fatalf("tick %d: prediction walked through the opponent, dist %v < %v", i, d, minSep)
		}
	}
}

func TestAuthorityProjectsBotSteering(t *testing.T) {
	s := NewSession(config.Default(), pitch.Default(), Authority{})
	s.Extrap = NewExtrapolator(0.2)
	s.InputFor = func(id esync.NetworkId) (gamemath.Vec2, bool) {
		if id == 9 {
			return gamemath.Vec2{X: 1}, true
		}
		return gamemath.Vec2{}, false
	}

	bot := EntityState{ID: 9, Pos: gamemath.Vec2{X: 300, Y: 300}, Vel: gamemath.Vec2{X: 60}, Player: &netcomponents.NetPlayerStateData{}}
	idle := EntityState{ID: 11, Pos: gamemath.Vec2{X: 300, Y: 400}, Vel: gamemath.Vec2{X: 60}, Player: &netcomponents.NetPlayerStateData{}}
	s.Role.ApplySnapshot(s, targetWith(bot, idle))

	botRender := s.Entity(9).Render
	idleRender := s.Entity(11).Render
	if botRender.X <= idleRender.X {
		t.Fatalf("bot steering should lead the velocity-only projection: %v <= %v", botRender.X, idleRender.X)
	}
	if botRender.X <= bot.Pos.X {
		t.Fatalf("projection should lead the snapshot position, got %v", botRender.X)
	}
}
