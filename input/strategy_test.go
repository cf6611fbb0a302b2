package input

import (
	"testing"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
)

func fixedPerception(p Perception) func() Perception {
	return func() Perception { return p }
}

func TestChaseBallHeadsTowardBall(t *testing.T) {
	s := NewStrategy(StratChaseBall, fixedPerception(Perception{
		Self:      gamemath.Vec2{X: 100, Y: 100},
		Ball:      gamemath.Vec2{X: 300, Y: 100},
		KickRange: 30,
	}))
	s.Advance(1.0/60, 0)
	if s.Direction() != DirE {
		t.Fatalf("dir = %v, want east toward ball", s.Direction())
	}
	if s.Kick() {
		t.Fatal("ball far out of kick range, should not kick")
	}
}

func TestChaseBallKicksWhenAligned(t *testing.T) {
	// Ball directly between bot and goal, in range: shoot.
	s := NewStrategy(StratChaseBall, fixedPerception(Perception{
		Self:       gamemath.Vec2{X: 100, Y: 100},
		Ball:       gamemath.Vec2{X: 120, Y: 100},
		TargetGoal: gamemath.Vec2{X: 400, Y: 100},
		KickRange:  30,
	}))
	s.Advance(1.0/60, 0)
	if !s.Kick() {
		t.Fatal("aligned in-range ball should trigger a kick")
	}

	// Goal behind the bot: kicking would shoot the wrong way.
	s = NewStrategy(StratChaseBall, fixedPerception(Perception{
		Self:       gamemath.Vec2{X: 100, Y: 100},
		Ball:       gamemath.Vec2{X: 120, Y: 100},
		TargetGoal: gamemath.Vec2{X: -400, Y: 100},
		KickRange:  30,
	}))
	s.Advance(1.0/60, 0)
	if s.Kick() {
		t.Fatal("misaligned shot should be held")
	}
}

func TestHoldPositionStaysOnAnchor(t *testing.T) {
	anchor := gamemath.Vec2{X: 200, Y: 200}
	s := NewStrategy(StratHoldPosition, fixedPerception(Perception{
		Self:      anchor,
		Ball:      gamemath.Vec2{X: 700, Y: 400},
		Anchor:    anchor,
		KickRange: 30,
	}))
	s.Advance(1.0/60, 0)
	if s.Direction() != DirNone {
		t.Fatalf("bot on its anchor should not move, got %v", s.Direction())
	}
}

func TestInterceptLeadsTheBall(t *testing.T) {
	// Ball moving south; the intercept point is below the ball, so the bot
	// (east of the ball) should steer south-west rather than due west.
	s := NewStrategy(StratIntercept, fixedPerception(Perception{
		Self:      gamemath.Vec2{X: 400, Y: 200},
		Ball:      gamemath.Vec2{X: 200, Y: 200},
		BallVel:   gamemath.Vec2{X: 0, Y: 300},
		KickRange: 30,
	}))
	s.Advance(1.0/60, 0)
	if s.Direction() != DirSW {
		t.Fatalf("dir = %v, want south-west toward the lead point", s.Direction())
	}
}

func TestMarkPlayerPositionsGoalSide(t *testing.T) {
	s := NewStrategy(StratMarkPlayer, fixedPerception(Perception{
		Self:       gamemath.Vec2{X: 400, Y: 400},
		Ball:       gamemath.Vec2{X: 700, Y: 100},
		OwnGoal:    gamemath.Vec2{X: 0, Y: 260},
		MarkTarget: gamemath.Vec2{X: 300, Y: 260},
		HasMark:    true,
		KickRange:  30,
	}))
	s.Advance(1.0/60, 0)
	// Goal-side point sits between the mark and the own goal, north-west of
	// the bot.
	if s.Direction() != DirNW {
		t.Fatalf("dir = %v, want north-west to goal side", s.Direction())
	}
}
