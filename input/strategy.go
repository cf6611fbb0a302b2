package input

import (
	"math"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
)

// StrategyKind selects the autonomous behavior of a Strategy source.
type StrategyKind int

const (
	StratChaseBall StrategyKind = iota
	StratAimAtGoal
	StratMarkPlayer
	StratIntercept
	StratHoldPosition
)

// Perception is the read-only world view a strategy works from. The owner
// (match or prediction layer) refreshes it every tick via the Perceive
// callback; strategies never touch simulation state directly.
type Perception struct {
	Self    gamemath.Vec2
	SelfVel gamemath.Vec2
	Ball    gamemath.Vec2
	BallVel gamemath.Vec2

	TargetGoal gamemath.Vec2 // Center of the goal to score in
	OwnGoal    gamemath.Vec2
	MarkTarget gamemath.Vec2 // Position of the opponent to mark
	HasMark    bool
	Anchor     gamemath.Vec2 // Assigned hold position

	KickRange float64 // Distance at which a kick still connects
}

const (
	// arriveRadius stops the bot jittering around its target point.
	arriveRadius = 6.0
	// aimStandoff is how far behind the ball an aiming bot positions itself
	// before committing to the kick.
	aimStandoff = 28.0
	// interceptSpeed approximates own travel speed when leading the ball.
	interceptSpeed = 180.0
	// kickAlignment is the minimum cosine between the approach direction and
	// the ball→goal direction for a deliberate shot.
	kickAlignment = 0.35
)

// Strategy derives a target point every tick from its perception and steers
// toward it, kicking when the ball is in range and the shot makes sense.
type Strategy struct {
	Kind     StrategyKind
	Perceive func() Perception

	dir  Direction
	kick bool
}

func NewStrategy(kind StrategyKind, perceive func() Perception) *Strategy {
	return &Strategy{Kind: kind, Perceive: perceive}
}

func (s *Strategy) Direction() Direction { return s.dir }
func (s *Strategy) Kick() bool           { return s.kick }

func (s *Strategy) Advance(_, _ float64) {
	if s.Perceive == nil {
		s.dir, s.kick = DirNone, false
		return
	}
	p := s.Perceive()
	target := s.targetPoint(p)
	s.dir = dirToward(p.Self, target)
	s.kick = s.wantKick(p)
}

func (s *Strategy) Reset() {
	s.dir = DirNone
	s.kick = false
}

func (s *Strategy) targetPoint(p Perception) gamemath.Vec2 {
	switch s.Kind {
	case StratAimAtGoal:
		// Stand on the far side of the ball from the goal, then push through.
		away := p.Ball.Sub(p.TargetGoal).Normalized()
		behind := p.Ball.Add(away.Scale(aimStandoff))
		if gamemath.Dist(p.Self, behind) > arriveRadius {
			return behind
		}
		return p.Ball
	case StratMarkPlayer:
		if p.HasMark {
			return gamemath.Lerp(p.MarkTarget, p.OwnGoal, 0.25)
		}
		return p.Anchor
	case StratIntercept:
		lead := gamemath.Clamp(gamemath.Dist(p.Self, p.Ball)/interceptSpeed, 0, 1)
		return p.Ball.Add(p.BallVel.Scale(lead))
	case StratHoldPosition:
		return p.Anchor
	default: // StratChaseBall
		return p.Ball
	}
}

func (s *Strategy) wantKick(p Perception) bool {
	if gamemath.Dist(p.Self, p.Ball) > p.KickRange {
		return false
	}
	switch s.Kind {
	case StratMarkPlayer, StratHoldPosition:
		// Defensive roles clear the ball whenever it is in reach.
		return true
	default:
		// Only shoot when the approach lines up with the goal so the kick
		// does not fire the ball backwards.
		approach := p.Ball.Sub(p.Self).Normalized()
		toGoal := p.TargetGoal.Sub(p.Ball).Normalized()
		return approach.Dot(toGoal) >= kickAlignment
	}
}

// dirToward quantizes the vector from `from` to `to` into the nearest of the
// eight compass directions, returning DirNone inside the arrive radius.
func dirToward(from, to gamemath.Vec2) Direction {
	d := to.Sub(from)
	if d.Len() <= arriveRadius {
		return DirNone
	}
	// Octant by angle; north is -Y in screen coordinates.
	angle := math.Atan2(d.Y, d.X) // -pi..pi, 0 = east
	octant := int(math.Round(angle/(math.Pi/4))) & 7
	switch octant {
	case 0:
		return DirE
	case 1:
		return DirSE
	case 2:
		return DirS
	case 3:
		return DirSW
	case 4:
		return DirW
	case 5:
		return DirNW
	case 6:
		return DirN
	default:
		return DirNE
	}
}
