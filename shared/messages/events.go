package messages

import "github.com/openpitch/kickoff-mp/shared/netconfig"

// GoalEvent is broadcast when a goal is scored.
type GoalEvent struct {
	ScorerID  uint // NetworkId of the last player to touch the ball, 0 if none
	Team      netconfig.Team
	ScoreRed  int
	ScoreBlue int
}

// MatchPhaseEvent is broadcast when the match phase changes.
type MatchPhaseEvent struct {
	Phase  netconfig.MatchPhase
	Winner netconfig.Team // Set when Phase is Finished
}

// KickEvent is broadcast when a kick impulse lands, for client VFX/audio.
type KickEvent struct {
	PlayerID uint
	X, Y     float64 // Ball position at the moment of the kick
	Strength float64 // Applied impulse magnitude
}

// PlayerJoinedEvent is broadcast when a participant enters the match.
type PlayerJoinedEvent struct {
	NetworkID uint
	Name      string
	Team      netconfig.Team
}

// PlayerLeftEvent is broadcast when a participant leaves the match.
type PlayerLeftEvent struct {
	NetworkID uint
}
