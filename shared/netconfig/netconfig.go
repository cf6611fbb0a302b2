// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// Team identifies which side a player belongs to.
type Team int

const (
	TeamSpectator Team = iota
	TeamRed
	TeamBlue
)

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlue:
		return "blue"
	default:
		return "spectator"
	}
}

// Opponent returns the other scoring team. Spectator has no opponent.
func (t Team) Opponent() Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return TeamSpectator
	}
}

// KickMode selects how kick strength is derived from input.
type KickMode int

const (
	// KickClassic applies the full configured strength on every kick.
	KickClassic KickMode = iota
	// KickChargeable scales strength by how long the kick key was held,
	// with a 20% floor so a tap still does something.
	KickChargeable
)

func (m KickMode) String() string {
	if m == KickChargeable {
		return "chargeable"
	}
	return "classic"
}

// MatchPhase represents the current state of a match.
type MatchPhase int

const (
	PhaseIdle      MatchPhase = iota // Created, not started
	PhaseRunning                     // Active gameplay
	PhaseGoalPause                   // Short freeze after a goal, latched against re-trigger
	PhaseFinished                    // Match over; terminal until explicit reset
)

func (p MatchPhase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGoalPause:
		return "goal-pause"
	case PhaseFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Simulation timing. The fixed step is the contract between authority and
// prediction: both integrate at exactly this rate regardless of frame rate.
const (
	StepsPerSecond = 60
	FixedStep      = 1.0 / StepsPerSecond

	// MaxFrameTime clamps real elapsed time fed to the accumulator so a
	// stalled process does not spiral into a huge catch-up burst.
	MaxFrameTime = 0.1
)
