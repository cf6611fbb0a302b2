// Package config holds the tunable match and physics configuration. A Match
// value is immutable once a match starts; the server may re-sync the small
// subset in shared/messages.ConfigUpdate mid-match to keep remote prediction
// consistent.
package config

import "github.com/openpitch/kickoff-mp/shared/netconfig"

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	Radius       float64
	Mass         float64
	Damping      float64 // Per-step velocity decay, 60 Hz reference
	MaxSpeed     float64
	Acceleration float64

	// Kick
	KickStrength  float64
	KickMargin    float64 // Extra reach beyond summed radii
	ChargeTime    float64 // Seconds to reach full charge (chargeable mode)
	ChargeFloor   float64 // Minimum charge fraction applied on release
	ChargingSpeed float64 // Speed multiplier while holding a charge
}

// BallConfig contains ball-related configuration values
type BallConfig struct {
	Radius  float64
	Mass    float64
	Damping float64
}

// MatchConfig aggregates everything a single match needs. Zero limits mean
// unlimited.
type MatchConfig struct {
	TimeLimit      float64 // Seconds; 0 = unlimited
	ScoreLimit     int     // Goals; 0 = unlimited
	PlayersPerTeam int
	KickMode       netconfig.KickMode
	GoalPauseTicks int // Fixed ticks the post-goal freeze lasts

	// Collision restitution between round bodies (player-player, player-ball).
	BodyRestitution float64

	Player PlayerConfig
	Ball   BallConfig
}

// Default returns the stock match configuration. Values are tuned for the
// default pitch dimensions (840x520 units).
func Default() MatchConfig {
	return MatchConfig{
		TimeLimit:      0,
		ScoreLimit:     3,
		PlayersPerTeam: 3,
		KickMode:       netconfig.KickClassic,
		GoalPauseTicks: netconfig.StepsPerSecond, // ~1s

		BodyRestitution: 0.7,

		Player: PlayerConfig{
			Radius:        15,
			Mass:          5,
			Damping:       0.96,
			MaxSpeed:      180,
			Acceleration:  600,
			KickStrength:  500,
			KickMargin:    4,
			ChargeTime:    1.2,
			ChargeFloor:   0.2,
			ChargingSpeed: 0.6,
		},
		Ball: BallConfig{
			Radius:  10,
			Mass:    1,
			Damping: 0.99,
		},
	}
}
