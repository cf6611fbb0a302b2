package messages

import "github.com/openpitch/kickoff-mp/shared/netconfig"

// ConfigUpdate re-syncs the prediction-relevant config subset mid-match.
// Remote participants fold it into their local physics settings so predicted
// and authoritative trajectories keep agreeing.
type ConfigUpdate struct {
	KickMode     netconfig.KickMode
	KickStrength float64
	BallRadius   float64
	BallMass     float64
	BallDamping  float64
}
