package messages

import (
	"github.com/leap-fish/necs/esync"

	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

// JoinRequest is sent by a client after connecting to request joining the match.
type JoinRequest struct {
	Version        string
	PlayerName     string
	ReconnectToken string
	// PreferredTeam is a hint; the server balances teams and may override it.
	PreferredTeam netconfig.Team
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	NetworkID      esync.NetworkId
	ReconnectToken string
	ServerName     string
	TickRate       int
	Team           netconfig.Team
	PitchName      string
	// Config is the prediction-relevant physics subset in force at join time.
	Config ConfigUpdate
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
