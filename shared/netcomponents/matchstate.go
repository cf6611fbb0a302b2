package netcomponents

import (
	"github.com/yohamta/donburi"

	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

type NetMatchStateData struct {
	ScoreRed  int
	ScoreBlue int
	Elapsed   float64
	Phase     netconfig.MatchPhase
	Winner    netconfig.Team
	KickMode  netconfig.KickMode
}

var NetMatchState = donburi.NewComponentType[NetMatchStateData]()
