package netcomponents

import (
	"github.com/yohamta/donburi"

	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

type NetPlayerStateData struct {
	Name         string
	Team         netconfig.Team
	KickCharge   float64 // 0.0-1.0 while charging, for client VFX
	Charging     bool
	LastSequence uint32 // Last input sequence processed by the server (for prediction reconciliation)
	IsLocal      bool   // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
