package netsync

import (
	"github.com/leap-fish/necs/esync"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/netcomponents"
)

// EntityState is one entity's authoritative state decoded from a snapshot.
type EntityState struct {
	ID     esync.NetworkId
	Pos    gamemath.Vec2
	Vel    gamemath.Vec2
	Player *netcomponents.NetPlayerStateData
	Ball   *netcomponents.NetBallData
}

// TargetState is the latest snapshot reshaped into an id-keyed lookup: the
// reconciliation and interpolation target, distinct from the participant's
// own predicted state.
type TargetState struct {
	Entities map[esync.NetworkId]EntityState
	Match    *netcomponents.NetMatchStateData
}

// DecodeSnapshot reshapes a wire snapshot into a TargetState. Components
// that fail to decode are skipped and missing fields keep their zero values,
// so a partial snapshot degrades the view instead of aborting the match.
func DecodeSnapshot(snapshot esync.WorldSnapshot) TargetState {
	ts := TargetState{Entities: make(map[esync.NetworkId]EntityState, len(snapshot))}

	for _, ent := range snapshot {
		es := EntityState{ID: ent.Id}
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetPositionData:
				es.Pos = gamemath.Vec2{X: v.X, Y: v.Y}
			case netcomponents.NetVelocityData:
				es.Vel = gamemath.Vec2{X: v.VelX, Y: v.VelY}
			case netcomponents.NetPlayerStateData:
				cp := v
				es.Player = &cp
			case netcomponents.NetBallData:
				cp := v
				es.Ball = &cp
			case netcomponents.NetMatchStateData:
				cp := v
				ts.Match = &cp
			}
		}
		ts.Entities[ent.Id] = es
	}
	return ts
}
