// Package pitch provides static match geometry: wall segments, goal regions
// and spawn points. Geometry is loaded once per match, either from the
// built-in default pitch or from a TMX map file shared between client and
// server.
package pitch

import (
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

// Segment is a static wall. The normal points into the playfield.
type Segment struct {
	P1, P2      gamemath.Vec2
	Normal      gamemath.Vec2
	Restitution float64
	// PlayerCollides is false for segments only the ball bounces off
	// (e.g. goal nets players may walk through).
	PlayerCollides bool
}

// Goal is the region defended by Team. A ball inside it scores for the
// opposing team.
type Goal struct {
	P1, P2 gamemath.Vec2 // Opposite corners of the goal mouth
	Team   netconfig.Team
}

// Pitch aggregates all static geometry for one map.
type Pitch struct {
	Name          string
	Width, Height float64
	Segments      []Segment
	Goals         []Goal

	BallSpawn  gamemath.Vec2
	RedSpawns  []gamemath.Vec2
	BlueSpawns []gamemath.Vec2
}

// SpawnFor returns the spawn point for the n-th player of a team, cycling
// when a team has more players than spawn points.
func (p *Pitch) SpawnFor(team netconfig.Team, n int) gamemath.Vec2 {
	var spawns []gamemath.Vec2
	switch team {
	case netconfig.TeamRed:
		spawns = p.RedSpawns
	case netconfig.TeamBlue:
		spawns = p.BlueSpawns
	}
	if len(spawns) == 0 {
		return gamemath.Vec2{X: p.Width / 2, Y: p.Height / 2}
	}
	return spawns[n%len(spawns)]
}
