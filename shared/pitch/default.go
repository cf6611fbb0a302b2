package pitch

import (
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

const (
	defaultWidth  = 840
	defaultHeight = 520

	wallRestitution = 0.85
	goalMouthHeight = 120
	goalDepth       = 24
)

// Default returns the built-in stadium so matches can run without any map
// assets: a walled rectangle with a goal mouth centered on each end.
func Default() *Pitch {
	w, h := float64(defaultWidth), float64(defaultHeight)
	mouthTop := (h - goalMouthHeight) / 2
	mouthBot := mouthTop + goalMouthHeight

	wall := func(x1, y1, x2, y2, nx, ny float64) Segment {
		return Segment{
			P1:             gamemath.Vec2{X: x1, Y: y1},
			P2:             gamemath.Vec2{X: x2, Y: y2},
			Normal:         gamemath.Vec2{X: nx, Y: ny},
			Restitution:    wallRestitution,
			PlayerCollides: true,
		}
	}

	p := &Pitch{
		Name:   "stadium",
		Width:  w,
		Height: h,
		Segments: []Segment{
			wall(0, 0, w, 0, 0, 1),  // top
			wall(0, h, w, h, 0, -1), // bottom

			// Left wall split around the goal mouth
			wall(0, 0, 0, mouthTop, 1, 0),
			wall(0, mouthBot, 0, h, 1, 0),
			// Right wall split around the goal mouth
			wall(w, 0, w, mouthTop, -1, 0),
			wall(w, mouthBot, w, h, -1, 0),
		},
		Goals: []Goal{
			{
				P1:   gamemath.Vec2{X: -goalDepth, Y: mouthTop},
				P2:   gamemath.Vec2{X: 0, Y: mouthBot},
				Team: netconfig.TeamRed,
			},
			{
				P1:   gamemath.Vec2{X: w, Y: mouthTop},
				P2:   gamemath.Vec2{X: w + goalDepth, Y: mouthBot},
				Team: netconfig.TeamBlue,
			},
		},
		BallSpawn: gamemath.Vec2{X: w / 2, Y: h / 2},
		RedSpawns: []gamemath.Vec2{
			{X: w * 0.25, Y: h / 2},
			{X: w * 0.15, Y: h * 0.3},
			{X: w * 0.15, Y: h * 0.7},
		},
		BlueSpawns: []gamemath.Vec2{
			{X: w * 0.75, Y: h / 2},
			{X: w * 0.85, Y: h * 0.3},
			{X: w * 0.85, Y: h * 0.7},
		},
	}

	// Nets behind each goal mouth: ball-only segments so a scored ball stays
	// inside the goal region instead of flying off the map.
	net := func(x1, y1, x2, y2, nx, ny float64) Segment {
		return Segment{
			P1:          gamemath.Vec2{X: x1, Y: y1},
			P2:          gamemath.Vec2{X: x2, Y: y2},
			Normal:      gamemath.Vec2{X: nx, Y: ny},
			Restitution: 0.1,
		}
	}
	p.Segments = append(p.Segments,
		net(-goalDepth, mouthTop, -goalDepth, mouthBot, 1, 0),
		net(-goalDepth, mouthTop, 0, mouthTop, 0, 1),
		net(-goalDepth, mouthBot, 0, mouthBot, 0, -1),
		net(w+goalDepth, mouthTop, w+goalDepth, mouthBot, -1, 0),
		net(w, mouthTop, w+goalDepth, mouthTop, 0, 1),
		net(w, mouthBot, w+goalDepth, mouthBot, 0, -1),
	)

	return p
}
