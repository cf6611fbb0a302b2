// Package input abstracts where player input comes from. The simulation and
// prediction code consume the Source interface and never branch on whether a
// human, a scripted timeline, a bot strategy or a recorded tape produced it.
package input

import (
	"math"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
)

// Direction is one of the eight compass directions, or none.
type Direction int

const (
	DirNone Direction = iota
	DirN
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

var dirVecs = [...]gamemath.Vec2{
	DirNone: {},
	DirN:    {X: 0, Y: -1},
	DirNE:   {X: math.Sqrt2 / 2, Y: -math.Sqrt2 / 2},
	DirE:    {X: 1, Y: 0},
	DirSE:   {X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	DirS:    {X: 0, Y: 1},
	DirSW:   {X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	DirW:    {X: -1, Y: 0},
	DirNW:   {X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2},
}

// Vec returns the unit movement vector for the direction. Diagonals are
// normalized so diagonal movement is not faster. Y grows downward (screen
// coordinates), so north is -Y.
func (d Direction) Vec() gamemath.Vec2 {
	if d < DirNone || d > DirNW {
		return gamemath.Vec2{}
	}
	return dirVecs[d]
}

// State is a flat snapshot of the five discrete input flags.
type State struct {
	Up, Down, Left, Right bool
	Kick                  bool
}

// Direction collapses the four movement flags into a nine-valued compass
// direction. Opposing flags cancel.
func (s State) Direction() Direction {
	dx, dy := 0, 0
	if s.Left && !s.Right {
		dx = -1
	} else if s.Right && !s.Left {
		dx = 1
	}
	if s.Up && !s.Down {
		dy = -1
	} else if s.Down && !s.Up {
		dy = 1
	}
	switch {
	case dx == 0 && dy == -1:
		return DirN
	case dx == 1 && dy == -1:
		return DirNE
	case dx == 1 && dy == 0:
		return DirE
	case dx == 1 && dy == 1:
		return DirSE
	case dx == 0 && dy == 1:
		return DirS
	case dx == -1 && dy == 1:
		return DirSW
	case dx == -1 && dy == 0:
		return DirW
	case dx == -1 && dy == -1:
		return DirNW
	default:
		return DirNone
	}
}

// FromDirection expands a compass direction back into movement flags.
func FromDirection(d Direction) State {
	switch d {
	case DirN:
		return State{Up: true}
	case DirNE:
		return State{Up: true, Right: true}
	case DirE:
		return State{Right: true}
	case DirSE:
		return State{Down: true, Right: true}
	case DirS:
		return State{Down: true}
	case DirSW:
		return State{Down: true, Left: true}
	case DirW:
		return State{Left: true}
	case DirNW:
		return State{Up: true, Left: true}
	default:
		return State{}
	}
}

// Source produces input for exactly one player. Advance is called once per
// fixed simulation tick with the step size and the absolute simulation time;
// Direction and Kick report the state after the last Advance. Reset rewinds
// stateful sources (tapes, patrol scripts) to their start.
type Source interface {
	Direction() Direction
	Kick() bool
	Advance(dt, simTime float64)
	Reset()
}

// Static is a fixed input, useful for idle bots and tests.
type Static struct {
	Dir      Direction
	KickHeld bool
}

func (s *Static) Direction() Direction { return s.Dir }
func (s *Static) Kick() bool           { return s.KickHeld }
func (s *Static) Advance(_, _ float64) {}
func (s *Static) Reset()               {}
