// Package keyboard provides the human-driven input source. It is the only
// input package that imports ebiten, so headless binaries (dedicated server,
// bots, tests) never link the graphics stack.
package keyboard

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/openpitch/kickoff-mp/input"
)

// Bindings maps each discrete input to one or more keys.
type Bindings struct {
	Up    []ebiten.Key
	Down  []ebiten.Key
	Left  []ebiten.Key
	Right []ebiten.Key
	Kick  []ebiten.Key
}

// DefaultBindings is WASD plus arrow keys, space to kick.
func DefaultBindings() Bindings {
	return Bindings{
		Up:    []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Down:  []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Kick:  []ebiten.Key{ebiten.KeySpace, ebiten.KeyX},
	}
}

// Source polls the keyboard once per Advance and exposes the result through
// the shared input contract.
type Source struct {
	bindings Bindings
	state    input.State
}

func New(bindings Bindings) *Source {
	return &Source{bindings: bindings}
}

func (s *Source) Direction() input.Direction { return s.state.Direction() }
func (s *Source) Kick() bool                 { return s.state.Kick }

func (s *Source) Advance(_, _ float64) {
	s.state = input.State{
		Up:    anyKeyPressed(s.bindings.Up),
		Down:  anyKeyPressed(s.bindings.Down),
		Left:  anyKeyPressed(s.bindings.Left),
		Right: anyKeyPressed(s.bindings.Right),
		Kick:  anyKeyPressed(s.bindings.Kick),
	}
}

func (s *Source) Reset() {
	s.state = input.State{}
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
