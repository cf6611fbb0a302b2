package sim

import "github.com/openpitch/kickoff-mp/shared/netconfig"

// Stepper converts variable frame times into a whole number of fixed
// simulation steps. The leftover fraction is exposed for render
// interpolation.
type Stepper struct {
	accumulator float64
}

// Advance adds elapsed wall time and returns how many fixed steps to run.
// Elapsed time beyond MaxFrameTime is discarded so a stall never causes a
// catch-up spiral.
func (s *Stepper) Advance(elapsed float64) int {
	if elapsed > netconfig.MaxFrameTime {
		elapsed = netconfig.MaxFrameTime
	}
	s.accumulator += elapsed

	steps := 0
	for s.accumulator >= netconfig.FixedStep {
		s.accumulator -= netconfig.FixedStep
		steps++
	}
	return steps
}

// Alpha is the fraction [0,1) of the next step already accumulated, used to
// blend the previous and current states when rendering.
func (s *Stepper) Alpha() float64 {
	return s.accumulator / netconfig.FixedStep
}

// Reset drops accumulated time, e.g. after a scene change.
func (s *Stepper) Reset() {
	s.accumulator = 0
}
