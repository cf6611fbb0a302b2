package sim

import (
	"math"
	"testing"

	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

func TestStepperAccumulates(t *testing.T) {
	var s Stepper

	if got := s.Advance(netconfig.FixedStep * 2.5); got != 2 {
		t.Fatalf("2.5 steps of elapsed time should yield 2 steps, got %d", got)
	}
	if a := s.Alpha(); math.Abs(a-0.5) > 1e-9 {
		t.Fatalf("alpha = %v, want 0.5", a)
	}

	if got := s.Advance(netconfig.FixedStep * 0.5); got != 1 {
		t.Fatalf("leftover should roll into the next frame, got %d steps", got)
	}
}

func TestStepperClampsLongFrames(t *testing.T) {
	var s Stepper

	got := s.Advance(5.0)
	want := int(netconfig.MaxFrameTime * netconfig.StepsPerSecond)
	if got != want {
		t.Fatalf("stalled frame should clamp to %d steps, got %d", want, got)
	}
}

func TestStepperReset(t *testing.T) {
	var s Stepper
	s.Advance(netconfig.FixedStep * 0.9)
	s.Reset()
	if a := s.Alpha(); a != 0 {
		t.Fatalf("alpha after reset = %v, want 0", a)
	}
	if got := s.Advance(netconfig.FixedStep * 0.9); got != 0 {
		t.Fatalf("reset should drop accumulated time, got %d steps", got)
	}
}
