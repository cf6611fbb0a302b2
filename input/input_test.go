package input

import (
	"math"
	"testing"
)

func TestStateDirection(t *testing.T) {
	cases := []struct {
		name string
		s    State
		want Direction
	}{
		{"none", State{}, DirNone},
		{"up", State{Up: true}, DirN},
		{"down-right", State{Down: true, Right: true}, DirSE},
		{"left", State{Left: true}, DirW},
		{"opposing cancel", State{Left: true, Right: true, Up: true}, DirN},
		{"all cancel", State{Up: true, Down: true, Left: true, Right: true}, DirNone},
	}
	for _, tc := range cases {
		if got := tc.s.Direction(); got != tc.want {
			t.Fatalf("%s: direction = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDirectionVecUnitLength(t *testing.T) {
	for d := DirN; d <= DirNW; d++ {
		l := d.Vec().Len()
		if math.Abs(l-1) > 1e-12 {
			t.Fatalf("direction %d vector length = %f, want 1", d, l)
		}
	}
	if DirNone.Vec().Len() != 0 {
		t.Fatal("DirNone should have a zero vector")
	}
}

func TestFromDirectionRoundTrip(t *testing.T) {
	for d := DirNone; d <= DirNW; d++ {
		if got := FromDirection(d).Direction(); got != d {
			t.Fatalf("round trip of %v gave %v", d, got)
		}
	}
}
