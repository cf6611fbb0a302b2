package pitch

import (
	"os"
	"testing"

	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

func TestDefaultPitchGeometry(t *testing.T) {
	p := Default()

	if len(p.Goals) != 2 {
		t.Fatalf("default pitch has %d goals, want 2", len(p.Goals))
	}
	if p.Goals[0].Team == p.Goals[1].Team {
		t.Fatal("both goals belong to the same team")
	}
	if len(p.Segments) == 0 {
		t.Fatal("default pitch has no segments")
	}
	// Every segment normal must be unit length: resolution math assumes it.
	for i, s := range p.Segments {
		l := s.Normal.Len()
		if l < 0.999 || l > 1.001 {
			t.Fatalf("segment %d normal length = %f, want 1", i, l)
		}
	}
	if p.BallSpawn.X != p.Width/2 || p.BallSpawn.Y != p.Height/2 {
		t.Fatalf("ball spawn %+v not centered", p.BallSpawn)
	}
}

func TestSpawnForCyclesSpawnPoints(t *testing.T) {
	p := Default()

	a := p.SpawnFor(netconfig.TeamRed, 0)
	b := p.SpawnFor(netconfig.TeamRed, len(p.RedSpawns))
	if a != b {
		t.Fatalf("spawn assignment should cycle: %+v vs %+v", a, b)
	}
	if p.SpawnFor(netconfig.TeamRed, 0) == p.SpawnFor(netconfig.TeamBlue, 0) {
		t.Fatal("red and blue share a spawn point")
	}
}

func TestLoadTMXPitch(t *testing.T) {
	p, err := Load(os.DirFS("testdata"), "arena.tmx")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if p.Name != "arena" {
		t.Fatalf("name = %q, want arena", p.Name)
	}
	if p.Width != 848 || p.Height != 528 {
		t.Fatalf("size = %fx%f, want 848x528", p.Width, p.Height)
	}
	// The border polyline has 5 points, so 4 segments.
	if len(p.Segments) != 4 {
		t.Fatalf("segments = %d, want 4", len(p.Segments))
	}
	for i, s := range p.Segments {
		if s.Restitution != 0.8 {
			t.Fatalf("segment %d restitution = %f, want 0.8", i, s.Restitution)
		}
		if !s.PlayerCollides {
			t.Fatalf("segment %d should collide with players", i)
		}
	}

	if len(p.Goals) != 2 {
		t.Fatalf("goals = %d, want 2", len(p.Goals))
	}
	if p.Goals[0].Team != netconfig.TeamRed || p.Goals[1].Team != netconfig.TeamBlue {
		t.Fatalf("goal teams = %v/%v, want red/blue", p.Goals[0].Team, p.Goals[1].Team)
	}

	if p.BallSpawn.X != 424 || p.BallSpawn.Y != 264 {
		t.Fatalf("ball spawn = %+v, want (424,264)", p.BallSpawn)
	}
	if len(p.RedSpawns) != 1 || len(p.BlueSpawns) != 1 {
		t.Fatalf("spawns red=%d blue=%d, want 1 each", len(p.RedSpawns), len(p.BlueSpawns))
	}
}

func TestLoadAllFindsPitches(t *testing.T) {
	pitches, names, err := LoadAll(os.DirFS("."), "testdata")
	if err != nil {
		t.Fatalf("loadall: %v", err)
	}
	if len(names) != 1 || names[0] != "arena" {
		t.Fatalf("names = %v, want [arena]", names)
	}
	if pitches["arena"] == nil {
		t.Fatal("arena pitch missing from map")
	}
}
