package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

func TestLoadEmptyPathAppliesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("empty path should yield defaults, got %+v", cfg)
	}
}

func TestLoadMissingFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("a named file that does not exist should fail")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.yaml")
	data := []byte("match:\n  scoreLimit: 5\n  kickMode: chargeable\nball:\n  radius: 14\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ScoreLimit != 5 || cfg.KickMode != netconfig.KickChargeable {
		t.Fatalf("match overrides not applied: %+v", cfg)
	}
	if cfg.Ball.Radius != 14 {
		t.Fatalf("ball radius = %v, want 14", cfg.Ball.Radius)
	}
	// Keys the file omits keep their defaults.
	if cfg.Player.MaxSpeed != Default().Player.MaxSpeed {
		t.Fatalf("unset keys should keep defaults, maxSpeed = %v", cfg.Player.MaxSpeed)
	}
}
