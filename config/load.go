package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("match.timeLimit", d.TimeLimit)
	v.SetDefault("match.scoreLimit", d.ScoreLimit)
	v.SetDefault("match.playersPerTeam", d.PlayersPerTeam)
	v.SetDefault("match.kickMode", d.KickMode.String())

	v.SetDefault("player.radius", d.Player.Radius)
	v.SetDefault("player.mass", d.Player.Mass)
	v.SetDefault("player.damping", d.Player.Damping)
	v.SetDefault("player.maxSpeed", d.Player.MaxSpeed)
	v.SetDefault("player.acceleration", d.Player.Acceleration)
	v.SetDefault("player.kickStrength", d.Player.KickStrength)
	v.SetDefault("player.chargingSpeed", d.Player.ChargingSpeed)

	v.SetDefault("ball.radius", d.Ball.Radius)
	v.SetDefault("ball.mass", d.Ball.Mass)
	v.SetDefault("ball.damping", d.Ball.Damping)
}

// Load reads a match configuration file (yaml/toml/json, decided by
// extension). An empty path skips the file and applies defaults; a named
// file must exist and parse.
func Load(path string) (MatchConfig, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return MatchConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Default()
	cfg.TimeLimit = v.GetFloat64("match.timeLimit")
	cfg.ScoreLimit = v.GetInt("match.scoreLimit")
	cfg.PlayersPerTeam = v.GetInt("match.playersPerTeam")
	switch v.GetString("match.kickMode") {
	case "chargeable":
		cfg.KickMode = netconfig.KickChargeable
	case "classic", "":
		cfg.KickMode = netconfig.KickClassic
	default:
		return MatchConfig{}, fmt.Errorf("unknown kick mode %q", v.GetString("match.kickMode"))
	}

	cfg.Player.Radius = v.GetFloat64("player.radius")
	cfg.Player.Mass = v.GetFloat64("player.mass")
	cfg.Player.Damping = v.GetFloat64("player.damping")
	cfg.Player.MaxSpeed = v.GetFloat64("player.maxSpeed")
	cfg.Player.Acceleration = v.GetFloat64("player.acceleration")
	cfg.Player.KickStrength = v.GetFloat64("player.kickStrength")
	cfg.Player.ChargingSpeed = v.GetFloat64("player.chargingSpeed")

	cfg.Ball.Radius = v.GetFloat64("ball.radius")
	cfg.Ball.Mass = v.GetFloat64("ball.mass")
	cfg.Ball.Damping = v.GetFloat64("ball.damping")

	return cfg, nil
}
