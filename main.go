package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openpitch/kickoff-mp/client"
	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/input"
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
	"github.com/openpitch/kickoff-mp/shared/protocol"
)

func main() {
	addr := flag.String("addr", "localhost:7373", "Server address")
	name := flag.String("name", "player", "Player name")
	team := flag.String("team", "", "Preferred team: red, blue or spectator")
	version := flag.String("version", "", "Client version sent to the server")
	configPath := flag.String("config", "", "Match config file, must match the server's")
	pitchPath := flag.String("pitch", "", "Pitch TMX file (empty = built-in stadium)")
	source := flag.String("source", "chase", "Input source: idle, chase, hold, or tape:<name>")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pt := pitch.Default()
	if *pitchPath != "" {
		pt, err = pitch.Load(os.DirFS(filepath.Dir(*pitchPath)), filepath.Base(*pitchPath))
		if err != nil {
			log.Fatal().Err(err).Str("path", *pitchPath).Msg("failed to load pitch")
		}
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatal().Err(err).Msg("failed to register components")
	}

	gc := client.New(client.Options{
		Address:    *addr,
		Version:    *version,
		PlayerName: *name,
		Team:       parseTeam(*team),
		Cfg:        cfg,
		Pitch:      pt,
	})

	src, err := buildSource(*source, gc, cfg, pt)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build input source")
	}
	gc.SetSource(src)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := gc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("client stopped")
	}
}

func parseTeam(s string) netconfig.Team {
	switch strings.ToLower(s) {
	case "red":
		return netconfig.TeamRed
	case "blue":
		return netconfig.TeamBlue
	default:
		return netconfig.TeamSpectator
	}
}

// buildSource resolves the -source flag into an input source. Strategy
// sources perceive the world through the client's reconciled session view.
func buildSource(kind string, gc *client.GameClient, cfg config.MatchConfig, pt *pitch.Pitch) (input.Source, error) {
	if tapeName, ok := strings.CutPrefix(kind, "tape:"); ok {
		store, err := input.OpenTapeStore("kickoff-mp")
		if err != nil {
			return nil, err
		}
		data, err := store.Load(tapeName)
		if err != nil {
			return nil, err
		}
		return input.NewTape(data), nil
	}

	switch kind {
	case "idle":
		return &input.Static{}, nil
	case "hold":
		return input.NewStrategy(input.StratHoldPosition, perceiveVia(gc, cfg, pt)), nil
	case "chase":
		return input.NewStrategy(input.StratChaseBall, perceiveVia(gc, cfg, pt)), nil
	default:
		return nil, errors.New("unknown input source " + kind)
	}
}

func perceiveVia(gc *client.GameClient, cfg config.MatchConfig, pt *pitch.Pitch) func() input.Perception {
	return func() input.Perception {
		s := gc.Session()
		if s == nil {
			return input.Perception{}
		}

		per := input.Perception{
			KickRange: cfg.Player.Radius + cfg.Ball.Radius + cfg.Player.KickMargin,
		}
		if self := s.Entity(s.LocalID); self != nil {
			per.Self = self.Render
			per.SelfVel = self.Vel
			per.Anchor = self.Render
		}
		if ball := s.Ball(); ball != nil {
			per.Ball = ball.Render
			per.BallVel = ball.Vel
		}

		var team netconfig.Team
		if self := s.Entity(s.LocalID); self != nil && self.State.Player != nil {
			team = self.State.Player.Team
		}
		for _, g := range pt.Goals {
			center := gamemath.Lerp(g.P1, g.P2, 0.5)
			if g.Team == team {
				per.OwnGoal = center
			} else {
				per.TargetGoal = center
			}
		}
		return per
	}
}
