package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/input"
	"github.com/openpitch/kickoff-mp/server/core"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
	"github.com/openpitch/kickoff-mp/shared/protocol"
	"github.com/openpitch/kickoff-mp/sim"
)

func main() {
	port := flag.Uint("port", 7373, "Server port")
	tickRate := flag.Int("tickrate", netconfig.StepsPerSecond, "Snapshot broadcasts per second")
	name := flag.String("name", "Kickoff Server", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	configPath := flag.String("config", "", "Match config file (yaml/toml/json)")
	pitchPath := flag.String("pitch", "", "Pitch TMX file (empty = built-in stadium)")
	botsPerTeam := flag.Int("bots", 0, "Bots to seed on each team")
	masterURL := flag.String("master", "", "Master server URL (empty = no listing)")
	address := flag.String("address", "", "Public address to advertise to the master")
	region := flag.String("region", "", "Region label for the master listing")
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

	server := core.NewServer(cfg, pt, *name, *version, *tickRate)
	seedBots(server, *botsPerTeam)

	var registration *core.Registration
	if *masterURL != "" {
		adv := *address
		if adv == "" {
			adv = fmt.Sprintf("localhost:%d", *port)
		}
		registration = core.NewRegistration(*masterURL, *name, adv, *version, *region, server)
		registration.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("shutting down")
		if registration != nil {
			registration.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Info().Str("name", *name).Uint("port", *port).Int("tickRate", *tickRate).
		Str("pitch", pt.Name).Msg("starting server")
	if err := server.Start(*port); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// seedBots fills both rosters with simple strategy bots: one chaser per
// team, the rest holding their spawn positions.
func seedBots(server *core.Server, perTeam int) {
	for _, team := range []netconfig.Team{netconfig.TeamRed, netconfig.TeamBlue} {
		for i := 0; i < perTeam; i++ {
			strat := input.StratHoldPosition
			if i == 0 {
				strat = input.StratChaseBall
			}
			spec := sim.BotSpec{Kind: sim.BotStrategy, Strategy: strat}
			if err := server.AddBot(team, spec); err != nil {
				log.Warn().Err(err).Str("team", team.String()).Msg("could not add bot")
			}
		}
	}
}
