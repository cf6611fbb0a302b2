package core

import (
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/rs/zerolog/log"

	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/sim"
)

// GameLoop drives the authoritative match at a fixed simulation rate and
// broadcasts state after every batch of steps. The wall-clock tick rate may
// be lower than the simulation rate; the stepper accumulator keeps the
// simulation advancing in exact fixed increments regardless.
type GameLoop struct {
	server   *Server
	tickRate int
	stepper  *sim.Stepper
	stopChan chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	if tickRate <= 0 {
		tickRate = netconfig.StepsPerSecond
	}
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stepper:  &sim.Stepper{},
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Info().Int("tickRate", g.tickRate).Msg("game loop started")

	last := time.Now()
	for {
		select {
		case <-g.stopChan:
			log.Info().Msg("game loop stopped")
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			g.tick(elapsed)
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) tick(elapsed float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered in game loop tick")
		}
	}()

	g.server.processCommands()

	steps := g.stepper.Advance(elapsed)
	for i := 0; i < steps; i++ {
		g.server.match.Step(netconfig.FixedStep)
	}
	if steps == 0 {
		return
	}

	g.server.mirrorMatchState()

	if err := srvsync.DoSync(); err != nil {
		log.Warn().Err(err).Msg("snapshot sync failed")
	}
}
