// Package client runs a headless match participant: it connects, joins,
// predicts its own movement, and keeps a reconciled world view. Renderers
// and bots embed it and read the session view each frame.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/input"
	"github.com/openpitch/kickoff-mp/netsync"
	"github.com/openpitch/kickoff-mp/network"
	"github.com/openpitch/kickoff-mp/shared/messages"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
	"github.com/openpitch/kickoff-mp/sim"
)

const joinTimeout = 10 * time.Second

// inputHeartbeatTicks bounds the gap between input sends (~50 ms at 60
// steps/s) so the authority never acts on stale state for long.
const inputHeartbeatTicks = 3

// Options configures one client run.
type Options struct {
	Address    string
	Version    string
	PlayerName string
	Team       netconfig.Team

	// Source supplies the local player's input each fixed step. Ignored for
	// spectators.
	Source input.Source

	// Cfg must match the server's physics settings for prediction to agree
	// with the authority.
	Cfg   config.MatchConfig
	Pitch *pitch.Pitch
}

// GameClient drives the network connection and the sync session.
type GameClient struct {
	opts    Options
	net     *network.Client
	session *netsync.Session
	stepper *sim.Stepper
	simTime float64

	lastSent       input.State
	ticksSinceSend int
}

func New(opts Options) *GameClient {
	if opts.Source == nil {
		opts.Source = &input.Static{}
	}
	return &GameClient{
		opts:    opts,
		net:     network.NewClient(),
		stepper: &sim.Stepper{},
	}
}

// SetSource swaps the input source. Must be called before Run; strategy
// sources that perceive through the session are built after New and
// installed here.
func (g *GameClient) SetSource(src input.Source) {
	if src != nil {
		g.opts.Source = src
	}
}

// Session exposes the world view once Run has joined the match.
func (g *GameClient) Session() *netsync.Session {
	return g.session
}

// Network exposes the underlying connection for event draining.
func (g *GameClient) Network() *network.Client {
	return g.net
}

// Run connects, joins, then ticks until the context is canceled or the
// connection drops.
func (g *GameClient) Run(ctx context.Context) error {
	g.net.Connect(g.opts.Address, g.opts.Version, g.opts.PlayerName, g.opts.Team)
	defer g.net.Disconnect()

	if err := g.waitForJoin(ctx); err != nil {
		return err
	}

	role := g.roleForTeam(g.net.Team())
	g.session = netsync.NewSession(g.opts.Cfg, g.opts.Pitch, role)
	g.session.LocalID = g.net.NetworkID()
	g.session.ApplyConfigUpdate(g.net.ServerConfig())

	log.Info().Str("role", role.Name()).Str("team", g.net.Team().String()).
		Uint("networkId", uint(g.net.NetworkID())).
		Msg("joined match")

	ticker := time.NewTicker(time.Second / netconfig.StepsPerSecond)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			if err := g.tick(elapsed); err != nil {
				return err
			}
		}
	}
}

func (g *GameClient) tick(elapsed float64) error {
	if g.net.State() == network.StateError {
		return fmt.Errorf("connection lost: %w", g.net.LastError())
	}
	if g.net.State() == network.StateDisconnected {
		return fmt.Errorf("disconnected from server")
	}

	if snap := g.net.LatestSnapshot(); snap != nil {
		g.session.HandleSnapshot(*snap)
	}
	for _, u := range g.net.DrainConfigUpdates() {
		g.session.ApplyConfigUpdate(u)
		log.Info().Str("kickMode", u.KickMode.String()).Msg("config re-synced")
	}
	g.logEvents()

	steps := g.stepper.Advance(elapsed)
	for i := 0; i < steps; i++ {
		g.step()
	}
	return nil
}

// step samples input, ships it to the authority, and advances prediction by
// one fixed step.
func (g *GameClient) step() {
	g.simTime += netconfig.FixedStep
	g.opts.Source.Advance(netconfig.FixedStep, g.simTime)

	st := input.FromDirection(g.opts.Source.Direction())
	st.Kick = g.opts.Source.Kick()

	seq := g.session.Predictor.Buffer.NextSeq()
	in := messages.FromState(seq, st, time.Now().UnixMilli())

	if _, ok := g.session.Role.(netsync.PredictingParticipant); ok {
		in.ChargingKick = g.session.Predictor.Charging()
		in.KickCharge = g.session.Predictor.Charge()

		// Send on change, on the heartbeat, and always on kick edges (kick
		// is part of the compared state).
		g.ticksSinceSend++
		if st != g.lastSent || g.ticksSinceSend >= inputHeartbeatTicks {
			if err := g.net.SendMessage(in); err != nil {
				log.Warn().Err(err).Msg("input send failed")
			}
			g.lastSent = st
			g.ticksSinceSend = 0
		}
	}
	g.session.Advance(in, netconfig.FixedStep)
}

func (g *GameClient) waitForJoin(ctx context.Context) error {
	deadline := time.After(joinTimeout)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("timed out joining %s", g.opts.Address)
		case <-ticker.C:
			switch g.net.State() {
			case network.StateJoinedMatch:
				return nil
			case network.StateError:
				return fmt.Errorf("join failed: %w", g.net.LastError())
			}
		}
	}
}

func (g *GameClient) roleForTeam(team netconfig.Team) netsync.Role {
	if team == netconfig.TeamSpectator {
		return netsync.Spectator{}
	}
	return netsync.PredictingParticipant{}
}

func (g *GameClient) logEvents() {
	for _, ev := range g.net.DrainGoalEvents() {
		log.Info().Str("team", ev.Team.String()).Uint("scorer", ev.ScorerID).
			Int("red", ev.ScoreRed).Int("blue", ev.ScoreBlue).Msg("goal")
	}
	for _, ev := range g.net.DrainPhaseEvents() {
		log.Info().Str("phase", ev.Phase.String()).Str("winner", ev.Winner.String()).
			Msg("match phase changed")
	}
	for _, ev := range g.net.DrainKickEvents() {
		log.Debug().Uint("player", ev.PlayerID).Float64("strength", ev.Strength).
			Msg("kick")
	}
	for _, ev := range g.net.DrainJoinedEvents() {
		log.Info().Str("name", ev.Name).Str("team", ev.Team.String()).Msg("player joined")
	}
	for _, ev := range g.net.DrainLeftEvents() {
		log.Info().Uint("networkId", ev.NetworkID).Msg("player left")
	}
}
