package core

import (
	"fmt"
	"sync"

	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/rs/zerolog/log"
	"github.com/yohamta/donburi"

	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/input"
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/messages"
	"github.com/openpitch/kickoff-mp/shared/netcomponents"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
	"github.com/openpitch/kickoff-mp/sim"
)

// clientInfo ties one connection to its match player and input source.
// Spectators have no player or entity; they only receive snapshots.
type clientInfo struct {
	playerID  uint
	entity    donburi.Entity
	remote    *input.Remote
	lastSeq   uint32
	spectator bool
}

// Server owns the authoritative match and all client connections. The match
// is mutated only by the loop goroutine; router callbacks hand input over
// through mutex-protected Remote sources.
type Server struct {
	name    string
	version string

	world     donburi.World
	match     *sim.Match
	loop      *GameLoop
	transport *transports.WsServerTransport

	// commands funnels all match and world mutations onto the loop
	// goroutine; router callbacks only enqueue.
	commands chan func()

	mu           sync.RWMutex
	clients      map[*router.NetworkClient]*clientInfo
	playerEntity map[uint]donburi.Entity
	ballEntity   donburi.Entity
	matchEntity  donburi.Entity
	nextBotID    uint
}

// NewServer creates the authoritative server for one match.
func NewServer(cfg config.MatchConfig, pt *pitch.Pitch, name, version string, tickRate int) *Server {
	world := donburi.NewWorld()

	s := &Server{
		name:         name,
		version:      version,
		world:        world,
		match:        sim.NewMatch(cfg, pt),
		commands:     make(chan func(), 64),
		clients:      make(map[*router.NetworkClient]*clientInfo),
		playerEntity: make(map[uint]donburi.Entity),
		nextBotID:    1_000_000, // far above esync network ids
	}
	s.loop = NewGameLoop(s, tickRate)

	srvsync.UseEsync(world)
	s.createStaticEntities()
	s.hookMatchEvents()
	s.setupRouterCallbacks()

	return s
}

// Start begins the game loop and the WebSocket transport on the given port.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop shuts down the game loop.
func (s *Server) Stop() {
	s.loop.Stop()
}

// Match exposes the authoritative match for the loop and for tests.
func (s *Server) Match() *sim.Match {
	return s.match
}

// AddBot fills one roster slot with a bot player.
func (s *Server) AddBot(team netconfig.Team, spec sim.BotSpec) error {
	s.mu.Lock()
	id := s.nextBotID
	s.nextBotID++
	s.mu.Unlock()

	name := fmt.Sprintf("bot-%d", id-1_000_000)
	if _, err := s.match.AddBot(id, name, team, spec); err != nil {
		return err
	}

	entity, err := s.spawnPlayerEntity(name, team)
	if err != nil {
		s.match.RemovePlayer(id)
		return err
	}

	s.mu.Lock()
	s.playerEntity[id] = entity
	s.mu.Unlock()
	return nil
}

// PlayerCount returns the number of connected human players.
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) createStaticEntities() {
	ball := s.world.Create(netcomponents.NetPosition, netcomponents.NetVelocity, netcomponents.NetBall)
	entry := s.world.Entry(ball)
	netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{
		X: s.match.Ball.Pos.X,
		Y: s.match.Ball.Pos.Y,
	})
	netcomponents.NetBall.SetValue(entry, netcomponents.NetBallData{Radius: s.match.Ball.Radius})
	if err := srvsync.NetworkSync(s.world, &ball,
		srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
		netcomponents.NetBall,
	); err != nil {
		log.Error().Err(err).Msg("failed to sync ball entity")
	}
	s.ballEntity = ball

	match := s.world.Create(netcomponents.NetMatchState)
	matchEntry := s.world.Entry(match)
	netcomponents.NetMatchState.SetValue(matchEntry, netcomponents.NetMatchStateData{
		KickMode: s.match.Cfg.KickMode,
	})
	if err := srvsync.NetworkSync(s.world, &match, netcomponents.NetMatchState); err != nil {
		log.Error().Err(err).Msg("failed to sync match state entity")
	}
	s.matchEntity = match
}

func (s *Server) hookMatchEvents() {
	s.match.Events = sim.Events{
		OnGoal: func(scorer uint, team netconfig.Team) {
			log.Info().Uint("scorer", scorer).Str("team", team.String()).
				Int("red", s.match.ScoreRed).Int("blue", s.match.ScoreBlue).
				Msg("goal scored")
			s.broadcastEvent(messages.GoalEvent{
				ScorerID:  scorer,
				Team:      team,
				ScoreRed:  s.match.ScoreRed,
				ScoreBlue: s.match.ScoreBlue,
			})
		},
		OnKick: func(playerID uint, at gamemath.Vec2, strength float64) {
			s.broadcastEvent(messages.KickEvent{
				PlayerID: playerID,
				X:        at.X,
				Y:        at.Y,
				Strength: strength,
			})
		},
		OnStart: func() {
			log.Info().Msg("match started")
			s.broadcastEvent(messages.MatchPhaseEvent{Phase: netconfig.PhaseRunning})
		},
		OnPause: func() {
			s.broadcastEvent(messages.MatchPhaseEvent{Phase: s.match.Phase})
		},
		OnResume: func() {
			s.broadcastEvent(messages.MatchPhaseEvent{Phase: s.match.Phase})
		},
		OnEnd: func(winner netconfig.Team, red, blue int) {
			log.Info().Str("winner", winner.String()).
				Int("red", red).Int("blue", blue).
				Msg("match finished")
			s.broadcastEvent(messages.MatchPhaseEvent{
				Phase:  netconfig.PhaseFinished,
				Winner: winner,
			})
		},
	}
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Info().Str("client", client.Id()).Msg("client connected")
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(func() { s.onJoinRequest(client, req) })
	})

	router.On(func(client *router.NetworkClient, in messages.PlayerInput) {
		s.onPlayerInput(client, in)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.enqueue(func() { s.onDisconnect(client, err) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Warn().Str("client", client.Id()).Err(err).Msg("client error")
	})
}

func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	if s.version != "" && req.Version != s.version {
		s.reject(client, fmt.Sprintf("version mismatch: server requires %s", s.version))
		return
	}

	team := s.pickTeam(req.PreferredTeam)
	name := req.PlayerName
	if name == "" {
		name = "player"
	}

	if team == netconfig.TeamSpectator {
		s.mu.Lock()
		s.clients[client] = &clientInfo{spectator: true}
		s.mu.Unlock()

		log.Info().Str("client", client.Id()).Str("name", name).Msg("spectator joined")
		s.sendTo(client, messages.JoinAccepted{
			ServerName: s.name,
			TickRate:   s.loop.tickRate,
			Team:       netconfig.TeamSpectator,
			PitchName:  s.match.Pitch.Name,
			Config:     s.currentConfig(),
		})
		return
	}

	entity, err := s.spawnPlayerEntity(name, team)
	if err != nil {
		s.reject(client, "could not spawn player")
		return
	}

	entry := s.world.Entry(entity)
	nid := esync.GetNetworkId(entry)
	if nid == nil {
		s.world.Remove(entity)
		s.reject(client, "could not assign network id")
		return
	}
	playerID := uint(*nid)

	remote := input.NewRemote()
	if _, err := s.match.AddPlayer(playerID, name, team, remote); err != nil {
		s.world.Remove(entity)
		s.reject(client, err.Error())
		return
	}

	s.mu.Lock()
	s.clients[client] = &clientInfo{playerID: playerID, entity: entity, remote: remote}
	s.playerEntity[playerID] = entity
	s.mu.Unlock()

	log.Info().Str("client", client.Id()).Uint("player", playerID).
		Str("team", team.String()).Str("name", name).
		Msg("player joined")

	s.sendTo(client, messages.JoinAccepted{
		NetworkID:  *nid,
		ServerName: s.name,
		TickRate:   s.loop.tickRate,
		Team:       team,
		PitchName:  s.match.Pitch.Name,
		Config:     s.currentConfig(),
	})
	s.broadcastEvent(messages.PlayerJoinedEvent{NetworkID: playerID, Name: name, Team: team})

	if s.match.Phase == netconfig.PhaseIdle && s.readyToStart() {
		s.match.Start()
	}
}

func (s *Server) onPlayerInput(client *router.NetworkClient, in messages.PlayerInput) {
	s.mu.Lock()
	info, ok := s.clients[client]
	if ok && !info.spectator {
		info.remote.Set(in.State())
		if in.Sequence > info.lastSeq {
			info.lastSeq = in.Sequence
		}
	}
	s.mu.Unlock()
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	s.mu.Lock()
	info, ok := s.clients[client]
	if ok {
		delete(s.clients, client)
		if !info.spectator {
			delete(s.playerEntity, info.playerID)
		}
	}
	s.mu.Unlock()

	if !ok || info.spectator {
		log.Info().Str("client", client.Id()).Err(err).Msg("client disconnected")
		return
	}

	log.Info().Str("client", client.Id()).Uint("player", info.playerID).Err(err).
		Msg("participant left")

	s.match.RemovePlayer(info.playerID)
	if s.world.Valid(info.entity) {
		s.world.Remove(info.entity)
	}
	s.broadcastEvent(messages.PlayerLeftEvent{NetworkID: info.playerID})
}

// spawnPlayerEntity creates and network-syncs the donburi mirror entity for
// one player.
func (s *Server) spawnPlayerEntity(name string, team netconfig.Team) (donburi.Entity, error) {
	entity := s.world.Create(
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
	)
	entry := s.world.Entry(entity)
	netcomponents.NetPlayerState.SetValue(entry, netcomponents.NetPlayerStateData{
		Name: name,
		Team: team,
	})

	if err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
		netcomponents.NetPlayerState,
	); err != nil {
		s.world.Remove(entity)
		return 0, err
	}
	return entity, nil
}

// pickTeam balances join requests across teams, honoring the preference when
// the rosters allow it.
func (s *Server) pickTeam(preferred netconfig.Team) netconfig.Team {
	red, blue := 0, 0
	for _, p := range s.match.Players {
		switch p.Team {
		case netconfig.TeamRed:
			red++
		case netconfig.TeamBlue:
			blue++
		}
	}

	limit := s.match.Cfg.PlayersPerTeam
	switch preferred {
	case netconfig.TeamRed:
		if limit == 0 || red < limit {
			return netconfig.TeamRed
		}
	case netconfig.TeamBlue:
		if limit == 0 || blue < limit {
			return netconfig.TeamBlue
		}
	case netconfig.TeamSpectator:
		return netconfig.TeamSpectator
	}

	if red <= blue {
		if limit == 0 || red < limit {
			return netconfig.TeamRed
		}
	}
	if limit == 0 || blue < limit {
		return netconfig.TeamBlue
	}
	return netconfig.TeamSpectator
}

// readyToStart reports whether both teams have at least one player.
func (s *Server) readyToStart() bool {
	red, blue := 0, 0
	for _, p := range s.match.Players {
		switch p.Team {
		case netconfig.TeamRed:
			red++
		case netconfig.TeamBlue:
			blue++
		}
	}
	return red > 0 && blue > 0
}

func (s *Server) reject(client *router.NetworkClient, reason string) {
	log.Warn().Str("client", client.Id()).Str("reason", reason).Msg("join rejected")
	s.sendTo(client, messages.JoinRejected{Reason: reason})
}

func (s *Server) sendTo(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Warn().Str("client", client.Id()).Err(err).Msg("send failed")
	}
}

func (s *Server) broadcastEvent(msg any) {
	s.mu.RLock()
	targets := make([]*router.NetworkClient, 0, len(s.clients))
	for client := range s.clients {
		targets = append(targets, client)
	}
	s.mu.RUnlock()

	for _, client := range targets {
		s.sendTo(client, msg)
	}
}

// UpdateConfig applies a mid-match change to the prediction-relevant config
// subset and re-syncs it to every participant.
func (s *Server) UpdateConfig(update messages.ConfigUpdate) {
	s.enqueue(func() {
		s.match.SetKickMode(update.KickMode)
		if update.KickStrength > 0 {
			s.match.Cfg.Player.KickStrength = update.KickStrength
		}
		if update.BallRadius > 0 {
			s.match.SetBallConfig(config.BallConfig{
				Radius:  update.BallRadius,
				Mass:    update.BallMass,
				Damping: update.BallDamping,
			})
		}
		log.Info().Str("kickMode", s.match.Cfg.KickMode.String()).
			Float64("ballRadius", s.match.Ball.Radius).
			Msg("match config updated")
		s.broadcastEvent(update)
	})
}

// currentConfig snapshots the prediction-relevant config subset. Caller is
// on the loop goroutine.
func (s *Server) currentConfig() messages.ConfigUpdate {
	return messages.ConfigUpdate{
		KickMode:     s.match.Cfg.KickMode,
		KickStrength: s.match.Cfg.Player.KickStrength,
		BallRadius:   s.match.Cfg.Ball.Radius,
		BallMass:     s.match.Cfg.Ball.Mass,
		BallDamping:  s.match.Cfg.Ball.Damping,
	}
}

// enqueue hands a mutation to the loop goroutine. A full queue drops the
// command rather than blocking the router.
func (s *Server) enqueue(fn func()) {
	select {
	case s.commands <- fn:
	default:
		log.Warn().Msg("command queue full, dropping command")
	}
}

// processCommands runs queued mutations. Called by the loop before stepping.
func (s *Server) processCommands() {
	for {
		select {
		case fn := <-s.commands:
			fn()
		default:
			return
		}
	}
}

// mirrorMatchState copies the authoritative match into the synced donburi
// components. Runs on the loop goroutine after stepping.
func (s *Server) mirrorMatchState() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, entity := range s.playerEntity {
		p := s.match.PlayerByID(id)
		if p == nil || !s.world.Valid(entity) {
			continue
		}
		entry := s.world.Entry(entity)

		pos := netcomponents.NetPosition.Get(entry)
		pos.X, pos.Y = p.Body.Pos.X, p.Body.Pos.Y

		vel := netcomponents.NetVelocity.Get(entry)
		vel.VelX, vel.VelY = p.Body.Vel.X, p.Body.Vel.Y

		state := netcomponents.NetPlayerState.Get(entry)
		state.KickCharge = p.KickCharge
		state.Charging = p.Charging
		state.LastSequence = s.lastSeqFor(id)
	}

	if s.world.Valid(s.ballEntity) {
		entry := s.world.Entry(s.ballEntity)
		pos := netcomponents.NetPosition.Get(entry)
		pos.X, pos.Y = s.match.Ball.Pos.X, s.match.Ball.Pos.Y
		vel := netcomponents.NetVelocity.Get(entry)
		vel.VelX, vel.VelY = s.match.Ball.Vel.X, s.match.Ball.Vel.Y
		netcomponents.NetBall.Get(entry).Radius = s.match.Ball.Radius
	}

	if s.world.Valid(s.matchEntity) {
		entry := s.world.Entry(s.matchEntity)
		ms := netcomponents.NetMatchState.Get(entry)
		ms.ScoreRed = s.match.ScoreRed
		ms.ScoreBlue = s.match.ScoreBlue
		ms.Elapsed = s.match.Elapsed
		ms.Phase = s.match.Phase
		ms.Winner = s.match.Winner
		ms.KickMode = s.match.Cfg.KickMode
	}
}

// lastSeqFor returns the newest acknowledged input sequence for a player id.
// Caller holds mu.
func (s *Server) lastSeqFor(id uint) uint32 {
	for _, info := range s.clients {
		if info.playerID == id {
			return info.lastSeq
		}
	}
	return 0
}
