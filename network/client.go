package network

import (
	"context"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/rs/zerolog/log"

	"github.com/openpitch/kickoff-mp/shared/messages"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedMatch
	StateError
)

// Client manages a WebSocket connection to the match server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state          ClientState
	lastError      error
	networkID      esync.NetworkId
	reconnectToken string
	serverName     string
	tickRate       int
	team           netconfig.Team
	pitchName      string
	serverConfig   messages.ConfigUpdate
	conn           *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	goalCh   chan messages.GoalEvent
	phaseCh  chan messages.MatchPhaseEvent
	kickCh   chan messages.KickEvent
	joinedCh chan messages.PlayerJoinedEvent
	leftCh   chan messages.PlayerLeftEvent
	configCh chan messages.ConfigUpdate
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		goalCh:     make(chan messages.GoalEvent, 4),
		phaseCh:    make(chan messages.MatchPhaseEvent, 4),
		kickCh:     make(chan messages.KickEvent, 8),
		joinedCh:   make(chan messages.PlayerJoinedEvent, 4),
		leftCh:     make(chan messages.PlayerLeftEvent, 4),
		configCh:   make(chan messages.ConfigUpdate, 2),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, version, playerName string, team netconfig.Team) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Info().Msg("connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		payload, err := router.Serialize(messages.JoinRequest{
			Version:       version,
			PlayerName:    playerName,
			PreferredTeam: team,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to serialize join request: %w", err))
			return
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn != nil {
			if err := conn.Write(context.Background(), websocket.MessageBinary, payload); err != nil {
				c.setError(fmt.Errorf("failed to send join request: %w", err))
			}
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Info().
			Uint("networkId", uint(msg.NetworkID)).
			Str("server", msg.ServerName).
			Str("team", msg.Team.String()).
			Int("tickRate", msg.TickRate).
			Msg("join accepted")
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.reconnectToken = msg.ReconnectToken
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.team = msg.Team
		c.pitchName = msg.PitchName
		c.serverConfig = msg.Config
		c.state = StateJoinedMatch
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Warn().Str("reason", msg.Reason).Msg("join rejected")
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.GoalEvent) {
		select {
		case c.goalCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.MatchPhaseEvent) {
		select {
		case c.phaseCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.KickEvent) {
		select {
		case c.kickCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.PlayerJoinedEvent) {
		select {
		case c.joinedCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.PlayerLeftEvent) {
		select {
		case c.leftCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.ConfigUpdate) {
		select {
		case c.configCh <- evt:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Info().Err(err).Msg("disconnected")
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Error().Err(err).Msg("transport error")
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) Team() netconfig.Team {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.team
}

func (c *Client) PitchName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pitchName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainGoalEvents returns all pending goal events, non-blocking.
func (c *Client) DrainGoalEvents() []messages.GoalEvent {
	return drainChan(c.goalCh)
}

// DrainPhaseEvents returns all pending match phase events, non-blocking.
func (c *Client) DrainPhaseEvents() []messages.MatchPhaseEvent {
	return drainChan(c.phaseCh)
}

// DrainKickEvents returns all pending kick events, non-blocking.
func (c *Client) DrainKickEvents() []messages.KickEvent {
	return drainChan(c.kickCh)
}

// DrainJoinedEvents returns all pending player-joined events, non-blocking.
func (c *Client) DrainJoinedEvents() []messages.PlayerJoinedEvent {
	return drainChan(c.joinedCh)
}

// DrainLeftEvents returns all pending player-left events, non-blocking.
func (c *Client) DrainLeftEvents() []messages.PlayerLeftEvent {
	return drainChan(c.leftCh)
}

// ServerConfig returns the physics subset received in the join handshake.
func (c *Client) ServerConfig() messages.ConfigUpdate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverConfig
}

// DrainConfigUpdates returns mid-match config re-syncs received since the
// last call.
func (c *Client) DrainConfigUpdates() []messages.ConfigUpdate {
	return drainChan(c.configCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
