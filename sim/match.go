package sim

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/solarlune/resolv"

	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/input"
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
	"github.com/openpitch/kickoff-mp/shared/pitch"
)

// Resolv tags for the goal-detection space.
const (
	tagGoal = "goal"
	tagBall = "ball"
	tagRed  = "red"
	tagBlue = "blue"
)

// goalSpaceMargin shifts all detection objects so goal regions behind the end
// lines still have positive coordinates inside the resolv space.
const goalSpaceMargin = 64

// Events are optional hooks fired by the authoritative loop. External
// collaborators (logging, ranking persistence, room bookkeeping) attach here;
// the simulation itself never depends on them.
type Events struct {
	OnGoal   func(scorer uint, team netconfig.Team)
	OnKick   func(playerID uint, at gamemath.Vec2, strength float64)
	OnStart  func()
	OnPause  func()
	OnResume func()
	OnEnd    func(winner netconfig.Team, scoreRed, scoreBlue int)
}

// Match owns the full authoritative state of one game. Exactly one goroutine
// may call its mutating methods; remote participants only ever see snapshots.
type Match struct {
	Cfg   config.MatchConfig
	Pitch *pitch.Pitch

	Players []*Player
	Ball    *Body

	ScoreRed  int
	ScoreBlue int
	Elapsed   float64
	Phase     netconfig.MatchPhase
	Winner    netconfig.Team
	Paused    bool

	// LastBallImpact is the peak wall-impact speed of the most recent tick,
	// exposed for audio/VFX hooks.
	LastBallImpact float64

	Events Events

	sources       map[uint]input.Source
	teamCounts    map[netconfig.Team]int
	goalPauseLeft int
	pendingFinish bool
	lastTouch     uint

	space   *resolv.Space
	ballObj *resolv.Object
}

// NewMatch builds an idle match on the given pitch. Call Start to kick off.
func NewMatch(cfg config.MatchConfig, pt *pitch.Pitch) *Match {
	m := &Match{
		Cfg:        cfg,
		Pitch:      pt,
		Ball:       NewBody(pt.BallSpawn, cfg.Ball.Radius, cfg.Ball.Mass, cfg.Ball.Damping),
		Phase:      netconfig.PhaseIdle,
		sources:    make(map[uint]input.Source),
		teamCounts: map[netconfig.Team]int{},
	}
	m.buildGoalSpace()
	return m
}

func (m *Match) buildGoalSpace() {
	w := int(m.Pitch.Width) + 2*goalSpaceMargin
	h := int(m.Pitch.Height) + 2*goalSpaceMargin
	m.space = resolv.NewSpace(w, h, 32, 32)

	for _, g := range m.Pitch.Goals {
		x0, y0 := min(g.P1.X, g.P2.X), min(g.P1.Y, g.P2.Y)
		x1, y1 := max(g.P1.X, g.P2.X), max(g.P1.Y, g.P2.Y)
		teamTag := tagRed
		if g.Team == netconfig.TeamBlue {
			teamTag = tagBlue
		}
		obj := resolv.NewObject(x0+goalSpaceMargin, y0+goalSpaceMargin, x1-x0, y1-y0, tagGoal, teamTag)
		obj.SetShape(resolv.NewRectangle(0, 0, x1-x0, y1-y0))
		m.space.Add(obj)
	}

	d := m.Ball.Radius * 2
	m.ballObj = resolv.NewObject(m.Ball.Pos.X-m.Ball.Radius+goalSpaceMargin, m.Ball.Pos.Y-m.Ball.Radius+goalSpaceMargin, d, d, tagBall)
	m.ballObj.SetShape(resolv.NewRectangle(0, 0, d, d))
	m.space.Add(m.ballObj)
}

// AddPlayer registers a participant driven by the given input source. The id
// must be unique within the match and stable across reconnects.
func (m *Match) AddPlayer(id uint, name string, team netconfig.Team, src input.Source) (*Player, error) {
	if m.PlayerByID(id) != nil {
		return nil, fmt.Errorf("player id %d already in match", id)
	}
	if team != netconfig.TeamSpectator && m.Cfg.PlayersPerTeam > 0 && m.teamCounts[team] >= m.Cfg.PlayersPerTeam {
		return nil, fmt.Errorf("team %s is full", team)
	}

	idx := m.teamCounts[team]
	p := newPlayer(id, name, team, idx, m.Pitch.SpawnFor(team, idx), m.Cfg.Player)
	m.Players = append(m.Players, p)
	m.sources[id] = src
	m.teamCounts[team]++
	return p, nil
}

// AddBot registers a bot-controlled player, materializing its input source
// from the closed BotSpec variant.
func (m *Match) AddBot(id uint, name string, team netconfig.Team, spec BotSpec) (*Player, error) {
	var src input.Source
	switch spec.Kind {
	case BotPatrol:
		src = input.NewPatrol(spec.Patrol, spec.Loop)
	case BotStrategy:
		src = input.NewStrategy(spec.Strategy, m.perceptionFor(id, spec))
	default:
		src = &input.Static{}
	}

	p, err := m.AddPlayer(id, name, team, src)
	if err != nil {
		return nil, err
	}
	botSpec := spec
	if botSpec.Anchor == (gamemath.Vec2{}) {
		botSpec.Anchor = p.Body.Pos
	}
	p.Bot = &botSpec
	return p, nil
}

// RemovePlayer drops a participant (e.g. transport loss). The match carries
// on without the entity.
func (m *Match) RemovePlayer(id uint) {
	for i, p := range m.Players {
		if p.ID == id {
			m.Players = append(m.Players[:i], m.Players[i+1:]...)
			m.teamCounts[p.Team]--
			delete(m.sources, id)
			return
		}
	}
}

// PlayerByID returns the player with the given id, or nil.
func (m *Match) PlayerByID(id uint) *Player {
	for _, p := range m.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Running reports whether ticks currently advance play.
func (m *Match) Running() bool {
	return !m.Paused && (m.Phase == netconfig.PhaseRunning || m.Phase == netconfig.PhaseGoalPause)
}

// Start moves an idle match into play.
func (m *Match) Start() {
	if m.Phase != netconfig.PhaseIdle {
		return
	}
	m.resetPositions()
	m.Phase = netconfig.PhaseRunning
	if m.Events.OnStart != nil {
		m.Events.OnStart()
	}
}

// SetPaused pauses or resumes the match. Paused matches retain all state and
// skip ticks.
func (m *Match) SetPaused(paused bool) {
	if m.Paused == paused {
		return
	}
	m.Paused = paused
	if paused {
		if m.Events.OnPause != nil {
			m.Events.OnPause()
		}
	} else if m.Events.OnResume != nil {
		m.Events.OnResume()
	}
}

// Reset returns a finished (or running) match to Idle with zeroed score.
func (m *Match) Reset() {
	m.Phase = netconfig.PhaseIdle
	m.ScoreRed, m.ScoreBlue = 0, 0
	m.Elapsed = 0
	m.Winner = netconfig.TeamSpectator
	m.Paused = false
	m.pendingFinish = false
	m.goalPauseLeft = 0
	m.lastTouch = 0
	m.resetPositions()
	for _, src := range m.sources {
		src.Reset()
	}
}

// SetKickMode switches how kick strength is derived mid-match. Any charge
// in progress is discarded so both modes start from a clean press.
func (m *Match) SetKickMode(mode netconfig.KickMode) {
	if m.Cfg.KickMode == mode {
		return
	}
	m.Cfg.KickMode = mode
	for _, p := range m.Players {
		p.resetKickState()
	}
}

// SetBallConfig replaces the ball's physical properties in place. Position
// and velocity carry over.
func (m *Match) SetBallConfig(ball config.BallConfig) {
	m.Cfg.Ball = ball
	m.Ball.Radius = ball.Radius
	m.Ball.Damping = ball.Damping
	if ball.Mass > 0 {
		m.Ball.InvMass = 1 / ball.Mass
	} else {
		m.Ball.InvMass = 0
	}
}

// Step advances the simulation by exactly one fixed timestep. The internal
// order is a contract: input, player integration, sub-stepped ball
// integration, player-player, player-ball, wall collisions, goal detection.
// It decides who wins simultaneous contact and is pinned by tests.
func (m *Match) Step(dt float64) {
	if m.Paused || m.Phase == netconfig.PhaseIdle || m.Phase == netconfig.PhaseFinished {
		return
	}

	if m.Phase == netconfig.PhaseGoalPause {
		m.goalPauseLeft--
		if m.goalPauseLeft <= 0 {
			m.endGoalPause()
		}
		return
	}

	m.advanceInputs(dt)
	m.integratePlayers(dt)
	m.LastBallImpact = m.Ball.UpdateWithSubsteps(dt, m.Pitch.Segments)
	m.collidePlayers()
	m.collideBall()
	m.collideWalls()
	m.detectGoal()

	m.Elapsed += dt
	if m.Phase == netconfig.PhaseRunning && m.Cfg.TimeLimit > 0 && m.Elapsed >= m.Cfg.TimeLimit {
		m.finish(m.leader())
	}
}

// advanceInputs samples every input source and processes kick edges. A
// panicking source is logged and treated as neutral for the tick; one broken
// entity must never halt the loop.
func (m *Match) advanceInputs(dt float64) {
	for _, p := range m.Players {
		m.advancePlayerInput(p, dt)
	}
}

func (m *Match) advancePlayerInput(p *Player, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Uint("player", p.ID).Interface("panic", r).
				Msg("input source panicked; treating as neutral")
			p.Input = input.State{}
		}
	}()

	src := m.sources[p.ID]
	if src == nil {
		p.Input = input.State{}
		return
	}
	src.Advance(dt, m.Elapsed)
	st := input.FromDirection(src.Direction())
	st.Kick = src.Kick()
	p.Input = st

	held := p.Input.Kick
	pressed := held && !p.kickWasHeld
	released := !held && p.kickWasHeld

	switch m.Cfg.KickMode {
	case netconfig.KickChargeable:
		if pressed {
			p.startCharge(m.Cfg.Player)
		}
		if held && p.Charging {
			p.advanceCharge(dt)
		}
		if released && p.Charging {
			m.tryKick(p, p.stopCharge(m.Cfg.Player))
		}
	default: // classic: full-strength impulse on the press edge only
		if pressed {
			m.tryKick(p, 1.0)
		}
	}
	p.kickWasHeld = held
}

// tryKick fires a kick impulse if the ball is within reach. fraction scales
// the configured strength (1.0 in classic mode).
func (m *Match) tryKick(p *Player, fraction float64) {
	reach := p.Body.Radius + m.Ball.Radius + m.Cfg.Player.KickMargin
	if gamemath.Dist(p.Body.Pos, m.Ball.Pos) > reach {
		return
	}
	strength := m.Cfg.Player.KickStrength * fraction
	KickImpulse(p.Body, m.Ball, strength)
	m.lastTouch = p.ID
	if m.Events.OnKick != nil {
		m.Events.OnKick(p.ID, m.Ball.Pos, strength)
	}
}

func (m *Match) integratePlayers(dt float64) {
	for _, p := range m.Players {
		ApplyMovement(p.Body, p.Input.Direction().Vec(), m.Cfg.Player, p.Charging, dt)
		p.Body.Update(dt)
	}
}

func (m *Match) collidePlayers() {
	for i := 0; i < len(m.Players); i++ {
		for j := i + 1; j < len(m.Players); j++ {
			ResolveBodyCollision(m.Players[i].Body, m.Players[j].Body, m.Cfg.BodyRestitution)
		}
	}
}

func (m *Match) collideBall() {
	for _, p := range m.Players {
		if CheckBodyCollision(p.Body, m.Ball) {
			m.lastTouch = p.ID
			ResolveBodyCollision(p.Body, m.Ball, m.Cfg.BodyRestitution)
		}
	}
}

func (m *Match) collideWalls() {
	for _, p := range m.Players {
		for s := range m.Pitch.Segments {
			if m.Pitch.Segments[s].PlayerCollides {
				ResolveSegmentCollision(p.Body, &m.Pitch.Segments[s])
			}
		}
	}
}

// detectGoal tests the ball against the tagged goal regions. Scoring flips
// the match into the goal-pause phase, which latches against re-triggering
// while the ball sits in the net.
func (m *Match) detectGoal() {
	m.ballObj.X = m.Ball.Pos.X - m.Ball.Radius + goalSpaceMargin
	m.ballObj.Y = m.Ball.Pos.Y - m.Ball.Radius + goalSpaceMargin
	m.ballObj.Update()

	check := m.ballObj.Check(0, 0, tagGoal)
	if check == nil {
		return
	}
	goals := check.ObjectsByTags(tagGoal)
	if len(goals) == 0 {
		return
	}

	defending := netconfig.TeamRed
	if goals[0].HasTags(tagBlue) {
		defending = netconfig.TeamBlue
	}
	scoring := defending.Opponent()

	if scoring == netconfig.TeamRed {
		m.ScoreRed++
	} else {
		m.ScoreBlue++
	}
	if m.Events.OnGoal != nil {
		m.Events.OnGoal(m.lastTouch, scoring)
	}

	if m.Cfg.ScoreLimit > 0 && (m.ScoreRed >= m.Cfg.ScoreLimit || m.ScoreBlue >= m.Cfg.ScoreLimit) {
		m.pendingFinish = true
	}
	m.Phase = netconfig.PhaseGoalPause
	m.goalPauseLeft = m.Cfg.GoalPauseTicks
}

func (m *Match) endGoalPause() {
	if m.pendingFinish {
		m.finish(m.leader())
		return
	}
	m.resetPositions()
	m.Phase = netconfig.PhaseRunning
}

func (m *Match) finish(winner netconfig.Team) {
	m.Phase = netconfig.PhaseFinished
	m.Winner = winner
	if m.Events.OnEnd != nil {
		m.Events.OnEnd(winner, m.ScoreRed, m.ScoreBlue)
	}
}

// leader returns the team ahead on score, or spectator for a draw.
func (m *Match) leader() netconfig.Team {
	switch {
	case m.ScoreRed > m.ScoreBlue:
		return netconfig.TeamRed
	case m.ScoreBlue > m.ScoreRed:
		return netconfig.TeamBlue
	default:
		return netconfig.TeamSpectator
	}
}

// resetPositions returns ball and players to their spawn points with zeroed
// velocity. Render-side extrapolators must treat this as a teleport.
func (m *Match) resetPositions() {
	m.Ball.Pos = m.Pitch.BallSpawn
	m.Ball.Vel = gamemath.Vec2{}
	for _, p := range m.Players {
		p.Body.Pos = m.Pitch.SpawnFor(p.Team, p.spawnIndex)
		p.Body.Vel = gamemath.Vec2{}
		p.resetKickState()
	}
	m.lastTouch = 0
}

// perceptionFor builds the read-only world view a strategy bot sees.
func (m *Match) perceptionFor(id uint, spec BotSpec) func() input.Perception {
	return func() input.Perception {
		p := m.PlayerByID(id)
		if p == nil {
			return input.Perception{}
		}

		per := input.Perception{
			Self:      p.Body.Pos,
			SelfVel:   p.Body.Vel,
			Ball:      m.Ball.Pos,
			BallVel:   m.Ball.Vel,
			Anchor:    spec.Anchor,
			KickRange: p.Body.Radius + m.Ball.Radius + m.Cfg.Player.KickMargin,
		}
		if per.Anchor == (gamemath.Vec2{}) && p.Bot != nil {
			per.Anchor = p.Bot.Anchor
		}

		for _, g := range m.Pitch.Goals {
			center := gamemath.Lerp(g.P1, g.P2, 0.5)
			if g.Team == p.Team {
				per.OwnGoal = center
			} else {
				per.TargetGoal = center
			}
		}

		best := -1.0
		for _, o := range m.Players {
			if o.Team == p.Team || o.Team == netconfig.TeamSpectator {
				continue
			}
			d := gamemath.Dist(p.Body.Pos, o.Body.Pos)
			if best < 0 || d < best {
				best = d
				per.MarkTarget = o.Body.Pos
				per.HasMark = true
			}
		}
		return per
	}
}
