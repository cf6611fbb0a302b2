package sim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/openpitch/kickoff-mp/config"
	"github.com/openpitch/kickoff-mp/input"
	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

// BotKind discriminates the closed set of bot behaviors.
type BotKind int

const (
	BotIdle BotKind = iota
	BotPatrol
	BotStrategy
)

// BotSpec is a tagged variant describing a bot-controlled player. Only the
// fields of the active Kind are meaningful.
type BotSpec struct {
	Kind BotKind

	// BotPatrol
	Patrol []input.Command
	Loop   bool

	// BotStrategy
	Strategy input.StrategyKind
	Anchor   gamemath.Vec2
}

// Player is one match participant. The ID is stable across reconnects; the
// match's player list is the sole owner.
type Player struct {
	ID   uint
	Name string
	Team netconfig.Team
	Body *Body

	// Input sampled from the source at the start of the current tick.
	Input input.State

	// Kick state. KickCharge ramps in [0,1] while Charging (chargeable mode);
	// kickWasHeld is the per-press debounce so one press fires one impulse.
	KickCharge  float64
	Charging    bool
	kickWasHeld bool
	charge      *gween.Tween

	Bot        *BotSpec
	spawnIndex int
}

func newPlayer(id uint, name string, team netconfig.Team, spawnIndex int, pos gamemath.Vec2, cfg config.PlayerConfig) *Player {
	return &Player{
		ID:         id,
		Name:       name,
		Team:       team,
		Body:       NewBody(pos, cfg.Radius, cfg.Mass, cfg.Damping),
		spawnIndex: spawnIndex,
	}
}

// ApplyMovement is the shared movement rule: accelerate along the input
// direction and clamp to the speed limit. Client-side prediction must call
// exactly this function so predicted and authoritative movement agree.
func ApplyMovement(b *Body, dir gamemath.Vec2, cfg config.PlayerConfig, charging bool, dt float64) {
	b.Vel = b.Vel.Add(dir.Scale(cfg.Acceleration * dt))
	limit := cfg.MaxSpeed
	if charging {
		limit *= cfg.ChargingSpeed
	}
	b.Vel = b.Vel.ClampLen(limit)
}

// startCharge begins the kick-charge ramp for chargeable mode.
func (p *Player) startCharge(cfg config.PlayerConfig) {
	p.Charging = true
	p.KickCharge = 0
	p.charge = gween.New(0, 1, float32(cfg.ChargeTime), ease.Linear)
}

// advanceCharge moves the charge ramp forward one tick.
func (p *Player) advanceCharge(dt float64) {
	if p.charge == nil {
		return
	}
	v, _ := p.charge.Update(float32(dt))
	p.KickCharge = float64(v)
}

// stopCharge ends charging and returns the charge fraction to apply, already
// floored so a tap still kicks.
func (p *Player) stopCharge(cfg config.PlayerConfig) float64 {
	fraction := p.KickCharge
	if fraction < cfg.ChargeFloor {
		fraction = cfg.ChargeFloor
	}
	p.Charging = false
	p.KickCharge = 0
	p.charge = nil
	return fraction
}

// resetKickState clears transient kick state, e.g. on respawn.
func (p *Player) resetKickState() {
	p.Charging = false
	p.KickCharge = 0
	p.charge = nil
	p.kickWasHeld = false
}
