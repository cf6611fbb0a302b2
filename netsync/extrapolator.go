package netsync

import (
	"github.com/leap-fish/necs/esync"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
)

// MaxExtrapolationHorizon caps dead-reckoning at half a second; beyond that
// the projection error outweighs the latency it hides.
const MaxExtrapolationHorizon = 0.5

const projectionBlend = 0.5

// Extrapolator dead-reckons near-future positions from current velocity to
// mask input lag in the no-network configuration. Horizon 0 disables it.
// Projections are smoothed against the previous render position, so any
// external position reset must call Invalidate first or the next frame blends
// back toward the stale point.
type Extrapolator struct {
	Horizon float64
	prev    map[esync.NetworkId]gamemath.Vec2
}

func NewExtrapolator(horizon float64) *Extrapolator {
	if horizon < 0 {
		horizon = 0
	}
	if horizon > MaxExtrapolationHorizon {
		horizon = MaxExtrapolationHorizon
	}
	return &Extrapolator{
		Horizon: horizon,
		prev:    make(map[esync.NetworkId]gamemath.Vec2),
	}
}

// Project returns the dead-reckoned render position for one entity.
func (e *Extrapolator) Project(id esync.NetworkId, pos, vel gamemath.Vec2) gamemath.Vec2 {
	return e.ProjectWithInput(id, pos, vel, gamemath.Vec2{}, 0)
}

// ProjectWithInput dead-reckons like Project but also folds in the entity's
// current steering: dir scaled by accel is treated as constant acceleration
// over the horizon. Bots keep pushing toward their script's target between
// updates, so a velocity-only projection lags behind every turn they make.
func (e *Extrapolator) ProjectWithInput(id esync.NetworkId, pos, vel, dir gamemath.Vec2, accel float64) gamemath.Vec2 {
	if e.Horizon <= 0 {
		return pos
	}
	h := e.Horizon
	proj := pos.Add(vel.Scale(h)).Add(dir.Scale(0.5 * accel * h * h))
	if prev, ok := e.prev[id]; ok {
		proj = gamemath.Lerp(prev, proj, projectionBlend)
	}
	e.prev[id] = proj
	return proj
}

// Invalidate forgets one entity's previous projection.
func (e *Extrapolator) Invalidate(id esync.NetworkId) {
	delete(e.prev, id)
}

// InvalidateAll forgets every remembered projection, for teleport-scale
// resets like a post-goal respawn.
func (e *Extrapolator) InvalidateAll() {
	clear(e.prev)
}
