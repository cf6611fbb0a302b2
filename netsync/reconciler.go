package netsync

import "github.com/openpitch/kickoff-mp/shared/gamemath"

// Reconciler corrects predicted local state toward the authoritative
// snapshot. Errors inside the dead zone are left alone to suppress
// micro-jitter; moderate errors decay exponentially by the blend factor per
// snapshot; errors beyond the snap threshold are teleport-scale
// discontinuities (goal reset, respawn) and snap exactly.
type Reconciler struct {
	DeadZone      float64
	SnapThreshold float64
	Blend         float64
}

func NewReconciler() *Reconciler {
	return &Reconciler{
		DeadZone:      0.5,
		SnapThreshold: 100,
		Blend:         0.4,
	}
}

// Apply returns the corrected position and velocity for the local entity.
func (r *Reconciler) Apply(predPos, predVel, authPos, authVel gamemath.Vec2) (gamemath.Vec2, gamemath.Vec2) {
	d := gamemath.Dist(predPos, authPos)
	switch {
	case d <= r.DeadZone:
		return predPos, predVel
	case d >= r.SnapThreshold:
		return authPos, authVel
	default:
		return gamemath.Lerp(predPos, authPos, r.Blend),
			gamemath.Lerp(predVel, authVel, r.Blend)
	}
}
