package netsync

import "github.com/openpitch/kickoff-mp/shared/gamemath"

// Interpolator smooths remote entities toward their authoritative targets
// with a per-tick exponential moving average, never a hard snap. The ball
// gets a faster catch-up blend when it has fallen far behind its target,
// since ball motion is quicker and more latency-sensitive than players.
type Interpolator struct {
	Blend            float64
	BallCatchUpDist  float64
	BallCatchUpBlend float64
}

func NewInterpolator() *Interpolator {
	return &Interpolator{
		Blend:            0.3,
		BallCatchUpDist:  50,
		BallCatchUpBlend: 0.65,
	}
}

// Step moves current toward target by the standard blend factor.
func (ip *Interpolator) Step(current, target gamemath.Vec2) gamemath.Vec2 {
	return gamemath.Lerp(current, target, ip.Blend)
}

// StepBall moves the ball toward its target, switching to the catch-up blend
// beyond the distance threshold.
func (ip *Interpolator) StepBall(current, target gamemath.Vec2) gamemath.Vec2 {
	blend := ip.Blend
	if gamemath.Dist(current, target) > ip.BallCatchUpDist {
		blend = ip.BallCatchUpBlend
	}
	return gamemath.Lerp(current, target, blend)
}
