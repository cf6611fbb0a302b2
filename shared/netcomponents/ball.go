package netcomponents

import "github.com/yohamta/donburi"

// NetBallData marks the ball entity. Position and velocity ride on the
// shared NetPosition/NetVelocity components.
type NetBallData struct {
	Radius float64
}

var NetBall = donburi.NewComponentType[NetBallData]()
