// Package gamemath provides the vector and circle geometry shared between the
// authoritative simulation and client-side prediction. It has no dependencies
// on ebiten or any graphics library so the dedicated server binary stays
// headless.
package gamemath

import "math"

// Vec2 is a 2D vector. It is passed by value everywhere.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// SafeAxis is the separation axis used when two points coincide and no
// meaningful normal exists. Any fixed unit vector works; what matters is that
// both sides of a degenerate contact agree on it.
var SafeAxis = Vec2{X: 1, Y: 0}

// Normalized returns the unit vector, or SafeAxis for a zero-length vector so
// callers never divide by zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return SafeAxis
	}
	return Vec2{v.X / l, v.Y / l}
}

// Dist returns the distance between two points.
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// Lerp interpolates between a and b by t.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Clamp clamps v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampLen limits the vector's length to max, preserving direction.
func (v Vec2) ClampLen(max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}
