package gamemath

// CirclesOverlap reports whether two circles intersect.
func CirclesOverlap(aPos Vec2, aR float64, bPos Vec2, bR float64) bool {
	r := aR + bR
	return aPos.Sub(bPos).LenSq() < r*r
}

// ClosestPointOnSegment returns the point on segment p1-p2 closest to p.
func ClosestPointOnSegment(p, p1, p2 Vec2) Vec2 {
	seg := p2.Sub(p1)
	lenSq := seg.LenSq()
	if lenSq == 0 {
		return p1
	}
	t := Clamp(p.Sub(p1).Dot(seg)/lenSq, 0, 1)
	return p1.Add(seg.Scale(t))
}

// CircleSegmentHit tests a circle against segment p1-p2. It returns the
// closest point on the segment and whether the circle overlaps it.
func CircleSegmentHit(center Vec2, radius float64, p1, p2 Vec2) (Vec2, bool) {
	closest := ClosestPointOnSegment(center, p1, p2)
	return closest, center.Sub(closest).LenSq() < radius*radius
}

// Reflect mirrors v across the plane with unit normal n, scaling the normal
// component by restitution. restitution 1 is a perfect bounce, 0 kills the
// normal component entirely.
func Reflect(v, n Vec2, restitution float64) Vec2 {
	d := v.Dot(n)
	if d >= 0 {
		// Already moving away from the surface.
		return v
	}
	return v.Sub(n.Scale((1 + restitution) * d))
}

// SegmentNormal returns the left-hand unit normal of p1→p2. Map data stores an
// explicit outward normal; this is the fallback when it is missing.
func SegmentNormal(p1, p2 Vec2) Vec2 {
	seg := p2.Sub(p1)
	return Vec2{X: -seg.Y, Y: seg.X}.Normalized()
}
