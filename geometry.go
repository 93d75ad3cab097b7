package main

import "math"

// vec2 is a 2D vector in screen coordinates.
type vec2 struct {
	X, Y float64
}

func (v vec2) add(o vec2) vec2 { return vec2{v.X + o.X, v.Y + o.Y} }

func (v vec2) sub(o vec2) vec2 { return vec2{v.X - o.X, v.Y - o.Y} }

func (v vec2) scale(s float64) vec2 { return vec2{v.X * s, v.Y * s} }

func (v vec2) lenSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v vec2) len() float64 { return math.Hypot(v.X, v.Y) }

// perp returns the counterclockwise perpendicular of v.
func (v vec2) perp() vec2 { return vec2{-v.Y, v.X} }

// normalized returns the unit vector of v, or the zero vector when v is zero.
func (v vec2) normalized() vec2 {
	l := v.len()
	if l == 0 {
		return vec2{}
	}
	return vec2{v.X / l, v.Y / l}
}

func (v vec2) distTo(o vec2) float64 { return v.sub(o).len() }

func (v vec2) distSqTo(o vec2) float64 { return v.sub(o).lenSq() }

// circlesIntersect reports whether two circles cross, using exact distances.
// Near-coincident centers are rejected, matching the squared fast path.
func circlesIntersect(c1 vec2, r1 float64, c2 vec2, r2 float64) bool {
	dSq := c1.distSqTo(c2)
	if dSq <= 0.001 {
		return false
	}
	d := math.Sqrt(dSq)
	return d <= r1+r2 && d >= math.Abs(r1-r2)
}

// circlesOverlapFast is the squared-distance form of circlesIntersect. It also
// rejects near-coincident centers, where the crossing points are undefined.
func circlesOverlapFast(c1 vec2, r1 float64, c2 vec2, r2 float64) bool {
	dSq := c1.distSqTo(c2)
	if dSq <= 0.001 {
		return false
	}
	sum := r1 + r2
	diff := r1 - r2
	return dSq <= sum*sum && dSq >= diff*diff
}

// intersectionPoints returns the two crossing points of a pair of circles.
// ok is false when the circles do not cross or are concentric.
func intersectionPoints(c1 vec2, r1 float64, c2 vec2, r2 float64) (p1, p2 vec2, ok bool) {
	d := c1.distTo(c2)
	if d <= 0.001 || d > r1+r2 || d < math.Abs(r1-r2) {
		return vec2{}, vec2{}, false
	}
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	hSq := r1*r1 - a*a
	if hSq < 0 {
		hSq = 0
	}
	h := math.Sqrt(hSq)
	dir := c2.sub(c1).scale(1 / d)
	mid := c1.add(dir.scale(a))
	off := dir.perp().scale(h)
	return mid.add(off), mid.sub(off), true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
