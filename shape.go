package main

import "image/color"

// shape is one drawable/collidable circle: either a ring's own wavefront or
// one of its active wall reflections. Rebuilt from the ring list every tick.
type shape struct {
	center vec2
	radius float64
	col    color.RGBA
	speed  float64

	ringID     int
	reflection int // reflectionPrimary or a wall index
}

// sameRing reports whether two shapes originate from the same wavefront.
func (s shape) sameRing(o shape) bool { return s.ringID == o.ringID }

// buildShapes flattens the ring list into collidable circles: one primary
// shape per ring plus one per near-screen reflection.
func buildShapes(rm *ringManager, dst []shape) []shape {
	if cap(dst) < len(rm.rings)*5 {
		dst = make([]shape, 0, len(rm.rings)*5)
	}
	dst = dst[:0]
	for i := range rm.rings {
		r := &rm.rings[i]
		dst = append(dst, shape{
			center:     r.center,
			radius:     r.radius,
			col:        r.col,
			speed:      r.speed,
			ringID:     r.id,
			reflection: reflectionPrimary,
		})
		for wall := 0; wall < 4; wall++ {
			if !r.reflectionNearScreen(wall, rm.params) {
				continue
			}
			dst = append(dst, shape{
				center:     r.reflections[wall].center,
				radius:     r.radius,
				col:        r.col,
				speed:      r.speed,
				ringID:     r.id,
				reflection: wall,
			})
		}
	}
	return dst
}
