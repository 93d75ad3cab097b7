package main

import (
	"image/color"
	"math"
)

// Wall indices identify which window edge produced a reflection. A shape with
// reflection == reflectionPrimary is the ring's own wavefront.
const (
	reflectionPrimary = -1
	wallLeft          = 0
	wallRight         = 1
	wallTop           = 2
	wallBottom        = 3
)

// reflection is a mirrored copy of a ring's wavefront behind a window edge.
// Once active it stays active for the rest of the ring's life.
type reflection struct {
	active bool
	center vec2
}

// ring is an expanding circular wavefront spawned by a click.
type ring struct {
	id          int
	center      vec2
	radius      float64
	col         color.RGBA
	speed       float64
	alive       bool
	reflections [4]reflection
}

// newRing creates a wavefront at pos with the speed derived from col.
func newRing(id int, pos vec2, col color.RGBA, p *ringParams) ring {
	return ring{
		id:     id,
		center: pos,
		radius: p.InitialRadius,
		col:    col,
		speed:  frequencySpeed(col, p),
		alive:  true,
	}
}

// update grows the ring, activates reflections for any newly crossed wall,
// and kills the ring once it has expanded past the threshold or its center
// has drifted far off-screen.
func (r *ring) update(dt float64, p *ringParams) {
	if !r.alive {
		return
	}
	r.radius += r.speed * dt

	if !r.reflections[wallLeft].active && r.radius > r.center.X {
		r.reflections[wallLeft] = reflection{true, vec2{-r.center.X, r.center.Y}}
	}
	if !r.reflections[wallRight].active && r.radius > windowW-r.center.X {
		r.reflections[wallRight] = reflection{true, vec2{2*windowW - r.center.X, r.center.Y}}
	}
	if !r.reflections[wallTop].active && r.radius > r.center.Y {
		r.reflections[wallTop] = reflection{true, vec2{r.center.X, -r.center.Y}}
	}
	if !r.reflections[wallBottom].active && r.radius > windowH-r.center.Y {
		r.reflections[wallBottom] = reflection{true, vec2{r.center.X, 2*windowH - r.center.Y}}
	}

	if r.radius > p.MaxRadiusThreshold {
		r.alive = false
		return
	}
	m := p.OffScreenMargin
	if r.center.X < -m || r.center.X > windowW+m || r.center.Y < -m || r.center.Y > windowH+m {
		r.alive = false
	}
}

// alpha returns the radius-based fade of the wavefront outline.
func (r *ring) alpha(p *ringParams) float64 {
	return math.Max(p.MinAlpha, 1.0-r.radius/p.AlphaDivisor)
}

// reflectionNearScreen reports whether the given reflection's circle could
// still touch the visible area, padded by the cull margin.
func (r *ring) reflectionNearScreen(wall int, p *ringParams) bool {
	if !r.reflections[wall].active {
		return false
	}
	return circleNearScreen(r.reflections[wall].center, r.radius, p.CullMargin)
}

// circleNearScreen reports whether a circle overlaps the window rectangle
// expanded by margin on all sides.
func circleNearScreen(center vec2, radius, margin float64) bool {
	reach := radius + margin
	return center.X > -reach && center.X < windowW+reach &&
		center.Y > -reach && center.Y < windowH+reach
}

// ringManager owns every live wavefront and hands out stable ring IDs.
type ringManager struct {
	params *ringParams
	rings  []ring
	nextID int
}

func newRingManager(p *ringParams) *ringManager {
	return &ringManager{
		params: p,
		rings:  make([]ring, 0, 64),
	}
}

// addRing spawns a wavefront at pos and returns its ID.
func (m *ringManager) addRing(pos vec2, col color.RGBA) int {
	id := m.nextID
	m.nextID++
	m.rings = append(m.rings, newRing(id, pos, col, m.params))
	return id
}

// update advances all rings and compacts dead ones out of the slice.
func (m *ringManager) update(dt float64) {
	kept := m.rings[:0]
	for i := range m.rings {
		m.rings[i].update(dt, m.params)
		if m.rings[i].alive {
			kept = append(kept, m.rings[i])
		}
	}
	m.rings = kept
}

// clear removes every ring.
func (m *ringManager) clear() {
	m.rings = m.rings[:0]
}

func (m *ringManager) count() int { return len(m.rings) }
