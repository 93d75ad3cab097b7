package main

import (
	"image/color"
	"math"
)

// shapeKey packs a shape's stable identity (ring ID plus wall index) into a
// single comparable value.
func shapeKey(ringID, reflection int) uint32 {
	return uint32(ringID)<<3 | uint32(reflection+1)
}

// pairKey packs two shape keys order-independently.
func pairKey(a, b uint32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// atom is a short-lived particle pinned to the crossing point of two
// interfering wavefronts. It follows the crossing as the rings expand and
// dies when the rings separate or its lifetime runs out.
type atom struct {
	active bool
	marked bool

	pos     vec2
	prevPos vec2

	keyA, keyB uint32

	col    color.RGBA
	energy float64
	radius float64

	age         float64
	maxLifetime float64

	pulseFreq      float64
	pulseIntensity float64
	sizePulse      float64
}

// alpha fades the atom out over the last portion of its lifetime.
func (a *atom) alpha(p *atomParams) float64 {
	if a.maxLifetime <= 0 {
		return 1
	}
	ratio := a.age / a.maxLifetime
	if ratio <= p.FadeStartRatio {
		return 1
	}
	return clampFloat(1-(ratio-p.FadeStartRatio)/(1-p.FadeStartRatio), 0, 1)
}

// renderRadius applies the energy-scaled pulse to the base radius.
func (a *atom) renderRadius() float64 {
	pulse := 1 + a.sizePulse*math.Sin(a.age*a.pulseFreq*2*math.Pi)
	return a.radius * pulse
}

// atomManager owns a fixed pool of interference atoms and runs intersection
// detection over the broad-phase candidate pairs each tick.
type atomManager struct {
	params *atomParams

	pool []atom

	// nextSlot is the FIFO overwrite cursor. The oldest atom is evicted
	// unconditionally when the pool is full.
	nextSlot int

	// tracked holds pair keys that already spawned an atom, preventing the
	// same crossing from spawning again every tick.
	tracked        map[uint64]struct{}
	cleanupCounter int

	// updatePhase selects which half of the pool advances this tick.
	updatePhase bool

	shapesByKey map[uint32]int
}

func newAtomManager(ap *atomParams) *atomManager {
	return &atomManager{
		params:      ap,
		pool:        make([]atom, ap.MaxAtoms),
		tracked:     make(map[uint64]struct{}),
		shapesByKey: make(map[uint32]int),
	}
}

// update runs detection over the grid's candidate pairs, then advances half
// of the pool with doubled dt so the full pool costs one half per tick.
func (m *atomManager) update(dt float64, shapes []shape, grid *spatialGrid) {
	m.cleanupCounter++
	if m.cleanupCounter >= m.params.CleanupInterval {
		m.cleanupCounter = 0
		for k := range m.tracked {
			delete(m.tracked, k)
		}
	}

	for k := range m.shapesByKey {
		delete(m.shapesByKey, k)
	}
	for i := range shapes {
		m.shapesByKey[shapeKey(shapes[i].ringID, shapes[i].reflection)] = i
	}

	m.detect(shapes, grid)

	phase := 0
	if m.updatePhase {
		phase = 1
	}
	m.updatePhase = !m.updatePhase
	stepDt := dt * m.params.DeltaTimeCompensator
	for i := phase; i < len(m.pool); i += 2 {
		m.updateAtom(&m.pool[i], stepDt, shapes)
	}
}

// detect spawns an atom for every untracked interfering crossing near the
// screen.
func (m *atomManager) detect(shapes []shape, grid *spatialGrid) {
	for _, pair := range grid.potentialPairs() {
		s1, s2 := &shapes[pair[0]], &shapes[pair[1]]
		if s1.sameRing(*s2) {
			continue
		}
		if !shouldInterfere(s1.col, s2.col, m.params.ColorTolerance) {
			continue
		}
		if !circlesOverlapFast(s1.center, s1.radius, s2.center, s2.radius) {
			continue
		}
		p1, _, ok := intersectionPoints(s1.center, s1.radius, s2.center, s2.radius)
		if !ok {
			continue
		}
		k1 := shapeKey(s1.ringID, s1.reflection)
		k2 := shapeKey(s2.ringID, s2.reflection)
		key := pairKey(k1, k2)
		if _, seen := m.tracked[key]; seen {
			continue
		}
		if !pointNearScreen(p1, m.params.IntersectionMargin) {
			continue
		}
		m.tracked[key] = struct{}{}
		m.spawn(p1, k1, k2, s1, s2)
	}
}

// spawn overwrites the FIFO slot with a new atom built from the two shapes.
func (m *atomManager) spawn(pos vec2, k1, k2 uint32, s1, s2 *shape) {
	energy := interferenceEnergy(s1.speed, s2.speed, m.params.EnergyDiffAmplifier)
	p := m.params
	m.pool[m.nextSlot] = atom{
		active:         true,
		pos:            pos,
		prevPos:        pos,
		keyA:           k1,
		keyB:           k2,
		col:            interferenceColor(s1.col, s2.col),
		energy:         energy,
		radius:         p.RadiusBase + p.RadiusEnergyFactor*energy,
		maxLifetime:    p.LifetimeBase + p.LifetimeEnergyFactor*energy,
		pulseFreq:      p.PulseFrequencyBase + p.PulseFrequencyEnergyFactor*energy,
		pulseIntensity: p.PulseIntensityBase + p.PulseIntensityEnergyFactor*energy,
		sizePulse:      p.SizePulseFactor + p.SizePulseEnergyFactor*energy,
	}
	m.nextSlot = (m.nextSlot + 1) % len(m.pool)
}

// updateAtom ages one atom and re-pins it to its crossing point. The atom
// dies when either source shape is gone or the circles no longer cross.
func (m *atomManager) updateAtom(a *atom, dt float64, shapes []shape) {
	if !a.active {
		return
	}
	a.age += dt
	if a.marked || a.age >= a.maxLifetime {
		a.active = false
		return
	}
	i1, ok1 := m.shapesByKey[a.keyA]
	i2, ok2 := m.shapesByKey[a.keyB]
	if !ok1 || !ok2 {
		a.active = false
		return
	}
	s1, s2 := &shapes[i1], &shapes[i2]
	p1, p2, ok := intersectionPoints(s1.center, s1.radius, s2.center, s2.radius)
	if !ok {
		a.active = false
		return
	}
	a.prevPos = a.pos
	if p1.distSqTo(a.prevPos) <= p2.distSqTo(a.prevPos) {
		a.pos = p1
	} else {
		a.pos = p2
	}
}

// markForDeletion flags the atom at index i to die on its next update.
func (m *atomManager) markForDeletion(i int) {
	if i >= 0 && i < len(m.pool) {
		m.pool[i].marked = true
	}
}

// clear deactivates every atom and forgets tracked crossings.
func (m *atomManager) clear() {
	for i := range m.pool {
		m.pool[i] = atom{}
	}
	m.nextSlot = 0
	for k := range m.tracked {
		delete(m.tracked, k)
	}
}

func (m *atomManager) count() int {
	n := 0
	for i := range m.pool {
		if m.pool[i].active {
			n++
		}
	}
	return n
}

// pointNearScreen reports whether p lies within margin of the window.
func pointNearScreen(p vec2, margin float64) bool {
	return p.X > -margin && p.X < windowW+margin &&
		p.Y > -margin && p.Y < windowH+margin
}
