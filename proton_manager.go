package main

import (
	"image/color"
	"log"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// spawnCooldown suppresses repeated proton spawns from the same spot.
type spawnCooldown struct {
	pos       vec2
	remaining float64
}

// protonManager owns every proton and runs the per-tick nuclear pipeline:
// physics, atom charge forces, neutron formation, electron capture, fusion,
// absorption, spawning from atom collisions, and the removal sweep.
type protonManager struct {
	params *protonParams

	protons   []proton
	cooldowns []spawnCooldown

	// fusionHook fires once per fusion event, after state has settled.
	fusionHook func(pos vec2)
}

func newProtonManager(p *protonParams) *protonManager {
	return &protonManager{
		params:  p,
		protons: make([]proton, 0, p.MaxProtons),
	}
}

func (m *protonManager) update(dt float64, atoms *atomManager, rings *ringManager) {
	m.tickCooldowns(dt)
	for i := range m.protons {
		m.protons[i].update(dt, m.params)
	}
	m.applyAtomForces(dt, atoms)
	m.formNeutrons(dt, atoms)
	m.captureElectrons(atoms)
	m.fuse(rings)
	m.absorbCollisions()
	m.spawnFromAtoms(atoms)
	m.sweep()
}

func (m *protonManager) tickCooldowns(dt float64) {
	kept := m.cooldowns[:0]
	for _, c := range m.cooldowns {
		c.remaining -= dt
		if c.remaining > 0 {
			kept = append(kept, c)
		}
	}
	m.cooldowns = kept
}

// applyAtomForces pulls positive protons toward nearby atoms and pushes
// negative ones away, inverse-square with a softening term.
func (m *protonManager) applyAtomForces(dt float64, atoms *atomManager) {
	p := m.params
	rangeSq := p.AtomAttractionRange * p.AtomAttractionRange
	for i := range m.protons {
		pr := &m.protons[i]
		if !pr.active || pr.charge == 0 || pr.stable() || pr.mass <= 0 {
			continue
		}
		for j := range atoms.pool {
			a := &atoms.pool[j]
			if !a.active {
				continue
			}
			delta := a.pos.sub(pr.pos)
			distSq := delta.lenSq()
			if distSq > rangeSq || distSq < 1.0 {
				continue
			}
			dir := delta.scale(1 / math.Sqrt(distSq))
			var magnitude float64
			if pr.charge > 0 {
				magnitude = p.AtomAttractionStrength / (distSq + p.ForceSafetyFactor)
			} else {
				magnitude = -p.AtomRepulsionStrength / (distSq + p.ForceSafetyFactor)
			}
			pr.vel = pr.vel.add(dir.scale(magnitude / pr.mass * dt))
		}
	}
}

// formNeutrons advances the neutron timer of every bare proton that sits
// near an atom this tick.
func (m *protonManager) formNeutrons(dt float64, atoms *atomManager) {
	p := m.params
	distSq := p.NeutronFormationDistance * p.NeutronFormationDistance
	for i := range m.protons {
		pr := &m.protons[i]
		if !pr.active || !pr.bareProton() {
			continue
		}
		near := false
		for j := range atoms.pool {
			a := &atoms.pool[j]
			if a.active && a.pos.distSqTo(pr.pos) < distSq {
				near = true
				break
			}
		}
		if pr.tickNeutronFormation(dt, near, p) {
			log.Printf("neutron formed: proton at (%.0f,%.0f) became deuterium", pr.pos.X, pr.pos.Y)
		}
	}
}

// captureElectrons lets deuterium consume the closest atom within capture
// range, becoming stable hydrogen.
func (m *protonManager) captureElectrons(atoms *atomManager) {
	p := m.params
	captureSq := p.ElectronCaptureDistance * p.ElectronCaptureDistance
	for i := range m.protons {
		pr := &m.protons[i]
		if !pr.active || !pr.deuterium() {
			continue
		}
		closest := -1
		closestSq := captureSq
		for j := range atoms.pool {
			a := &atoms.pool[j]
			if !a.active || a.marked {
				continue
			}
			if dSq := a.pos.distSqTo(pr.pos); dSq < closestSq {
				closestSq = dSq
				closest = j
			}
		}
		if closest < 0 {
			continue
		}
		atoms.markForDeletion(closest)
		pr.captureElectron(p)
		log.Printf("electron captured: stable hydrogen at (%.0f,%.0f)", pr.pos.X, pr.pos.Y)
	}
}

// fuse handles the two fusion reactions. Deuterium plus a bare proton above
// the speed threshold becomes helium-3; two helium-3 above theirs become
// stable helium-4 and eject two bare protons.
func (m *protonManager) fuse(rings *ringManager) {
	p := m.params
	for i := 0; i < len(m.protons); i++ {
		a := &m.protons[i]
		if !a.active || a.marked {
			continue
		}
		for j := i + 1; j < len(m.protons); j++ {
			b := &m.protons[j]
			if !b.active || b.marked {
				continue
			}
			if a.pos.distTo(b.pos) >= a.radius+b.radius {
				continue
			}
			relSpeed := a.vel.sub(b.vel).len()
			switch {
			case (a.deuterium() && b.bareProton()) || (a.bareProton() && b.deuterium()):
				if relSpeed <= p.DeuteriumFusionSpeed {
					continue
				}
				m.fuseToHelium3(a, b, rings)
			case a.helium3() && b.helium3():
				if relSpeed <= p.Helium3FusionSpeed {
					continue
				}
				m.fuseToHelium4(a, b, rings)
				// admit may have grown the slice, re-take the pointer
				a = &m.protons[i]
			}
		}
	}
}

func (m *protonManager) fuseToHelium3(a, b *proton, rings *ringManager) {
	p := m.params
	totalMass := a.mass + b.mass
	com := a.pos
	vel := a.vel
	if totalMass > 0 {
		com = a.pos.scale(a.mass / totalMass).add(b.pos.scale(b.mass / totalMass))
		vel = a.vel.scale(a.mass / totalMass).add(b.vel.scale(b.mass / totalMass))
	}
	a.pos = com
	a.vel = vel
	a.energy += b.energy
	a.mass = p.EnergyToMassFactor * a.energy
	a.radius = radiusFromEnergy(a.energy, p) * p.NeutronRadiusMultiplier
	a.charge = 1
	a.neutrons = 2
	a.age = 0
	a.maxLifetime = p.DefaultLifetime
	b.marked = true
	rings.addRing(com, color.RGBA{255, 200, 100, 255})
	log.Printf("fusion: helium-3 formed at (%.0f,%.0f), energy %.0f", com.X, com.Y, a.energy)
	if m.fusionHook != nil {
		m.fusionHook(com)
	}
}

func (m *protonManager) fuseToHelium4(a, b *proton, rings *ringManager) {
	p := m.params
	totalEnergy := a.energy + b.energy
	totalMass := a.mass + b.mass
	rel := a.vel.sub(b.vel)
	com := a.pos
	vel := a.vel
	if totalMass > 0 {
		com = a.pos.scale(a.mass / totalMass).add(b.pos.scale(b.mass / totalMass))
		vel = a.vel.scale(a.mass / totalMass).add(b.vel.scale(b.mass / totalMass))
	}
	a.pos = com
	a.vel = vel
	a.energy = 0.5 * totalEnergy
	a.mass = p.EnergyToMassFactor * a.energy
	a.radius = radiusFromEnergy(a.energy, p) * p.NeutronRadiusMultiplier
	a.charge = 2
	a.neutrons = 2
	a.maxLifetime = p.InfiniteLifetime
	b.marked = true

	perp := rel.perp().normalized()
	if perp.lenSq() == 0 {
		perp = vec2{0, 1}
	}
	ejectEnergy := 0.25 * totalEnergy
	ejectCol := color.RGBA{255, 255, 100, 255}
	m.admit(newProton(com.add(perp.scale(p.FusionEjectOffset)), perp.scale(p.FusionReleaseSpeed), ejectEnergy, ejectCol, 1, p))
	m.admit(newProton(com.sub(perp.scale(p.FusionEjectOffset)), perp.scale(-p.FusionReleaseSpeed), ejectEnergy, ejectCol, 1, p))
	rings.addRing(com.add(perp.scale(p.FusionEjectOffset)), ejectCol)
	rings.addRing(com.sub(perp.scale(p.FusionEjectOffset)), ejectCol)
	log.Printf("fusion: stable helium-4 formed at (%.0f,%.0f)", com.X, com.Y)
	if m.fusionHook != nil {
		m.fusionHook(com)
	}
}

// absorbCollisions merges overlapping non-stable pairs that matched no
// fusion case. The higher-energy particle survives.
func (m *protonManager) absorbCollisions() {
	p := m.params
	for i := 0; i < len(m.protons); i++ {
		a := &m.protons[i]
		if !a.active || a.marked || a.stable() {
			continue
		}
		for j := i + 1; j < len(m.protons); j++ {
			b := &m.protons[j]
			if !b.active || b.marked || b.stable() {
				continue
			}
			if a.pos.distTo(b.pos) >= a.radius+b.radius {
				continue
			}
			if m.fusionPair(a, b) {
				continue
			}
			winner, loser := a, b
			if b.energy > a.energy {
				winner, loser = b, a
			}
			winner.absorb(loser, p)
			loser.marked = true
			if loser == a {
				// a consumed proton cannot keep absorbing partners
				break
			}
		}
	}
}

// fusionPair reports whether the pair belongs to a fusion reaction and
// should never be merged by absorption.
func (m *protonManager) fusionPair(a, b *proton) bool {
	if (a.deuterium() && b.bareProton()) || (a.bareProton() && b.deuterium()) {
		return true
	}
	return a.helium3() && b.helium3()
}

// spawnFromAtoms turns energetic atom collisions into protons. Both atoms
// are consumed. Spawns near a recent spawn point are suppressed.
func (m *protonManager) spawnFromAtoms(atoms *atomManager) {
	p := m.params
	thresholdSq := p.CollisionThreshold * p.CollisionThreshold
	for i := 0; i < len(atoms.pool); i++ {
		a := &atoms.pool[i]
		if !a.active || a.marked || a.energy < p.MinAtomEnergy {
			continue
		}
		for j := i + 1; j < len(atoms.pool); j++ {
			b := &atoms.pool[j]
			if !b.active || b.marked || b.energy < p.MinAtomEnergy {
				continue
			}
			combined := a.energy + b.energy
			if combined < p.MinCombinedEnergy {
				continue
			}
			if a.pos.distSqTo(b.pos) > thresholdSq {
				continue
			}
			mid := a.pos.add(b.pos).scale(0.5)
			if m.onCooldown(mid) {
				continue
			}
			dir := b.pos.sub(a.pos).perp().normalized()
			if dir.lenSq() == 0 {
				dir = vec2{0, -1}
			}
			speed := math.Min(p.VelocityEnergyFactor*combined, p.MaxSpawnSpeed)
			charge := 1
			if combined >= p.NegativeEnergyThreshold {
				charge = -1
			}
			col := blendAtomColors(a, b, combined)
			if !m.admit(newProton(mid, dir.scale(speed), combined, col, charge, p)) {
				return
			}
			a.marked = true
			b.marked = true
			m.cooldowns = append(m.cooldowns, spawnCooldown{pos: mid, remaining: p.SpawnCooldownTime})
			log.Printf("proton spawned at (%.0f,%.0f), energy %.0f, charge %+d", mid.X, mid.Y, combined, charge)
			break
		}
	}
}

// blendAtomColors mixes the two colliding atoms' colors weighted by energy.
func blendAtomColors(a, b *atom, combined float64) color.RGBA {
	c1 := colorful.Color{R: float64(a.col.R) / 255, G: float64(a.col.G) / 255, B: float64(a.col.B) / 255}
	c2 := colorful.Color{R: float64(b.col.R) / 255, G: float64(b.col.G) / 255, B: float64(b.col.B) / 255}
	t := 0.5
	if combined > 0 {
		t = b.energy / combined
	}
	r, g, bl := c1.BlendRgb(c2, t).RGB255()
	return color.RGBA{r, g, bl, 255}
}

// onCooldown reports whether pos is too close to a recent spawn point.
func (m *protonManager) onCooldown(pos vec2) bool {
	distSq := m.params.CooldownDistance * m.params.CooldownDistance
	for _, c := range m.cooldowns {
		if c.pos.distSqTo(pos) < distSq {
			return true
		}
	}
	return false
}

// admit appends a proton unless the non-stable population is at capacity.
// Stable particles never count against the limit.
func (m *protonManager) admit(pr proton) bool {
	if !pr.stable() && m.unstableCount() >= m.params.MaxProtons {
		return false
	}
	m.protons = append(m.protons, pr)
	return true
}

func (m *protonManager) unstableCount() int {
	n := 0
	for i := range m.protons {
		if m.protons[i].active && !m.protons[i].stable() {
			n++
		}
	}
	return n
}

func (m *protonManager) count() int {
	n := 0
	for i := range m.protons {
		if m.protons[i].active {
			n++
		}
	}
	return n
}

// sweep compacts dead and marked protons out of the slice.
func (m *protonManager) sweep() {
	kept := m.protons[:0]
	for i := range m.protons {
		pr := m.protons[i]
		if pr.active && !pr.marked {
			kept = append(kept, pr)
		}
	}
	m.protons = kept
}

// clear removes every non-stable proton. Stable hydrogen and helium-4
// survive a board clear.
func (m *protonManager) clear() {
	kept := m.protons[:0]
	for i := range m.protons {
		if m.protons[i].active && m.protons[i].stable() {
			kept = append(kept, m.protons[i])
		}
	}
	m.protons = kept
	m.cooldowns = m.cooldowns[:0]
}
