package main

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// proton is a massive particle spawned by colliding atoms. Its nuclear state
// is encoded by charge, neutron count, and electron capture:
//
//	charge +1, 0 neutrons              bare proton (H+)
//	charge -1                          negative proton (H-), short lived
//	charge 0, 1 neutron                deuterium (H1)
//	electron captured                  stable hydrogen (H)
//	charge +1, 2 neutrons              helium-3 (He3)
//	charge +2, 2 neutrons              helium-4 (He4), stable
type proton struct {
	active bool
	marked bool

	pos vec2
	vel vec2

	energy float64
	mass   float64
	radius float64
	col    color.RGBA

	charge      int
	neutrons    int
	hasElectron bool

	age         float64
	maxLifetime float64

	// nearAtomTime accumulates while a deuterium candidate stays close to
	// an atom. Formation triggers once it reaches the threshold.
	nearAtomTime float64
}

// radiusFromEnergy maps proton energy to a draw/collision radius.
func radiusFromEnergy(energy float64, p *protonParams) float64 {
	return clampFloat(p.MinRadius+p.EnergyToRadiusFactor*energy, p.MinRadius, p.MaxRadius)
}

// newProton builds a bare proton at pos. A negative charge shortens its life.
func newProton(pos, vel vec2, energy float64, col color.RGBA, charge int, p *protonParams) proton {
	lifetime := p.DefaultLifetime
	if charge < 0 {
		lifetime = p.NegativeDecayTime
	}
	return proton{
		active:      true,
		pos:         pos,
		vel:         vel,
		energy:      energy,
		mass:        p.EnergyToMassFactor * energy,
		radius:      radiusFromEnergy(energy, p),
		col:         col,
		charge:      charge,
		maxLifetime: lifetime,
	}
}

// stable reports whether the particle is exempt from decay, culling, and
// capacity limits.
func (pr *proton) stable() bool {
	return pr.hasElectron || (pr.charge == 2 && pr.neutrons == 2)
}

// helium3 reports whether the particle is a helium-3 nucleus.
func (pr *proton) helium3() bool {
	return pr.charge == 1 && pr.neutrons == 2
}

// deuterium reports whether the particle is a deuterium nucleus.
func (pr *proton) deuterium() bool {
	return pr.charge == 0 && pr.neutrons == 1 && !pr.hasElectron
}

// bareProton reports whether the particle is a plain positive proton.
func (pr *proton) bareProton() bool {
	return pr.charge == 1 && pr.neutrons == 0 && !pr.hasElectron
}

// update ages, integrates, bounces, and culls one particle.
func (pr *proton) update(dt float64, p *protonParams) {
	if !pr.active {
		return
	}
	if !pr.stable() {
		pr.age += dt
		if pr.marked || (pr.maxLifetime > 0 && pr.age >= pr.maxLifetime) {
			pr.active = false
			return
		}
	} else if pr.marked {
		pr.active = false
		return
	}

	if speed := pr.vel.len(); speed > p.MaxSpeed {
		pr.vel = pr.vel.scale(p.MaxSpeed / speed)
	}
	pr.pos = pr.pos.add(pr.vel.scale(dt))

	if pr.pos.X-pr.radius < 0 {
		pr.pos.X = pr.radius
		pr.vel.X = -pr.vel.X * p.BounceDampening
	} else if pr.pos.X+pr.radius > windowW {
		pr.pos.X = windowW - pr.radius
		pr.vel.X = -pr.vel.X * p.BounceDampening
	}
	if pr.pos.Y-pr.radius < 0 {
		pr.pos.Y = pr.radius
		pr.vel.Y = -pr.vel.Y * p.BounceDampening
	} else if pr.pos.Y+pr.radius > windowH {
		pr.pos.Y = windowH - pr.radius
		pr.vel.Y = -pr.vel.Y * p.BounceDampening
	}

	if !pr.stable() && !pointNearScreen(pr.pos, p.CullMargin) {
		pr.active = false
	}
}

// tickNeutronFormation accumulates near-atom time for bare protons and
// converts them to deuterium when the threshold is reached. Time resets
// whenever the proton drifts away from all atoms.
func (pr *proton) tickNeutronFormation(dt float64, nearAtom bool, p *protonParams) bool {
	if !pr.bareProton() {
		return false
	}
	if !nearAtom {
		pr.nearAtomTime = 0
		return false
	}
	pr.nearAtomTime += dt
	if pr.nearAtomTime < p.NeutronFormationTime {
		return false
	}
	pr.charge = 0
	pr.neutrons = 1
	pr.radius *= p.NeutronRadiusMultiplier
	pr.nearAtomTime = 0
	return true
}

// captureElectron turns a deuterium nucleus into stable hydrogen.
func (pr *proton) captureElectron(p *protonParams) {
	pr.hasElectron = true
	pr.maxLifetime = p.InfiniteLifetime
}

// absorb merges another particle into this one: summed energy, momentum
// weighted velocity, and an energy-weighted color blend.
func (pr *proton) absorb(other *proton, p *protonParams) {
	total := pr.energy + other.energy
	if total > 0 {
		pr.vel = pr.vel.scale(pr.energy / total).add(other.vel.scale(other.energy / total))
		c1 := colorful.Color{R: float64(pr.col.R) / 255, G: float64(pr.col.G) / 255, B: float64(pr.col.B) / 255}
		c2 := colorful.Color{R: float64(other.col.R) / 255, G: float64(other.col.G) / 255, B: float64(other.col.B) / 255}
		blended := c1.BlendRgb(c2, other.energy/total)
		r, g, b := blended.RGB255()
		pr.col = color.RGBA{r, g, b, 255}
	}
	pr.energy = total
	pr.mass = p.EnergyToMassFactor * total
	pr.radius = radiusFromEnergy(total, p)
	if pr.neutrons > 0 {
		pr.radius *= p.NeutronRadiusMultiplier
	}
}

// alpha fades unstable particles over the last portion of their lifetime.
func (pr *proton) alpha(p *protonParams) float64 {
	if pr.stable() || pr.maxLifetime <= 0 {
		return 1
	}
	ratio := pr.age / pr.maxLifetime
	if ratio <= p.FadeStartRatio {
		return 1
	}
	return clampFloat(1-(ratio-p.FadeStartRatio)/(1-p.FadeStartRatio), 0, 1)
}

// elementLabel returns the symbol shown next to the particle.
func (pr *proton) elementLabel() string {
	switch {
	case pr.charge == 2 && pr.neutrons == 2:
		return "He4"
	case pr.helium3():
		return "He3"
	case pr.hasElectron:
		return "H"
	case pr.deuterium():
		return "H1"
	case pr.charge < 0:
		return "H-"
	default:
		return "H+"
	}
}

// displayColor applies the state-dependent tint to the particle's base color.
func (pr *proton) displayColor() color.RGBA {
	switch {
	case pr.charge == 2 && pr.neutrons == 2:
		return tintColor(color.RGBA{255, 255, 100, 255}, 1.8)
	case pr.helium3():
		return tintColor(color.RGBA{255, 200, 100, 255}, 1.5)
	case pr.hasElectron:
		return tintColor(color.RGBA{255, 255, 255, 255}, 1.3)
	case pr.charge == 0:
		return color.RGBA{200, 200, 200, 255}
	case pr.bareProton():
		c := pr.col
		c.R = clampChannel(int(float64(c.R) * 1.2))
		return c
	default:
		return pr.col
	}
}

// tintColor multiplies each channel of c by factor, clamped to 255.
func tintColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: clampChannel(int(float64(c.R) * factor)),
		G: clampChannel(int(float64(c.G) * factor)),
		B: clampChannel(int(float64(c.B) * factor)),
		A: c.A,
	}
}
