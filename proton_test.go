package main

import (
	"image/color"
	"math"
	"testing"
)

var testVioletCol = color.RGBA{200, 100, 255, 255}

func bareAt(pos, vel vec2, energy float64, p *protonParams) proton {
	return newProton(pos, vel, energy, testVioletCol, 1, p)
}

func deuteriumAt(pos, vel vec2, energy float64, p *protonParams) proton {
	pr := bareAt(pos, vel, energy, p)
	pr.charge = 0
	pr.neutrons = 1
	return pr
}

func helium3At(pos, vel vec2, energy float64, p *protonParams) proton {
	pr := bareAt(pos, vel, energy, p)
	pr.neutrons = 2
	return pr
}

func TestSpawnCapacity(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	for i := 0; i < p.Proton.MaxProtons; i++ {
		if !m.admit(bareAt(vec2{400, 300}, vec2{}, 100, &p.Proton)) {
			t.Fatalf("admit %d rejected below capacity", i)
		}
	}
	if m.admit(bareAt(vec2{400, 300}, vec2{}, 100, &p.Proton)) {
		t.Error("admit succeeded at capacity")
	}

	// stable particles do not count against the limit
	m.protons[0].captureElectron(&p.Proton)
	if !m.admit(bareAt(vec2{400, 300}, vec2{}, 100, &p.Proton)) {
		t.Error("admit rejected although a slot became stable")
	}
}

func TestNeutronFormationTiming(t *testing.T) {
	p := defaultParams()
	pr := bareAt(vec2{400, 300}, vec2{}, 100, &p.Proton)
	r0 := pr.radius

	if pr.tickNeutronFormation(0.25, true, &p.Proton) {
		t.Fatal("formed at 0.25s")
	}
	if pr.tickNeutronFormation(0.24, true, &p.Proton) {
		t.Fatal("formed at 0.49s")
	}
	if !pr.tickNeutronFormation(0.01, true, &p.Proton) {
		t.Fatal("did not form at 0.5s cumulative")
	}
	if pr.neutrons != 1 {
		t.Errorf("neutrons = %d, want 1", pr.neutrons)
	}
	if pr.charge != 0 {
		t.Errorf("charge = %d, want 0 (neutral deuterium)", pr.charge)
	}
	if !almostEqual(pr.radius, r0*p.Proton.NeutronRadiusMultiplier, 1e-9) {
		t.Errorf("radius = %v, want %v", pr.radius, r0*p.Proton.NeutronRadiusMultiplier)
	}
}

func TestNeutronTimerResetsAwayFromAtoms(t *testing.T) {
	p := defaultParams()
	pr := bareAt(vec2{400, 300}, vec2{}, 100, &p.Proton)
	pr.tickNeutronFormation(0.4, true, &p.Proton)
	pr.tickNeutronFormation(0.016, false, &p.Proton)
	if pr.tickNeutronFormation(0.4, true, &p.Proton) {
		t.Error("timer did not reset while away from atoms")
	}
	if pr.neutrons != 0 {
		t.Errorf("neutrons = %d, want 0", pr.neutrons)
	}
}

func TestElectronCapture(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	atoms := newAtomManager(&p.Atom)
	atoms.pool[0] = atom{active: true, pos: vec2{405, 300}, energy: 50, maxLifetime: 5}
	atoms.pool[1] = atom{active: true, pos: vec2{700, 300}, energy: 50, maxLifetime: 5}
	m.protons = append(m.protons, deuteriumAt(vec2{400, 300}, vec2{}, 200, &p.Proton))

	m.captureElectrons(atoms)

	pr := &m.protons[0]
	if !pr.hasElectron || !pr.stable() {
		t.Fatal("deuterium did not become stable hydrogen")
	}
	if pr.maxLifetime != p.Proton.InfiniteLifetime {
		t.Errorf("maxLifetime = %v, want infinite", pr.maxLifetime)
	}
	if !atoms.pool[0].marked {
		t.Error("captured atom not marked for deletion")
	}
	if atoms.pool[1].marked {
		t.Error("distant atom marked")
	}
	if pr.elementLabel() != "H" {
		t.Errorf("label = %q, want H", pr.elementLabel())
	}
}

func TestElectronCaptureRange(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	atoms := newAtomManager(&p.Atom)
	atoms.pool[0] = atom{active: true, pos: vec2{420, 300}, energy: 50, maxLifetime: 5}
	m.protons = append(m.protons, deuteriumAt(vec2{400, 300}, vec2{}, 200, &p.Proton))

	m.captureElectrons(atoms)
	if m.protons[0].hasElectron {
		t.Error("captured an atom 20 px away, range is 15")
	}
}

func TestDeuteriumFusion(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	rings := newRingManager(&p.Ring)
	m.protons = append(m.protons,
		deuteriumAt(vec2{400, 300}, vec2{0, 0}, 200, &p.Proton),
		bareAt(vec2{404, 300}, vec2{60, 0}, 100, &p.Proton),
	)

	m.fuse(rings)

	he3 := &m.protons[0]
	if !he3.helium3() {
		t.Fatalf("fusion product charge=%d neutrons=%d, want helium-3", he3.charge, he3.neutrons)
	}
	if !m.protons[1].marked {
		t.Error("consumed proton not marked")
	}
	if !almostEqual(he3.energy, 300, 1e-9) {
		t.Errorf("energy = %v, want 300", he3.energy)
	}
	// momentum conservation: m1=20 at rest, m2=10 at (60,0)
	if !almostEqual(he3.vel.X, 20, 1e-9) || !almostEqual(he3.vel.Y, 0, 1e-9) {
		t.Errorf("velocity = %v, want (20,0)", he3.vel)
	}
	if !almostEqual(he3.pos.X, 400*2.0/3+404/3.0, 1e-9) {
		t.Errorf("position X = %v, want mass-weighted center", he3.pos.X)
	}
	if rings.count() != 1 {
		t.Errorf("energy release rings = %d, want 1", rings.count())
	}
	if he3.elementLabel() != "He3" {
		t.Errorf("label = %q, want He3", he3.elementLabel())
	}
}

func TestFusionSpeedThresholdIsExclusive(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	rings := newRingManager(&p.Ring)
	m.protons = append(m.protons,
		deuteriumAt(vec2{400, 300}, vec2{0, 0}, 200, &p.Proton),
		bareAt(vec2{404, 300}, vec2{p.Proton.DeuteriumFusionSpeed, 0}, 100, &p.Proton),
	)

	m.fuse(rings)
	if m.protons[0].helium3() {
		t.Error("fusion fired at exactly the threshold speed")
	}
	if rings.count() != 0 {
		t.Error("ring spawned without fusion")
	}
}

func TestHelium3Fusion(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	rings := newRingManager(&p.Ring)
	m.protons = append(m.protons,
		helium3At(vec2{400, 300}, vec2{80, 0}, 200, &p.Proton),
		helium3At(vec2{404, 300}, vec2{0, 0}, 200, &p.Proton),
	)

	m.fuse(rings)

	he4 := &m.protons[0]
	if he4.charge != 2 || he4.neutrons != 2 || !he4.stable() {
		t.Fatalf("product charge=%d neutrons=%d, want stable helium-4", he4.charge, he4.neutrons)
	}
	if !almostEqual(he4.energy, 200, 1e-9) {
		t.Errorf("energy = %v, want half of 400", he4.energy)
	}
	if !m.protons[1].marked {
		t.Error("consumed helium-3 not marked")
	}
	if len(m.protons) != 4 {
		t.Fatalf("len = %d, want 4 (product, consumed, two ejected)", len(m.protons))
	}
	for _, i := range []int{2, 3} {
		ej := &m.protons[i]
		if !ej.bareProton() {
			t.Errorf("ejected particle %d is not a bare proton", i)
		}
		if !almostEqual(ej.energy, 100, 1e-9) {
			t.Errorf("ejected energy = %v, want quarter of 400", ej.energy)
		}
		if !almostEqual(ej.vel.len(), p.Proton.FusionReleaseSpeed, 1e-9) {
			t.Errorf("ejected speed = %v, want %v", ej.vel.len(), p.Proton.FusionReleaseSpeed)
		}
	}
	if rings.count() != 2 {
		t.Errorf("energy release rings = %d, want 2", rings.count())
	}

	m.sweep()
	if len(m.protons) != 3 {
		t.Errorf("len after sweep = %d, want 3", len(m.protons))
	}
}

func TestHelium4EjectionPerpendicularToRelativeVelocity(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	rings := newRingManager(&p.Ring)
	m.protons = append(m.protons,
		helium3At(vec2{400, 300}, vec2{100, 0}, 200, &p.Proton),
		helium3At(vec2{404, 300}, vec2{0, -100}, 200, &p.Proton),
	)

	m.fuse(rings)

	if len(m.protons) != 4 {
		t.Fatalf("len = %d, want 4", len(m.protons))
	}
	relDir := (vec2{100, 100}).normalized() // pre-collision relative velocity
	for _, i := range []int{2, 3} {
		ej := &m.protons[i]
		dot := ej.vel.X*relDir.X + ej.vel.Y*relDir.Y
		if math.Abs(dot) > 1e-6 {
			t.Errorf("ejected velocity %v not perpendicular to relative velocity (dot %v)", ej.vel, dot)
		}
		if !almostEqual(ej.vel.len(), p.Proton.FusionReleaseSpeed, 1e-9) {
			t.Errorf("ejected speed = %v, want %v", ej.vel.len(), p.Proton.FusionReleaseSpeed)
		}
	}
}

func TestAbsorption(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	m.protons = append(m.protons,
		bareAt(vec2{400, 300}, vec2{10, 0}, 100, &p.Proton),
		bareAt(vec2{403, 300}, vec2{-10, 0}, 300, &p.Proton),
	)

	m.absorbCollisions()

	if !m.protons[0].marked {
		t.Error("lower-energy proton should be absorbed")
	}
	winner := &m.protons[1]
	if winner.marked {
		t.Fatal("higher-energy proton was absorbed")
	}
	if !almostEqual(winner.energy, 400, 1e-9) {
		t.Errorf("energy = %v, want 400", winner.energy)
	}
	// energy-weighted velocity: (-10)*0.75 + 10*0.25
	if !almostEqual(winner.vel.X, -5, 1e-9) {
		t.Errorf("velocity X = %v, want -5", winner.vel.X)
	}
}

func TestConsumedProtonCannotAbsorb(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	// the middle proton loses to its right neighbor; the left one overlaps
	// only the loser and must survive the pass intact
	m.protons = append(m.protons,
		bareAt(vec2{400, 300}, vec2{}, 100, &p.Proton),
		bareAt(vec2{405, 300}, vec2{}, 300, &p.Proton),
		bareAt(vec2{394, 300}, vec2{}, 50, &p.Proton),
	)

	m.absorbCollisions()
	m.sweep()

	if len(m.protons) != 2 {
		t.Fatalf("survivors = %d, want 2", len(m.protons))
	}
	var total float64
	for i := range m.protons {
		total += m.protons[i].energy
	}
	if !almostEqual(total, 450, 1e-9) {
		t.Errorf("total energy = %v, want 450 (nothing annihilated)", total)
	}
}

func TestAbsorptionSkipsFusionPairs(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	m.protons = append(m.protons,
		deuteriumAt(vec2{400, 300}, vec2{0, 0}, 200, &p.Proton),
		bareAt(vec2{404, 300}, vec2{10, 0}, 100, &p.Proton),
	)

	m.absorbCollisions()
	if m.protons[0].marked || m.protons[1].marked {
		t.Error("fusion-eligible pair must not merge by absorption")
	}
}

func TestSpawnFromAtomCollision(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	atoms := newAtomManager(&p.Atom)
	atoms.pool[0] = atom{active: true, pos: vec2{400, 300}, energy: 200, col: testRed, maxLifetime: 5}
	atoms.pool[1] = atom{active: true, pos: vec2{410, 300}, energy: 300, col: testBlue, maxLifetime: 5}

	m.spawnFromAtoms(atoms)

	if len(m.protons) != 1 {
		t.Fatalf("len = %d, want 1", len(m.protons))
	}
	pr := &m.protons[0]
	if pr.charge != -1 {
		t.Errorf("charge = %d, want -1 for combined energy 500", pr.charge)
	}
	if !almostEqual(pr.energy, 500, 1e-9) {
		t.Errorf("energy = %v, want 500", pr.energy)
	}
	if pr.pos != (vec2{405, 300}) {
		t.Errorf("pos = %v, want midpoint (405,300)", pr.pos)
	}
	if !almostEqual(pr.vel.len(), p.Proton.MaxSpawnSpeed, 1e-9) {
		t.Errorf("speed = %v, want capped at %v", pr.vel.len(), p.Proton.MaxSpawnSpeed)
	}
	if !almostEqual(pr.maxLifetime, p.Proton.NegativeDecayTime, 1e-9) {
		t.Errorf("negative proton lifetime = %v, want %v", pr.maxLifetime, p.Proton.NegativeDecayTime)
	}
	if !atoms.pool[0].marked || !atoms.pool[1].marked {
		t.Error("colliding atoms not consumed")
	}
	if pr.elementLabel() != "H-" {
		t.Errorf("label = %q, want H-", pr.elementLabel())
	}
}

func TestSpawnCooldownSuppressesNearbySpawns(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	atoms := newAtomManager(&p.Atom)
	atoms.pool[0] = atom{active: true, pos: vec2{400, 300}, energy: 200, col: testRed, maxLifetime: 5}
	atoms.pool[1] = atom{active: true, pos: vec2{410, 300}, energy: 300, col: testBlue, maxLifetime: 5}
	m.spawnFromAtoms(atoms)

	atoms.pool[2] = atom{active: true, pos: vec2{403, 302}, energy: 200, col: testRed, maxLifetime: 5}
	atoms.pool[3] = atom{active: true, pos: vec2{409, 302}, energy: 300, col: testBlue, maxLifetime: 5}
	m.spawnFromAtoms(atoms)

	if len(m.protons) != 1 {
		t.Errorf("len = %d, want 1 (second spawn on cooldown)", len(m.protons))
	}
}

func TestSpawnRequiresEnergeticAtoms(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	atoms := newAtomManager(&p.Atom)
	atoms.pool[0] = atom{active: true, pos: vec2{400, 300}, energy: 140, col: testRed, maxLifetime: 5}
	atoms.pool[1] = atom{active: true, pos: vec2{405, 300}, energy: 500, col: testBlue, maxLifetime: 5}

	m.spawnFromAtoms(atoms)
	if len(m.protons) != 0 {
		t.Errorf("len = %d, want 0 when one atom is below the energy floor", len(m.protons))
	}
}

func TestProtonBounceAndClamp(t *testing.T) {
	p := defaultParams()
	pr := bareAt(vec2{5, 300}, vec2{-100, 0}, 100, &p.Proton)
	pr.update(0.1, &p.Proton)
	if pr.vel.X <= 0 {
		t.Error("velocity X not reflected off the left wall")
	}
	if !almostEqual(pr.vel.X, 70, 1e-9) {
		t.Errorf("velocity X = %v, want 70 after dampening", pr.vel.X)
	}
	if pr.pos.X < pr.radius {
		t.Errorf("position X = %v inside the wall", pr.pos.X)
	}

	fast := bareAt(vec2{400, 300}, vec2{500, 0}, 100, &p.Proton)
	fast.update(0.01, &p.Proton)
	if fast.vel.len() > p.Proton.MaxSpeed+1e-9 {
		t.Errorf("speed = %v, want clamped to %v", fast.vel.len(), p.Proton.MaxSpeed)
	}
}

func TestUnstableProtonsDecay(t *testing.T) {
	p := defaultParams()
	pr := bareAt(vec2{400, 300}, vec2{}, 100, &p.Proton)
	pr.age = p.Proton.DefaultLifetime - 0.001
	pr.update(0.01, &p.Proton)
	if pr.active {
		t.Error("bare proton survived past its lifetime")
	}

	stable := deuteriumAt(vec2{400, 300}, vec2{}, 100, &p.Proton)
	stable.captureElectron(&p.Proton)
	stable.age = 1e6
	stable.update(0.01, &p.Proton)
	if !stable.active {
		t.Error("stable hydrogen decayed")
	}
}

func TestClearPreservesStable(t *testing.T) {
	p := defaultParams()
	m := newProtonManager(&p.Proton)
	h := deuteriumAt(vec2{100, 100}, vec2{}, 100, &p.Proton)
	h.captureElectron(&p.Proton)
	he4 := helium3At(vec2{200, 200}, vec2{}, 100, &p.Proton)
	he4.charge = 2
	m.protons = append(m.protons,
		h,
		he4,
		bareAt(vec2{300, 300}, vec2{}, 100, &p.Proton),
		deuteriumAt(vec2{400, 300}, vec2{}, 100, &p.Proton),
	)

	m.clear()
	if len(m.protons) != 2 {
		t.Fatalf("len = %d, want 2 stable survivors", len(m.protons))
	}
	for i := range m.protons {
		if !m.protons[i].stable() {
			t.Errorf("survivor %d is not stable", i)
		}
	}
}

func TestElementLabels(t *testing.T) {
	p := defaultParams()
	neg := newProton(vec2{}, vec2{}, 100, testVioletCol, -1, &p.Proton)
	he4 := helium3At(vec2{}, vec2{}, 100, &p.Proton)
	he4.charge = 2
	stable := deuteriumAt(vec2{}, vec2{}, 100, &p.Proton)
	stable.captureElectron(&p.Proton)

	tests := []struct {
		name  string
		pr    proton
		label string
	}{
		{"bare", bareAt(vec2{}, vec2{}, 100, &p.Proton), "H+"},
		{"negative", neg, "H-"},
		{"deuterium", deuteriumAt(vec2{}, vec2{}, 100, &p.Proton), "H1"},
		{"stable hydrogen", stable, "H"},
		{"helium3", helium3At(vec2{}, vec2{}, 100, &p.Proton), "He3"},
		{"helium4", he4, "He4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pr.elementLabel(); got != tt.label {
				t.Errorf("label = %q, want %q", got, tt.label)
			}
		})
	}
}
