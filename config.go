package main

import "time"

// Simulation and rendering configuration constants used throughout the
// application. These values define the window size, timing, pool limits, and
// default physics tuning for the pond interference simulation.
const (
	windowW, windowH = 800, 600
	defaultTPS       = 60.0
	maxFrameDelta    = 0.1

	paletteSize = 35

	pgoRecordDuration = 15 * time.Second

	audioSampleRate = 48000
)

// ringParams tunes wavefront growth, reflection, and culling behavior.
type ringParams struct {
	ColorWeightRed   float64
	ColorWeightGreen float64
	ColorWeightBlue  float64
	MinSpeed         float64
	MaxSpeed         float64

	InitialRadius      float64
	MaxRadiusThreshold float64
	Thickness          float64

	ReflectionOpacity float64
	AlphaDivisor      float64
	MinAlpha          float64

	CullMargin      float64
	OffScreenMargin float64

	LowFrequencyThreshold    float64
	MediumFrequencyThreshold float64
}

// atomParams tunes intersection detection and the interference atom pool.
type atomParams struct {
	MaxAtoms int

	RadiusBase         float64
	RadiusEnergyFactor float64

	LifetimeBase         float64
	LifetimeEnergyFactor float64
	FadeStartRatio       float64

	PulseFrequencyBase         float64
	PulseFrequencyEnergyFactor float64
	PulseIntensityBase         float64
	PulseIntensityEnergyFactor float64
	SizePulseFactor            float64
	SizePulseEnergyFactor      float64

	ColorTolerance       int
	EnergyDiffAmplifier  float64
	IntersectionMargin   float64
	CleanupInterval      int
	DeltaTimeCompensator float64
}

// gridParams tunes the broad-phase spatial index.
type gridParams struct {
	CellSize       float64
	ViewportMargin float64
	MarginCells    int
}

// protonParams tunes proton physics and the nuclear state machine.
type protonParams struct {
	MaxProtons int

	BounceDampening float64
	MaxSpeed        float64
	CullMargin      float64

	MinRadius            float64
	MaxRadius            float64
	EnergyToRadiusFactor float64
	EnergyToMassFactor   float64

	DefaultLifetime  float64
	FadeStartRatio   float64
	InfiniteLifetime float64

	NeutronFormationTime     float64
	NeutronFormationDistance float64
	NeutronRadiusMultiplier  float64
	ElectronCaptureDistance  float64
	NegativeDecayTime        float64

	DeuteriumFusionSpeed float64
	Helium3FusionSpeed   float64
	FusionReleaseSpeed   float64
	FusionEjectOffset    float64

	AtomAttractionRange    float64
	AtomAttractionStrength float64
	AtomRepulsionStrength  float64
	ForceSafetyFactor      float64

	MinAtomEnergy           float64
	MinCombinedEnergy       float64
	CollisionThreshold      float64
	CooldownDistance        float64
	SpawnCooldownTime       float64
	MaxSpawnSpeed           float64
	VelocityEnergyFactor    float64
	NegativeEnergyThreshold float64
}

// params collects every tunable constant of the simulation in one place so
// tests and alternative frontends can adjust them without touching logic.
type params struct {
	Ring   ringParams
	Atom   atomParams
	Grid   gridParams
	Proton protonParams
}

// defaultParams returns the baseline tuning of the simulation.
func defaultParams() *params {
	return &params{
		Ring: ringParams{
			ColorWeightRed:           0.1,
			ColorWeightGreen:         0.3,
			ColorWeightBlue:          0.6,
			MinSpeed:                 20.0,
			MaxSpeed:                 120.0,
			InitialRadius:            5.0,
			MaxRadiusThreshold:       2000.0,
			Thickness:                3.0,
			ReflectionOpacity:        0.7,
			AlphaDivisor:             800.0,
			MinAlpha:                 0.1,
			CullMargin:               100.0,
			OffScreenMargin:          500.0,
			LowFrequencyThreshold:    40.0,
			MediumFrequencyThreshold: 80.0,
		},
		Atom: atomParams{
			MaxAtoms:                   35,
			RadiusBase:                 1.8,
			RadiusEnergyFactor:         0.025,
			LifetimeBase:               5.0,
			LifetimeEnergyFactor:       0.02,
			FadeStartRatio:             0.7,
			PulseFrequencyBase:         1.8,
			PulseFrequencyEnergyFactor: 0.06,
			PulseIntensityBase:         0.3,
			PulseIntensityEnergyFactor: 0.01,
			SizePulseFactor:            0.2,
			SizePulseEnergyFactor:      0.01,
			ColorTolerance:             8,
			EnergyDiffAmplifier:        0.4,
			IntersectionMargin:         50.0,
			CleanupInterval:            600,
			DeltaTimeCompensator:       2.0,
		},
		Grid: gridParams{
			CellSize:       200.0,
			ViewportMargin: 200.0,
			MarginCells:    4,
		},
		Proton: protonParams{
			MaxProtons:               75,
			BounceDampening:          0.7,
			MaxSpeed:                 200.0,
			CullMargin:               200.0,
			MinRadius:                3.0,
			MaxRadius:                8.0,
			EnergyToRadiusFactor:     0.01,
			EnergyToMassFactor:       0.1,
			DefaultLifetime:          20.0,
			FadeStartRatio:           0.8,
			InfiniteLifetime:         -1.0,
			NeutronFormationTime:     0.5,
			NeutronFormationDistance: 225.0,
			NeutronRadiusMultiplier:  1.2,
			ElectronCaptureDistance:  15.0,
			NegativeDecayTime:        5.0,
			DeuteriumFusionSpeed:     30.0,
			Helium3FusionSpeed:       60.0,
			FusionReleaseSpeed:       200.0,
			FusionEjectOffset:        10.0,
			AtomAttractionRange:      220.0,
			AtomAttractionStrength:   15000.0,
			AtomRepulsionStrength:    8000.0,
			ForceSafetyFactor:        1.0,
			MinAtomEnergy:            150.0,
			MinCombinedEnergy:        100.0,
			CollisionThreshold:       15.0,
			CooldownDistance:         20.0,
			SpawnCooldownTime:        0.5,
			MaxSpawnSpeed:            200.0,
			VelocityEnergyFactor:     0.5,
			NegativeEnergyThreshold:  400.0,
		},
	}
}
