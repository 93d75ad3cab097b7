package main

import (
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Game encapsulates the full simulation state and the per-tick pipeline.
type Game struct {
	params *params

	rings   *ringManager
	atoms   *atomManager
	protons *protonManager
	grid    *spatialGrid

	shapes []shape

	colorIndex  int
	labelsOn    bool
	tickCounter int

	lastUpdate time.Time

	audioCtx    *audio.Context
	chime       *fusionChime
	audioPlayer *audio.Player
}

// newGame constructs a fully initialized Game instance.
func newGame() *Game {
	p := defaultParams()
	g := &Game{
		params:   p,
		rings:    newRingManager(&p.Ring),
		atoms:    newAtomManager(&p.Atom),
		grid:     newSpatialGrid(&p.Grid, *gridCellFlag),
		labelsOn: *showLabelsFlag,
	}
	g.protons = newProtonManager(&p.Proton)
	if *enableAudioFlag {
		g.audioCtx = audio.NewContext(audioSampleRate)
		g.chime = newFusionChime()
		if player, err := g.audioCtx.NewPlayer(g.chime); err != nil {
			log.Printf("Audio player creation failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.Play()
		}
		g.protons.fusionHook = func(pos vec2) { g.chime.Trigger() }
	}
	return g
}

// Update advances the simulation one tick: input, ring growth, shape and
// grid rebuild, atom detection, then the proton pipeline.
func (g *Game) Update() error {
	now := time.Now()
	dt := 1.0 / defaultTPS
	if !g.lastUpdate.IsZero() {
		dt = math.Min(now.Sub(g.lastUpdate).Seconds(), maxFrameDelta)
	}
	g.lastUpdate = now

	g.handleInput()

	g.rings.update(dt)
	g.shapes = buildShapes(g.rings, g.shapes)
	g.grid.rebuild(g.shapes)
	g.atoms.update(dt, g.shapes, g.grid)
	g.protons.update(dt, g.atoms, g.rings)

	g.tickCounter++
	return nil
}

// currentColor returns the palette color new rings will use.
func (g *Game) currentColor() color.RGBA {
	return palette[g.colorIndex]
}
