package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput processes edge-triggered mouse and keyboard commands.
func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		pos := vec2{float64(mx), float64(my)}
		col := g.currentColor()
		id := g.rings.addRing(pos, col)
		log.Printf("ring %d spawned at (%.0f,%.0f): %s", id, pos.X, pos.Y, colorInfo(col, &g.params.Ring))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.colorIndex = (g.colorIndex + 1) % paletteSize
		log.Printf("color changed: %s", colorInfo(g.currentColor(), &g.params.Ring))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.rings.clear()
		g.atoms.clear()
		g.protons.clear()
		log.Printf("cleared (stable particles kept: %d)", g.protons.count())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.labelsOn = !g.labelsOn
	}
}
