package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var backgroundColor = color.RGBA{5, 10, 20, 255}

// Draw renders rings, reflections, atoms, protons, and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	rp := &g.params.Ring
	thickness := float32(rp.Thickness)
	for i := range g.rings.rings {
		r := &g.rings.rings[i]
		a := r.alpha(rp)
		vector.StrokeCircle(screen, float32(r.center.X), float32(r.center.Y),
			float32(r.radius), thickness, applyAlpha(r.col, a), true)
		for wall := 0; wall < 4; wall++ {
			if !r.reflectionNearScreen(wall, rp) {
				continue
			}
			c := r.reflections[wall].center
			vector.StrokeCircle(screen, float32(c.X), float32(c.Y),
				float32(r.radius), thickness, applyAlpha(r.col, a*rp.ReflectionOpacity), true)
		}
	}

	for i := range g.atoms.pool {
		a := &g.atoms.pool[i]
		if !a.active {
			continue
		}
		alpha := a.alpha(&g.params.Atom)
		pulse := 1 + a.pulseIntensity*math.Sin(a.age*a.pulseFreq*2*math.Pi)
		col := tintColor(a.col, pulse)
		vector.DrawFilledCircle(screen, float32(a.pos.X), float32(a.pos.Y),
			float32(a.renderRadius()), applyAlpha(col, alpha), true)
	}

	for i := range g.protons.protons {
		pr := &g.protons.protons[i]
		if !pr.active {
			continue
		}
		g.drawProton(screen, pr)
	}

	g.drawHUD(screen)
}

// drawProton renders a particle as a three-layer glow plus optional label.
func (g *Game) drawProton(screen *ebiten.Image, pr *proton) {
	alpha := pr.alpha(&g.params.Proton)
	col := pr.displayColor()
	x, y := float32(pr.pos.X), float32(pr.pos.Y)
	r := float32(pr.radius)
	vector.DrawFilledCircle(screen, x, y, r*2.0, applyAlpha(col, alpha*0.25), true)
	vector.DrawFilledCircle(screen, x, y, r*1.5, applyAlpha(col, alpha*0.5), true)
	vector.DrawFilledCircle(screen, x, y, r, applyAlpha(col, alpha), true)
	if g.labelsOn {
		text.Draw(screen, pr.elementLabel(), basicfont.Face7x13,
			int(pr.pos.X)+int(pr.radius)+4, int(pr.pos.Y)+4, color.White)
	}
}

// drawHUD renders the current color readout and the optional debug overlay.
func (g *Game) drawHUD(screen *ebiten.Image) {
	info := colorInfo(g.currentColor(), &g.params.Ring)
	text.Draw(screen, info, basicfont.Face7x13, 8, windowH-10, g.currentColor())

	if *debugFlag {
		msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nRings: %d  Atoms: %d  Protons: %d (stable %d)",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.rings.count(), g.atoms.count(),
			g.protons.count(), g.protons.count()-g.protons.unstableCount())
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return windowW, windowH }

// applyAlpha premultiplies c by the given opacity.
func applyAlpha(c color.RGBA, a float64) color.RGBA {
	a = clampFloat(a, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}
