package main

import (
	"fmt"
	"image/color"
)

// palette is the ring color wheel, ordered from slowest (dark red) to fastest
// (white). Right click cycles through it.
var palette = [paletteSize]color.RGBA{
	{44, 0, 0, 255},
	{80, 0, 0, 255},
	{120, 0, 0, 255},
	{160, 0, 0, 255},
	{200, 0, 0, 255},
	{255, 0, 0, 255},
	{255, 50, 0, 255},
	{255, 100, 0, 255},
	{255, 150, 0, 255},
	{255, 200, 0, 255},
	{255, 255, 0, 255},
	{200, 255, 0, 255},
	{150, 255, 0, 255},
	{100, 255, 0, 255},
	{50, 255, 0, 255},
	{0, 255, 0, 255},
	{0, 255, 50, 255},
	{0, 255, 100, 255},
	{0, 255, 150, 255},
	{0, 255, 200, 255},
	{0, 255, 255, 255},
	{0, 200, 255, 255},
	{0, 150, 255, 255},
	{0, 100, 255, 255},
	{0, 50, 255, 255},
	{0, 0, 255, 255},
	{50, 0, 255, 255},
	{100, 0, 255, 255},
	{150, 0, 255, 255},
	{200, 0, 255, 255},
	{255, 0, 255, 255},
	{255, 100, 255, 255},
	{255, 150, 255, 255},
	{255, 200, 255, 255},
	{255, 255, 255, 255},
}

// frequencySpeed maps a color to its expansion speed in px/s. Blue-heavy
// colors are treated as higher frequency and expand faster.
func frequencySpeed(c color.RGBA, p *ringParams) float64 {
	freq := (p.ColorWeightRed*float64(c.R) +
		p.ColorWeightGreen*float64(c.G) +
		p.ColorWeightBlue*float64(c.B)) / 255.0
	speed := p.MinSpeed + freq*(p.MaxSpeed-p.MinSpeed)
	return clampFloat(speed, p.MinSpeed, p.MaxSpeed)
}

// shouldInterfere reports whether two ring colors are far enough apart to
// interfere. Colors within tolerance on every channel pass through each other.
func shouldInterfere(c1, c2 color.RGBA, tolerance int) bool {
	return absInt(int(c1.R)-int(c2.R)) > tolerance ||
		absInt(int(c1.G)-int(c2.G)) > tolerance ||
		absInt(int(c1.B)-int(c2.B)) > tolerance
}

// interferenceColor mixes two ring colors additively, clamped per channel.
func interferenceColor(c1, c2 color.RGBA) color.RGBA {
	return color.RGBA{
		R: clampChannel(int(c1.R) + int(c2.R)),
		G: clampChannel(int(c1.G) + int(c2.G)),
		B: clampChannel(int(c1.B) + int(c2.B)),
		A: 255,
	}
}

// interferenceEnergy computes the energy of an interference event from the
// two ring speeds. Mismatched frequencies amplify the result.
func interferenceEnergy(speed1, speed2, diffAmplifier float64) float64 {
	diff := speed1 - speed2
	if diff < 0 {
		diff = -diff
	}
	return speed1 + speed2 + diff*diffAmplifier
}

// colorInfo describes a palette color for the HUD.
func colorInfo(c color.RGBA, p *ringParams) string {
	speed := frequencySpeed(c, p)
	class := "high"
	switch {
	case speed < p.LowFrequencyThreshold:
		class = "low"
	case speed < p.MediumFrequencyThreshold:
		class = "medium"
	}
	return fmt.Sprintf("RGB(%d,%d,%d) %s freq %.0f px/s", c.R, c.G, c.B, class, speed)
}

func clampChannel(v int) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
