package main

import (
	"math"
	"sync"
)

const (
	audioChannels       = 2
	audioBytesPerSample = 2
	audioFrameBytes     = audioChannels * audioBytesPerSample

	chimeFrequency = 660.0
	chimeDecay     = 4.0
	maxChimeVoices = 8
)

// chimeVoice is one decaying sine burst.
type chimeVoice struct {
	phase float64
	amp   float64
}

// fusionChime implements io.Reader for Ebiten's audio player. Each fusion
// event queues a decaying sine voice; silence is produced when no voice is
// active so the player never stalls.
type fusionChime struct {
	mu     sync.Mutex
	voices []chimeVoice
}

func newFusionChime() *fusionChime {
	return &fusionChime{}
}

// Trigger queues a chime voice. Oldest voices are dropped at the cap.
func (c *fusionChime) Trigger() {
	c.mu.Lock()
	if len(c.voices) >= maxChimeVoices {
		c.voices = c.voices[1:]
	}
	c.voices = append(c.voices, chimeVoice{amp: 0.5})
	c.mu.Unlock()
}

// Read produces interleaved stereo PCM16 frames.
func (c *fusionChime) Read(p []byte) (int, error) {
	frameCount := len(p) / audioFrameBytes
	if frameCount == 0 {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	step := 2 * math.Pi * chimeFrequency / audioSampleRate
	decay := math.Exp(-chimeDecay / audioSampleRate)
	for i := 0; i < frameCount; i++ {
		var v float64
		for j := range c.voices {
			c.voices[j].phase += step
			c.voices[j].amp *= decay
			v += math.Sin(c.voices[j].phase) * c.voices[j].amp
		}
		sample := int16(clampFloat(v, -1, 1) * 20000)
		base := i * audioFrameBytes
		for ch := 0; ch < audioChannels; ch++ {
			p[base+ch*audioBytesPerSample] = byte(sample)
			p[base+ch*audioBytesPerSample+1] = byte(sample >> 8)
		}
	}
	kept := c.voices[:0]
	for _, v := range c.voices {
		if v.amp > 0.001 {
			kept = append(kept, v)
		}
	}
	c.voices = kept
	return frameCount * audioFrameBytes, nil
}
