package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// HumGenerator generates an endless low engine drone with a slow wobble
type HumGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

func NewHumGenerator(sr beep.SampleRate) *HumGenerator {
	return &HumGenerator{
		sr:      sr,
		samples: sr.N(time.Second * 2), // 2 second wobble cycle
	}
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		cyclePos := float64(g.pos%g.samples) / float64(g.samples)

		freq := 55 + 6*math.Sin(cyclePos*2*math.Pi)
		sample := 0.08*math.Sin(2*math.Pi*freq*t) + 0.04*math.Sin(2*math.Pi*freq*2*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error {
	return nil
}

// ChimeGenerator generates a two-tone rising coin chime
type ChimeGenerator struct {
	sr  beep.SampleRate
	pos int
}

func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{sr: sr}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	step := g.sr.N(time.Millisecond * 60)
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		freq := 988.0 // B5
		if g.pos >= step {
			freq = 1319.0 // E6
		}
		envelope := math.Exp(-t * 12)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// CrashGenerator generates a decaying noise burst over a low thud
type CrashGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

func NewCrashGenerator(sr beep.SampleRate, seed int64) *CrashGenerator {
	return &CrashGenerator{sr: sr, seed: seed}
}

func (g *CrashGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Quick attack, slower decay
		envelope := math.Exp(-t * 8)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		thud := 0.3 * math.Sin(2*math.Pi*50*t)
		sample := envelope * (0.3*noise + thud)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrashGenerator) Err() error {
	return nil
}

// WhooshGenerator generates a short falling sweep over duration seconds
type WhooshGenerator struct {
	sr       beep.SampleRate
	pos      int
	duration float64
	phase    float64
}

func NewWhooshGenerator(sr beep.SampleRate, duration float64) *WhooshGenerator {
	return &WhooshGenerator{sr: sr, duration: duration}
}

func (g *WhooshGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		p := math.Min(t/g.duration, 1)

		freq := 400 - 300*p
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		amplitude := 0.12 * math.Sin(p*math.Pi)
		sample := amplitude * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *WhooshGenerator) Err() error {
	return nil
}
