package placement

import (
	"github.com/lixenwraith/into-the-hole/vmath"
)

const NameRandom = "random"

// Random puts one item per curve step at an independent random ring cell
type Random struct {
	templates []string
}

func NewRandom(templates ...string) *Random {
	return &Random{templates: templates}
}

func (p *Random) Name() string        { return NameRandom }
func (p *Random) Templates() []string { return p.templates }

func (p *Random) Place(g Geometry, rng *vmath.FastRand) []Slot {
	steps := g.CurveSegments()
	step := angleStep(g)
	cell := cellAngle(g)

	slots := make([]Slot, 0, steps)
	for i := 0; i < steps; i++ {
		ring := (float64(rng.Intn(g.RadialSegments())) + 0.5) * cell
		slots = append(slots, Slot{
			CurveOffset:  float64(i) * step,
			RingRotation: ring,
			Template:     pickTemplate(p.templates, rng),
		})
	}
	return slots
}
