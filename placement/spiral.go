package placement

import (
	"github.com/lixenwraith/into-the-hole/vmath"
)

const NameSpiral = "spiral"

// Spiral advances one ring cell per curve step in a random direction
type Spiral struct {
	templates []string
}

func NewSpiral(templates ...string) *Spiral {
	return &Spiral{templates: templates}
}

func (p *Spiral) Name() string        { return NameSpiral }
func (p *Spiral) Templates() []string { return p.templates }

func (p *Spiral) Place(g Geometry, rng *vmath.FastRand) []Slot {
	steps := g.CurveSegments()
	step := angleStep(g)
	cell := cellAngle(g)

	start := float64(rng.Intn(g.RadialSegments())) + 0.5
	direction := rng.Sign()

	slots := make([]Slot, 0, steps)
	for i := 0; i < steps; i++ {
		slots = append(slots, Slot{
			CurveOffset:  float64(i) * step,
			RingRotation: vmath.WrapDegrees((start + float64(i)*direction) * cell),
			Template:     pickTemplate(p.templates, rng),
		})
	}
	return slots
}
