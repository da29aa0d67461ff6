package placement

import (
	"github.com/lixenwraith/into-the-hole/vmath"
)

const NameCircle = "circle"

// Circle builds ring gates at every second curve step
// A gate holds ceil(radial/2) items spaced two cells apart, leaving a gap
// between neighbours the player can slip through
type Circle struct {
	templates []string
}

func NewCircle(templates ...string) *Circle {
	return &Circle{templates: templates}
}

func (p *Circle) Name() string        { return NameCircle }
func (p *Circle) Templates() []string { return p.templates }

// GateSize returns the number of items in one gate
func GateSize(radialSegments int) int {
	return (radialSegments + 1) / 2
}

func (p *Circle) Place(g Geometry, rng *vmath.FastRand) []Slot {
	steps := g.CurveSegments()
	step := angleStep(g)
	cell := cellAngle(g)
	spacing := cell * 2
	perGate := GateSize(g.RadialSegments())

	start := (float64(rng.Intn(g.RadialSegments())) + 0.5) * cell
	template := pickTemplate(p.templates, rng)

	slots := make([]Slot, 0, ((steps+1)/2)*perGate)
	for i := 0; i < steps; i += 2 {
		curve := float64(i) * step
		// Gates twist along the curve
		base := start + curve
		for k := 0; k < perGate; k++ {
			slots = append(slots, Slot{
				CurveOffset:  curve,
				RingRotation: vmath.WrapDegrees(base + float64(k)*spacing),
				Template:     template,
			})
		}
	}
	return slots
}
