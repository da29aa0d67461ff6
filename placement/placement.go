// Package placement computes where decoration and obstacle items sit on a pipe
// segment. A placer only produces angular coordinates; attaching pooled items
// at those coordinates is the segment's job.
package placement

import (
	"github.com/lixenwraith/into-the-hole/vmath"
)

// Geometry is the subset of segment state a placer reads
type Geometry interface {
	RadialSegments() int
	CurveSegments() int
	// CurveAngle is the segment sweep in degrees
	CurveAngle() float64
}

// Slot is one placement directive, angles in degrees
type Slot struct {
	CurveOffset  float64 `json:"curve_offset"`
	RingRotation float64 `json:"ring_rotation"`
	Template     string  `json:"template"`
}

// Placer produces a set of slots for a segment
type Placer interface {
	Name() string
	Templates() []string
	Place(g Geometry, rng *vmath.FastRand) []Slot
}

// angleStep is the curve angle between consecutive quad rings
func angleStep(g Geometry) float64 {
	n := g.CurveSegments()
	if n <= 0 {
		return 0
	}
	return g.CurveAngle() / float64(n)
}

// cellAngle is the ring rotation of one radial quad
func cellAngle(g Geometry) float64 {
	n := g.RadialSegments()
	if n <= 0 {
		return 0
	}
	return 360.0 / float64(n)
}

func pickTemplate(templates []string, rng *vmath.FastRand) string {
	if len(templates) == 0 {
		return ""
	}
	return templates[rng.Intn(len(templates))]
}

// Selector chooses one placer uniformly per repopulation
type Selector struct {
	placers []Placer
}

func NewSelector(placers ...Placer) *Selector {
	return &Selector{placers: placers}
}

// Len returns the number of available placers
func (s *Selector) Len() int {
	return len(s.placers)
}

// Placers returns the configured placers
func (s *Selector) Placers() []Placer {
	return s.placers
}

// Pick returns a uniformly chosen placer, nil when empty
func (s *Selector) Pick(rng *vmath.FastRand) Placer {
	if len(s.placers) == 0 {
		return nil
	}
	return s.placers[rng.Intn(len(s.placers))]
}

// ByName builds a placer from its configuration name
func ByName(name string, templates []string) (Placer, bool) {
	switch name {
	case NameRandom:
		return NewRandom(templates...), true
	case NameSpiral:
		return NewSpiral(templates...), true
	case NameCircle:
		return NewCircle(templates...), true
	}
	return nil, false
}
