package pipe

import (
	"fmt"

	"github.com/lixenwraith/into-the-hole/mesh"
	"github.com/lixenwraith/into-the-hole/placement"
	"github.com/lixenwraith/into-the-hole/vmath"
)

// Segment is one torus slice of the tunnel
// Instances live in the chain's ring and are regenerated on recycle
type Segment struct {
	pipeRadius   float64
	ringDistance float64
	radial       int

	curveRadius      float64
	curveSegments    int
	curveAngle       float64
	relativeRotation float64

	// transform places the segment in chain space
	transform vmath.Transform

	mesh  mesh.Mesh
	items []*Item
}

func newSegment(cfg Config) *Segment {
	return &Segment{
		pipeRadius:   cfg.PipeRadius,
		ringDistance: cfg.RingDistance,
		radial:       cfg.RadialSegments,
		transform:    vmath.Identity(),
	}
}

func (s *Segment) RadialSegments() int        { return s.radial }
func (s *Segment) CurveSegments() int         { return s.curveSegments }
func (s *Segment) CurveRadius() float64       { return s.curveRadius }
func (s *Segment) PipeRadius() float64        { return s.pipeRadius }
func (s *Segment) CurveAngle() float64        { return s.curveAngle }
func (s *Segment) RelativeRotation() float64  { return s.relativeRotation }
func (s *Segment) Transform() vmath.Transform { return s.transform }
func (s *Segment) Mesh() *mesh.Mesh           { return &s.mesh }
func (s *Segment) Items() []*Item             { return s.items }

// Params returns the torus parameters of the current geometry
func (s *Segment) Params() TorusParams {
	return TorusParams{
		PipeRadius:     s.pipeRadius,
		CurveRadius:    s.curveRadius,
		RingDistance:   s.ringDistance,
		RadialSegments: s.radial,
		CurveSegments:  s.curveSegments,
	}
}

// Rebuild recomputes the mesh for an explicit curve radius and ring count
func (s *Segment) Rebuild(curveRadius float64, curveSegments int) error {
	s.curveRadius = curveRadius
	s.curveSegments = curveSegments
	p := s.Params()
	if err := BuildTorus(&s.mesh, p); err != nil {
		return fmt.Errorf("segment rebuild: %w", err)
	}
	s.curveAngle = p.CurveAngle()
	return nil
}

// FrameAt returns the centre-line frame at a curve angle in degrees, in segment space
// X is the direction of travel, Y points from the bend centre outward
func (s *Segment) FrameAt(curveDeg float64) vmath.Transform {
	return vmath.Identity().
		Rotate(vmath.QuatRotZ(-curveDeg)).
		Translate(vmath.Vec3{Y: s.curveRadius})
}

// RingPoint returns the ring vertex position at ring index k of quad ring boundary u (0..curveSegments), in segment space
func (s *Segment) RingPoint(u, k int) vmath.Vec3 {
	p := s.Params()
	return PointOnTorus(s.curveRadius, s.pipeRadius, float64(u)*p.UStep(), float64(k)*p.VStep())
}

// WorldRing returns the ring at boundary u transformed to chain space
func (s *Segment) WorldRing(u int) []vmath.Vec3 {
	out := make([]vmath.Vec3, s.radial)
	for k := range out {
		out[k] = s.transform.Apply(s.RingPoint(u, k))
	}
	return out
}

// WorldItem returns an item anchor in chain space
func (s *Segment) WorldItem(it *Item) vmath.Vec3 {
	return s.transform.Apply(it.Local)
}

// alignWith places s directly after prev with a random roll in whole radial cells
func (s *Segment) alignWith(prev *Segment, rng *vmath.FastRand) {
	s.relativeRotation = float64(rng.Intn(s.radial)) * 360.0 / float64(s.radial)
	s.transform = vmath.Compose(prev.transform, relativeTransform(prev, s))
}

// relativeTransform maps next's space into prev's space
func relativeTransform(prev, next *Segment) vmath.Transform {
	return vmath.Identity().
		Rotate(vmath.QuatRotZ(-prev.curveAngle)).
		Translate(vmath.Vec3{Y: prev.curveRadius}).
		Rotate(vmath.QuatRotX(next.relativeRotation)).
		Translate(vmath.Vec3{Y: -next.curveRadius})
}

// clearItems returns all attached items to the pool
func (s *Segment) clearItems(items *ItemPool) {
	for i, it := range s.items {
		items.Release(it)
		s.items[i] = nil
	}
	s.items = s.items[:0]
}

// Place acquires an item for slot and attaches it to s
func (s *Segment) Place(items *ItemPool, slot placement.Slot) (*Item, error) {
	it, err := items.Acquire(slot.Template)
	if err != nil {
		return nil, err
	}
	it.attach(s, slot)
	s.items = append(s.items, it)
	return it, nil
}

// populate attaches one pooled item per slot produced by placer
func (s *Segment) populate(items *ItemPool, placer placement.Placer, rng *vmath.FastRand) error {
	for _, slot := range placer.Place(s, rng) {
		if _, err := s.Place(items, slot); err != nil {
			return fmt.Errorf("populate %s: %w", placer.Name(), err)
		}
	}
	return nil
}
