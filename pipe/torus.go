package pipe

import (
	"math"

	"github.com/lixenwraith/into-the-hole/mesh"
	"github.com/lixenwraith/into-the-hole/vmath"
)

// TorusParams fully determines one segment's mesh
type TorusParams struct {
	PipeRadius     float64
	CurveRadius    float64
	RingDistance   float64
	RadialSegments int
	CurveSegments  int
}

// Validate rejects parameters that would produce an empty or degenerate mesh
func (p TorusParams) Validate() error {
	switch {
	case p.RadialSegments < 1:
		return invalid("radial segments %d must be >= 1", p.RadialSegments)
	case p.CurveSegments < 1:
		return invalid("curve segments %d must be >= 1", p.CurveSegments)
	case p.PipeRadius <= 0:
		return invalid("pipe radius %v must be > 0", p.PipeRadius)
	case p.CurveRadius <= 0:
		return invalid("curve radius %v must be > 0", p.CurveRadius)
	case p.RingDistance <= 0:
		return invalid("ring distance %v must be > 0", p.RingDistance)
	}
	return nil
}

// UStep is the curve angle between quad rings in radians
func (p TorusParams) UStep() float64 {
	return p.RingDistance / p.CurveRadius
}

// VStep is the ring angle between radial quads in radians
func (p TorusParams) VStep() float64 {
	return vmath.TwoPi / float64(p.RadialSegments)
}

// CurveAngle is the total sweep in degrees
func (p TorusParams) CurveAngle() float64 {
	return p.UStep() * float64(p.CurveSegments) * vmath.Rad2Deg
}

// VertexCount is radial × curve × 4
func (p TorusParams) VertexCount() int {
	return p.RadialSegments * p.CurveSegments * 4
}

// IndexCount is radial × curve × 6
func (p TorusParams) IndexCount() int {
	return p.RadialSegments * p.CurveSegments * 6
}

// PointOnTorus returns the surface point at curve angle u and ring angle v (radians)
// The centre line lies in the XY plane, u=0 at +Y, bending toward +X
func PointOnTorus(curveRadius, pipeRadius, u, v float64) vmath.Vec3 {
	r := curveRadius + pipeRadius*math.Cos(v)
	return vmath.Vec3{
		X: r * math.Sin(u),
		Y: r * math.Cos(u),
		Z: pipeRadius * math.Sin(v),
	}
}

// BuildTorus fills m with the segment mesh, reusing its buffers
// Every quad owns 4 vertices so UVs can tile per quad; a ring after the first
// copies the trailing edge of the previous ring instead of re-sampling it
func BuildTorus(m *mesh.Mesh, p TorusParams) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m.Vertices = mesh.Resize(m.Vertices, p.VertexCount())
	uStep := p.UStep()

	firstQuadRing(m.Vertices, p, uStep)
	ringOffset := p.RadialSegments * 4
	for u, i := 2, ringOffset; u <= p.CurveSegments; u, i = u+1, i+ringOffset {
		quadRing(m.Vertices, p, float64(u)*uStep, i)
	}

	setUV(m)
	setTriangles(m, p.IndexCount())
	m.RecalculateNormals()
	return nil
}

func firstQuadRing(vertices []vmath.Vec3, p TorusParams, u float64) {
	vStep := p.VStep()
	a := PointOnTorus(p.CurveRadius, p.PipeRadius, 0, 0)
	b := PointOnTorus(p.CurveRadius, p.PipeRadius, u, 0)
	for v, i := 1, 0; v <= p.RadialSegments; v, i = v+1, i+4 {
		vertices[i] = a
		a = PointOnTorus(p.CurveRadius, p.PipeRadius, 0, float64(v)*vStep)
		vertices[i+1] = a
		vertices[i+2] = b
		b = PointOnTorus(p.CurveRadius, p.PipeRadius, u, float64(v)*vStep)
		vertices[i+3] = b
	}
}

func quadRing(vertices []vmath.Vec3, p TorusParams, u float64, i int) {
	vStep := p.VStep()
	ringOffset := p.RadialSegments * 4
	vertex := PointOnTorus(p.CurveRadius, p.PipeRadius, u, 0)
	for v := 1; v <= p.RadialSegments; v, i = v+1, i+4 {
		vertices[i] = vertices[i-ringOffset+2]
		vertices[i+1] = vertices[i-ringOffset+3]
		vertices[i+2] = vertex
		vertex = PointOnTorus(p.CurveRadius, p.PipeRadius, u, float64(v)*vStep)
		vertices[i+3] = vertex
	}
}

func setUV(m *mesh.Mesh) {
	m.UV = mesh.Resize(m.UV, len(m.Vertices))
	for i := 0; i+3 < len(m.UV); i += 4 {
		m.UV[i] = vmath.Vec2{X: 0, Y: 0}
		m.UV[i+1] = vmath.Vec2{X: 1, Y: 0}
		m.UV[i+2] = vmath.Vec2{X: 0, Y: 1}
		m.UV[i+3] = vmath.Vec2{X: 1, Y: 1}
	}
}

func setTriangles(m *mesh.Mesh, n int) {
	m.Triangles = mesh.Resize(m.Triangles, n)
	for t, i := 0, 0; t < n; t, i = t+6, i+4 {
		m.Triangles[t] = i
		m.Triangles[t+1] = i + 2
		m.Triangles[t+2] = i + 1
		m.Triangles[t+3] = i + 1
		m.Triangles[t+4] = i + 2
		m.Triangles[t+5] = i + 3
	}
}
