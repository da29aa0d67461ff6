// Package mesh holds indexed triangle buffers and helpers shared by the
// pipe builder, the terminal renderer and the OBJ exporter.
package mesh

import (
	"fmt"

	"github.com/lixenwraith/into-the-hole/vmath"
)

// Mesh is an indexed triangle mesh
// Triangles holds 3 indices per triangle into Vertices
type Mesh struct {
	Vertices  []vmath.Vec3
	UV        []vmath.Vec2
	Normals   []vmath.Vec3
	Triangles []int
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Validate checks buffer consistency and index bounds
func (m *Mesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("triangle buffer length %d not a multiple of 3", len(m.Triangles))
	}
	if len(m.UV) != 0 && len(m.UV) != len(m.Vertices) {
		return fmt.Errorf("uv count %d != vertex count %d", len(m.UV), len(m.Vertices))
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("normal count %d != vertex count %d", len(m.Normals), len(m.Vertices))
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("triangle index %d at %d out of range [0,%d)", idx, i, len(m.Vertices))
		}
	}
	return nil
}

// RecalculateNormals rebuilds per-vertex normals from face normals
// Face normals are unnormalized cross products, so larger faces weigh more
func (m *Mesh) RecalculateNormals() {
	m.Normals = Resize(m.Normals, len(m.Vertices))
	for i := range m.Normals {
		m.Normals[i] = vmath.Vec3{}
	}
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		a, b, c := m.Triangles[t], m.Triangles[t+1], m.Triangles[t+2]
		n := vmath.V3Cross(
			vmath.V3Sub(m.Vertices[b], m.Vertices[a]),
			vmath.V3Sub(m.Vertices[c], m.Vertices[a]),
		)
		m.Normals[a] = vmath.V3Add(m.Normals[a], n)
		m.Normals[b] = vmath.V3Add(m.Normals[b], n)
		m.Normals[c] = vmath.V3Add(m.Normals[c], n)
	}
	for i := range m.Normals {
		m.Normals[i] = vmath.V3Normalize(m.Normals[i])
	}
}

// Resize returns s with length n, reusing the backing array when it fits
func Resize[T any](s []T, n int) []T {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]T, n)
}
