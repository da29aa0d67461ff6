package render

import (
	"github.com/lixenwraith/into-the-hole/parameter"
	"github.com/lixenwraith/into-the-hole/vmath"
)

// Camera is a pinhole projection onto a grid of terminal cells
// The eye frame looks down +X with its +Y axis pointing at the floor
type Camera struct {
	view   vmath.Transform
	Focal  float64
	Near   float64
	Far    float64
	Aspect float64
	Width  int
	Height int
}

// NewCamera builds a camera for eye (a chain-space frame) covering width x height cells
func NewCamera(eye vmath.Transform, width, height int) Camera {
	return Camera{
		view:   eye.Inverse(),
		Focal:  parameter.FocalLength,
		Near:   parameter.NearPlane,
		Far:    parameter.FarPlane,
		Aspect: parameter.CellAspect,
		Width:  width,
		Height: height,
	}
}

// Project maps a chain-space point to a cell and its view depth
// ok is false when the point is outside the near/far range or off screen
func (c Camera) Project(p vmath.Vec3) (x, y int, depth float64, ok bool) {
	local := c.view.Apply(p)
	depth = local.X
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	// Right is -Z, up is -Y
	sx := -local.Z / depth * c.Focal
	sy := -local.Y / depth * c.Focal

	half := float64(c.Height) / 2
	fx := float64(c.Width)/2 + sx*half*c.Aspect
	fy := half - sy*half
	if fx < 0 || fy < 0 {
		return 0, 0, depth, false
	}
	x, y = int(fx), int(fy)
	if x >= c.Width || y >= c.Height {
		return 0, 0, depth, false
	}
	return x, y, depth, true
}

// NormalizedDepth maps depth into [0,1] across the near/far range
func (c Camera) NormalizedDepth(depth float64) float64 {
	return vmath.Clamp((depth-c.Near)/(c.Far-c.Near), 0, 1)
}
