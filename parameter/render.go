package parameter

// Camera and projection
const (
	// FocalLength scales projected coordinates, larger is narrower field of view
	FocalLength = 1.2

	// NearPlane discards points closer than this along the view axis
	NearPlane = 0.05

	// FarPlane discards points beyond this along the view axis
	FarPlane = 40.0

	// CellAspect compensates for terminal cells being about twice as tall as wide
	CellAspect = 2.0

	// HUDRows reserved at the bottom of the screen
	HUDRows = 2
)
