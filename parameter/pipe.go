package parameter

// Pipe geometry defaults
const (
	// PipeRadius is the tube radius
	PipeRadius = 1.0

	// RadialSegments is the quad count around the tube cross-section
	RadialSegments = 20

	// RingDistance is the arc length between consecutive quad rings
	RingDistance = 0.5

	// MinCurveRadius and MaxCurveRadius bound the per-segment curve radius draw
	MinCurveRadius = 4.0
	MaxCurveRadius = 20.0

	// MinCurveSegments and MaxCurveSegments bound the per-segment ring count draw (inclusive)
	MinCurveSegments = 4
	MaxCurveSegments = 10
)

// Segment ring
const (
	// PipeCount is the number of live segments kept in the chain
	PipeCount = 5

	// EmptyPipeCount leading segments carry no items on a fresh chain
	EmptyPipeCount = 2

	// MinPipeCount keeps one segment behind, the current one, and one ahead
	MinPipeCount = 3
)

// Item templates
const (
	TemplateCube   = "cube"
	TemplateSpike  = "spike"
	TemplateBonus  = "bonus"
	TemplateGate   = "gate"
	PoolPrewarmPer = 32
)
