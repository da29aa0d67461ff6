package pipe

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/into-the-hole/parameter"
)

// ErrInvalidConfig wraps every configuration rejection
var ErrInvalidConfig = errors.New("pipe: invalid config")

// Config describes the pipe geometry and the segment ring
type Config struct {
	PipeRadius       float64 `toml:"pipe_radius" yaml:"pipe_radius" json:"pipe_radius"`
	RadialSegments   int     `toml:"radial_segments" yaml:"radial_segments" json:"radial_segments"`
	RingDistance     float64 `toml:"ring_distance" yaml:"ring_distance" json:"ring_distance"`
	MinCurveRadius   float64 `toml:"min_curve_radius" yaml:"min_curve_radius" json:"min_curve_radius"`
	MaxCurveRadius   float64 `toml:"max_curve_radius" yaml:"max_curve_radius" json:"max_curve_radius"`
	MinCurveSegments int     `toml:"min_curve_segments" yaml:"min_curve_segments" json:"min_curve_segments"`
	MaxCurveSegments int     `toml:"max_curve_segments" yaml:"max_curve_segments" json:"max_curve_segments"`
	PipeCount        int     `toml:"pipe_count" yaml:"pipe_count" json:"pipe_count"`
	EmptyCount       int     `toml:"empty_count" yaml:"empty_count" json:"empty_count"`
}

// DefaultConfig returns the tuned defaults from the parameter package
func DefaultConfig() Config {
	return Config{
		PipeRadius:       parameter.PipeRadius,
		RadialSegments:   parameter.RadialSegments,
		RingDistance:     parameter.RingDistance,
		MinCurveRadius:   parameter.MinCurveRadius,
		MaxCurveRadius:   parameter.MaxCurveRadius,
		MinCurveSegments: parameter.MinCurveSegments,
		MaxCurveSegments: parameter.MaxCurveSegments,
		PipeCount:        parameter.PipeCount,
		EmptyCount:       parameter.EmptyPipeCount,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate rejects zero or negative counts and degenerate radii
func (c Config) Validate() error {
	switch {
	case c.PipeRadius <= 0:
		return invalid("pipe_radius %v must be > 0", c.PipeRadius)
	case c.RadialSegments < 1:
		return invalid("radial_segments %d must be >= 1", c.RadialSegments)
	case c.RingDistance <= 0:
		return invalid("ring_distance %v must be > 0", c.RingDistance)
	case c.MinCurveRadius <= 0:
		return invalid("min_curve_radius %v must be > 0", c.MinCurveRadius)
	case c.MaxCurveRadius < c.MinCurveRadius:
		return invalid("max_curve_radius %v < min_curve_radius %v", c.MaxCurveRadius, c.MinCurveRadius)
	case c.PipeRadius >= c.MinCurveRadius:
		// Tube would self-intersect on the inner side of the bend
		return invalid("pipe_radius %v must be < min_curve_radius %v", c.PipeRadius, c.MinCurveRadius)
	case c.MinCurveSegments < 1:
		return invalid("min_curve_segments %d must be >= 1", c.MinCurveSegments)
	case c.MaxCurveSegments < c.MinCurveSegments:
		return invalid("max_curve_segments %d < min_curve_segments %d", c.MaxCurveSegments, c.MinCurveSegments)
	case c.PipeCount < parameter.MinPipeCount:
		return invalid("pipe_count %d must be >= %d", c.PipeCount, parameter.MinPipeCount)
	case c.EmptyCount < 0 || c.EmptyCount >= c.PipeCount:
		return invalid("empty_count %d must be in [0, %d)", c.EmptyCount, c.PipeCount)
	}
	return nil
}
